// Package measure reports the natural pixel size of stage content: decoded
// picture dimensions and laid-out text extents.
package measure

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"
	"sync"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	_ "golang.org/x/image/webp"
)

// ErrEmptyPicture is returned for images that decode to zero pixels.
var ErrEmptyPicture = errors.New("measure: picture has no pixels")

// Size is a natural content size in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Picture reads just enough of r to learn the image dimensions and format.
func Picture(r io.Reader) (Size, string, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return Size{}, "", fmt.Errorf("measure: decode picture: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Size{}, format, ErrEmptyPicture
	}
	return Size{Width: float64(cfg.Width), Height: float64(cfg.Height)}, format, nil
}

var defaultFont = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// Text lays out text at fontSize pixels, one line per newline, and returns
// the width of the widest line and the total line height. Empty lines still
// take up height so a blank text box stays clickable.
func Text(text string, fontSize float64) (Size, error) {
	if fontSize <= 0 {
		return Size{}, fmt.Errorf("measure: font size %v must be positive", fontSize)
	}
	f, err := defaultFont()
	if err != nil {
		return Size{}, fmt.Errorf("measure: parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return Size{}, fmt.Errorf("measure: create face: %w", err)
	}
	defer face.Close()

	lines := strings.Split(text, "\n")
	var width float64
	for _, line := range lines {
		adv := font.MeasureString(face, line)
		width = max(width, float64(adv)/64)
	}
	lineHeight := float64(face.Metrics().Height) / 64
	return Size{Width: width, Height: lineHeight * float64(len(lines))}, nil
}
