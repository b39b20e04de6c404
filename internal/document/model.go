package document

import (
	"encoding/json"
	"fmt"

	"github.com/inamate/stickerstage/internal/typeid"
)

type ItemKind string

const (
	ItemKindPicture ItemKind = "picture"
	ItemKindText    ItemKind = "text"
	ItemKindShape   ItemKind = "shape"
)

type ShapeVariant string

const (
	ShapeRect   ShapeVariant = "rect"
	ShapeCircle ShapeVariant = "circle"
)

type TextContent struct {
	Text        string  `json:"text"`
	Color       string  `json:"color"`
	FontFamily  string  `json:"fontFamily"`
	FontSize    float64 `json:"fontSize"`
	StrokeColor string  `json:"strokeColor,omitempty"`
	StrokeWidth float64 `json:"strokeWidth"`
}

type PictureContent struct {
	AssetID       string  `json:"assetId"`
	Name          string  `json:"name,omitempty"`
	NaturalWidth  float64 `json:"naturalWidth"`
	NaturalHeight float64 `json:"naturalHeight"`
}

type ShapeContent struct {
	Variant ShapeVariant `json:"variant"`
	Color   string       `json:"color"`
}

// Item is one thing placed on the stage. Only the payload matching Kind is
// meaningful. Items are treated as values: stores copy before editing.
type Item struct {
	ID    string   `json:"id"`
	Kind  ItemKind `json:"kind"`
	Layer int      `json:"layer"`

	Text    *TextContent    `json:"text,omitempty"`
	Picture *PictureContent `json:"picture,omitempty"`
	Shape   *ShapeContent   `json:"shape,omitempty"`
}

// Clone returns a deep copy of the item.
func (it *Item) Clone() *Item {
	if it == nil {
		return nil
	}
	c := *it
	if it.Text != nil {
		t := *it.Text
		c.Text = &t
	}
	if it.Picture != nil {
		p := *it.Picture
		c.Picture = &p
	}
	if it.Shape != nil {
		s := *it.Shape
		c.Shape = &s
	}
	return &c
}

// Equal reports whether two items have the same id, kind, layer and
// payload values.
func (it *Item) Equal(o *Item) bool {
	if it == nil || o == nil {
		return it == o
	}
	return it.ID == o.ID && it.Kind == o.Kind && it.Layer == o.Layer &&
		payloadEqual(it.Text, o.Text) &&
		payloadEqual(it.Picture, o.Picture) &&
		payloadEqual(it.Shape, o.Shape)
}

func payloadEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Validate checks that the payload matches the kind.
func (it *Item) Validate() error {
	if it.ID == "" {
		return fmt.Errorf("item has no id")
	}
	switch it.Kind {
	case ItemKindText:
		if it.Text == nil {
			return fmt.Errorf("text item %s has no text payload", it.ID)
		}
	case ItemKindPicture:
		if it.Picture == nil {
			return fmt.Errorf("picture item %s has no picture payload", it.ID)
		}
	case ItemKindShape:
		if it.Shape == nil {
			return fmt.Errorf("shape item %s has no shape payload", it.ID)
		}
		if it.Shape.Variant != ShapeRect && it.Shape.Variant != ShapeCircle {
			return fmt.Errorf("shape item %s has unknown variant %q", it.ID, it.Shape.Variant)
		}
	default:
		return fmt.Errorf("item %s has unknown kind %q", it.ID, it.Kind)
	}
	return nil
}

// ParseItem decodes and validates an item from JSON.
func ParseItem(data []byte) (*Item, error) {
	var it Item
	if err := json.Unmarshal(data, &it); err != nil {
		return nil, fmt.Errorf("decode item: %w", err)
	}
	if err := it.Validate(); err != nil {
		return nil, err
	}
	return &it, nil
}

// NewPicture creates a picture item for an uploaded asset.
func NewPicture(assetID, name string, width, height float64) *Item {
	return &Item{
		ID:   typeid.NewItemID(),
		Kind: ItemKindPicture,
		Picture: &PictureContent{
			AssetID:       assetID,
			Name:          name,
			NaturalWidth:  width,
			NaturalHeight: height,
		},
	}
}

// NewText creates a text item with the default look.
func NewText() *Item {
	return &Item{
		ID:   typeid.NewItemID(),
		Kind: ItemKindText,
		Text: &TextContent{
			Text:       "Type here",
			Color:      "black",
			FontFamily: "system-ui",
			FontSize:   32,
		},
	}
}

// NewShape creates a shape item.
func NewShape(variant ShapeVariant) *Item {
	return &Item{
		ID:   typeid.NewItemID(),
		Kind: ItemKindShape,
		Shape: &ShapeContent{
			Variant: variant,
			Color:   "teal",
		},
	}
}
