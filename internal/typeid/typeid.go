// Package typeid mints the prefixed, time-sortable ids used for stage items,
// uploaded assets and editing sessions.
package typeid

import (
	"errors"
	"fmt"

	"go.jetify.com/typeid/v2"
)

type Prefix string

const (
	PrefixItem    Prefix = "item"
	PrefixAsset   Prefix = "asset"
	PrefixSession Prefix = "sess"
)

// ErrWrongPrefix is returned by Check for a well-formed id of another kind.
var ErrWrongPrefix = errors.New("typeid: wrong prefix")

func New(prefix Prefix) string {
	return typeid.MustGenerate(string(prefix)).String()
}

func NewItemID() string    { return New(PrefixItem) }
func NewAssetID() string   { return New(PrefixAsset) }
func NewSessionID() string { return New(PrefixSession) }

// Check reports whether id parses and carries the expected prefix.
func Check(id string, want Prefix) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", id, err)
	}
	if got := Prefix(parsed.Prefix()); got != want {
		return fmt.Errorf("%w: id %q is a %q, want %q", ErrWrongPrefix, id, got, want)
	}
	return nil
}
