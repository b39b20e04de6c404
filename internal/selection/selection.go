// Package selection computes the outlines drawn around selected items and
// decides which items a marquee or a click picks up. Everything here is a
// pure function of geometry records.
package selection

import (
	"math"

	"github.com/inamate/stickerstage/internal/geometry"
	"github.com/inamate/stickerstage/internal/transform"
)

// Box is a selection outline: a Width×Height rectangle placed by Transform.
// Width and Height are never negative; a mirrored item keeps its flip in
// Transform instead.
type Box struct {
	Width     float64           `json:"width"`
	Height    float64           `json:"height"`
	Transform geometry.Matrix2D `json:"transform"`
	Rotation  float64           `json:"rotation"`
}

// Polygon returns the box's four corners on the stage.
func (b Box) Polygon() geometry.Quad {
	return geometry.UnitQuad(b.Transform, b.Width, b.Height)
}

// Records looks up geometry by id.
type Records interface {
	Get(id string) (*transform.Record, bool)
}

// BoundingBoxOf returns the oriented outline of a single item.
func BoundingBoxOf(rec *transform.Record) Box {
	if rec == nil {
		return Box{Transform: geometry.Identity()}
	}
	sign := geometry.Pt(signOf(rec.Scale.X), signOf(rec.Scale.Y))
	return Box{
		Width:     math.Abs(rec.Width * rec.Scale.X),
		Height:    math.Abs(rec.Height * rec.Scale.Y),
		Transform: transform.ComposeTransform(rec.Translate, sign, rec.RotationOrigin, rec.Rotation),
		Rotation:  rec.Rotation,
	}
}

// BoundingBoxOfMany returns the axis-aligned box around every corner of every
// record. Multi-selection is never drawn rotated.
func BoundingBoxOfMany(recs []*transform.Record) Box {
	var pts []geometry.Point
	for _, rec := range recs {
		if rec == nil {
			continue
		}
		pts = append(pts, rec.Polygon[:]...)
	}
	r := geometry.BoundsOf(pts...)
	return Box{
		Width:     r.Width,
		Height:    r.Height,
		Transform: geometry.Translate(r.X, r.Y),
	}
}

// BoundingBoxOfIDs picks the right outline for a selection: oriented for one
// item, axis-aligned for several. It reports false when none of ids has
// geometry.
func BoundingBoxOfIDs(store Records, ids []string) (Box, bool) {
	var recs []*transform.Record
	for _, id := range ids {
		if rec, ok := store.Get(id); ok {
			recs = append(recs, rec)
		}
	}
	switch len(recs) {
	case 0:
		return Box{}, false
	case 1:
		return BoundingBoxOf(recs[0]), true
	default:
		return BoundingBoxOfMany(recs), true
	}
}

// Marquee reports whether a drag rectangle picks up the item. Either a corner
// of the item lies in the rectangle, or the two polygons share area, which
// also covers a rectangle drawn entirely inside a large rotated item.
func Marquee(rect geometry.Rect, rec *transform.Record) bool {
	if rec == nil {
		return false
	}
	rect = rect.Normalize()
	for _, p := range rec.Polygon {
		if rect.Contains(p) {
			return true
		}
	}
	area := rect.Quad()
	return area.EdgesIntersect(rec.Polygon) || area.Overlaps(rec.Polygon)
}

// SelectInMarquee returns the ids, in the given order, that rect picks up.
func SelectInMarquee(rect geometry.Rect, store Records, ids []string) []string {
	var hits []string
	for _, id := range ids {
		if rec, ok := store.Get(id); ok && Marquee(rect, rec) {
			hits = append(hits, id)
		}
	}
	return hits
}

// HitTest returns the topmost id whose polygon contains p. ids are ordered
// bottom to top.
func HitTest(p geometry.Point, store Records, ids []string) (string, bool) {
	for i := len(ids) - 1; i >= 0; i-- {
		rec, ok := store.Get(ids[i])
		if ok && rec.Polygon.ContainsPoint(p) {
			return ids[i], true
		}
	}
	return "", false
}

func signOf(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
