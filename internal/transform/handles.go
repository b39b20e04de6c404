package transform

import (
	"fmt"
	"math"

	"github.com/inamate/stickerstage/internal/geometry"
)

// Handle identifies one of the eight resize handles on a selection outline.
type Handle string

const (
	HandleN  Handle = "top"
	HandleNE Handle = "top-right"
	HandleE  Handle = "right"
	HandleSE Handle = "bottom-right"
	HandleS  Handle = "bottom"
	HandleSW Handle = "bottom-left"
	HandleW  Handle = "left"
	HandleNW Handle = "top-left"
)

// Handles lists every handle clockwise from the top.
var Handles = []Handle{HandleN, HandleNE, HandleE, HandleSE, HandleS, HandleSW, HandleW, HandleNW}

var handlePositions = map[Handle]geometry.Point{
	HandleN:  {X: 0.5, Y: 0},
	HandleNE: {X: 1, Y: 0},
	HandleE:  {X: 1, Y: 0.5},
	HandleSE: {X: 1, Y: 1},
	HandleS:  {X: 0.5, Y: 1},
	HandleSW: {X: 0, Y: 1},
	HandleW:  {X: 0, Y: 0.5},
	HandleNW: {X: 0, Y: 0},
}

// ParseHandle validates a handle name coming from an input adapter.
func ParseHandle(s string) (Handle, error) {
	h := Handle(s)
	if _, ok := handlePositions[h]; !ok {
		return "", fmt.Errorf("unknown resize handle %q", s)
	}
	return h, nil
}

// Position is the handle's normalized location on the item.
func (h Handle) Position() geometry.Point {
	return handlePositions[h]
}

// Anchor is the normalized point that stays fixed while this handle is dragged.
func (h Handle) Anchor() geometry.Point {
	p := h.Position()
	return geometry.Pt(1-p.X, 1-p.Y)
}

// ResizesX reports whether dragging the handle changes horizontal scale.
func (h Handle) ResizesX() bool { return h.Position().X != 0.5 }

// ResizesY reports whether dragging the handle changes vertical scale.
func (h Handle) ResizesY() bool { return h.Position().Y != 0.5 }

// ScaleFromHandle scales id so that handle h follows pointer (stage
// coordinates) while the opposite anchor stays fixed. Dragging past the
// anchor mirrors the item. An axis whose natural size is zero is left alone.
func (s *Store) ScaleFromHandle(id string, h Handle, pointer geometry.Point) {
	r, ok := s.items[id]
	if !ok {
		return
	}
	if _, ok := handlePositions[h]; !ok {
		return
	}

	anchor := h.Anchor()
	anchorOnScreen := r.Transform.TransformPoint(r.LocalPoint(anchor))

	// Differences between screen points only see R·S, so undoing R leaves the
	// scaled local offset of the pointer from the anchor.
	local := r.rotationMatrix().Invert().TransformVector(pointer.Sub(anchorOnScreen))
	span := r.LocalPoint(h.Position()).Sub(r.LocalPoint(anchor))

	var sx, sy *float64
	if h.ResizesX() && span.X != 0 {
		v := local.X / span.X
		sx = &v
	}
	if h.ResizesY() && span.Y != 0 {
		v := local.Y / span.Y
		sy = &v
	}
	if sx == nil && sy == nil {
		return
	}

	s.ScaleTo(id, sx, sy, anchor)
}

// RotateTowards turns id so that its rotation handle points at pointer,
// pivoting about the item's center.
func (s *Store) RotateTowards(id string, pointer geometry.Point) {
	r, ok := s.items[id]
	if !ok {
		return
	}

	center := r.Center()
	if pointer.ApproxEqual(center, 1e-9) {
		return
	}
	angle := math.Atan2(pointer.Y-center.Y, pointer.X-center.X)
	if r.Scale.X < 0 {
		angle += math.Pi
	}

	origin := r.ScaledSize().Mul(0.5)
	s.RotateToAround(id, geometry.RadToDeg(angle), &origin)
}
