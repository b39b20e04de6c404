package transform

import "github.com/inamate/stickerstage/internal/geometry"

// Record is the geometry of one stage item.
//
// Records are immutable once stored: every mutator on Store builds a new
// Record for the ids it touches. Pointer identity therefore changes if and only
// if the geometry changed, which is what history diffing relies on.
type Record struct {
	Translate geometry.Point `json:"translate"`
	Scale     geometry.Point `json:"scale"`
	Rotation  float64        `json:"rotation"` // degrees, not normalized

	// RotationOrigin is the pivot for rotation, expressed in the scaled local
	// frame (after Scale, before Rotate).
	RotationOrigin geometry.Point `json:"rotationOrigin"`

	// Natural content size, never negative. Mirroring lives in Scale.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Derived, kept consistent with the fields above by recompute.
	Transform geometry.Matrix2D `json:"transform"`
	Polygon   geometry.Quad     `json:"polygon"`
}

// ComposeTransform builds
// Translate(translate) · Translate(origin) · Rotate(rotation) · Translate(-origin) · Scale(scale).
// The order is load-bearing: pivot math in ScaleTo and RotateToAround is
// solved against exactly this composition.
func ComposeTransform(translate, scale, origin geometry.Point, rotation float64) geometry.Matrix2D {
	return geometry.Translate(translate.X, translate.Y).Then(
		geometry.Translate(origin.X, origin.Y),
		geometry.RotateDegrees(rotation),
		geometry.Translate(-origin.X, -origin.Y),
		geometry.Scale(scale.X, scale.Y),
	)
}

// clone returns a shallow copy the caller may edit before recompute.
func (r *Record) clone() *Record {
	c := *r
	return &c
}

func (r *Record) recompute() {
	r.Transform = ComposeTransform(r.Translate, r.Scale, r.RotationOrigin, r.Rotation)
	r.Polygon = geometry.UnitQuad(r.Transform, r.Width, r.Height)
}

// Clone returns an independent copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	return r.clone()
}

// Size returns the natural content size.
func (r *Record) Size() geometry.Point {
	return geometry.Pt(r.Width, r.Height)
}

// ScaledSize returns the signed on-screen size (before rotation).
func (r *Record) ScaledSize() geometry.Point {
	return geometry.Pt(r.Width*r.Scale.X, r.Height*r.Scale.Y)
}

// LocalPoint converts a normalized 0..1 point into local pre-scale pixels.
func (r *Record) LocalPoint(normalized geometry.Point) geometry.Point {
	return geometry.Pt(normalized.X*r.Width, normalized.Y*r.Height)
}

// Center returns the screen position of the content's center.
func (r *Record) Center() geometry.Point {
	return r.Transform.TransformPoint(r.LocalPoint(geometry.Pt(0.5, 0.5)))
}

// OriginOnScreen returns the screen position of the rotation origin.
func (r *Record) OriginOnScreen() geometry.Point {
	// The origin lives in the scaled frame, which sits under Translate only:
	// T(t)·T(o)·R·T(-o) maps o to t+o.
	return r.Translate.Add(r.RotationOrigin)
}

// rotationMatrix returns the pure rotation part of the record.
func (r *Record) rotationMatrix() geometry.Matrix2D {
	return geometry.RotateDegrees(r.Rotation)
}
