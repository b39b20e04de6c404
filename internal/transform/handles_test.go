package transform

import (
	"math"
	"testing"

	"github.com/inamate/stickerstage/internal/geometry"
)

func TestParseHandle(t *testing.T) {
	for _, h := range Handles {
		got, err := ParseHandle(string(h))
		if err != nil || got != h {
			t.Errorf("ParseHandle(%q) = %q, %v", h, got, err)
		}
	}
	if _, err := ParseHandle("middle"); err == nil {
		t.Error("ParseHandle(middle) succeeded")
	}
}

func TestHandleAnchorIsOpposite(t *testing.T) {
	tests := []struct {
		h      Handle
		anchor geometry.Point
		x, y   bool
	}{
		{HandleN, geometry.Pt(0.5, 1), false, true},
		{HandleE, geometry.Pt(0, 0.5), true, false},
		{HandleSE, geometry.Pt(0, 0), true, true},
		{HandleNW, geometry.Pt(1, 1), true, true},
		{HandleSW, geometry.Pt(1, 0), true, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.h), func(t *testing.T) {
			if got := tt.h.Anchor(); got != tt.anchor {
				t.Errorf("Anchor() = %v, want %v", got, tt.anchor)
			}
			if tt.h.ResizesX() != tt.x || tt.h.ResizesY() != tt.y {
				t.Errorf("ResizesX/Y = %v/%v, want %v/%v", tt.h.ResizesX(), tt.h.ResizesY(), tt.x, tt.y)
			}
		})
	}
}

func TestScaleFromHandleFollowsPointer(t *testing.T) {
	for _, rot := range []float64{0, 45, -120} {
		for _, h := range Handles {
			s := NewStore()
			newItem(t, s, "a", 200, 200, 100, 60)
			s.RotateToAround("a", rot, nil)
			before, _ := s.Get("a")
			anchor := screen(before, h.Anchor())

			// Push the handle outwards by half its current offset.
			handle := screen(before, h.Position())
			target := handle.Add(handle.Sub(anchor).Mul(0.5))

			s.ScaleFromHandle("a", h, target)

			after, _ := s.Get("a")
			if got := screen(after, h.Anchor()); !got.ApproxEqual(anchor, eps) {
				t.Errorf("rot=%v %s: anchor moved %v -> %v", rot, h, anchor, got)
			}
			if got := screen(after, h.Position()); !got.ApproxEqual(target, eps) {
				t.Errorf("rot=%v %s: handle at %v, want %v", rot, h, got, target)
			}
		}
	}
}

func TestScaleFromHandleMirrors(t *testing.T) {
	s := NewStore()
	newItem(t, s, "a", 100, 100, 50, 50)

	// Drag the right handle to the left of the left edge.
	s.ScaleFromHandle("a", HandleE, geometry.Pt(50, 125))

	r, _ := s.Get("a")
	if r.Scale.X >= 0 {
		t.Errorf("Scale.X = %v, want negative", r.Scale.X)
	}
	if math.Abs(r.Scale.X+1) > eps {
		t.Errorf("Scale.X = %v, want -1", r.Scale.X)
	}
	if r.Scale.Y != 1 {
		t.Errorf("Scale.Y = %v, want 1", r.Scale.Y)
	}
}

func TestScaleFromHandleZeroSize(t *testing.T) {
	s := NewStore()
	a := newItem(t, s, "a", 10, 10, 0, 0)

	s.ScaleFromHandle("a", HandleSE, geometry.Pt(100, 100))

	if got, _ := s.Get("a"); got != a {
		t.Errorf("zero-size item changed: %+v", got)
	}
}

func TestRotateTowards(t *testing.T) {
	s := NewStore()
	newItem(t, s, "a", 0, 0, 100, 100)
	center := geometry.Pt(50, 50)

	s.RotateTowards("a", geometry.Pt(50, 150))

	r, _ := s.Get("a")
	if math.Abs(r.Rotation-90) > eps {
		t.Errorf("Rotation = %v, want 90", r.Rotation)
	}
	if got := r.Center(); !got.ApproxEqual(center, eps) {
		t.Errorf("center moved to %v", got)
	}
}

func TestRotateTowardsCenterKeepsAngle(t *testing.T) {
	s := NewStore()
	newItem(t, s, "a", 0, 0, 100, 100)
	s.RotateTowards("a", geometry.Pt(50, 150))
	before, _ := s.Get("a")

	s.RotateTowards("a", before.Center())

	if after, _ := s.Get("a"); after != before {
		t.Errorf("Rotation = %v, want unchanged %v", after.Rotation, before.Rotation)
	}
}

func TestRotateTowardsMirrored(t *testing.T) {
	s := NewStore()
	newItem(t, s, "a", 0, 0, 100, 100)
	s.ScaleTo("a", f(-1), nil, geometry.Pt(0.5, 0.5))

	s.RotateTowards("a", geometry.Pt(150, 50))

	r, _ := s.Get("a")
	if math.Abs(r.Rotation-180) > eps {
		t.Errorf("Rotation = %v, want 180", r.Rotation)
	}
}
