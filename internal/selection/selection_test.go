package selection

import (
	"math"
	"slices"
	"testing"

	"github.com/inamate/stickerstage/internal/geometry"
	"github.com/inamate/stickerstage/internal/transform"
)

const eps = 1e-9

func f(v float64) *float64 { return &v }

func place(s *transform.Store, id string, x, y, w, h float64) *transform.Record {
	s.Create(id, transform.CreateOptions{X: f(x), Y: f(y), Width: f(w), Height: f(h)})
	rec, _ := s.Get(id)
	return rec
}

func get(s *transform.Store, id string) *transform.Record {
	rec, _ := s.Get(id)
	return rec
}

func samePolygon(t *testing.T, got, want geometry.Quad) {
	t.Helper()
	for i := range want {
		if !got[i].ApproxEqual(want[i], 1e-6) {
			t.Errorf("corner %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBoundingBoxOfUnrotated(t *testing.T) {
	s := transform.NewStore()
	rec := place(s, "a", 30, 40, 100, 50)

	box := BoundingBoxOf(rec)
	if box.Width != 100 || box.Height != 50 {
		t.Errorf("size = %vx%v, want 100x50", box.Width, box.Height)
	}
	if !box.Transform.ApproxEqual(geometry.Translate(30, 40), eps) {
		t.Errorf("Transform = %v, want translate(30,40)", box.Transform)
	}
	if box.Rotation != 0 {
		t.Errorf("Rotation = %v, want 0", box.Rotation)
	}
}

func TestBoundingBoxOfMirrored(t *testing.T) {
	tests := []struct {
		name   string
		sx, sy *float64
		deg    float64
	}{
		{"flip x", f(-1), nil, 0},
		{"flip y", nil, f(-1), 0},
		{"flip both rotated", f(-2), f(-0.5), 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := transform.NewStore()
			place(s, "a", 10, 10, 100, 50)
			s.ScaleTo("a", tt.sx, tt.sy, geometry.Pt(0.5, 0.5))
			s.RotateToAround("a", tt.deg, nil)
			rec := get(s, "a")

			box := BoundingBoxOf(rec)
			if box.Width < 0 || box.Height < 0 {
				t.Fatalf("size = %vx%v, want non-negative", box.Width, box.Height)
			}
			wantW := math.Abs(rec.Width * rec.Scale.X)
			if math.Abs(box.Width-wantW) > eps {
				t.Errorf("Width = %v, want %v", box.Width, wantW)
			}
			samePolygon(t, box.Polygon(), rec.Polygon)
		})
	}
}

func TestBoundingBoxOfMany(t *testing.T) {
	s := transform.NewStore()
	a := place(s, "a", 0, 0, 10, 10)
	b := place(s, "b", 20, 30, 10, 10)

	box := BoundingBoxOfMany([]*transform.Record{a, b})
	if box.Width != 30 || box.Height != 40 {
		t.Errorf("size = %vx%v, want 30x40", box.Width, box.Height)
	}
	if !box.Transform.ApproxEqual(geometry.Identity(), eps) || box.Rotation != 0 {
		t.Errorf("box = %+v, want unrotated at origin", box)
	}

	place(s, "c", 150, 150, 100, 100)
	s.RotateToAround("c", 45, nil)
	box = BoundingBoxOfMany([]*transform.Record{get(s, "c")})
	half := 50 * math.Sqrt2
	origin := box.Transform.TransformPoint(geometry.Pt(0, 0))
	if !origin.ApproxEqual(geometry.Pt(200-half, 200-half), 1e-6) {
		t.Errorf("anchor = %v, want min corner", origin)
	}
	if math.Abs(box.Width-2*half) > 1e-6 {
		t.Errorf("Width = %v, want %v", box.Width, 2*half)
	}
}

func TestBoundingBoxOfIDs(t *testing.T) {
	s := transform.NewStore()
	place(s, "a", 0, 0, 10, 10)
	place(s, "b", 20, 0, 10, 10)
	s.RotateToAround("a", 90, nil)

	if _, ok := BoundingBoxOfIDs(s, []string{"missing"}); ok {
		t.Error("BoundingBoxOfIDs(missing) ok = true")
	}
	one, _ := BoundingBoxOfIDs(s, []string{"a", "missing"})
	if one.Rotation != 90 {
		t.Errorf("single box Rotation = %v, want 90", one.Rotation)
	}
	many, _ := BoundingBoxOfIDs(s, []string{"a", "b"})
	if many.Rotation != 0 || math.Abs(many.Width-30) > 1e-6 {
		t.Errorf("multi box = %+v, want unrotated 30 wide", many)
	}
}

func TestMarquee(t *testing.T) {
	s := transform.NewStore()
	// 100x100 diamond centered on (200,200), top vertex at (200, 129.29).
	place(s, "diamond", 150, 150, 100, 100)
	s.RotateToAround("diamond", 45, nil)
	// Large rotated square centered on (200,200) as well.
	place(s, "big", 0, 0, 400, 400)
	s.RotateToAround("big", 30, nil)

	tests := []struct {
		name string
		id   string
		rect geometry.Rect
		want bool
	}{
		{"encloses item", "diamond", geometry.Rect{X: 100, Y: 100, Width: 200, Height: 200}, true},
		{"enclosed by item", "big", geometry.Rect{X: 190, Y: 190, Width: 20, Height: 20}, true},
		{"grazes corner", "diamond", geometry.Rect{X: 195, Y: 125, Width: 10, Height: 10}, true},
		{"crosses edge", "diamond", geometry.Rect{X: 100, Y: 195, Width: 60, Height: 10}, true},
		{"inside bbox only", "diamond", geometry.Rect{X: 130, Y: 130, Width: 10, Height: 10}, false},
		{"disjoint", "diamond", geometry.Rect{X: 600, Y: 600, Width: 10, Height: 10}, false},
		{"dragged up-left", "diamond", geometry.Rect{X: 300, Y: 300, Width: -200, Height: -200}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Marquee(tt.rect, get(s, tt.id)); got != tt.want {
				t.Errorf("Marquee(%+v) = %v, want %v", tt.rect, got, tt.want)
			}
		})
	}
}

func TestSelectInMarquee(t *testing.T) {
	s := transform.NewStore()
	place(s, "a", 0, 0, 10, 10)
	place(s, "b", 100, 100, 10, 10)
	place(s, "c", 5, 5, 10, 10)

	got := SelectInMarquee(geometry.Rect{X: -1, Y: -1, Width: 20, Height: 20}, s, []string{"c", "b", "a", "gone"})
	if !slices.Equal(got, []string{"c", "a"}) {
		t.Errorf("SelectInMarquee = %v, want [c a]", got)
	}
}

func TestHitTest(t *testing.T) {
	s := transform.NewStore()
	place(s, "bottom", 0, 0, 100, 100)
	place(s, "top", 50, 50, 100, 100)
	place(s, "empty", 0, 0, 0, 0)
	order := []string{"bottom", "top"}

	tests := []struct {
		name   string
		p      geometry.Point
		want   string
		wantOK bool
	}{
		{"overlap picks top", geometry.Pt(75, 75), "top", true},
		{"bottom only", geometry.Pt(10, 10), "bottom", true},
		{"miss", geometry.Pt(500, 500), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := HitTest(tt.p, s, order)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("HitTest(%v) = %q, %v; want %q, %v", tt.p, got, ok, tt.want, tt.wantOK)
			}
		})
	}

	if id, _ := HitTest(geometry.Pt(10, 10), s, []string{"bottom", "empty"}); id != "bottom" {
		t.Errorf("zero-size item caught a click: %q", id)
	}
}
