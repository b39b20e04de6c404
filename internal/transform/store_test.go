package transform

import (
	"math"
	"testing"

	"github.com/inamate/stickerstage/internal/geometry"
)

const eps = 1e-6

func f(v float64) *float64 { return &v }

func newItem(t *testing.T, s *Store, id string, x, y, w, h float64) *Record {
	t.Helper()
	s.Create(id, CreateOptions{X: f(x), Y: f(y), Width: f(w), Height: f(h)})
	r, ok := s.Get(id)
	if !ok {
		t.Fatalf("Create(%q) did not insert a record", id)
	}
	return r
}

func screen(r *Record, normalized geometry.Point) geometry.Point {
	return r.Transform.TransformPoint(r.LocalPoint(normalized))
}

func assertConsistent(t *testing.T, r *Record) {
	t.Helper()
	want := ComposeTransform(r.Translate, r.Scale, r.RotationOrigin, r.Rotation)
	if !r.Transform.ApproxEqual(want, eps) {
		t.Errorf("Transform = %v, want %v", r.Transform, want)
	}
	quad := geometry.UnitQuad(r.Transform, r.Width, r.Height)
	for i := range quad {
		if !r.Polygon[i].ApproxEqual(quad[i], eps) {
			t.Errorf("Polygon[%d] = %v, want %v", i, r.Polygon[i], quad[i])
		}
	}
	if r.Width < 0 || r.Height < 0 {
		t.Errorf("negative natural size %vx%v", r.Width, r.Height)
	}
}

func TestCreateDefaults(t *testing.T) {
	s := NewStore()
	s.Create("a", CreateOptions{})

	r, ok := s.Get("a")
	if !ok {
		t.Fatal("record missing")
	}
	if r.Translate != geometry.Pt(0, 0) || r.Scale != geometry.Pt(1, 1) || r.Rotation != 0 {
		t.Errorf("unexpected defaults %+v", r)
	}
	if r.Width != 0 || r.Height != 0 {
		t.Errorf("size = %vx%v, want 0x0", r.Width, r.Height)
	}
	if !r.Transform.IsIdentity() {
		t.Errorf("Transform = %v, want identity", r.Transform)
	}
}

func TestCreateIsIdempotent(t *testing.T) {
	s := NewStore()
	first := newItem(t, s, "a", 10, 20, 100, 50)
	s.Translate("a", 5, 5)
	moved, _ := s.Get("a")

	s.Create("a", CreateOptions{X: f(0), Y: f(0)})

	got, _ := s.Get("a")
	if got != moved {
		t.Error("second Create replaced the record")
	}
	if got == first {
		t.Error("Translate did not produce a new record")
	}
}

func TestUnknownIDIsNoop(t *testing.T) {
	s := NewStore()
	calls := 0
	s.Subscribe(func([]string) { calls++ })

	s.Translate("ghost", 1, 1)
	s.TranslateTo("ghost", 1, 1)
	s.RotateToAround("ghost", 45, nil)
	s.ScaleTo("ghost", f(2), nil, geometry.Pt(0, 0))
	s.ScaleFromHandle("ghost", HandleE, geometry.Pt(5, 5))
	s.RotateTowards("ghost", geometry.Pt(5, 5))
	s.Resize("ghost", f(10), f(10))
	s.RecalculatePolygonAndOrigin("ghost")
	s.Remove("ghost")

	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if calls != 0 {
		t.Errorf("listener called %d times, want 0", calls)
	}
}

func TestMutatorsReplaceOnlyTouchedRecords(t *testing.T) {
	s := NewStore()
	a := newItem(t, s, "a", 0, 0, 10, 10)
	b := newItem(t, s, "b", 50, 50, 10, 10)

	s.Translate("a", 3, 4)

	gotA, _ := s.Get("a")
	gotB, _ := s.Get("b")
	if gotA == a {
		t.Error("touched record kept its pointer")
	}
	if gotB != b {
		t.Error("untouched record was replaced")
	}
	if a.Translate != geometry.Pt(0, 0) {
		t.Errorf("old record mutated in place: %v", a.Translate)
	}
	assertConsistent(t, gotA)
}

func TestNoChangeKeepsPointer(t *testing.T) {
	s := NewStore()
	a := newItem(t, s, "a", 7, 8, 10, 10)

	s.TranslateTo("a", 7, 8)
	s.Translate("a", 0, 0)
	s.RecalculatePolygonAndOrigin("a")

	if got, _ := s.Get("a"); got != a {
		t.Error("no-op mutation replaced the record")
	}
}

func TestTranslate(t *testing.T) {
	s := NewStore()
	newItem(t, s, "a", 10, 10, 20, 20)

	s.Translate("a", 5, -3)
	r, _ := s.Get("a")
	if r.Translate != geometry.Pt(15, 7) {
		t.Errorf("Translate = %v, want (15,7)", r.Translate)
	}

	s.TranslateTo("a", 100, 200)
	r, _ = s.Get("a")
	if r.Translate != geometry.Pt(100, 200) {
		t.Errorf("TranslateTo = %v, want (100,200)", r.Translate)
	}
	assertConsistent(t, r)
}

func TestRotateToAroundPivotsAboutOrigin(t *testing.T) {
	s := NewStore()
	newItem(t, s, "a", 100, 100, 40, 20)
	before, _ := s.Get("a")
	center := before.Center()

	s.RotateToAround("a", 90, nil)
	r, _ := s.Get("a")
	if r.Rotation != 90 {
		t.Errorf("Rotation = %v, want 90", r.Rotation)
	}
	if got := r.Center(); !got.ApproxEqual(center, eps) {
		t.Errorf("center moved from %v to %v", center, got)
	}
	assertConsistent(t, r)
}

func TestRotateToAroundNewOriginDoesNotJump(t *testing.T) {
	s := NewStore()
	newItem(t, s, "a", 0, 0, 40, 20)
	s.RotateToAround("a", 30, nil)
	before, _ := s.Get("a")

	// Same angle, new origin: the picture must stay where it is.
	corner := geometry.Pt(0, 0)
	s.RotateToAround("a", 30, &corner)
	after, _ := s.Get("a")
	if !after.Transform.ApproxEqual(before.Transform, eps) {
		t.Errorf("transform changed on origin move: %v -> %v", before.Transform, after.Transform)
	}

	// New angle now pivots about the top-left corner.
	pivot := screen(after, geometry.Pt(0, 0))
	s.RotateToAround("a", 75, nil)
	rotated, _ := s.Get("a")
	if got := screen(rotated, geometry.Pt(0, 0)); !got.ApproxEqual(pivot, eps) {
		t.Errorf("pivot moved from %v to %v", pivot, got)
	}
}

func TestScaleToKeepsOriginFixed(t *testing.T) {
	origins := []geometry.Point{
		geometry.Pt(0, 0), geometry.Pt(1, 1), geometry.Pt(0.5, 0.5),
		geometry.Pt(1, 0), geometry.Pt(0, 0.5),
	}
	for _, rot := range []float64{0, 30, 145, -60} {
		for _, o := range origins {
			s := NewStore()
			newItem(t, s, "a", 40, 60, 100, 50)
			s.RotateToAround("a", rot, nil)
			before, _ := s.Get("a")
			pin := screen(before, o)

			s.ScaleTo("a", f(2.5), f(-0.5), o)

			after, _ := s.Get("a")
			if got := screen(after, o); !got.ApproxEqual(pin, eps) {
				t.Errorf("rot=%v origin=%v: pivot moved %v -> %v", rot, o, pin, got)
			}
			if after.Scale != geometry.Pt(2.5, -0.5) {
				t.Errorf("Scale = %v", after.Scale)
			}
			assertConsistent(t, after)
		}
	}
}

func TestScaleToNilAxisUntouched(t *testing.T) {
	s := NewStore()
	newItem(t, s, "a", 0, 0, 10, 10)
	s.ScaleTo("a", nil, f(3), geometry.Pt(0, 0))

	r, _ := s.Get("a")
	if r.Scale != geometry.Pt(1, 3) {
		t.Errorf("Scale = %v, want (1,3)", r.Scale)
	}
}

func TestScaleToZeroSizeLeavesTranslate(t *testing.T) {
	s := NewStore()
	newItem(t, s, "a", 12, 34, 0, 0)
	s.RotateToAround("a", 20, nil)

	s.ScaleTo("a", f(4), f(4), geometry.Pt(1, 1))

	r, _ := s.Get("a")
	if r.Translate != geometry.Pt(12, 34) {
		t.Errorf("Translate = %v, want (12,34)", r.Translate)
	}
	if !r.Transform.IsFinite() {
		t.Errorf("non-finite transform %v", r.Transform)
	}
}

func TestNonFiniteInputRejected(t *testing.T) {
	s := NewStore()
	a := newItem(t, s, "a", 0, 0, 10, 10)

	s.ScaleTo("a", f(math.Inf(1)), nil, geometry.Pt(0.5, 0.5))
	s.Translate("a", math.NaN(), 0)
	s.RotateToAround("a", math.Inf(-1), nil)

	if got, _ := s.Get("a"); got != a {
		t.Errorf("non-finite update accepted: %+v", got)
	}
}

func TestResizeDoesNotMove(t *testing.T) {
	s := NewStore()
	newItem(t, s, "a", 30, 40, 0, 0)

	s.Resize("a", f(200), f(100))
	r, _ := s.Get("a")
	if r.Translate != geometry.Pt(30, 40) {
		t.Errorf("Translate = %v, want (30,40)", r.Translate)
	}
	if r.Width != 200 || r.Height != 100 {
		t.Errorf("size = %vx%v, want 200x100", r.Width, r.Height)
	}
	assertConsistent(t, r)

	s.Resize("a", f(-5), nil)
	r, _ = s.Get("a")
	if r.Width != 200 {
		t.Errorf("negative width accepted: %v", r.Width)
	}
}

func TestRecalculatePreservesOriginOnScreen(t *testing.T) {
	s := NewStore()
	newItem(t, s, "a", 10, 20, 120, 80)

	s.Translate("a", 15, -5)
	s.RotateToAround("a", 37, nil)
	s.ScaleTo("a", f(1.7), nil, geometry.Pt(0, 0.5))
	s.ScaleTo("a", nil, f(-0.8), geometry.Pt(0.5, 1))
	s.RotateToAround("a", -110, nil)
	s.ScaleTo("a", f(-2), f(0.6), geometry.Pt(1, 0))

	before, _ := s.Get("a")
	pinned := before.OriginOnScreen()
	local := geometry.Pt(before.RotationOrigin.X/before.Scale.X, before.RotationOrigin.Y/before.Scale.Y)

	s.RecalculatePolygonAndOrigin("a")

	after, _ := s.Get("a")
	if got := after.Transform.TransformPoint(local); !got.ApproxEqual(pinned, eps) {
		t.Errorf("origin moved on screen: %v -> %v", pinned, got)
	}
	if !after.Transform.ApproxEqual(before.Transform, eps) {
		t.Errorf("transform changed: %v -> %v", before.Transform, after.Transform)
	}
	half := after.ScaledSize().Mul(0.5)
	if !after.RotationOrigin.ApproxEqual(half, eps) {
		t.Errorf("RotationOrigin = %v, want %v", after.RotationOrigin, half)
	}
	assertConsistent(t, after)
}

func TestRepeatedGesturesDoNotDrift(t *testing.T) {
	s := NewStore()
	newItem(t, s, "a", 0, 0, 100, 100)

	for i := 0; i < 50; i++ {
		s.RotateToAround("a", float64(i*7), nil)
		s.ScaleTo("a", f(1+float64(i%3)*0.1), nil, geometry.Pt(0, 0))
		s.RecalculatePolygonAndOrigin("a")
	}
	s.RotateToAround("a", 0, nil)
	s.ScaleTo("a", f(1), f(1), geometry.Pt(0.5, 0.5))
	s.RecalculatePolygonAndOrigin("a")

	r, _ := s.Get("a")
	if math.Abs(r.Scale.X-1) > eps || math.Abs(r.Scale.Y-1) > eps {
		t.Errorf("Scale = %v", r.Scale)
	}
	if math.Abs(r.Polygon.Bounds().Width-100) > eps {
		t.Errorf("width drifted to %v", r.Polygon.Bounds().Width)
	}
}

func TestReplaceAndReset(t *testing.T) {
	s := NewStore()
	a := newItem(t, s, "a", 0, 0, 10, 10)
	newItem(t, s, "b", 0, 0, 10, 10)

	var seen [][]string
	s.Subscribe(func(ids []string) { seen = append(seen, ids) })

	s.Replace("c", a)
	if got, _ := s.Get("c"); got != a {
		t.Error("Replace did not install pointer verbatim")
	}
	s.Replace("c", nil)
	if _, ok := s.Get("c"); ok {
		t.Error("Replace(nil) did not remove")
	}

	s.Reset()
	if s.Len() != 0 {
		t.Errorf("Len() after Reset = %d", s.Len())
	}
	if len(seen) != 3 {
		t.Fatalf("notifications = %v, want 3", seen)
	}
	if got := seen[2]; len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Reset notified %v, want [a b]", got)
	}
}

func TestSnapshotSharesRecords(t *testing.T) {
	s := NewStore()
	a := newItem(t, s, "a", 0, 0, 10, 10)
	snap := s.Snapshot()

	s.Translate("a", 1, 1)

	if snap["a"] != a {
		t.Error("snapshot lost original record")
	}
	if cur, _ := s.Get("a"); cur == snap["a"] {
		t.Error("snapshot aliased the live record")
	}
}
