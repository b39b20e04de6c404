package transform

import (
	"log/slog"
	"maps"
	"math"
	"slices"

	"github.com/inamate/stickerstage/internal/geometry"
)

// Listener is notified synchronously with the ids a mutation touched.
type Listener func(ids []string)

// Snapshot is a point-in-time view of the store. Records are shared with the
// live store, so taking one costs a map copy and nothing per record.
type Snapshot map[string]*Record

// CreateOptions seeds a new record. Nil fields take defaults.
type CreateOptions struct {
	X      *float64
	Y      *float64
	Width  *float64
	Height *float64
}

// Store owns one geometry record per item id.
//
// Every operation on an unknown id is a silent no-op: a drag may still be
// in flight when its item is deleted.
type Store struct {
	items     map[string]*Record
	listeners map[int]Listener
	nextSub   int
}

// NewStore creates an empty geometry store.
func NewStore() *Store {
	return &Store{
		items:     make(map[string]*Record),
		listeners: make(map[int]Listener),
	}
}

// Get returns the current record for id. The record must not be modified.
func (s *Store) Get(id string) (*Record, bool) {
	r, ok := s.items[id]
	return r, ok
}

// IDs returns all ids in sorted order.
func (s *Store) IDs() []string {
	return slices.Sorted(maps.Keys(s.items))
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.items)
}

// Snapshot returns the current state keyed by id.
func (s *Store) Snapshot() Snapshot {
	return maps.Clone(s.items)
}

// Subscribe registers fn for change notifications and returns a func that
// removes it.
func (s *Store) Subscribe(fn Listener) func() {
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

func (s *Store) notify(ids ...string) {
	for _, k := range slices.Sorted(maps.Keys(s.listeners)) {
		s.listeners[k](ids)
	}
}

// Create inserts a record for id. A second Create for the same id does
// nothing, so a late content load cannot clobber a gesture in progress.
func (s *Store) Create(id string, opts CreateOptions) {
	if _, ok := s.items[id]; ok {
		return
	}

	r := &Record{Scale: geometry.Pt(1, 1)}
	if opts.X != nil {
		r.Translate.X = *opts.X
	}
	if opts.Y != nil {
		r.Translate.Y = *opts.Y
	}
	if opts.Width != nil && validSize(*opts.Width) {
		r.Width = *opts.Width
	}
	if opts.Height != nil && validSize(*opts.Height) {
		r.Height = *opts.Height
	}
	r.RotationOrigin = geometry.Pt(r.Width/2, r.Height/2)
	r.recompute()

	if !r.Transform.IsFinite() {
		slog.Warn("rejected non-finite geometry", "id", id, "op", "create")
		return
	}

	s.items[id] = r
	s.notify(id)
}

// update applies fn to a copy of the record and installs the copy. Updates
// that leave the record unchanged keep the old pointer; updates that would
// produce a non-finite transform are dropped.
func (s *Store) update(id, op string, fn func(r *Record)) bool {
	cur, ok := s.items[id]
	if !ok {
		return false
	}

	next := cur.clone()
	fn(next)
	next.recompute()

	if !next.Transform.IsFinite() {
		slog.Warn("rejected non-finite geometry", "id", id, "op", op)
		return false
	}
	if *next == *cur {
		return false
	}

	s.items[id] = next
	s.notify(id)
	return true
}

// Translate moves the item by a delta.
func (s *Store) Translate(id string, dx, dy float64) {
	s.update(id, "translate", func(r *Record) {
		r.Translate = r.Translate.Add(geometry.Pt(dx, dy))
	})
}

// TranslateTo sets the position absolutely.
func (s *Store) TranslateTo(id string, x, y float64) {
	s.update(id, "translateTo", func(r *Record) {
		r.Translate = geometry.Pt(x, y)
	})
}

// RotateToAround sets the rotation in degrees. When origin is given it
// becomes the new rotation origin; translate is re-anchored first so that the
// current picture does not move, then the new angle pivots about origin.
func (s *Store) RotateToAround(id string, degrees float64, origin *geometry.Point) {
	s.update(id, "rotateToAround", func(r *Record) {
		if origin != nil && *origin != r.RotationOrigin {
			r.Translate = reanchor(r, *origin)
			r.RotationOrigin = *origin
		}
		r.Rotation = degrees
	})
}

// ScaleTo sets one or both scale axes. origin is normalized (0..1) in local
// space and names the point that stays fixed on screen. A nil axis keeps its
// current scale.
func (s *Store) ScaleTo(id string, scaleX, scaleY *float64, origin geometry.Point) {
	s.update(id, "scaleTo", func(r *Record) {
		next := r.Scale
		if scaleX != nil {
			next.X = *scaleX
		}
		if scaleY != nil {
			next.Y = *scaleY
		}

		// With M = T(t)·T(o)·R·T(-o)·S the pivot p lands at t + o + R(S·p − o).
		// Holding that fixed while S changes to S' gives t' = t + R((S − S')·p).
		// An axis with zero natural size contributes nothing to p, so translate
		// stays put on that axis.
		p := r.LocalPoint(origin)
		if r.Width == 0 {
			p.X = 0
		}
		if r.Height == 0 {
			p.Y = 0
		}
		shift := geometry.Pt((r.Scale.X-next.X)*p.X, (r.Scale.Y-next.Y)*p.Y)
		r.Translate = r.Translate.Add(r.rotationMatrix().TransformVector(shift))
		r.Scale = next
	})
}

// Resize sets the natural content size, typically once a picture decodes or
// text reflows. Position is left alone. Negative or non-finite sizes are
// ignored.
func (s *Store) Resize(id string, width, height *float64) {
	s.update(id, "resize", func(r *Record) {
		if width != nil && validSize(*width) {
			r.Width = *width
		}
		if height != nil && validSize(*height) {
			r.Height = *height
		}
	})
}

// RecalculatePolygonAndOrigin normalizes a record after a gesture: the
// rotation origin moves to the center of the scaled box and translate is
// re-anchored so that every screen point stays where it was.
func (s *Store) RecalculatePolygonAndOrigin(id string) {
	s.update(id, "recalculate", func(r *Record) {
		center := r.ScaledSize().Mul(0.5)
		r.Translate = reanchor(r, center)
		r.RotationOrigin = center
	})
}

// Replace installs rec verbatim under id, or removes id when rec is nil.
// History restore depends on the exact pointer being kept.
func (s *Store) Replace(id string, rec *Record) {
	if rec == nil {
		s.Remove(id)
		return
	}
	if cur, ok := s.items[id]; ok && cur == rec {
		return
	}
	s.items[id] = rec
	s.notify(id)
}

// Remove deletes the record for id.
func (s *Store) Remove(id string) {
	if _, ok := s.items[id]; !ok {
		return
	}
	delete(s.items, id)
	s.notify(id)
}

// Reset drops every record.
func (s *Store) Reset() {
	if len(s.items) == 0 {
		return
	}
	ids := s.IDs()
	s.items = make(map[string]*Record)
	s.notify(ids...)
}

// reanchor returns the translate that keeps the transform unchanged when the
// rotation origin moves to origin: t' = t + (I − R)(o − o').
func reanchor(r *Record, origin geometry.Point) geometry.Point {
	delta := r.RotationOrigin.Sub(origin)
	return r.Translate.Add(delta).Sub(r.rotationMatrix().TransformVector(delta))
}

func validSize(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}
