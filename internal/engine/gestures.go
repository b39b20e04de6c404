package engine

import (
	"github.com/inamate/stickerstage/internal/geometry"
	"github.com/inamate/stickerstage/internal/selection"
	"github.com/inamate/stickerstage/internal/transform"
)

type gestureKind int

const (
	gestureNone gestureKind = iota
	gestureDrag
	gestureResize
	gestureRotate
	gestureMarquee
)

// gesture is one press..release interaction. Drag, resize and rotate hold a
// history capture open for their whole duration.
type gesture struct {
	kind   gestureKind
	id     string
	handle transform.Handle

	start   geometry.Point
	current geometry.Point
	prev    []string // selection before a marquee, restored on cancel
}

func (g gesture) active() bool { return g.kind != gestureNone }

func (g gesture) marquee() geometry.Rect {
	return geometry.RectFromPoints(g.start, g.current)
}

// PressItem handles a pointer press on an item. Without additive the item
// becomes the selection unless it is already part of it; with additive it is
// toggled. When the item ends up selected, a drag of the whole selection
// starts.
func (e *Engine) PressItem(id string, additive bool) error {
	if e.gesture.active() {
		return ErrGestureActive
	}
	if _, ok := e.items.Get(id); !ok {
		return ErrUnknownItem
	}

	switch {
	case additive:
		e.items.ToggleSelect(id)
	case !e.items.IsSelected(id):
		e.items.SelectOne(id)
	}
	if !e.items.IsSelected(id) {
		return nil
	}

	e.history.BeginCapture()
	e.gesture = gesture{kind: gestureDrag, id: id}
	return nil
}

// DragBy moves every selected item by a delta.
func (e *Engine) DragBy(dx, dy float64) error {
	if e.gesture.kind != gestureDrag {
		return ErrNoGesture
	}
	for _, id := range e.items.Selected() {
		e.geo.Translate(id, dx, dy)
	}
	return nil
}

// StartResize grabs a resize handle of the single selected item.
func (e *Engine) StartResize(handle string) error {
	if e.gesture.active() {
		return ErrGestureActive
	}
	h, err := transform.ParseHandle(handle)
	if err != nil {
		return err
	}
	id, err := e.single()
	if err != nil {
		return err
	}

	e.history.BeginCapture()
	e.gesture = gesture{kind: gestureResize, id: id, handle: h}
	return nil
}

// ResizeTo moves the grabbed handle to (x, y).
func (e *Engine) ResizeTo(x, y float64) error {
	if e.gesture.kind != gestureResize {
		return ErrNoGesture
	}
	e.geo.ScaleFromHandle(e.gesture.id, e.gesture.handle, geometry.Pt(x, y))
	return nil
}

// StartRotate grabs the rotation handle of the single selected item.
func (e *Engine) StartRotate() error {
	if e.gesture.active() {
		return ErrGestureActive
	}
	id, err := e.single()
	if err != nil {
		return err
	}

	e.history.BeginCapture()
	e.gesture = gesture{kind: gestureRotate, id: id}
	return nil
}

// RotateTo turns the item so the rotation handle points at (x, y).
func (e *Engine) RotateTo(x, y float64) error {
	if e.gesture.kind != gestureRotate {
		return ErrNoGesture
	}
	e.geo.RotateTowards(e.gesture.id, geometry.Pt(x, y))
	return nil
}

// StartMarquee begins a rubber-band selection at (x, y). The current
// selection is cleared.
func (e *Engine) StartMarquee(x, y float64) error {
	if e.gesture.active() {
		return ErrGestureActive
	}
	p := geometry.Pt(x, y)
	e.gesture = gesture{kind: gestureMarquee, start: p, current: p, prev: e.items.Selected()}
	e.items.SelectNone()
	return nil
}

// UpdateMarquee moves the free corner and selects what the rectangle
// currently covers.
func (e *Engine) UpdateMarquee(x, y float64) error {
	if e.gesture.kind != gestureMarquee {
		return ErrNoGesture
	}
	e.gesture.current = geometry.Pt(x, y)
	e.selectInMarquee()
	return nil
}

// EndMarquee finishes the rubber band. A marquee without area is a click on
// the empty stage and leaves nothing selected.
func (e *Engine) EndMarquee() error {
	if e.gesture.kind != gestureMarquee {
		return ErrNoGesture
	}
	e.selectInMarquee()
	e.gesture = gesture{}
	return nil
}

func (e *Engine) selectInMarquee() {
	r := e.gesture.marquee()
	if r.Width == 0 && r.Height == 0 {
		e.items.SelectNone()
		return
	}
	e.items.SelectMany(selection.SelectInMarquee(r, e.geo, e.items.AllIDs()))
}

// Release ends the gesture in progress. Touched records are normalized so
// their rotation origin is back at the center, then everything that changed
// during the gesture becomes one undo entry.
func (e *Engine) Release() error {
	switch e.gesture.kind {
	case gestureNone:
		return ErrNoGesture
	case gestureMarquee:
		return e.EndMarquee()
	}

	for _, id := range e.items.Selected() {
		e.geo.RecalculatePolygonAndOrigin(id)
	}
	e.history.EndCapture()
	e.gesture = gesture{}
	return nil
}

// Cancel abandons the gesture in progress and puts everything back the way
// it was at the press. It does nothing when no gesture is active.
func (e *Engine) Cancel() {
	switch e.gesture.kind {
	case gestureNone:
		return
	case gestureMarquee:
		e.items.SelectMany(e.gesture.prev)
	default:
		e.history.Abort()
	}
	e.gesture = gesture{}
}

func (e *Engine) single() (string, error) {
	sel := e.items.Selected()
	if len(sel) != 1 {
		return "", ErrSingleSelection
	}
	return sel[0], nil
}
