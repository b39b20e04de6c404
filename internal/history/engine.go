// Package history records gestures as reversible actions on a linear
// undo/redo stack.
//
// Geometry and item changes are not described by callers. Instead a gesture
// is bracketed by BeginCapture and EndCapture; the engine keeps the state
// seen at BeginCapture and, at EndCapture, compares it with the live state by
// pointer identity per id. Both stores replace records instead of editing
// them, so a different pointer is a real change.
package history

import (
	"errors"
	"log/slog"
	"maps"
	"slices"

	"github.com/inamate/stickerstage/internal/document"
	"github.com/inamate/stickerstage/internal/transform"
	"github.com/inamate/stickerstage/internal/workspace"
)

var (
	// ErrCaptureOpen is raised by BeginCapture while a capture is running.
	ErrCaptureOpen = errors.New("history: capture already open")
	// ErrNoCapture is raised by EndCapture without a matching BeginCapture.
	ErrNoCapture = errors.New("history: no capture open")
)

// GeometryStore is the geometry state history reads and restores.
type GeometryStore interface {
	Snapshot() transform.Snapshot
	Replace(id string, rec *transform.Record)
}

// ItemStore is the item state history reads and restores.
type ItemStore interface {
	Snapshot() workspace.Snapshot
	Replace(id string, item *document.Item)
}

// Listener is notified with the ids an undo or redo touched.
type Listener func(ids []string)

type Options struct {
	// Strict turns capture discipline violations into panics. Otherwise they
	// are logged and the engine recovers by starting afresh.
	Strict bool
	// Limit caps the number of stored actions; oldest are dropped first.
	// Zero means unlimited.
	Limit int
}

// Engine is the undo/redo stack.
type Engine struct {
	t    target
	opts Options

	actions []Action
	cursor  int // index of the last applied action, -1 when none

	capturing      bool
	beforeGeometry transform.Snapshot
	beforeItems    workspace.Snapshot

	listeners map[int]Listener
	nextSub   int
}

// New creates an engine over the two stores.
func New(geometry GeometryStore, items ItemStore, opts Options) *Engine {
	return &Engine{
		t:         target{geometry: geometry, items: items},
		opts:      opts,
		cursor:    -1,
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers fn for undo/redo notifications.
func (e *Engine) Subscribe(fn Listener) func() {
	id := e.nextSub
	e.nextSub++
	e.listeners[id] = fn
	return func() { delete(e.listeners, id) }
}

func (e *Engine) notify(ids []string) {
	for _, k := range slices.Sorted(maps.Keys(e.listeners)) {
		e.listeners[k](ids)
	}
}

func (e *Engine) violation(err error) {
	if e.opts.Strict {
		panic(err)
	}
	slog.Warn("history capture discipline violated", "error", err)
}

// Capturing reports whether a capture is open.
func (e *Engine) Capturing() bool {
	return e.capturing
}

// BeginCapture remembers the current state as the baseline for the next
// EndCapture.
func (e *Engine) BeginCapture() {
	if e.capturing {
		e.violation(ErrCaptureOpen)
	}
	e.capturing = true
	e.beforeGeometry = e.t.geometry.Snapshot()
	e.beforeItems = e.t.items.Snapshot()
}

// EndCapture closes the capture and pushes what changed since BeginCapture
// as a single action. It returns nil when nothing changed.
func (e *Engine) EndCapture() Action {
	if !e.capturing {
		e.violation(ErrNoCapture)
		return nil
	}

	action := e.diff()
	e.closeCapture()

	if action != nil {
		e.push(action)
	}
	return action
}

// Abort closes the capture without recording and puts back every record
// and item that changed since BeginCapture.
func (e *Engine) Abort() {
	if !e.capturing {
		e.violation(ErrNoCapture)
		return
	}

	action := e.diff()
	e.closeCapture()

	if action != nil {
		action.undo(e.t)
		e.notify(action.IDs())
	}
}

// Capture runs fn inside a capture. EndCapture runs even if fn panics.
func (e *Engine) Capture(fn func()) (action Action) {
	e.BeginCapture()
	defer func() { action = e.EndCapture() }()
	fn()
	return nil
}

func (e *Engine) closeCapture() {
	e.capturing = false
	e.beforeGeometry = nil
	e.beforeItems = nil
}

func (e *Engine) diff() Action {
	var children []Action

	if before, after := diffMaps(e.beforeGeometry, e.t.geometry.Snapshot()); len(before) > 0 {
		children = append(children, &TransformAction{Before: before, After: after})
	}
	if before, after := diffMaps(e.beforeItems, e.t.items.Snapshot()); len(before) > 0 {
		children = append(children, &ModifyAction{Before: before, After: after})
	}

	switch len(children) {
	case 0:
		return nil
	case 1:
		return children[0]
	default:
		return &CompoundAction{Children: children}
	}
}

// diffMaps returns before/after values for every key whose value pointer
// differs. Absent keys show up as nil.
func diffMaps[V any](before, after map[string]*V) (map[string]*V, map[string]*V) {
	b := make(map[string]*V)
	a := make(map[string]*V)
	for id, prev := range before {
		if cur := after[id]; cur != prev {
			b[id] = prev
			a[id] = cur
		}
	}
	for id, cur := range after {
		if _, ok := before[id]; !ok {
			b[id] = nil
			a[id] = cur
		}
	}
	return b, a
}

// Push records an action that was built explicitly.
func (e *Engine) Push(action Action) {
	if action == nil {
		return
	}
	if e.capturing {
		// The action's changes are already live; rebase the open capture so
		// they are not recorded a second time.
		e.violation(ErrCaptureOpen)
		e.beforeGeometry = e.t.geometry.Snapshot()
		e.beforeItems = e.t.items.Snapshot()
	}
	e.push(action)
}

// RecordCreate records that entries were added to the stage.
func (e *Engine) RecordCreate(entries []Entry) {
	if len(entries) == 0 {
		return
	}
	e.Push(&CreateAction{Entries: entries})
}

// RecordDelete records that entries were removed from the stage.
func (e *Engine) RecordDelete(entries []Entry) {
	if len(entries) == 0 {
		return
	}
	e.Push(&DeleteAction{Entries: entries})
}

func (e *Engine) push(action Action) {
	e.actions = append(e.actions[:e.cursor+1], action)
	e.cursor++

	if e.opts.Limit > 0 && len(e.actions) > e.opts.Limit {
		drop := len(e.actions) - e.opts.Limit
		e.actions = slices.Delete(e.actions, 0, drop)
		e.cursor -= drop
	}
}

// Undo reverts the action at the cursor. It reports false at the bottom of
// the stack.
func (e *Engine) Undo() bool {
	if e.capturing {
		e.violation(ErrCaptureOpen)
		e.closeCapture()
	}
	if e.cursor < 0 {
		return false
	}

	action := e.actions[e.cursor]
	action.undo(e.t)
	e.cursor--
	e.notify(action.IDs())
	return true
}

// Redo re-applies the action after the cursor. It reports false at the top
// of the stack.
func (e *Engine) Redo() bool {
	if e.capturing {
		e.violation(ErrCaptureOpen)
		e.closeCapture()
	}
	if e.cursor+1 >= len(e.actions) {
		return false
	}

	action := e.actions[e.cursor+1]
	action.redo(e.t)
	e.cursor++
	e.notify(action.IDs())
	return true
}

// Len returns the number of stored actions, including undone ones.
func (e *Engine) Len() int { return len(e.actions) }

// Cursor returns the index of the last applied action, or -1.
func (e *Engine) Cursor() int { return e.cursor }

func (e *Engine) CanUndo() bool { return e.cursor >= 0 }

func (e *Engine) CanRedo() bool { return e.cursor+1 < len(e.actions) }

// Actions returns the stored actions, oldest first.
func (e *Engine) Actions() []Action {
	return slices.Clone(e.actions)
}

// Clear drops the whole history. An open capture stays open.
func (e *Engine) Clear() {
	e.actions = nil
	e.cursor = -1
}
