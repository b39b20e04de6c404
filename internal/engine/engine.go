// Package engine is the editing session: it owns the stage stores, turns
// input commands into store mutations bracketed for undo, and answers
// render and selection queries as JSON.
package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/inamate/stickerstage/internal/clipboard"
	"github.com/inamate/stickerstage/internal/document"
	"github.com/inamate/stickerstage/internal/geometry"
	"github.com/inamate/stickerstage/internal/history"
	"github.com/inamate/stickerstage/internal/measure"
	"github.com/inamate/stickerstage/internal/selection"
	"github.com/inamate/stickerstage/internal/transform"
	"github.com/inamate/stickerstage/internal/workspace"
)

var (
	ErrUnknownItem     = errors.New("unknown item")
	ErrGestureActive   = errors.New("a gesture is already in progress")
	ErrNoGesture       = errors.New("no gesture in progress")
	ErrSingleSelection = errors.New("exactly one item must be selected")
	ErrWrongKind       = errors.New("item kind does not support this edit")
)

// defaultShapeSize is the side of a newly added shape.
const defaultShapeSize = 120

// Options configures a session.
type Options struct {
	Stage         workspace.Stage
	HistoryLimit  int
	StrictCapture bool
}

// DefaultOptions returns a 512x512 white stage with unlimited history.
func DefaultOptions() Options {
	return Options{Stage: workspace.Stage{Width: 512, Height: 512, Color: "white"}}
}

// TextMeasurer returns the natural size of text at a font size.
type TextMeasurer func(text string, fontSize float64) (measure.Size, error)

// Engine is one editing session. It processes commands from the frontend
// and returns query results. It is not safe for concurrent use.
type Engine struct {
	items     *workspace.Store
	geo       *transform.Store
	history   *history.Engine
	clipboard *clipboard.Store

	measureText TextMeasurer

	gesture gesture

	// Retained scene graph, rebuilt when a store reports a change.
	sceneGraph *SceneGraph
	dirty      bool
}

// NewEngine creates a session with an empty stage.
func NewEngine(opts Options) *Engine {
	items := workspace.NewStore(opts.Stage)
	geo := transform.NewStore()

	e := &Engine{
		items:       items,
		geo:         geo,
		history:     history.New(geo, items, history.Options{Strict: opts.StrictCapture, Limit: opts.HistoryLimit}),
		clipboard:   clipboard.New(items, geo),
		measureText: measure.Text,
		sceneGraph:  NewSceneGraph(),
		dirty:       true,
	}
	markDirty := func([]string) { e.dirty = true }
	items.Subscribe(markDirty)
	geo.Subscribe(markDirty)
	return e
}

// SetTextMeasurer replaces the text measurement used for text items.
func (e *Engine) SetTextMeasurer(m TextMeasurer) {
	e.measureText = m
}

// --- Content ---

// AddPicture places a picture of the given natural size in the middle of the
// stage, shrunk to fit if it is larger than the stage.
func (e *Engine) AddPicture(assetID, name string, width, height float64) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("picture %s: invalid size %vx%v", assetID, width, height)
	}
	return e.place(document.NewPicture(assetID, name, width, height), measure.Size{Width: width, Height: height})
}

// AddText places a text item with the default look.
func (e *Engine) AddText() (string, error) {
	it := document.NewText()
	size, err := e.measureText(it.Text.Text, it.Text.FontSize)
	if err != nil {
		return "", fmt.Errorf("measure text: %w", err)
	}
	return e.place(it, size)
}

// AddShape places a rect or circle.
func (e *Engine) AddShape(variant string) (string, error) {
	it := document.NewShape(document.ShapeVariant(variant))
	if err := it.Validate(); err != nil {
		return "", err
	}
	return e.place(it, measure.Size{Width: defaultShapeSize, Height: defaultShapeSize})
}

func (e *Engine) place(it *document.Item, size measure.Size) (string, error) {
	if e.gesture.active() {
		return "", ErrGestureActive
	}

	if e.items.Len() > 0 {
		it.Layer = e.items.MaxLayer() + 1
	}
	stage := e.items.Stage()
	x := (stage.Width - size.Width) / 2
	y := (stage.Height - size.Height) / 2

	e.items.Upsert(it)
	e.geo.Create(it.ID, transform.CreateOptions{X: &x, Y: &y, Width: &size.Width, Height: &size.Height})

	if fit := min(stage.Width/size.Width, stage.Height/size.Height); size.Width > 0 && size.Height > 0 && fit < 1 {
		e.geo.ScaleTo(it.ID, &fit, &fit, geometry.Pt(0.5, 0.5))
		e.geo.RecalculatePolygonAndOrigin(it.ID)
	}

	e.history.RecordCreate(e.entries([]string{it.ID}))
	e.items.SelectOne(it.ID)
	return it.ID, nil
}

// MeasureContent reports the natural size of an item once its content has
// loaded. The item keeps its on-screen position and is not recorded for undo.
func (e *Engine) MeasureContent(id string, width, height float64) {
	e.geo.Resize(id, &width, &height)
	e.geo.RecalculatePolygonAndOrigin(id)
}

func (e *Engine) remeasure(id string) {
	it, ok := e.items.Get(id)
	if !ok || it.Text == nil {
		return
	}
	size, err := e.measureText(it.Text.Text, it.Text.FontSize)
	if err != nil {
		slog.Warn("text measurement failed", "id", id, "error", err)
		return
	}
	e.MeasureContent(id, size.Width, size.Height)
}

func (e *Engine) entries(ids []string) []history.Entry {
	var out []history.Entry
	for _, id := range ids {
		it, ok := e.items.Get(id)
		if !ok {
			continue
		}
		rec, _ := e.geo.Get(id)
		out = append(out, history.Entry{Item: it, Geometry: rec})
	}
	return out
}

// --- Edits ---

// SetText replaces the text of a text item and re-measures it.
func (e *Engine) SetText(id, text string) error {
	it, ok := e.items.Get(id)
	if !ok {
		return ErrUnknownItem
	}
	if it.Kind != document.ItemKindText {
		return ErrWrongKind
	}
	if e.gesture.active() {
		return ErrGestureActive
	}
	e.history.Capture(func() {
		e.items.Modify(id, func(it *document.Item) { it.Text.Text = text })
		e.remeasure(id)
	})
	return nil
}

// SetColor recolors every selected text and shape item.
func (e *Engine) SetColor(color string) error {
	if e.gesture.active() {
		return ErrGestureActive
	}
	e.history.Capture(func() {
		for _, id := range e.items.Selected() {
			e.items.Modify(id, func(it *document.Item) {
				switch {
				case it.Text != nil:
					it.Text.Color = color
				case it.Shape != nil:
					it.Shape.Color = color
				}
			})
		}
	})
	return nil
}

// SetFont changes family and size of every selected text item. An empty
// family or non-positive size leaves that attribute alone.
func (e *Engine) SetFont(family string, size float64) error {
	if e.gesture.active() {
		return ErrGestureActive
	}
	e.history.Capture(func() {
		for _, id := range e.items.Selected() {
			if it, _ := e.items.Get(id); it.Kind != document.ItemKindText {
				continue
			}
			e.items.Modify(id, func(it *document.Item) {
				if family != "" {
					it.Text.FontFamily = family
				}
				if size > 0 {
					it.Text.FontSize = size
				}
			})
			e.remeasure(id)
		}
	})
	return nil
}

// DeleteSelected removes the selected items.
func (e *Engine) DeleteSelected() error {
	if e.gesture.active() {
		return ErrGestureActive
	}
	ids := e.items.Selected()
	entries := e.entries(ids)
	e.items.RemoveMultiple(ids)
	for _, id := range ids {
		e.geo.Remove(id)
	}
	e.history.RecordDelete(entries)
	return nil
}

// LayerUp brings the selected items to the front, keeping their order.
func (e *Engine) LayerUp() error {
	if e.gesture.active() {
		return ErrGestureActive
	}
	e.history.Capture(func() {
		for _, id := range e.selectedInLayerOrder() {
			e.items.LayerUp(id)
		}
	})
	return nil
}

// LayerDown sends the selected items to the back, keeping their order.
func (e *Engine) LayerDown() error {
	if e.gesture.active() {
		return ErrGestureActive
	}
	ids := e.selectedInLayerOrder()
	e.history.Capture(func() {
		for i := len(ids) - 1; i >= 0; i-- {
			e.items.LayerDown(ids[i])
		}
	})
	return nil
}

func (e *Engine) selectedInLayerOrder() []string {
	var ids []string
	for _, id := range e.items.AllIDs() {
		if e.items.IsSelected(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// CopySelected puts the selected items on the clipboard and returns how many
// were copied.
func (e *Engine) CopySelected() int {
	e.clipboard.Copy(e.selectedInLayerOrder())
	return e.clipboard.Len()
}

// CutSelected copies the selection and then deletes it.
func (e *Engine) CutSelected() error {
	if e.gesture.active() {
		return ErrGestureActive
	}
	e.CopySelected()
	return e.DeleteSelected()
}

// Paste inserts the clipboard content as new items and selects them.
func (e *Engine) Paste() ([]string, error) {
	if e.gesture.active() {
		return nil, ErrGestureActive
	}
	ids := e.clipboard.Paste()
	e.history.RecordCreate(e.entries(ids))
	e.items.SelectMany(ids)
	return ids, nil
}

// Undo reverts the last recorded change. A gesture in progress is cancelled
// first.
func (e *Engine) Undo() bool {
	e.Cancel()
	return e.history.Undo()
}

// Redo re-applies the last undone change.
func (e *Engine) Redo() bool {
	e.Cancel()
	return e.history.Redo()
}

// SelectAll selects every item.
func (e *Engine) SelectAll() {
	e.items.SelectAll()
}

// SelectNone clears the selection.
func (e *Engine) SelectNone() {
	e.items.SelectNone()
}

// Select replaces the selection with ids. Unknown ids are ignored.
func (e *Engine) Select(ids []string) {
	e.items.SelectMany(ids)
}

// LoadSample replaces the stage with the built-in sample and clears history.
func (e *Engine) LoadSample() {
	e.Cancel()
	e.items.RemoveAll()
	e.geo.Reset()
	e.history.Clear()

	for _, entry := range document.NewSampleStage() {
		p := entry.Placement
		e.items.Upsert(entry.Item)
		e.geo.Create(entry.Item.ID, transform.CreateOptions{X: &p.X, Y: &p.Y, Width: &p.Width, Height: &p.Height})
		if p.Rotation != 0 {
			e.geo.RotateToAround(entry.Item.ID, p.Rotation, nil)
		}
		if entry.Item.Kind == document.ItemKindText {
			e.remeasure(entry.Item.ID)
		}
	}
}

// --- Queries (frontend ← backend) ---

func (e *Engine) scene() *SceneGraph {
	if e.dirty {
		e.sceneGraph = BuildSceneGraph(e.items, e.geo)
		e.dirty = false
	}
	return e.sceneGraph
}

// DrawCommands compiles the stage, the selection outline and any marquee.
func (e *Engine) DrawCommands() []DrawCommand {
	commands := CompileDrawCommands(e.scene())

	selected := e.items.Selected()
	if box, ok := selection.BoundingBoxOfIDs(e.geo, selected); ok {
		commands = append(commands, OutlineCommand(box, len(selected) == 1))
	}
	if e.gesture.kind == gestureMarquee {
		commands = append(commands, MarqueeCommand(e.gesture.marquee()))
	}
	return commands
}

// Render returns draw commands as JSON.
func (e *Engine) Render() string {
	result, err := DrawCommandsToJSON(e.DrawCommands())
	if err != nil {
		slog.Error("encode draw commands", "error", err)
	}
	return result
}

// HitTest returns the id of the topmost item at (x, y), or empty string.
func (e *Engine) HitTest(x, y float64) string {
	id, _ := selection.HitTest(geometry.Pt(x, y), e.geo, e.items.AllIDs())
	return id
}

// SelectionBounds returns the outline of the current selection.
func (e *Engine) SelectionBounds() (selection.Box, bool) {
	return selection.BoundingBoxOfIDs(e.geo, e.items.Selected())
}

// GetSelectionBounds returns the selection outline as JSON, or {} when
// nothing is selected.
func (e *Engine) GetSelectionBounds() string {
	box, ok := e.SelectionBounds()
	if !ok {
		return "{}"
	}
	return toJSON(box)
}

// Selection returns the selected ids in sorted order.
func (e *Engine) Selection() []string {
	return e.items.Selected()
}

// GetSelection returns the current selection as JSON.
func (e *Engine) GetSelection() string {
	return toJSON(e.items.Selected())
}

// ItemView is an item together with its geometry.
type ItemView struct {
	Item     *document.Item    `json:"item"`
	Geometry *transform.Record `json:"geometry,omitempty"`
}

// Item returns the item and its geometry.
func (e *Engine) Item(id string) (ItemView, bool) {
	it, ok := e.items.Get(id)
	if !ok {
		return ItemView{}, false
	}
	rec, _ := e.geo.Get(id)
	return ItemView{Item: it, Geometry: rec}, true
}

// GetItem returns the item and its geometry as JSON, or {} if unknown.
func (e *Engine) GetItem(id string) string {
	view, ok := e.Item(id)
	if !ok {
		return "{}"
	}
	return toJSON(view)
}

// HistoryState summarizes the undo stack.
type HistoryState struct {
	CanUndo bool `json:"canUndo"`
	CanRedo bool `json:"canRedo"`
	Length  int  `json:"length"`
	Cursor  int  `json:"cursor"`
}

func (e *Engine) History() HistoryState {
	return HistoryState{
		CanUndo: e.history.CanUndo(),
		CanRedo: e.history.CanRedo(),
		Length:  e.history.Len(),
		Cursor:  e.history.Cursor(),
	}
}

// HistoryState returns the undo stack summary as JSON.
func (e *Engine) HistoryState() string {
	return toJSON(e.History())
}

// Stage returns the stage settings.
func (e *Engine) Stage() workspace.Stage {
	return e.items.Stage()
}

func toJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("encode query result", "error", err)
		return "{}"
	}
	return string(data)
}
