package session

import (
	"encoding/json"

	"github.com/inamate/stickerstage/internal/engine"
	"github.com/inamate/stickerstage/internal/selection"
	"github.com/inamate/stickerstage/internal/workspace"
)

type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

const (
	// Connection
	TypeWelcome = "welcome"

	// Client → server
	TypeCommand = "command"

	// Server → client
	TypeState = "state"
	TypeError = "error"
)

// Command names carried in CommandPayload.Name.
const (
	CmdAddPicture    = "content.addPicture"
	CmdAddText       = "content.addText"
	CmdAddShape      = "content.addShape"
	CmdMeasure       = "content.measure"
	CmdPress         = "gesture.press"
	CmdDrag          = "gesture.drag"
	CmdStartResize   = "gesture.startResize"
	CmdResize        = "gesture.resize"
	CmdStartRotate   = "gesture.startRotate"
	CmdRotate        = "gesture.rotate"
	CmdRelease       = "gesture.release"
	CmdCancel        = "gesture.cancel"
	CmdStartMarquee  = "marquee.start"
	CmdUpdateMarquee = "marquee.update"
	CmdEndMarquee    = "marquee.end"
	CmdSetText       = "edit.setText"
	CmdSetColor      = "edit.setColor"
	CmdSetFont       = "edit.setFont"
	CmdDelete        = "edit.delete"
	CmdLayerUp       = "edit.layerUp"
	CmdLayerDown     = "edit.layerDown"
	CmdCopy          = "edit.copy"
	CmdCut           = "edit.cut"
	CmdPaste         = "edit.paste"
	CmdUndo          = "history.undo"
	CmdRedo          = "history.redo"
	CmdSelect        = "selection.set"
	CmdSelectAll     = "selection.all"
	CmdSelectNone    = "selection.none"
	CmdHitTest       = "query.hitTest"
	CmdLoadSample    = "stage.loadSample"
	CmdRender        = "query.render"
)

// CommandPayload is one editor command. Only the fields its Name uses are
// read.
type CommandPayload struct {
	Name string `json:"name"`

	ID       string   `json:"id,omitempty"`
	IDs      []string `json:"ids,omitempty"`
	AssetID  string   `json:"assetId,omitempty"`
	Variant  string   `json:"variant,omitempty"`
	Handle   string   `json:"handle,omitempty"`
	Text     string   `json:"text,omitempty"`
	Color    string   `json:"color,omitempty"`
	Font     string   `json:"font,omitempty"`
	FontSize float64  `json:"fontSize,omitempty"`
	Additive bool     `json:"additive,omitempty"`

	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	DX     float64 `json:"dx,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// StatePayload is sent after every command so the client can redraw.
type StatePayload struct {
	Result    any                  `json:"result,omitempty"`
	Commands  []engine.DrawCommand `json:"commands"`
	Selection []string             `json:"selection"`
	Bounds    *selection.Box       `json:"bounds,omitempty"`
	History   engine.HistoryState  `json:"history"`
}

type WelcomePayload struct {
	SessionID string          `json:"sessionId"`
	Stage     workspace.Stage `json:"stage"`
}

type ErrorPayload struct {
	Command string `json:"command,omitempty"`
	Reason  string `json:"reason"`
}
