package engine

import (
	"encoding/json"

	"github.com/inamate/stickerstage/internal/geometry"
	"github.com/inamate/stickerstage/internal/selection"
	"github.com/inamate/stickerstage/internal/transform"
)

// rotateHandleOffset is how far the rotation handle sits outside the
// outline's right edge, in stage pixels.
const rotateHandleOffset = 24

// DrawCommand represents a single drawing operation for the frontend to execute.
// The frontend receives a list of these and executes them on a Canvas2D context.
type DrawCommand struct {
	Op           string        `json:"op"`                     // "stage", "path", "text", "image", "outline", "marquee"
	ItemID       string        `json:"itemId,omitempty"`       // For hit correlation
	Transform    []float64     `json:"transform,omitempty"`    // [a, b, c, d, e, f] affine matrix
	Width        float64       `json:"width,omitempty"`        // Local box width
	Height       float64       `json:"height,omitempty"`       // Local box height
	Path         []PathCommand `json:"path,omitempty"`         // Path data for "path" ops
	Fill         string        `json:"fill,omitempty"`         // Fill color
	Stroke       string        `json:"stroke,omitempty"`       // Stroke color
	StrokeWidth  float64       `json:"strokeWidth,omitempty"`  // Stroke width
	Text         string        `json:"text,omitempty"`         // Text content for "text" ops
	FontFamily   string        `json:"fontFamily,omitempty"`   // CSS font family
	FontSize     float64       `json:"fontSize,omitempty"`     // Font size in pixels
	ImageAssetID string        `json:"imageAssetId,omitempty"` // Asset ID for image lookup
	Handles      []HandlePoint `json:"handles,omitempty"`      // Grab points for "outline" ops
}

// HandlePoint is a grab point of the selection outline, in stage coordinates.
type HandlePoint struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// CompileDrawCommands generates a draw command buffer from a scene graph.
// Commands are in painter's order (back to front), stage first.
func CompileDrawCommands(sg *SceneGraph) []DrawCommand {
	if sg == nil {
		return nil
	}

	commands := []DrawCommand{{
		Op:     "stage",
		Width:  sg.Stage.Width,
		Height: sg.Stage.Height,
		Fill:   sg.Stage.Color,
	}}
	for _, node := range sg.Nodes {
		commands = append(commands, compileNode(node))
	}
	return commands
}

func compileNode(node *SceneNode) DrawCommand {
	cmd := DrawCommand{
		ItemID:    node.ID,
		Transform: node.Transform.ToSlice(),
		Width:     node.Width,
		Height:    node.Height,
	}
	switch {
	case node.ImageAssetID != "":
		cmd.Op = "image"
		cmd.ImageAssetID = node.ImageAssetID
	case len(node.Path) > 0:
		cmd.Op = "path"
		cmd.Path = node.Path
		cmd.Fill = node.Fill
	default:
		cmd.Op = "text"
		cmd.Text = node.Text
		cmd.Fill = node.Fill
		cmd.Stroke = node.Stroke
		cmd.StrokeWidth = node.StrokeWidth
		cmd.FontFamily = node.FontFamily
		cmd.FontSize = node.FontSize
	}
	return cmd
}

// OutlineCommand draws the selection box. Resize and rotation handles are
// only offered when a single item is selected.
func OutlineCommand(box selection.Box, single bool) DrawCommand {
	cmd := DrawCommand{
		Op:        "outline",
		Transform: box.Transform.ToSlice(),
		Width:     box.Width,
		Height:    box.Height,
	}
	if !single {
		return cmd
	}
	for _, h := range transform.Handles {
		pos := h.Position()
		p := box.Transform.TransformPoint(geometry.Pt(pos.X*box.Width, pos.Y*box.Height))
		cmd.Handles = append(cmd.Handles, HandlePoint{Name: string(h), X: p.X, Y: p.Y})
	}
	p := box.Transform.TransformPoint(geometry.Pt(box.Width+rotateHandleOffset, box.Height/2))
	cmd.Handles = append(cmd.Handles, HandlePoint{Name: "rotate", X: p.X, Y: p.Y})
	return cmd
}

// MarqueeCommand draws the rubber-band rectangle.
func MarqueeCommand(r geometry.Rect) DrawCommand {
	r = r.Normalize()
	return DrawCommand{
		Op:        "marquee",
		Transform: geometry.Translate(r.X, r.Y).ToSlice(),
		Width:     r.Width,
		Height:    r.Height,
	}
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}
