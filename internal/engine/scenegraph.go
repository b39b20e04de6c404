package engine

import (
	"github.com/inamate/stickerstage/internal/document"
	"github.com/inamate/stickerstage/internal/geometry"
	"github.com/inamate/stickerstage/internal/transform"
	"github.com/inamate/stickerstage/internal/workspace"
)

// kappa places cubic Bézier control points for a quarter ellipse.
const kappa = 0.5522847498

// SceneGraph is the render-ready state of the stage: one node per item that
// has geometry, in painter's order (bottom layer first).
type SceneGraph struct {
	Stage     workspace.Stage
	Nodes     []*SceneNode
	NodesByID map[string]*SceneNode
}

// SceneNode is a resolved item ready for rendering.
type SceneNode struct {
	ID   string
	Kind document.ItemKind

	Transform geometry.Matrix2D
	Width     float64
	Height    float64
	Polygon   geometry.Quad

	// Shapes
	Path []PathCommand
	Fill string

	// Text
	Text        string
	FontFamily  string
	FontSize    float64
	Stroke      string
	StrokeWidth float64

	// Pictures
	ImageAssetID string
}

// PathCommand represents a single path segment for rendering.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["C", x1, y1, x2, y2, x, y], ["Z"].
type PathCommand []any

// NewSceneGraph creates an empty scene graph.
func NewSceneGraph() *SceneGraph {
	return &SceneGraph{NodesByID: make(map[string]*SceneNode)}
}

// BuildSceneGraph resolves every item on the stage against its geometry.
func BuildSceneGraph(items *workspace.Store, geo *transform.Store) *SceneGraph {
	sg := NewSceneGraph()
	sg.Stage = items.Stage()

	for _, id := range items.AllIDs() {
		it, _ := items.Get(id)
		rec, ok := geo.Get(id)
		if !ok {
			continue
		}

		node := &SceneNode{
			ID:        id,
			Kind:      it.Kind,
			Transform: rec.Transform,
			Width:     rec.Width,
			Height:    rec.Height,
			Polygon:   rec.Polygon,
		}
		switch it.Kind {
		case document.ItemKindShape:
			node.Fill = it.Shape.Color
			node.Path = shapePath(it.Shape.Variant, rec.Width, rec.Height)
		case document.ItemKindText:
			node.Text = it.Text.Text
			node.Fill = it.Text.Color
			node.FontFamily = it.Text.FontFamily
			node.FontSize = it.Text.FontSize
			node.Stroke = it.Text.StrokeColor
			node.StrokeWidth = it.Text.StrokeWidth
		case document.ItemKindPicture:
			node.ImageAssetID = it.Picture.AssetID
		}

		sg.Nodes = append(sg.Nodes, node)
		sg.NodesByID[id] = node
	}
	return sg
}

// shapePath outlines a shape in its local w×h box.
func shapePath(variant document.ShapeVariant, w, h float64) []PathCommand {
	if variant == document.ShapeCircle {
		return ellipsePath(w/2, h/2, w/2, h/2)
	}
	return []PathCommand{
		{"M", 0.0, 0.0},
		{"L", w, 0.0},
		{"L", w, h},
		{"L", 0.0, h},
		{"Z"},
	}
}

func ellipsePath(cx, cy, rx, ry float64) []PathCommand {
	kx, ky := rx*kappa, ry*kappa
	return []PathCommand{
		{"M", cx + rx, cy},
		{"C", cx + rx, cy + ky, cx + kx, cy + ry, cx, cy + ry},
		{"C", cx - kx, cy + ry, cx - rx, cy + ky, cx - rx, cy},
		{"C", cx - rx, cy - ky, cx - kx, cy - ry, cx, cy - ry},
		{"C", cx + kx, cy - ry, cx + rx, cy - ky, cx + rx, cy},
		{"Z"},
	}
}
