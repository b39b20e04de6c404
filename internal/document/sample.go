package document

// Placement positions a sample item on the stage. Rotation is in degrees
// about the item's center.
type Placement struct {
	X        float64
	Y        float64
	Width    float64
	Height   float64
	Rotation float64
}

// SampleEntry is one item of the sample stage.
type SampleEntry struct {
	Item      *Item
	Placement Placement
}

// NewSampleStage returns a few stickers for a fresh 512x512 stage, bottom
// layer first.
func NewSampleStage() []SampleEntry {
	backdrop := NewShape(ShapeRect)
	backdrop.Shape.Color = "#ffe8a3"

	sun := NewShape(ShapeCircle)
	sun.Shape.Color = "#ffb703"

	badge := NewShape(ShapeRect)
	badge.Shape.Color = "#219ebc"

	caption := NewText()
	caption.Text.Text = "Hello, sticker!"
	caption.Text.StrokeColor = "white"
	caption.Text.StrokeWidth = 2

	entries := []SampleEntry{
		{Item: backdrop, Placement: Placement{X: 56, Y: 296, Width: 400, Height: 160}},
		{Item: sun, Placement: Placement{X: 336, Y: 56, Width: 120, Height: 120}},
		{Item: badge, Placement: Placement{X: 96, Y: 120, Width: 140, Height: 90, Rotation: -12}},
		{Item: caption, Placement: Placement{X: 116, Y: 350, Width: 280, Height: 40}},
	}
	for i := range entries {
		entries[i].Item.Layer = i
	}
	return entries
}
