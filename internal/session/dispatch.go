package session

import (
	"fmt"

	"github.com/inamate/stickerstage/internal/asset"
	"github.com/inamate/stickerstage/internal/engine"
)

// AssetLookup resolves uploaded pictures by id.
type AssetLookup interface {
	Lookup(id string) (*asset.Asset, bool)
}

// Dispatcher applies command payloads to one editor.
type Dispatcher struct {
	Engine *engine.Engine
	Assets AssetLookup
}

// Apply runs cmd and returns whatever the command produces for the caller,
// or nil.
func (d *Dispatcher) Apply(cmd CommandPayload) (any, error) {
	e := d.Engine

	switch cmd.Name {
	case CmdAddPicture:
		a, ok := d.Assets.Lookup(cmd.AssetID)
		if !ok {
			return nil, fmt.Errorf("unknown asset %q", cmd.AssetID)
		}
		return e.AddPicture(a.ID, a.Name, a.Size.Width, a.Size.Height)
	case CmdAddText:
		return e.AddText()
	case CmdAddShape:
		return e.AddShape(cmd.Variant)
	case CmdMeasure:
		e.MeasureContent(cmd.ID, cmd.Width, cmd.Height)
		return nil, nil

	case CmdPress:
		return nil, e.PressItem(cmd.ID, cmd.Additive)
	case CmdDrag:
		return nil, e.DragBy(cmd.DX, cmd.DY)
	case CmdStartResize:
		return nil, e.StartResize(cmd.Handle)
	case CmdResize:
		return nil, e.ResizeTo(cmd.X, cmd.Y)
	case CmdStartRotate:
		return nil, e.StartRotate()
	case CmdRotate:
		return nil, e.RotateTo(cmd.X, cmd.Y)
	case CmdRelease:
		return nil, e.Release()
	case CmdCancel:
		e.Cancel()
		return nil, nil

	case CmdStartMarquee:
		return nil, e.StartMarquee(cmd.X, cmd.Y)
	case CmdUpdateMarquee:
		return nil, e.UpdateMarquee(cmd.X, cmd.Y)
	case CmdEndMarquee:
		return nil, e.EndMarquee()

	case CmdSetText:
		return nil, e.SetText(cmd.ID, cmd.Text)
	case CmdSetColor:
		return nil, e.SetColor(cmd.Color)
	case CmdSetFont:
		return nil, e.SetFont(cmd.Font, cmd.FontSize)
	case CmdDelete:
		return nil, e.DeleteSelected()
	case CmdLayerUp:
		return nil, e.LayerUp()
	case CmdLayerDown:
		return nil, e.LayerDown()
	case CmdCopy:
		return e.CopySelected(), nil
	case CmdCut:
		return nil, e.CutSelected()
	case CmdPaste:
		return e.Paste()

	case CmdUndo:
		return e.Undo(), nil
	case CmdRedo:
		return e.Redo(), nil

	case CmdSelect:
		e.Select(cmd.IDs)
		return nil, nil
	case CmdSelectAll:
		e.SelectAll()
		return nil, nil
	case CmdSelectNone:
		e.SelectNone()
		return nil, nil

	case CmdHitTest:
		return e.HitTest(cmd.X, cmd.Y), nil
	case CmdLoadSample:
		e.LoadSample()
		return nil, nil
	case CmdRender:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown command %q", cmd.Name)
	}
}

// State captures what the client needs to redraw.
func (d *Dispatcher) State(result any) StatePayload {
	e := d.Engine
	state := StatePayload{
		Result:    result,
		Commands:  e.DrawCommands(),
		Selection: e.Selection(),
		History:   e.History(),
	}
	if box, ok := e.SelectionBounds(); ok {
		state.Bounds = &box
	}
	if state.Selection == nil {
		state.Selection = []string{}
	}
	return state
}
