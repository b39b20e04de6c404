//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/inamate/stickerstage/internal/engine"
)

var eng *engine.Engine

func main() {
	eng = engine.NewEngine(engine.DefaultOptions())

	// Create the engine API object
	stickerEngine := js.Global().Get("Object").New()

	// --- Content ---
	stickerEngine.Set("addPicture", js.FuncOf(addPicture))
	stickerEngine.Set("addText", js.FuncOf(addText))
	stickerEngine.Set("addShape", js.FuncOf(addShape))
	stickerEngine.Set("measureContent", js.FuncOf(measureContent))
	stickerEngine.Set("loadSample", js.FuncOf(loadSample))

	// --- Gestures ---
	stickerEngine.Set("pressItem", js.FuncOf(pressItem))
	stickerEngine.Set("dragBy", js.FuncOf(dragBy))
	stickerEngine.Set("startResize", js.FuncOf(startResize))
	stickerEngine.Set("resizeTo", js.FuncOf(resizeTo))
	stickerEngine.Set("startRotate", js.FuncOf(startRotate))
	stickerEngine.Set("rotateTo", js.FuncOf(rotateTo))
	stickerEngine.Set("startMarquee", js.FuncOf(startMarquee))
	stickerEngine.Set("updateMarquee", js.FuncOf(updateMarquee))
	stickerEngine.Set("release", js.FuncOf(release))
	stickerEngine.Set("cancel", js.FuncOf(cancel))

	// --- Edits ---
	stickerEngine.Set("setText", js.FuncOf(setText))
	stickerEngine.Set("setColor", js.FuncOf(setColor))
	stickerEngine.Set("setFont", js.FuncOf(setFont))
	stickerEngine.Set("deleteSelected", js.FuncOf(deleteSelected))
	stickerEngine.Set("layerUp", js.FuncOf(layerUp))
	stickerEngine.Set("layerDown", js.FuncOf(layerDown))
	stickerEngine.Set("copy", js.FuncOf(copySelected))
	stickerEngine.Set("cut", js.FuncOf(cutSelected))
	stickerEngine.Set("paste", js.FuncOf(paste))
	stickerEngine.Set("undo", js.FuncOf(undo))
	stickerEngine.Set("redo", js.FuncOf(redo))
	stickerEngine.Set("setSelection", js.FuncOf(setSelection))
	stickerEngine.Set("selectAll", js.FuncOf(selectAll))
	stickerEngine.Set("selectNone", js.FuncOf(selectNone))

	// --- Queries (frontend ← backend) ---
	stickerEngine.Set("render", js.FuncOf(render))
	stickerEngine.Set("hitTest", js.FuncOf(hitTest))
	stickerEngine.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	stickerEngine.Set("getSelection", js.FuncOf(getSelection))
	stickerEngine.Set("getItem", js.FuncOf(getItem))
	stickerEngine.Set("getHistory", js.FuncOf(getHistory))

	// Register on global scope
	js.Global().Set("stickerEngine", stickerEngine)

	// Signal that WASM is ready
	js.Global().Set("stickerWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func result(err error) interface{} {
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func idResult(id string, err error) interface{} {
	if err != nil {
		return result(err)
	}
	return js.ValueOf(map[string]interface{}{"ok": true, "id": id})
}

func stringArg(args []js.Value, i int) string {
	if len(args) <= i || args[i].Type() != js.TypeString {
		return ""
	}
	return args[i].String()
}

func floatArg(args []js.Value, i int) float64 {
	if len(args) <= i || args[i].Type() != js.TypeNumber {
		return 0
	}
	return args[i].Float()
}

func stringsArg(args []js.Value, i int) []string {
	if len(args) <= i || args[i].Type() != js.TypeObject {
		return nil
	}
	arr := args[i]
	ids := make([]string, arr.Length())
	for j := range ids {
		ids[j] = arr.Index(j).String()
	}
	return ids
}

// --- Content ---

func addPicture(this js.Value, args []js.Value) interface{} {
	return idResult(eng.AddPicture(stringArg(args, 0), stringArg(args, 1), floatArg(args, 2), floatArg(args, 3)))
}

func addText(this js.Value, args []js.Value) interface{} {
	return idResult(eng.AddText())
}

func addShape(this js.Value, args []js.Value) interface{} {
	return idResult(eng.AddShape(stringArg(args, 0)))
}

func measureContent(this js.Value, args []js.Value) interface{} {
	eng.MeasureContent(stringArg(args, 0), floatArg(args, 1), floatArg(args, 2))
	return nil
}

func loadSample(this js.Value, args []js.Value) interface{} {
	eng.LoadSample()
	return result(nil)
}

// --- Gestures ---

func pressItem(this js.Value, args []js.Value) interface{} {
	additive := len(args) > 1 && args[1].Truthy()
	return result(eng.PressItem(stringArg(args, 0), additive))
}

func dragBy(this js.Value, args []js.Value) interface{} {
	return result(eng.DragBy(floatArg(args, 0), floatArg(args, 1)))
}

func startResize(this js.Value, args []js.Value) interface{} {
	return result(eng.StartResize(stringArg(args, 0)))
}

func resizeTo(this js.Value, args []js.Value) interface{} {
	return result(eng.ResizeTo(floatArg(args, 0), floatArg(args, 1)))
}

func startRotate(this js.Value, args []js.Value) interface{} {
	return result(eng.StartRotate())
}

func rotateTo(this js.Value, args []js.Value) interface{} {
	return result(eng.RotateTo(floatArg(args, 0), floatArg(args, 1)))
}

func startMarquee(this js.Value, args []js.Value) interface{} {
	return result(eng.StartMarquee(floatArg(args, 0), floatArg(args, 1)))
}

func updateMarquee(this js.Value, args []js.Value) interface{} {
	return result(eng.UpdateMarquee(floatArg(args, 0), floatArg(args, 1)))
}

func release(this js.Value, args []js.Value) interface{} {
	return result(eng.Release())
}

func cancel(this js.Value, args []js.Value) interface{} {
	eng.Cancel()
	return nil
}

// --- Edits ---

func setText(this js.Value, args []js.Value) interface{} {
	return result(eng.SetText(stringArg(args, 0), stringArg(args, 1)))
}

func setColor(this js.Value, args []js.Value) interface{} {
	return result(eng.SetColor(stringArg(args, 0)))
}

func setFont(this js.Value, args []js.Value) interface{} {
	return result(eng.SetFont(stringArg(args, 0), floatArg(args, 1)))
}

func deleteSelected(this js.Value, args []js.Value) interface{} {
	return result(eng.DeleteSelected())
}

func layerUp(this js.Value, args []js.Value) interface{} {
	return result(eng.LayerUp())
}

func layerDown(this js.Value, args []js.Value) interface{} {
	return result(eng.LayerDown())
}

func copySelected(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.CopySelected())
}

func cutSelected(this js.Value, args []js.Value) interface{} {
	return result(eng.CutSelected())
}

func paste(this js.Value, args []js.Value) interface{} {
	ids, err := eng.Paste()
	if err != nil {
		return result(err)
	}
	out := make([]interface{}, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return js.ValueOf(map[string]interface{}{"ok": true, "ids": out})
}

func undo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Undo())
}

func redo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Redo())
}

func setSelection(this js.Value, args []js.Value) interface{} {
	eng.Select(stringsArg(args, 0))
	return nil
}

func selectAll(this js.Value, args []js.Value) interface{} {
	eng.SelectAll()
	return nil
}

func selectNone(this js.Value, args []js.Value) interface{} {
	eng.SelectNone()
	return nil
}

// --- Queries ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Render())
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	return js.ValueOf(eng.HitTest(args[0].Float(), args[1].Float()))
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetSelectionBounds())
}

func getSelection(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetSelection())
}

func getItem(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetItem(stringArg(args, 0)))
}

func getHistory(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.HistoryState())
}
