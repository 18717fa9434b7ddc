package actions

import (
	"fmt"
	"slices"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/chalk/internal/action"
	"github.com/bethropolis/chalk/internal/history"
	"github.com/bethropolis/chalk/internal/scene"
)

// Default size of a rectangle added without explicit bounds.
const (
	DefaultRectWidth  = 20
	DefaultRectHeight = 8
)

// AddRectangle adds a rectangle with the current item style and selects it.
// Input is an optional Rect.
func AddRectangle() *action.Action {
	return &action.Action{
		Name:     "addRectangle",
		Label:    "toolBar.rectangle",
		Keywords: []string{"shape", "box", "rectangle"},
		Keys:     []string{"shift+r"},
		Enabled:  editable,
		Perform: func(els scene.Elements, st scene.AppState, input any) (action.Result, error) {
			r := Rect{X: -st.Float(scene.FieldScrollX), Width: DefaultRectWidth, Height: DefaultRectHeight}
			switch v := input.(type) {
			case Rect:
				r = v
			case nil, *tcell.EventKey:
			default:
				return action.Result{}, fmt.Errorf("%w: addRectangle expects a Rect, got %T", ErrInvalidInput, input)
			}

			el := scene.NewElement(scene.KindRectangle, r.X, r.Y, r.Width, r.Height)
			el.StrokeColor = st.String(scene.FieldStrokeColor)
			el.BackgroundColor = st.String(scene.FieldBackgroundColor)
			el.StrokeWidth = st.Float(scene.FieldStrokeWidth)
			if st.Has(scene.FieldOpacity) {
				el.Opacity = st.Int(scene.FieldOpacity)
			}
			return action.Result{
				Elements: els.Upsert(el),
				AppState: st.With(scene.FieldSelectedElementIDs, []string{el.ID}),
				Capture:  history.CaptureImmediately,
			}, nil
		},
	}
}

// MoveSelection offsets the selected elements. Input is an Offset or an
// arrow key event (shift moves further).
func MoveSelection() *action.Action {
	return &action.Action{
		Name:     "moveSelection",
		Label:    "labels.move",
		Keywords: []string{"nudge", "move"},
		Enabled:  func(st scene.State) bool { return editable(st) && hasSelection(st) },
		// Arrows only move when something is selected; otherwise later
		// bindings get the key.
		KeyTest: func(ev *tcell.EventKey, st scene.State) bool {
			_, ok := arrowOffset(ev)
			return ok && hasSelection(st)
		},
		Perform: func(els scene.Elements, st scene.AppState, input any) (action.Result, error) {
			var off Offset
			switch v := input.(type) {
			case Offset:
				off = v
			case *tcell.EventKey:
				off, _ = arrowOffset(v)
			default:
				return action.Result{}, fmt.Errorf("%w: moveSelection expects an Offset, got %T", ErrInvalidInput, input)
			}
			ids := scene.State{Elements: els, AppState: st}.SelectedIDs()
			return action.Result{
				Elements: els.Update(ids, func(e *scene.Element) {
					e.X += off.DX
					e.Y += off.DY
				}),
				Capture: history.CaptureEventually,
			}, nil
		},
	}
}

func arrowOffset(ev *tcell.EventKey) (Offset, bool) {
	step := 1.0
	switch ev.Modifiers() {
	case tcell.ModNone:
	case tcell.ModShift:
		step = 10
	default:
		return Offset{}, false
	}
	switch ev.Key() {
	case tcell.KeyLeft:
		return Offset{DX: -step}, true
	case tcell.KeyRight:
		return Offset{DX: step}, true
	case tcell.KeyUp:
		return Offset{DY: -step}, true
	case tcell.KeyDown:
		return Offset{DY: step}, true
	}
	return Offset{}, false
}

// DeleteSelectedElements marks the selection deleted and clears it.
func DeleteSelectedElements() *action.Action {
	return &action.Action{
		Name:     "deleteSelectedElements",
		Label:    "labels.delete",
		Icon:     "trash",
		Keywords: []string{"remove", "erase"},
		Keys:     []string{"delete", "backspace", "backspace2"},
		Enabled:  func(st scene.State) bool { return editable(st) && hasSelection(st) },
		Perform: func(els scene.Elements, st scene.AppState, _ any) (action.Result, error) {
			ids := scene.State{Elements: els, AppState: st}.SelectedIDs()
			return action.Result{
				Elements: els.Update(ids, func(e *scene.Element) { e.IsDeleted = true }),
				AppState: st.With(scene.FieldSelectedElementIDs, []string{}),
				Capture:  history.CaptureImmediately,
			}, nil
		},
	}
}

// SelectAll selects every visible element.
func SelectAll() *action.Action {
	return &action.Action{
		Name:    "selectAll",
		Label:   "labels.selectAll",
		Keys:    []string{"ctrl+a"},
		Enabled: func(st scene.State) bool { return len(st.Elements.Visible()) > 0 },
		Perform: func(els scene.Elements, st scene.AppState, _ any) (action.Result, error) {
			visible := els.Visible()
			ids := make([]string, len(visible))
			for i, el := range visible {
				ids[i] = el.ID
			}
			return action.Result{
				AppState: st.With(scene.FieldSelectedElementIDs, ids).With(scene.FieldActiveTool, "selection"),
				Capture:  history.CaptureNever,
			}, nil
		},
	}
}

// ClearSelection deselects everything.
func ClearSelection() *action.Action {
	return &action.Action{
		Name:    "clearSelection",
		Label:   "labels.clearSelection",
		Keys:    []string{"escape"},
		Enabled: hasSelection,
		Perform: func(_ scene.Elements, st scene.AppState, _ any) (action.Result, error) {
			return action.Result{
				AppState: st.With(scene.FieldSelectedElementIDs, []string{}),
				Capture:  history.CaptureNever,
			}, nil
		},
	}
}

// SelectElement selects the topmost element under a Point. A miss clears
// the selection unless the click was additive.
func SelectElement() *action.Action {
	return &action.Action{
		Name:  "selectElement",
		Label: "labels.select",
		Perform: func(els scene.Elements, st scene.AppState, input any) (action.Result, error) {
			p, ok := input.(Point)
			if !ok {
				return action.Result{}, fmt.Errorf("%w: selectElement expects a Point, got %T", ErrInvalidInput, input)
			}
			current := scene.State{Elements: els, AppState: st}.SelectedIDs()
			hit, found := els.HitTest(p.X, p.Y)

			var ids []string
			switch {
			case !found && p.Additive:
				ids = current
			case !found:
				ids = []string{}
			case !p.Additive:
				ids = []string{hit.ID}
			case slices.Contains(current, hit.ID):
				ids = slices.DeleteFunc(slices.Clone(current), func(id string) bool { return id == hit.ID })
			default:
				ids = append(slices.Clone(current), hit.ID)
			}
			return action.Result{
				AppState: st.With(scene.FieldSelectedElementIDs, ids),
				Capture:  history.CaptureNever,
			}, nil
		},
	}
}

// ToggleViewMode switches read-only view mode.
func ToggleViewMode() *action.Action {
	return &action.Action{
		Name:     "toggleViewMode",
		Label:    "labels.viewMode",
		Keywords: []string{"present", "read only", "view"},
		Keys:     []string{"alt+r"},
		Checked:  func(st scene.State) bool { return !editable(st) },
		Perform: func(_ scene.Elements, st scene.AppState, _ any) (action.Result, error) {
			next := st.With(scene.FieldViewModeEnabled, !st.Bool(scene.FieldViewModeEnabled))
			return action.Result{AppState: next, Capture: history.CaptureImmediately}, nil
		},
	}
}
