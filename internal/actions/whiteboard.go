package actions

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/chalk/internal/action"
	"github.com/bethropolis/chalk/internal/history"
	"github.com/bethropolis/chalk/internal/scene"
)

// Whiteboard scale bounds.
const (
	ScaleMin  = 0.6
	ScaleMax  = 2.0
	ScaleStep = 0.1
)

// WhiteboardMode toggles the simplified classroom layout.
func WhiteboardMode() *action.Action {
	return &action.Action{
		Name:     "whiteboardMode",
		Label:    "buttons.whiteboardMode",
		Keywords: []string{"whiteboard", "classroom", "teaching", "simple"},
		Keys:     []string{"alt+w"},
		Track: &action.TrackEvent{
			Category:  "menu",
			Action:    "toggleWhiteboardMode",
			Predicate: func(st scene.AppState) bool { return !st.Bool(scene.FieldWhiteboardMode) },
		},
		Checked: inWhiteboard,
		Perform: func(_ scene.Elements, st scene.AppState, _ any) (action.Result, error) {
			return action.Result{
				AppState: st.With(scene.FieldWhiteboardMode, !st.Bool(scene.FieldWhiteboardMode)),
				Capture:  history.CaptureEventually,
			}, nil
		},
	}
}

// MovePageLeft scrolls one viewport width to the left.
func MovePageLeft() *action.Action {
	return movePage("movePageLeft", "labels.left", tcell.KeyPgUp, 1)
}

// MovePageRight scrolls one viewport width to the right.
func MovePageRight() *action.Action {
	return movePage("movePageRight", "labels.right", tcell.KeyPgDn, -1)
}

func movePage(name, label string, key tcell.Key, direction float64) *action.Action {
	return &action.Action{
		Name:    name,
		Label:   label,
		Icon:    "chevron",
		Enabled: inWhiteboard,
		// Page keys only mean page navigation in whiteboard mode; elsewhere
		// they fall through to later bindings.
		KeyTest: func(ev *tcell.EventKey, st scene.State) bool {
			return ev.Key() == key && ev.Modifiers() == tcell.ModNone && inWhiteboard(st)
		},
		Perform: func(_ scene.Elements, st scene.AppState, _ any) (action.Result, error) {
			width := st.Float(scene.FieldViewportWidth)
			if width <= 0 {
				width = scene.DefaultAppState().Float(scene.FieldViewportWidth)
			}
			return action.Result{
				AppState: st.With(scene.FieldScrollX, st.Float(scene.FieldScrollX)+direction*width),
				Capture:  history.CaptureNever,
			}, nil
		},
	}
}

// WhiteboardToolbarScale sets the toolbar scale (input: number or Adjust).
func WhiteboardToolbarScale() *action.Action {
	return scaleAction("whiteboardToolbarScale", "Toolbar", scene.FieldWhiteboardToolbarScale)
}

// WhiteboardSideControlsScale sets the side controls scale.
func WhiteboardSideControlsScale() *action.Action {
	return scaleAction("whiteboardSideControlsScale", "Side controls", scene.FieldWhiteboardSideControlsScale)
}

func scaleAction(name, label, field string) *action.Action {
	return &action.Action{
		Name:     name,
		Label:    label,
		Keywords: []string{"scale", "size", "whiteboard"},
		Enabled:  inWhiteboard,
		Perform: func(_ scene.Elements, st scene.AppState, input any) (action.Result, error) {
			v, relative, err := number(input)
			if err != nil {
				return action.Result{}, err
			}
			if relative {
				current := st.Float(field)
				if current == 0 {
					current = 1
				}
				v += current
			}
			return action.Result{
				AppState: st.With(field, ClampScale(v)),
				Capture:  history.CaptureEventually,
			}, nil
		},
	}
}

// ClampScale bounds v to the scale range and snaps it to the step.
func ClampScale(v float64) float64 {
	v = clamp(v, ScaleMin, ScaleMax)
	steps := math.Round(1 / ScaleStep)
	return math.Round(v*steps) / steps
}
