// Package actions defines the built-in whiteboard actions: tools, styling,
// element edits, selection, page navigation and whiteboard mode.
package actions

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bethropolis/chalk/internal/action"
	"github.com/bethropolis/chalk/internal/scene"
)

// ErrInvalidInput is returned by Perform when the contextual input does not
// fit the action.
var ErrInvalidInput = errors.New("invalid input")

// Offset is the input of moveSelection.
type Offset struct {
	DX, DY float64
}

// Adjust is a relative numeric input: the action adds it to the current value.
type Adjust float64

// Point is the input of selectElement, in scene coordinates. Additive
// toggles the hit element instead of replacing the selection.
type Point struct {
	X, Y     float64
	Additive bool
}

// Rect is the optional input of addRectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// All returns the built-in actions in registration order.
func All() []*action.Action {
	return []*action.Action{
		WhiteboardMode(),
		SetActiveTool(),
		ChangeStrokeColor(),
		ChangeBackgroundColor(),
		ChangeStrokeWidth(),
		ChangeOpacity(),
		AddRectangle(),
		MoveSelection(),
		DeleteSelectedElements(),
		SelectAll(),
		ClearSelection(),
		SelectElement(),
		MovePageLeft(),
		MovePageRight(),
		WhiteboardToolbarScale(),
		WhiteboardSideControlsScale(),
		ToggleViewMode(),
		PasteStrokeColor(),
	}
}

// Register adds every built-in action to reg.
func Register(reg *action.Registry) error {
	for _, a := range All() {
		if err := reg.Register(a); err != nil {
			return err
		}
	}
	return nil
}

func editable(st scene.State) bool {
	return !st.AppState.Bool(scene.FieldViewModeEnabled)
}

func hasSelection(st scene.State) bool {
	return len(st.SelectedIDs()) > 0
}

func inWhiteboard(st scene.State) bool {
	return st.AppState.Bool(scene.FieldWhiteboardMode)
}

// number decodes a numeric input. Adjust values are relative.
func number(input any) (value float64, relative bool, err error) {
	switch v := input.(type) {
	case float64:
		return v, false, nil
	case float32:
		return float64(v), false, nil
	case int:
		return float64(v), false, nil
	case Adjust:
		return float64(v), true, nil
	case string:
		// "+0.5" and "-10" from the command palette are relative.
		s := strings.TrimSpace(v)
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false, fmt.Errorf("%w: %q", ErrInvalidInput, v)
		}
		return f, strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-"), nil
	default:
		return 0, false, fmt.Errorf("%w: %T is not a number", ErrInvalidInput, input)
	}
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
