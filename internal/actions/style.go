package actions

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/bethropolis/chalk/internal/action"
	"github.com/bethropolis/chalk/internal/history"
	"github.com/bethropolis/chalk/internal/scene"
)

// Stroke width bounds and the step used by keyboard adjustments.
const (
	StrokeWidthMin  = 0.5
	StrokeWidthMax  = 4.0
	StrokeWidthStep = 0.5
)

// Transparent is the only non-hex colour value accepted besides CSS names.
const Transparent = "transparent"

// StrokeColors is the stroke palette offered by the toolbar.
var StrokeColors = []string{
	"#1e1e1e", "#e03131", "#2f9e44", "#1971c2", "#f08c00",
	"#6741d9", "#0c8599", "#e8590c", "#000000", "#868e96",
}

// BackgroundColors is the fill palette offered by the toolbar.
var BackgroundColors = []string{
	Transparent, "#ffc9c9", "#b2f2bb", "#a5d8ff", "#ffec99",
	"#d0bfff", "#99e9f2", "#ffd8a8", "#ffffff", "#e9ecef",
}

// NormalizeColor validates a colour and returns it as lower-case #rrggbb.
// CSS colour names are accepted and converted.
func NormalizeColor(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == Transparent {
		return s, nil
	}
	if strings.HasPrefix(s, "#") {
		if len(s) != 4 && len(s) != 7 {
			return "", fmt.Errorf("%w: colour %q", ErrInvalidInput, s)
		}
		c, err := colorful.Hex(s)
		if err != nil {
			return "", fmt.Errorf("%w: colour %q", ErrInvalidInput, s)
		}
		return c.Hex(), nil
	}
	if named, ok := tcell.ColorNames[s]; ok && named.Hex() >= 0 {
		return fmt.Sprintf("#%06x", named.Hex()), nil
	}
	return "", fmt.Errorf("%w: colour %q", ErrInvalidInput, s)
}

// ChangeStrokeColor sets the stroke colour of the selection and of new items.
func ChangeStrokeColor() *action.Action {
	return colorAction("changeStrokeColor", "labels.stroke", scene.FieldStrokeColor, func(e *scene.Element, c string) {
		e.StrokeColor = c
	})
}

// ChangeBackgroundColor sets the fill colour of the selection and of new items.
func ChangeBackgroundColor() *action.Action {
	return colorAction("changeBackgroundColor", "labels.background", scene.FieldBackgroundColor, func(e *scene.Element, c string) {
		e.BackgroundColor = c
	})
}

func colorAction(name, label, field string, set func(*scene.Element, string)) *action.Action {
	return &action.Action{
		Name:     name,
		Label:    label,
		Keywords: []string{"colour", "color"},
		Enabled:  editable,
		Perform: func(els scene.Elements, st scene.AppState, input any) (action.Result, error) {
			raw, ok := input.(string)
			if !ok {
				return action.Result{}, fmt.Errorf("%w: %s expects a colour string", ErrInvalidInput, name)
			}
			c, err := NormalizeColor(raw)
			if err != nil {
				return action.Result{}, err
			}
			return styleResult(els, st, field, c, func(e *scene.Element) { set(e, c) }), nil
		},
	}
}

// PasteStrokeColor applies a colour read from the clipboard as stroke colour.
// The clipboard is read by the caller; the input is the clipboard text.
func PasteStrokeColor() *action.Action {
	a := ChangeStrokeColor()
	a.Name = "pasteStrokeColor"
	a.Label = "labels.pasteStrokeColor"
	a.Keywords = []string{"clipboard", "paste", "colour", "color"}
	return a
}

// ChangeStrokeWidth sets the stroke width (number, Adjust or "[" / "]" keys).
func ChangeStrokeWidth() *action.Action {
	return &action.Action{
		Name:     "changeStrokeWidth",
		Label:    "labels.strokeWidth",
		Keywords: []string{"thickness", "width"},
		Keys:     []string{"[", "]"},
		Enabled:  editable,
		Perform: func(els scene.Elements, st scene.AppState, input any) (action.Result, error) {
			if ev, ok := input.(*tcell.EventKey); ok {
				input = Adjust(StrokeWidthStep)
				if ev.Rune() == '[' {
					input = Adjust(-StrokeWidthStep)
				}
			}
			v, relative, err := number(input)
			if err != nil {
				return action.Result{}, err
			}
			if relative {
				v += st.Float(scene.FieldStrokeWidth)
			}
			w := clamp(v, StrokeWidthMin, StrokeWidthMax)
			return styleResult(els, st, scene.FieldStrokeWidth, w, func(e *scene.Element) { e.StrokeWidth = w }), nil
		},
	}
}

// ChangeOpacity sets the opacity in percent (0..100).
func ChangeOpacity() *action.Action {
	return &action.Action{
		Name:     "changeOpacity",
		Label:    "labels.opacity",
		Keywords: []string{"transparency", "alpha"},
		Enabled:  editable,
		Perform: func(els scene.Elements, st scene.AppState, input any) (action.Result, error) {
			v, relative, err := number(input)
			if err != nil {
				return action.Result{}, err
			}
			if relative {
				v += st.Float(scene.FieldOpacity)
			}
			o := int(clamp(v, 0, 100) + 0.5)
			return styleResult(els, st, scene.FieldOpacity, o, func(e *scene.Element) { e.Opacity = o }), nil
		},
	}
}

// styleResult applies a style to the selection and records it as the
// default for new items.
func styleResult(els scene.Elements, st scene.AppState, field string, value any, apply func(*scene.Element)) action.Result {
	ids := scene.State{Elements: els, AppState: st}.SelectedIDs()
	return action.Result{
		Elements: els.Update(ids, apply),
		AppState: st.With(field, value),
		Capture:  history.CaptureEventually,
	}
}
