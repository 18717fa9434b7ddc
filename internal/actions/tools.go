package actions

import (
	"fmt"
	"slices"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/chalk/internal/action"
	"github.com/bethropolis/chalk/internal/history"
	"github.com/bethropolis/chalk/internal/scene"
)

// Tools lists the tool types setActiveTool accepts.
var Tools = []string{
	"hand", "freedraw", "eraser", "selection", "rectangle",
	"diamond", "ellipse", "arrow", "line", "text", "image",
}

// toolKeys binds single keys to tools.
var toolKeys = map[rune]string{
	'h': "hand",
	'v': "selection", '1': "selection",
	'r': "rectangle", '2': "rectangle",
	'd': "diamond", '3': "diamond",
	'o': "ellipse", '4': "ellipse",
	'a': "arrow", '5': "arrow",
	'l': "line", '6': "line",
	'p': "freedraw", '7': "freedraw",
	't': "text", '8': "text",
	'9': "image",
	'e': "eraser", '0': "eraser",
}

func toolForKey(ev *tcell.EventKey) (string, bool) {
	if ev.Key() != tcell.KeyRune || ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) != 0 {
		return "", false
	}
	tool, ok := toolKeys[ev.Rune()]
	return tool, ok
}

// SetActiveTool switches the drawing tool. Input is the tool name or the
// triggering key event.
func SetActiveTool() *action.Action {
	return &action.Action{
		Name:     "setActiveTool",
		Label:    "toolBar.selection",
		Keywords: Tools,
		KeyTest: func(ev *tcell.EventKey, _ scene.State) bool {
			_, ok := toolForKey(ev)
			return ok
		},
		Perform: func(els scene.Elements, st scene.AppState, input any) (action.Result, error) {
			var tool string
			switch v := input.(type) {
			case string:
				tool = v
			case *tcell.EventKey:
				tool, _ = toolForKey(v)
			}
			if !slices.Contains(Tools, tool) {
				return action.Result{}, fmt.Errorf("%w: unknown tool %q", ErrInvalidInput, tool)
			}
			next := st.With(scene.FieldActiveTool, tool)
			if tool != "selection" {
				next = next.With(scene.FieldSelectedElementIDs, []string{})
			}
			return action.Result{AppState: next, Capture: history.CaptureNever}, nil
		},
	}
}
