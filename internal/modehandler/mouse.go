package modehandler

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/chalk/internal/action"
	"github.com/bethropolis/chalk/internal/actions"
	"github.com/bethropolis/chalk/internal/logger"
	"github.com/bethropolis/chalk/internal/scene"
	"github.com/bethropolis/chalk/internal/tui"
)

// HandleMouseEvent selects on press and moves the selection while the
// primary button is held. A drag is one interaction, so it becomes a single
// undo step on release. Rows from viewHeight down belong to the status bar.
func (mh *ModeHandler) HandleMouseEvent(ev *tcell.EventMouse, viewHeight int) bool {
	mh.mu.Lock()
	defer mh.mu.Unlock()

	if mh.currentMode != ModeNormal {
		return false
	}
	x, y := ev.Position()
	pressed := ev.Buttons()&tcell.Button1 != 0

	switch {
	case pressed && !mh.dragging:
		if y >= viewHeight {
			return false
		}
		return mh.press(x, y, ev.Modifiers()&tcell.ModShift != 0)

	case pressed && mh.dragging:
		return mh.drag(x, y)

	case !pressed && mh.dragging:
		mh.endDrag()
		return true
	}
	return false
}

func (mh *ModeHandler) press(x, y int, additive bool) bool {
	st := mh.store.State()
	sx, sy := tui.ScreenToScene(x, y, st.AppState.Float(scene.FieldScrollX))

	out, err := mh.actions.Execute("selectElement", action.SourceUI, actions.Point{X: sx, Y: sy, Additive: additive})
	if err != nil {
		logger.Warnf("ModeHandler: select at %d,%d: %v", x, y, err)
		return false
	}
	if out.Status != action.StatusApplied {
		return false
	}

	// Dragging starts only from an element that is now selected.
	hit, ok := st.Elements.HitTest(sx, sy)
	if !ok || additive {
		return true
	}
	for _, id := range mh.store.State().SelectedIDs() {
		if id == hit.ID {
			mh.dragging = true
			mh.lastX, mh.lastY = x, y
			mh.store.BeginInteraction()
			logger.DebugTagf("mouse", "ModeHandler: drag started on %s", hit.ID)
			break
		}
	}
	return true
}

func (mh *ModeHandler) drag(x, y int) bool {
	dx, dy := x-mh.lastX, y-mh.lastY
	if dx == 0 && dy == 0 {
		return false
	}
	mh.lastX, mh.lastY = x, y

	out, err := mh.actions.Execute("moveSelection", action.SourceUI, actions.Offset{DX: float64(dx), DY: float64(dy)})
	if err != nil {
		logger.Warnf("ModeHandler: drag: %v", err)
		return false
	}
	return out.Status == action.StatusApplied
}

// endDrag closes an open drag interaction. Caller holds mh.mu.
func (mh *ModeHandler) endDrag() {
	if !mh.dragging {
		return
	}
	mh.dragging = false
	if mh.store.EndInteraction() {
		logger.DebugTagf("mouse", "ModeHandler: drag committed")
	}
}
