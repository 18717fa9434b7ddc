package app

import (
	"github.com/bethropolis/chalk/internal/logger"
	"github.com/bethropolis/chalk/internal/scene"
	"github.com/bethropolis/chalk/internal/statusbar"
	"github.com/bethropolis/chalk/internal/tui"
)

// viewHeight is the number of rows left for the canvas.
func (a *App) viewHeight() int {
	_, height := a.tuiManager.Size()
	return height - a.config.Editor.StatusBarHeight
}

// drawEditor clears screen and redraws all components.
func (a *App) drawEditor() {
	a.updateStatusBarContent()

	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()
	viewHeight := a.viewHeight()

	logger.DebugTagf("draw", "drawEditor: Screen Size (%d x %d), ViewHeight: %d", width, height, viewHeight)

	a.tuiManager.Clear()
	tui.DrawScene(a.tuiManager, a.store.State(), a.activeTheme, viewHeight)
	if items, selected := a.modeHandler.PaletteState(); len(items) > 0 {
		tui.DrawPalette(a.tuiManager, items, selected, a.activeTheme, viewHeight)
	}
	a.statusBar.Draw(screen, width, height, a.activeTheme)
	a.tuiManager.Show()
}

// updateStatusBarContent pushes the current scene summary to the status bar.
func (a *App) updateStatusBarContent() {
	st := a.store.State()
	a.statusBar.SetScene(statusbar.SceneInfo{
		Tool:       st.AppState.String(scene.FieldActiveTool),
		Elements:   len(st.Elements.Visible()),
		Selected:   len(st.SelectedIDs()),
		Whiteboard: st.AppState.Bool(scene.FieldWhiteboardMode),
		ViewMode:   st.AppState.Bool(scene.FieldViewModeEnabled),
	})
}

// SetStatusMessage shows a temporary message and redraws.
func (a *App) SetStatusMessage(format string, args ...interface{}) {
	a.statusBar.SetTemporaryMessage(format, args...)
	a.requestRedraw()
}
