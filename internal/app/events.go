package app

import (
	"github.com/bethropolis/chalk/internal/event"
	"github.com/bethropolis/chalk/internal/logger"
)

// handleSceneChanged redraws after any Document State replacement
func (a *App) handleSceneChanged(e event.Event) bool {
	if data, ok := e.Data.(event.SceneChangedData); ok {
		logger.DebugTagf("event", "App: scene changed by %s (%d fields)", data.Source, len(data.ChangedFields))
	}
	a.requestRedraw()
	return false // Not consumed
}

// handleHistoryChanged keeps the undo/redo indicator current
func (a *App) handleHistoryChanged(e event.Event) bool {
	if data, ok := e.Data.(event.HistoryChangedData); ok {
		a.statusBar.SetHistory(data.Past, data.Future, data.Pending)
		a.requestRedraw()
	}
	return false // Not consumed
}

// handleRemoteApplied reports merged collaboration updates
func (a *App) handleRemoteApplied(e event.Event) bool {
	data, ok := e.Data.(event.RemoteAppliedData)
	if !ok {
		return false
	}
	if data.Rejected > 0 {
		a.statusBar.SetTemporaryMessage("Remote update: %d merged, %d kept local", data.Accepted, data.Rejected)
	} else if data.Accepted > 0 {
		a.statusBar.SetTemporaryMessage("Remote update: %d merged", data.Accepted)
	}
	a.requestRedraw()
	return false
}

func (a *App) handleActionTracked(e event.Event) bool {
	if data, ok := e.Data.(event.ActionTrackedData); ok {
		logger.DebugTagf("telemetry", "App: tracked %s/%s", data.Category, data.Action)
	}
	return false
}
