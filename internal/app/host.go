// internal/app/host.go
package app

import (
	"github.com/bethropolis/chalk/internal/action"
	"github.com/bethropolis/chalk/internal/event"
	"github.com/bethropolis/chalk/internal/plugin"
	"github.com/bethropolis/chalk/internal/scene"
)

// Ensure appHost implements the plugin.Host interface.
var _ plugin.Host = (*appHost)(nil)

// appHost is the plugin-facing view of the App.
type appHost struct {
	app *App // Reference back to the main application
}

func newHost(app *App) *appHost {
	return &appHost{app: app}
}

// --- Actions ---

func (h *appHost) RegisterAction(a *action.Action) error {
	return h.app.registry.Register(a)
}

// Execute runs an action on behalf of a plugin.
func (h *appHost) Execute(name string, input any) (action.Outcome, error) {
	return h.app.actionManager.Execute(name, action.SourceAPI, input)
}

// --- Document State ---

func (h *appHost) State() scene.State {
	return h.app.store.State()
}

// --- History ---

func (h *appHost) FlushHistory() bool {
	return h.app.store.Flush()
}

func (h *appHost) HistoryPending() bool {
	return h.app.store.History().Pending()
}

func (h *appHost) HistoryInInteraction() bool {
	return h.app.store.History().InInteraction()
}

// --- Event Bus Interaction ---

func (h *appHost) Subscribe(eventType event.Type, handler event.Handler) {
	h.app.eventManager.Subscribe(eventType, handler)
}

// --- Status Bar ---

func (h *appHost) SetStatusMessage(format string, args ...interface{}) {
	h.app.SetStatusMessage(format, args...)
}

// --- Configuration ---

func (h *appHost) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	return h.app.config.PluginValue(pluginName, key)
}
