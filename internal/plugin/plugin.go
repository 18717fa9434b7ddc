// internal/plugin/plugin.go
package plugin

import (
	"github.com/bethropolis/chalk/internal/action"
	"github.com/bethropolis/chalk/internal/event"
	"github.com/bethropolis/chalk/internal/scene"
)

// Host defines the methods plugins can use to interact with the editor.
// This acts as a controlled interface, preventing plugins from accessing everything.
type Host interface {
	// --- Actions ---
	RegisterAction(a *action.Action) error
	Execute(name string, input any) (action.Outcome, error)

	// --- Document State (read-only) ---
	State() scene.State

	// --- History ---
	FlushHistory() bool
	HistoryPending() bool
	HistoryInInteraction() bool

	// --- Event Bus Interaction ---
	Subscribe(eventType event.Type, handler event.Handler)

	// --- Status Bar ---
	SetStatusMessage(format string, args ...interface{})

	// --- Configuration ---
	GetPluginConfigValue(pluginName, key string) (interface{}, bool)
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded.
	// Used for setup, subscribing to events, registering actions.
	Initialize(host Host) error

	// Shutdown is called once when the editor is closing.
	Shutdown() error
}
