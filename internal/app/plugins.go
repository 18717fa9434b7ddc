package app

import (
	"fmt" // For error wrapping

	"github.com/bethropolis/chalk/internal/logger"
	"github.com/bethropolis/chalk/internal/plugin"

	// Import desired plugin packages here
	"github.com/bethropolis/chalk/plugins/autocommit"
	"github.com/bethropolis/chalk/plugins/stats"
)

// registerPlugins registers all known plugins with the manager.
func registerPlugins(pm *plugin.Manager) error {
	if pm == nil {
		return fmt.Errorf("plugin manager is nil")
	}

	// List of plugin constructors
	// Adding a new plugin means adding its constructor here.
	pluginConstructors := []func() plugin.Plugin{
		func() plugin.Plugin { return stats.New() },
		autocommit.New,
	}

	var finalErr error
	for _, newPlugin := range pluginConstructors {
		p := newPlugin()
		pluginName := p.Name() // Get name for logging

		logger.Debugf("Registering plugin: %s", pluginName)
		if err := pm.Register(p); err != nil {
			// Log the error but continue registering others
			wrappedErr := fmt.Errorf("failed to register plugin '%s': %w", pluginName, err)
			logger.Errorf("%v", wrappedErr)
			if finalErr == nil {
				finalErr = wrappedErr // Store the first error encountered
			}
		}
	}

	return finalErr
}
