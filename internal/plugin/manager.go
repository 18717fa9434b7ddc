// internal/plugin/manager.go
package plugin

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bethropolis/chalk/internal/logger"
)

var (
	// ErrEmptyName is returned when a plugin has no name.
	ErrEmptyName = errors.New("plugin name cannot be empty")
	// ErrDuplicate is returned when a plugin name is registered twice.
	ErrDuplicate = errors.New("plugin already registered")
)

// Manager handles the registration, initialization, and lifecycle of plugins.
type Manager struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
	order   []string // registration order; init and shutdown follow it
}

// NewManager creates a new plugin manager.
func NewManager() *Manager {
	return &Manager{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin instance to the manager.
// This should be called before InitializePlugins.
func (m *Manager) Register(p Plugin) error {
	if p == nil {
		return fmt.Errorf("plugin registration failed: %w", ErrEmptyName)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	name := p.Name()
	if name == "" {
		return fmt.Errorf("plugin registration failed: %w", ErrEmptyName)
	}
	if _, exists := m.plugins[name]; exists {
		return fmt.Errorf("plugin registration failed: '%s': %w", name, ErrDuplicate)
	}

	m.plugins[name] = p
	m.order = append(m.order, name)
	logger.Debugf("Plugin Manager: Registered plugin '%s'", name)
	return nil
}

// InitializePlugins calls Initialize on every plugin in registration order.
// A failing plugin is logged and skipped; the others still load.
// It returns the number of plugins that initialized.
func (m *Manager) InitializePlugins(host Host) int {
	plugins := m.snapshot()

	logger.Infof("Plugin Manager: Initializing %d plugins...", len(plugins))
	ok := 0
	for _, p := range plugins {
		if err := p.Initialize(host); err != nil {
			logger.Errorf("Plugin Manager: ERROR initializing plugin '%s': %v", p.Name(), err)
			continue
		}
		ok++
		logger.Debugf("Plugin Manager: Successfully initialized plugin '%s'", p.Name())
	}
	return ok
}

// ShutdownPlugins calls Shutdown on all registered plugins, newest first.
func (m *Manager) ShutdownPlugins() {
	plugins := m.snapshot()

	logger.Debugf("Plugin Manager: Shutting down %d plugins...", len(plugins))
	for i := len(plugins) - 1; i >= 0; i-- {
		if err := plugins[i].Shutdown(); err != nil {
			logger.Errorf("Plugin Manager: ERROR shutting down plugin '%s': %v", plugins[i].Name(), err)
		}
	}
}

// GetPlugin returns a registered plugin by name.
func (m *Manager) GetPlugin(name string) (Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, exists := m.plugins[name]
	return p, exists
}

// Names returns the plugin names in registration order.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.order...)
}

func (m *Manager) snapshot() []Plugin {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Plugin, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.plugins[name])
	}
	return out
}
