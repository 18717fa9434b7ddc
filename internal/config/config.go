// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/bethropolis/chalk/internal/action"
	"github.com/bethropolis/chalk/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger    logger.Config   `toml:"logger"`    // Embed logger config under [logger] table
	History   HistoryConfig   `toml:"history"`   // Undo/redo settings
	Editor    EditorConfig    `toml:"editor"`    // Editor-specific settings
	Telemetry TelemetryConfig `toml:"telemetry"` // Action tracking

	// Keys rebinds actions: action name to shortcut specs, e.g.
	// changeStrokeWidth = ["ctrl+up"]. An empty list unbinds the action.
	Keys map[string][]string `toml:"keys"`

	// Plugins holds free-form per-plugin tables, [plugins.<name>].
	Plugins map[string]map[string]interface{} `toml:"plugins"`

	source      string
	undecoded   []string
	invalidKeys []string
}

// HistoryConfig holds history settings.
type HistoryConfig struct {
	MaxEntries int `toml:"max_entries"`
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	SystemClipboard bool    `toml:"system_clipboard"`
	WhiteboardMode  bool    `toml:"whiteboard_mode"` // start in whiteboard mode
	ViewportWidth   float64 `toml:"viewport_width"`  // scene units one page move scrolls
	StatusBarHeight int     `toml:"status_bar_height"`
	Theme           string  `toml:"theme"` // path to a theme TOML file; empty uses the built-in theme
}

// TelemetryConfig controls where tracked actions go.
type TelemetryConfig struct {
	Enabled bool `toml:"enabled"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		History: HistoryConfig{
			MaxEntries: DefaultMaxHistory,
		},
		Editor: EditorConfig{
			SystemClipboard: SystemClipboard,
			ViewportWidth:   DefaultViewportWidth,
			StatusBarHeight: StatusBarHeight,
		},
		Keys:    map[string][]string{},
		Plugins: map[string]map[string]interface{}{},
	}
}

// loadFromFile decodes filePath over cfg. A missing file is not an error
// and leaves cfg untouched.
func loadFromFile(filePath string, cfg *Config) (bool, error) {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return false, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		// Unknown keys are tolerated; they are reported once the logger is up.
		cfg.undecoded = make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			cfg.undecoded = append(cfg.undecoded, k.String())
		}
	}
	return true, nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.History.MaxEntries <= 0 {
		c.History.MaxEntries = defaults.History.MaxEntries
	}
	if c.Editor.ViewportWidth <= 0 {
		c.Editor.ViewportWidth = defaults.Editor.ViewportWidth
	}
	if c.Editor.StatusBarHeight <= 0 {
		c.Editor.StatusBarHeight = defaults.Editor.StatusBarHeight
	}
	if c.Keys == nil {
		c.Keys = defaults.Keys
	}
	if c.Plugins == nil {
		c.Plugins = defaults.Plugins
	}
	for name, specs := range c.Keys {
		for _, spec := range specs {
			if _, err := action.ParseKey(spec); err != nil {
				c.invalidKeys = append(c.invalidKeys, fmt.Sprintf("%s: %v", name, err))
				delete(c.Keys, name)
				break
			}
		}
	}
}

// Load builds a configuration from defaults, the file at path and flags,
// without touching package state. An empty path means the default location.
func Load(path string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	effectivePath := path
	if effectivePath == "" {
		effectivePath = DefaultPath()
	}

	var err error
	if effectivePath != "" {
		cfg.source = effectivePath
		if _, ferr := loadFromFile(effectivePath, cfg); ferr != nil {
			// Keep going with whatever decoded cleanly; the caller decides.
			err = ferr
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, err
}

// LoadConfig orchestrates loading defaults, file, applying flags, and validation.
// It should be called only once, typically from main.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		loadedConfig, loadErr = Load(configFilePath, flags)
	})
	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}

// DefaultPath returns ~/.config/chalk/config.toml, or "" when the user
// config directory cannot be determined.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName)
}

// PluginValue returns a value from the [plugins.<name>] table.
func (c *Config) PluginValue(pluginName, key string) (interface{}, bool) {
	table, ok := c.Plugins[pluginName]
	if !ok {
		return nil, false
	}
	v, ok := table[key]
	return v, ok
}

// ReportLoad logs what happened while loading. It is separate from Load
// because the logger is configured from the loaded values.
func (c *Config) ReportLoad() {
	if c.source != "" {
		logger.DebugTagf("config", "Config: Using file %s", c.source)
	}
	if len(c.undecoded) > 0 {
		logger.Warnf("Config: Unrecognized keys: %v", c.undecoded)
	}
	for _, msg := range c.invalidKeys {
		logger.Warnf("Config: Ignoring key binding %s", msg)
	}
}
