package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[logger]
log_level = "debug"
disabled_tags = ["event"]

[history]
max_entries = 25

[editor]
whiteboard_mode = true
viewport_width = -3.0

[telemetry]
enabled = true

[keys]
changeStrokeWidth = ["ctrl+up", "ctrl+down"]
selectAll = ["hyper+a"]

[plugins.autocommit]
enabled = true
interval = "5s"

[mystery]
value = 1
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func newTestFlags(t *testing.T, args ...string) *Flags {
	t.Helper()
	f := NewFlags(flag.NewFlagSet("chalk", flag.ContinueOnError))
	rest, err := f.Parse(args)
	require.NoError(t, err)
	assert.Empty(t, rest)
	return f
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"), nil)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logger.LogLevel)
	assert.Equal(t, DefaultMaxHistory, cfg.History.MaxEntries)
	assert.True(t, cfg.Editor.SystemClipboard)
	assert.False(t, cfg.Editor.WhiteboardMode)
	assert.Equal(t, DefaultViewportWidth, cfg.Editor.ViewportWidth)
	assert.NotNil(t, cfg.Keys)
}

func TestLoad_File(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig), nil)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.LogLevel)
	assert.Equal(t, []string{"event"}, cfg.Logger.DisabledTags)
	assert.Equal(t, 25, cfg.History.MaxEntries)
	assert.True(t, cfg.Editor.WhiteboardMode)
	assert.True(t, cfg.Editor.SystemClipboard, "unset keys keep their defaults")
	assert.Equal(t, DefaultViewportWidth, cfg.Editor.ViewportWidth, "invalid values are reset")
	assert.True(t, cfg.Telemetry.Enabled)

	assert.Equal(t, []string{"ctrl+up", "ctrl+down"}, cfg.Keys["changeStrokeWidth"])
	assert.NotContains(t, cfg.Keys, "selectAll", "bindings that do not parse are dropped")
	assert.Len(t, cfg.invalidKeys, 1)
	assert.NotEmpty(t, cfg.undecoded)

	v, ok := cfg.PluginValue("autocommit", "interval")
	require.True(t, ok)
	assert.Equal(t, "5s", v)
	_, ok = cfg.PluginValue("stats", "enabled")
	assert.False(t, ok)
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	flags := newTestFlags(t,
		"-loglevel", "warn",
		"-history", "7",
		"-whiteboard=false",
		"-system-clipboard=false",
		"-log-tags", "history, action,",
	)
	cfg, err := Load(writeConfig(t, sampleConfig), flags)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logger.LogLevel)
	assert.Equal(t, 7, cfg.History.MaxEntries)
	assert.False(t, cfg.Editor.WhiteboardMode)
	assert.False(t, cfg.Editor.SystemClipboard)
	assert.Equal(t, []string{"history", "action"}, cfg.Logger.EnabledTags)
}

func TestLoad_ParseErrorKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[history\nmax_entries = 3"), nil)
	assert.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, DefaultMaxHistory, cfg.History.MaxEntries)
}
