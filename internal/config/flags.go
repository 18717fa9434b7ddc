// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
	"strings"
)

// Flags holds values parsed from command-line flags.
// Use pointers to distinguish between unset flags and zero-value flags.
type Flags struct {
	fs *flag.FlagSet

	ConfigFilePath  *string
	Version         *bool
	LogLevel        *string
	LogFilePath     *string
	EnableTags      *string
	DisableTags     *string
	EnablePkgs      *string
	DisablePkgs     *string
	DebugLog        *bool
	SystemClipboard *bool
	MaxHistory      *int
	Whiteboard      *bool
	Telemetry       *bool
	ThemePath       *string
}

// NewFlags defines the command-line flags on fs. A nil fs uses the
// process-wide flag.CommandLine.
func NewFlags(fs *flag.FlagSet) *Flags {
	if fs == nil {
		fs = flag.CommandLine
	}
	f := &Flags{fs: fs}
	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.Version = fs.Bool("version", false, "Show version information and exit")
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	f.DebugLog = fs.Bool("debug-log", false, "Enable verbose debug logging for the logger filtering system")
	f.SystemClipboard = fs.Bool("system-clipboard", SystemClipboard, "Use system clipboard instead of internal clipboard")
	f.MaxHistory = fs.Int("history", 0, "Maximum undo steps kept - Overrides config file")
	f.Whiteboard = fs.Bool("whiteboard", false, "Start in whiteboard mode")
	f.Telemetry = fs.Bool("telemetry", false, "Log tracked actions")
	f.ThemePath = fs.String("theme", "", "Path to a theme TOML file - Overrides config file")
	return f
}

// Parse parses args and returns the remaining non-flag arguments
// (e.g., the scene file path).
func (f *Flags) Parse(args []string) ([]string, error) {
	if err := f.fs.Parse(args); err != nil {
		return nil, err
	}
	return f.fs.Args(), nil
}

// ApplyOverrides updates the Config struct with values from flags *if* they were set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	// Visit only processes flags that were actually set
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath // Empty string is valid ("-")
		case "system-clipboard":
			cfg.Editor.SystemClipboard = *f.SystemClipboard
		case "history":
			if *f.MaxHistory > 0 {
				cfg.History.MaxEntries = *f.MaxHistory
			}
		case "whiteboard":
			cfg.Editor.WhiteboardMode = *f.Whiteboard
		case "telemetry":
			cfg.Telemetry.Enabled = *f.Telemetry
		case "theme":
			cfg.Editor.Theme = *f.ThemePath
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		}
	})
}

// splitCommaList splits a comma-separated list, dropping empty items.
func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
