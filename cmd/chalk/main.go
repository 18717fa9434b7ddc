// cmd/chalk/main.go
package main

import (
	"fmt"
	stlog "log" // Use standard log for FATAL errors before logger is ready
	"os"

	"github.com/bethropolis/chalk/internal/app"
	"github.com/bethropolis/chalk/internal/config"
	"github.com/bethropolis/chalk/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// --- Argument & Flag Parsing ---
	flags := config.NewFlags(nil)
	if _, err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		os.Exit(0)
	}

	// --- Configuration ---
	cfg, err := config.LoadConfig(*flags.ConfigFilePath, flags)
	if err != nil {
		// Defaults and flags still apply; report once the logger is up.
		stlog.Printf("Warning: %v", err)
	}

	// --- Logger Initialization ---
	logPath := cfg.Logger.LogFilePath
	if logPath == "" {
		// stderr would draw over the canvas
		logPath = config.DefaultLogFileName
	}
	output, closeLog, err := logger.OpenOutput(logPath)
	if err != nil {
		stlog.Fatalf("Failed to open log file '%s': %v", logPath, err)
	}
	defer closeLog()

	logger.Init(cfg.Logger, output)
	logger.SetFilterDebug(*flags.DebugLog)
	cfg.ReportLoad()

	logger.Infof("Starting %s %s...", config.AppName, version)
	logger.Debugf("Log file: %s", logPath)

	// --- Create and Run App ---
	chalkApp, err := app.NewApp(cfg, app.Options{})
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		closeLog()
		os.Exit(1)
	}

	if err := chalkApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		closeLog()
		os.Exit(1)
	}

	logger.Infof("%s finished.", config.AppName)
}
