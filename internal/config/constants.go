package config

import "time"

// Base application details
const AppName = "chalk"
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "chalk.log"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

// Clipboard reads that take longer than this fall back to the internal buffer.
const PasteTimeout = 500 * time.Millisecond

// History
const DefaultMaxHistory = 100

const SystemClipboard = true
const DefaultViewportWidth = 800.0
