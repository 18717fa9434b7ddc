// internal/modehandler/modehandler.go
package modehandler

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/chalk/internal/action"
	"github.com/bethropolis/chalk/internal/clipboard"
	"github.com/bethropolis/chalk/internal/history"
	"github.com/bethropolis/chalk/internal/input"
	"github.com/bethropolis/chalk/internal/logger"
	"github.com/bethropolis/chalk/internal/scene"
	"github.com/bethropolis/chalk/internal/statusbar"
	"github.com/bethropolis/chalk/internal/store"
)

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModePalette
)

func (m InputMode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModePalette:
		return "palette"
	default:
		return "unknown"
	}
}

// ModeHandler routes key and mouse events to shell commands and actions.
type ModeHandler struct {
	// Dependencies (references to components managed by App)
	actions        *action.Manager
	store          *store.Store
	inputProcessor *input.Processor
	clipboard      *clipboard.Manager
	statusBar      *statusbar.StatusBar
	quitSignal     chan<- struct{} // Channel to signal app termination
	pasteTimeout   time.Duration

	mu          sync.Mutex
	currentMode InputMode
	quitOnce    sync.Once

	// Palette state
	query    string
	results  []action.Descriptor
	selected int

	// Mouse drag state
	dragging     bool
	lastX, lastY int
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Actions        *action.Manager
	Store          *store.Store
	InputProcessor *input.Processor
	Clipboard      *clipboard.Manager
	StatusBar      *statusbar.StatusBar
	QuitSignal     chan<- struct{} // Write-only channel to signal quit
	PasteTimeout   time.Duration
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.Actions == nil || cfg.Store == nil || cfg.InputProcessor == nil || cfg.Clipboard == nil || cfg.StatusBar == nil || cfg.QuitSignal == nil {
		// Programming error during setup
		panic("modehandler.New: Missing required dependencies in Config")
	}
	if cfg.PasteTimeout <= 0 {
		cfg.PasteTimeout = 500 * time.Millisecond
	}
	return &ModeHandler{
		actions:        cfg.Actions,
		store:          cfg.Store,
		inputProcessor: cfg.InputProcessor,
		clipboard:      cfg.Clipboard,
		statusBar:      cfg.StatusBar,
		quitSignal:     cfg.QuitSignal,
		pasteTimeout:   cfg.PasteTimeout,
		currentMode:    ModeNormal,
	}
}

// HandleKeyEvent decides what to do based on current mode and key event.
// Returns true if the event resulted in something requiring redraw.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	mh.mu.Lock()
	defer mh.mu.Unlock()

	switch mh.currentMode {
	case ModeNormal:
		return mh.handleNormal(ev)
	case ModePalette:
		return mh.handlePalette(ev)
	default:
		logger.Warnf("ModeHandler: Unknown input mode: %v", mh.currentMode)
		return false
	}
}

// handleNormal tries shell commands first, then action shortcuts.
func (mh *ModeHandler) handleNormal(ev *tcell.EventKey) bool {
	if cmd := mh.inputProcessor.ProcessEvent(ev); cmd != input.CommandNone {
		return mh.runCommand(cmd)
	}

	out, err := mh.actions.ExecuteByShortcut(ev, action.SourceKeyboard)
	if err != nil {
		mh.statusBar.SetTemporaryMessage("%s failed: %v", out.Action, err)
		logger.Debugf("ModeHandler: shortcut %s: %v", ev.Name(), err)
		return true
	}
	if out.Status == action.StatusNoMatch {
		logger.DebugTagf("keys", "ModeHandler: unbound key %s", ev.Name())
		return false
	}
	return out.Status == action.StatusApplied
}

// runCommand executes a shell command. Caller holds mh.mu.
func (mh *ModeHandler) runCommand(cmd input.Command) bool {
	logger.Debugf("ModeHandler: command %s", cmd)
	switch cmd {
	case input.CommandQuit:
		mh.quit()
		return false

	case input.CommandUndo:
		mh.endDrag()
		if err := mh.store.Undo(); err != nil {
			if errors.Is(err, history.ErrEmptyHistory) {
				mh.statusBar.SetTemporaryMessage("Already at oldest change")
			} else {
				mh.statusBar.SetTemporaryMessage("Undo failed: %v", err)
			}
		}

	case input.CommandRedo:
		mh.endDrag()
		if err := mh.store.Redo(); err != nil {
			if errors.Is(err, history.ErrEmptyHistory) {
				mh.statusBar.SetTemporaryMessage("Already at newest change")
			} else {
				mh.statusBar.SetTemporaryMessage("Redo failed: %v", err)
			}
		}

	case input.CommandCommit:
		if mh.store.Flush() {
			mh.statusBar.SetTemporaryMessage("Change committed")
		} else {
			mh.statusBar.SetTemporaryMessage("Nothing to commit")
		}

	case input.CommandPalette:
		mh.enterPalette()

	case input.CommandCopyStyle:
		color := mh.store.State().AppState.String(scene.FieldStrokeColor)
		if err := mh.clipboard.Copy(color); err != nil {
			mh.statusBar.SetTemporaryMessage("Copy failed: %v", err)
			return true
		}
		mh.statusBar.SetTemporaryMessage("Copied %s", color)

	case input.CommandPasteStyle:
		mh.pasteStyle()

	default:
		return false
	}
	return true
}

// pasteStyle reads the clipboard and hands the text to pasteStrokeColor.
func (mh *ModeHandler) pasteStyle() {
	ctx, cancel := context.WithTimeout(context.Background(), mh.pasteTimeout)
	defer cancel()

	text, err := mh.clipboard.Paste(ctx)
	if err != nil {
		mh.statusBar.SetTemporaryMessage("Paste failed: %v", err)
		return
	}
	if text == "" {
		mh.statusBar.SetTemporaryMessage("Clipboard empty")
		return
	}
	mh.applyPastedColor(text)
}

// HandlePaste receives text from a bracketed terminal paste. In the palette
// it extends the query; otherwise it is treated as a pasted stroke colour.
func (mh *ModeHandler) HandlePaste(text string) bool {
	mh.mu.Lock()
	defer mh.mu.Unlock()

	if mh.currentMode == ModePalette {
		mh.query += strings.Join(strings.Fields(text), " ")
		mh.refreshPalette()
		return true
	}
	if strings.TrimSpace(text) == "" {
		return false
	}
	mh.applyPastedColor(text)
	return true
}

func (mh *ModeHandler) applyPastedColor(text string) {
	out, err := mh.actions.Execute("pasteStrokeColor", action.SourceKeyboard, text)
	switch {
	case err != nil:
		mh.statusBar.SetTemporaryMessage("Clipboard does not hold a colour")
		logger.Debugf("ModeHandler: pasteStrokeColor: %v", err)
	case out.Status == action.StatusDisabled:
		mh.statusBar.SetTemporaryMessage("Paste is disabled in view mode")
	}
}

func (mh *ModeHandler) quit() {
	mh.quitOnce.Do(func() {
		logger.Infof("ModeHandler: quit requested")
		close(mh.quitSignal)
	})
}

// GetCurrentMode returns the current input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	mh.mu.Lock()
	defer mh.mu.Unlock()
	return mh.currentMode
}
