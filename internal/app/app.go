// internal/app/app.go
package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/chalk/internal/action"
	"github.com/bethropolis/chalk/internal/actions"
	"github.com/bethropolis/chalk/internal/clipboard"
	"github.com/bethropolis/chalk/internal/collab"
	"github.com/bethropolis/chalk/internal/config"
	"github.com/bethropolis/chalk/internal/event"
	"github.com/bethropolis/chalk/internal/history"
	"github.com/bethropolis/chalk/internal/input"
	"github.com/bethropolis/chalk/internal/logger"
	"github.com/bethropolis/chalk/internal/modehandler"
	"github.com/bethropolis/chalk/internal/plugin"
	"github.com/bethropolis/chalk/internal/scene"
	"github.com/bethropolis/chalk/internal/statusbar"
	"github.com/bethropolis/chalk/internal/store"
	"github.com/bethropolis/chalk/internal/telemetry"
	"github.com/bethropolis/chalk/internal/theme"
	"github.com/bethropolis/chalk/internal/tui"
)

// Options carries what NewApp cannot take from the configuration.
type Options struct {
	Screen    tcell.Screen       // nil opens the real terminal
	Clipboard clipboard.Provider // nil follows config.Editor.SystemClipboard
}

// App encapsulates the core components and main loop of the editor.
type App struct {
	config        *config.Config
	tuiManager    *tui.TUI
	store         *store.Store
	eventManager  *event.Manager
	registry      *action.Registry
	actionManager *action.Manager
	receiver      *collab.Receiver
	statusBar     *statusbar.StatusBar
	pluginManager *plugin.Manager
	modeHandler   *modehandler.ModeHandler
	host          plugin.Host
	activeTheme   *theme.Theme

	// Channels managed by the App
	quit          chan struct{}
	redrawRequest chan struct{}

	// Bracketed paste in progress
	pasting  bool
	pasteBuf []rune
}

// NewApp creates and initializes a new application instance.
func NewApp(cfg *config.Config, opts Options) (*App, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	activeTheme := loadTheme(cfg.Editor.Theme)

	// --- Create Core Components ---
	var (
		tuiManager *tui.TUI
		err        error
	)
	if opts.Screen != nil {
		tuiManager, err = tui.NewWithScreen(opts.Screen)
	} else {
		tuiManager, err = tui.New()
	}
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	eventManager := event.NewManager()
	st := store.New(initialState(cfg), history.NewManager(cfg.History.MaxEntries), eventManager)

	registry := action.NewRegistry()
	if err := actions.Register(registry); err != nil {
		tuiManager.Close()
		return nil, fmt.Errorf("registering built-in actions: %w", err)
	}

	managerOpts := []action.Option{
		action.WithEvents(eventManager),
		action.WithTranslator(actions.Translate),
	}
	if cfg.Telemetry.Enabled {
		managerOpts = append(managerOpts, action.WithTracker(telemetry.Multi{
			telemetry.LogTracker{},
			telemetry.EventTracker{Events: eventManager},
		}))
	}
	actionManager := action.NewManager(registry, st, managerOpts...)

	var clip *clipboard.Manager
	if opts.Clipboard != nil {
		clip = clipboard.NewManagerWithProvider(opts.Clipboard)
	} else {
		clip = clipboard.NewManager(cfg.Editor.SystemClipboard)
	}

	inputProcessor := input.NewProcessor()
	statusBar := statusbar.New(statusbar.Config{MessageTimeout: config.MessageTimeout})
	pluginManager := plugin.NewManager()
	quitChan := make(chan struct{})

	// --- Create Mode Handler ---
	modeHandler := modehandler.New(modehandler.Config{
		Actions:        actionManager,
		Store:          st,
		InputProcessor: inputProcessor,
		Clipboard:      clip,
		StatusBar:      statusBar,
		QuitSignal:     quitChan,
		PasteTimeout:   config.PasteTimeout,
	})

	// --- Create App Instance ---
	appInstance := &App{
		config:        cfg,
		tuiManager:    tuiManager,
		store:         st,
		eventManager:  eventManager,
		registry:      registry,
		actionManager: actionManager,
		receiver:      collab.NewReceiver(st, eventManager),
		statusBar:     statusBar,
		pluginManager: pluginManager,
		modeHandler:   modeHandler,
		activeTheme:   activeTheme,
		quit:          quitChan,
		redrawRequest: make(chan struct{}, 1),
	}
	appInstance.host = newHost(appInstance)

	// --- Subscribe Core Components (App level wiring) ---
	eventManager.Subscribe(event.TypeSceneChanged, appInstance.handleSceneChanged)
	eventManager.Subscribe(event.TypeHistoryChanged, appInstance.handleHistoryChanged)
	eventManager.Subscribe(event.TypeRemoteApplied, appInstance.handleRemoteApplied)
	eventManager.Subscribe(event.TypeActionTracked, appInstance.handleActionTracked)

	// --- Register and Initialize Plugins ---
	if err := registerPlugins(pluginManager); err != nil {
		logger.Warnf("App: %v", err)
	}
	initialized := pluginManager.InitializePlugins(appInstance.host)
	logger.Debugf("App: %d plugin(s) initialized", initialized)

	// Key overrides come last so plugin actions can be rebound too.
	appInstance.applyKeyBindings(cfg.Keys, inputProcessor)

	return appInstance, nil
}

// initialState seeds the Document State from configuration.
func initialState(cfg *config.Config) scene.State {
	st := scene.NewState()
	st.AppState = st.AppState.
		With(scene.FieldWhiteboardMode, cfg.Editor.WhiteboardMode).
		With(scene.FieldViewportWidth, cfg.Editor.ViewportWidth)
	return st
}

func loadTheme(path string) *theme.Theme {
	if path == "" {
		return theme.GetCurrentTheme()
	}
	t, err := theme.LoadThemeFromFile(path, &theme.ChalkDark)
	if err != nil {
		logger.Warnf("App: Failed to load theme '%s', using built-in: %v", path, err)
		return theme.GetCurrentTheme()
	}
	theme.SetCurrentTheme(t)
	logger.Infof("App: Loaded theme '%s' from %s", t.Name, path)
	return t
}

// applyKeyBindings applies [keys] from the configuration. Names of shell
// commands rebind the command; anything else names an action.
func (a *App) applyKeyBindings(keys map[string][]string, p *input.Processor) {
	for name, specs := range keys {
		var err error
		if cmd, ok := input.ParseCommand(name); ok {
			err = p.Bind(cmd, specs)
		} else {
			err = a.registry.Rebind(name, specs)
		}
		if err != nil {
			logger.Warnf("App: Ignoring key binding for '%s': %v", name, err)
			continue
		}
		logger.DebugTagf("keys", "App: '%s' bound to %v", name, specs)
	}
}

// Run starts the application's main event and drawing loops.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.pluginManager.ShutdownPlugins()

	go a.eventLoop() // Start event loop

	// Initial setup
	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("chalk - : Palette | Ctrl+Z Undo | Ctrl+Y Redo | Ctrl+Q Quit")
	a.requestRedraw()

	// --- Main Drawing Loop ---
	for {
		select {
		case <-a.quit: // Wait for quit signal from ModeHandler
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			past, future := a.store.HistoryDepth()
			logger.Infof("Exiting application. History: %d undo, %d redo", past, future)
			return nil
		case <-a.redrawRequest:
			a.drawEditor()
		}
	}
}

// eventLoop handles TUI events until the screen is finalized.
func (a *App) eventLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}
		if a.handleEvent(ev) {
			a.requestRedraw()
		}
	}
}

// handleEvent dispatches one terminal event and reports whether a redraw
// is needed.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch eventData := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.GetScreen().Sync()
		return true

	case *tcell.EventPaste:
		if eventData.Start() {
			a.pasting = true
			a.pasteBuf = a.pasteBuf[:0]
			return false
		}
		a.pasting = false
		return a.modeHandler.HandlePaste(string(a.pasteBuf))

	case *tcell.EventKey:
		if a.pasting {
			switch eventData.Key() {
			case tcell.KeyRune:
				a.pasteBuf = append(a.pasteBuf, eventData.Rune())
			case tcell.KeyEnter, tcell.KeyTab:
				a.pasteBuf = append(a.pasteBuf, ' ')
			}
			return false
		}
		// Delegate ALL key handling to ModeHandler
		return a.modeHandler.HandleKeyEvent(eventData)

	case *tcell.EventMouse:
		return a.modeHandler.HandleMouseEvent(eventData, a.viewHeight())
	}
	return false
}

// ApplyRemote merges an update received from a collaborator.
func (a *App) ApplyRemote(u collab.RemoteUpdate) (collab.Summary, error) {
	return a.receiver.Apply(u)
}

// Actions returns the action manager, for embedding hosts.
func (a *App) Actions() *action.Manager {
	return a.actionManager
}

// Store returns the document store.
func (a *App) Store() *store.Store {
	return a.store
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default: // Don't block if a redraw is already pending
	}
}

// GetTheme returns the app's active theme.
func (a *App) GetTheme() *theme.Theme {
	return a.activeTheme
}
