package action

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/chalk/internal/event"
	"github.com/bethropolis/chalk/internal/history"
	"github.com/bethropolis/chalk/internal/logger"
	"github.com/bethropolis/chalk/internal/scene"
	"github.com/bethropolis/chalk/internal/store"
	"github.com/bethropolis/chalk/internal/telemetry"
)

// Invocation sources.
const (
	SourceUI             = "ui"
	SourceKeyboard       = "keyboard"
	SourceContextMenu    = "contextMenu"
	SourceCommandPalette = "commandPalette"
	SourceAPI            = "api"
)

// Status is the result kind of an execution.
type Status int

const (
	StatusApplied Status = iota
	StatusDisabled
	StatusNoMatch
)

func (s Status) String() string {
	switch s {
	case StatusApplied:
		return "applied"
	case StatusDisabled:
		return "disabled"
	case StatusNoMatch:
		return "no match"
	default:
		return "unknown"
	}
}

// Outcome reports what an execution did.
type Outcome struct {
	Action  string
	Status  Status
	Capture history.Capture
	History history.Outcome
}

// Translator turns a label key into display text.
type Translator func(key string) string

// Manager executes registered actions against the store.
type Manager struct {
	registry  *Registry
	store     *store.Store
	tracker   telemetry.Tracker
	events    *event.Manager
	translate Translator
}

// Option configures a Manager.
type Option func(*Manager)

// WithTracker sets the telemetry sink.
func WithTracker(t telemetry.Tracker) Option {
	return func(m *Manager) { m.tracker = t }
}

// WithEvents publishes execution events on em.
func WithEvents(em *event.Manager) Option {
	return func(m *Manager) { m.events = em }
}

// WithTranslator translates labels in render descriptors.
func WithTranslator(t Translator) Option {
	return func(m *Manager) { m.translate = t }
}

// NewManager creates an action manager.
func NewManager(registry *Registry, st *store.Store, opts ...Option) *Manager {
	m := &Manager{registry: registry, store: st}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Registry returns the registry the manager dispatches from.
func (m *Manager) Registry() *Registry {
	return m.registry
}

var errDisabled = errors.New("action disabled")

// Execute runs the named action with the given contextual input.
//
// A disabled action is a silent no-op: StatusDisabled and a nil error. A
// failing Perform returns its error and leaves state and history untouched.
func (m *Manager) Execute(name, source string, input any) (Outcome, error) {
	a, err := m.registry.Get(name)
	if err != nil {
		return Outcome{}, err
	}
	return m.execute(a, source, input)
}

// ExecuteByShortcut runs the first action whose shortcut matches ev. The
// key event is passed to Perform as input.
func (m *Manager) ExecuteByShortcut(ev *tcell.EventKey, source string) (Outcome, error) {
	a, ok := m.registry.FindByShortcut(ev, m.store.State())
	if !ok {
		return Outcome{Status: StatusNoMatch}, nil
	}
	return m.execute(a, source, ev)
}

func (m *Manager) execute(a *Action, source string, input any) (Outcome, error) {
	change, err := m.store.Update(source, func(cur scene.State) (scene.State, history.Capture, error) {
		if !a.IsEnabled(cur) {
			return cur, history.CaptureNever, errDisabled
		}
		res, err := a.Perform(cur.Elements.Clone(), cur.AppState.Clone(), input)
		if err != nil {
			return cur, res.Capture, err
		}
		return scene.State{Elements: res.Elements, AppState: res.AppState}, res.Capture, nil
	})
	if errors.Is(err, errDisabled) {
		logger.DebugTagf("action", "Action: '%s' from %s skipped, disabled", a.Name, source)
		return Outcome{Action: a.Name, Status: StatusDisabled}, nil
	}
	if err != nil {
		logger.Warnf("Action: '%s' from %s failed: %v", a.Name, source, err)
		return Outcome{Action: a.Name}, fmt.Errorf("perform %s: %w", a.Name, err)
	}

	logger.DebugTagf("action", "Action: '%s' from %s applied (%s, history %s)", a.Name, source, change.Capture, change.Outcome)
	m.track(a, change.Before.AppState)
	m.events.Dispatch(event.TypeActionExecuted, event.ActionExecutedData{
		Name:    a.Name,
		Source:  source,
		Capture: change.Capture.String(),
	})

	return Outcome{
		Action:  a.Name,
		Status:  StatusApplied,
		Capture: change.Capture,
		History: change.Outcome,
	}, nil
}

func (m *Manager) track(a *Action, before scene.AppState) {
	if a.Track == nil || m.tracker == nil {
		return
	}
	if !trackAllowed(a, before) {
		return
	}
	telemetry.SafeRecord(m.tracker, a.Track.Category, a.Track.Action, before)
}

// trackAllowed evaluates the tracking predicate. A panicking predicate is
// logged and treated as false; the action has already been applied.
func trackAllowed(a *Action, before scene.AppState) (ok bool) {
	if a.Track.Predicate == nil {
		return true
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Warnf("Action: tracking predicate of '%s' panicked: %v", a.Name, r)
			ok = false
		}
	}()
	return a.Track.Predicate(before)
}

// IsEnabled probes the enablement predicate against the current state.
func (m *Manager) IsEnabled(name string) (bool, error) {
	a, err := m.registry.Get(name)
	if err != nil {
		return false, err
	}
	return a.IsEnabled(m.store.State()), nil
}

// IsChecked probes the toggle predicate against the current state.
func (m *Manager) IsChecked(name string) (bool, error) {
	a, err := m.registry.Get(name)
	if err != nil {
		return false, err
	}
	return a.IsChecked(m.store.State()), nil
}
