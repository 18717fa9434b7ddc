// Package action implements the action registry and the execution pipeline:
// lookup by name or shortcut, enablement, Perform, history capture and
// telemetry.
package action

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/chalk/internal/history"
	"github.com/bethropolis/chalk/internal/scene"
)

// PerformFunc computes an action's result. It runs under the store lock with
// private copies of the elements and application state and must not block.
type PerformFunc func(elements scene.Elements, appState scene.AppState, input any) (Result, error)

// Result is what Perform returns. A nil Elements or AppState means that side
// is unchanged.
type Result struct {
	Elements scene.Elements
	AppState scene.AppState
	Capture  history.Capture
}

// TrackEvent configures telemetry for an action.
type TrackEvent struct {
	Category string
	Action   string
	// Predicate decides from the pre-perform application state whether this
	// execution is recorded. Nil records every execution.
	Predicate func(appState scene.AppState) bool
}

// Action is a named, declarative state transformation.
type Action struct {
	Name     string
	Label    string
	Icon     string
	Keywords []string

	// Keys are shortcut specs such as "ctrl+shift+w". KeyTest, when set,
	// replaces them with a custom predicate.
	Keys    []string
	KeyTest func(ev *tcell.EventKey, st scene.State) bool

	Enabled func(st scene.State) bool
	Checked func(st scene.State) bool
	Perform PerformFunc
	Track   *TrackEvent

	strokes []KeyStroke
}

// IsEnabled reports whether the action may run against st.
func (a *Action) IsEnabled(st scene.State) bool {
	return a.Enabled == nil || a.Enabled(st)
}

// IsChecked reports the toggle state of the action, false when it has none.
func (a *Action) IsChecked(st scene.State) bool {
	return a.Checked != nil && a.Checked(st)
}

// MatchesKey reports whether ev triggers the action in st.
func (a *Action) MatchesKey(ev *tcell.EventKey, st scene.State) bool {
	if ev == nil {
		return false
	}
	if a.KeyTest != nil {
		return a.KeyTest(ev, st)
	}
	for _, ks := range a.strokes {
		if ks.Matches(ev) {
			return true
		}
	}
	return false
}

// Shortcut returns the display form of the first shortcut, or "".
func (a *Action) Shortcut() string {
	if len(a.strokes) == 0 {
		return ""
	}
	return a.strokes[0].String()
}
