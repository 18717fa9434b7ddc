// Package telemetry records which actions users perform. Trackers are
// best-effort: a failing tracker never affects the action that triggered it.
package telemetry

import (
	"errors"
	"fmt"

	"github.com/bethropolis/chalk/internal/event"
	"github.com/bethropolis/chalk/internal/logger"
	"github.com/bethropolis/chalk/internal/scene"
)

// Tracker receives one record per tracked action execution. appState is the
// application state before the action ran.
type Tracker interface {
	Record(category, action string, appState scene.AppState) error
}

// TrackerFunc adapts a function to Tracker.
type TrackerFunc func(category, action string, appState scene.AppState) error

// Record calls f.
func (f TrackerFunc) Record(category, action string, appState scene.AppState) error {
	return f(category, action, appState)
}

// LogTracker writes records to the application log.
type LogTracker struct{}

// Record logs the record at info level.
func (LogTracker) Record(category, action string, appState scene.AppState) error {
	logger.InfoTagf("telemetry", "Telemetry: %s/%s (tool=%s)", category, action, appState.String(scene.FieldActiveTool))
	return nil
}

// EventTracker forwards records to the event bus.
type EventTracker struct {
	Events *event.Manager
}

// Record dispatches event.TypeActionTracked.
func (t EventTracker) Record(category, action string, _ scene.AppState) error {
	if t.Events == nil {
		return errors.New("event tracker has no event manager")
	}
	t.Events.Dispatch(event.TypeActionTracked, event.ActionTrackedData{Category: category, Action: action})
	return nil
}

// Multi fans a record out to several trackers. All trackers are called; the
// errors are joined.
type Multi []Tracker

// Record calls every tracker in order.
func (m Multi) Record(category, action string, appState scene.AppState) error {
	var errs []error
	for _, t := range m {
		if t == nil {
			continue
		}
		if err := t.Record(category, action, appState); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SafeRecord calls t and logs instead of returning errors or panicking.
// It reports whether the record went through.
func SafeRecord(t Tracker, category, action string, appState scene.AppState) (ok bool) {
	if t == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Warnf("Telemetry: tracker panicked on %s/%s: %v", category, action, r)
			ok = false
		}
	}()
	if err := t.Record(category, action, appState); err != nil {
		logger.Warnf("Telemetry: %v", fmt.Errorf("record %s/%s: %w", category, action, err))
		return false
	}
	return true
}
