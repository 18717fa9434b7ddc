package telemetry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bethropolis/chalk/internal/event"
	"github.com/bethropolis/chalk/internal/scene"
)

func TestMulti_CallsEveryTrackerAndJoinsErrors(t *testing.T) {
	var calls []string
	first := errors.New("first")
	m := Multi{
		TrackerFunc(func(c, a string, _ scene.AppState) error { calls = append(calls, "a:"+a); return first }),
		nil,
		TrackerFunc(func(c, a string, _ scene.AppState) error { calls = append(calls, "b:"+a); return nil }),
	}

	err := m.Record("menu", "toggle", scene.DefaultAppState())
	assert.ErrorIs(t, err, first)
	assert.Equal(t, []string{"a:toggle", "b:toggle"}, calls)
}

func TestSafeRecord_SwallowsFailures(t *testing.T) {
	assert.False(t, SafeRecord(nil, "c", "a", nil))
	assert.False(t, SafeRecord(TrackerFunc(func(string, string, scene.AppState) error {
		return errors.New("offline")
	}), "c", "a", nil))
	assert.False(t, SafeRecord(TrackerFunc(func(string, string, scene.AppState) error {
		panic("bad tracker")
	}), "c", "a", nil))
	assert.True(t, SafeRecord(LogTracker{}, "c", "a", scene.DefaultAppState()))
}

func TestEventTracker_Dispatches(t *testing.T) {
	events := event.NewManager()
	var got event.ActionTrackedData
	events.Subscribe(event.TypeActionTracked, func(e event.Event) bool {
		got = e.Data.(event.ActionTrackedData)
		return true
	})

	assert.NoError(t, EventTracker{Events: events}.Record("menu", "toggleWhiteboardMode", nil))
	assert.Equal(t, event.ActionTrackedData{Category: "menu", Action: "toggleWhiteboardMode"}, got)
	assert.Error(t, EventTracker{}.Record("menu", "x", nil))
}
