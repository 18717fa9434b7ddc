package autocommit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/chalk/internal/action"
	"github.com/bethropolis/chalk/internal/event"
	"github.com/bethropolis/chalk/internal/history"
	"github.com/bethropolis/chalk/internal/scene"
	"github.com/bethropolis/chalk/internal/store"
)

type testHost struct {
	events *event.Manager
	store  *store.Store
	config map[string]interface{}
}

func newTestHost(config map[string]interface{}) *testHost {
	events := event.NewManager()
	return &testHost{
		events: events,
		store:  store.New(scene.NewState(), history.NewManager(10), events),
		config: config,
	}
}

func (h *testHost) RegisterAction(*action.Action) error { return nil }
func (h *testHost) Execute(string, any) (action.Outcome, error) {
	return action.Outcome{}, nil
}
func (h *testHost) State() scene.State                       { return h.store.State() }
func (h *testHost) FlushHistory() bool                       { return h.store.Flush() }
func (h *testHost) HistoryPending() bool                     { return h.store.History().Pending() }
func (h *testHost) HistoryInInteraction() bool               { return h.store.History().InInteraction() }
func (h *testHost) Subscribe(t event.Type, fn event.Handler) { h.events.Subscribe(t, fn) }
func (h *testHost) SetStatusMessage(string, ...interface{})  {}
func (h *testHost) GetPluginConfigValue(_, key string) (interface{}, bool) {
	v, ok := h.config[key]
	return v, ok
}

func (h *testHost) scribble(t *testing.T, color string) {
	t.Helper()
	_, err := h.store.Update("ui", func(cur scene.State) (scene.State, history.Capture, error) {
		return scene.State{AppState: cur.AppState.With(scene.FieldStrokeColor, color)}, history.CaptureEventually, nil
	})
	require.NoError(t, err)
}

func TestAutoCommit_DisabledByDefault(t *testing.T) {
	p := New().(*AutoCommit)
	host := newTestHost(nil)
	require.NoError(t, p.Initialize(host))
	assert.Nil(t, p.stopChan)
	require.NoError(t, p.Shutdown())
}

func TestAutoCommit_InvalidConfigKeepsDefaults(t *testing.T) {
	p := New().(*AutoCommit)
	host := newTestHost(map[string]interface{}{"enabled": "yes", "interval": "soon"})
	require.NoError(t, p.Initialize(host))
	assert.False(t, p.enabled)
	assert.Equal(t, defaultInterval, p.interval)
}

func TestAutoCommit_CommitsOnlyWhenIdle(t *testing.T) {
	p := New().(*AutoCommit)
	host := newTestHost(map[string]interface{}{"enabled": true, "interval": "1h"})
	require.NoError(t, p.Initialize(host))
	defer p.Shutdown()

	assert.False(t, p.commitIfIdle(time.Now().Add(2*time.Hour)), "nothing pending")

	host.scribble(t, "#e03131")
	require.True(t, host.HistoryPending())

	assert.False(t, p.commitIfIdle(time.Now()), "edit is too recent")
	assert.True(t, host.HistoryPending())

	assert.True(t, p.commitIfIdle(time.Now().Add(2*time.Hour)))
	assert.False(t, host.HistoryPending())
	past, _ := host.store.HistoryDepth()
	assert.Equal(t, 1, past)
}

func TestAutoCommit_WaitsForInteractionEnd(t *testing.T) {
	p := New().(*AutoCommit)
	host := newTestHost(map[string]interface{}{"enabled": true, "interval": "1h"})
	require.NoError(t, p.Initialize(host))
	defer p.Shutdown()

	host.store.BeginInteraction()
	host.scribble(t, "#e03131")
	assert.False(t, p.commitIfIdle(time.Now().Add(2*time.Hour)), "interaction still open")
	assert.True(t, host.HistoryPending())

	host.scribble(t, "#1971c2")
	require.True(t, host.store.EndInteraction())

	past, _ := host.store.HistoryDepth()
	assert.Equal(t, 1, past)
	assert.False(t, p.commitIfIdle(time.Now().Add(2*time.Hour)))
}
