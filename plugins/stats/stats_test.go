package stats

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/chalk/internal/action"
	"github.com/bethropolis/chalk/internal/event"
	"github.com/bethropolis/chalk/internal/history"
	"github.com/bethropolis/chalk/internal/scene"
	"github.com/bethropolis/chalk/internal/store"
)

type testHost struct {
	events  *event.Manager
	store   *store.Store
	actions *action.Manager
	status  string
}

func newTestHost(initial scene.State) *testHost {
	events := event.NewManager()
	st := store.New(initial, history.NewManager(10), events)
	return &testHost{
		events:  events,
		store:   st,
		actions: action.NewManager(action.NewRegistry(), st, action.WithEvents(events)),
	}
}

func (h *testHost) RegisterAction(a *action.Action) error { return h.actions.Registry().Register(a) }
func (h *testHost) Execute(name string, input any) (action.Outcome, error) {
	return h.actions.Execute(name, action.SourceAPI, input)
}
func (h *testHost) State() scene.State                          { return h.store.State() }
func (h *testHost) FlushHistory() bool                          { return h.store.Flush() }
func (h *testHost) HistoryPending() bool                        { return h.store.History().Pending() }
func (h *testHost) HistoryInInteraction() bool                  { return h.store.History().InInteraction() }
func (h *testHost) Subscribe(t event.Type, fn event.Handler)    { h.events.Subscribe(t, fn) }
func (h *testHost) SetStatusMessage(f string, a ...interface{}) { h.status = fmt.Sprintf(f, a...) }
func (h *testHost) GetPluginConfigValue(string, string) (interface{}, bool) {
	return nil, false
}

func TestStats_ReportsAfterAction(t *testing.T) {
	r1 := scene.NewElement(scene.KindRectangle, 0, 0, 1, 1)
	r2 := scene.NewElement(scene.KindRectangle, 5, 0, 1, 1)
	txt := scene.NewElement(scene.KindText, 0, 5, 1, 1)
	gone := scene.NewElement(scene.KindLine, 0, 0, 1, 1)
	gone.IsDeleted = true

	initial := scene.NewState()
	initial.Elements = scene.Elements{r1, r2, txt, gone}
	initial.AppState = initial.AppState.With(scene.FieldSelectedElementIDs, []string{txt.ID, gone.ID})
	host := newTestHost(initial)

	p := New()
	require.NoError(t, p.Initialize(host))
	assert.Error(t, p.Initialize(host), "second registration is a duplicate")

	out, err := host.Execute(ActionName, nil)
	require.NoError(t, err)
	assert.Equal(t, action.StatusApplied, out.Status)
	assert.Equal(t, history.Skipped, out.History)
	assert.Equal(t, "Elements: 3 (rectangle 2, text 1), Selected: 1, Deleted: 1", host.status)

	past, future := host.store.HistoryDepth()
	assert.Zero(t, past+future)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, "Elements: 0, Selected: 0, Deleted: 0", Summarize(scene.NewState()))
}
