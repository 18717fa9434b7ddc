package collab

import (
	"fmt"

	"github.com/bethropolis/chalk/internal/event"
	"github.com/bethropolis/chalk/internal/history"
	"github.com/bethropolis/chalk/internal/logger"
	"github.com/bethropolis/chalk/internal/scene"
	"github.com/bethropolis/chalk/internal/store"
)

// localOnly fields describe this client's UI and are never taken from peers.
var localOnly = map[string]struct{}{
	scene.FieldSelectedElementIDs: {},
	scene.FieldEditingElementID:   {},
	scene.FieldOpenMenu:           {},
	scene.FieldActiveTool:         {},
	scene.FieldScrollX:            {},
	scene.FieldViewportWidth:      {},
}

// RemoteUpdate is one batch received from a collaborator.
type RemoteUpdate struct {
	Elements scene.Elements
	AppState map[string]any
	// Capture defaults to CaptureNever: peers' edits are not undone locally.
	Capture history.Capture
}

// Receiver applies remote updates through the store's write path.
type Receiver struct {
	store  *store.Store
	events *event.Manager
}

// NewReceiver creates a receiver. events may be nil.
func NewReceiver(st *store.Store, events *event.Manager) *Receiver {
	return &Receiver{store: st, events: events}
}

// Apply reconciles u against the current scene and writes the result.
func (r *Receiver) Apply(u RemoteUpdate) (Summary, error) {
	capture := u.Capture
	if !capture.Valid() {
		capture = history.CaptureNever
	}

	var sum Summary
	_, err := r.store.Update(store.SourceRemote, func(cur scene.State) (scene.State, history.Capture, error) {
		editing := cur.AppState.String(scene.FieldEditingElementID)
		var elements scene.Elements
		elements, sum = Reconcile(cur.Elements, u.Elements, editing)

		appState := cur.AppState
		for k, v := range u.AppState {
			if _, skip := localOnly[k]; skip {
				continue
			}
			appState = appState.With(k, v)
		}
		return scene.State{Elements: elements, AppState: appState}, capture, nil
	})
	if err != nil {
		return Summary{}, fmt.Errorf("apply remote update: %w", err)
	}

	logger.DebugTagf("collab", "Collab: remote update accepted=%d rejected=%d unchanged=%d",
		sum.Accepted, sum.Rejected, sum.Unchanged)
	r.events.Dispatch(event.TypeRemoteApplied, event.RemoteAppliedData{
		Accepted: sum.Accepted,
		Rejected: sum.Rejected,
	})
	return sum, nil
}
