// Package store owns the live Document State. Every write (local actions,
// collaboration updates, undo and redo) goes through one mutex, in call
// order, and history is notified inside the same critical section.
package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bethropolis/chalk/internal/event"
	"github.com/bethropolis/chalk/internal/history"
	"github.com/bethropolis/chalk/internal/logger"
	"github.com/bethropolis/chalk/internal/scene"
)

// Sources used by the store itself.
const (
	SourceUndo     = "undo"
	SourceRedo     = "redo"
	SourceDiscard  = "discard"
	SourceReset    = "reset"
	SourceRemote   = "remote"
	SourceInternal = "internal"
)

// ErrInvalidCapture is returned when an update does not yield a valid directive.
var ErrInvalidCapture = errors.New("update produced no capture directive")

// UpdateFunc computes the next state from the current one. It runs under the
// store lock and must not call back into the store.
type UpdateFunc func(current scene.State) (scene.State, history.Capture, error)

// Change describes an applied update. Delta is a copy; changing it does not
// affect history.
type Change struct {
	Source  string
	Capture history.Capture
	Delta   history.Delta
	Outcome history.Outcome
	Before  scene.State
	After   scene.State
}

// Store serializes access to the Document State.
type Store struct {
	state   scene.State
	history *history.Manager
	events  *event.Manager
	mutex   sync.Mutex
}

// New creates a store. events may be nil.
func New(initial scene.State, h *history.Manager, events *event.Manager) *Store {
	if h == nil {
		h = history.NewManager(history.DefaultMaxEntries)
	}
	if initial.AppState == nil {
		initial.AppState = scene.DefaultAppState()
	}
	if initial.Elements == nil {
		initial.Elements = scene.Elements{}
	}
	return &Store{state: initial, history: h, events: events}
}

// State returns the current Document State. The returned value shares
// storage with the store and must be treated as read-only.
func (s *Store) State() scene.State {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.state
}

// History exposes the history manager for read-only probes.
func (s *Store) History() *history.Manager {
	return s.history
}

// HistoryDepth returns the undo and redo stack sizes.
func (s *Store) HistoryDepth() (past, future int) {
	return s.history.Depth()
}

// Update runs fn against the current state and, on success, replaces the
// state and records the delta with history. On error nothing changes.
func (s *Store) Update(source string, fn UpdateFunc) (Change, error) {
	change, err := s.update(source, fn)
	if err != nil {
		return Change{}, err
	}
	s.publish(change.Source, change.Delta, change.Outcome != history.Skipped)
	return change, nil
}

func (s *Store) update(source string, fn UpdateFunc) (change Change, err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("update from %s panicked: %v", source, r)
			logger.Errorf("Store: %v", err)
		}
	}()

	prev := s.state
	next, capture, err := fn(prev)
	if err != nil {
		return Change{}, err
	}
	if !capture.Valid() {
		return Change{}, fmt.Errorf("%w (source %s)", ErrInvalidCapture, source)
	}
	if next.Elements == nil {
		next.Elements = prev.Elements
	}
	if next.AppState == nil {
		next.AppState = prev.AppState
	}

	d := history.Diff(prev, next)
	s.state = next
	outcome := s.history.Record(capture, d, source)

	logger.DebugTagf("store", "Store: update from %s (%s): %d element(s), %d field(s) changed, history %s",
		source, capture, len(d.Elements), len(d.AppState), outcome)

	return Change{
		Source:  source,
		Capture: capture,
		Delta:   d.Clone(),
		Outcome: outcome,
		Before:  prev,
		After:   next,
	}, nil
}

// Undo reverts the newest undo step, flushing any pending edit first.
func (s *Store) Undo() error {
	return s.step(SourceUndo, s.history.Undo)
}

// Redo re-applies the newest undone step.
func (s *Store) Redo() error {
	return s.step(SourceRedo, s.history.Redo)
}

func (s *Store) step(source string, fn func(scene.State) (scene.State, error)) error {
	s.mutex.Lock()
	prev := s.state
	next, err := fn(prev)
	if err == nil {
		s.state = next
	}
	s.mutex.Unlock()

	if err != nil {
		// A flush may still have happened.
		s.publishHistory()
		return err
	}
	s.publish(source, history.Diff(prev, next), true)
	return nil
}

// BeginInteraction marks the start of a continuous gesture.
func (s *Store) BeginInteraction() {
	s.mutex.Lock()
	s.history.BeginInteraction()
	s.mutex.Unlock()
	s.publishHistory()
}

// EndInteraction closes the gesture and commits its pending edit.
func (s *Store) EndInteraction() bool {
	s.mutex.Lock()
	committed := s.history.EndInteraction()
	s.mutex.Unlock()
	s.publishHistory()
	return committed
}

// Flush commits the pending edit, if any.
func (s *Store) Flush() bool {
	s.mutex.Lock()
	committed := s.history.Flush()
	s.mutex.Unlock()
	if committed {
		s.publishHistory()
	}
	return committed
}

// Discard drops the pending edit. With rollback the document returns to the
// state before the pending edit started; otherwise it stays as is and the
// edit simply never becomes an undo step.
func (s *Store) Discard(rollback bool) bool {
	s.mutex.Lock()
	d, ok := s.history.Discard()
	var reverted history.Delta
	if ok && rollback {
		prev := s.state
		s.state = d.Revert(prev)
		reverted = history.Diff(prev, s.state)
	}
	s.mutex.Unlock()

	if !ok {
		return false
	}
	s.publish(SourceDiscard, reverted, true)
	return true
}

// Reset replaces the whole document and clears history, as on scene load.
func (s *Store) Reset(st scene.State) {
	if st.AppState == nil {
		st.AppState = scene.DefaultAppState()
	}
	if st.Elements == nil {
		st.Elements = scene.Elements{}
	}
	s.mutex.Lock()
	prev := s.state
	s.state = st
	s.history.Clear()
	s.mutex.Unlock()
	s.publish(SourceReset, history.Diff(prev, st), true)
}

func (s *Store) publish(source string, d history.Delta, historyChanged bool) {
	if s.events == nil {
		return
	}
	if !d.IsEmpty() {
		st := s.State()
		s.events.Dispatch(event.TypeSceneChanged, event.SceneChangedData{
			Source:        source,
			ElementCount:  len(st.Elements.Visible()),
			ChangedFields: d.Fields(),
		})
	}
	if historyChanged {
		s.publishHistory()
	}
}

func (s *Store) publishHistory() {
	if s.events == nil {
		return
	}
	past, future := s.history.Depth()
	s.events.Dispatch(event.TypeHistoryChanged, event.HistoryChangedData{
		Past:    past,
		Future:  future,
		Pending: s.history.Pending(),
	})
}
