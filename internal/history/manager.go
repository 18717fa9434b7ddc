package history

import (
	"errors"
	"sync"

	"github.com/bethropolis/chalk/internal/logger"
	"github.com/bethropolis/chalk/internal/scene"
)

// DefaultMaxEntries bounds each of the undo and redo stacks.
const DefaultMaxEntries = 100

// ErrEmptyHistory is returned by Undo/Redo when there is nothing to step over.
var ErrEmptyHistory = errors.New("history is empty")

// Outcome describes what Record did with a delta.
type Outcome int

const (
	// Skipped: the change was NEVER-captured or changed nothing.
	Skipped Outcome = iota
	// Committed: the delta became a new undo step.
	Committed
	// Buffered: the delta opened a new pending buffer.
	Buffered
	// Merged: the delta was folded into the pending buffer.
	Merged
)

func (o Outcome) String() string {
	switch o {
	case Committed:
		return "committed"
	case Buffered:
		return "buffered"
	case Merged:
		return "merged"
	default:
		return "skipped"
	}
}

// Manager records deltas and steps through them.
//
// It is Idle when pending is nil and Pending otherwise. EVENTUALLY deltas
// accumulate in the pending buffer while they belong to the same interaction
// epoch; everything else (an IMMEDIATE delta, an interaction boundary, an
// explicit Flush, Undo or Redo) commits the buffer first.
type Manager struct {
	past       []Delta
	future     []Delta
	pending    *Delta
	pendEpoch  uint64
	epoch      uint64
	active     bool
	maxEntries int
	mutex      sync.Mutex
}

// NewManager creates a history manager.
func NewManager(maxEntries int) *Manager {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Manager{
		past:       make([]Delta, 0, maxEntries),
		maxEntries: maxEntries,
	}
}

// Record routes d according to capture. source is only used for logging.
func (m *Manager) Record(capture Capture, d Delta, source string) Outcome {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	switch capture {
	case CaptureNever:
		logger.DebugTagf("history", "History: %s change from %s not recorded", capture, source)
		return Skipped

	case CaptureEventually:
		if d.IsEmpty() {
			return Skipped
		}
		if m.pending != nil && m.pendEpoch == m.epoch {
			merged := m.pending.Merge(d)
			m.pending = &merged
			logger.DebugTagf("history", "History: merged change from %s into pending (epoch %d)", source, m.epoch)
			return Merged
		}
		m.flushLocked()
		m.pending = &d
		m.pendEpoch = m.epoch
		logger.DebugTagf("history", "History: buffered change from %s (epoch %d)", source, m.epoch)
		return Buffered

	default:
		m.flushLocked()
		if d.IsEmpty() {
			return Skipped
		}
		m.commitLocked(d)
		logger.DebugTagf("history", "History: committed change from %s. Past: %d", source, len(m.past))
		return Committed
	}
}

// BeginInteraction starts a new interaction epoch (pointer down, slider grab).
// Any buffer from a previous epoch is committed.
func (m *Manager) BeginInteraction() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.flushLocked()
	m.epoch++
	m.active = true
}

// EndInteraction closes the current epoch and commits its buffer.
// It reports whether a step was committed.
func (m *Manager) EndInteraction() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	committed := m.flushLocked()
	m.epoch++
	m.active = false
	return committed
}

// InInteraction reports whether an interaction is open.
func (m *Manager) InInteraction() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.active
}

// Flush commits the pending buffer, if any and non-empty.
func (m *Manager) Flush() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.flushLocked()
}

// Discard drops the pending buffer without committing and returns it so the
// caller can roll the document back.
func (m *Manager) Discard() (Delta, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.pending == nil {
		return Delta{}, false
	}
	d := *m.pending
	m.pending = nil
	logger.DebugTagf("history", "History: discarded pending buffer")
	return d, true
}

// Undo flushes any pending buffer, then reverts the newest undo step on
// current. It returns current unchanged and ErrEmptyHistory when there is
// nothing to undo.
func (m *Manager) Undo(current scene.State) (scene.State, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.flushLocked()
	if len(m.past) == 0 {
		logger.DebugTagf("history", "History: nothing to undo")
		return current, ErrEmptyHistory
	}

	last := len(m.past) - 1
	d := m.past[last]
	m.past = m.past[:last]
	m.future = pushBounded(m.future, d, m.maxEntries)

	logger.DebugTagf("history", "History: undo. Past: %d, Future: %d", len(m.past), len(m.future))
	return d.Revert(current), nil
}

// Redo flushes any pending buffer, then re-applies the newest undone step.
// A non-empty flush starts a new branch, so redo then reports ErrEmptyHistory.
func (m *Manager) Redo(current scene.State) (scene.State, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.flushLocked()
	if len(m.future) == 0 {
		logger.DebugTagf("history", "History: nothing to redo")
		return current, ErrEmptyHistory
	}

	last := len(m.future) - 1
	d := m.future[last]
	m.future = m.future[:last]
	m.past = pushBounded(m.past, d, m.maxEntries)

	logger.DebugTagf("history", "History: redo. Past: %d, Future: %d", len(m.past), len(m.future))
	return d.Apply(current), nil
}

// CanUndo returns true if there is a committed or pending step to undo.
func (m *Manager) CanUndo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.past) > 0 || (m.pending != nil && !m.pending.IsEmpty())
}

// CanRedo returns true if there is an undone step and no pending edit that
// would discard it.
func (m *Manager) CanRedo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.future) > 0 && (m.pending == nil || m.pending.IsEmpty())
}

// Depth returns the sizes of the undo and redo stacks.
func (m *Manager) Depth() (past, future int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.past), len(m.future)
}

// Pending reports whether a buffer is open.
func (m *Manager) Pending() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.pending != nil
}

// Clear resets both stacks and drops any pending buffer. Call on scene load.
func (m *Manager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.past = m.past[:0]
	m.future = nil
	m.pending = nil
	m.active = false
	m.epoch++
	logger.DebugTagf("history", "History: cleared")
}

func (m *Manager) flushLocked() bool {
	if m.pending == nil {
		return false
	}
	d := *m.pending
	m.pending = nil
	if d.IsEmpty() {
		return false
	}
	m.commitLocked(d)
	logger.DebugTagf("history", "History: flushed pending buffer. Past: %d", len(m.past))
	return true
}

// commitLocked pushes d and clears the redo branch.
func (m *Manager) commitLocked(d Delta) {
	m.past = pushBounded(m.past, d, m.maxEntries)
	m.future = nil
}

// pushBounded appends d, evicting the oldest entries beyond limit.
func pushBounded(stack []Delta, d Delta, limit int) []Delta {
	stack = append(stack, d)
	if len(stack) > limit {
		stack = stack[len(stack)-limit:]
	}
	return stack
}
