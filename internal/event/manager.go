// internal/event/manager.go
package event

import (
	"sync"

	"github.com/bethropolis/chalk/internal/logger"
)

// Handler defines the function signature for event subscribers.
// It returns true if the event was consumed, which stops delivery to later handlers.
type Handler func(e Event) bool

// Manager handles event subscriptions and dispatching.
type Manager struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe adds a handler function for a specific event type.
func (m *Manager) Subscribe(eventType Type, handler Handler) {
	if handler == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.handlers[eventType] = append(m.handlers[eventType], handler)
	logger.DebugTagf("event", "Event Manager: Handler subscribed to type %v", eventType)
}

// Dispatch sends an event to all registered handlers for its type.
// Handlers run synchronously, in subscription order. A nil manager is a no-op.
func (m *Manager) Dispatch(eventType Type, data interface{}) {
	if m == nil {
		return
	}
	m.mu.RLock()
	handlers := m.handlers[eventType]
	// Copy so handlers may subscribe while being dispatched.
	handlersCopy := make([]Handler, len(handlers))
	copy(handlersCopy, handlers)
	m.mu.RUnlock()

	if len(handlersCopy) == 0 {
		return
	}

	event := Event{Type: eventType, Data: data}
	for _, handler := range handlersCopy {
		if handler(event) {
			break
		}
	}
}
