// Package clipboard gives the shell a clipboard that uses the system
// clipboard when available and an in-process buffer otherwise.
package clipboard

import (
	"context"
	"fmt"
	"sync"

	sysclip "github.com/atotto/clipboard"

	"github.com/bethropolis/chalk/internal/logger"
)

// Provider reads and writes clipboard text.
type Provider interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// System is the OS clipboard.
type System struct{}

func (System) ReadAll() (string, error)   { return sysclip.ReadAll() }
func (System) WriteAll(text string) error { return sysclip.WriteAll(text) }

// Memory is a process-local clipboard.
type Memory struct {
	mu   sync.Mutex
	text string
}

func (m *Memory) ReadAll() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

func (m *Memory) WriteAll(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// Manager handles clipboard operations. Writes always land in the internal
// buffer too, so a failing system clipboard still round-trips within chalk.
type Manager struct {
	provider Provider
	internal *Memory
}

// NewManager creates a manager. With useSystem false, or when the platform
// has no clipboard utility, only the internal buffer is used.
func NewManager(useSystem bool) *Manager {
	m := &Manager{internal: &Memory{}}
	if useSystem && !sysclip.Unsupported {
		m.provider = System{}
	}
	return m
}

// NewManagerWithProvider creates a manager backed by p.
func NewManagerWithProvider(p Provider) *Manager {
	return &Manager{provider: p, internal: &Memory{}}
}

// Copy writes text to the clipboard.
func (m *Manager) Copy(text string) error {
	_ = m.internal.WriteAll(text)
	if m.provider == nil {
		logger.Debugf("ClipboardManager: Copied %d bytes (internal)", len(text))
		return nil
	}
	if err := m.provider.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	logger.Debugf("ClipboardManager: Copied %d bytes", len(text))
	return nil
}

// Paste reads the clipboard. The system read runs external tools on some
// platforms, so it is bounded by ctx; on failure the internal buffer is used.
func (m *Manager) Paste(ctx context.Context) (string, error) {
	if m.provider == nil {
		return m.internal.ReadAll()
	}

	type result struct {
		text string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		text, err := m.provider.ReadAll()
		ch <- result{text, err}
	}()

	select {
	case <-ctx.Done():
		logger.Warnf("ClipboardManager: system read abandoned: %v", ctx.Err())
		return m.internal.ReadAll()
	case r := <-ch:
		if r.err != nil {
			logger.Warnf("ClipboardManager: system read failed, using internal buffer: %v", r.err)
			return m.internal.ReadAll()
		}
		return r.text, nil
	}
}

// IsSystem reports whether the OS clipboard is in use.
func (m *Manager) IsSystem() bool {
	return m.provider != nil
}
