// Package history provides undo/redo for the scene: reversible deltas, the
// capture state machine deciding when a change becomes an undo step, and the
// bounded past/future stacks.
package history

import (
	"fmt"
	"strings"
)

// Capture tells history how a state change should be recorded.
type Capture int

const (
	captureUnset Capture = iota

	// CaptureImmediately commits the change as its own undo step right away.
	CaptureImmediately
	// CaptureEventually buffers the change; adjacent eventual changes from the
	// same interaction are merged into one step.
	CaptureEventually
	// CaptureNever keeps the change out of undo/redo entirely.
	CaptureNever
)

// String returns the directive name.
func (c Capture) String() string {
	switch c {
	case CaptureImmediately:
		return "IMMEDIATE"
	case CaptureEventually:
		return "EVENTUALLY"
	case CaptureNever:
		return "NEVER"
	default:
		return "UNSET"
	}
}

// Valid reports whether c is one of the three directives.
func (c Capture) Valid() bool {
	return c >= CaptureImmediately && c <= CaptureNever
}

// ParseCapture parses a directive name (case-insensitive).
func ParseCapture(s string) (Capture, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "IMMEDIATE", "IMMEDIATELY":
		return CaptureImmediately, nil
	case "EVENTUALLY":
		return CaptureEventually, nil
	case "NEVER":
		return CaptureNever, nil
	default:
		return captureUnset, fmt.Errorf("unknown capture directive %q", s)
	}
}
