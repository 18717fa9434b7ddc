package action

import "errors"

var (
	// ErrNotFound is returned when no action has the requested name.
	ErrNotFound = errors.New("action not found")
	// ErrDuplicateName is returned when registering a name twice.
	ErrDuplicateName = errors.New("action already registered")
	// ErrInvalidAction is returned for actions without a name or Perform, or
	// with an unparsable shortcut.
	ErrInvalidAction = errors.New("invalid action")
)
