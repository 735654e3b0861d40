package calendar

import (
	"errors"
	"fmt"
)

var (
	// ErrPermissionDenied indicates the store refused calendar access. It is
	// fatal at Manager construction; no other operation is reachable.
	ErrPermissionDenied = errors.New("calendar access denied")

	// ErrPermissionTimeout indicates the store never answered the access
	// request within the configured wait.
	ErrPermissionTimeout = errors.New("calendar access request timed out")

	// ErrInvalidRecurrenceRule indicates a recurrence rule with both an end
	// date and an occurrence count.
	ErrInvalidRecurrenceRule = errors.New("only one of end date or occurrence count can be specified")
)

// NoSuchCalendarError indicates a calendar name that matched none of the
// store's calendars.
type NoSuchCalendarError struct {
	Name string
}

func (e *NoSuchCalendarError) Error() string {
	return fmt.Sprintf("calendar '%s' not found", e.Name)
}

// NoSuchEventError indicates an event identifier the store does not know.
type NoSuchEventError struct {
	Identifier string
}

func (e *NoSuchEventError) Error() string {
	return fmt.Sprintf("event with ID %s not found", e.Identifier)
}

// StoreOperationError wraps a store failure, carrying the store's own
// diagnostic verbatim.
type StoreOperationError struct {
	Op  string
	Err error
}

func (e *StoreOperationError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *StoreOperationError) Unwrap() error {
	return e.Err
}
