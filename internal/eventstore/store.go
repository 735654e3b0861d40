package eventstore

import (
	"context"
	"time"
)

// Store is the narrow interface the calendar core consumes. Any backend that
// implements it can sit behind the core; the memory backend in
// eventstore/memory is the development and test implementation.
//
// Store calls are synchronous and issued one at a time by the core. The only
// asynchronous operation is RequestAccess, whose completion the store must
// invoke exactly once.
type Store interface {
	// RequestAccess asks the store for permission to operate on the given
	// entity type. The completion is invoked exactly once, possibly on a
	// different goroutine.
	RequestAccess(entityType EntityType, completion func(granted bool, err error))

	// Calendars enumerates all calendars known to the store, in the store's
	// own enumeration order. The order is not guaranteed stable across store
	// versions.
	Calendars(ctx context.Context) ([]Calendar, error)

	// DefaultCalendarForNewEvents returns the calendar the store's own
	// policy picks for events created without an explicit calendar.
	DefaultCalendarForNewEvents(ctx context.Context) (Calendar, error)

	// EventsInRange returns all events whose interval intersects
	// [start, end], restricted to the given calendars, or to all calendars
	// when the slice is nil. Recurring series are returned as one event per
	// occurrence in range, each carrying the series identifier.
	EventsInRange(ctx context.Context, start, end time.Time, calendars []Calendar) ([]*Event, error)

	// EventByIdentifier looks up a single event. A missing identifier is
	// (nil, nil), not an error.
	EventByIdentifier(ctx context.Context, identifier string) (*Event, error)

	// Save persists the event with the given span. A new event (empty
	// identifier) is assigned one; the error carries the store's diagnostic
	// on failure.
	Save(ctx context.Context, event *Event, span Span) error

	// Remove deletes the event with the given span.
	Remove(ctx context.Context, event *Event, span Span) error
}
