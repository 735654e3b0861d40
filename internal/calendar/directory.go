package calendar

import (
	"context"

	"github.com/elinsky/calendar-mcp/internal/eventstore"
)

// Directory resolves calendar handles against the store's live calendar
// list. Every lookup re-enumerates; absence is reported as a bool, never an
// error.
type Directory struct {
	store eventstore.Store
}

// NewDirectory creates a directory over the given store.
func NewDirectory(store eventstore.Store) *Directory {
	return &Directory{store: store}
}

// ListNames returns calendar titles in the store's enumeration order.
func (d *Directory) ListNames(ctx context.Context) ([]string, error) {
	cals, err := d.store.Calendars(ctx)
	if err != nil {
		return nil, &StoreOperationError{Op: "list calendars", Err: err}
	}
	names := make([]string, len(cals))
	for i, cal := range cals {
		names[i] = cal.Title
	}
	return names, nil
}

// FindByName returns the first calendar whose title matches name exactly,
// case-sensitively. The second return is false when nothing matches.
func (d *Directory) FindByName(ctx context.Context, name string) (eventstore.Calendar, bool, error) {
	cals, err := d.store.Calendars(ctx)
	if err != nil {
		return eventstore.Calendar{}, false, &StoreOperationError{Op: "list calendars", Err: err}
	}
	for _, cal := range cals {
		if cal.Title == name {
			return cal, true, nil
		}
	}
	return eventstore.Calendar{}, false, nil
}

// FindByID returns the calendar with the given identifier. The second return
// is false when nothing matches.
func (d *Directory) FindByID(ctx context.Context, identifier string) (eventstore.Calendar, bool, error) {
	cals, err := d.store.Calendars(ctx)
	if err != nil {
		return eventstore.Calendar{}, false, &StoreOperationError{Op: "list calendars", Err: err}
	}
	for _, cal := range cals {
		if cal.Identifier == identifier {
			return cal, true, nil
		}
	}
	return eventstore.Calendar{}, false, nil
}

// DefaultForNewEvents returns the store's default calendar for new events.
func (d *Directory) DefaultForNewEvents(ctx context.Context) (eventstore.Calendar, error) {
	cal, err := d.store.DefaultCalendarForNewEvents(ctx)
	if err != nil {
		return eventstore.Calendar{}, &StoreOperationError{Op: "get default calendar", Err: err}
	}
	return cal, nil
}
