package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/elinsky/calendar-mcp/internal/eventstore"
	"github.com/elinsky/calendar-mcp/internal/logging"
)

// Config holds configuration for the Manager.
type Config struct {
	// Store is the event store backend. Required.
	Store eventstore.Store

	// PermissionTimeout bounds the wait for the store's access answer.
	// Zero means DefaultPermissionTimeout.
	PermissionTimeout time.Duration

	// Logger receives operational logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// Manager is the calendar operations core. Construction requests store
// access and fails on denial or timeout; a constructed Manager holds a
// granted permission for its whole lifetime.
type Manager struct {
	store     eventstore.Store
	directory *Directory
	logger    *slog.Logger
}

// NewManager creates a Manager over the configured store. It issues exactly
// one access request and blocks until the store answers or the permission
// timeout elapses.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if err := requestAccess(cfg.Store, cfg.PermissionTimeout); err != nil {
		logger.Error("calendar access request failed", logging.Err(err))
		return nil, err
	}
	logger.Debug("calendar access granted")

	return &Manager{
		store:     cfg.Store,
		directory: NewDirectory(cfg.Store),
		logger:    logger,
	}, nil
}

// ListCalendarNames returns the titles of all calendars in the store's
// enumeration order.
func (m *Manager) ListCalendarNames(ctx context.Context) ([]string, error) {
	return m.directory.ListNames(ctx)
}

// List returns all events intersecting [start, end]. A non-empty
// calendarName restricts the query to that calendar; an unknown name fails
// with NoSuchCalendarError before any event query reaches the store. No
// ordering is guaranteed beyond what the store provides.
func (m *Manager) List(ctx context.Context, start, end time.Time, calendarName string) ([]Event, error) {
	var calendars []eventstore.Calendar
	if calendarName != "" {
		cal, ok, err := m.directory.FindByName(ctx, calendarName)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &NoSuchCalendarError{Name: calendarName}
		}
		calendars = []eventstore.Calendar{cal}
	}

	native, err := m.store.EventsInRange(ctx, start, end, calendars)
	if err != nil {
		return nil, &StoreOperationError{Op: "list events", Err: err}
	}

	events := make([]Event, len(native))
	for i, ev := range native {
		events[i] = fromNative(ev)
	}

	m.logger.Debug("listed events",
		logging.Operation("list_events"),
		slog.Int("count", len(events)))
	return events, nil
}

// FindByID returns the event with the given identifier, or nil when the
// store does not know it. Absence is not an error.
func (m *Manager) FindByID(ctx context.Context, identifier string) (*Event, error) {
	native, err := m.store.EventByIdentifier(ctx, identifier)
	if err != nil {
		return nil, &StoreOperationError{Op: "find event", Err: err}
	}
	if native == nil {
		return nil, nil
	}
	ev := fromNative(native)
	return &ev, nil
}

// Create stores a new event and returns it with its assigned identifier.
// An explicit calendar name wins over the store's default; an unknown name
// fails with NoSuchCalendarError. Optional fields are set only when
// provided. The save is scoped to this event only.
func (m *Manager) Create(ctx context.Context, req CreateEventRequest) (Event, error) {
	var cal eventstore.Calendar
	if req.CalendarName != "" {
		found, ok, err := m.directory.FindByName(ctx, req.CalendarName)
		if err != nil {
			return Event{}, err
		}
		if !ok {
			return Event{}, &NoSuchCalendarError{Name: req.CalendarName}
		}
		cal = found
	} else {
		def, err := m.directory.DefaultForNewEvents(ctx)
		if err != nil {
			return Event{}, err
		}
		cal = def
	}

	native := &eventstore.Event{
		Title:    req.Title,
		Start:    req.Start,
		End:      req.End,
		AllDay:   req.AllDay,
		Calendar: cal,
	}
	if req.Location != "" {
		native.Location = req.Location
	}
	if req.Notes != "" {
		native.Notes = req.Notes
	}
	if req.URL != "" {
		native.URL = req.URL
	}
	native.Alarms = toNativeAlarms(req.AlarmMinutesOffsets, req.AllDay)
	native.Recurrence = toNativeRecurrence(req.Recurrence)

	if err := m.store.Save(ctx, native, eventstore.SpanThisEvent); err != nil {
		return Event{}, &StoreOperationError{Op: "save event", Err: err}
	}

	m.logger.Debug("created event",
		logging.Operation("create_event"),
		logging.EventID(native.Identifier),
		logging.CalendarName(cal.Title))
	return fromNative(native), nil
}

// Update applies a partial update to the event with the given identifier
// and returns the updated event. Only non-nil request fields are applied;
// a replaced alarm set is recomputed from the event's effective all-day
// flag. The save is scoped to this and future occurrences.
func (m *Manager) Update(ctx context.Context, identifier string, req UpdateEventRequest) (Event, error) {
	native, err := m.store.EventByIdentifier(ctx, identifier)
	if err != nil {
		return Event{}, &StoreOperationError{Op: "find event", Err: err}
	}
	if native == nil {
		return Event{}, &NoSuchEventError{Identifier: identifier}
	}

	if req.Title != nil {
		native.Title = *req.Title
	}
	if req.Start != nil {
		native.Start = *req.Start
	}
	if req.End != nil {
		native.End = *req.End
	}
	if req.Notes != nil {
		native.Notes = *req.Notes
	}
	if req.Location != nil {
		native.Location = *req.Location
	}
	if req.URL != nil {
		native.URL = *req.URL
	}
	if req.AllDay != nil {
		native.AllDay = *req.AllDay
	}
	if req.CalendarName != nil && *req.CalendarName != "" {
		cal, ok, err := m.directory.FindByName(ctx, *req.CalendarName)
		if err != nil {
			return Event{}, err
		}
		if !ok {
			return Event{}, &NoSuchCalendarError{Name: *req.CalendarName}
		}
		native.Calendar = cal
	}
	if req.Recurrence != nil {
		native.Recurrence = toNativeRecurrence(req.Recurrence)
	}
	if req.AlarmMinutesOffsets != nil {
		native.Alarms = toNativeAlarms(*req.AlarmMinutesOffsets, native.AllDay)
	}

	if err := m.store.Save(ctx, native, eventstore.SpanFutureEvents); err != nil {
		return Event{}, &StoreOperationError{Op: "save event", Err: err}
	}

	m.logger.Debug("updated event",
		logging.Operation("update_event"),
		logging.EventID(identifier))
	return fromNative(native), nil
}

// Delete removes the event with the given identifier, scoped to this and
// future occurrences, and returns the removed event.
func (m *Manager) Delete(ctx context.Context, identifier string) (Event, error) {
	native, err := m.store.EventByIdentifier(ctx, identifier)
	if err != nil {
		return Event{}, &StoreOperationError{Op: "find event", Err: err}
	}
	if native == nil {
		return Event{}, &NoSuchEventError{Identifier: identifier}
	}

	if err := m.store.Remove(ctx, native, eventstore.SpanFutureEvents); err != nil {
		return Event{}, &StoreOperationError{Op: "remove event", Err: err}
	}

	m.logger.Debug("deleted event",
		logging.Operation("delete_event"),
		logging.EventID(identifier))
	return fromNative(native), nil
}
