package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/elinsky/calendar-mcp/internal/eventstore"
)

// Config holds configuration for the memory store.
type Config struct {
	// Calendars seeds the store's calendar list. When empty a single
	// calendar named "Calendar" is created and used as the default.
	Calendars []eventstore.Calendar

	// DefaultCalendarID is the identifier of the calendar used for new
	// events created without an explicit calendar. Defaults to the first
	// seeded calendar.
	DefaultCalendarID string

	// FilePath enables iCalendar persistence. Existing events are loaded at
	// construction and the file is rewritten after every mutation.
	FilePath string

	// DenyAccess makes RequestAccess report a denied grant. Used in tests.
	DenyAccess bool
}

// record is a stored series plus its removal exceptions.
type record struct {
	event   *eventstore.Event
	exDates []time.Time
}

// Store is an in-memory implementation of eventstore.Store.
type Store struct {
	mu                sync.RWMutex
	calendars         []eventstore.Calendar
	defaultCalendarID string
	events            map[string]*record
	filePath          string
	denyAccess        bool
}

var _ eventstore.Store = (*Store)(nil)

// NewStore creates a memory store from the given configuration. When a file
// path is configured and the file exists, its events are loaded.
func NewStore(cfg Config) (*Store, error) {
	calendars := cfg.Calendars
	if len(calendars) == 0 {
		calendars = []eventstore.Calendar{{Identifier: "calendar", Title: "Calendar"}}
	}

	defaultID := cfg.DefaultCalendarID
	if defaultID == "" {
		defaultID = calendars[0].Identifier
	}
	found := false
	for _, cal := range calendars {
		if cal.Identifier == defaultID {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("memory: default calendar %q is not among the configured calendars", defaultID)
	}

	s := &Store{
		calendars:         calendars,
		defaultCalendarID: defaultID,
		events:            make(map[string]*record),
		filePath:          cfg.FilePath,
		denyAccess:        cfg.DenyAccess,
	}

	if s.filePath != "" {
		if err := s.loadFile(); err != nil {
			return nil, fmt.Errorf("memory: failed to load %s: %w", s.filePath, err)
		}
	}

	return s, nil
}

// RequestAccess grants (or denies, per configuration) asynchronously,
// invoking the completion exactly once.
func (s *Store) RequestAccess(_ eventstore.EntityType, completion func(granted bool, err error)) {
	granted := !s.denyAccess
	go completion(granted, nil)
}

// Calendars returns the configured calendars in seed order.
func (s *Store) Calendars(_ context.Context) ([]eventstore.Calendar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]eventstore.Calendar, len(s.calendars))
	copy(out, s.calendars)
	return out, nil
}

// DefaultCalendarForNewEvents returns the configured default calendar.
func (s *Store) DefaultCalendarForNewEvents(_ context.Context) (eventstore.Calendar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, cal := range s.calendars {
		if cal.Identifier == s.defaultCalendarID {
			return cal, nil
		}
	}
	return eventstore.Calendar{}, fmt.Errorf("memory: default calendar %q missing", s.defaultCalendarID)
}

// EventsInRange returns every occurrence intersecting [start, end],
// restricted to the given calendars when the slice is non-nil. Results are
// ordered by start time, then identifier, so enumeration is deterministic.
func (s *Store) EventsInRange(_ context.Context, start, end time.Time, calendars []eventstore.Calendar) ([]*eventstore.Event, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("memory: range end %s is before range start %s", end, start)
	}

	var wanted map[string]bool
	if calendars != nil {
		wanted = make(map[string]bool, len(calendars))
		for _, cal := range calendars {
			wanted[cal.Identifier] = true
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*eventstore.Event
	for _, rec := range s.events {
		if wanted != nil && !wanted[rec.event.Calendar.Identifier] {
			continue
		}
		out = append(out, occurrencesInRange(rec, start, end)...)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].Identifier < out[j].Identifier
	})
	return out, nil
}

// EventByIdentifier returns the base event of a series, or (nil, nil) when
// the identifier is unknown.
func (s *Store) EventByIdentifier(_ context.Context, identifier string) (*eventstore.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.events[identifier]
	if !ok {
		return nil, nil
	}
	return rec.event.Clone(), nil
}

// Save persists the event. New events are assigned a UUID identifier. The
// memory backend applies future-span saves to the whole stored series; it
// does not model per-occurrence series splits.
func (s *Store) Save(_ context.Context, event *eventstore.Event, _ eventstore.Span) error {
	if event == nil {
		return fmt.Errorf("memory: cannot save nil event")
	}
	if event.Calendar.Identifier == "" {
		return fmt.Errorf("memory: event %q has no calendar", event.Title)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasCalendarLocked(event.Calendar.Identifier) {
		return fmt.Errorf("memory: unknown calendar %q", event.Calendar.Identifier)
	}

	if event.Identifier == "" {
		event.Identifier = uuid.NewString()
		s.events[event.Identifier] = &record{event: event.Clone()}
	} else {
		rec, ok := s.events[event.Identifier]
		if !ok {
			return fmt.Errorf("memory: no event with identifier %q", event.Identifier)
		}
		rec.event = event.Clone()
	}

	return s.persistLocked()
}

// Remove deletes the event, or part of its series for recurring events:
// SpanThisEvent records an exception date for the occurrence, while
// SpanFutureEvents truncates the series at the occurrence (deleting it
// entirely when aimed at the first occurrence).
func (s *Store) Remove(_ context.Context, event *eventstore.Event, span eventstore.Span) error {
	if event == nil || event.Identifier == "" {
		return fmt.Errorf("memory: cannot remove unsaved event")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.events[event.Identifier]
	if !ok {
		return fmt.Errorf("memory: no event with identifier %q", event.Identifier)
	}

	switch {
	case rec.event.Recurrence == nil:
		delete(s.events, event.Identifier)
	case span == eventstore.SpanThisEvent:
		rec.exDates = append(rec.exDates, event.Start)
	default:
		if event.Start.Equal(rec.event.Start) {
			delete(s.events, event.Identifier)
		} else {
			cutoff := event.Start.Add(-time.Second)
			rule := *rec.event.Recurrence
			rule.EndDate = &cutoff
			rule.OccurrenceCount = 0
			rec.event.Recurrence = &rule
		}
	}

	return s.persistLocked()
}

func (s *Store) hasCalendarLocked(identifier string) bool {
	for _, cal := range s.calendars {
		if cal.Identifier == identifier {
			return true
		}
	}
	return false
}

func (s *Store) persistLocked() error {
	if s.filePath == "" {
		return nil
	}
	return s.saveFileLocked()
}
