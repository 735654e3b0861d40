package calendar

import (
	"time"

	"github.com/elinsky/calendar-mcp/internal/eventstore"
)

// Frequency is the portable recurrence frequency.
type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

// Weekday is the portable weekday ordinal: 1 = Sunday .. 7 = Saturday. The
// numbering is an external contract shared with the store.
type Weekday int

const (
	Sunday    Weekday = 1
	Monday    Weekday = 2
	Tuesday   Weekday = 3
	Wednesday Weekday = 4
	Thursday  Weekday = 5
	Friday    Weekday = 6
	Saturday  Weekday = 7
)

// RecurrenceRule describes how an event repeats. At most one of EndDate and
// OccurrenceCount is set; NewRecurrenceRule enforces the exclusivity so an
// invalid rule never reaches the store.
type RecurrenceRule struct {
	Frequency       Frequency
	Interval        int
	DaysOfWeek      []Weekday
	EndDate         *time.Time
	OccurrenceCount int
}

// NewRecurrenceRule builds a validated rule. An interval below 1 defaults to
// 1. Setting both endDate and occurrenceCount returns
// ErrInvalidRecurrenceRule.
func NewRecurrenceRule(frequency Frequency, interval int, daysOfWeek []Weekday, endDate *time.Time, occurrenceCount int) (*RecurrenceRule, error) {
	if endDate != nil && occurrenceCount > 0 {
		return nil, ErrInvalidRecurrenceRule
	}
	if interval < 1 {
		interval = 1
	}
	return &RecurrenceRule{
		Frequency:       frequency,
		Interval:        interval,
		DaysOfWeek:      daysOfWeek,
		EndDate:         endDate,
		OccurrenceCount: occurrenceCount,
	}, nil
}

// Event is the portable, read-only view of a stored event. It is
// materialized fresh from the store on every read; nothing is cached.
type Event struct {
	Identifier   string
	Title        string
	Start        time.Time
	End          time.Time
	AllDay       bool
	CalendarName string
	Notes        string
	Location     string
	URL          string
}

// DurationMinutes returns the event length in whole minutes.
func (e Event) DurationMinutes() int {
	return int(e.End.Sub(e.Start) / time.Minute)
}

// CreateEventRequest carries the fields for a new event. Title, Start and
// End are required; the rest are optional. Start/End ordering is not
// validated here: the store is authoritative and its diagnostic is
// surfaced unchanged.
type CreateEventRequest struct {
	Title               string
	Start               time.Time
	End                 time.Time
	CalendarName        string
	Location            string
	Notes               string
	URL                 string
	AllDay              bool
	AlarmMinutesOffsets []int
	Recurrence          *RecurrenceRule
}

// UpdateEventRequest carries a partial update. A nil field means "leave
// unchanged"; a non-nil field replaces the stored value, so a pointer to an
// empty string clears a text field. A non-nil AlarmMinutesOffsets replaces
// the whole alarm set, and a non-nil Recurrence replaces the rule. A non-nil
// CalendarName moves the event to that calendar; an empty name is ignored.
type UpdateEventRequest struct {
	Title               *string
	Start               *time.Time
	End                 *time.Time
	CalendarName        *string
	Notes               *string
	Location            *string
	URL                 *string
	AllDay              *bool
	AlarmMinutesOffsets *[]int
	Recurrence          *RecurrenceRule
}

func fromNative(ev *eventstore.Event) Event {
	return Event{
		Identifier:   ev.Identifier,
		Title:        ev.Title,
		Start:        ev.Start,
		End:          ev.End,
		AllDay:       ev.AllDay,
		CalendarName: ev.Calendar.Title,
		Notes:        ev.Notes,
		Location:     ev.Location,
		URL:          ev.URL,
	}
}
