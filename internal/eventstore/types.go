package eventstore

import (
	"time"
)

// EntityType identifies the class of store objects an access request covers.
type EntityType int

// EntityTypeEvent is the only entity type this server requests access to.
const EntityTypeEvent EntityType = 0

// Span controls how a mutation on one occurrence of a recurring series
// propagates to the rest of the series.
type Span int

const (
	// SpanThisEvent scopes a save or remove to a single occurrence.
	SpanThisEvent Span = iota
	// SpanFutureEvents scopes a save or remove to the occurrence and all
	// later occurrences in the same series.
	SpanFutureEvents
)

// String returns the span name for logging.
func (s Span) String() string {
	switch s {
	case SpanThisEvent:
		return "this-event"
	case SpanFutureEvents:
		return "future-events"
	default:
		return "unknown"
	}
}

// Frequency is the store's native recurrence frequency. The numeric values
// are part of the store contract and must not change.
type Frequency int

const (
	FrequencyDaily   Frequency = 0
	FrequencyWeekly  Frequency = 1
	FrequencyMonthly Frequency = 2
	FrequencyYearly  Frequency = 3
)

// Weekday is the store's native weekday specifier: 1 = Sunday .. 7 = Saturday.
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

// Calendar is an opaque handle to a store-managed calendar. Titles are
// display strings and not guaranteed unique; Identifier is.
type Calendar struct {
	Identifier string
	Title      string
}

// RecurrenceRule is the store's native recurrence representation. At most
// one of EndDate and OccurrenceCount is set; both zero means the series
// recurs without end. The core guarantees the exclusivity before a rule
// reaches the store.
type RecurrenceRule struct {
	Frequency  Frequency
	Interval   int
	DaysOfWeek []Weekday

	EndDate         *time.Time
	OccurrenceCount int
}

// Alarm is the store's native reminder representation. RelativeOffset is
// measured from the event's reference point; negative means before it. For
// all-day events the reference point is midnight of the start day.
type Alarm struct {
	RelativeOffset time.Duration
}

// Event is the store's native, mutable event record. Identifier is empty
// until the store assigns one on first save and immutable afterwards.
type Event struct {
	Identifier string
	Title      string
	Start      time.Time
	End        time.Time
	AllDay     bool
	Notes      string
	Location   string
	URL        string
	Calendar   Calendar
	Alarms     []Alarm
	Recurrence *RecurrenceRule
}

// Clone returns a deep copy of the event. Stores hand out clones so callers
// can mutate a handle without racing the store's own copy.
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}
	out := *e
	if e.Alarms != nil {
		out.Alarms = make([]Alarm, len(e.Alarms))
		copy(out.Alarms, e.Alarms)
	}
	if e.Recurrence != nil {
		rule := *e.Recurrence
		if e.Recurrence.DaysOfWeek != nil {
			rule.DaysOfWeek = make([]Weekday, len(e.Recurrence.DaysOfWeek))
			copy(rule.DaysOfWeek, e.Recurrence.DaysOfWeek)
		}
		if e.Recurrence.EndDate != nil {
			end := *e.Recurrence.EndDate
			rule.EndDate = &end
		}
		out.Recurrence = &rule
	}
	return &out
}
