package memory

import (
	"time"

	"github.com/teambition/rrule-go"

	"github.com/elinsky/calendar-mcp/internal/eventstore"
)

// occurrenceCap bounds expansion of unbounded series within a query range.
const occurrenceCap = 1000

// occurrencesInRange expands a stored record into the occurrences whose
// interval intersects [start, end]. Non-recurring events yield at most one
// result. Every occurrence carries the series identifier.
func occurrencesInRange(rec *record, start, end time.Time) []*eventstore.Event {
	ev := rec.event

	if ev.Recurrence == nil {
		if intervalsIntersect(ev.Start, ev.End, start, end) {
			return []*eventstore.Event{ev.Clone()}
		}
		return nil
	}

	rule, err := nativeToRRule(ev.Recurrence, ev.Start)
	if err != nil {
		// A rule the expander cannot represent degrades to the base event.
		if intervalsIntersect(ev.Start, ev.End, start, end) {
			return []*eventstore.Event{ev.Clone()}
		}
		return nil
	}

	duration := ev.End.Sub(ev.Start)

	// Widen the window so occurrences that start before the range but still
	// overlap it are included.
	starts := rule.Between(start.Add(-duration), end, true)
	if len(starts) > occurrenceCap {
		starts = starts[:occurrenceCap]
	}

	var out []*eventstore.Event
	for _, occStart := range starts {
		if isException(rec.exDates, occStart) {
			continue
		}
		occEnd := occStart.Add(duration)
		if !intervalsIntersect(occStart, occEnd, start, end) {
			continue
		}
		occ := ev.Clone()
		occ.Start = occStart
		occ.End = occEnd
		out = append(out, occ)
	}
	return out
}

// nativeToRRule converts a native recurrence rule into an rrule for
// expansion, anchored at the series start.
func nativeToRRule(rule *eventstore.RecurrenceRule, dtstart time.Time) (*rrule.RRule, error) {
	opt := rrule.ROption{
		Freq:     nativeFrequency(rule.Frequency),
		Interval: rule.Interval,
		Dtstart:  dtstart,
	}
	if opt.Interval < 1 {
		opt.Interval = 1
	}
	if rule.EndDate != nil {
		opt.Until = *rule.EndDate
	}
	if rule.OccurrenceCount > 0 {
		opt.Count = rule.OccurrenceCount
	}
	for _, day := range rule.DaysOfWeek {
		opt.Byweekday = append(opt.Byweekday, nativeWeekday(day))
	}
	return rrule.NewRRule(opt)
}

func nativeFrequency(f eventstore.Frequency) rrule.Frequency {
	switch f {
	case eventstore.FrequencyWeekly:
		return rrule.WEEKLY
	case eventstore.FrequencyMonthly:
		return rrule.MONTHLY
	case eventstore.FrequencyYearly:
		return rrule.YEARLY
	default:
		return rrule.DAILY
	}
}

func nativeWeekday(d eventstore.Weekday) rrule.Weekday {
	switch d {
	case eventstore.Sunday:
		return rrule.SU
	case eventstore.Monday:
		return rrule.MO
	case eventstore.Tuesday:
		return rrule.TU
	case eventstore.Wednesday:
		return rrule.WE
	case eventstore.Thursday:
		return rrule.TH
	case eventstore.Friday:
		return rrule.FR
	default:
		return rrule.SA
	}
}

func isException(exDates []time.Time, occurrence time.Time) bool {
	for _, ex := range exDates {
		if ex.Equal(occurrence) {
			return true
		}
	}
	return false
}

// intervalsIntersect reports whether [aStart, aEnd] and [bStart, bEnd]
// share at least one instant. Boundaries count as intersection.
func intervalsIntersect(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}
