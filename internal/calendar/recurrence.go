package calendar

import (
	"github.com/elinsky/calendar-mcp/internal/eventstore"
)

// nativeFrequencies maps portable frequencies to the store's wire values.
var nativeFrequencies = map[Frequency]eventstore.Frequency{
	Daily:   eventstore.FrequencyDaily,
	Weekly:  eventstore.FrequencyWeekly,
	Monthly: eventstore.FrequencyMonthly,
	Yearly:  eventstore.FrequencyYearly,
}

// toNativeRecurrence translates a validated portable rule into the store's
// native representation. A nil rule stays nil. Exactly one end condition is
// carried over; NewRecurrenceRule has already rejected rules with both.
func toNativeRecurrence(rule *RecurrenceRule) *eventstore.RecurrenceRule {
	if rule == nil {
		return nil
	}

	native := &eventstore.RecurrenceRule{
		Frequency: nativeFrequencies[rule.Frequency],
		Interval:  rule.Interval,
	}
	if native.Interval < 1 {
		native.Interval = 1
	}
	for _, day := range rule.DaysOfWeek {
		native.DaysOfWeek = append(native.DaysOfWeek, eventstore.Weekday(day))
	}
	if rule.EndDate != nil {
		end := *rule.EndDate
		native.EndDate = &end
	} else if rule.OccurrenceCount > 0 {
		native.OccurrenceCount = rule.OccurrenceCount
	}
	return native
}
