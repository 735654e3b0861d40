package calendar_tools

import (
	"fmt"
	"time"

	"github.com/elinsky/calendar-mcp/internal/calendar"
)

// isoTimeLayouts are accepted datetime shapes, most specific first. The
// original surface documents ISO 8601 without requiring a zone offset.
var isoTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseISOTime(value string) (time.Time, error) {
	for _, layout := range isoTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid datetime %q, expected ISO 8601 (YYYY-MM-DDTHH:MM:SS)", value)
}

// intFromArg converts a JSON-decoded number to an int. Arguments arrive as
// float64 after JSON decoding; plain ints appear in direct handler tests.
func intFromArg(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}

func alarmsFromArg(v interface{}) ([]int, error) {
	raw, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("alarms_minutes_offsets must be a list of integers")
	}
	offsets := make([]int, 0, len(raw))
	for _, item := range raw {
		n, ok := intFromArg(item)
		if !ok {
			return nil, fmt.Errorf("alarms_minutes_offsets must be a list of integers")
		}
		offsets = append(offsets, n)
	}
	return offsets, nil
}

var portableFrequencies = map[string]calendar.Frequency{
	"daily":   calendar.Daily,
	"weekly":  calendar.Weekly,
	"monthly": calendar.Monthly,
	"yearly":  calendar.Yearly,
}

// recurrenceFromArg builds a validated rule from the recurrence_rule object.
func recurrenceFromArg(v interface{}) (*calendar.RecurrenceRule, error) {
	raw, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("recurrence_rule must be an object")
	}

	freqStr, _ := raw["frequency"].(string)
	frequency, ok := portableFrequencies[freqStr]
	if !ok {
		return nil, fmt.Errorf("recurrence frequency must be one of daily, weekly, monthly, yearly")
	}

	interval := 1
	if v, present := raw["interval"]; present {
		n, ok := intFromArg(v)
		if !ok {
			return nil, fmt.Errorf("recurrence interval must be an integer")
		}
		interval = n
	}

	var days []calendar.Weekday
	if v, present := raw["days_of_week"]; present {
		list, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("days_of_week must be a list of integers")
		}
		for _, item := range list {
			n, ok := intFromArg(item)
			if !ok || n < 1 || n > 7 {
				return nil, fmt.Errorf("days_of_week values must be integers between 1 (Sunday) and 7 (Saturday)")
			}
			days = append(days, calendar.Weekday(n))
		}
	}

	var endDate *time.Time
	if s, ok := raw["end_date"].(string); ok && s != "" {
		t, err := parseISOTime(s)
		if err != nil {
			return nil, fmt.Errorf("recurrence end_date: %w", err)
		}
		endDate = &t
	}

	count := 0
	if v, present := raw["occurrence_count"]; present {
		n, ok := intFromArg(v)
		if !ok {
			return nil, fmt.Errorf("recurrence occurrence_count must be an integer")
		}
		count = n
	}

	return calendar.NewRecurrenceRule(frequency, interval, days, endDate, count)
}
