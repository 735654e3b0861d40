package calendar

import (
	"fmt"
	"sort"
	"strings"
)

// notesPreviewLimit caps the notes excerpt shown under an event line.
const notesPreviewLimit = 100

// SummaryString returns the one-line rendering of an event: title, time
// range and calendar name. All-day events show "[all day]" in place of the
// time range.
func (e Event) SummaryString() string {
	if e.AllDay {
		return fmt.Sprintf("%s [all day] [%s]", e.Title, e.CalendarName)
	}
	return fmt.Sprintf("%s (%s - %s) [%s]",
		e.Title,
		e.Start.Format("15:04"),
		e.End.Format("15:04"),
		e.CalendarName)
}

// FormatEventList renders events grouped by the ISO date of each event's
// start, dates ascending, events within a date sorted by start time. Each
// day closes with a duration subtotal and the listing closes with a grand
// total. Output is byte-identical for the same input.
func FormatEventList(events []Event) string {
	byDate := make(map[string][]Event)
	for _, ev := range events {
		key := ev.Start.Format("2006-01-02")
		byDate[key] = append(byDate[key], ev)
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var lines []string
	totalMinutes := 0

	for _, date := range dates {
		lines = append(lines, "\n"+date+":")

		day := byDate[date]
		sort.SliceStable(day, func(i, j int) bool {
			return day[i].Start.Before(day[j].Start)
		})

		dayMinutes := 0
		for _, ev := range day {
			lines = append(lines, "  "+ev.SummaryString())
			if ev.Notes != "" {
				// Truncate on characters, not bytes, so a multibyte rune
				// is never split.
				preview := ev.Notes
				if runes := []rune(preview); len(runes) > notesPreviewLimit {
					preview = string(runes[:notesPreviewLimit]) + "..."
				}
				lines = append(lines, "    Notes: "+preview)
			}
			dayMinutes += ev.DurationMinutes()
			totalMinutes += ev.DurationMinutes()
		}
		lines = append(lines, fmt.Sprintf("  Daily total: %d minutes (%.1f hours)", dayMinutes, float64(dayMinutes)/60))
	}

	lines = append(lines, fmt.Sprintf("\nTotal time: %d minutes (%.1f hours)", totalMinutes, float64(totalMinutes)/60))

	return strings.Join(lines, "\n")
}
