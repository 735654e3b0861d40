package calendar

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestSummaryString(t *testing.T) {
	start := time.Date(2025, 11, 5, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		event Event
		want  string
	}{
		{
			name: "timed event",
			event: Event{
				Title:        "Standup",
				Start:        start,
				End:          start.Add(30 * time.Minute),
				CalendarName: "Work",
			},
			want: "Standup (09:00 - 09:30) [Work]",
		},
		{
			name: "all-day event",
			event: Event{
				Title:        "Conference",
				Start:        start,
				End:          start.AddDate(0, 0, 1),
				AllDay:       true,
				CalendarName: "Work",
			},
			want: "Conference [all day] [Work]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.SummaryString(); got != tt.want {
				t.Errorf("SummaryString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatEventListGroupingAndTotals(t *testing.T) {
	day := time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)
	events := []Event{
		{
			Title:        "Afternoon review",
			Start:        day.Add(14 * time.Hour),
			End:          day.Add(15 * time.Hour),
			CalendarName: "Work",
		},
		{
			Title:        "Morning sync",
			Start:        day.Add(9 * time.Hour),
			End:          day.Add(10 * time.Hour),
			CalendarName: "Work",
		},
	}

	got := FormatEventList(events)

	want := strings.Join([]string{
		"",
		"2025-11-05:",
		"  Morning sync (09:00 - 10:00) [Work]",
		"  Afternoon review (14:00 - 15:00) [Work]",
		"  Daily total: 120 minutes (2.0 hours)",
		"",
		"Total time: 120 minutes (2.0 hours)",
	}, "\n")

	if got != want {
		t.Errorf("FormatEventList() =\n%q\nwant\n%q", got, want)
	}
}

func TestFormatEventListMultipleDatesAscending(t *testing.T) {
	day1 := time.Date(2025, 11, 5, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 11, 6, 9, 0, 0, 0, time.UTC)
	events := []Event{
		{Title: "Later", Start: day2, End: day2.Add(time.Hour), CalendarName: "Work"},
		{Title: "Earlier", Start: day1, End: day1.Add(time.Hour), CalendarName: "Work"},
	}

	got := FormatEventList(events)
	first := strings.Index(got, "2025-11-05:")
	second := strings.Index(got, "2025-11-06:")
	if first == -1 || second == -1 || first > second {
		t.Errorf("dates out of order in output:\n%s", got)
	}
	if !strings.Contains(got, "\nTotal time: 120 minutes (2.0 hours)") {
		t.Errorf("missing grand total in output:\n%s", got)
	}
}

func TestFormatEventListNotesPreview(t *testing.T) {
	start := time.Date(2025, 11, 5, 9, 0, 0, 0, time.UTC)
	long := strings.Repeat("x", 150)
	events := []Event{
		{
			Title:        "With notes",
			Start:        start,
			End:          start.Add(time.Hour),
			CalendarName: "Work",
			Notes:        long,
		},
		{
			Title:        "Short notes",
			Start:        start.Add(2 * time.Hour),
			End:          start.Add(3 * time.Hour),
			CalendarName: "Work",
			Notes:        "bring slides",
		},
	}

	got := FormatEventList(events)
	if !strings.Contains(got, "    Notes: "+strings.Repeat("x", 100)+"...") {
		t.Errorf("long notes not truncated at 100 chars:\n%s", got)
	}
	if !strings.Contains(got, "    Notes: bring slides") {
		t.Errorf("short notes missing or altered:\n%s", got)
	}
}

func TestFormatEventListNotesPreviewMultibyte(t *testing.T) {
	start := time.Date(2025, 11, 5, 9, 0, 0, 0, time.UTC)
	events := []Event{
		{
			Title:        "Budget",
			Start:        start,
			End:          start.Add(time.Hour),
			CalendarName: "Work",
			Notes:        strings.Repeat("€", 101),
		},
	}

	got := FormatEventList(events)
	if !utf8.ValidString(got) {
		t.Fatalf("output contains invalid UTF-8:\n%q", got)
	}
	// 101 three-byte runes truncate at 100 runes, not 100 bytes.
	if !strings.Contains(got, "    Notes: "+strings.Repeat("€", 100)+"...") {
		t.Errorf("multibyte notes not truncated at 100 runes:\n%s", got)
	}
}

func TestFormatEventListDeterministic(t *testing.T) {
	day := time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)
	events := []Event{
		{Title: "A", Start: day.Add(9 * time.Hour), End: day.Add(10 * time.Hour), CalendarName: "Work"},
		{Title: "B", Start: day.Add(11 * time.Hour), End: day.Add(12 * time.Hour), CalendarName: "Personal"},
		{Title: "C", Start: day.AddDate(0, 0, 1).Add(9 * time.Hour), End: day.AddDate(0, 0, 1).Add(10 * time.Hour), CalendarName: "Work"},
	}

	first := FormatEventList(events)
	for i := 0; i < 10; i++ {
		if got := FormatEventList(events); got != first {
			t.Fatalf("FormatEventList() output varies across runs")
		}
	}
}

func TestFormatEventListEmpty(t *testing.T) {
	got := FormatEventList(nil)
	want := "\nTotal time: 0 minutes (0.0 hours)"
	if got != want {
		t.Errorf("FormatEventList(nil) = %q, want %q", got, want)
	}
}
