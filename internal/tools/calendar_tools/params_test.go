package calendar_tools

import (
	"strings"
	"testing"
	"time"

	"github.com/elinsky/calendar-mcp/internal/calendar"
)

func TestParseISOTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "bare ISO datetime",
			input: "2026-03-02T09:00:00",
			want:  time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		},
		{
			name:  "RFC3339 with zone",
			input: "2026-03-02T09:00:00Z",
			want:  time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		},
		{
			name:  "date only",
			input: "2026-03-02",
			want:  time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "garbage",
			input:   "next tuesday",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseISOTime(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("parseISOTime(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestAlarmsFromArg(t *testing.T) {
	offsets, err := alarmsFromArg([]interface{}{float64(15), 60})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(offsets) != 2 || offsets[0] != 15 || offsets[1] != 60 {
		t.Errorf("unexpected offsets: %v", offsets)
	}

	if _, err := alarmsFromArg("15,60"); err == nil {
		t.Error("expected an error for a non-list value")
	}
	if _, err := alarmsFromArg([]interface{}{"15"}); err == nil {
		t.Error("expected an error for a non-integer element")
	}
}

func TestRecurrenceFromArg(t *testing.T) {
	rule, err := recurrenceFromArg(map[string]interface{}{
		"frequency":    "weekly",
		"interval":     float64(2),
		"days_of_week": []interface{}{float64(2), float64(4)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rule.Frequency != calendar.Weekly {
		t.Errorf("frequency = %v, want weekly", rule.Frequency)
	}
	if rule.Interval != 2 {
		t.Errorf("interval = %d, want 2", rule.Interval)
	}
	if len(rule.DaysOfWeek) != 2 || rule.DaysOfWeek[0] != calendar.Monday || rule.DaysOfWeek[1] != calendar.Wednesday {
		t.Errorf("unexpected days: %v", rule.DaysOfWeek)
	}
}

func TestRecurrenceFromArgRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		wantMsg string
	}{
		{"not an object", "daily", "must be an object"},
		{"unknown frequency", map[string]interface{}{"frequency": "fortnightly"}, "frequency must be one of"},
		{"missing frequency", map[string]interface{}{"interval": float64(1)}, "frequency must be one of"},
		{
			"weekday out of range",
			map[string]interface{}{"frequency": "weekly", "days_of_week": []interface{}{float64(8)}},
			"between 1 (Sunday) and 7 (Saturday)",
		},
		{
			"bad end date",
			map[string]interface{}{"frequency": "daily", "end_date": "someday"},
			"end_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := recurrenceFromArg(tt.input)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestRecurrenceFromArgBothEndConditions(t *testing.T) {
	_, err := recurrenceFromArg(map[string]interface{}{
		"frequency":        "daily",
		"end_date":         "2026-04-01T00:00:00",
		"occurrence_count": float64(5),
	})
	if err != calendar.ErrInvalidRecurrenceRule {
		t.Errorf("expected ErrInvalidRecurrenceRule, got %v", err)
	}
}
