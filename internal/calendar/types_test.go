package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestNewRecurrenceRuleRejectsBothEndConditions(t *testing.T) {
	end := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	_, err := NewRecurrenceRule(Weekly, 1, nil, &end, 10)
	if !errors.Is(err, ErrInvalidRecurrenceRule) {
		t.Fatalf("NewRecurrenceRule() error = %v, want ErrInvalidRecurrenceRule", err)
	}
}

func TestNewRecurrenceRuleDefaultsInterval(t *testing.T) {
	tests := []struct {
		name     string
		interval int
		want     int
	}{
		{name: "zero", interval: 0, want: 1},
		{name: "negative", interval: -3, want: 1},
		{name: "explicit", interval: 2, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := NewRecurrenceRule(Daily, tt.interval, nil, nil, 0)
			if err != nil {
				t.Fatalf("NewRecurrenceRule() error = %v", err)
			}
			if rule.Interval != tt.want {
				t.Errorf("Interval = %d, want %d", rule.Interval, tt.want)
			}
		})
	}
}

func TestNewRecurrenceRuleSingleEndCondition(t *testing.T) {
	end := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	rule, err := NewRecurrenceRule(Monthly, 1, nil, &end, 0)
	if err != nil {
		t.Fatalf("NewRecurrenceRule() with end date error = %v", err)
	}
	if rule.EndDate == nil || rule.OccurrenceCount != 0 {
		t.Errorf("rule = %+v, want end date only", rule)
	}

	rule, err = NewRecurrenceRule(Monthly, 1, nil, nil, 5)
	if err != nil {
		t.Fatalf("NewRecurrenceRule() with count error = %v", err)
	}
	if rule.EndDate != nil || rule.OccurrenceCount != 5 {
		t.Errorf("rule = %+v, want occurrence count only", rule)
	}
}

func TestWeekdayOrdinals(t *testing.T) {
	tests := []struct {
		day  Weekday
		want int
	}{
		{Sunday, 1},
		{Monday, 2},
		{Tuesday, 3},
		{Wednesday, 4},
		{Thursday, 5},
		{Friday, 6},
		{Saturday, 7},
	}
	for _, tt := range tests {
		if int(tt.day) != tt.want {
			t.Errorf("weekday %v = %d, want %d", tt.day, int(tt.day), tt.want)
		}
	}
}

func TestEventDurationMinutes(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	ev := Event{Start: start, End: start.Add(90 * time.Minute)}
	if got := ev.DurationMinutes(); got != 90 {
		t.Errorf("DurationMinutes() = %d, want 90", got)
	}
}
