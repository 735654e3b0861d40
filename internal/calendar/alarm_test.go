package calendar

import (
	"testing"
	"time"
)

func TestToNativeAlarms(t *testing.T) {
	tests := []struct {
		name    string
		offsets []int
		allDay  bool
		want    []time.Duration
	}{
		{
			name:    "timed event",
			offsets: []int{15},
			allDay:  false,
			want:    []time.Duration{-15 * time.Minute},
		},
		{
			name:    "all-day event corrects for midnight anchor",
			offsets: []int{15},
			allDay:  true,
			want:    []time.Duration{1425 * time.Minute},
		},
		{
			name:    "multiple offsets",
			offsets: []int{5, 30, 1440},
			allDay:  false,
			want:    []time.Duration{-5 * time.Minute, -30 * time.Minute, -1440 * time.Minute},
		},
		{
			name:    "empty offsets",
			offsets: nil,
			allDay:  false,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toNativeAlarms(tt.offsets, tt.allDay)
			if len(got) != len(tt.want) {
				t.Fatalf("toNativeAlarms() returned %d alarms, want %d", len(got), len(tt.want))
			}
			for i, alarm := range got {
				if alarm.RelativeOffset != tt.want[i] {
					t.Errorf("alarm %d offset = %v, want %v", i, alarm.RelativeOffset, tt.want[i])
				}
			}
		})
	}
}
