package calendar

import (
	"time"

	"github.com/elinsky/calendar-mcp/internal/eventstore"
)

// minutesPerDay is subtracted from all-day alarm offsets: the store anchors
// all-day alarms at midnight of the start day, so "m minutes before the
// event" becomes m minutes before the following midnight.
const minutesPerDay = 24 * 60

// toNativeAlarms translates reminder offsets in minutes-before-start into
// the store's native relative alarms. For all-day events the offset is
// corrected by a full day to account for the store's midnight anchor.
func toNativeAlarms(offsets []int, allDay bool) []eventstore.Alarm {
	if len(offsets) == 0 {
		return nil
	}
	alarms := make([]eventstore.Alarm, len(offsets))
	for i, minutes := range offsets {
		effective := minutes
		if allDay {
			effective = minutes - minutesPerDay
		}
		alarms[i] = eventstore.Alarm{RelativeOffset: -time.Duration(effective) * time.Minute}
	}
	return alarms
}
