package memory

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/elinsky/calendar-mcp/internal/eventstore"
)

// Non-standard properties used to round-trip state the iCalendar core
// vocabulary does not carry for us.
const (
	propCalendarID    = "X-CALMCP-CALENDAR-ID"
	propCalendarTitle = "X-CALMCP-CALENDAR-TITLE"
	propAlarmOffsets  = "X-CALMCP-ALARM-OFFSET-SECS"
	propExceptions    = "X-CALMCP-EXDATES"
	propURL           = "URL"
)

const untilLayout = "20060102T150405Z"

// loadFile reads the persistence file into the store. A missing file is not
// an error; the store simply starts empty.
func (s *Store) loadFile() error {
	body, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("parse calendar: %w", err)
	}

	for _, ve := range cal.Events() {
		rec, err := recordFromVEvent(ve)
		if err != nil {
			return err
		}
		s.events[rec.event.Identifier] = rec
	}
	return nil
}

// saveFileLocked rewrites the persistence file from the current state. The
// caller holds the write lock. Output is deterministic: events are emitted
// in identifier order.
func (s *Store) saveFileLocked() error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)

	ids := make([]string, 0, len(s.events))
	for id := range s.events {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		rec := s.events[id]
		ev := rec.event

		ve := cal.AddEvent(id)
		ve.SetDtStampTime(ev.Start)
		if ev.AllDay {
			ve.SetAllDayStartAt(ev.Start)
			ve.SetAllDayEndAt(ev.End)
		} else {
			ve.SetStartAt(ev.Start)
			ve.SetEndAt(ev.End)
		}
		ve.SetSummary(ev.Title)
		if ev.Notes != "" {
			ve.SetDescription(ev.Notes)
		}
		if ev.Location != "" {
			ve.SetLocation(ev.Location)
		}
		if ev.URL != "" {
			ve.SetProperty(ical.ComponentProperty(propURL), ev.URL)
		}
		if ev.Recurrence != nil {
			ve.SetProperty(ical.ComponentPropertyRrule, ruleToString(ev.Recurrence))
		}
		ve.SetProperty(ical.ComponentProperty(propCalendarID), ev.Calendar.Identifier)
		ve.SetProperty(ical.ComponentProperty(propCalendarTitle), ev.Calendar.Title)
		if len(ev.Alarms) > 0 {
			ve.SetProperty(ical.ComponentProperty(propAlarmOffsets), alarmsToString(ev.Alarms))
		}
		if len(rec.exDates) > 0 {
			ve.SetProperty(ical.ComponentProperty(propExceptions), timesToString(rec.exDates))
		}
	}

	return os.WriteFile(s.filePath, []byte(cal.Serialize()), 0o600)
}

func recordFromVEvent(ve *ical.VEvent) (*record, error) {
	uidProp := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uidProp == nil || uidProp.Value == "" {
		return nil, fmt.Errorf("vevent missing UID")
	}

	ev := &eventstore.Event{Identifier: uidProp.Value}

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		ev.Title = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		ev.Notes = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		ev.Location = p.Value
	}
	if p := ve.GetProperty(ical.ComponentProperty(propURL)); p != nil {
		ev.URL = p.Value
	}
	if p := ve.GetProperty(ical.ComponentProperty(propCalendarID)); p != nil {
		ev.Calendar.Identifier = p.Value
	}
	if p := ve.GetProperty(ical.ComponentProperty(propCalendarTitle)); p != nil {
		ev.Calendar.Title = p.Value
	}

	// All-day events are stored with DATE values (no time component).
	if p := ve.GetProperty(ical.ComponentPropertyDtStart); p != nil && !strings.Contains(p.Value, "T") {
		ev.AllDay = true
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return nil, fmt.Errorf("vevent %s: bad DTSTART: %w", ev.Identifier, err)
	}
	end, err := ve.GetEndAt()
	if err != nil {
		return nil, fmt.Errorf("vevent %s: bad DTEND: %w", ev.Identifier, err)
	}
	ev.Start = start
	ev.End = end

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil && p.Value != "" {
		rule, err := parseRuleString(p.Value)
		if err != nil {
			return nil, fmt.Errorf("vevent %s: %w", ev.Identifier, err)
		}
		ev.Recurrence = rule
	}

	if p := ve.GetProperty(ical.ComponentProperty(propAlarmOffsets)); p != nil && p.Value != "" {
		alarms, err := alarmsFromString(p.Value)
		if err != nil {
			return nil, fmt.Errorf("vevent %s: %w", ev.Identifier, err)
		}
		ev.Alarms = alarms
	}

	rec := &record{event: ev}
	if p := ve.GetProperty(ical.ComponentProperty(propExceptions)); p != nil && p.Value != "" {
		exDates, err := timesFromString(p.Value)
		if err != nil {
			return nil, fmt.Errorf("vevent %s: %w", ev.Identifier, err)
		}
		rec.exDates = exDates
	}
	return rec, nil
}

// ruleToString renders a native rule as RRULE text. Only one of UNTIL and
// COUNT is ever emitted; the core guarantees the exclusivity.
func ruleToString(rule *eventstore.RecurrenceRule) string {
	parts := []string{"FREQ=" + freqName(rule.Frequency)}
	interval := rule.Interval
	if interval < 1 {
		interval = 1
	}
	parts = append(parts, "INTERVAL="+strconv.Itoa(interval))
	if len(rule.DaysOfWeek) > 0 {
		days := make([]string, len(rule.DaysOfWeek))
		for i, d := range rule.DaysOfWeek {
			days[i] = weekdayCode(d)
		}
		parts = append(parts, "BYDAY="+strings.Join(days, ","))
	}
	if rule.EndDate != nil {
		parts = append(parts, "UNTIL="+rule.EndDate.UTC().Format(untilLayout))
	}
	if rule.OccurrenceCount > 0 {
		parts = append(parts, "COUNT="+strconv.Itoa(rule.OccurrenceCount))
	}
	return strings.Join(parts, ";")
}

func parseRuleString(raw string) (*eventstore.RecurrenceRule, error) {
	rule := &eventstore.RecurrenceRule{Interval: 1}
	for _, part := range strings.Split(raw, ";") {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		switch strings.ToUpper(key) {
		case "FREQ":
			freq, err := freqFromName(value)
			if err != nil {
				return nil, err
			}
			rule.Frequency = freq
		case "INTERVAL":
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("bad INTERVAL %q", value)
			}
			rule.Interval = n
		case "BYDAY":
			for _, code := range strings.Split(value, ",") {
				day, err := weekdayFromCode(code)
				if err != nil {
					return nil, err
				}
				rule.DaysOfWeek = append(rule.DaysOfWeek, day)
			}
		case "UNTIL":
			t, err := time.Parse(untilLayout, value)
			if err != nil {
				return nil, fmt.Errorf("bad UNTIL %q", value)
			}
			rule.EndDate = &t
		case "COUNT":
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("bad COUNT %q", value)
			}
			rule.OccurrenceCount = n
		}
	}
	return rule, nil
}

func freqName(f eventstore.Frequency) string {
	switch f {
	case eventstore.FrequencyWeekly:
		return "WEEKLY"
	case eventstore.FrequencyMonthly:
		return "MONTHLY"
	case eventstore.FrequencyYearly:
		return "YEARLY"
	default:
		return "DAILY"
	}
}

func freqFromName(name string) (eventstore.Frequency, error) {
	switch strings.ToUpper(name) {
	case "DAILY":
		return eventstore.FrequencyDaily, nil
	case "WEEKLY":
		return eventstore.FrequencyWeekly, nil
	case "MONTHLY":
		return eventstore.FrequencyMonthly, nil
	case "YEARLY":
		return eventstore.FrequencyYearly, nil
	default:
		return 0, fmt.Errorf("unknown FREQ %q", name)
	}
}

var weekdayCodes = map[eventstore.Weekday]string{
	eventstore.Sunday:    "SU",
	eventstore.Monday:    "MO",
	eventstore.Tuesday:   "TU",
	eventstore.Wednesday: "WE",
	eventstore.Thursday:  "TH",
	eventstore.Friday:    "FR",
	eventstore.Saturday:  "SA",
}

func weekdayCode(d eventstore.Weekday) string {
	if code, ok := weekdayCodes[d]; ok {
		return code
	}
	return "SU"
}

func weekdayFromCode(code string) (eventstore.Weekday, error) {
	for day, c := range weekdayCodes {
		if c == strings.ToUpper(strings.TrimSpace(code)) {
			return day, nil
		}
	}
	return 0, fmt.Errorf("unknown BYDAY code %q", code)
}

func alarmsToString(alarms []eventstore.Alarm) string {
	parts := make([]string, len(alarms))
	for i, alarm := range alarms {
		parts[i] = strconv.FormatInt(int64(alarm.RelativeOffset/time.Second), 10)
	}
	return strings.Join(parts, ",")
}

func alarmsFromString(raw string) ([]eventstore.Alarm, error) {
	var alarms []eventstore.Alarm
	for _, part := range strings.Split(raw, ",") {
		secs, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad alarm offset %q", part)
		}
		alarms = append(alarms, eventstore.Alarm{RelativeOffset: time.Duration(secs) * time.Second})
	}
	return alarms, nil
}

func timesToString(ts []time.Time) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.Format(time.RFC3339)
	}
	return strings.Join(parts, ",")
}

func timesFromString(raw string) ([]time.Time, error) {
	var out []time.Time
	for _, part := range strings.Split(raw, ",") {
		t, err := time.Parse(time.RFC3339, strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("bad exception date %q", part)
		}
		out = append(out, t)
	}
	return out, nil
}
