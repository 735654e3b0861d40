package common

// CalendarFromArgs extracts the calendar name from request arguments.
// Returns the empty string when the tool targets the default calendar.
func CalendarFromArgs(args map[string]interface{}) string {
	if name, ok := args["calendar_name"].(string); ok {
		return name
	}
	return ""
}

// EventIDFromArgs extracts the event identifier from request arguments.
// Returns the empty string for tools that do not target a single event.
func EventIDFromArgs(args map[string]interface{}) string {
	if id, ok := args["event_id"].(string); ok {
		return id
	}
	return ""
}
