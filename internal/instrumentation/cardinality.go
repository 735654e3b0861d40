package instrumentation

// Cardinality management helpers for metrics.
// These functions reduce high-cardinality label values to prevent metrics explosion.
//
// # Warning
//
// High cardinality in metrics can cause:
// - Increased memory usage in Prometheus/metrics backends
// - Slower query performance
// - Higher storage costs
//
// Always use these helpers when recording metrics with user-controlled values.

// BoundedCalendarLabel returns a metrics-safe label for a calendar title.
// Calendar titles are user-controlled free text; unless detailed labels are
// explicitly enabled, metrics record only whether a calendar was targeted.
//
// Example:
//
//	BoundedCalendarLabel("Work")  // "named"
//	BoundedCalendarLabel("")      // "default"
func BoundedCalendarLabel(calendarName string) string {
	if calendarName == "" {
		return "default"
	}
	return "named"
}

// Common operation types for event store metrics.
// Status and Service constants are defined in config.go.
const (
	OperationList      = "list"
	OperationFind      = "find"
	OperationCreate    = "create"
	OperationUpdate    = "update"
	OperationDelete    = "delete"
	OperationCalendars = "calendars"
)
