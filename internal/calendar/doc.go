// Package calendar implements the calendar operations core: a Manager that
// translates portable event requests into operations against an abstract
// event store (internal/eventstore).
//
// The Manager owns the permission handshake with the store, calendar name
// resolution, translation of portable recurrence rules and reminder offsets
// into the store's native representation, and deterministic formatting of
// query results. It never retries: every store failure surfaces as a typed
// error at the package boundary.
package calendar
