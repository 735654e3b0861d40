// Package eventstore defines the contract between the calendar core and the
// event store that persists calendars and events.
//
// The store is the source of truth: the core holds no state of its own and
// talks to the store exclusively through the Store interface. Calendar and
// Event values are capability handles owned by the store; the core never
// keeps one alive beyond the call that produced it.
//
// The native constants in this package (frequency numbering, weekday
// ordinals, alarm offsets in seconds before the reference point) are wire
// values shared with the store, not implementation details.
package eventstore
