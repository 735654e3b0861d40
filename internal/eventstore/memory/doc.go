// Package memory provides an in-memory eventstore.Store backend.
//
// It is the development backend for the server and the substitute store for
// tests: it implements the full Store contract, including the asynchronous
// permission handshake, occurrence expansion for recurring series, and span
// semantics for removals. With a file path configured it persists its state
// as an iCalendar file across restarts.
package memory
