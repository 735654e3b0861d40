// Package resources provides MCP resources for exposing calendar store data.
// Resources are read-only data sources that MCP clients can fetch without
// spending a tool call, such as the list of available calendars.
package resources
