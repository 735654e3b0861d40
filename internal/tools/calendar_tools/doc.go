// Package calendar_tools provides MCP (Model Context Protocol) tools for calendar operations.
//
// This package exposes the calendar core through a standardized MCP interface,
// allowing AI assistants to list calendars and create, update, and delete
// events on behalf of users.
//
// Every handler returns domain failures as error results in the tool response
// text; callers never receive a raised fault. The calendar manager is created
// lazily on first tool use so the store's permission prompt is deferred until
// a calendar tool is actually invoked.
package calendar_tools
