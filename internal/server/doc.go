// Package server provides the MCP server context and the auxiliary HTTP
// servers for the calendar-mcp application.
//
// # Key Components
//
// ServerContext manages the calendar manager with lazy initialization: the
// event store is not opened, and no permission prompt is triggered, until a
// calendar tool is first invoked. It also carries the metrics recorder and
// audit logger shared by all tool handlers.
//
// MetricsServer serves Prometheus metrics on a dedicated port, isolating
// operational metrics from MCP traffic.
//
// HealthChecker exposes /healthz, /readyz, and /healthz/detailed endpoints
// for liveness and readiness probing when running over HTTP transport.
package server
