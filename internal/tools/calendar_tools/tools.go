package calendar_tools

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/elinsky/calendar-mcp/internal/calendar"
	"github.com/elinsky/calendar-mcp/internal/server"
)

// getManager returns the shared calendar manager, initializing it on first
// use. Initialization requests calendar access, so the permission prompt
// fires on the first tool call rather than at server startup.
func getManager(sc *server.ServerContext) (*calendar.Manager, error) {
	return sc.CalendarManager()
}

// RegisterCalendarTools registers all calendar tools with the MCP server
func RegisterCalendarTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Register calendar list tools
	if err := RegisterCalendarListTools(s, sc); err != nil {
		return fmt.Errorf("failed to register calendar list tools: %w", err)
	}

	// Register event tools
	if err := RegisterEventTools(s, sc); err != nil {
		return fmt.Errorf("failed to register event tools: %w", err)
	}

	return nil
}
