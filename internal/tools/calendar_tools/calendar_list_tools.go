package calendar_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/elinsky/calendar-mcp/internal/instrumentation"
	"github.com/elinsky/calendar-mcp/internal/server"
	"github.com/elinsky/calendar-mcp/internal/tools/common"
)

// RegisterCalendarListTools registers calendar enumeration tools with the MCP server
func RegisterCalendarListTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listCalendarsTool := mcp.NewTool("list_calendars",
		mcp.WithDescription("List all available calendars that can be used with calendar operations."),
	)

	s.AddTool(listCalendarsTool, common.InstrumentedToolHandlerWithOperation(
		"list_calendars", instrumentation.OperationCalendars, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListCalendars(ctx, sc)
		}))

	return nil
}

func handleListCalendars(ctx context.Context, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	manager, err := getManager(sc)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error listing calendars: %v", err)), nil
	}

	names, err := manager.ListCalendarNames(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error listing calendars: %v", err)), nil
	}

	if len(names) == 0 {
		return mcp.NewToolResultText("No calendars found"), nil
	}

	var sb strings.Builder
	sb.WriteString("Available calendars:")
	for _, name := range names {
		sb.WriteString("\n- ")
		sb.WriteString(name)
	}
	return mcp.NewToolResultText(sb.String()), nil
}
