package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/elinsky/calendar-mcp/internal/server"
)

// RegisterCalendarResources registers read-only resources describing the
// calendar store. Resources complement the tools: a client can inspect the
// available calendars without spending a tool call.
func RegisterCalendarResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	calendarsResource := mcp.NewResource(
		"calendar://calendars",
		"Available Calendars",
		mcp.WithResourceDescription("The calendars events can be listed from and created in"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(calendarsResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleCalendarList(ctx, request, sc)
	})

	return nil
}

// handleCalendarList returns the calendar names as a JSON document. Reading
// the resource triggers the same lazy store initialization as the tools, so
// the first read may prompt for calendar access.
func handleCalendarList(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	manager, err := sc.CalendarManager()
	if err != nil {
		return nil, fmt.Errorf("failed to access calendars: %w", err)
	}

	names, err := manager.ListCalendarNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}

	payload := map[string]interface{}{
		"calendars": names,
		"count":     len(names),
	}

	jsonData, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal calendar list: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
