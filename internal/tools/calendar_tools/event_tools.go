package calendar_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/elinsky/calendar-mcp/internal/calendar"
	"github.com/elinsky/calendar-mcp/internal/instrumentation"
	"github.com/elinsky/calendar-mcp/internal/server"
	"github.com/elinsky/calendar-mcp/internal/tools/common"
)

// RegisterEventTools registers event CRUD tools with the MCP server
func RegisterEventTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// List events tool
	listEventsTool := mcp.NewTool("list_events",
		mcp.WithDescription("List calendar events in a date range. Returns events grouped by date with time totals. Use for daily summaries, weekly reviews, and planning."),
		mcp.WithString("start_date",
			mcp.Required(),
			mcp.Description("Start date in ISO8601 format (YYYY-MM-DDTHH:MM:SS). For full day queries, use 00:00:00 for the time."),
		),
		mcp.WithString("end_date",
			mcp.Required(),
			mcp.Description("End date in ISO8601 format (YYYY-MM-DDTHH:MM:SS). For full day queries, use 23:59:59 for the time."),
		),
		mcp.WithString("calendar_name",
			mcp.Description("Optional calendar name to filter by. Use list_calendars to see available calendars."),
		),
	)

	s.AddTool(listEventsTool, common.InstrumentedToolHandlerWithOperation(
		"list_events", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListEvents(ctx, request, sc)
		}))

	// Create event tool
	createEventTool := mcp.NewTool("create_event",
		mcp.WithDescription("Create a new calendar event with title, time, location, notes, and other metadata."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Event title"),
		),
		mcp.WithString("start_time",
			mcp.Required(),
			mcp.Description("Start time in ISO format (YYYY-MM-DDTHH:MM:SS)"),
		),
		mcp.WithString("end_time",
			mcp.Required(),
			mcp.Description("End time in ISO format (YYYY-MM-DDTHH:MM:SS)"),
		),
		mcp.WithString("calendar_name",
			mcp.Description("Optional calendar name. If not specified, uses default calendar."),
		),
		mcp.WithString("location",
			mcp.Description("Optional event location"),
		),
		mcp.WithString("notes",
			mcp.Description("Optional event notes/description"),
		),
		mcp.WithArray("alarms_minutes_offsets",
			mcp.Description("Optional list of minutes before event to trigger reminders (e.g., [15, 60] for 15 min and 1 hour before)"),
		),
		mcp.WithString("url",
			mcp.Description("Optional URL associated with event"),
		),
		mcp.WithBoolean("all_day",
			mcp.Description("Whether this is an all-day event (default: false)"),
		),
		mcp.WithObject("recurrence_rule",
			mcp.Description("Optional recurrence rule for repeating events (frequency daily|weekly|monthly|yearly, interval, days_of_week [1..7], end_date, occurrence_count)"),
		),
	)

	s.AddTool(createEventTool, common.InstrumentedToolHandlerWithOperation(
		"create_event", instrumentation.OperationCreate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateEvent(ctx, request, sc)
		}))

	// Update event tool
	updateEventTool := mcp.NewTool("update_event",
		mcp.WithDescription("Update an existing calendar event. Only provide the fields you want to change."),
		mcp.WithString("event_id",
			mcp.Required(),
			mcp.Description("Unique identifier of the event to update (from list_events)"),
		),
		mcp.WithString("title",
			mcp.Description("New event title"),
		),
		mcp.WithString("start_time",
			mcp.Description("New start time in ISO format (YYYY-MM-DDTHH:MM:SS)"),
		),
		mcp.WithString("end_time",
			mcp.Description("New end time in ISO format (YYYY-MM-DDTHH:MM:SS)"),
		),
		mcp.WithString("calendar_name",
			mcp.Description("New calendar name"),
		),
		mcp.WithString("location",
			mcp.Description("New event location"),
		),
		mcp.WithString("notes",
			mcp.Description("New event notes/description"),
		),
		mcp.WithArray("alarms_minutes_offsets",
			mcp.Description("New list of reminder offsets in minutes"),
		),
		mcp.WithString("url",
			mcp.Description("New URL"),
		),
		mcp.WithBoolean("all_day",
			mcp.Description("New all-day flag"),
		),
		mcp.WithObject("recurrence_rule",
			mcp.Description("New recurrence rule"),
		),
	)

	s.AddTool(updateEventTool, common.InstrumentedToolHandlerWithOperation(
		"update_event", instrumentation.OperationUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUpdateEvent(ctx, request, sc)
		}))

	// Delete event tool
	deleteEventTool := mcp.NewTool("delete_event",
		mcp.WithDescription("Delete a calendar event by its identifier."),
		mcp.WithString("event_id",
			mcp.Required(),
			mcp.Description("Unique identifier of the event to delete (from list_events)"),
		),
	)

	s.AddTool(deleteEventTool, common.InstrumentedToolHandlerWithOperation(
		"delete_event", instrumentation.OperationDelete, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDeleteEvent(ctx, request, sc)
		}))

	return nil
}

func handleListEvents(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	startStr, ok := args["start_date"].(string)
	if !ok || startStr == "" {
		return mcp.NewToolResultError("Error listing events: start_date is required"), nil
	}
	start, err := parseISOTime(startStr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error listing events: start_date: %v", err)), nil
	}

	endStr, ok := args["end_date"].(string)
	if !ok || endStr == "" {
		return mcp.NewToolResultError("Error listing events: end_date is required"), nil
	}
	end, err := parseISOTime(endStr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error listing events: end_date: %v", err)), nil
	}

	calendarName := ""
	if name, ok := args["calendar_name"].(string); ok {
		calendarName = name
	}

	manager, err := getManager(sc)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error listing events: %v", err)), nil
	}

	events, err := manager.List(ctx, start, end, calendarName)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error listing events: %v", err)), nil
	}

	if len(events) == 0 {
		return mcp.NewToolResultText("No events found in the specified date range"), nil
	}

	return mcp.NewToolResultText(calendar.FormatEventList(events)), nil
}

func handleCreateEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	title, ok := args["title"].(string)
	if !ok || title == "" {
		return mcp.NewToolResultError("Error creating event: title is required"), nil
	}

	startStr, ok := args["start_time"].(string)
	if !ok || startStr == "" {
		return mcp.NewToolResultError("Error creating event: start_time is required"), nil
	}
	start, err := parseISOTime(startStr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error creating event: start_time: %v", err)), nil
	}

	endStr, ok := args["end_time"].(string)
	if !ok || endStr == "" {
		return mcp.NewToolResultError("Error creating event: end_time is required"), nil
	}
	end, err := parseISOTime(endStr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error creating event: end_time: %v", err)), nil
	}

	req := calendar.CreateEventRequest{
		Title: title,
		Start: start,
		End:   end,
	}

	if name, ok := args["calendar_name"].(string); ok {
		req.CalendarName = name
	}
	if loc, ok := args["location"].(string); ok {
		req.Location = loc
	}
	if notes, ok := args["notes"].(string); ok {
		req.Notes = notes
	}
	if url, ok := args["url"].(string); ok {
		req.URL = url
	}
	if allDay, ok := args["all_day"].(bool); ok {
		req.AllDay = allDay
	}

	if raw, present := args["alarms_minutes_offsets"]; present && raw != nil {
		offsets, err := alarmsFromArg(raw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error creating event: %v", err)), nil
		}
		req.AlarmMinutesOffsets = offsets
	}

	if raw, present := args["recurrence_rule"]; present && raw != nil {
		rule, err := recurrenceFromArg(raw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error creating event: %v", err)), nil
		}
		req.Recurrence = rule
	}

	manager, err := getManager(sc)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error creating event: %v", err)), nil
	}

	event, err := manager.Create(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error creating event: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Successfully created event: %s (ID: %s)", event.Title, event.Identifier)), nil
}

func handleUpdateEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	eventID, ok := args["event_id"].(string)
	if !ok || eventID == "" {
		return mcp.NewToolResultError("Error: Missing required parameter (event_id)"), nil
	}

	// Only keys present in the arguments are applied; an absent key must
	// never overwrite stored state.
	req := calendar.UpdateEventRequest{}

	if raw, present := args["title"]; present {
		if title, ok := raw.(string); ok {
			req.Title = &title
		}
	}
	if raw, present := args["start_time"]; present {
		startStr, _ := raw.(string)
		start, err := parseISOTime(startStr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error updating event: start_time: %v", err)), nil
		}
		req.Start = &start
	}
	if raw, present := args["end_time"]; present {
		endStr, _ := raw.(string)
		end, err := parseISOTime(endStr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error updating event: end_time: %v", err)), nil
		}
		req.End = &end
	}
	if raw, present := args["calendar_name"]; present {
		if name, ok := raw.(string); ok {
			req.CalendarName = &name
		}
	}
	if raw, present := args["location"]; present {
		if loc, ok := raw.(string); ok {
			req.Location = &loc
		}
	}
	if raw, present := args["notes"]; present {
		if notes, ok := raw.(string); ok {
			req.Notes = &notes
		}
	}
	if raw, present := args["url"]; present {
		if url, ok := raw.(string); ok {
			req.URL = &url
		}
	}
	if raw, present := args["all_day"]; present {
		if allDay, ok := raw.(bool); ok {
			req.AllDay = &allDay
		}
	}
	// A null-valued key means "leave unchanged", same as an absent key.
	if raw, present := args["alarms_minutes_offsets"]; present && raw != nil {
		offsets, err := alarmsFromArg(raw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error updating event: %v", err)), nil
		}
		req.AlarmMinutesOffsets = &offsets
	}
	if raw, present := args["recurrence_rule"]; present && raw != nil {
		rule, err := recurrenceFromArg(raw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error updating event: %v", err)), nil
		}
		req.Recurrence = rule
	}

	manager, err := getManager(sc)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error updating event: %v", err)), nil
	}

	event, err := manager.Update(ctx, eventID, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error updating event: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Successfully updated event: %s", event.Title)), nil
}

func handleDeleteEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	eventID, ok := args["event_id"].(string)
	if !ok || eventID == "" {
		return mcp.NewToolResultError("Error: Missing required parameter (event_id)"), nil
	}

	manager, err := getManager(sc)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error deleting event: %v", err)), nil
	}

	event, err := manager.Delete(ctx, eventID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error deleting event: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Successfully deleted event: %s", event.Title)), nil
}
