package resources

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/elinsky/calendar-mcp/internal/eventstore"
	"github.com/elinsky/calendar-mcp/internal/eventstore/memory"
	"github.com/elinsky/calendar-mcp/internal/server"
)

func newTestServerContext(t *testing.T) *server.ServerContext {
	t.Helper()
	factory := func(ctx context.Context) (eventstore.Store, error) {
		return memory.NewStore(memory.Config{
			Calendars: []eventstore.Calendar{
				{Identifier: "work", Title: "Work"},
				{Identifier: "personal", Title: "Personal"},
			},
		})
	}
	sc, err := server.NewServerContext(context.Background(), factory, time.Second)
	if err != nil {
		t.Fatalf("failed to create server context: %v", err)
	}
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func TestHandleCalendarList(t *testing.T) {
	sc := newTestServerContext(t)

	req := mcp.ReadResourceRequest{}
	req.Params.URI = "calendar://calendars"

	contents, err := handleCalendarList(context.Background(), req, sc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("expected 1 resource content, got %d", len(contents))
	}

	text, ok := contents[0].(*mcp.TextResourceContents)
	if !ok {
		t.Fatalf("expected TextResourceContents, got %T", contents[0])
	}
	if text.URI != "calendar://calendars" {
		t.Errorf("URI = %q, want calendar://calendars", text.URI)
	}
	if text.MIMEType != "application/json" {
		t.Errorf("MIMEType = %q, want application/json", text.MIMEType)
	}
	for _, want := range []string{`"Work"`, `"Personal"`, `"count": 2`} {
		if !strings.Contains(text.Text, want) {
			t.Errorf("resource text missing %q:\n%s", want, text.Text)
		}
	}
}

func TestHandleCalendarListAccessDenied(t *testing.T) {
	factory := func(ctx context.Context) (eventstore.Store, error) {
		return memory.NewStore(memory.Config{DenyAccess: true})
	}
	sc, err := server.NewServerContext(context.Background(), factory, time.Second)
	if err != nil {
		t.Fatalf("failed to create server context: %v", err)
	}
	t.Cleanup(func() { _ = sc.Shutdown() })

	req := mcp.ReadResourceRequest{}
	req.Params.URI = "calendar://calendars"

	if _, err := handleCalendarList(context.Background(), req, sc); err == nil {
		t.Fatal("expected an error when calendar access is denied")
	}
}
