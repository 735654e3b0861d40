package server

import (
	"context"
	"sync"
	"time"

	"github.com/elinsky/calendar-mcp/internal/calendar"
	"github.com/elinsky/calendar-mcp/internal/eventstore"
	"github.com/elinsky/calendar-mcp/internal/instrumentation"
)

// StoreFactory creates the event store backend the server operates on.
// It is invoked at most once, on first tool use.
type StoreFactory func(ctx context.Context) (eventstore.Store, error)

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx               context.Context
	cancel            context.CancelFunc
	storeFactory      StoreFactory
	permissionTimeout time.Duration
	manager           *calendar.Manager
	metrics           *instrumentation.Metrics
	auditLogger       *instrumentation.AuditLogger
	mu                sync.RWMutex
	shutdown          bool
}

// NewServerContext creates a new server context. The calendar manager is not
// created here: it is lazily initialized on first tool use, so the store's
// permission prompt is deferred until a calendar tool is actually invoked.
func NewServerContext(ctx context.Context, factory StoreFactory, permissionTimeout time.Duration) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:               shutdownCtx,
		cancel:            cancel,
		storeFactory:      factory,
		permissionTimeout: permissionTimeout,
		shutdown:          false,
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// CalendarManager returns the calendar manager, creating it on first use.
// Creation requests store access; on failure the error is returned and the
// next call re-attempts initialization.
func (sc *ServerContext) CalendarManager() (*calendar.Manager, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.manager != nil {
		return sc.manager, nil
	}

	store, err := sc.storeFactory(sc.ctx)
	if err != nil {
		return nil, err
	}

	manager, err := calendar.NewManager(calendar.Config{
		Store:             store,
		PermissionTimeout: sc.permissionTimeout,
	})
	if err != nil {
		return nil, err
	}

	sc.manager = manager
	return manager, nil
}

// CalendarManagerInitialized reports whether the lazily-created manager
// exists yet, without triggering its creation. Before the first tool use
// this is false even on a healthy server.
func (sc *ServerContext) CalendarManagerInitialized() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.manager != nil
}

// SetCalendarManager sets the calendar manager. Used in tests to inject a
// manager over a fake store.
func (sc *ServerContext) SetCalendarManager(manager *calendar.Manager) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.manager = manager
}

// SetMetrics sets the metrics recorder for tool instrumentation.
func (sc *ServerContext) SetMetrics(metrics *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
}

// Metrics returns the metrics recorder, or nil when instrumentation is
// disabled.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetAuditLogger sets the audit logger for tool invocations.
func (sc *ServerContext) SetAuditLogger(logger *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = logger
}

// AuditLogger returns the audit logger, or nil when audit logging is
// disabled.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
