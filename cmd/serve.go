package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/elinsky/calendar-mcp/internal/eventstore"
	"github.com/elinsky/calendar-mcp/internal/eventstore/memory"
	"github.com/elinsky/calendar-mcp/internal/instrumentation"
	"github.com/elinsky/calendar-mcp/internal/resources"
	"github.com/elinsky/calendar-mcp/internal/server"
	"github.com/elinsky/calendar-mcp/internal/tools/calendar_tools"
)

// ServeConfig holds the serve command's settings after flag and environment
// resolution.
type ServeConfig struct {
	// Transport is the MCP transport type: "stdio" or "streamable-http".
	Transport string

	// HTTPAddr is the listen address for the streamable-http transport.
	HTTPAddr string

	// StoreFile enables iCalendar persistence for the event store. Empty
	// means events live only in memory.
	StoreFile string

	// CalendarNames seeds the store's calendars; the first one is the
	// default for new events. Empty means a single "Calendar".
	CalendarNames []string

	// PermissionTimeout bounds the wait for the store's access answer.
	PermissionTimeout time.Duration

	// Debug enables debug logging.
	Debug bool

	// Metrics holds the metrics server configuration.
	Metrics MetricsConfig
}

// MetricsConfig holds configuration for the metrics server
type MetricsConfig struct {
	// Enabled determines whether to start the metrics server (default: true)
	Enabled bool

	// Addr is the address for the metrics server (e.g., ":9090")
	Addr string
}

func newServeCmd() *cobra.Command {
	var config ServeConfig

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server to provide calendar
tools for AI assistants.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport

Event Storage:
  Events are held in memory. With --store-file, the store loads existing
  events at startup and rewrites the file as an iCalendar document after
  every mutation, so events survive restarts.

Calendar access is requested on the first tool invocation, not at startup,
and the wait for the store's answer is bounded by --permission-timeout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			loadServeEnvVars(cmd, &config)
			return runServe(config)
		},
	}

	cmd.Flags().BoolVar(&config.Debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&config.Transport, "transport", "stdio", "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&config.HTTPAddr, "http-addr", ":8080", "HTTP server address (for streamable-http transport)")
	cmd.Flags().StringVar(&config.StoreFile, "store-file", "", "Path to the iCalendar file backing the event store. Can also use CALENDAR_STORE_FILE env var. Empty keeps events in memory only.")
	cmd.Flags().StringSliceVar(&config.CalendarNames, "calendar", nil, "Calendar names to expose (first is the default for new events). Can also use CALENDAR_NAMES env var. Default: a single calendar named 'Calendar'.")
	cmd.Flags().DurationVar(&config.PermissionTimeout, "permission-timeout", 30*time.Second, "How long to wait for the store's calendar access answer. Can also use MCP_PERMISSION_TIMEOUT env var.")

	// Metrics server flags
	cmd.Flags().BoolVar(&config.Metrics.Enabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&config.Metrics.Addr, "metrics-addr", ":9090", "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

// loadServeEnvVars fills settings from environment variables. An environment
// variable only applies when the corresponding flag was not explicitly set.
func loadServeEnvVars(cmd *cobra.Command, config *ServeConfig) {
	if !cmd.Flags().Changed("store-file") {
		if path := os.Getenv("CALENDAR_STORE_FILE"); path != "" {
			config.StoreFile = path
		}
	}
	if !cmd.Flags().Changed("calendar") {
		if names := os.Getenv("CALENDAR_NAMES"); names != "" {
			config.CalendarNames = parseCommaSeparatedList(names)
		}
	}
	if !cmd.Flags().Changed("permission-timeout") {
		if raw := os.Getenv("MCP_PERMISSION_TIMEOUT"); raw != "" {
			if d, err := time.ParseDuration(raw); err == nil && d > 0 {
				config.PermissionTimeout = d
			} else {
				log.Printf("Warning: invalid MCP_PERMISSION_TIMEOUT value %q, using default", raw)
			}
		}
	}
	if !cmd.Flags().Changed("metrics-enabled") {
		if os.Getenv("METRICS_ENABLED") == "false" {
			config.Metrics.Enabled = false
		}
	}
	if !cmd.Flags().Changed("metrics-addr") {
		if addr := os.Getenv("METRICS_ADDR"); addr != "" {
			config.Metrics.Addr = addr
		}
	}
}

// storeFactory builds the event store factory for the configured backend.
// The factory runs on the first tool invocation, so the store file is not
// touched until a calendar tool is actually used.
func storeFactory(config ServeConfig) server.StoreFactory {
	return func(ctx context.Context) (eventstore.Store, error) {
		return memory.NewStore(memory.Config{
			Calendars: calendarsFromNames(config.CalendarNames),
			FilePath:  config.StoreFile,
		})
	}
}

// calendarsFromNames derives calendar handles from display names. The
// identifier is a stable slug of the title; the store rejects duplicates.
func calendarsFromNames(names []string) []eventstore.Calendar {
	calendars := make([]eventstore.Calendar, 0, len(names))
	for _, name := range names {
		calendars = append(calendars, eventstore.Calendar{
			Identifier: strings.ToLower(strings.ReplaceAll(name, " ", "-")),
			Title:      name,
		})
	}
	return calendars
}

func runServe(config ServeConfig) error {
	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Logs go to stderr so stdio transport keeps stdout clean for the protocol
	logLevel := slog.LevelInfo
	if config.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			if config.Transport != "stdio" {
				log.Printf("Error during instrumentation shutdown: %v", err)
			}
		}
	}()

	// Start metrics server if enabled and not in stdio mode
	var metricsServer *server.MetricsServer
	if config.Transport != "stdio" && config.Metrics.Enabled && provider.Enabled() {
		var err error
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    config.Metrics.Addr,
			Enabled:                 true,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		// Use ready channel to confirm metrics server started successfully
		metricsReady := make(chan struct{})
		metricsErr := make(chan error, 1)
		go func() {
			if err := metricsServer.StartWithReadySignal(metricsReady); err != nil && err != http.ErrServerClosed {
				metricsErr <- err
			}
			close(metricsErr)
		}()

		// Wait for metrics server to be ready or fail
		select {
		case <-metricsReady:
			log.Printf("Metrics server started on %s", metricsServer.Addr())
		case err := <-metricsErr:
			return fmt.Errorf("metrics server failed to start: %w", err)
		case <-time.After(5 * time.Second):
			return fmt.Errorf("metrics server startup timed out")
		}
	}

	// Create server context. The event store is opened lazily on first tool
	// use so the permission prompt fires when a calendar tool is invoked,
	// not at startup.
	serverContext, err := server.NewServerContext(shutdownCtx, storeFactory(config), config.PermissionTimeout)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}

	// Set metrics and audit logger on server context for tool instrumentation
	if provider.Enabled() {
		serverContext.SetMetrics(provider.Metrics())
		serverContext.SetAuditLogger(instrumentation.NewAuditLoggerWithConfig(nil, instrConfig.AuditLogging))
	}
	defer func() {
		// Shutdown metrics server first
		if metricsServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				log.Printf("Error during metrics server shutdown: %v", err)
			}
		}
		if err := serverContext.Shutdown(); err != nil {
			if config.Transport != "stdio" {
				log.Printf("Error during server context shutdown: %v", err)
			}
		}
	}()

	// Create MCP server
	mcpSrv := mcpserver.NewMCPServer("calendar-mcp", version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(true, true),
	)

	// Register tools and resources
	if err := calendar_tools.RegisterCalendarTools(mcpSrv, serverContext); err != nil {
		return fmt.Errorf("failed to register calendar tools: %w", err)
	}
	if err := resources.RegisterCalendarResources(mcpSrv, serverContext); err != nil {
		return fmt.Errorf("failed to register calendar resources: %w", err)
	}

	// Start the appropriate server based on transport type
	switch config.Transport {
	case "stdio":
		return runStdioServer(mcpSrv)
	case "streamable-http":
		return runStreamableHTTPServer(shutdownCtx, mcpSrv, serverContext, config)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", config.Transport)
	}
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

func runStreamableHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, serverContext *server.ServerContext, config ServeConfig) error {
	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv)

	// Serve the MCP endpoint and health probes on the same listener
	mux := http.NewServeMux()
	mux.Handle("/mcp", streamable)

	healthChecker := server.NewHealthChecker(serverContext)
	healthChecker.RegisterHealthEndpoints(mux)

	httpSrv := &http.Server{
		Addr:              config.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Printf("Streamable HTTP server starting on %s\n", config.HTTPAddr)
	fmt.Printf("  HTTP endpoint: /mcp\n")
	fmt.Printf("  Health endpoints: /healthz, /readyz\n")
	if config.Metrics.Enabled {
		fmt.Printf("  Metrics endpoint: %s/metrics\n", config.Metrics.Addr)
	}

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverDone <- err
		}
	}()

	select {
	case <-ctx.Done():
		fmt.Println("Shutdown signal received, stopping HTTP server...")
		healthChecker.SetReady(false)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down HTTP server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("HTTP server stopped with error: %w", err)
		}
		fmt.Println("HTTP server stopped normally")
	}

	fmt.Println("HTTP server gracefully stopped")
	return nil
}

// parseCommaSeparatedList parses a comma-separated string into a slice,
// trimming whitespace from each element and filtering out empty strings.
// Returns nil if the input is empty or contains only whitespace/commas.
func parseCommaSeparatedList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
