// Package server provides the MCP server wrapper with lifecycle management.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/ragmcp-go/internal/metrics"
)

// Server wraps the MCP server with dependencies and lifecycle management.
// The same instance can serve stdio or streamable HTTP.
type Server struct {
	mcp     *mcp.Server
	logger  *slog.Logger
	metrics *metrics.Collector
}

// New creates a new MCP server with the given version and logger.
func New(version string, logger *slog.Logger, collector *metrics.Collector) *Server {
	impl := &mcp.Implementation{
		Name:    "ragmcp",
		Version: version,
	}

	mcpServer := mcp.NewServer(impl, nil)

	return &Server{
		mcp:     mcpServer,
		logger:  logger,
		metrics: collector,
	}
}

// Run starts the server on stdio transport and blocks until disconnect or context cancellation.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting MCP server", "transport", "stdio")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// HTTPHandler returns a streamable HTTP handler serving this server.
// Every inbound session is routed to the same server instance, so the
// document collection is shared across clients.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil)
}

// MCPServer returns the underlying MCP server for tool registration.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Setup adds middleware to the server (logging, timing metrics).
func (s *Server) Setup() {
	s.mcp.AddReceivingMiddleware(LoggingMiddleware(s.logger, s.metrics))
}
