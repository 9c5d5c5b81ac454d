// Package server wires the Jira client into an MCP server exposing
// read-only resources and callable tools over stdio.
package server

import (
	"context"
	"log/slog"
	"os"

	"github.com/gi8lino/jiramcp/internal/config"
	"github.com/gi8lino/jiramcp/internal/jira"

	"github.com/mark3labs/mcp-go/server"
)

// handler carries the immutable collaborators shared by all tool and
// resource handlers. It holds no per-request state; every call is
// independent.
type handler struct {
	api      jira.Service
	baseURL  string // Site URL for browse links
	settings config.Settings
	logger   *slog.Logger
}

// New builds the MCP server and registers the full resource and tool surface.
func New(api jira.Service, baseURL string, settings config.Settings, logger *slog.Logger, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"jira",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
	)

	h := &handler{
		api:      api,
		baseURL:  baseURL,
		settings: settings,
		logger:   logger,
	}
	h.registerResources(s)
	h.registerTools(s)

	return s
}

// Serve runs the MCP server on stdio until the context is canceled.
func Serve(ctx context.Context, s *server.MCPServer, logger *slog.Logger) error {
	stdio := server.NewStdioServer(s)
	stdio.SetErrorLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError))

	logger.Info("Serving MCP over stdio")
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}
