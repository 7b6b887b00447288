// Package server exposes the stock operations over MCP stdio JSON-RPC.
package server

import (
	"context"
	"fmt"
	"io"
	"log"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Server wires the registry into an MCP server.
type Server struct {
	MCP      *mcpserver.MCPServer
	Registry *Registry
	logger   *log.Logger
}

// New builds the MCP server and registers every entry of the dispatch table.
func New(name, version string, ops Operations, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	reg := NewRegistry(ops)
	s := mcpserver.NewMCPServer(name, version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithResourceCapabilities(false, false),
	)
	for _, e := range reg.Tools {
		s.AddTool(e.Tool, recoverTool(e.Tool.Name, e.Handler))
	}
	for _, e := range reg.Resources {
		s.AddResourceTemplate(e.Template, e.Handler)
	}
	logger.Printf("[INFO] registered %d tools and %d resource templates", len(reg.Tools), len(reg.Resources))
	return &Server{MCP: s, Registry: reg, logger: logger}
}

// Serve reads line-delimited JSON-RPC from in and writes responses to out
// until ctx is cancelled or in reaches EOF.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := mcpserver.NewStdioServer(s.MCP)
	stdio.SetErrorLogger(s.logger)
	if err := stdio.Listen(ctx, in, out); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stdio listen: %w", err)
	}
	return nil
}
