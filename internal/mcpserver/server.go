// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes reconciliation tools for LLM integration via stdio
// transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ostrem/partmatch/internal/reconcile"
)

// Server wraps the MCP server with partmatch tools.
type Server struct {
	mcp *server.MCPServer
	svc *reconcile.Service
}

// New creates a new MCP server with all partmatch tools registered.
func New(svc *reconcile.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Partmatch",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_catalogs",
		mcp.WithDescription("List the loaded manufacturer catalogs with record counts and the active selection."),
	), s.listCatalogs)

	s.mcp.AddTool(mcp.NewTool("coverage_summary",
		mcp.WithDescription("Coverage, duplicate, and top-manufacturer/family aggregates for the current request set against the active catalog."),
	), s.coverageSummary)

	s.mcp.AddTool(mcp.NewTool("missing_parts",
		mcp.WithDescription("List requested parts that were not found in the active catalog, with the reason for each."),
		mcp.WithNumber("limit", mcp.Description("Maximum entries to return (default 10)")),
	), s.missingParts)

	s.mcp.AddTool(mcp.NewTool("lookup_part",
		mcp.WithDescription("Look up one part identifier in the active catalog and return the full catalog record."),
		mcp.WithString("identifier", mcp.Required(), mcp.Description("Part identifier, e.g. a part number or SKU")),
	), s.lookupPart)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listCatalogs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list := s.svc.Catalogs(ctx)
	if len(list) == 0 {
		return mcp.NewToolResultText("no catalogs loaded"), nil
	}
	out, _ := json.MarshalIndent(list, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) coverageSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rep := s.svc.Insights(ctx)
	out, _ := json.MarshalIndent(rep, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) missingParts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	res := s.svc.Match(ctx, "")
	if len(res.Missing) == 0 {
		return mcp.NewToolResultText("no missing parts"), nil
	}

	var lines []string
	for i, miss := range res.Missing {
		if i == limit {
			break
		}
		label := miss.Identifier
		if label == "" {
			label = "(no identifier)"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", label, miss.Reason))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) lookupPart(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	identifier, err := req.RequireString("identifier")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rec, ok := s.svc.Lookup(ctx, identifier)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", identifier)), nil
	}
	out, _ := json.MarshalIndent(rec, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}
