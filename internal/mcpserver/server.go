// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Raido organizer tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/raido/internal/history"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/organizer"
	"github.com/starford/raido/internal/settings"
)

// Server wraps the MCP server with Raido tools.
type Server struct {
	mcp      *server.MCPServer
	settings *settings.Store
	engine   *organizer.Engine
	runs     history.RunLog
}

// New creates a new MCP server with all Raido tools registered.
func New(set *settings.Store, engine *organizer.Engine, runs history.RunLog) *Server {
	s := &Server{settings: set, engine: engine, runs: runs}

	s.mcp = server.NewMCPServer(
		"Raido",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("organize_vault",
		mcp.WithDescription("Run one organization pass over the vault: every file is checked "+
			"against the ordered rule list and moved to the first matching rule's folder."),
	), s.organizeVault)

	s.mcp.AddTool(mcp.NewTool("preview_plan",
		mcp.WithDescription("Compute the moves an organization run would perform, without moving anything."),
	), s.previewPlan)

	s.mcp.AddTool(mcp.NewTool("list_rules",
		mcp.WithDescription("List the ordered organization rules. Array position is priority: "+
			"earlier rules win when several match the same file."),
	), s.listRules)

	s.mcp.AddTool(mcp.NewTool("add_rule",
		mcp.WithDescription("Append an organization rule. At least one of tag, file_type, or "+
			"name_pattern must be set; folder is the destination. Tag matching ignores case and "+
			"a leading '#'. file_type matches the file extension; name_pattern is a "+
			"case-insensitive filename substring."),
		mcp.WithString("folder", mcp.Required(), mcp.Description("Destination folder, relative to the vault root")),
		mcp.WithString("tag", mcp.Description("Tag criterion (frontmatter or inline #tag)")),
		mcp.WithString("file_type", mcp.Description("File extension criterion, without the dot (e.g. pdf)")),
		mcp.WithString("name_pattern", mcp.Description("Filename substring criterion")),
	), s.addRule)

	s.mcp.AddTool(mcp.NewTool("list_runs",
		mcp.WithDescription("List recent organization runs, newest first."),
	), s.listRuns)

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

func (s *Server) organizeVault(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc := s.settings.Snapshot()
	res, err := s.engine.Run(ctx, doc.Rules, doc.Exclusions)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(res, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) previewPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc := s.settings.Snapshot()
	plan, err := s.engine.Preview(ctx, doc.Rules, doc.Exclusions)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(plan.Moves) == 0 {
		return mcp.NewToolResultText("vault is already organized: no moves planned"), nil
	}
	out, _ := json.MarshalIndent(plan, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listRules(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc := s.settings.Snapshot()
	if len(doc.Rules) == 0 {
		return mcp.NewToolResultText("no rules configured"), nil
	}
	out, _ := json.MarshalIndent(doc.Rules, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) addRule(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folder, err := req.RequireString("folder")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rule := models.Rule{Folder: folder, Enabled: true}
	if v, sErr := req.RequireString("tag"); sErr == nil && v != "" {
		rule.Tag = &v
	}
	if v, sErr := req.RequireString("file_type"); sErr == nil && v != "" {
		rule.FileType = &v
	}
	if v, sErr := req.RequireString("name_pattern"); sErr == nil && v != "" {
		rule.NamePattern = &v
	}

	if err := s.settings.AddRule(rule); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("rule added: folder=%s (priority %d)",
		folder, len(s.settings.Snapshot().Rules)-1)), nil
}

func (s *Server) listRuns(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	runs, err := s.runs.ListRuns(20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(runs) == 0 {
		return mcp.NewToolResultText("no runs recorded"), nil
	}
	out, _ := json.MarshalIndent(runs, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}
