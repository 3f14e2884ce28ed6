package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers the pymap MCP tool set with the server.
func RegisterTools(s *server.MCPServer, handlers *HandlerSet) {
	s.AddTool(mcp.NewTool("resolve_imports",
		mcp.WithDescription("Statically resolve the import graph reachable from a single Python entry file"),
		mcp.WithString("entry",
			mcp.Required(),
			mcp.Description("Path to the Python entry file")),
		mcp.WithString("format",
			mcp.Description("Graph output format: json, dot, yaml (default: json)")),
		mcp.WithBoolean("shallow_std",
			mcp.Description("Resolve standard-library imports as leaf nodes (default: false)")),
		mcp.WithBoolean("resolve_reexports",
			mcp.Description("Point a from-imported name's edge at the submodule its package's __init__.py re-exports it from (default: false)")),
		mcp.WithArray("python_path",
			mcp.Description("Extra module search roots")),
		mcp.WithArray("exclude",
			mcp.Description("Glob patterns excluded from resolution, matched against module origin paths")),
		mcp.WithString("cache",
			mcp.Description("Path to a module-parse cache file")),
	), handlers.HandleResolveImports)
}
