package mcp

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/oakbranch/pymap/domain"
)

// HandlerSet holds the shared Dependencies used by MCP tool handlers.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet creates a HandlerSet backed by the given Dependencies.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	return &HandlerSet{deps: deps}
}

// HandleResolveImports handles the resolve_imports tool.
func (h *HandlerSet) HandleResolveImports(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	requestID := uuid.NewString()

	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	entry, ok := args["entry"].(string)
	if !ok || entry == "" {
		return mcp.NewToolResultError("entry parameter is required and must be a string"), nil
	}

	if _, err := os.Stat(entry); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("entry file does not exist: %s", entry)), nil
	}

	format := "json"
	if f, ok := args["format"].(string); ok && f != "" {
		format = f
	}

	req := domain.ResolveRequest{
		EntryPath:        entry,
		DescribeModules:  true,
		OutputFormat:     domain.OutputFormat(format),
		ShallowStd:       boolArg(args, "shallow_std"),
		ResolveReExports: boolArg(args, "resolve_reexports"),
		PythonPath:       stringArrayArg(args, "python_path"),
		ExcludePatterns:  stringArrayArg(args, "exclude"),
		CachePath:        stringArg(args, "cache"),
	}

	useCase, err := h.deps.BuildResolveUseCase()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build resolver: %v", err)), nil
	}

	var buf bytes.Buffer
	req.OutputWriter = &buf

	log.Printf("[%s] resolve_imports entry=%s format=%s", requestID, entry, format)
	if err := useCase.Execute(ctx, req); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("resolve failed: %v", err)), nil
	}

	return mcp.NewToolResultText(buf.String()), nil
}

func boolArg(args map[string]interface{}, key string) bool {
	v, _ := args[key].(bool)
	return v
}

func stringArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}

func stringArrayArg(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
