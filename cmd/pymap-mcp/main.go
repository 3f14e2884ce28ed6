package main

import (
	"fmt"
	"log"
	"os"

	"github.com/oakbranch/pymap/internal/config"
	"github.com/oakbranch/pymap/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "pymap"
	serverVersion = "1.0.0"
)

func main() {
	// MCP uses stdout for JSON-RPC; route logging to stderr.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	server := mcpserver.NewMCPServer(
		serverName,
		serverVersion,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	configPath := os.Getenv("PYMAP_CONFIG")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Warning: failed to load config: %v, using defaults", err)
		cfg = config.DefaultConfig()
	}

	dependencies := mcp.NewDependencies(cfg, configPath)
	handlers := mcp.NewHandlerSet(dependencies)

	mcp.RegisterTools(server, handlers)

	log.Printf("Starting %s MCP server v%s\n", serverName, serverVersion)
	log.Println("Registered tools:")
	log.Println("  - resolve_imports: Static Python import-graph resolution")
	log.Println("")
	log.Println("Server ready - waiting for MCP client connection...")

	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
