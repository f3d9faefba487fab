package mcp

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ntbtools/glbcheck/internal/adapters/outbound/config"
	"github.com/ntbtools/glbcheck/internal/domain"
)

// NewGLBCheckMCPServer creates an MCP server with all glbcheck tools and
// resources registered. projectPath is where .glbcheck.yaml is looked up
// and relative model paths are resolved from.
func NewGLBCheckMCPServer(projectPath string) (*server.MCPServer, error) {
	var loader domain.ConfigLoader = config.New()
	cfg, err := loader.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	s := server.NewMCPServer(
		"glbcheck",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath, cfg)
	registerResources(s, cfg)

	return s, nil
}
