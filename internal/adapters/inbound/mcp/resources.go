package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ntbtools/glbcheck/internal/domain"
)

const thresholdsURI = "glbcheck://thresholds"

// registerResources registers all glbcheck MCP resources on the given server.
func registerResources(s *server.MCPServer, cfg domain.Config) {
	s.AddResource(
		mcplib.NewResource(
			thresholdsURI,
			"Size Thresholds",
			mcplib.WithResourceDescription("Selection radius and size band thresholds used to classify models"),
			mcplib.WithMIMEType("application/json"),
		),
		handleThresholdsResource(cfg),
	)
}

type thresholdsDoc struct {
	domain.Thresholds
	MaxSelectable float64              `json:"max_selectable"`
	Extensions    []string             `json:"extensions"`
	Inspect       domain.InspectConfig `json:"inspect"`
}

func handleThresholdsResource(cfg domain.Config) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		data, err := json.MarshalIndent(thresholdsDoc{
			Thresholds:    cfg.Thresholds,
			MaxSelectable: cfg.Thresholds.MaxSelectable(),
			Extensions:    cfg.Extensions,
			Inspect:       cfg.Inspect,
		}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling thresholds: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      thresholdsURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
