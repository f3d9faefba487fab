package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ntbtools/glbcheck/internal/adapters/outbound/container"
	"github.com/ntbtools/glbcheck/internal/adapters/outbound/inspector"
	"github.com/ntbtools/glbcheck/internal/adapters/outbound/scanner"
	"github.com/ntbtools/glbcheck/internal/application"
	"github.com/ntbtools/glbcheck/internal/domain"
	"github.com/ntbtools/glbcheck/internal/domain/check"
)

// registerTools registers all glbcheck MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string, cfg domain.Config) {
	// 1. glbcheck_validate_model
	s.AddTool(
		mcplib.NewTool("glbcheck_validate_model",
			mcplib.WithDescription("Validate one GLB model and return its materials, bounds and issues as JSON"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path to the .glb file, relative to the project root"),
			),
			mcplib.WithBoolean("inspect",
				mcplib.Description("Also run gltf-transform inspect (slow; off by default)"),
			),
		),
		handleValidateModel(projectPath, cfg),
	)

	// 2. glbcheck_list_models
	s.AddTool(
		mcplib.NewTool("glbcheck_list_models",
			mcplib.WithDescription("List the model files found under the configured model directory"),
			mcplib.WithString("base_dir",
				mcplib.Description("Directory to search instead of the configured base_dir"),
			),
		),
		handleListModels(projectPath, cfg),
	)

	// 3. glbcheck_classify_dimension
	s.AddTool(
		mcplib.NewTool("glbcheck_classify_dimension",
			mcplib.WithDescription("Classify a model's maximum dimension against the selection thresholds"),
			mcplib.WithNumber("dimension",
				mcplib.Required(),
				mcplib.Description("Largest extent of the model in scene units"),
			),
		),
		handleClassifyDimension(cfg.Thresholds),
	)
}

func resolve(projectPath, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(projectPath, p)
}

func handleValidateModel(projectPath string, cfg domain.Config) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult("missing required parameter: file"), nil
		}

		var insp domain.Inspector = inspector.Disabled{}
		if on, _ := request.GetArguments()["inspect"].(bool); on {
			insp = inspector.New(cfg.Inspect, nil)
		}

		svc := application.NewValidateService(container.New(), insp, cfg.Thresholds, nil)
		result, err := svc.ValidateFile(ctx, resolve(projectPath, file))
		if err != nil {
			return errorResult(fmt.Sprintf("validate failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func handleListModels(projectPath string, cfg domain.Config) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		baseDir := cfg.BaseDir
		if dir, _ := request.GetArguments()["base_dir"].(string); dir != "" {
			baseDir = dir
		}

		models, err := application.DiscoverModels(scanner.New(cfg.ExcludeDirs...), resolve(projectPath, baseDir), cfg.Extensions)
		if err != nil {
			return errorResult(fmt.Sprintf("scan failed: %v", err)), nil
		}
		if len(models) == 0 {
			return textResult(fmt.Sprintf("No model files found in %s", baseDir)), nil
		}
		return jsonResult(models)
	}
}

type classification struct {
	Dimension        float64        `json:"dimension"`
	Band             check.SizeBand `json:"band"`
	Issue            *domain.Issue  `json:"issue,omitempty"`
	RecommendedScale float64        `json:"recommended_scale,omitempty"`
	TargetSize       float64        `json:"target_size,omitempty"`
}

func handleClassifyDimension(t domain.Thresholds) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		d, err := request.RequireFloat("dimension")
		if err != nil {
			return errorResult("missing required parameter: dimension"), nil
		}
		if d < 0 {
			return errorResult("dimension must not be negative"), nil
		}

		c := classification{
			Dimension: d,
			Band:      check.Band(d, t),
			Issue:     check.Classify(d, t),
		}
		if factor, target, ok := check.RecommendedScale(d, t); ok {
			c.RecommendedScale = factor
			c.TargetSize = target
		}
		return jsonResult(c)
	}
}

func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
