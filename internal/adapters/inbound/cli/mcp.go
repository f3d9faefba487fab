package cli

import (
	"fmt"
	"os"

	mcpadapter "github.com/ntbtools/glbcheck/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

const mcpServeLong = `Start the glbcheck MCP server on stdin/stdout.

An assistant connected to the server can:
  glbcheck_list_models          find the .glb files under the project's base_dir
  glbcheck_validate_model       run the full material and size checks on one file
  glbcheck_classify_dimension   see which size band a dimension lands in and how to rescale it

The glbcheck://thresholds resource exposes the selection radius, ideal size
and minimum size the checks use. Thresholds and extensions come from
.glbcheck.yaml in --path when present.`

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Expose model validation to assistants over MCP",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve validation tools over stdio",
		Long:  mcpServeLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := os.Stat(projectPath)
			if err != nil {
				return fmt.Errorf("project path: %w", err)
			}
			if !info.IsDir() {
				return fmt.Errorf("project path %s is not a directory", projectPath)
			}

			s, err := mcpadapter.NewGLBCheckMCPServer(projectPath)
			if err != nil {
				return err
			}
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", ".", "project directory holding .glbcheck.yaml and the models")

	return cmd
}
