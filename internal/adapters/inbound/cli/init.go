package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ntbtools/glbcheck/internal/adapters/outbound/config"
	"github.com/ntbtools/glbcheck/internal/domain"
)

func newInitCmd() *cobra.Command {
	var (
		baseDir string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Generate a .glbcheck.yaml configuration file",
		Long:  "Create a .glbcheck.yaml with the default thresholds and model directory.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			cfg := domain.DefaultConfig()
			if baseDir != "" {
				cfg.BaseDir = baseDir
			}

			if err := os.WriteFile(dest, []byte(generateConfig(cfg)), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().StringVar(&baseDir, "base-dir", "", "Model directory to record in the config (default "+domain.DefaultBaseDir+")")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing "+config.FileName)

	return cmd
}

func generateConfig(cfg domain.Config) string {
	var b strings.Builder

	b.WriteString("# glbcheck configuration\n\n")
	fmt.Fprintf(&b, "base_dir: %s\n\n", cfg.BaseDir)

	b.WriteString("extensions:\n")
	for _, ext := range cfg.Extensions {
		fmt.Fprintf(&b, "  - %s\n", ext)
	}

	t := cfg.Thresholds
	b.WriteString("\n# Sizes are in scene units and compared against the model's largest extent.\n")
	b.WriteString("thresholds:\n")
	fmt.Fprintf(&b, "  selection_radius: %g\n", t.SelectionRadius)
	fmt.Fprintf(&b, "  ideal_size: %g\n", t.IdealSize)
	fmt.Fprintf(&b, "  min_size: %g\n", t.MinSize)
	fmt.Fprintf(&b, "  small_target: %g\n", t.SmallTarget)

	b.WriteString("\ninspect:\n")
	fmt.Fprintf(&b, "  command: %s\n", cfg.Inspect.Command)
	fmt.Fprintf(&b, "  timeout: %s\n", cfg.Inspect.Timeout)

	b.WriteString(`
# exclude_dirs:
#   - drafts
#   - archive
`)
	return b.String()
}
