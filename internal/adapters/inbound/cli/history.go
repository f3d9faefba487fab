package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ntbtools/glbcheck/internal/adapters/outbound/gitinfo"
	"github.com/ntbtools/glbcheck/internal/adapters/outbound/history"
	"github.com/ntbtools/glbcheck/internal/adapters/outbound/tui"
	"github.com/ntbtools/glbcheck/internal/application"
)

func newHistoryCmd() *cobra.Command {
	var (
		limit   int
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "history [dir]",
		Short: "Show recorded validation runs",
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

			svc := application.NewHistoryService(history.New(), gitinfo.New())
			entries, err := svc.Entries(absPath)
			if err != nil {
				return err
			}
			entries = history.Last(entries, limit)

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Show at most this many recent runs (0 for all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}
