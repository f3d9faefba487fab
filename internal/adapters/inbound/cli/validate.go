package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ntbtools/glbcheck/internal/adapters/outbound/config"
	"github.com/ntbtools/glbcheck/internal/adapters/outbound/container"
	"github.com/ntbtools/glbcheck/internal/adapters/outbound/gitinfo"
	"github.com/ntbtools/glbcheck/internal/adapters/outbound/history"
	"github.com/ntbtools/glbcheck/internal/adapters/outbound/inspector"
	"github.com/ntbtools/glbcheck/internal/adapters/outbound/logger"
	"github.com/ntbtools/glbcheck/internal/adapters/outbound/scanner"
	"github.com/ntbtools/glbcheck/internal/adapters/outbound/tui"
	"github.com/ntbtools/glbcheck/internal/application"
	"github.com/ntbtools/glbcheck/internal/domain"
)

const envPrefix = "GLBCHECK"

// errValidationFailed is returned when at least one model has an error, so
// the process exits non-zero after the report has been printed.
var errValidationFailed = errors.New("validation failed")

// validateOptions is the merged view of flags and GLBCHECK_* environment
// variables.
type validateOptions struct {
	noInspect   bool
	summaryOnly bool
	verbose     bool
	jsonOut     bool
	noHistory   bool
	baseDir     string
	configPath  string
	logFile     string
}

func newOptions(cmd *cobra.Command) (validateOptions, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return validateOptions{}, fmt.Errorf("binding flags: %w", err)
	}

	return validateOptions{
		noInspect:   v.GetBool("no-inspect"),
		summaryOnly: v.GetBool("summary-only"),
		verbose:     v.GetBool("verbose"),
		jsonOut:     v.GetBool("json"),
		noHistory:   v.GetBool("no-history"),
		baseDir:     v.GetString("base-dir"),
		configPath:  v.GetString("config"),
		logFile:     v.GetString("log-file"),
	}, nil
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Validate GLB models for materials and selection size",
		Long: "Validate GLB models. With no arguments every model under the base directory is checked.\n" +
			"Exits non-zero when any model has an error; warnings never fail the run.",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := newOptions(cmd)
			if err != nil {
				return err
			}
			return runValidate(cmd, opts, args)
		},
	}

	cmd.Flags().Bool("no-inspect", false, "Skip gltf-transform inspection")
	cmd.Flags().Bool("summary-only", false, "Print only the summary")
	cmd.Flags().BoolP("verbose", "v", false, "Show per-accessor sizes and inspection output")
	cmd.Flags().Bool("json", false, "Output results as JSON")
	cmd.Flags().Bool("no-history", false, "Do not record this run in .glbcheck/history")
	cmd.Flags().String("base-dir", "", "Directory searched for models when no files are given (default "+domain.DefaultBaseDir+")")
	cmd.Flags().String("config", "", "Path to config file (default ./"+config.FileName+")")
	cmd.Flags().String("log-file", "", "Write JSON logs to a rotating file instead of stderr")

	return cmd
}

func runValidate(cmd *cobra.Command, opts validateOptions, args []string) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.baseDir != "" {
		cfg.BaseDir = opts.baseDir
	}

	log, err := logger.New(logger.Options{
		Verbose: opts.verbose,
		File:    opts.logFile,
		Stderr:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	out := cmd.OutOrStdout()
	// Progress lines would corrupt the JSON document.
	progress := out
	if opts.jsonOut {
		progress = io.Discard
	}

	paths := args
	if len(paths) == 0 {
		fmt.Fprintf(progress, "Scanning for models in %s...\n", cfg.BaseDir)
		paths, err = application.DiscoverModels(scanner.New(cfg.ExcludeDirs...), cfg.BaseDir, cfg.Extensions)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no .glb files found in %s", cfg.BaseDir)
		}
		fmt.Fprintf(progress, "Found %d model(s)\n", len(paths))
	}

	var insp domain.Inspector = inspector.New(cfg.Inspect, log)
	if opts.noInspect {
		insp = inspector.Disabled{}
	}
	svc := application.NewValidateService(container.New(), insp, cfg.Thresholds, log)

	render := func(r *domain.ValidationResult) {
		if opts.jsonOut || opts.summaryOnly {
			return
		}
		fmt.Fprint(out, tui.RenderResult(r, cfg.Thresholds, opts.verbose))
	}

	batch := svc.ValidateAll(cmd.Context(), paths, render)

	if opts.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(batch); err != nil {
			return err
		}
	} else {
		for _, s := range batch.Skipped {
			fmt.Fprint(out, tui.RenderSkipped(s.Path, s.Reason))
		}
		if len(batch.Results) > 1 || (opts.summaryOnly && len(batch.Results) > 0) {
			fmt.Fprint(out, tui.RenderSummary(batch.Summary))
		}
	}

	if !opts.noHistory && len(batch.Results) > 0 {
		recordHistory(log, batch.Summary)
	}

	if batch.ExitCode() != 0 {
		return fmt.Errorf("%w: %d of %d model(s) have errors", errValidationFailed, batch.Summary.Errors, batch.Summary.Total)
	}
	return nil
}

func loadConfig(path string) (domain.Config, error) {
	loader := config.New()
	if path == "" {
		return loader.Load(".")
	}
	if _, err := os.Stat(path); err != nil {
		return domain.Config{}, fmt.Errorf("config file: %w", err)
	}
	return loader.LoadFile(path)
}

// recordHistory is best-effort: a history failure never changes the outcome
// of the run.
func recordHistory(log *zap.Logger, summary domain.Summary) {
	svc := application.NewHistoryService(history.New(), gitinfo.New())
	entry, err := svc.Record(".", summary)
	if err != nil {
		log.Warn("recording run history", zap.Error(err))
		return
	}
	log.Debug("recorded run", zap.String("id", entry.ID), zap.String("commit", entry.CommitHash))
}
