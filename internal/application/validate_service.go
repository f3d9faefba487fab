package application

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/ntbtools/glbcheck/internal/domain"
	"github.com/ntbtools/glbcheck/internal/domain/check"
)

const parseFailureMessage = "Failed to parse GLB file - may be corrupted"

// ValidateService orchestrates the per-file pipeline:
// stat -> read container -> materials -> bounds -> classify -> inspect.
type ValidateService struct {
	reader     domain.ContainerReader
	inspector  domain.Inspector
	thresholds domain.Thresholds
	log        *zap.Logger
}

// NewValidateService wires the pipeline. A nil inspector disables external
// inspection; a nil logger discards logs.
func NewValidateService(
	reader domain.ContainerReader,
	inspector domain.Inspector,
	thresholds domain.Thresholds,
	log *zap.Logger,
) *ValidateService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ValidateService{
		reader:     reader,
		inspector:  inspector,
		thresholds: thresholds,
		log:        log,
	}
}

// Thresholds returns the thresholds the service classifies with.
func (s *ValidateService) Thresholds() domain.Thresholds { return s.thresholds }

// ValidateFile validates a single model. The only error returned is for a
// path that cannot be stat'ed; every problem with the file's content is
// reported as an issue on the result.
func (s *ValidateService) ValidateFile(ctx context.Context, path string) (*domain.ValidationResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	result := domain.NewValidationResult(path)
	result.FileSize = info.Size()

	// 1. Container
	doc, hdr, err := s.reader.Read(path)
	if err != nil || doc == nil {
		s.log.Debug("parse failed", zap.String("file", path), zap.Error(err))
		result.AddIssue(domain.SeverityError, domain.CategoryStructure, parseFailureMessage, "")
		return result, nil
	}
	if hdr != nil {
		result.ContainerVersion = hdr.Version
		if hdr.Version != domain.SupportedContainerVersion {
			result.AddIssue(domain.SeverityInfo, domain.CategoryStructure,
				fmt.Sprintf("Container version %d (expected %d) - results may be unreliable",
					hdr.Version, domain.SupportedContainerVersion), "")
		}
	}
	if doc.Asset != nil {
		result.Generator = doc.Asset.Generator
	}

	// 2. Materials
	materials, issues := check.InspectMaterials(doc)
	result.Materials = materials
	result.Issues = append(result.Issues, issues...)

	// 3. Bounds and scale. A document with no bounds-bearing accessors has
	// nothing to classify.
	boxes, maxDim := check.AggregateBounds(doc)
	result.BoundingBoxes = boxes
	result.MaxDimension = maxDim
	if len(boxes) > 0 {
		if issue := check.Classify(maxDim, s.thresholds); issue != nil {
			result.Issues = append(result.Issues, *issue)
		}
	}

	// 4. External inspection, best-effort.
	if s.inspector != nil {
		if r := s.inspector.Inspect(ctx, path); r.Available {
			result.InspectionOutput = r.Output
		}
	}

	s.log.Debug("validated",
		zap.String("file", path),
		zap.Int("materials", len(result.Materials)),
		zap.Int("bounds", len(result.BoundingBoxes)),
		zap.Float64("max_dimension", result.MaxDimension),
		zap.Int("errors", result.ErrorCount()),
		zap.Int("warnings", result.WarningCount()),
	)
	return result, nil
}

// SkippedFile is an input path that could not be validated at all.
type SkippedFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// BatchResult is the outcome of validating several files.
type BatchResult struct {
	Results []*domain.ValidationResult `json:"results"`
	Skipped []SkippedFile              `json:"skipped,omitempty"`
	Summary domain.Summary             `json:"summary"`
}

// ExitCode is 1 when any validated file has an error.
func (b *BatchResult) ExitCode() int { return domain.ExitCode(b.Results) }

// ValidateAll validates paths one at a time, in order. A path that cannot be
// validated is recorded as skipped and never stops the batch. If each is not
// nil it is called with every result as soon as it is ready.
func (s *ValidateService) ValidateAll(ctx context.Context, paths []string, each func(*domain.ValidationResult)) *BatchResult {
	batch := &BatchResult{Results: []*domain.ValidationResult{}}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			batch.Skipped = append(batch.Skipped, SkippedFile{Path: p, Reason: err.Error()})
			continue
		}

		result, err := s.ValidateFile(ctx, p)
		if err != nil {
			s.log.Warn("skipping file", zap.String("file", p), zap.Error(err))
			batch.Skipped = append(batch.Skipped, SkippedFile{Path: p, Reason: reasonFor(err)})
			continue
		}

		batch.Results = append(batch.Results, result)
		if each != nil {
			each(result)
		}
	}

	batch.Summary = domain.Summarize(batch.Results)
	return batch
}

func reasonFor(err error) string {
	if errors.Is(err, fs.ErrNotExist) {
		return "File not found"
	}
	return err.Error()
}
