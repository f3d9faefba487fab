package domain

import "path/filepath"

// Severity ranks how serious an issue is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	}
	return false
}

// Category groups issues by the constraint they violate.
type Category string

const (
	CategoryMaterial  Category = "material"
	CategoryScale     Category = "scale"
	CategorySelection Category = "selection"
	CategoryStructure Category = "structure"
)

// ValidCategories enumerates all issue categories in report order.
var ValidCategories = []Category{
	CategoryMaterial,
	CategoryScale,
	CategorySelection,
	CategoryStructure,
}

func (c Category) Valid() bool {
	for _, v := range ValidCategories {
		if c == v {
			return true
		}
	}
	return false
}

// Issue represents a problem found while validating a model.
type Issue struct {
	Severity Severity `json:"severity"`
	Category Category `json:"category"`
	Message  string   `json:"message"`
	Fix      string   `json:"fix,omitempty"`
}

// RGBA is a four-channel color factor, nominally in 0..1.
type RGBA [4]float64

// Material is the per-material record extracted from a document.
type Material struct {
	Name             string  `json:"name"`
	Index            int     `json:"index"`
	HasPBR           bool    `json:"has_pbr"`
	BaseColor        *RGBA   `json:"base_color,omitempty"`
	BaseColorDisplay string  `json:"base_color_display,omitempty"`
	HasTexture       bool    `json:"has_texture"`
	Metallic         float64 `json:"metallic"`
	Roughness        float64 `json:"roughness"`
}

// HasAppearance reports whether the material defines a flat color or a texture.
func (m Material) HasAppearance() bool {
	return m.BaseColor != nil || m.HasTexture
}

// BoundsDescriptor is the axis-aligned extent of one accessor.
type BoundsDescriptor struct {
	Accessor     int        `json:"accessor"`
	Min          [3]float64 `json:"min"`
	Max          [3]float64 `json:"max"`
	Size         [3]float64 `json:"size"`
	MaxDimension float64    `json:"max_dimension"`
}

// ValidationResult holds everything learned about a single model file.
type ValidationResult struct {
	FilePath         string             `json:"file_path"`
	FileName         string             `json:"file_name"`
	FileSize         int64              `json:"file_size"`
	ContainerVersion uint32             `json:"container_version,omitempty"`
	Generator        string             `json:"generator,omitempty"`
	Materials        []Material         `json:"materials"`
	BoundingBoxes    []BoundsDescriptor `json:"bounding_boxes"`
	MaxDimension     float64            `json:"max_dimension"`
	Issues           []Issue            `json:"issues"`
	InspectionOutput string             `json:"inspection_output,omitempty"`
}

// NewValidationResult starts an empty result for path.
func NewValidationResult(path string) *ValidationResult {
	return &ValidationResult{
		FilePath:      path,
		FileName:      filepath.Base(path),
		Materials:     []Material{},
		BoundingBoxes: []BoundsDescriptor{},
		Issues:        []Issue{},
	}
}

func (r *ValidationResult) AddIssue(severity Severity, category Category, message, fix string) {
	r.Issues = append(r.Issues, Issue{
		Severity: severity,
		Category: category,
		Message:  message,
		Fix:      fix,
	})
}

func (r *ValidationResult) HasErrors() bool   { return r.ErrorCount() > 0 }
func (r *ValidationResult) HasWarnings() bool { return r.WarningCount() > 0 }

// IsHealthy reports whether the result has neither errors nor warnings.
// Info issues do not count against health.
func (r *ValidationResult) IsHealthy() bool {
	return !r.HasErrors() && !r.HasWarnings()
}

func (r *ValidationResult) ErrorCount() int   { return r.count(SeverityError) }
func (r *ValidationResult) WarningCount() int { return r.count(SeverityWarning) }

func (r *ValidationResult) count(s Severity) int {
	n := 0
	for _, i := range r.Issues {
		if i.Severity == s {
			n++
		}
	}
	return n
}

// IssuesBySeverity returns the issues with the given severity in discovery order.
func (r *ValidationResult) IssuesBySeverity(s Severity) []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == s {
			out = append(out, i)
		}
	}
	return out
}
