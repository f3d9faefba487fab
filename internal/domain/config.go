package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultSelectionRadius is the viewer's fixed click/selection radius.
	DefaultSelectionRadius = 0.6
	// DefaultIdealSize is the largest extent that still gives good UX.
	DefaultIdealSize = 1.0
	// DefaultMinSize is the extent below which a model is hard to see.
	DefaultMinSize = 0.3
	// DefaultSmallTarget is the extent very small models should be scaled up to.
	DefaultSmallTarget = 0.5

	DefaultBaseDir        = "public/models"
	DefaultInspectCommand = "gltf-transform"
	DefaultInspectTimeout = 30 * time.Second
)

// Thresholds are the size constants the classifier applies to a model's
// maximum dimension. All values are in scene units.
type Thresholds struct {
	SelectionRadius float64 `yaml:"selection_radius" json:"selection_radius"`
	IdealSize       float64 `yaml:"ideal_size"       json:"ideal_size"`
	MinSize         float64 `yaml:"min_size"         json:"min_size"`
	SmallTarget     float64 `yaml:"small_target"     json:"small_target"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		SelectionRadius: DefaultSelectionRadius,
		IdealSize:       DefaultIdealSize,
		MinSize:         DefaultMinSize,
		SmallTarget:     DefaultSmallTarget,
	}
}

// MaxSelectable is the largest extent that fits inside the selection radius.
func (t Thresholds) MaxSelectable() float64 { return 2 * t.SelectionRadius }

// Validate checks that the thresholds describe a usable size band.
func (t Thresholds) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"selection_radius", t.SelectionRadius},
		{"ideal_size", t.IdealSize},
		{"min_size", t.MinSize},
		{"small_target", t.SmallTarget},
	}
	for _, f := range fields {
		if f.v <= 0 {
			return fmt.Errorf("thresholds.%s must be positive, got %g", f.name, f.v)
		}
	}
	if t.MinSize >= t.IdealSize {
		return fmt.Errorf("thresholds.min_size (%g) must be below ideal_size (%g)", t.MinSize, t.IdealSize)
	}
	return nil
}

// InspectConfig configures the optional external inspection tool.
type InspectConfig struct {
	Command string        `yaml:"command" json:"command"`
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// Config holds validator configuration loaded from .glbcheck.yaml.
type Config struct {
	Thresholds  Thresholds    `yaml:"thresholds"   json:"thresholds"`
	BaseDir     string        `yaml:"base_dir"     json:"base_dir"`
	Extensions  []string      `yaml:"extensions"   json:"extensions"`
	ExcludeDirs []string      `yaml:"exclude_dirs" json:"exclude_dirs,omitempty"`
	Inspect     InspectConfig `yaml:"inspect"      json:"inspect"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Thresholds: DefaultThresholds(),
		BaseDir:    DefaultBaseDir,
		Extensions: []string{".glb"},
		Inspect: InspectConfig{
			Command: DefaultInspectCommand,
			Timeout: DefaultInspectTimeout,
		},
	}
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c Config) Validate() error {
	if err := c.Thresholds.Validate(); err != nil {
		return err
	}
	if c.BaseDir == "" {
		return fmt.Errorf("base_dir must not be empty")
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions must list at least one file extension")
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	if c.Inspect.Command == "" {
		return fmt.Errorf("inspect.command must not be empty")
	}
	if c.Inspect.Timeout <= 0 {
		return fmt.Errorf("inspect.timeout must be positive, got %s", c.Inspect.Timeout)
	}
	return nil
}
