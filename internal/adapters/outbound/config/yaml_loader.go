package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ntbtools/glbcheck/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = ".glbcheck.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .glbcheck.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .glbcheck.yaml from dir.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(dir string) (domain.Config, error) {
	return l.LoadFile(filepath.Join(dir, FileName))
}

// LoadFile reads a config file from an explicit path. A missing file yields
// the defaults.
func (l *YAMLLoader) LoadFile(path string) (domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.Config{}, err
	}

	var raw domain.Config
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return domain.Config{}, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	cfg := mergeConfig(domain.DefaultConfig(), raw)
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", filepath.Base(path), err)
	}

	return cfg, nil
}

// mergeConfig overlays explicit values on top of the defaults.
// Zero values mean "not set" and keep the default; a negative threshold is
// kept so validation can reject it.
func mergeConfig(base, override domain.Config) domain.Config {
	result := base

	t := override.Thresholds
	if t.SelectionRadius != 0 {
		result.Thresholds.SelectionRadius = t.SelectionRadius
	}
	if t.IdealSize != 0 {
		result.Thresholds.IdealSize = t.IdealSize
	}
	if t.MinSize != 0 {
		result.Thresholds.MinSize = t.MinSize
	}
	if t.SmallTarget != 0 {
		result.Thresholds.SmallTarget = t.SmallTarget
	}

	if override.BaseDir != "" {
		result.BaseDir = override.BaseDir
	}
	if len(override.Extensions) > 0 {
		result.Extensions = override.Extensions
	}
	if len(override.ExcludeDirs) > 0 {
		result.ExcludeDirs = override.ExcludeDirs
	}
	if override.Inspect.Command != "" {
		result.Inspect.Command = override.Inspect.Command
	}
	if override.Inspect.Timeout != 0 {
		result.Inspect.Timeout = override.Inspect.Timeout
	}

	return result
}
