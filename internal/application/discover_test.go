package application_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ntbtools/glbcheck/internal/adapters/outbound/scanner"
	"github.com/ntbtools/glbcheck/internal/application"
	"github.com/ntbtools/glbcheck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenScanner struct{}

func (brokenScanner) FindModels(string, ...string) ([]string, error) {
	return nil, errors.New("permission denied")
}

func TestDiscoverModels(t *testing.T) {
	dir := t.TempDir()
	writeModel(t, dir, "b.glb", &domain.Document{})
	writeModel(t, dir, "a.glb", &domain.Document{})

	models, err := application.DiscoverModels(scanner.New(), dir, []string{".glb"})
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "a.glb", filepath.Base(models[0]))
}

func TestDiscoverModels_MissingDirIsEmpty(t *testing.T) {
	models, err := application.DiscoverModels(scanner.New(), filepath.Join(t.TempDir(), "none"), nil)
	require.NoError(t, err)
	assert.Empty(t, models)
}

func TestDiscoverModels_ScannerError(t *testing.T) {
	_, err := application.DiscoverModels(brokenScanner{}, "models", nil)
	assert.ErrorContains(t, err, "scanning models")
}
