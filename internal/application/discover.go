package application

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/ntbtools/glbcheck/internal/domain"
)

// DiscoverModels lists model files under baseDir. A base directory that does
// not exist holds no models and is not an error.
func DiscoverModels(scanner domain.ModelScanner, baseDir string, extensions []string) ([]string, error) {
	models, err := scanner.FindModels(baseDir, extensions...)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning %s: %w", baseDir, err)
	}
	return models, nil
}
