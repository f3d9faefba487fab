package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"vendor":       true,
	".glbcheck":    true,
}

// FileScanner implements domain.ModelScanner by walking the filesystem.
type FileScanner struct {
	exclude map[string]bool
}

// New creates a scanner. excludeDirs are directory names skipped in
// addition to the built-in ones.
func New(excludeDirs ...string) *FileScanner {
	extra := make(map[string]bool, len(excludeDirs))
	for _, d := range excludeDirs {
		extra[strings.TrimSuffix(d, "/")] = true
	}
	return &FileScanner{exclude: extra}
}

// FindModels returns every file below baseDir whose extension matches one of
// extensions (case-insensitive), sorted lexically. With no extensions, ".glb"
// is assumed.
func (s *FileScanner) FindModels(baseDir string, extensions ...string) ([]string, error) {
	if len(extensions) == 0 {
		extensions = []string{".glb"}
	}
	want := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		want[strings.ToLower(ext)] = true
	}

	var models []string
	err := filepath.WalkDir(baseDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != baseDir && (skipDirs[d.Name()] || s.exclude[d.Name()]) {
				return filepath.SkipDir
			}
			return nil
		}

		if want[strings.ToLower(filepath.Ext(d.Name()))] {
			models = append(models, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(models)
	return models, nil
}
