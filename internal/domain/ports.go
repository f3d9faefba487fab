package domain

import "context"

// ContainerReader decodes the header and metadata chunk of a model file.
type ContainerReader interface {
	Read(path string) (*Document, *ContainerHeader, error)
}

// ContainerHeader is the fixed GLB header plus the first chunk header.
type ContainerHeader struct {
	Magic       uint32 `json:"magic"`
	Version     uint32 `json:"version"`
	Length      uint32 `json:"length"`
	ChunkLength uint32 `json:"chunk_length"`
	ChunkType   uint32 `json:"chunk_type"`
}

// ModelScanner discovers model files below a base directory.
type ModelScanner interface {
	FindModels(baseDir string, extensions ...string) ([]string, error)
}

// Inspector runs an external inspection tool against a model file.
type Inspector interface {
	Inspect(ctx context.Context, path string) InspectResult
}

// InspectResult is the outcome of an external inspection. When Available is
// false, Reason says why and Output is empty.
type InspectResult struct {
	Available bool   `json:"available"`
	Output    string `json:"output,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// ConfigLoader loads validator configuration from a directory.
type ConfigLoader interface {
	Load(dir string) (Config, error)
}

// RunHistory persists summaries of validation runs.
type RunHistory interface {
	Save(dir string, entry RunEntry) error
	Load(dir string) ([]RunEntry, error)
}

// GitInfo provides git repository metadata.
type GitInfo interface {
	IsGitRepo(path string) bool
	CommitHash(path string) (string, error)
	IsDirty(path string) (bool, error)
}
