package domain

// RunEntry records the summary of one validation run.
type RunEntry struct {
	ID           string   `json:"id"`
	Timestamp    string   `json:"timestamp"`
	CommitHash   string   `json:"commit_hash,omitempty"`
	Dirty        bool     `json:"dirty,omitempty"`
	Total        int      `json:"total"`
	Healthy      int      `json:"healthy"`
	WarningsOnly int      `json:"warnings_only"`
	Errors       int      `json:"errors"`
	Failing      []string `json:"failing,omitempty"`
}

// NewRunEntry builds a history entry from a summary.
func NewRunEntry(id, timestamp, commit string, s Summary) RunEntry {
	e := RunEntry{
		ID:           id,
		Timestamp:    timestamp,
		CommitHash:   commit,
		Total:        s.Total,
		Healthy:      s.Healthy,
		WarningsOnly: s.WarningsOnly,
		Errors:       s.Errors,
	}
	for _, f := range s.Failing {
		e.Failing = append(e.Failing, f.FileName)
	}
	return e
}
