package domain

// Summary aggregates the outcome of validating several model files.
type Summary struct {
	Total        int           `json:"total"`
	Healthy      int           `json:"healthy"`
	WarningsOnly int           `json:"warnings_only"`
	Errors       int           `json:"errors"`
	Failing      []FailingFile `json:"failing,omitempty"`
}

// FailingFile names a model that has at least one error.
type FailingFile struct {
	FileName   string `json:"file_name"`
	FilePath   string `json:"file_path"`
	ErrorCount int    `json:"error_count"`
}

// Summarize counts healthy, warning-only and failing results. Failing files
// keep input order.
func Summarize(results []*ValidationResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch {
		case r.HasErrors():
			s.Errors++
			s.Failing = append(s.Failing, FailingFile{
				FileName:   r.FileName,
				FilePath:   r.FilePath,
				ErrorCount: r.ErrorCount(),
			})
		case r.HasWarnings():
			s.WarningsOnly++
		default:
			s.Healthy++
		}
	}
	return s
}

// Passed reports whether no result had an error-severity issue.
func (s Summary) Passed() bool { return s.Errors == 0 }

// ExitCode returns 1 if any result has an error, 0 otherwise. Warnings never
// fail a run.
func ExitCode(results []*ValidationResult) int {
	for _, r := range results {
		if r.HasErrors() {
			return 1
		}
	}
	return 0
}
