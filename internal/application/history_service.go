package application

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ntbtools/glbcheck/internal/domain"
)

// HistoryService records validation runs, stamped with the git commit of
// the directory they ran in when one is available.
type HistoryService struct {
	history domain.RunHistory
	git     domain.GitInfo
	now     func() time.Time
}

func NewHistoryService(history domain.RunHistory, git domain.GitInfo) *HistoryService {
	return &HistoryService{history: history, git: git, now: time.Now}
}

// Record appends an entry for summary to the history kept under dir.
func (s *HistoryService) Record(dir string, summary domain.Summary) (domain.RunEntry, error) {
	var commit string
	var dirty bool
	if s.git != nil && s.git.IsGitRepo(dir) {
		if hash, err := s.git.CommitHash(dir); err == nil {
			commit = hash
			dirty, _ = s.git.IsDirty(dir)
		}
	}

	entry := domain.NewRunEntry(uuid.NewString(), s.now().UTC().Format(time.RFC3339), commit, summary)
	entry.Dirty = dirty

	if err := s.history.Save(dir, entry); err != nil {
		return entry, fmt.Errorf("saving run history: %w", err)
	}
	return entry, nil
}

// Entries returns all recorded runs under dir, oldest first.
func (s *HistoryService) Entries(dir string) ([]domain.RunEntry, error) {
	entries, err := s.history.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("loading run history: %w", err)
	}
	return entries, nil
}
