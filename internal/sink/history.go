package sink

import (
	"context"
	"fmt"

	"github.com/nerrad567/woods-config/internal/history"
	"github.com/nerrad567/woods-config/internal/loader"
)

var _ loader.Reporter = (*History)(nil)

// History records every report in a history.Repository.
type History struct {
	repo history.Repository
	keep int
}

// NewHistory creates a history sink. When keep is positive, runs beyond
// the newest keep are pruned after each insert.
func NewHistory(repo history.Repository, keep int) *History {
	return &History{repo: repo, keep: keep}
}

// Report stores r.
func (h *History) Report(ctx context.Context, r *loader.Report) error {
	if err := h.repo.Create(ctx, ToRun(r)); err != nil {
		return fmt.Errorf("recording load run: %w", err)
	}
	if h.keep > 0 {
		if _, err := h.repo.Prune(ctx, h.keep); err != nil {
			return fmt.Errorf("pruning load history: %w", err)
		}
	}
	return nil
}

// ToRun converts a report into its stored form.
func ToRun(r *loader.Report) *history.Run {
	loaded := len(r.Loaded())
	run := &history.Run{
		ID:          r.RunID,
		StartedAt:   r.StartedAt,
		Duration:    r.Duration,
		Status:      string(r.Status()),
		CacheFilled: r.CacheFilled,
		Loaded:      loaded,
		Failed:      len(r.Outcomes) - loaded,
		Outcomes:    make([]history.Outcome, 0, len(r.Outcomes)),
	}
	for _, o := range r.Outcomes {
		run.Outcomes = append(run.Outcomes, history.Outcome{
			Component: o.Component,
			Kind:      string(o.Kind),
			Module:    o.Module,
			Type:      o.Type,
			DataFile:  o.DataFile,
			Fields:    o.Fields,
			Error:     o.Error(),
		})
	}
	return run
}
