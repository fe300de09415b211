package loader

import (
	"context"
	"time"
)

// Status summarises a Report.
type Status string

// Report statuses.
const (
	// StatusOK means every component seen was loaded.
	StatusOK Status = "ok"

	// StatusPartial means some components were loaded and some failed.
	StatusPartial Status = "partial"

	// StatusFailed means components were seen but none was loaded.
	StatusFailed Status = "failed"

	// StatusEmpty means no component was seen at all.
	StatusEmpty Status = "empty"
)

// Report describes one pass of the pipeline, one Outcome per component.
type Report struct {
	RunID       string
	StartedAt   time.Time
	Duration    time.Duration
	CacheFilled bool

	// Outcomes is sorted by component name.
	Outcomes []Outcome
}

// Loaded returns the names of the components in the aggregate.
func (r *Report) Loaded() []string {
	var names []string
	for _, o := range r.Outcomes {
		if o.OK() {
			names = append(names, o.Component)
		}
	}
	return names
}

// Failures returns every outcome that is not KindLoaded.
func (r *Report) Failures() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if !o.OK() {
			failed = append(failed, o)
		}
	}
	return failed
}

// Counts returns the number of outcomes per kind.
func (r *Report) Counts() map[Kind]int {
	counts := make(map[Kind]int, len(AllKinds))
	for _, o := range r.Outcomes {
		counts[o.Kind]++
	}
	return counts
}

// Status classifies the pass.
func (r *Report) Status() Status {
	loaded := len(r.Loaded())
	switch {
	case len(r.Outcomes) == 0:
		return StatusEmpty
	case loaded == 0:
		return StatusFailed
	case loaded < len(r.Outcomes):
		return StatusPartial
	default:
		return StatusOK
	}
}

// Reporter receives the Report of every pass.
type Reporter interface {
	Report(ctx context.Context, r *Report) error
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ctx context.Context, r *Report) error

// Report calls f(ctx, r).
func (f ReporterFunc) Report(ctx context.Context, r *Report) error {
	return f(ctx, r)
}
