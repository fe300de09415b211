package sink

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nerrad567/woods-config/internal/infrastructure/mqtt"
	"github.com/nerrad567/woods-config/internal/loader"
)

var (
	_ loader.Reporter = (*MQTT)(nil)
	_ Publisher       = (*mqtt.Client)(nil)
)

// Publisher is the part of *mqtt.Client the MQTT sink needs.
type Publisher interface {
	PublishJSON(topic string, v any, retained bool) error
}

// ComponentStatus is the retained payload on woods/config/{component}/status.
type ComponentStatus struct {
	RunID     string   `json:"run_id"`
	Component string   `json:"component"`
	OK        bool     `json:"ok"`
	Kind      string   `json:"kind"`
	Module    string   `json:"module,omitempty"`
	Type      string   `json:"type,omitempty"`
	Fields    []string `json:"fields,omitempty"`
	Error     string   `json:"error,omitempty"`
	Timestamp string   `json:"timestamp"`
}

// Summary is the retained payload on woods/config/summary.
type Summary struct {
	RunID      string         `json:"run_id"`
	Status     string         `json:"status"`
	Loaded     []string       `json:"loaded"`
	Failed     int            `json:"failed"`
	Counts     map[string]int `json:"counts"`
	DurationMS int64          `json:"duration_ms"`
	Timestamp  string         `json:"timestamp"`
}

// MQTT publishes reports to the broker.
type MQTT struct {
	pub Publisher
}

// NewMQTT creates an MQTT sink.
func NewMQTT(pub Publisher) *MQTT {
	return &MQTT{pub: pub}
}

// Report publishes one status per component, then the summary. Every
// publish is attempted; the errors are joined.
func (m *MQTT) Report(ctx context.Context, r *loader.Report) error {
	ts := r.StartedAt.UTC().Format(time.RFC3339)
	topics := mqtt.Topics{}

	var errs []error
	for _, o := range r.Outcomes {
		if err := ctx.Err(); err != nil {
			return err
		}
		status := ComponentStatus{
			RunID:     r.RunID,
			Component: o.Component,
			OK:        o.OK(),
			Kind:      string(o.Kind),
			Module:    o.Module,
			Type:      o.Type,
			Fields:    o.Fields,
			Error:     o.Error(),
			Timestamp: ts,
		}
		if err := m.pub.PublishJSON(topics.ComponentStatus(o.Component), status, true); err != nil {
			errs = append(errs, fmt.Errorf("publishing %s status: %w", o.Component, err))
		}
	}

	if err := m.pub.PublishJSON(topics.Summary(), NewSummary(r), true); err != nil {
		errs = append(errs, fmt.Errorf("publishing summary: %w", err))
	}
	return errors.Join(errs...)
}

// NewSummary builds the summary payload for r.
func NewSummary(r *loader.Report) Summary {
	loaded := r.Loaded()
	if loaded == nil {
		loaded = []string{}
	}
	counts := make(map[string]int)
	for kind, n := range r.Counts() {
		counts[string(kind)] = n
	}
	return Summary{
		RunID:      r.RunID,
		Status:     string(r.Status()),
		Loaded:     loaded,
		Failed:     len(r.Outcomes) - len(loaded),
		Counts:     counts,
		DurationMS: r.Duration.Milliseconds(),
		Timestamp:  r.StartedAt.UTC().Format(time.RFC3339),
	}
}
