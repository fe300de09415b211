package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// Measurement names.
const (
	MeasurementLoad      = "config_load"
	MeasurementComponent = "config_component"
)

// LoadRun summarises one load pass.
type LoadRun struct {
	Status      string
	Loaded      int
	Failed      int
	CacheFilled bool
	Duration    time.Duration
	At          time.Time
}

// LoadRunPoint builds the config_load point for a pass.
func LoadRunPoint(r LoadRun) *write.Point {
	return write.NewPoint(
		MeasurementLoad,
		map[string]string{"status": r.Status},
		map[string]any{
			"loaded":       r.Loaded,
			"failed":       r.Failed,
			"duration_ms":  r.Duration.Milliseconds(),
			"cache_filled": r.CacheFilled,
		},
		r.At,
	)
}

// ComponentPoint builds the config_component point for one outcome.
// kind is the outcome kind ("loaded", "validation", ...).
func ComponentPoint(component, kind string, ok bool, at time.Time) *write.Point {
	return write.NewPoint(
		MeasurementComponent,
		map[string]string{
			"component": component,
			"kind":      kind,
		},
		map[string]any{"ok": ok},
		at,
	)
}

// WriteLoadRun queues a config_load point.
func (c *Client) WriteLoadRun(r LoadRun) {
	c.WritePoint(LoadRunPoint(r))
}

// WriteComponent queues a config_component point.
func (c *Client) WriteComponent(component, kind string, ok bool, at time.Time) {
	c.WritePoint(ComponentPoint(component, kind, ok, at))
}

// WritePoint queues an arbitrary point. Dropped when not connected.
func (c *Client) WritePoint(p *write.Point) {
	if !c.IsConnected() {
		return
	}
	c.writeAPI.WritePoint(p)
}
