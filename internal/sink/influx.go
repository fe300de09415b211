package sink

import (
	"context"
	"time"

	"github.com/nerrad567/woods-config/internal/infrastructure/influxdb"
	"github.com/nerrad567/woods-config/internal/loader"
)

var (
	_ loader.Reporter = (*Influx)(nil)
	_ MetricsWriter   = (*influxdb.Client)(nil)
)

// MetricsWriter is the part of *influxdb.Client the Influx sink needs.
type MetricsWriter interface {
	WriteLoadRun(r influxdb.LoadRun)
	WriteComponent(component, kind string, ok bool, at time.Time)
}

// Influx writes report metrics. Writes are batched by the client, so
// Report never fails.
type Influx struct {
	w MetricsWriter
}

// NewInflux creates an Influx sink.
func NewInflux(w MetricsWriter) *Influx {
	return &Influx{w: w}
}

// Report queues one config_load point and one config_component point per outcome.
func (i *Influx) Report(_ context.Context, r *loader.Report) error {
	loaded := len(r.Loaded())
	i.w.WriteLoadRun(influxdb.LoadRun{
		Status:      string(r.Status()),
		Loaded:      loaded,
		Failed:      len(r.Outcomes) - loaded,
		CacheFilled: r.CacheFilled,
		Duration:    r.Duration,
		At:          r.StartedAt,
	})
	for _, o := range r.Outcomes {
		i.w.WriteComponent(o.Component, string(o.Kind), o.OK(), r.StartedAt)
	}
	return nil
}
