// Package loader runs the component configuration pipeline.
//
// One pass of the pipeline:
//
//	┌────────────┐    ┌────────────┐    ┌─────────────────┐    ┌────────────┐
//	│ Discovery  │───▶│   Cache    │───▶│ Resolve/Validate│───▶│ Aggregate  │
//	│ (modules → │    │ (fill once,│    │ (registry, one  │    │ (immutable,│
//	│ data files)│    │ normalized)│    │  per component) │    │  per call) │
//	└────────────┘    └────────────┘    └─────────────────┘    └────────────┘
//
// Failures are isolated per component: a missing data file, malformed JSON,
// an unresolved schema, or a validation error removes only that component
// from the aggregate. Every failure is logged where it happens and recorded
// as an Outcome in the Report; none is returned to the caller.
//
// # Usage
//
//	reg, _ := models.NewRegistry()
//	p, err := loader.New(loader.Config{
//	    Models:   models.Sources,
//	    DataDir:  cfg.Paths.DataDir,
//	    Registry: reg,
//	    Cache:    cache.New(),
//	    Workers:  cfg.Loader.Workers,
//	})
//	if err != nil {
//	    return err
//	}
//	p.SetLogger(log)
//
//	agg := p.LoadConfigs(ctx)
//	if agg == nil {
//	    // no usable configuration
//	}
//	camera, ok := loader.Lookup[models.CameraConfig](agg, "camera")
//
// # Caching
//
// The injected cache.Store is filled on the first pass and reused after
// that. Data files added or edited later are not picked up until Reload
// (or ClearCache followed by LoadConfigs) is called.
//
// # Thread Safety
//
// A Pipeline is safe for concurrent use once configured. SetLogger and
// AddReporter must be called before the first load.
package loader
