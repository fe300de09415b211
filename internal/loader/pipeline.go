package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/nerrad567/woods-config/internal/cache"
	"github.com/nerrad567/woods-config/internal/discovery"
	"github.com/nerrad567/woods-config/internal/schema"
)

// Logger defines the logging interface used by the Pipeline.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Config holds the collaborators of a Pipeline.
type Config struct {
	// Models is the schema-module directory, e.g. models.Sources or os.DirFS(dir).
	Models fs.FS

	// DataDir holds the {component}.json files.
	DataDir string

	// Registry resolves component schemas.
	Registry *schema.Registry

	// Cache holds raw data between passes. A new empty store is used if nil.
	Cache *cache.Store

	// Workers bounds concurrent validation. Values below 1 mean 1.
	Workers int

	// Discovery tunes module file selection.
	Discovery discovery.Options
}

// Pipeline discovers, caches, validates, and aggregates component
// configuration.
type Pipeline struct {
	models    fs.FS
	dataDir   string
	registry  *schema.Registry
	cache     *cache.Store
	workers   int
	discovery discovery.Options
	reporters []Reporter
	logger    Logger
	now       func() time.Time
}

// New creates a Pipeline.
//
// Returns:
//   - *Pipeline: Ready to load
//   - error: ErrNoModels, ErrNoDataDir, or ErrNoRegistry
func New(cfg Config) (*Pipeline, error) {
	if cfg.Models == nil {
		return nil, ErrNoModels
	}
	if cfg.DataDir == "" {
		return nil, ErrNoDataDir
	}
	if cfg.Registry == nil {
		return nil, ErrNoRegistry
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.New()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	return &Pipeline{
		models:    cfg.Models,
		dataDir:   cfg.DataDir,
		registry:  cfg.Registry,
		cache:     cfg.Cache,
		workers:   cfg.Workers,
		discovery: cfg.Discovery,
		logger:    noopLogger{},
		now:       time.Now,
	}, nil
}

// SetLogger sets the logger for the pipeline and for discovery, unless
// discovery was given its own.
func (p *Pipeline) SetLogger(logger Logger) {
	p.logger = logger
}

// AddReporter registers a sink that receives every Report.
func (p *Pipeline) AddReporter(r Reporter) {
	p.reporters = append(p.reporters, r)
}

// Cache returns the pipeline's cache.
func (p *Pipeline) Cache() *cache.Store {
	return p.cache
}

// LoadConfigs runs one pass and returns the aggregate of every component
// that validated, or nil if none did.
func (p *Pipeline) LoadConfigs(ctx context.Context) *Aggregate {
	agg, _ := p.Load(ctx)
	return agg
}

// Load runs one pass and returns the aggregate together with the Report.
// The Report is also delivered to every registered Reporter; reporter
// errors are logged and otherwise ignored.
func (p *Pipeline) Load(ctx context.Context) (*Aggregate, *Report) {
	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: p.now().UTC(),
	}

	agg := p.run(ctx, report)

	report.Duration = p.now().UTC().Sub(report.StartedAt)
	sort.Slice(report.Outcomes, func(i, j int) bool {
		return report.Outcomes[i].Component < report.Outcomes[j].Component
	})

	if agg == nil {
		p.logger.Warn("no valid component configurations found",
			"run_id", report.RunID, "status", string(report.Status()))
	} else {
		p.logger.Info("component configurations loaded",
			"run_id", report.RunID, "components", strings.Join(agg.Names(), ","),
			"failed", len(report.Failures()), "duration", report.Duration)
	}

	p.publish(ctx, report)
	return agg, report
}

// ClearCache empties the cache so the next pass re-reads every data file.
func (p *Pipeline) ClearCache() {
	p.cache.Clear()
}

// Reload clears the cache and runs a fresh pass.
func (p *Pipeline) Reload(ctx context.Context) (*Aggregate, *Report) {
	p.ClearCache()
	return p.Load(ctx)
}

func (p *Pipeline) run(ctx context.Context, report *Report) *Aggregate {
	opts := p.discovery
	if opts.Logger == nil {
		opts.Logger = p.logger
	}

	found, err := discovery.Discover(p.models, p.dataDir, opts)
	if err != nil {
		p.logger.Error("discovery failed", "error", err)
		return nil
	}

	for _, prob := range found.Problems {
		report.Outcomes = append(report.Outcomes, discoveryOutcome(prob))
	}

	filled, failures := p.cache.FillIfEmpty(found.Paths())
	report.CacheFilled = filled

	failed := make(map[string]bool, len(failures))
	for _, f := range failures {
		failed[f.Component] = true
		report.Outcomes = append(report.Outcomes, cacheOutcome(f))
	}

	// Validate every discovered component that has a cache entry.
	type job struct {
		entry discovery.Entry
		raw   string
	}
	var jobs []job
	for _, e := range found.Entries {
		if failed[e.Component] {
			continue
		}
		raw, ok := p.cache.Get(e.Component)
		if !ok {
			p.logger.Error("component discovered after cache fill, skipping",
				"component", e.Component, "path", e.DataFile)
			report.Outcomes = append(report.Outcomes, Outcome{
				Component: e.Component,
				DataFile:  e.DataFile,
				Kind:      KindNotCached,
				Err:       ErrNotCached,
			})
			continue
		}
		jobs = append(jobs, job{entry: e, raw: raw})
	}

	results := make([]Outcome, len(jobs))
	instances := make([]any, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, j := range jobs {
		g.Go(func() error {
			results[i], instances[i] = p.validate(gctx, j.entry, j.raw)
			return nil
		})
	}
	_ = g.Wait() // jobs never return errors

	configs := make(map[string]any, len(jobs))
	for i, o := range results {
		report.Outcomes = append(report.Outcomes, o)
		if o.OK() {
			configs[o.Component] = instances[i]
		}
	}

	return newAggregate(configs)
}

// validate resolves and validates one component.
func (p *Pipeline) validate(ctx context.Context, e discovery.Entry, raw string) (Outcome, any) {
	out := Outcome{
		Component: e.Component,
		Module:    schema.ModuleName(e.Component),
		Type:      schema.TypeName(e.Component),
		DataFile:  e.DataFile,
	}

	if err := ctx.Err(); err != nil {
		out.Kind = KindCanceled
		out.Err = err
		return out, nil
	}

	_, typ, err := p.registry.Resolve(e.Component)
	if err != nil {
		out.Err = err
		out.Kind = KindModuleResolution
		if errors.Is(err, schema.ErrTypeNotFound) {
			out.Kind = KindTypeResolution
		}
		p.logger.Error("schema resolution failed",
			"component", e.Component, "module", out.Module, "type", out.Type, "error", err)
		return out, nil
	}

	inst, err := typ.Validate([]byte(raw))
	if err != nil {
		out.Kind = KindValidation
		out.Err = fmt.Errorf("validating %s: %w", e.Component, err)

		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			out.Fields = verr.FieldNames()
		}
		p.logger.Error("component validation failed",
			"component", e.Component, "module", out.Module,
			"fields", strings.Join(out.Fields, ","), "error", err)
		return out, nil
	}

	out.Kind = KindLoaded
	p.logger.Info("component validated", "component", e.Component, "module", out.Module)
	return out, inst
}

func (p *Pipeline) publish(ctx context.Context, report *Report) {
	for _, r := range p.reporters {
		if err := r.Report(ctx, report); err != nil {
			p.logger.Warn("report sink failed", "run_id", report.RunID, "error", err)
		}
	}
}

func discoveryOutcome(prob discovery.Problem) Outcome {
	out := Outcome{
		Component: prob.Component,
		DataFile:  prob.DataFile,
		Kind:      KindMissingDataFile,
		Err:       prob.Err,
	}
	if errors.Is(prob.Err, discovery.ErrNameCollision) {
		out.Kind = KindNameCollision
	}
	return out
}

func cacheOutcome(f cache.Failure) Outcome {
	out := Outcome{
		Component: f.Component,
		DataFile:  f.Path,
		Kind:      KindReadFailed,
		Err:       f.Err,
	}
	if errors.Is(f.Err, cache.ErrMalformed) {
		out.Kind = KindMalformedData
	}
	return out
}
