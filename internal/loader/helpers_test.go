package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/nerrad567/woods-config/internal/cache"
	"github.com/nerrad567/woods-config/internal/models"
	"github.com/nerrad567/woods-config/internal/schema"
)

const validCamera = `{
  "index": 0,
  "hflip": 0,
  "vflip": 1,
  "sensitivity": 20,
  "tuning.enabled": false,
  "multimedia.path": "multimedia/camera0",
  "timestamp.enabled": true,
  "timestamp.format": "%Y-%m-%d %H:%M:%S",
  "timestamp.color": [255, 255, 255],
  "timestamp.origin": [10, 30],
  "timestamp.font": "FONT_HERSHEY_SIMPLEX",
  "timestamp.fscale": 1,
  "timestamp.thickness": 2,
  "image.prefix": "cam0_",
  "image.fmt": "jpg",
  "image.size": "1920x1080",
  "image.snapshots": 3,
  "image.snapshots.t": 2
}`

// LidarConfig and RadarConfig are extra components for multi-component tests.
type LidarConfig struct {
	Range float64 `json:"range"`
	Port  string  `json:"serial.port"`
}

type RadarConfig struct {
	Channels int `json:"channels"`
}

// logEntry is one captured log call.
type logEntry struct {
	level string
	msg   string
	attrs map[string]any
}

// captureLogger records every call for assertions.
type captureLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *captureLogger) record(level, msg string, args []any) {
	attrs := make(map[string]any, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		attrs[fmt.Sprint(args[i])] = args[i+1]
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, attrs: attrs})
}

func (l *captureLogger) Debug(msg string, args ...any) { l.record("debug", msg, args) }
func (l *captureLogger) Info(msg string, args ...any)  { l.record("info", msg, args) }
func (l *captureLogger) Warn(msg string, args ...any)  { l.record("warn", msg, args) }
func (l *captureLogger) Error(msg string, args ...any) { l.record("error", msg, args) }

// find returns the first entry at level whose message contains substr.
func (l *captureLogger) find(level, substr string) (logEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.level == level && strings.Contains(e.msg, substr) {
			return e, true
		}
	}
	return logEntry{}, false
}

// fixture is a schema-module directory, a data directory, and a registry.
type fixture struct {
	t       *testing.T
	models  fstest.MapFS
	dataDir string
	reg     *schema.Registry
	log     *captureLogger
}

func newFixture(t *testing.T, moduleFiles ...string) *fixture {
	t.Helper()

	reg, err := models.NewRegistry()
	if err != nil {
		t.Fatalf("models.NewRegistry() error = %v", err)
	}
	reg.MustRegister(schema.Module{
		Name:  "lidar_model",
		Types: []schema.Type{schema.MustStruct[LidarConfig]("LidarConfig")},
	})
	reg.MustRegister(schema.Module{
		Name:  "radar_model",
		Types: []schema.Type{schema.MustStruct[RadarConfig]("RadarConfig")},
	})

	f := &fixture{
		t:       t,
		models:  fstest.MapFS{"doc.go": {Data: []byte("package models\n")}, "base_config.go": {Data: []byte("package models\n")}},
		dataDir: t.TempDir(),
		reg:     reg,
		log:     &captureLogger{},
	}
	for _, m := range moduleFiles {
		f.addModule(m)
	}
	return f
}

func (f *fixture) addModule(file string) {
	f.models[file] = &fstest.MapFile{Data: []byte("package models\n")}
}

func (f *fixture) writeData(component, content string) {
	f.t.Helper()
	p := filepath.Join(f.dataDir, component+".json")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		f.t.Fatalf("writing %s: %v", p, err)
	}
}

func (f *fixture) pipeline(store *cache.Store) *Pipeline {
	f.t.Helper()
	p, err := New(Config{
		Models:   f.models,
		DataDir:  f.dataDir,
		Registry: f.reg,
		Cache:    store,
		Workers:  4,
	})
	if err != nil {
		f.t.Fatalf("New() error = %v", err)
	}
	p.SetLogger(f.log)
	return p
}

func outcomeFor(t *testing.T, r *Report, component string) Outcome {
	t.Helper()
	for _, o := range r.Outcomes {
		if o.Component == component {
			return o
		}
	}
	t.Fatalf("no outcome for %q in %+v", component, r.Outcomes)
	return Outcome{}
}
