package sink

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/nerrad567/woods-config/internal/history"
	"github.com/nerrad567/woods-config/internal/infrastructure/config"
	"github.com/nerrad567/woods-config/internal/infrastructure/database"
	"github.com/nerrad567/woods-config/internal/infrastructure/influxdb"
	"github.com/nerrad567/woods-config/internal/loader"
	"github.com/nerrad567/woods-config/migrations"
)

var started = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func sampleReport(runID string) *loader.Report {
	return &loader.Report{
		RunID:       runID,
		StartedAt:   started,
		Duration:    15 * time.Millisecond,
		CacheFilled: true,
		Outcomes: []loader.Outcome{
			{Component: "camera", Module: "camera_model", Type: "CameraConfig", DataFile: "json_configs/camera.json", Kind: loader.KindLoaded},
			{Component: "lidar", Module: "lidar_model", Type: "LidarConfig", DataFile: "json_configs/lidar.json", Kind: loader.KindValidation,
				Fields: []string{"range"}, Err: errors.New("schema: LidarConfig validation failed")},
			{Component: "sonar", Kind: loader.KindMissingDataFile, Err: errors.New("discovery: no data file for component")},
		},
	}
}

// =============================================================================
// History
// =============================================================================

func TestToRun(t *testing.T) {
	run := ToRun(sampleReport("run-abc"))

	if run.ID != "run-abc" || run.Status != "partial" || run.Loaded != 1 || run.Failed != 2 {
		t.Errorf("ToRun() = %+v", run)
	}
	if len(run.Outcomes) != 3 {
		t.Fatalf("Outcomes = %d, want 3", len(run.Outcomes))
	}
	lidar := run.Outcomes[1]
	if lidar.Kind != "validation" || !reflect.DeepEqual(lidar.Fields, []string{"range"}) || lidar.Error == "" {
		t.Errorf("lidar outcome = %+v", lidar)
	}
	if run.Outcomes[0].Error != "" {
		t.Errorf("loaded outcome carries error %q", run.Outcomes[0].Error)
	}
}

func openRepo(t *testing.T) *history.SQLiteRepository {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{
		Path:        filepath.Join(t.TempDir(), "sink.db"),
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("database.Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // test cleanup

	if _, err := db.Migrate(context.Background(), migrations.FS); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return history.NewSQLiteRepository(db.DB)
}

func TestHistory_ReportAndPrune(t *testing.T) {
	repo := openRepo(t)
	sink := NewHistory(repo, 2)
	ctx := context.Background()

	for i, id := range []string{"run-1", "run-2", "run-3"} {
		r := sampleReport(id)
		r.StartedAt = started.Add(time.Duration(i) * time.Minute)
		if err := sink.Report(ctx, r); err != nil {
			t.Fatalf("Report(%s) error = %v", id, err)
		}
	}

	got, err := repo.Get(ctx, "run-3")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Status != "partial" || len(got.Outcomes) != 3 {
		t.Errorf("stored run = %+v", got)
	}

	list, err := repo.List(ctx, history.Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if list.Total != 2 {
		t.Errorf("runs kept = %d, want 2", list.Total)
	}
}

type failingRepo struct{ history.Repository }

func (failingRepo) Create(context.Context, *history.Run) error { return errors.New("disk full") }

func TestHistory_CreateError(t *testing.T) {
	sink := NewHistory(failingRepo{}, 0)
	if err := sink.Report(context.Background(), sampleReport("run-x")); err == nil {
		t.Error("Report() expected error when the repository fails")
	}
}

// =============================================================================
// MQTT
// =============================================================================

type fakePublisher struct {
	mu       sync.Mutex
	messages map[string][]byte
	fail     map[string]bool
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{messages: make(map[string][]byte), fail: make(map[string]bool)}
}

func (p *fakePublisher) PublishJSON(topic string, v any, retained bool) error {
	if !retained {
		return errors.New("expected retained publish")
	}
	if p.fail[topic] {
		return errors.New("broker unavailable")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.messages[topic] = b
	p.mu.Unlock()
	return nil
}

func TestMQTT_Report(t *testing.T) {
	pub := newFakePublisher()

	if err := NewMQTT(pub).Report(context.Background(), sampleReport("run-1")); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	if len(pub.messages) != 4 {
		t.Errorf("published %d topics, want 4", len(pub.messages))
	}

	var status ComponentStatus
	if err := json.Unmarshal(pub.messages["woods/config/lidar/status"], &status); err != nil {
		t.Fatalf("lidar status: %v", err)
	}
	if status.OK || status.Kind != "validation" || status.RunID != "run-1" {
		t.Errorf("lidar status = %+v", status)
	}

	var summary Summary
	if err := json.Unmarshal(pub.messages["woods/config/summary"], &summary); err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Status != "partial" || summary.Failed != 2 || !reflect.DeepEqual(summary.Loaded, []string{"camera"}) {
		t.Errorf("summary = %+v", summary)
	}
	if summary.Counts["missing_data_file"] != 1 {
		t.Errorf("summary counts = %v", summary.Counts)
	}
}

func TestMQTT_ReportContinuesAfterFailure(t *testing.T) {
	pub := newFakePublisher()
	pub.fail["woods/config/camera/status"] = true

	err := NewMQTT(pub).Report(context.Background(), sampleReport("run-1"))
	if err == nil {
		t.Fatal("Report() expected error")
	}
	if _, ok := pub.messages["woods/config/summary"]; !ok {
		t.Error("summary not published after a component publish failed")
	}
}

func TestNewSummary_Empty(t *testing.T) {
	s := NewSummary(&loader.Report{RunID: "run-0", StartedAt: started})

	if s.Status != "empty" || s.Loaded == nil || len(s.Loaded) != 0 {
		t.Errorf("NewSummary() = %+v", s)
	}
	b, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	if !json.Valid(b) {
		t.Errorf("invalid JSON %s", b)
	}
}

// =============================================================================
// Influx
// =============================================================================

type fakeMetrics struct {
	runs       []influxdb.LoadRun
	components map[string]bool
}

func (m *fakeMetrics) WriteLoadRun(r influxdb.LoadRun) { m.runs = append(m.runs, r) }

func (m *fakeMetrics) WriteComponent(component, _ string, ok bool, _ time.Time) {
	if m.components == nil {
		m.components = make(map[string]bool)
	}
	m.components[component] = ok
}

func TestInflux_Report(t *testing.T) {
	m := &fakeMetrics{}

	if err := NewInflux(m).Report(context.Background(), sampleReport("run-1")); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	if len(m.runs) != 1 {
		t.Fatalf("runs written = %d, want 1", len(m.runs))
	}
	run := m.runs[0]
	if run.Status != "partial" || run.Loaded != 1 || run.Failed != 2 || !run.CacheFilled || !run.At.Equal(started) {
		t.Errorf("load run = %+v", run)
	}

	want := map[string]bool{"camera": true, "lidar": false, "sonar": false}
	if !reflect.DeepEqual(m.components, want) {
		t.Errorf("components = %v, want %v", m.components, want)
	}
}
