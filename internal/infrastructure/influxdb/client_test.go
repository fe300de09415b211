package influxdb_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/nerrad567/woods-config/internal/infrastructure/config"
	"github.com/nerrad567/woods-config/internal/infrastructure/influxdb"
)

// testConfig returns a configuration for a local dev InfluxDB.
func testConfig() config.InfluxDBConfig {
	return config.InfluxDBConfig{
		Enabled:       true,
		URL:           "http://127.0.0.1:8086",
		Token:         "woods-dev-token",
		Org:           "woods",
		Bucket:        "config",
		BatchSize:     100,
		FlushInterval: 1,
	}
}

// skipIfNoInfluxDB skips the test if InfluxDB is not running.
func skipIfNoInfluxDB(t *testing.T) {
	t.Helper()
	if os.Getenv("RUN_INTEGRATION") == "" {
		client, err := influxdb.Connect(testConfig())
		if err != nil {
			t.Skip("InfluxDB not available, skipping integration test")
		}
		client.Close()
	}
}

// =============================================================================
// Point Tests
// =============================================================================

func TestLoadRunPoint(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	p := influxdb.LoadRunPoint(influxdb.LoadRun{
		Status:      "partial",
		Loaded:      2,
		Failed:      1,
		CacheFilled: true,
		Duration:    42 * time.Millisecond,
		At:          at,
	})

	want := fmt.Sprintf("config_load,status=partial cache_filled=true,duration_ms=42i,failed=1i,loaded=2i %d\n", at.Unix())
	if got := write.PointToLineProtocol(p, time.Second); got != want {
		t.Errorf("line protocol = %q, want %q", got, want)
	}
}

func TestComponentPoint(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		component string
		kind      string
		ok        bool
		want      string
	}{
		{"camera", "loaded", true, "config_component,component=camera,kind=loaded ok=true"},
		{"lidar", "validation", false, "config_component,component=lidar,kind=validation ok=false"},
	}

	for _, tt := range tests {
		t.Run(tt.component, func(t *testing.T) {
			p := influxdb.ComponentPoint(tt.component, tt.kind, tt.ok, at)
			want := fmt.Sprintf("%s %d\n", tt.want, at.Unix())
			if got := write.PointToLineProtocol(p, time.Second); got != want {
				t.Errorf("line protocol = %q, want %q", got, want)
			}
		})
	}
}

// =============================================================================
// Connection Tests
// =============================================================================

func TestConnect_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false

	_, err := influxdb.Connect(cfg)
	if !errors.Is(err, influxdb.ErrDisabled) {
		t.Errorf("Connect() error = %v, want ErrDisabled", err)
	}
}

func TestConnect_InvalidURL(t *testing.T) {
	cfg := testConfig()
	cfg.URL = "http://127.0.0.1:59999"

	_, err := influxdb.Connect(cfg)
	if !errors.Is(err, influxdb.ErrConnectionFailed) {
		t.Errorf("Connect() error = %v, want ErrConnectionFailed", err)
	}
}

func TestClose_Nil(t *testing.T) {
	client := &influxdb.Client{}
	if err := client.Close(); err != nil {
		t.Errorf("Close() on unconnected client error = %v", err)
	}
}

func TestWrite_NotConnectedIsNoop(t *testing.T) {
	client := &influxdb.Client{}

	// Must not panic on a client without a write API.
	client.WriteLoadRun(influxdb.LoadRun{Status: "ok", At: time.Now()})
	client.WriteComponent("camera", "loaded", true, time.Now())
	client.Flush()

	if err := client.HealthCheck(context.Background()); !errors.Is(err, influxdb.ErrNotConnected) {
		t.Errorf("HealthCheck() error = %v, want ErrNotConnected", err)
	}
}

// =============================================================================
// Integration Tests (skipped without a server)
// =============================================================================

func TestConnect(t *testing.T) {
	skipIfNoInfluxDB(t)

	client, err := influxdb.Connect(testConfig())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	if !client.IsConnected() {
		t.Error("IsConnected() = false after Connect()")
	}
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
}

func TestConnect_DefaultBatchSettings(t *testing.T) {
	skipIfNoInfluxDB(t)
	cfg := testConfig()
	cfg.BatchSize = -5
	cfg.FlushInterval = 0

	client, err := influxdb.Connect(cfg)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	if !client.IsConnected() {
		t.Error("IsConnected() = false with default batch settings")
	}
}

func TestWriteLoadRun(t *testing.T) {
	skipIfNoInfluxDB(t)

	client, err := influxdb.Connect(testConfig())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	var writeErrs atomic.Int32
	client.SetOnError(func(error) { writeErrs.Add(1) })

	now := time.Now()
	client.WriteLoadRun(influxdb.LoadRun{Status: "ok", Loaded: 1, Duration: time.Millisecond, At: now})
	client.WriteComponent("camera", "loaded", true, now)
	client.Flush()

	if n := writeErrs.Load(); n != 0 {
		t.Errorf("async write errors = %d, want 0", n)
	}
}

func TestClose(t *testing.T) {
	skipIfNoInfluxDB(t)

	client, err := influxdb.Connect(testConfig())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	if err := client.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if client.IsConnected() {
		t.Error("IsConnected() = true after Close()")
	}
}
