package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_ValidConfig(t *testing.T) {
	content := `
paths:
  data_dir: "/srv/woods/json_configs"
loader:
  workers: 2
database:
  enabled: true
  path: "/tmp/test.db"
  wal_mode: true
  busy_timeout: 5
mqtt:
  enabled: true
  broker:
    host: "localhost"
    port: 1883
    client_id: "test-client"
  qos: 1
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Paths.DataDir != "/srv/woods/json_configs" {
		t.Errorf("Paths.DataDir = %q, want %q", cfg.Paths.DataDir, "/srv/woods/json_configs")
	}

	if cfg.Loader.Workers != 2 {
		t.Errorf("Loader.Workers = %d, want 2", cfg.Loader.Workers)
	}

	if cfg.Database.Path != "/tmp/test.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/tmp/test.db")
	}

	if cfg.MQTT.Broker.Host != "localhost" {
		t.Errorf("MQTT.Broker.Host = %q, want %q", cfg.MQTT.Broker.Host, "localhost")
	}

	// Defaults survive for sections not in the file
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}
}

func TestLoad_TOML(t *testing.T) {
	content := `
[paths]
models_dir = "/opt/woods/models"
data_dir = "/opt/woods/data"

[loader]
workers = 8

[logging]
level = "debug"
format = "text"
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Paths.ModelsDir != "/opt/woods/models" {
		t.Errorf("Paths.ModelsDir = %q, want %q", cfg.Paths.ModelsDir, "/opt/woods/models")
	}
	if cfg.Loader.Workers != 8 {
		t.Errorf("Loader.Workers = %d, want 8", cfg.Loader.Workers)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "text")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("invalid: [yaml: content"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	content := `
paths:
  data_dir: ""
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() expected validation error for empty paths.data_dir, got nil")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "zero workers",
			mutate:  func(c *Config) { c.Loader.Workers = 0 },
			wantErr: true,
		},
		{
			name: "database enabled without path",
			mutate: func(c *Config) {
				c.Database.Enabled = true
				c.Database.Path = ""
			},
			wantErr: true,
		},
		{
			name: "mqtt disabled ignores bad qos",
			mutate: func(c *Config) {
				c.MQTT.QoS = 7
			},
			wantErr: false,
		},
		{
			name: "mqtt enabled with bad qos",
			mutate: func(c *Config) {
				c.MQTT.Enabled = true
				c.MQTT.QoS = 3
			},
			wantErr: true,
		},
		{
			name: "influxdb enabled without url",
			mutate: func(c *Config) {
				c.InfluxDB.Enabled = true
				c.InfluxDB.Bucket = "woods"
			},
			wantErr: true,
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("WOODS_DATA_DIR", "/env/data")
	t.Setenv("WOODS_MODELS_DIR", "/env/models")
	t.Setenv("WOODS_LOADER_WORKERS", "3")
	t.Setenv("WOODS_MQTT_HOST", "broker.local")
	t.Setenv("WOODS_INFLUXDB_TOKEN", "secret-token")

	cfg := Default()
	applyEnvOverrides(cfg)

	if cfg.Paths.DataDir != "/env/data" {
		t.Errorf("Paths.DataDir = %q, want %q", cfg.Paths.DataDir, "/env/data")
	}
	if cfg.Paths.ModelsDir != "/env/models" {
		t.Errorf("Paths.ModelsDir = %q, want %q", cfg.Paths.ModelsDir, "/env/models")
	}
	if cfg.Loader.Workers != 3 {
		t.Errorf("Loader.Workers = %d, want 3", cfg.Loader.Workers)
	}
	if cfg.MQTT.Broker.Host != "broker.local" {
		t.Errorf("MQTT.Broker.Host = %q, want %q", cfg.MQTT.Broker.Host, "broker.local")
	}
	if cfg.InfluxDB.Token != "secret-token" {
		t.Errorf("InfluxDB.Token = %q, want %q", cfg.InfluxDB.Token, "secret-token")
	}
}

func TestApplyEnvOverrides_InvalidWorkersIgnored(t *testing.T) {
	t.Setenv("WOODS_LOADER_WORKERS", "many")

	cfg := Default()
	applyEnvOverrides(cfg)

	if cfg.Loader.Workers != 4 {
		t.Errorf("Loader.Workers = %d, want default 4", cfg.Loader.Workers)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("WOODS_DATA_DIR", "/env/only")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if cfg.Paths.DataDir != "/env/only" {
		t.Errorf("Paths.DataDir = %q, want %q", cfg.Paths.DataDir, "/env/only")
	}
}
