package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	content := `
accessories:
  tokens:
    - "AAAAAAAA"
    - "192.168.1.50"
  name_prefix: "Rink"
device:
  port: 5005
  timeout: 5
database:
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
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Accessories.Tokens) != 2 {
		t.Fatalf("len(Accessories.Tokens) = %d, want 2", len(cfg.Accessories.Tokens))
	}
	if cfg.Accessories.Tokens[0] != "AAAAAAAA" {
		t.Errorf("Accessories.Tokens[0] = %q, want %q", cfg.Accessories.Tokens[0], "AAAAAAAA")
	}
	if cfg.Accessories.NamePrefix != "Rink" {
		t.Errorf("Accessories.NamePrefix = %q, want %q", cfg.Accessories.NamePrefix, "Rink")
	}
	if cfg.Device.Port != 5005 {
		t.Errorf("Device.Port = %d, want 5005", cfg.Device.Port)
	}
	if cfg.Database.Path != "/tmp/test.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/tmp/test.db")
	}
	if !cfg.MQTT.Enabled {
		t.Error("MQTT.Enabled = false, want true")
	}
}

func TestLoad_Defaults(t *testing.T) {
	// Minimal config; everything else should come from defaults.
	content := `
accessories:
  tokens: ["AAAAAAAA"]
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Device.Port != 5005 {
		t.Errorf("Default Device.Port = %d, want 5005", cfg.Device.Port)
	}
	if cfg.Device.Timeout != 5 {
		t.Errorf("Default Device.Timeout = %d, want 5", cfg.Device.Timeout)
	}
	if cfg.Accessories.NamePrefix != "Scoreboard" {
		t.Errorf("Default NamePrefix = %q, want %q", cfg.Accessories.NamePrefix, "Scoreboard")
	}
	if cfg.Database.Path != "./data/scorelink.db" {
		t.Errorf("Default Database.Path = %q, want ./data/scorelink.db", cfg.Database.Path)
	}
	if cfg.MQTT.HealthInterval != 30 {
		t.Errorf("Default MQTT.HealthInterval = %d, want 30", cfg.MQTT.HealthInterval)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Default Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "invalid: [yaml: content"))
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "empty token",
			content: `
accessories:
  tokens: ["AAAAAAAA", "  "]
`,
		},
		{
			name: "bad device port",
			content: `
device:
  port: 70000
`,
		},
		{
			name: "negative device timeout",
			content: `
device:
  timeout: -1
`,
		},
		{
			name: "bad qos",
			content: `
mqtt:
  qos: 3
`,
		},
		{
			name: "influx enabled without url",
			content: `
influxdb:
  enabled: true
  bucket: "scorelink"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Error("Load() expected validation error, got nil")
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SCORELINK_DATABASE_PATH", "/tmp/override.db")
	t.Setenv("SCORELINK_MQTT_HOST", "broker.local")
	t.Setenv("SCORELINK_DEVICE_PORT", "6006")

	content := `
database:
  path: "/tmp/file.db"
mqtt:
  broker:
    host: "localhost"
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Path != "/tmp/override.db" {
		t.Errorf("Database.Path = %q, want env override /tmp/override.db", cfg.Database.Path)
	}
	if cfg.MQTT.Broker.Host != "broker.local" {
		t.Errorf("MQTT.Broker.Host = %q, want env override broker.local", cfg.MQTT.Broker.Host)
	}
	if cfg.Device.Port != 6006 {
		t.Errorf("Device.Port = %d, want env override 6006", cfg.Device.Port)
	}
}
