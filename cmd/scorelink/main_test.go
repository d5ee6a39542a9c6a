package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// TestRun_InvalidConfig verifies run fails with invalid config path.
func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("SCORELINK_CONFIG", "/nonexistent/path/config.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with invalid config path")
	}
}

// writeTestConfig writes a minimal config with external services disabled.
func writeTestConfig(t *testing.T, dbPath string, tokens string) string {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	configContent := `
accessories:
  tokens:
` + tokens + `

device:
  port: 5005
  timeout: 2

database:
  path: "` + dbPath + `"
  wal_mode: true
  busy_timeout: 5

mqtt:
  enabled: false

influxdb:
  enabled: false

api:
  enabled: false

logging:
  level: error
  format: json
  output: stdout
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("writing test config: %v", err)
	}
	return configPath
}

// TestRun_CleanShutdown drives a full startup and context-cancelled shutdown
// with all external services disabled.
func TestRun_CleanShutdown(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scorelink.db")
	configPath := writeTestConfig(t, dbPath, `    - "AAAAAAAB"
    - "192.168.1.50"`)
	t.Setenv("SCORELINK_CONFIG", configPath)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := run(ctx); err != nil {
		t.Fatalf("run() error = %v, want clean shutdown", err)
	}

	// Discovery must have persisted both accessories.
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close() //nolint:errcheck // Test cleanup

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM accessories").Scan(&count); err != nil {
		t.Fatalf("counting accessories: %v", err)
	}
	if count != 2 {
		t.Errorf("persisted accessories = %d, want 2", count)
	}
}

// TestRun_BadTokenDoesNotAbort verifies a rejected token leaves the rest of
// the configured accessories running.
func TestRun_BadTokenDoesNotAbort(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scorelink.db")
	configPath := writeTestConfig(t, dbPath, `    - "JWAAAAAA"
    - "192.168.1.50"`)
	t.Setenv("SCORELINK_CONFIG", configPath)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := run(ctx); err != nil {
		t.Fatalf("run() error = %v, want clean shutdown despite bad token", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close() //nolint:errcheck // Test cleanup

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM accessories").Scan(&count); err != nil {
		t.Fatalf("counting accessories: %v", err)
	}
	if count != 1 {
		t.Errorf("persisted accessories = %d, want 1", count)
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("SCORELINK_CONFIG", "")
	if got := getConfigPath(); got != defaultConfigPath {
		t.Errorf("getConfigPath() = %q, want %q", got, defaultConfigPath)
	}

	t.Setenv("SCORELINK_CONFIG", "/etc/scorelink/config.yaml")
	if got := getConfigPath(); got != "/etc/scorelink/config.yaml" {
		t.Errorf("getConfigPath() = %q, want env override", got)
	}
}
