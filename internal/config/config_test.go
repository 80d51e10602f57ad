package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yungbote/studytrack-backend/internal/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}
	return log
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SHUTDOWN_TIMEOUT", "5")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com,")

	cfg, err := Load(testLogger(t))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Port != "9999" {
		t.Fatalf("unexpected port: got=%q want=%q", cfg.Port, "9999")
	}
	if cfg.DBDriver != "sqlite" {
		t.Fatalf("driver not lowercased: got=%q", cfg.DBDriver)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Fatalf("unexpected shutdown timeout: got=%v", cfg.ShutdownTimeout)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "https://a.example.com" {
		t.Fatalf("unexpected origins: %#v", cfg.CORSOrigins)
	}
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	if _, err := Load(testLogger(t)); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestLoad_ReadsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "port: \"9001\"\ndb_driver: sqlite\nrollover_schedule: \"02:30\"\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load(testLogger(t))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Port != "9001" {
		t.Fatalf("unexpected port from file: got=%q", cfg.Port)
	}
	if cfg.DBDriver != "sqlite" {
		t.Fatalf("unexpected driver from file: got=%q", cfg.DBDriver)
	}
	if cfg.RolloverSchedule != "02:30" {
		t.Fatalf("unexpected schedule from file: got=%q", cfg.RolloverSchedule)
	}
}

func TestLoad_EnvBeatsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("port: \"9001\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("PORT", "9002")

	cfg, err := Load(testLogger(t))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Port != "9002" {
		t.Fatalf("env did not win over file: got=%q", cfg.Port)
	}
}

func TestLoad_MissingConfigFileFails(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	if _, err := Load(testLogger(t)); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
