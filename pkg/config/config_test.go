package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/marmos91/filevault/pkg/content"
	"github.com/marmos91/filevault/pkg/store"
)

func TestLoad_DefaultsApplied(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
logging:
  level: "INFO"

database:
  type: sqlite

api:
  port: 5000
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Logging.Format != "text" {
		t.Errorf("Expected default format 'text', got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stdout" {
		t.Errorf("Expected default output 'stdout', got %q", cfg.Logging.Output)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("Expected default shutdown_timeout 10s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.API.Port != 5000 {
		t.Errorf("Expected API port 5000, got %d", cfg.API.Port)
	}
	if cfg.Session.Host != "localhost" {
		t.Errorf("Expected default session host 'localhost', got %q", cfg.Session.Host)
	}
	if cfg.Session.Port != 6379 {
		t.Errorf("Expected default session port 6379, got %d", cfg.Session.Port)
	}
	if cfg.Storage.Backend != content.BackendFilesystem {
		t.Errorf("Expected default storage backend 'filesystem', got %q", cfg.Storage.Backend)
	}
	if cfg.Storage.Root != "/tmp/files_manager" {
		t.Errorf("Expected default storage root '/tmp/files_manager', got %q", cfg.Storage.Root)
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	// Loading with no config file returns a valid default config.
	// This allows users to run the server without a config file for quick testing.
	tmpDir := t.TempDir()
	nonExistentPath := filepath.Join(tmpDir, "nonexistent.yaml")

	cfg, err := Load(nonExistentPath)
	if err != nil {
		t.Fatalf("Expected no error when loading default config, got: %v", err)
	}
	if cfg == nil {
		t.Fatal("Expected default config to be returned")
	}

	if cfg.API.Port != 5000 {
		t.Errorf("Expected default API port 5000, got %d", cfg.API.Port)
	}
	if cfg.Database.Type != store.DatabaseTypeSQLite {
		t.Errorf("Expected default database type sqlite, got %q", cfg.Database.Type)
	}
}

func TestLoad_DurationStrings(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
shutdown_timeout: 25s

api:
  request_timeout: 1m
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.ShutdownTimeout != 25*time.Second {
		t.Errorf("Expected shutdown_timeout 25s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.API.RequestTimeout != time.Minute {
		t.Errorf("Expected request_timeout 1m, got %v", cfg.API.RequestTimeout)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
api:
  port: 5000
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	t.Setenv("FILEVAULT_API_PORT", "6001")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.API.Port != 6001 {
		t.Errorf("Expected env override port 6001, got %d", cfg.API.Port)
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
logging:
  level: "LOUD"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Fatal("Expected validation error for invalid log level")
	}
}

func TestValidate_StorageRules(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Storage.Backend = content.BackendS3

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for s3 backend without a bucket")
	}

	cfg.Storage.S3.Bucket = "filevault-content"
	if err := Validate(cfg); err != nil {
		t.Fatalf("Expected valid config with s3 bucket, got: %v", err)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := GetDefaultConfig()
	cfg.API.Port = 5050

	if err := SaveConfig(cfg, configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("Saved config missing: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected config file mode 0600, got %v", info.Mode().Perm())
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to reload saved config: %v", err)
	}
	if loaded.API.Port != 5050 {
		t.Errorf("Expected reloaded API port 5050, got %d", loaded.API.Port)
	}
}

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	if err := Validate(cfg); err != nil {
		t.Fatalf("Default config must validate: %v", err)
	}
	if cfg.Database.SQLite.Path == "" {
		t.Error("Expected a default sqlite path")
	}
}
