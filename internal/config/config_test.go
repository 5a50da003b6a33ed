package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.WindowSize != 1000 {
		t.Errorf("window size = %d, want 1000", cfg.WindowSize)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log level = %q, want info", cfg.LogLevel)
	}
	if cfg.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Port)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("shutdown timeout = %v", cfg.ShutdownTimeout)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("WINDOW_SIZE", "50")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PORT", "9999")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.WindowSize != 50 {
		t.Errorf("window size = %d, want 50", cfg.WindowSize)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level = %q, want debug", cfg.LogLevel)
	}
	if cfg.Port != 9999 {
		t.Errorf("port = %d, want 9999", cfg.Port)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		key   string
		value string
	}{
		{"WINDOW_SIZE", "0"},
		{"WINDOW_SIZE", "-1"},
		{"WINDOW_SIZE", "many"},
		{"LOG_LEVEL", "verbose"},
		{"PORT", "eighty"},
		{"READ_TIMEOUT", "fast"},
	}
	for _, c := range cases {
		t.Run(c.key+"="+c.value, func(t *testing.T) {
			t.Setenv(c.key, c.value)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", c.key, c.value)
			}
		})
	}
}

func TestApplyFile_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "window_size: 25\nlog_level: warn\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := ApplyFile(cfg, path); err != nil {
		t.Fatalf("apply file: %v", err)
	}
	if cfg.WindowSize != 25 {
		t.Errorf("window size = %d, want 25", cfg.WindowSize)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("log level = %q, want warn", cfg.LogLevel)
	}
	// Keys absent from the file keep their loaded values.
	if cfg.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Port)
	}
}

func TestApplyFile_Missing(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := ApplyFile(cfg, filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestApplyFile_InvalidValues(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("window_size: 0\n"), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	if err := ApplyFile(cfg, path); err == nil {
		t.Error("expected error for zero window_size")
	}
}
