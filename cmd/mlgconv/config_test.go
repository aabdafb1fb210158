package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := loadConfig()
	if cfg != (Config{}) {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if err := os.MkdirAll(filepath.Join(dir, "mlgconv"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	data := []byte("default_format: json\noutput_dir: /tmp/out\nlog_level: debug\n")
	if err := os.WriteFile(filepath.Join(dir, "mlgconv", "config.yaml"), data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := loadConfig()
	if cfg.DefaultFormat != "json" {
		t.Fatalf("default_format = %q", cfg.DefaultFormat)
	}
	if cfg.OutputDir != "/tmp/out" {
		t.Fatalf("output_dir = %q", cfg.OutputDir)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log_level = %q", cfg.LogLevel)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if err := os.MkdirAll(filepath.Join(dir, "mlgconv"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "mlgconv", "config.yaml"), []byte("{not yaml"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if cfg := loadConfig(); cfg != (Config{}) {
		t.Fatalf("malformed config should yield zero config, got %+v", cfg)
	}
}
