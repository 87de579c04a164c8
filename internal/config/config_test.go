package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dfbb/qrsnap/internal/config"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("loglevel: debug\nec_level: Q\naggressive: true\n"), 0600)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.ECLevel != "Q" {
		t.Errorf("ECLevel = %q, want %q", cfg.ECLevel, "Q")
	}
	if !cfg.Aggressive {
		t.Error("Aggressive = false, want true")
	}
	// Fields absent from the file keep their defaults
	if cfg.PixelsPerModule != 4 {
		t.Errorf("PixelsPerModule = %d, want default 4", cfg.PixelsPerModule)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	os.WriteFile(path, nil, 0600)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Mode != "8" {
		t.Errorf("default Mode = %q, want %q", cfg.Mode, "8")
	}
	if cfg.ECLevel != "M" {
		t.Errorf("default ECLevel = %q, want %q", cfg.ECLevel, "M")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := config.Defaults()
	cfg.PixelsPerModule = 8
	if err := config.Save(path, cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.PixelsPerModule != 8 {
		t.Errorf("PixelsPerModule = %d, want 8", got.PixelsPerModule)
	}
}
