package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	charmlog "github.com/charmbracelet/log"
)

func TestLoadCLIConfig_NoFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg := loadCLIConfig(charmlog.New(io.Discard))
	if cfg.Format != "" || cfg.ShowZeroCounts || cfg.Debug {
		t.Errorf("expected zero-value config without a file, got %+v", cfg)
	}
}

func TestLoadCLIConfig_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	content := "format: json\nshowZeroCounts: true\n"
	if err := os.WriteFile(filepath.Join(dir, configFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg := loadCLIConfig(charmlog.New(io.Discard))
	if cfg.Format != "json" {
		t.Errorf("format = %q, want json", cfg.Format)
	}
	if !cfg.ShowZeroCounts {
		t.Error("showZeroCounts should be true")
	}
}

func TestLoadCLIConfig_MalformedFileIgnored(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, configFileName), []byte("format: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg := loadCLIConfig(charmlog.New(io.Discard))
	if cfg.Format != "" {
		t.Errorf("malformed config must be ignored, got %+v", cfg)
	}
}
