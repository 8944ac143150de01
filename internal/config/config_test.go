package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "8888" {
		t.Errorf("Port = %q, want 8888", cfg.Port)
	}
	if cfg.RenderFlushWait != 500*time.Millisecond {
		t.Errorf("RenderFlushWait = %v, want 500ms", cfg.RenderFlushWait)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scanprep.yaml")
	content := "port: \"9000\"\ninference_url: http://model.internal\njpeg_quality: 98\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.InferenceURL != "http://model.internal" {
		t.Errorf("InferenceURL = %q", cfg.InferenceURL)
	}
	if cfg.JPEGQuality != 98 {
		t.Errorf("JPEGQuality = %d, want 98", cfg.JPEGQuality)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scanprep.yaml")
	if err := os.WriteFile(path, []byte("port: \"9000\"\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv("SCANPREP_PORT", "7777")
	t.Setenv("SCANPREP_FLUSH_WAIT", "250ms")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "7777" {
		t.Errorf("Port = %q, env should override file", cfg.Port)
	}
	if cfg.RenderFlushWait != 250*time.Millisecond {
		t.Errorf("RenderFlushWait = %v, want 250ms", cfg.RenderFlushWait)
	}
}

func TestLoadInvalidEnv(t *testing.T) {
	t.Setenv("SCANPREP_JPEG_QUALITY", "best")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for non-numeric quality")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
