package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.BufferDefaults.RetentionWindowBytes != 0 {
		t.Fatalf("default retention should be unbounded")
	}
	if cfg.PumpChunkBytes != 64<<10 {
		t.Fatalf("pump chunk default")
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Fatalf("log defaults")
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "streambuf.json")
	data := []byte(`{"bufferDefaults":{"retentionWindowBytes":1048576,"perReadCapBytes":4096},"pumpChunkBytes":512,"logLevel":"debug"}`)
	if err := os.WriteFile(file, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BufferDefaults.RetentionWindowBytes != 1<<20 {
		t.Fatalf("retention not loaded")
	}
	if cfg.BufferDefaults.PerReadCapBytes != 4096 {
		t.Fatalf("per-read cap not loaded")
	}
	if cfg.PumpChunkBytes != 512 {
		t.Fatalf("pump chunk not loaded")
	}
	if cfg.LogFormat != "text" {
		t.Fatalf("unset fields should keep defaults")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestFromEnv(t *testing.T) {
	cfg := Default()
	os.Setenv("STREAMBUF_RETENTION_WINDOW_BYTES", "2048")
	os.Setenv("STREAMBUF_PER_READ_CAP_BYTES", "128")
	os.Setenv("STREAMBUF_LOG_LEVEL", "debug")
	t.Cleanup(func() {
		os.Unsetenv("STREAMBUF_RETENTION_WINDOW_BYTES")
		os.Unsetenv("STREAMBUF_PER_READ_CAP_BYTES")
		os.Unsetenv("STREAMBUF_LOG_LEVEL")
	})
	FromEnv(&cfg)
	if cfg.BufferDefaults.RetentionWindowBytes != 2048 {
		t.Fatalf("env override retention")
	}
	if cfg.BufferDefaults.PerReadCapBytes != 128 {
		t.Fatalf("env override cap")
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("env override level")
	}
}

func TestFromEnvIgnoresInvalid(t *testing.T) {
	cfg := Default()
	os.Setenv("STREAMBUF_RETENTION_WINDOW_BYTES", "not-a-number")
	t.Cleanup(func() { os.Unsetenv("STREAMBUF_RETENTION_WINDOW_BYTES") })
	FromEnv(&cfg)
	if cfg.BufferDefaults.RetentionWindowBytes != 0 {
		t.Fatalf("invalid env value should be ignored")
	}
}
