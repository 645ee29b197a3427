package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/max-niederman/beryl/pkg/crystal"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.GeneratorID != 0 {
		t.Fatalf("default generator id")
	}
	if cfg.Epoch != DefaultEpoch {
		t.Fatalf("default epoch")
	}
	if cfg.MintBatchMax != 4096 {
		t.Fatalf("default mint batch max")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "beryl.json")
	data := []byte(`{"generatorId":42,"epoch":"2025-06-01T00:00:00Z","httpAddr":":9090","mintBatchMax":128}`)
	if err := os.WriteFile(file, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.GeneratorID != 42 {
		t.Fatalf("expected 42, got %d", cfg.GeneratorID)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("expected :9090")
	}
	if cfg.MintBatchMax != 128 {
		t.Fatalf("expected 128")
	}
	// Unset fields keep defaults.
	if cfg.Fsync != "interval" {
		t.Fatalf("expected default fsync, got %q", cfg.Fsync)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "beryl.yaml")
	data := []byte("generatorId: 7\nepoch: \"1717200000000\"\nfsync: always\nlog:\n  level: debug\n  format: text\n")
	if err := os.WriteFile(file, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.GeneratorID != 7 {
		t.Fatalf("expected 7, got %d", cfg.GeneratorID)
	}
	if cfg.Fsync != "always" {
		t.Fatalf("expected always")
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Fatalf("log section not loaded: %+v", cfg.Log)
	}
	epoch, err := cfg.EpochTime()
	if err != nil {
		t.Fatalf("epoch: %v", err)
	}
	if epoch.UnixMilli() != 1717200000000 {
		t.Fatalf("unix ms epoch parsed to %v", epoch)
	}
}

func TestFromEnv(t *testing.T) {
	cfg := Default()
	os.Setenv("BERYL_GENERATOR_ID", "99")
	os.Setenv("BERYL_HTTP_ADDR", ":7070")
	os.Setenv("BERYL_LOG_LEVEL", "warn")
	t.Cleanup(func() {
		os.Unsetenv("BERYL_GENERATOR_ID")
		os.Unsetenv("BERYL_HTTP_ADDR")
		os.Unsetenv("BERYL_LOG_LEVEL")
	})
	FromEnv(&cfg)
	if cfg.GeneratorID != 99 {
		t.Fatalf("env override generator id")
	}
	if cfg.HTTPAddr != ":7070" {
		t.Fatalf("env override http addr")
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("env override log level")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.GeneratorID = crystal.MaxGeneratorID + 1
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected generator id error")
	}

	cfg = Default()
	cfg.Epoch = "yesterday"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected epoch error")
	}

	cfg = Default()
	cfg.Fsync = "sometimes"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected fsync error")
	}

	cfg = Default()
	cfg.MintBatchMax = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected mint batch error")
	}
}

func TestEpochTime(t *testing.T) {
	cfg := Default()
	epoch, err := cfg.EpochTime()
	if err != nil {
		t.Fatalf("default epoch: %v", err)
	}
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !epoch.Equal(want) {
		t.Fatalf("default epoch parsed to %v", epoch)
	}

	cfg.Epoch = ""
	if epoch, err = cfg.EpochTime(); err != nil || !epoch.Equal(want) {
		t.Fatalf("empty epoch should fall back to default: %v %v", epoch, err)
	}
}
