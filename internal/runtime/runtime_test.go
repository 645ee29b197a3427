package runtime

import (
	"context"
	"errors"
	"testing"

	cfgpkg "github.com/max-niederman/beryl/internal/config"
	"github.com/max-niederman/beryl/internal/statestore"
	pebblestore "github.com/max-niederman/beryl/internal/storage/pebble"
	"github.com/max-niederman/beryl/pkg/crystal"
)

func openTestRuntime(t *testing.T, dir string, cfg cfgpkg.Config) *Runtime {
	t.Helper()
	rt, err := Open(Options{DataDir: dir, Fsync: pebblestore.FsyncModeNever, Config: cfg})
	if err != nil {
		t.Fatalf("open runtime: %v", err)
	}
	return rt
}

func TestOpenCloseHealth(t *testing.T) {
	rt := openTestRuntime(t, t.TempDir(), cfgpkg.Default())
	defer rt.Close()
	if err := rt.CheckHealth(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}
}

func TestOpenGeneratorIsCached(t *testing.T) {
	rt := openTestRuntime(t, t.TempDir(), cfgpkg.Default())
	defer rt.Close()

	a, err := rt.OpenGenerator(5)
	if err != nil {
		t.Fatalf("open generator: %v", err)
	}
	b, err := rt.OpenGenerator(5)
	if err != nil {
		t.Fatalf("reopen generator: %v", err)
	}
	if a != b {
		t.Fatalf("same id must return the same instance")
	}

	if _, err := rt.OpenGenerator(crystal.MaxGeneratorID + 1); err == nil {
		t.Fatalf("expected error for out-of-range id")
	}
}

func TestStateSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	cfg := cfgpkg.Default()

	rt := openTestRuntime(t, dir, cfg)
	g, err := rt.OpenGenerator(9)
	if err != nil {
		t.Fatalf("open generator: %v", err)
	}
	var last crystal.Crystal
	for i := 0; i < 20; i++ {
		c, err := g.Next(context.Background())
		if err != nil {
			t.Fatalf("mint %d: %v", i, err)
		}
		last = c
	}
	if err := rt.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	rt2 := openTestRuntime(t, dir, cfg)
	defer rt2.Close()

	epoch, _ := cfg.EpochTime()
	snap, err := rt2.States().Load(9, epoch)
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if snap == nil {
		t.Fatalf("expected snapshot persisted on close")
	}
	if snap.LastTimestamp != last.Timestamp() {
		t.Fatalf("snapshot timestamp %d, minted %d", snap.LastTimestamp, last.Timestamp())
	}

	g2, err := rt2.OpenGenerator(9)
	if err != nil {
		t.Fatalf("reopen generator: %v", err)
	}
	c, err := g2.Next(context.Background())
	if err != nil {
		t.Fatalf("mint after reopen: %v", err)
	}
	if c <= last {
		t.Fatalf("restart repeated or regressed: %v after %v", c, last)
	}
}

func TestReopenWithDifferentEpochRefused(t *testing.T) {
	dir := t.TempDir()
	cfg := cfgpkg.Default()

	rt := openTestRuntime(t, dir, cfg)
	g, err := rt.OpenGenerator(2)
	if err != nil {
		t.Fatalf("open generator: %v", err)
	}
	if _, err := g.Next(context.Background()); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := rt.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	cfg.Epoch = "2025-01-01T00:00:00Z"
	rt2 := openTestRuntime(t, dir, cfg)
	defer rt2.Close()
	if _, err := rt2.OpenGenerator(2); !errors.Is(err, statestore.ErrEpochMismatch) {
		t.Fatalf("expected ErrEpochMismatch, got %v", err)
	}
}
