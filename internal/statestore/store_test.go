package statestore

import (
	"bytes"
	"errors"
	"testing"
	"time"

	pebblestore "github.com/max-niederman/beryl/internal/storage/pebble"
	"github.com/max-niederman/beryl/pkg/generator"
)

var testEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := pebblestore.Open(pebblestore.Options{
		DataDir: t.TempDir(),
		Fsync:   pebblestore.FsyncModeNever,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return New(db)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	st := generator.State{LastTimestamp: 123456, LastCounter: 42}
	if err := s.Save(7, testEpoch, st); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load(7, testEpoch)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil {
		t.Fatalf("expected snapshot")
	}
	if *got != st {
		t.Fatalf("got %+v want %+v", *got, st)
	}
}

func TestLoadMissingIsNil(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Load(3, testEpoch)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil snapshot, got %+v", *got)
	}
}

func TestLoadRefusesEpochMismatch(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save(7, testEpoch, generator.State{LastTimestamp: 5}); err != nil {
		t.Fatalf("save: %v", err)
	}
	_, err := s.Load(7, testEpoch.Add(time.Hour))
	if !errors.Is(err, ErrEpochMismatch) {
		t.Fatalf("expected ErrEpochMismatch, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save(9, testEpoch, generator.State{LastTimestamp: 1}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Delete(9); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := s.Load(9, testEpoch)
	if err != nil || got != nil {
		t.Fatalf("expected snapshot gone, got %v, %v", got, err)
	}
}

func TestListOrdersByID(t *testing.T) {
	s := newTestStore(t)

	for _, id := range []uint16{300, 2, 41} {
		if err := s.Save(id, testEpoch, generator.State{LastTimestamp: int64(id)}); err != nil {
			t.Fatalf("save %d: %v", id, err)
		}
	}

	recs, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	want := []uint16{2, 41, 300}
	for i, rec := range recs {
		if rec.GeneratorID != want[i] {
			t.Fatalf("order: got %d at %d, want %d", rec.GeneratorID, i, want[i])
		}
		if rec.EpochMs != testEpoch.UnixMilli() {
			t.Fatalf("epoch not recorded")
		}
	}
}

func TestKeySortsByID(t *testing.T) {
	if !bytes.Equal(KeyState(0)[:4], []byte("gen/")) {
		t.Fatalf("key prefix")
	}
	if bytes.Compare(KeyState(2), KeyState(300)) >= 0 {
		t.Fatalf("big-endian ids must sort numerically")
	}
}
