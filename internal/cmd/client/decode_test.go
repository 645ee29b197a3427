package client

import (
	"strings"
	"testing"
	"time"

	"github.com/max-niederman/beryl/pkg/crystal"
)

func TestDecodeValues(t *testing.T) {
	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := crystal.Pack(1500, 42, 3)

	rows, err := decodeValues([]string{c.String(), "junk"}, "", epoch)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Timestamp != 1500 || rows[0].Generator != 42 || rows[0].Counter != 3 {
		t.Fatalf("bad decode: %+v", rows[0])
	}
	wantTime := epoch.Add(1500 * time.Millisecond).UTC().Format(time.RFC3339Nano)
	if rows[0].Time != wantTime {
		t.Fatalf("expected time %s, got %s", wantTime, rows[0].Time)
	}
	if rows[1].Error == "" {
		t.Fatalf("expected per-row error for junk input, got %+v", rows[1])
	}
}

func TestDecodeValuesFilter(t *testing.T) {
	a := crystal.Pack(10, 1, 0)
	b := crystal.Pack(10, 2, 0)

	rows, err := decodeValues([]string{a.String(), b.String()}, "generator == 2", time.Time{})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 1 || rows[0].Generator != 2 {
		t.Fatalf("expected only generator 2, got %+v", rows)
	}

	if _, err := decodeValues([]string{a.String()}, "generator ==", time.Time{}); err == nil {
		t.Fatal("expected error for invalid filter")
	}
}

func TestReadInputs(t *testing.T) {
	got, err := readInputs(nil, strings.NewReader("1 2\n3\n"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 3 || got[0] != "1" || got[2] != "3" {
		t.Fatalf("unexpected inputs: %v", got)
	}

	got, err = readInputs([]string{"9"}, strings.NewReader("ignored"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 1 || got[0] != "9" {
		t.Fatalf("args should win over stdin, got %v", got)
	}
}

func TestParseEpoch(t *testing.T) {
	if _, err := parseEpoch("2024-01-01T00:00:00Z"); err != nil {
		t.Fatalf("RFC3339: %v", err)
	}
	got, err := parseEpoch("1704067200000")
	if err != nil {
		t.Fatalf("unix ms: %v", err)
	}
	if got.UTC().Year() != 2024 {
		t.Fatalf("unexpected epoch %v", got)
	}
	if _, err := parseEpoch("yesterday"); err == nil {
		t.Fatal("expected error for garbage epoch")
	}
}
