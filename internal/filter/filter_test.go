package filter

import (
	"testing"
	"time"

	"github.com/max-niederman/beryl/pkg/crystal"
)

var testEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestEmptyExpressionMatchesAll(t *testing.T) {
	f, err := New("")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !f.Eval(crystal.Pack(1, 2, 3), testEpoch) {
		t.Fatalf("empty filter must match")
	}

	var zero Filter
	if !zero.Eval(crystal.Pack(1, 2, 3), testEpoch) {
		t.Fatalf("zero filter must match")
	}
}

func TestFieldFilters(t *testing.T) {
	cases := []struct {
		expr  string
		c     crystal.Crystal
		match bool
	}{
		{"generator == 7", crystal.Pack(100, 7, 0), true},
		{"generator == 7", crystal.Pack(100, 8, 0), false},
		{"counter >= 10 && counter < 20", crystal.Pack(0, 0, 15), true},
		{"counter >= 10 && counter < 20", crystal.Pack(0, 0, 25), false},
		{"timestamp > 50", crystal.Pack(100, 0, 0), true},
		{"raw > 0u", crystal.Pack(0, 0, 1), true},
		{"raw > 0u", crystal.Pack(0, 0, 0), false},
		{"time_ms >= 1704067200000", crystal.Pack(0, 0, 0), true},
		{"now_ms > time_ms", crystal.Pack(1, 0, 0), true},
	}
	for _, tc := range cases {
		f, err := New(tc.expr)
		if err != nil {
			t.Fatalf("compile %q: %v", tc.expr, err)
		}
		if got := f.Eval(tc.c, testEpoch); got != tc.match {
			t.Fatalf("%q on %v: got %v want %v", tc.expr, tc.c.Parts(), got, tc.match)
		}
	}
}

func TestCompileErrors(t *testing.T) {
	if _, err := New("generator =="); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := New("unknown_var == 1"); err == nil {
		t.Fatalf("expected check error for unknown variable")
	}
}

func TestNonBooleanResultIsNoMatch(t *testing.T) {
	f, err := New("timestamp + 1")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if f.Eval(crystal.Pack(5, 0, 0), testEpoch) {
		t.Fatalf("non-boolean result must not match")
	}
}
