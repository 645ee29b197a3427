package crystal

import (
	"encoding/json"
	"testing"
	"time"
)

func TestPackRoundTrip(t *testing.T) {
	cases := []struct {
		ts  int64
		gen uint16
		ctr uint16
	}{
		{0, 0, 0},
		{1, 0, 1},
		{1446336000, 4095, 1023},
		{MaxTimestamp, MaxGeneratorID, MaxCounter},
		{MaxTimestamp, 0, 0},
		{0, MaxGeneratorID, 0},
		{0, 0, MaxCounter},
	}
	for _, c := range cases {
		cr := Pack(c.ts, c.gen, c.ctr)
		if got := cr.Timestamp(); got != c.ts {
			t.Fatalf("timestamp: got %d want %d", got, c.ts)
		}
		if got := cr.Generator(); got != c.gen {
			t.Fatalf("generator: got %d want %d", got, c.gen)
		}
		if got := cr.Counter(); got != c.ctr {
			t.Fatalf("counter: got %d want %d", got, c.ctr)
		}
	}
}

func TestPackMasksOutOfRange(t *testing.T) {
	// One past each field's max wraps to 0 without touching neighbors.
	cr := Pack(1<<TimestampBits, 1<<GeneratorBits, 1<<CounterBits)
	if cr.Timestamp() != 0 {
		t.Fatalf("timestamp not masked: %d", cr.Timestamp())
	}
	if cr.Generator() != 0 {
		t.Fatalf("generator not masked: %d", cr.Generator())
	}
	if cr.Counter() != 0 {
		t.Fatalf("counter not masked: %d", cr.Counter())
	}

	// Masking keeps only the low bits of each field.
	cr = Pack(MaxTimestamp+2, 0, 0)
	if cr.Timestamp() != 1 {
		t.Fatalf("expected truncation to 1, got %d", cr.Timestamp())
	}
}

func TestFromPartsValidates(t *testing.T) {
	if _, err := FromParts(-1, 0, 0); err == nil {
		t.Fatalf("expected error for negative timestamp")
	}
	if _, err := FromParts(MaxTimestamp+1, 0, 0); err == nil {
		t.Fatalf("expected error for timestamp overflow")
	}
	if _, err := FromParts(0, MaxGeneratorID+1, 0); err == nil {
		t.Fatalf("expected error for generator overflow")
	}
	if _, err := FromParts(0, 0, MaxCounter+1); err == nil {
		t.Fatalf("expected error for counter overflow")
	}
	cr, err := FromParts(42, 7, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cr != Pack(42, 7, 3) {
		t.Fatalf("checked and unchecked encodings disagree")
	}
}

func TestEveryValueDecodes(t *testing.T) {
	// The widths cover all 64 bits, so decode followed by re-pack is the
	// identity for arbitrary input.
	for _, v := range []uint64{0, 1, ^uint64(0), 0xdeadbeefcafebabe, 1 << 63} {
		cr := Crystal(v)
		p := cr.Parts()
		if Pack(p.Timestamp, p.Generator, p.Counter) != cr {
			t.Fatalf("re-pack of %d parts diverged", v)
		}
	}
}

func TestTimestampDominatesOrdering(t *testing.T) {
	earlier := Pack(100, MaxGeneratorID, MaxCounter)
	later := Pack(101, 0, 0)
	if !(later > earlier) {
		t.Fatalf("later millisecond must compare greater")
	}
}

func TestSignedBridge(t *testing.T) {
	if FromInt64(0) != 0 {
		t.Fatalf("zero must map to zero")
	}
	all := Crystal(^uint64(0))
	if all.Int64() != -1 {
		t.Fatalf("all-ones must map to -1, got %d", all.Int64())
	}
	if FromInt64(all.Int64()) != all {
		t.Fatalf("signed bridge not a bijection")
	}
}

func TestStringParse(t *testing.T) {
	cr := Pack(1234, 56, 7)
	got, err := Parse(cr.String())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != cr {
		t.Fatalf("round trip: got %v want %v", got, cr)
	}
	if _, err := Parse("not-a-crystal"); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := Parse("-1"); err == nil {
		t.Fatalf("expected parse error for negative input")
	}
}

func TestJSONUsesStrings(t *testing.T) {
	cr := Crystal(1<<63 | 12345)
	b, err := json.Marshal(cr)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"`+cr.String()+`"` {
		t.Fatalf("expected quoted decimal, got %s", b)
	}

	var fromString Crystal
	if err := json.Unmarshal(b, &fromString); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if fromString != cr {
		t.Fatalf("string round trip diverged")
	}

	// Bare numbers are accepted for callers that never left Go.
	var fromNumber Crystal
	if err := json.Unmarshal([]byte("12345"), &fromNumber); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if fromNumber != 12345 {
		t.Fatalf("number decode: got %v", fromNumber)
	}
}

func TestTimeBridge(t *testing.T) {
	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	at := epoch.Add(90 * time.Second)

	cr := Pack(90_000, 3, 0)
	if got := cr.Time(epoch); !got.Equal(at) {
		t.Fatalf("time: got %v want %v", got, at)
	}

	lo, hi := MinAt(epoch, at), MaxAt(epoch, at)
	if lo.Timestamp() != 90_000 || hi.Timestamp() != 90_000 {
		t.Fatalf("bounds have wrong timestamp")
	}
	if lo > cr || cr > hi {
		t.Fatalf("crystal outside [MinAt, MaxAt] for its instant")
	}
	if hi.Generator() != MaxGeneratorID || hi.Counter() != MaxCounter {
		t.Fatalf("MaxAt must saturate low fields")
	}
}
