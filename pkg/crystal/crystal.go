package crystal

import (
	"fmt"
	"strconv"
	"time"
)

// Field widths and derived layout constants. The three widths sum to 64, so
// every uint64 value is a structurally valid crystal.
const (
	TimestampBits = 42
	GeneratorBits = 12
	CounterBits   = 10

	generatorShift = CounterBits
	timestampShift = GeneratorBits + CounterBits

	// MaxTimestamp is the largest encodable millisecond offset (~139 years).
	MaxTimestamp = 1<<TimestampBits - 1
	// MaxGeneratorID is the largest valid generator id (4095).
	MaxGeneratorID = 1<<GeneratorBits - 1
	// MaxCounter is the largest per-millisecond counter value (1023).
	MaxCounter = 1<<CounterBits - 1
)

// Crystal is a packed 64-bit identifier.
type Crystal uint64

// Pack encodes the three fields into a crystal, masking each to its width.
// Out-of-range inputs are silently truncated; use FromParts to have them
// rejected instead.
func Pack(ts int64, gen, ctr uint16) Crystal {
	return Crystal((uint64(ts)&MaxTimestamp)<<timestampShift |
		(uint64(gen)&MaxGeneratorID)<<generatorShift |
		uint64(ctr)&MaxCounter)
}

// FromParts encodes the three fields, returning an error if any is out of
// range for its width.
func FromParts(ts int64, gen, ctr uint16) (Crystal, error) {
	if ts < 0 || ts > MaxTimestamp {
		return 0, fmt.Errorf("crystal: timestamp %d outside [0, %d]", ts, int64(MaxTimestamp))
	}
	if gen > MaxGeneratorID {
		return 0, fmt.Errorf("crystal: generator id %d outside [0, %d]", gen, MaxGeneratorID)
	}
	if ctr > MaxCounter {
		return 0, fmt.Errorf("crystal: counter %d outside [0, %d]", ctr, MaxCounter)
	}
	return Pack(ts, gen, ctr), nil
}

// Timestamp returns the millisecond offset since the minting epoch.
func (c Crystal) Timestamp() int64 { return int64(c >> timestampShift) }

// Generator returns the id of the generator that minted the crystal.
func (c Crystal) Generator() uint16 { return uint16(c >> generatorShift & MaxGeneratorID) }

// Counter returns the per-millisecond counter value.
func (c Crystal) Counter() uint16 { return uint16(c & MaxCounter) }

// Parts holds the decoded fields of a crystal.
type Parts struct {
	Timestamp int64  `json:"timestamp"`
	Generator uint16 `json:"generator"`
	Counter   uint16 `json:"counter"`
}

// Parts decodes all three fields at once.
func (c Crystal) Parts() Parts {
	return Parts{Timestamp: c.Timestamp(), Generator: c.Generator(), Counter: c.Counter()}
}

// Int64 reinterprets the crystal as a signed integer for storage formats
// without unsigned types. Values with the top timestamp bit set come out
// negative; FromInt64 reverses the mapping exactly.
func (c Crystal) Int64() int64 { return int64(c) }

// FromInt64 reinterprets a signed integer written by Int64.
func FromInt64(v int64) Crystal { return Crystal(v) }

// String renders the crystal as a decimal string. Crystals exceed 2^53, so
// the string form is what should cross JSON and JavaScript boundaries.
func (c Crystal) String() string { return strconv.FormatUint(uint64(c), 10) }

// Parse reads a decimal string produced by String.
func Parse(s string) (Crystal, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("crystal: parse %q: %w", s, err)
	}
	return Crystal(v), nil
}

// MarshalText implements encoding.TextMarshaler using the decimal form.
func (c Crystal) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Crystal) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// MarshalJSON renders the crystal as a quoted decimal string.
func (c Crystal) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// UnmarshalJSON accepts both the quoted string form and a bare JSON number.
func (c *Crystal) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return c.UnmarshalText([]byte(s))
}

// Time returns the absolute instant of the crystal's timestamp given the
// epoch it was minted against.
func (c Crystal) Time(epoch time.Time) time.Time {
	return epoch.Add(time.Duration(c.Timestamp()) * time.Millisecond)
}

// MinAt returns the smallest crystal any generator could mint at instant t.
// Useful as a lower bound when range-scanning crystal-keyed data.
func MinAt(epoch, t time.Time) Crystal {
	return Pack(t.Sub(epoch).Milliseconds(), 0, 0)
}

// MaxAt returns the largest crystal any generator could mint at instant t.
func MaxAt(epoch, t time.Time) Crystal {
	return Pack(t.Sub(epoch).Milliseconds(), MaxGeneratorID, MaxCounter)
}
