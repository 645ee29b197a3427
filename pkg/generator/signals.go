package generator

import "time"

// SignalType names a diagnostic event published by a generator.
type SignalType int

const (
	// SignalClockRegression fires when the clock reads earlier than the last
	// emitted millisecond and the generator holds its timestamp instead.
	SignalClockRegression SignalType = iota
	// SignalCounterOverflowWait fires when a millisecond's counter space is
	// exhausted and the generator blocks for the next tick.
	SignalCounterOverflowWait
)

func (t SignalType) String() string {
	switch t {
	case SignalClockRegression:
		return "clock_regression"
	case SignalCounterOverflowWait:
		return "counter_overflow_wait"
	default:
		return "unknown"
	}
}

// MarshalText renders the type name so signals serialize readably.
func (t SignalType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// Signal describes one diagnostic event. Signals report conditions the
// generator absorbs transparently; they exist so operators can notice a
// misbehaving clock or a generator running hot.
type Signal struct {
	Type        SignalType `json:"type"`
	GeneratorID uint16     `json:"generator_id"`
	// ObservedMs is what the clock read, in ms since the epoch.
	ObservedMs int64 `json:"observed_ms"`
	// HeldMs is the millisecond the generator kept minting from.
	HeldMs int64 `json:"held_ms"`
	// At is the wall time the signal was published.
	At time.Time `json:"at"`
}
