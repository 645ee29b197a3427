package generator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/imkira/go-observer"

	"github.com/max-niederman/beryl/pkg/crystal"
)

var (
	// ErrIDOutOfRange reports a generator id wider than 12 bits.
	ErrIDOutOfRange = errors.New("generator: id out of range")
	// ErrEpochUnset reports a zero epoch.
	ErrEpochUnset = errors.New("generator: epoch must be set")
	// ErrEpochInFuture reports a clock that has not reached the epoch yet.
	// Instants before the epoch have no encoding.
	ErrEpochInFuture = errors.New("generator: clock reads before the epoch")
	// ErrBadRestore reports a snapshot with out-of-range fields.
	ErrBadRestore = errors.New("generator: restore snapshot out of range")
	// ErrTimestampExhausted reports that the 42-bit millisecond space since
	// the epoch is spent. The instance cannot recover; redeploying with a
	// later epoch is the only way forward.
	ErrTimestampExhausted = errors.New("generator: timestamp space exhausted")
)

// State is a restorable snapshot of a generator's progress. LastTimestamp is
// -1 until the first crystal is emitted.
type State struct {
	LastTimestamp int64  `json:"last_timestamp"`
	LastCounter   uint16 `json:"last_counter"`
}

// Options configure a Generator.
type Options struct {
	// ID is the 12-bit generator identity. Generators minting concurrently
	// against the same epoch must use distinct IDs.
	ID uint16
	// Epoch anchors the timestamp field. Every generator whose crystals mix
	// must share it, and it must not move once crystals exist.
	Epoch time.Time
	// Clock overrides the time source. Nil means the system clock.
	Clock Clock
	// Restore resumes from a persisted snapshot. Nil starts fresh.
	Restore *State
}

// Generator mints crystals for one identity. The (last millisecond, counter)
// pair is owned exclusively by the instance and every update happens under
// one mutex, so all methods are safe for concurrent use.
type Generator struct {
	id    uint16
	epoch time.Time
	clock Clock

	mu      sync.Mutex
	lastMs  int64
	counter uint16

	signals observer.Property
}

// New validates the options and returns a ready generator.
func New(opts Options) (*Generator, error) {
	if opts.ID > crystal.MaxGeneratorID {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrIDOutOfRange, opts.ID, crystal.MaxGeneratorID)
	}
	if opts.Epoch.IsZero() {
		return nil, ErrEpochUnset
	}
	clk := opts.Clock
	if clk == nil {
		clk = SystemClock()
	}
	if clk.Now().Before(opts.Epoch) {
		return nil, fmt.Errorf("%w: epoch %s", ErrEpochInFuture, opts.Epoch.UTC().Format(time.RFC3339))
	}

	g := &Generator{
		id:      opts.ID,
		epoch:   opts.Epoch,
		clock:   clk,
		lastMs:  -1,
		signals: observer.NewProperty(nil),
	}
	if opts.Restore != nil {
		if opts.Restore.LastTimestamp < -1 || opts.Restore.LastTimestamp > crystal.MaxTimestamp {
			return nil, fmt.Errorf("%w: last_timestamp %d", ErrBadRestore, opts.Restore.LastTimestamp)
		}
		if opts.Restore.LastCounter > crystal.MaxCounter {
			return nil, fmt.Errorf("%w: last_counter %d", ErrBadRestore, opts.Restore.LastCounter)
		}
		g.lastMs = opts.Restore.LastTimestamp
		g.counter = opts.Restore.LastCounter
	}
	return g, nil
}

// ID returns the generator's 12-bit identity.
func (g *Generator) ID() uint16 { return g.id }

// Epoch returns the instant the timestamp field counts from.
func (g *Generator) Epoch() time.Time { return g.epoch }

// State snapshots the generator's progress for external persistence. A
// snapshot restored after downtime behaves like a clock reading: a past
// LastTimestamp is overtaken by the clock, a future one is held exactly like
// a regression.
func (g *Generator) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return State{LastTimestamp: g.lastMs, LastCounter: g.counter}
}

// Observe returns a stream of diagnostic signals. Streams never block the
// generator; a slow consumer skips to the latest signal. The stream's value
// is nil until the first signal, then *Signal.
func (g *Generator) Observe() observer.Stream { return g.signals.Observe() }

// Next mints one crystal.
//
// Within one millisecond the counter runs 0..1023; when it is spent, Next
// blocks until the clock passes that millisecond, honoring ctx for
// abandonment. A clock regression is absorbed by holding the last emitted
// millisecond, so timestamps never decrease and the full 64-bit values
// strictly increase. Only timestamp exhaustion and pre-epoch clocks surface
// as errors.
func (g *Generator) Next(ctx context.Context) (crystal.Crystal, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.nowMs()
	if ms > crystal.MaxTimestamp {
		return 0, fmt.Errorf("%w: %dms since epoch", ErrTimestampExhausted, ms)
	}
	if ms < 0 && g.lastMs < 0 {
		return 0, fmt.Errorf("%w: by %dms", ErrEpochInFuture, -ms)
	}

	if ms < g.lastMs {
		// Clock regressed. Hold the last emitted millisecond and keep
		// minting from its counter space.
		g.publish(Signal{Type: SignalClockRegression, ObservedMs: ms, HeldMs: g.lastMs})
		ms = g.lastMs
	}

	if ms == g.lastMs {
		if g.counter >= crystal.MaxCounter {
			g.publish(Signal{Type: SignalCounterOverflowWait, ObservedMs: ms, HeldMs: g.lastMs})
			next, err := g.waitNextMs(ctx)
			if err != nil {
				return 0, err
			}
			g.lastMs = next
			g.counter = 0
		} else {
			g.counter++
		}
	} else {
		g.lastMs = ms
		g.counter = 0
	}

	return crystal.Pack(g.lastMs, g.id, g.counter), nil
}

// waitNextMs blocks until the clock passes lastMs. The mutex stays held:
// callers queued behind the wait then observe the fresh millisecond instead
// of racing into the exhausted one. On ctx cancellation or exhaustion the
// generator state is left untouched.
func (g *Generator) waitNextMs(ctx context.Context) (int64, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("generator: wait for next millisecond: %w", err)
		}
		ms := g.nowMs()
		if ms > crystal.MaxTimestamp {
			return 0, fmt.Errorf("%w: %dms since epoch", ErrTimestampExhausted, ms)
		}
		if ms > g.lastMs {
			return ms, nil
		}
		g.clock.Sleep(time.Millisecond / 8)
	}
}

func (g *Generator) nowMs() int64 {
	return g.clock.Now().Sub(g.epoch).Milliseconds()
}

func (g *Generator) publish(s Signal) {
	s.GeneratorID = g.id
	s.At = g.clock.Now()
	g.signals.Update(&s)
}
