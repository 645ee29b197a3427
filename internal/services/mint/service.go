package mintsvc

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/imkira/go-observer"

	"github.com/max-niederman/beryl/internal/filter"
	"github.com/max-niederman/beryl/internal/runtime"
	"github.com/max-niederman/beryl/pkg/crystal"
	"github.com/max-niederman/beryl/pkg/generator"
	logpkg "github.com/max-niederman/beryl/pkg/log"
)

// ErrBatchTooLarge reports a mint request above the configured cap.
var ErrBatchTooLarge = errors.New("mint: batch count above configured maximum")

// Service owns the node's generator. One instance runs per process; the HTTP
// server and any embedding caller share it. Mint is safe for concurrent use
// because the generator serializes emissions internally.
type Service struct {
	rt     *runtime.Runtime
	gen    *generator.Generator
	logger logpkg.Logger

	batchMax  int
	saveEvery time.Duration

	minted        atomic.Uint64
	overflowWaits atomic.Uint64
	regressions   atomic.Uint64

	stop     chan struct{}
	stopOnce sync.Once
	done     sync.WaitGroup
}

// New returns a Service using a default logger.
func New(rt *runtime.Runtime) (*Service, error) {
	return NewWithLogger(rt, nil)
}

// NewWithLogger constructs the service with an injected logger. It opens the
// runtime's generator (resuming any stored snapshot) and starts the signal
// watcher and the periodic state flusher.
func NewWithLogger(rt *runtime.Runtime, logger logpkg.Logger) (*Service, error) {
	if logger == nil {
		logger = logpkg.NewLogger().With(logpkg.Component("mint"))
	}
	cfg := rt.Config()
	if cfg.GeneratorID < 0 || cfg.GeneratorID > crystal.MaxGeneratorID {
		return nil, fmt.Errorf("%w: generatorId %d", generator.ErrIDOutOfRange, cfg.GeneratorID)
	}
	gen, err := rt.OpenGenerator(uint16(cfg.GeneratorID))
	if err != nil {
		return nil, err
	}
	s := &Service{
		rt:        rt,
		gen:       gen,
		logger:    logger,
		batchMax:  cfg.MintBatchMax,
		saveEvery: time.Duration(cfg.StateSaveIntervalMs) * time.Millisecond,
		stop:      make(chan struct{}),
	}
	s.done.Add(1)
	go s.watchSignals()
	if s.saveEvery > 0 {
		s.done.Add(1)
		go s.flushLoop()
	}
	return s, nil
}

// Close stops the background goroutines and saves the generator state once
// more. Safe to call multiple times.
func (s *Service) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	s.done.Wait()
	return s.rt.SaveGenerator(s.gen.ID())
}

// Mint emits count crystals. The count is capped by config; a request above
// the cap is rejected rather than clamped so callers notice misconfiguration.
func (s *Service) Mint(ctx context.Context, count int) ([]crystal.Crystal, error) {
	if count <= 0 {
		return nil, fmt.Errorf("mint: count must be positive, got %d", count)
	}
	if count > s.batchMax {
		return nil, fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, count, s.batchMax)
	}
	out := make([]crystal.Crystal, 0, count)
	for i := 0; i < count; i++ {
		c, err := s.gen.Next(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	s.minted.Add(uint64(count))
	return out, nil
}

// DecodeAll decodes each input string, applying an optional CEL filter over
// the decoded fields. Any 64-bit number decodes; only non-numeric inputs get
// a per-item error. The filter expression, when invalid, is the one error the
// whole call can return.
func (s *Service) DecodeAll(inputs []string, filterExpr string) ([]Decoded, error) {
	f, err := filter.New(filterExpr)
	if err != nil {
		return nil, fmt.Errorf("mint: compile filter: %w", err)
	}
	epoch := s.rt.Epoch()
	out := make([]Decoded, 0, len(inputs))
	for _, in := range inputs {
		c, err := crystal.Parse(in)
		if err != nil {
			out = append(out, Decoded{Input: in, Error: err.Error()})
			continue
		}
		parts := c.Parts()
		out = append(out, Decoded{
			Input:   in,
			Crystal: c,
			Parts:   &parts,
			TimeMs:  c.Time(epoch).UnixMilli(),
			Matched: f.Eval(c, epoch),
		})
	}
	return out, nil
}

// Info reports the minting configuration and the bit layout.
func (s *Service) Info() Info {
	epoch := s.rt.Epoch()
	return Info{
		GeneratorID:   int(s.gen.ID()),
		Epoch:         epoch.UTC().Format(time.RFC3339),
		EpochMs:       epoch.UnixMilli(),
		TimestampBits: crystal.TimestampBits,
		GeneratorBits: crystal.GeneratorBits,
		CounterBits:   crystal.CounterBits,
		MaxTimestamp:  crystal.MaxTimestamp,
		MaxGenerator:  crystal.MaxGeneratorID,
		MaxCounter:    crystal.MaxCounter,
		MintBatchMax:  s.batchMax,
	}
}

// Stats returns the running counters.
func (s *Service) Stats() Stats {
	return Stats{
		Minted:        s.minted.Load(),
		OverflowWaits: s.overflowWaits.Load(),
		Regressions:   s.regressions.Load(),
	}
}

// State snapshots the generator for external persistence.
func (s *Service) State() generator.State { return s.gen.State() }

// Observe returns a fresh stream of the generator's diagnostic signals.
func (s *Service) Observe() observer.Stream { return s.gen.Observe() }

// watchSignals tallies diagnostic signals and logs them. Regressions are
// worth an operator's attention; overflow waits only mean the generator ran
// at capacity for a millisecond.
func (s *Service) watchSignals() {
	defer s.done.Done()
	stream := s.gen.Observe()
	for {
		select {
		case <-s.stop:
			return
		case <-stream.Changes():
		}
		sig, ok := stream.Next().(*generator.Signal)
		if !ok || sig == nil {
			continue
		}
		switch sig.Type {
		case generator.SignalClockRegression:
			s.regressions.Add(1)
			s.logger.Warn("clock regression held",
				logpkg.Int64("observed_ms", sig.ObservedMs),
				logpkg.Int64("held_ms", sig.HeldMs))
		case generator.SignalCounterOverflowWait:
			s.overflowWaits.Add(1)
			s.logger.Debug("counter overflow, waiting for next millisecond",
				logpkg.Int64("held_ms", sig.HeldMs))
		}
	}
}

// flushLoop saves generator state on the configured interval so a crash
// loses at most one interval of progress.
func (s *Service) flushLoop() {
	defer s.done.Done()
	t := time.NewTicker(s.saveEvery)
	defer t.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-t.C:
			if err := s.rt.SaveGenerator(s.gen.ID()); err != nil {
				s.logger.Error("save generator state", logpkg.Err(err))
			}
		}
	}
}
