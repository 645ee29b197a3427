package runtime

import (
	"context"
	"errors"
	"sync"
	"time"

	cfgpkg "github.com/max-niederman/beryl/internal/config"
	"github.com/max-niederman/beryl/internal/statestore"
	pebblestore "github.com/max-niederman/beryl/internal/storage/pebble"
	"github.com/max-niederman/beryl/pkg/generator"
)

// Options for building the Runtime.
type Options struct {
	DataDir       string
	Fsync         pebblestore.FsyncMode
	FsyncInterval time.Duration
	Config        cfgpkg.Config
}

// Runtime wires storage, config, and generators for a single-node instance.
// Generators are cached per id, so every caller asking for the same id works
// against the same instance and its single lock.
type Runtime struct {
	db     *pebblestore.DB
	states *statestore.Store
	config cfgpkg.Config
	epoch  time.Time

	mu   sync.Mutex
	gens map[uint16]*generator.Generator
}

// Open initializes the underlying storage and returns a Runtime.
func Open(opts Options) (*Runtime, error) {
	epoch, err := opts.Config.EpochTime()
	if err != nil {
		return nil, err
	}
	db, err := pebblestore.Open(pebblestore.Options{
		DataDir:       opts.DataDir,
		Fsync:         opts.Fsync,
		FsyncInterval: opts.FsyncInterval,
	})
	if err != nil {
		return nil, err
	}
	return &Runtime{
		db:     db,
		states: statestore.New(db),
		config: opts.Config,
		epoch:  epoch,
		gens:   make(map[uint16]*generator.Generator),
	}, nil
}

// Close saves every open generator's state and closes storage.
func (r *Runtime) Close() error {
	if r.db == nil {
		return nil
	}
	saveErr := r.SaveAll()
	closeErr := r.db.Close()
	if saveErr != nil {
		return saveErr
	}
	return closeErr
}

// CheckHealth performs a simple health check.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.db == nil {
		return errors.New("db not open")
	}
	it, err := r.db.NewIter(nil)
	if err != nil {
		return err
	}
	it.Close()
	return nil
}

// OpenGenerator returns the generator for id, resuming from a stored
// snapshot when one exists. Repeated calls with the same id return the same
// instance. A snapshot taken against a different epoch refuses to load.
func (r *Runtime) OpenGenerator(id uint16) (*generator.Generator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g, ok := r.gens[id]; ok {
		return g, nil
	}
	snap, err := r.states.Load(id, r.epoch)
	if err != nil {
		return nil, err
	}
	g, err := generator.New(generator.Options{ID: id, Epoch: r.epoch, Restore: snap})
	if err != nil {
		return nil, err
	}
	r.gens[id] = g
	return g, nil
}

// SaveGenerator snapshots one open generator to the state store.
func (r *Runtime) SaveGenerator(id uint16) error {
	r.mu.Lock()
	g, ok := r.gens[id]
	r.mu.Unlock()
	if !ok {
		return nil
	}
	return r.states.Save(id, r.epoch, g.State())
}

// SaveAll snapshots every open generator.
func (r *Runtime) SaveAll() error {
	r.mu.Lock()
	ids := make([]uint16, 0, len(r.gens))
	for id := range r.gens {
		ids = append(ids, id)
	}
	r.mu.Unlock()

	var firstErr error
	for _, id := range ids {
		if err := r.SaveGenerator(id); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// States exposes the snapshot store.
func (r *Runtime) States() *statestore.Store { return r.states }

// DB exposes the underlying DB for advanced operations (internal use only).
func (r *Runtime) DB() *pebblestore.DB { return r.db }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }

// Epoch returns the configured epoch instant.
func (r *Runtime) Epoch() time.Time { return r.epoch }
