package statestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"

	pebblestore "github.com/max-niederman/beryl/internal/storage/pebble"
	"github.com/max-niederman/beryl/pkg/generator"
)

// ErrEpochMismatch reports a snapshot taken against a different epoch than
// the one configured now.
var ErrEpochMismatch = errors.New("statestore: snapshot epoch differs from configured epoch")

// Record is the persisted form of one generator's snapshot.
type Record struct {
	GeneratorID   uint16 `json:"generatorId"`
	EpochMs       int64  `json:"epochMs"`
	LastTimestamp int64  `json:"lastTimestamp"`
	LastCounter   uint16 `json:"lastCounter"`
	SavedAtMs     int64  `json:"savedAtMs"`
}

// Store reads and writes generator snapshots.
type Store struct {
	db *pebblestore.DB
}

// New wraps a database handle.
func New(db *pebblestore.DB) *Store { return &Store{db: db} }

// Save persists the snapshot for a generator. Last write wins; the caller is
// responsible for saving monotonically (the generator's own state only moves
// forward, so saving the current State is always safe).
func (s *Store) Save(id uint16, epoch time.Time, st generator.State) error {
	rec := Record{
		GeneratorID:   id,
		EpochMs:       epoch.UnixMilli(),
		LastTimestamp: st.LastTimestamp,
		LastCounter:   st.LastCounter,
		SavedAtMs:     time.Now().UnixMilli(),
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("statestore: encode snapshot: %w", err)
	}
	return s.db.Set(KeyState(id), b)
}

// Load returns the snapshot for a generator, or nil when none exists. A
// snapshot recorded against a different epoch yields ErrEpochMismatch rather
// than a silently wrong resume.
func (s *Store) Load(id uint16, epoch time.Time) (*generator.State, error) {
	b, err := s.db.Get(KeyState(id))
	if err != nil {
		if errors.Is(err, pebblestore.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("statestore: decode snapshot for generator %d: %w", id, err)
	}
	if rec.EpochMs != epoch.UnixMilli() {
		return nil, fmt.Errorf("%w: snapshot %d, configured %d", ErrEpochMismatch, rec.EpochMs, epoch.UnixMilli())
	}
	return &generator.State{LastTimestamp: rec.LastTimestamp, LastCounter: rec.LastCounter}, nil
}

// Delete removes the snapshot for a generator.
func (s *Store) Delete(id uint16) error {
	return s.db.Delete(KeyState(id))
}

// List returns every stored snapshot record in id order.
func (s *Store) List() ([]Record, error) {
	lower, upper := PrefixAll()
	it, err := s.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var out []Record
	for ok := it.First(); ok; ok = it.Next() {
		var rec Record
		if err := json.Unmarshal(it.Value(), &rec); err != nil {
			return nil, fmt.Errorf("statestore: decode record at %q: %w", it.Key(), err)
		}
		out = append(out, rec)
	}
	if err := it.Error(); err != nil {
		return nil, err
	}
	return out, nil
}
