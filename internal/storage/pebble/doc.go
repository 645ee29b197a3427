// Package pebblestore provides a thin wrapper around Pebble with fsync
// policy, snapshots, batches, and minimal metrics hooks. Beryl keeps
// generator state snapshots here; the write rate is low, so the wrapper
// favors clarity over batching cleverness.
//
// Usage:
//
//	db, err := pebblestore.Open(pebblestore.Options{
//	    DataDir: "./data",
//	    Fsync:   pebblestore.FsyncModeInterval,
//	})
//	if err != nil { /* handle */ }
//	defer db.Close()
//
//	_ = db.Set([]byte("k"), []byte("v"))
//	v, err := db.Get([]byte("k")) // errors.Is(err, pebblestore.ErrNotFound)
package pebblestore
