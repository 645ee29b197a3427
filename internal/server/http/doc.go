// Package httpserver provides the REST gateway for Beryl: JSON endpoints for
// minting and decoding crystals, generator state and stats, plus an SSE
// stream of the generator's diagnostic signals.
//
// Example:
//
//	rt, _ := runtime.Open(runtime.Options{DataDir: "./data", Fsync: pebblestore.FsyncModeInterval, Config: config.Default()})
//	s, _ := httpserver.New(rt)
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	_ = s.ListenAndServe(ctx, ":8080")
package httpserver
