// Package runtime wires storage, config, and generators into a single-node
// beryl instance. It exposes Open/Close, basic health checks, and the
// snapshot-aware generator registry used by higher-level services.
//
// Example:
//
//	cfg := config.Default()
//	rt, _ := runtime.Open(runtime.Options{DataDir: "./data", Fsync: pebblestore.FsyncModeAlways, Config: cfg})
//	defer rt.Close()
//	_ = rt.CheckHealth(context.Background())
//	g, _ := rt.OpenGenerator(uint16(cfg.GeneratorID))
//	c, _ := g.Next(context.Background())
package runtime
