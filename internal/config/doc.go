// Package config provides loading and environment overlay for beryl runtime
// configuration. It exposes a Default() baseline, file loading for JSON and
// YAML, and a BERYL_* environment overlay.
//
// Example:
//
//	cfg, err := config.Load("/etc/beryl.yaml")
//	if err != nil { ... }
//	config.FromEnv(&cfg)
//	if err := cfg.Validate(); err != nil { ... }
//	rt, _ := runtime.Open(runtime.Options{DataDir: cfg.DataDir, Config: cfg})
//	defer rt.Close()
package config
