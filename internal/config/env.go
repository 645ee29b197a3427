package config

import (
	"os"
	"strconv"
)

// FromEnv overlays BERYL_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("BERYL_GENERATOR_ID"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.GeneratorID = n
		}
	}
	if v := os.Getenv("BERYL_EPOCH"); v != "" {
		cfg.Epoch = v
	}
	if v := os.Getenv("BERYL_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("BERYL_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("BERYL_FSYNC"); v != "" {
		cfg.Fsync = v
	}
	if v := os.Getenv("BERYL_FSYNC_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.FsyncIntervalMs = n
		}
	}
	if v := os.Getenv("BERYL_STATE_SAVE_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.StateSaveIntervalMs = n
		}
	}
	if v := os.Getenv("BERYL_MINT_BATCH_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MintBatchMax = n
		}
	}
	if v := os.Getenv("BERYL_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("BERYL_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}
