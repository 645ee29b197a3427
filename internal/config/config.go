package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/max-niederman/beryl/pkg/crystal"
	"github.com/max-niederman/beryl/pkg/log"
)

// DefaultEpoch anchors timestamps when no epoch is configured. Changing it on
// a deployment that already minted crystals breaks ordering, so treat it as
// write-once.
const DefaultEpoch = "2024-01-01T00:00:00Z"

// Config is the top-level configuration loaded from file/env.
type Config struct {
	// GeneratorID is this node's 12-bit identity.
	GeneratorID int `json:"generatorId" yaml:"generatorId"`
	// Epoch is the instant timestamps count from, as RFC3339 or unix
	// milliseconds.
	Epoch    string `json:"epoch" yaml:"epoch"`
	DataDir  string `json:"dataDir" yaml:"dataDir"`
	HTTPAddr string `json:"httpAddr" yaml:"httpAddr"`
	// Fsync selects the durability mode for the state store: always,
	// interval, or never.
	Fsync           string `json:"fsync" yaml:"fsync"`
	FsyncIntervalMs int    `json:"fsyncIntervalMs" yaml:"fsyncIntervalMs"`
	// StateSaveIntervalMs is how often generator state is flushed to the
	// store while minting.
	StateSaveIntervalMs int `json:"stateSaveIntervalMs" yaml:"stateSaveIntervalMs"`
	// MintBatchMax caps the count of one mint request.
	MintBatchMax int `json:"mintBatchMax" yaml:"mintBatchMax"`

	Log log.Config `json:"log" yaml:"log"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		GeneratorID:         0,
		Epoch:               DefaultEpoch,
		DataDir:             DefaultDataDir(),
		HTTPAddr:            ":8080",
		Fsync:               "interval",
		FsyncIntervalMs:     5,
		StateSaveIntervalMs: 1000,
		MintBatchMax:        4096,
		Log:                 log.Config{Level: "info", Format: "json"},
	}
}

// Load reads configuration from a JSON or YAML file (by extension). If path
// is empty, returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	return cfg, nil
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	if c.GeneratorID < 0 || c.GeneratorID > crystal.MaxGeneratorID {
		return fmt.Errorf("config: generatorId %d outside [0, %d]", c.GeneratorID, crystal.MaxGeneratorID)
	}
	if _, err := c.EpochTime(); err != nil {
		return err
	}
	switch c.Fsync {
	case "always", "interval", "never":
	default:
		return fmt.Errorf("config: fsync %q not one of always, interval, never", c.Fsync)
	}
	if c.FsyncIntervalMs < 0 {
		return fmt.Errorf("config: fsyncIntervalMs must not be negative")
	}
	if c.StateSaveIntervalMs < 0 {
		return fmt.Errorf("config: stateSaveIntervalMs must not be negative")
	}
	if c.MintBatchMax <= 0 {
		return fmt.Errorf("config: mintBatchMax must be positive")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// EpochTime parses the configured epoch, accepting RFC3339 or a unix
// millisecond integer.
func (c *Config) EpochTime() (time.Time, error) {
	s := c.Epoch
	if s == "" {
		s = DefaultEpoch
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("config: epoch %q is neither RFC3339 nor unix milliseconds", s)
}
