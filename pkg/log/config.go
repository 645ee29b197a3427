package log

import (
	"fmt"
	"strings"
)

// Config declaratively describes a logger.
type Config struct {
	// Level is the minimum level name: debug, info, warn, error, fatal.
	Level string `json:"level" yaml:"level"`
	// Format selects the formatter: "text" or "json" (default json).
	Format string `json:"format" yaml:"format"`
	// File, when set, appends entries to this path in addition to the
	// console.
	File string `json:"file,omitempty" yaml:"file,omitempty"`
	// Discard suppresses all output. Wins over File.
	Discard bool `json:"discard,omitempty" yaml:"discard,omitempty"`
	// RedactKeys masks the values of these field keys.
	RedactKeys []string `json:"redact_keys,omitempty" yaml:"redact_keys,omitempty"`
	// SampleInitial/SampleThereafter enable per-message sampling: keep the
	// first SampleInitial occurrences, then one in every SampleThereafter.
	SampleInitial    int `json:"sample_initial,omitempty" yaml:"sample_initial,omitempty"`
	SampleThereafter int `json:"sample_thereafter,omitempty" yaml:"sample_thereafter,omitempty"`
}

// ParseLevel converts a level name to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return InfoLevel, nil
	case "debug", "trace":
		return DebugLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	case "fatal":
		return FatalLevel, nil
	default:
		return InfoLevel, fmt.Errorf("log: unknown level %q", s)
	}
}

// ApplyConfig builds a logger from cfg.
func ApplyConfig(cfg *Config) (Logger, error) {
	if cfg == nil {
		return NewLogger(), nil
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	options := []LoggerOption{WithLevel(level)}

	switch strings.ToLower(cfg.Format) {
	case "", "json":
		options = append(options, WithFormatter(&JSONFormatter{}))
	case "text":
		options = append(options, WithFormatter(&TextFormatter{}))
	default:
		return nil, fmt.Errorf("log: unknown format %q", cfg.Format)
	}

	if cfg.Discard {
		options = append(options, WithOutput(NullOutput{}))
	} else {
		options = append(options, WithOutput(NewConsoleOutput()))
		if cfg.File != "" {
			fo, err := NewFileOutput(cfg.File)
			if err != nil {
				return nil, err
			}
			options = append(options, WithOutput(fo))
		}
	}

	if len(cfg.RedactKeys) > 0 {
		options = append(options, WithRedaction(cfg.RedactKeys...))
	}
	if cfg.SampleThereafter > 0 {
		options = append(options, WithSampling(cfg.SampleInitial, cfg.SampleThereafter))
	}

	return NewLogger(options...), nil
}
