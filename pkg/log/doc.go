// Package log provides beryl's structured logging facade.
//
// # Overview
//
// The package exposes a small Logger interface with leveled methods and a
// Field type for structured context. Internally it is backed by the standard
// library's slog via a bridge handler that preserves the formatter/outputs
// pipeline, so output stays consistent across the codebase while slog
// ecosystem handlers remain reachable.
//
// Quick start
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormatter(&log.TextFormatter{}),
//	    log.WithOutput(log.NewConsoleOutput()),
//	)
//	l = l.With(log.Component("server"), log.Str("addr", addr))
//	l.Info("server started", log.Int("port", 8080))
//
// # Configuration
//
// ApplyConfig builds a logger from a declarative Config: text or JSON
// formatting, console/file/null outputs, optional key redaction and
// per-message sampling.
//
// # Interop
//
// ToStdLogger and RedirectStdLog adapt code that expects the standard
// library *log.Logger onto this facade.
package log
