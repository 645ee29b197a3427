package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// ConsoleOutput writes formatted entries to a stream, stdout by default.
// Entries at error level and above go to the error stream when one is set.
type ConsoleOutput struct {
	mu        sync.Mutex
	Stream    io.Writer
	ErrStream io.Writer
}

// NewConsoleOutput returns a console output on stdout/stderr.
func NewConsoleOutput() *ConsoleOutput {
	return &ConsoleOutput{Stream: os.Stdout, ErrStream: os.Stderr}
}

// Write implements Output.
func (o *ConsoleOutput) Write(entry *Entry, formatted []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	w := o.Stream
	if w == nil {
		w = os.Stdout
	}
	if entry.Level >= ErrorLevel && o.ErrStream != nil {
		w = o.ErrStream
	}
	_, err := w.Write(formatted)
	return err
}

// Close implements Output. Console streams are not owned, so this is a no-op.
func (o *ConsoleOutput) Close() error { return nil }

// FileOutput appends formatted entries to a file.
type FileOutput struct {
	mu   sync.Mutex
	file *os.File
}

// NewFileOutput opens (creating if needed) the file at path for appending.
func NewFileOutput(path string) (*FileOutput, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("log: open output file: %w", err)
	}
	return &FileOutput{file: f}, nil
}

// Write implements Output.
func (o *FileOutput) Write(_ *Entry, formatted []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, err := o.file.Write(formatted)
	return err
}

// Close implements Output.
func (o *FileOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.file.Close()
}

// NullOutput discards everything. Useful in tests.
type NullOutput struct{}

// Write implements Output.
func (NullOutput) Write(*Entry, []byte) error { return nil }

// Close implements Output.
func (NullOutput) Close() error { return nil }
