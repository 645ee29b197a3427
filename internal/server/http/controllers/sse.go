package controllers

import (
	"encoding/json"
	"net/http"
)

// sseSink writes JSON payloads as Server-Sent Events.
type sseSink struct {
	w http.ResponseWriter
}

// Send JSON-encodes v and writes it as one SSE data event: the "data: "
// prefix followed by two newlines, as the SSE format requires.
func (s sseSink) Send(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := s.w.Write([]byte("data: ")); err != nil {
		return err
	}
	if _, err := s.w.Write(b); err != nil {
		return err
	}
	if _, err := s.w.Write([]byte("\n\n")); err != nil {
		return err
	}
	return nil
}

// Flush flushes the HTTP response writer if it supports flushing, so events
// reach the client immediately.
func (s sseSink) Flush() {
	if f, ok := s.w.(http.Flusher); ok {
		f.Flush()
	}
}
