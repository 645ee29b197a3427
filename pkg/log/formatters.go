package log

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

const defaultTimestampFormat = time.RFC3339Nano

// JSONFormatter renders entries as single-line JSON objects with ts, level,
// msg, and the entry's fields at top level.
type JSONFormatter struct {
	// TimestampFormat overrides RFC3339Nano.
	TimestampFormat string
	// IncludeCaller adds the emitting file:line when known.
	IncludeCaller bool
}

// Format implements Formatter.
func (f *JSONFormatter) Format(entry *Entry) ([]byte, error) {
	tsFormat := f.TimestampFormat
	if tsFormat == "" {
		tsFormat = defaultTimestampFormat
	}

	m := make(map[string]interface{}, len(entry.Fields)+4)
	for k, v := range entry.Fields {
		m[k] = normalizeValue(v)
	}
	m["ts"] = entry.Timestamp.Format(tsFormat)
	m["level"] = entry.Level.String()
	m["msg"] = entry.Message
	if f.IncludeCaller && entry.Caller != "" {
		m["caller"] = entry.Caller
	}

	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("log: format entry: %w", err)
	}
	return append(b, '\n'), nil
}

// TextFormatter renders entries as "ts LEVEL msg key=value ..." with keys in
// stable order.
type TextFormatter struct {
	// TimestampFormat overrides RFC3339Nano.
	TimestampFormat string
	// IncludeCaller appends the emitting file:line when known.
	IncludeCaller bool
}

// Format implements Formatter.
func (f *TextFormatter) Format(entry *Entry) ([]byte, error) {
	tsFormat := f.TimestampFormat
	if tsFormat == "" {
		tsFormat = defaultTimestampFormat
	}

	var b strings.Builder
	b.WriteString(entry.Timestamp.Format(tsFormat))
	b.WriteByte(' ')
	b.WriteString(entry.Level.String())
	b.WriteByte(' ')
	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Fields))
	for k := range entry.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(renderValue(entry.Fields[k]))
	}

	if f.IncludeCaller && entry.Caller != "" {
		b.WriteString(" caller=")
		b.WriteString(entry.Caller)
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

func normalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case error:
		return val.Error()
	case time.Duration:
		return val.String()
	default:
		return v
	}
}

func renderValue(v interface{}) string {
	switch val := normalizeValue(v).(type) {
	case string:
		if strings.ContainsAny(val, " =\"") {
			return fmt.Sprintf("%q", val)
		}
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}
