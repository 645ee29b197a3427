package log

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// rebind rebuilds the slog bridge after construction or derivation so the
// handler sees this instance's level, pipeline, and base fields.
func (l *BaseLogger) rebind() {
	h := newBridgeHandler(l)
	h = h.withRedactions(l.redactKeys)
	h = h.withSampler(l.sampleInit, l.sampleEach)
	var handler slog.Handler = h
	if len(l.fields) > 0 {
		handler = handler.WithAttrs(attrsFromMap(l.fields))
	}
	l.slogLogger = slog.New(handler)
}

// derive returns a copy of the logger with extra fields merged in.
func (l *BaseLogger) derive(extra Fields) *BaseLogger {
	merged := make(Fields, len(l.fields)+len(extra))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	n := &BaseLogger{
		level:      l.level,
		fields:     merged,
		formatter:  l.formatter,
		outputs:    l.outputs,
		redactKeys: l.redactKeys,
		sampleInit: l.sampleInit,
		sampleEach: l.sampleEach,
	}
	n.rebind()
	return n
}

func (l *BaseLogger) log(level Level, msg string, fields []Field) {
	if level < l.level {
		return
	}
	l.slogLogger.LogAttrs(context.Background(), toSlogLevel(level), msg, attrsFromFieldSlice(fields)...)
}

func (l *BaseLogger) logf(level Level, format string, args []interface{}) {
	if level < l.level {
		return
	}
	l.slogLogger.LogAttrs(context.Background(), toSlogLevel(level), fmt.Sprintf(format, args...))
}

// Debug logs a message at debug level.
func (l *BaseLogger) Debug(msg string, fields ...Field) { l.log(DebugLevel, msg, fields) }

// Info logs a message at info level.
func (l *BaseLogger) Info(msg string, fields ...Field) { l.log(InfoLevel, msg, fields) }

// Warn logs a message at warn level.
func (l *BaseLogger) Warn(msg string, fields ...Field) { l.log(WarnLevel, msg, fields) }

// Error logs a message at error level.
func (l *BaseLogger) Error(msg string, fields ...Field) { l.log(ErrorLevel, msg, fields) }

// Fatal logs a message at fatal level and exits the process.
func (l *BaseLogger) Fatal(msg string, fields ...Field) {
	l.log(FatalLevel, msg, fields)
	os.Exit(1)
}

// Debugf logs a formatted message at debug level.
func (l *BaseLogger) Debugf(format string, args ...interface{}) { l.logf(DebugLevel, format, args) }

// Infof logs a formatted message at info level.
func (l *BaseLogger) Infof(format string, args ...interface{}) { l.logf(InfoLevel, format, args) }

// Warnf logs a formatted message at warn level.
func (l *BaseLogger) Warnf(format string, args ...interface{}) { l.logf(WarnLevel, format, args) }

// Errorf logs a formatted message at error level.
func (l *BaseLogger) Errorf(format string, args ...interface{}) { l.logf(ErrorLevel, format, args) }

// Fatalf logs a formatted message at fatal level and exits the process.
func (l *BaseLogger) Fatalf(format string, args ...interface{}) {
	l.logf(FatalLevel, format, args)
	os.Exit(1)
}

// With returns a derived logger carrying the extra fields.
func (l *BaseLogger) With(fields ...Field) Logger {
	if len(fields) == 0 {
		return l
	}
	extra := make(Fields, len(fields))
	for _, f := range fields {
		extra[f.Key] = f.Value
	}
	return l.derive(extra)
}

// WithFields is the map form of With.
func (l *BaseLogger) WithFields(fields Fields) Logger {
	if len(fields) == 0 {
		return l
	}
	return l.derive(fields)
}

// WithContext copies known request metadata out of ctx into fields.
func (l *BaseLogger) WithContext(ctx context.Context) Logger {
	return l.WithFields(ContextExtractor(ctx))
}

// WithComponent tags logs with a component name.
func (l *BaseLogger) WithComponent(component string) Logger {
	return l.derive(Fields{ComponentKey: component})
}

// SetLevel sets the minimum log level.
func (l *BaseLogger) SetLevel(level Level) { l.level = level }

// GetLevel returns the current minimum log level.
func (l *BaseLogger) GetLevel() Level { return l.level }
