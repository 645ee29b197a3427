package log

import (
	stdlog "log"
	"strings"
)

type stdlogWriter struct {
	logger Logger
	level  Level
}

func (w *stdlogWriter) Write(p []byte) (int, error) {
	msg := strings.TrimRight(string(p), "\n")
	switch w.level {
	case DebugLevel:
		w.logger.Debug(msg)
	case WarnLevel:
		w.logger.Warn(msg)
	case ErrorLevel, FatalLevel:
		w.logger.Error(msg)
	default:
		w.logger.Info(msg)
	}
	return len(p), nil
}

// ToStdLogger returns a standard library *log.Logger whose output is routed
// through l at the given level. Useful for libraries that only accept the
// stdlib logger.
func ToStdLogger(l Logger, level Level) *stdlog.Logger {
	return stdlog.New(&stdlogWriter{logger: l, level: level}, "", 0)
}

// RedirectStdLog routes the stdlib default logger through l at info level.
// Flags and prefix are cleared so entries are not double-decorated.
func RedirectStdLog(l Logger) {
	stdlog.SetFlags(0)
	stdlog.SetPrefix("")
	stdlog.SetOutput(&stdlogWriter{logger: l, level: InfoLevel})
}
