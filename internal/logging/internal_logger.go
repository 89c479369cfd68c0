package logging

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// InternalLogger is the narrow logging interface handed to library code
// (the run orchestrator) so it does not depend on zerolog directly.
type InternalLogger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

var _ InternalLogger = (*ZLogger)(nil)

type ZLogger struct {
	ZLog zerolog.Logger
}

func NewZLogger(zlog zerolog.Logger) ZLogger {
	return ZLogger{ZLog: zlog}
}

func (l ZLogger) Debug(format string, args ...any) {
	l.ZLog.Debug().Msgf(format, args...)
}

func (l ZLogger) Info(format string, args ...any) {
	l.ZLog.Info().Msgf(format, args...)
}

func (l ZLogger) Warn(format string, args ...any) {
	l.ZLog.Warn().Msgf(format, args...)
}

func (l ZLogger) Error(format string, args ...any) {
	l.ZLog.Error().Msgf(format, args...)
}

var _ InternalLogger = (*WriterLogger)(nil)

// WriterLogger prints info-and-above messages as plain lines, for operator
// facing progress output that should not carry log decoration.
type WriterLogger struct {
	W io.Writer
}

func NewWriterLogger(w io.Writer) WriterLogger {
	return WriterLogger{W: w}
}

func (l WriterLogger) Debug(string, ...any) {}

func (l WriterLogger) Info(format string, args ...any) {
	_, _ = fmt.Fprintf(l.W, format+"\n", args...)
}

func (l WriterLogger) Warn(format string, args ...any) {
	_, _ = fmt.Fprintf(l.W, "warning: "+format+"\n", args...)
}

func (l WriterLogger) Error(format string, args ...any) {
	_, _ = fmt.Fprintf(l.W, "error: "+format+"\n", args...)
}

var _ InternalLogger = (*MultiLogger)(nil)

type MultiLogger struct {
	Loggers []InternalLogger
}

func NewMultiLogger(loggers ...InternalLogger) MultiLogger {
	return MultiLogger{Loggers: loggers}
}

func (l MultiLogger) Debug(format string, args ...any) {
	for _, logger := range l.Loggers {
		logger.Debug(format, args...)
	}
}

func (l MultiLogger) Info(format string, args ...any) {
	for _, logger := range l.Loggers {
		logger.Info(format, args...)
	}
}

func (l MultiLogger) Warn(format string, args ...any) {
	for _, logger := range l.Loggers {
		logger.Warn(format, args...)
	}
}

func (l MultiLogger) Error(format string, args ...any) {
	for _, logger := range l.Loggers {
		logger.Error(format, args...)
	}
}
