// Package logging provides the structured logger the rest of the engine
// uses to report progress and internal diagnostics (as opposed to
// internal/diagnostics, which is the per-city validation notice/warning/
// error sink). The concrete implementation wraps go.uber.org/zap.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is a small severity enum layered on top of zap's levels.
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case Debug:
		return zapcore.DebugLevel
	case Warn:
		return zapcore.WarnLevel
	case Error:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Field is a key-value pair attached to a log line.
type Field struct {
	Key   string
	Value interface{}
}

func toZapFields(fields []Field) []zap.Field {
	out := make([]zap.Field, len(fields))
	for i, f := range fields {
		out[i] = zap.Any(f.Key, f.Value)
	}
	return out
}

// Logger is the structured logging contract every component is handed at
// construction time, in place of a global logger or back-pointer.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	With(fields ...Field) Logger
	WithField(key string, value interface{}) Logger
	SetLevel(level Level)
}

// zapLogger wraps a zap.Logger behind the Logger interface.
type zapLogger struct {
	base  *zap.Logger
	level *zap.AtomicLevel
}

// New builds a console-friendly, human-readable Logger at Info level.
// Production deployments that want JSON output should construct their own
// zap.Config and call NewFromZap instead.
func New() Logger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	cfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.Lock(os.Stderr), &level)
	return &zapLogger{base: zap.New(core), level: &level}
}

// NewFromZap wraps an already-configured zap.Logger.
func NewFromZap(z *zap.Logger) Logger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	return &zapLogger{base: z, level: &level}
}

func (l *zapLogger) Debug(msg string, fields ...Field) { l.base.Debug(msg, toZapFields(fields)...) }
func (l *zapLogger) Info(msg string, fields ...Field)  { l.base.Info(msg, toZapFields(fields)...) }
func (l *zapLogger) Warn(msg string, fields ...Field)  { l.base.Warn(msg, toZapFields(fields)...) }
func (l *zapLogger) Error(msg string, fields ...Field) { l.base.Error(msg, toZapFields(fields)...) }

func (l *zapLogger) With(fields ...Field) Logger {
	return &zapLogger{base: l.base.With(toZapFields(fields)...), level: l.level}
}

func (l *zapLogger) WithField(key string, value interface{}) Logger {
	return l.With(Field{Key: key, Value: value})
}

func (l *zapLogger) SetLevel(level Level) {
	l.level.SetLevel(level.zapLevel())
}
