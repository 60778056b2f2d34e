package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents the logging level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelSilent
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelSilent:
		return "SILENT"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a case-insensitive level name into a Level
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO", "":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	case "SILENT", "OFF":
		return LevelSilent, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// zapLevel maps a Level onto zap. Silent sits above every zap level.
func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.FatalLevel + 1
	}
}

// Format selects the log encoding
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// Logger provides structured logging with configurable levels
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	WithFields(fields ...Field) Logger
}

// Field represents a structured log field
type Field = zap.Field

// F is a convenience function for creating fields
func F(key string, value any) Field {
	return zap.Any(key, value)
}

type zapLogger struct {
	base *zap.Logger
}

// New creates a logger writing to out. A nil out writes to stderr so that
// stdout stays reserved for results.
func New(level Level, format Format, out io.Writer) Logger {
	if out == nil {
		out = os.Stderr
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		MessageKey:     "msg",
		NameKey:        "logger",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     timeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	var encoder zapcore.Encoder
	if format == FormatJSON {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(out), level.zapLevel())

	return &zapLogger{base: zap.New(core).Named("nest")}
}

// NewSilentLogger creates a logger that outputs nothing
func NewSilentLogger() Logger {
	return New(LevelSilent, FormatConsole, io.Discard)
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05"))
}

func (l *zapLogger) WithFields(fields ...Field) Logger {
	return &zapLogger{base: l.base.With(fields...)}
}

func (l *zapLogger) Debug(msg string, fields ...Field) {
	l.base.Debug(msg, fields...)
}

func (l *zapLogger) Info(msg string, fields ...Field) {
	l.base.Info(msg, fields...)
}

func (l *zapLogger) Warn(msg string, fields ...Field) {
	l.base.Warn(msg, fields...)
}

func (l *zapLogger) Error(msg string, fields ...Field) {
	l.base.Error(msg, fields...)
}

// defaultLogger is used by components constructed without a logger
var defaultLogger = NewSilentLogger()

// Default returns the silent fallback logger
func Default() Logger {
	return defaultLogger
}
