package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type implLogger struct {
	sugar *zap.SugaredLogger
	level zapcore.Level
}

type options struct {
	writer io.Writer
	file   string
}

// Option customizes a Logger built by New.
type Option func(*options)

// WithWriter sends console output to w instead of stderr.
func WithWriter(w io.Writer) Option {
	return func(o *options) { o.writer = w }
}

// WithFile adds a rotating JSON log file.
func WithFile(path string) Option {
	return func(o *options) { o.file = path }
}

// New creates a new Logger instance. Console output goes to stderr so that
// stdout stays free for command output.
func New(level string, opts ...Option) Logger {
	o := options{writer: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	lvl := parseLevel(level)

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(o.writer), lvl),
	}
	if strings.TrimSpace(o.file) != "" {
		rotator := &lumberjack.Logger{
			Filename:   o.file,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(rotator), lvl))
	}

	return &implLogger{
		sugar: zap.New(zapcore.NewTee(cores...)).Sugar(),
		level: lvl,
	}
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *implLogger) shouldLog(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "warning", "error":
		return l.level.Enabled(parseLevel(level))
	default:
		return true
	}
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.sugar.Debugf(msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.sugar.Infof(msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.sugar.Warnf(msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.sugar.Errorf(msg, args...)
}

// Sync flushes buffered log entries if l is backed by zap.
func Sync(l Logger) error {
	if impl, ok := l.(*implLogger); ok {
		return impl.sugar.Sync()
	}
	return nil
}
