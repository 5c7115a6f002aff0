// Package logger builds the zap logger shared by modlink components.
package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log field names, kept uniform so log lines can be grepped by key.
const (
	FieldGame    = "game"
	FieldProfile = "profile"
	FieldPath    = "path"
	FieldFile    = "file"
	FieldCount   = "count"
	FieldRunID   = "runId"
	FieldHook    = "hook"
	FieldAppID   = "appId"
)

// Options controls where and how much modlink logs
type Options struct {
	Dir        string // Directory for modlink.log; empty disables the file sink
	Level      string // debug, info, warn, error (default info)
	Verbose    bool   // Also log to stderr at debug level
	MaxSizeMB  int    // Rotate after this size (default 5)
	MaxBackups int    // Rotated files to keep (default 3)
}

// New creates a logger with a rotating JSON file sink and an optional
// human-readable console sink.
func New(opts Options) (*zap.Logger, error) {
	level := ParseLevel(opts.Level)

	var cores []zapcore.Core

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0755); err != nil {
			return nil, err
		}
		maxSize := opts.MaxSizeMB
		if maxSize <= 0 {
			maxSize = 5
		}
		maxBackups := opts.MaxBackups
		if maxBackups <= 0 {
			maxBackups = 3
		}
		rotator := &lumberjack.Logger{
			Filename:   filepath.Join(opts.Dir, "modlink.log"),
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
		}
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(rotator), level))
	}

	if opts.Verbose {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), zapcore.DebugLevel))
	}

	if len(cores) == 0 {
		return zap.NewNop(), nil
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}

// ParseLevel converts a level name to a zap level, defaulting to info
func ParseLevel(s string) zapcore.Level {
	level, err := zapcore.ParseLevel(s)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// OrNop returns l, or a no-op logger if l is nil
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
