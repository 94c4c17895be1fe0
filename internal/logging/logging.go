// Package logging builds the zap logger shared by the CLI and the TUI.
package logging

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "warn"

// New returns a console logger writing to w at the named level.
// An empty level means DefaultLevel.
func New(level string, w io.Writer) (*zap.Logger, error) {
	return newLogger(level, zapcore.AddSync(w), false)
}

// NewFile returns a console logger appending to the file at path, and a
// function that closes the file. The TUI logs here while it owns the
// terminal.
func NewFile(level, path string) (*zap.Logger, func(), error) {
	sink, closeSink, err := zap.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	log, err := newLogger(level, sink, true)
	if err != nil {
		closeSink()
		return nil, nil, err
	}
	return log, func() {
		_ = log.Sync()
		closeSink()
	}, nil
}

func newLogger(level string, ws zapcore.WriteSyncer, timestamps bool) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	if !timestamps {
		encCfg.TimeKey = ""
	}
	encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		ws,
		zap.NewAtomicLevelAt(lvl),
	)
	return zap.New(core), nil
}

// ParseLevel maps a level name (debug, info, warn, error) to a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		level = DefaultLevel
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return 0, fmt.Errorf("invalid log level: %s", level)
	}
	return lvl, nil
}
