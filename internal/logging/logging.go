// Package logging builds the zap logger used throughout quayside.
//
// The terminal belongs to the TUI, so logs go to a rotating file under the
// configured log directory.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/five82/quayside/internal/config"
)

// New returns a logger writing to cfg.LogPath(). The returned close function
// flushes the logger and releases the file.
func New(cfg *config.Config) (*zap.Logger, func() error, error) {
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.LogPath(),
		MaxSize:    100, // MB before it rolls
		MaxBackups: 7,
		MaxAge:     30, // days
		Compress:   true,
	}

	logger := newLogger(zapcore.AddSync(rotator), level)
	closeFn := func() error {
		_ = logger.Sync()
		return rotator.Close()
	}
	return logger, closeFn, nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}

func newLogger(out zapcore.WriteSyncer, level zapcore.Level) *zap.Logger {
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:      "ts",
		LevelKey:     "level",
		NameKey:      "logger",
		MessageKey:   "msg",
		CallerKey:    "caller",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeLevel:  zapcore.CapitalLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	})

	core := zapcore.NewCore(encoder, out, level)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

func parseLevel(raw string) (zapcore.Level, error) {
	if strings.TrimSpace(raw) == "" {
		return zapcore.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(strings.TrimSpace(raw))
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}
