// Package logging builds the two loggers a node uses: a leveled zap event
// log that rolls over through lumberjack, and the charm console logger for
// operator-facing messages.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vovakirdan/tui-dodgeball/internal/config"
)

// EventLog is the rolling node event log.
type EventLog struct {
	*zap.SugaredLogger
	roller *lumberjack.Logger
}

// NewEventLog opens the rolling file named by cfg.File and returns a
// sugared logger writing to it. An empty file name yields a no-op log.
func NewEventLog(cfg config.LogConfig) (*EventLog, error) {
	if cfg.File == "" {
		return Nop(), nil
	}

	path, err := config.ExpandHome(cfg.File)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logging: cannot create directory for %s: %w", path, err)
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}

	return &EventLog{
		SugaredLogger: newLogger(zapcore.AddSync(lj), level),
		roller:        lj,
	}, nil
}

// NewWriterLog logs to w instead of a rolling file.
func NewWriterLog(w io.Writer, level zapcore.Level) *EventLog {
	return &EventLog{SugaredLogger: newLogger(zapcore.AddSync(w), level)}
}

// Nop returns a log that discards everything.
func Nop() *EventLog {
	return &EventLog{SugaredLogger: zap.NewNop().Sugar()}
}

func newLogger(ws zapcore.WriteSyncer, level zapcore.Level) *zap.SugaredLogger {
	encCfg := zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stack",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), ws, level)
	return zap.New(core, zap.AddCaller()).Sugar()
}

// ParseLevel maps a config level name to a zap level. Empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return lvl, fmt.Errorf("logging: unknown level %q", s)
	}
	return lvl, nil
}

// Close flushes buffered entries and closes the rolling file.
func (l *EventLog) Close() error {
	_ = l.Sync()
	if l.roller != nil {
		return l.roller.Close()
	}
	return nil
}

// Console returns the charm logger used for operator messages on stderr.
func Console(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}
