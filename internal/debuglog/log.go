package debuglog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the debug log. The TUI owns the terminal, so output
// always goes to a rotated file, never to stdout.
type Options struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// levelGate sits between every logger and the log file. Until Setup points
// it at a destination it swallows everything; after Setup it forwards events
// at or above the configured level. Loggers are copied by value in zerolog,
// so this indirection is what lets a Component logger created before Setup
// become live once a file is configured.
type levelGate struct {
	mu    sync.RWMutex
	dst   io.Writer
	level zerolog.Level
}

func (g *levelGate) Write(p []byte) (int, error) {
	return g.WriteLevel(zerolog.NoLevel, p)
}

func (g *levelGate) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.dst == nil || level < g.level {
		return len(p), nil
	}
	return g.dst.Write(p)
}

func (g *levelGate) redirect(dst io.Writer, level zerolog.Level) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.dst = dst
	g.level = level
}

func (g *levelGate) setLevel(level zerolog.Level) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.level = level
}

var (
	gate    = &levelGate{level: zerolog.Disabled}
	root    = zerolog.New(gate).With().Timestamp().Logger()
	logFile *lumberjack.Logger
)

// ParseLevel maps a config string to a zerolog level. "off" and the empty
// string disable logging entirely; anything unrecognized falls back to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "off", "disabled":
		return zerolog.Disabled
	default:
		level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
		if err != nil {
			return zerolog.InfoLevel
		}
		return level
	}
}

// Setup opens the rotated log file and points the gate at it. Calling it
// again replaces the previous file. Loggers handed out by Component before
// Setup start reaching the file from here on.
func Setup(opts Options) error {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	level := ParseLevel(opts.Level)
	if level == zerolog.Disabled {
		gate.redirect(nil, zerolog.Disabled)
		return nil
	}

	logPath := opts.File
	if logPath == "" {
		home, _ := os.UserHomeDir()
		logPath = filepath.Join(home, ".akiba", "akiba.log")
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	logFile = &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    orDefault(opts.MaxSizeMB, 10),
		MaxBackups: orDefault(opts.MaxBackups, 3),
		MaxAge:     orDefault(opts.MaxAgeDays, 28),
	}

	zerolog.TimeFieldFormat = time.RFC3339
	gate.redirect(logFile, level)

	return nil
}

func orDefault(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}

// Component returns a logger tagged with the given component name. Safe to
// call before Setup: events are dropped until a file is configured and flow
// to it afterward.
func Component(name string) zerolog.Logger {
	return root.With().Str("component", name).Logger()
}

// SetLevel changes the level of subsequent events without reopening the file.
func SetLevel(level zerolog.Level) {
	gate.setLevel(level)
}

// Close flushes and closes the log file if open and drops back to discarding
// events.
func Close() error {
	gate.redirect(nil, zerolog.Disabled)
	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		return err
	}
	return nil
}
