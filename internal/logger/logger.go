// Package logger builds the zerolog logger used for diagnostics.
// Diagnostics always go to stderr so that stdout carries device data only.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects the log level and an optional rotated log file.
type Config struct {
	Level string

	// File, if set, receives JSON log lines in addition to the console.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New returns a logger writing human-readable lines to stderr, and a closer
// for the log file (a no-op when none is configured).
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	return newLogger(cfg, os.Stderr)
}

func newLogger(cfg Config, stderr *os.File) (zerolog.Logger, io.Closer, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		l, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, err
		}
		level = l
	}

	console := zerolog.ConsoleWriter{
		Out:        colorable.NewColorable(stderr),
		NoColor:    !isatty.IsTerminal(stderr.Fd()) && !isatty.IsCygwinTerminal(stderr.Fd()),
		TimeFormat: time.TimeOnly,
	}

	var (
		w      io.Writer = console
		closer io.Closer = nopCloser{}
	)
	if cfg.File != "" {
		rotated := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    orDefault(cfg.MaxSizeMB, 10),
			MaxBackups: orDefault(cfg.MaxBackups, 3),
			MaxAge:     orDefault(cfg.MaxAgeDays, 28),
		}
		w = zerolog.MultiLevelWriter(console, rotated)
		closer = rotated
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), closer, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
