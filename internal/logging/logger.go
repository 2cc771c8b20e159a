// Package logging configures the process-wide zerolog logger.
package logging

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const maxLogFileMB = 10

type Config struct {
	Service     string
	Version     string
	Level       string // debug, info, warn, error
	Dir         string // root of the rotating files; empty disables them
	Development bool   // human readable console output
}

// New returns a logger writing to stdout and, when Dir is set, to two
// rotating files: Dir/info/info.log (info and above) and Dir/error/error.log
// (errors only).  The returned close function flushes and closes the files.
func New(cfg Config) (zerolog.Logger, func() error) {
	return newWithStdout(cfg, os.Stdout)
}

func newWithStdout(cfg Config, stdout io.Writer) (zerolog.Logger, func() error) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var console io.Writer = stdout
	if cfg.Development {
		console = zerolog.ConsoleWriter{Out: stdout, TimeFormat: "2006-01-02 15:04:05.000 Z07:00"}
	}
	writers := []io.Writer{console}
	var files []*lumberjack.Logger
	if cfg.Dir != "" {
		info := rotating(filepath.Join(cfg.Dir, "info", "info.log"))
		errs := rotating(filepath.Join(cfg.Dir, "error", "error.log"))
		files = append(files, info, errs)
		writers = append(writers,
			minLevelWriter{w: info, min: zerolog.InfoLevel},
			minLevelWriter{w: errs, min: zerolog.ErrorLevel},
		)
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Str("service", cfg.Service).
		Str("version", cfg.Version).
		Logger()

	closeFn := func() error {
		var errs []error
		for _, f := range files {
			errs = append(errs, f.Close())
		}
		return errors.Join(errs...)
	}
	return logger, closeFn
}

func rotating(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:  path,
		MaxSize:   maxLogFileMB,
		LocalTime: true,
	}
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(lvl string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// minLevelWriter drops events below min.  Plain writes (no level) pass.
type minLevelWriter struct {
	w   io.Writer
	min zerolog.Level
}

func (m minLevelWriter) Write(p []byte) (int, error) { return m.w.Write(p) }

func (m minLevelWriter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	if l < m.min {
		return len(p), nil
	}
	return m.w.Write(p)
}
