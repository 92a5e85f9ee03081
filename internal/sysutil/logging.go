// Package sysutil configures process-level concerns shared by entry points:
// the global zerolog level and the log sinks.
package sysutil

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// SetLogLevel configures the global zerolog level from a string.
// Supported values (case-insensitive): debug, info, warn/warning, error,
// fatal, panic. Anything else, including "", selects info.
func SetLogLevel(lvl string) zerolog.Level {
	l := zerolog.InfoLevel
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		l = zerolog.DebugLevel
	case "warn", "warning":
		l = zerolog.WarnLevel
	case "error":
		l = zerolog.ErrorLevel
	case "fatal":
		l = zerolog.FatalLevel
	case "panic":
		l = zerolog.PanicLevel
	}
	zerolog.SetGlobalLevel(l)
	return l
}

// LogOptions selects the sinks of the global logger.
type LogOptions struct {
	Level string
	// Pretty renders human-readable console lines instead of JSON on stdout.
	Pretty bool
	// File, when set, also writes JSON lines to a size-rotated file.
	File    string
	Service string
	Version string
}

// Rotation limits of the optional log file.
const (
	logMaxSizeMB  = 50
	logMaxBackups = 5
	logMaxAgeDays = 14
)

// SetupLogging installs the global zerolog logger described by opts and
// returns a closer for the rotated file (a no-op without one).
func SetupLogging(opts LogOptions) io.Closer {
	return setupLogging(opts, os.Stdout)
}

func setupLogging(opts LogOptions, stdout io.Writer) io.Closer {
	SetLogLevel(opts.Level)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var console io.Writer = stdout
	if opts.Pretty {
		console = zerolog.ConsoleWriter{Out: stdout, TimeFormat: "15:04:05.000"}
	}

	var closer io.Closer = nopCloser{}
	out := console
	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    logMaxSizeMB,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAgeDays,
			Compress:   true,
		}
		out = zerolog.MultiLevelWriter(console, lj)
		closer = lj
	}

	ctx := zerolog.New(out).With().Timestamp()
	if opts.Service != "" {
		ctx = ctx.Str("service", opts.Service)
	}
	if opts.Version != "" {
		ctx = ctx.Str("version", opts.Version)
	}
	log.Logger = ctx.Logger()
	zerolog.DefaultContextLogger = &log.Logger
	return closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
