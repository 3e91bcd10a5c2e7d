package cliutil

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
)

type LogOptions struct {
	// path to write to; "" or "-" for stderr
	LogPath string

	// text|json
	LogFormat string

	// info|debug|warn|error
	LogLevel string
}

func firstenv(env_var_names ...string) string {
	for _, env_var_name := range env_var_names {
		val := os.Getenv(env_var_name)
		if val != "" {
			return val
		}
	}
	return ""
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %#v", s)
	}
}

// NewLogger builds a logger writing to out, without touching the process
// default.
func NewLogger(out io.Writer, options LogOptions) (*slog.Logger, error) {
	level, err := parseLevel(options.LogLevel)
	if err != nil {
		return nil, err
	}
	hopts := slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(options.LogFormat) {
	case "", "text":
		handler = slog.NewTextHandler(out, &hopts)
	case "json":
		handler = slog.NewJSONHandler(out, &hopts)
	default:
		return nil, fmt.Errorf("invalid log format: %#v", options.LogFormat)
	}
	return slog.New(handler), nil
}

// SetupSlog integrates passed in options and env vars, and installs the
// result as the slog default.
//
// passing default cliutil.LogOptions{} is ok.
//
// WOOLGEN_LOG_LEVEL=info|debug|warn|error
//
// WOOLGEN_LOG_FMT=text|json
//
// WOOLGEN_LOG_FILE=path (or "-" or "" for stderr)
//
// Logs go to stderr by default so that commands printing to stdout stay
// clean.
func SetupSlog(options LogOptions) (*slog.Logger, error) {
	if options.LogLevel == "" {
		options.LogLevel = firstenv("WOOLGEN_LOG_LEVEL", "GOLOG_LOG_LEVEL")
	}
	if options.LogFormat == "" {
		options.LogFormat = firstenv("WOOLGEN_LOG_FMT", "GOLOG_LOG_FMT")
	}
	if options.LogPath == "" {
		options.LogPath = firstenv("WOOLGEN_LOG_FILE")
	}

	var out io.Writer = os.Stderr
	if options.LogPath != "" && options.LogPath != "-" {
		f, err := os.OpenFile(options.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", options.LogPath, err)
		}
		out = f
	}

	logger, err := NewLogger(out, options)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return logger, nil
}

// LogFlags are the logging flags shared by binaries.
func LogFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "log verbosity level (eg: warn, info, debug)",
			EnvVars: []string{"WOOLGEN_LOG_LEVEL", "GOLOG_LOG_LEVEL", "LOG_LEVEL"},
		},
		&cli.StringFlag{
			Name:    "log-format",
			Usage:   "log output format (text, json)",
			EnvVars: []string{"WOOLGEN_LOG_FMT", "GOLOG_LOG_FMT"},
		},
		&cli.StringFlag{
			Name:    "log-file",
			Usage:   "write logs to this file instead of stderr",
			EnvVars: []string{"WOOLGEN_LOG_FILE"},
		},
	}
}

// ConfigLogger sets up logging from the flags of LogFlags.
func ConfigLogger(cctx *cli.Context) (*slog.Logger, error) {
	return SetupSlog(LogOptions{
		LogLevel:  cctx.String("log-level"),
		LogFormat: cctx.String("log-format"),
		LogPath:   cctx.String("log-file"),
	})
}
