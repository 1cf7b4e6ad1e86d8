package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"

	"github.com/voyagent/voyagent/src/config"
)

// newLogger builds the process logger from config, with the CLI flag taking
// precedence over the configured level. The text format uses tint on stderr;
// json writes plain slog JSON, to the configured file when one is set.
func newLogger(cfg *config.Config, flagLevel string) *slog.Logger {
	levelStr := cfg.Logging.Level
	if flagLevel != "" {
		levelStr = flagLevel
	}
	level := parseLogLevel(levelStr)

	var out io.Writer = os.Stderr
	if cfg.Logging.File != "" {
		file, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			out = file
		}
	}

	if cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
	}

	return slog.New(tint.NewHandler(out, &tint.Options{Level: level}))
}

// parseLogLevel converts string log level to slog.Level
func parseLogLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
