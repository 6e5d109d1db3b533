package main

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/geal-ai/gridinterp"
)

// newLogger returns a timestamped logger writing to w at level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// logLevel resolves the configured level name; verbose forces debug.
func logLevel(name string, verbose bool) (log.Level, error) {
	if verbose {
		return log.DebugLevel, nil
	}
	if name == "" {
		return log.InfoLevel, nil
	}
	return log.ParseLevel(name)
}

type ctxKey int

const (
	loggerKey ctxKey = iota
	configKey
)

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the command's logger, or log.Default() if none was set.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

func withConfig(ctx context.Context, cfg gridinterp.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

func configFromContext(ctx context.Context) gridinterp.Config {
	if cfg, ok := ctx.Value(configKey).(gridinterp.Config); ok {
		return cfg
	}
	return gridinterp.DefaultConfig()
}
