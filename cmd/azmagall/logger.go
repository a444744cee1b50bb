package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/charamzic/azmagall/cmd/azmagall/internal/configuration"
)

func setupLogger(config *configuration.Config, version string) {
	level := slog.LevelInfo

	switch strings.ToLower(config.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	// Progress reporting goes to stdout, so logging stays on stderr.
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: version == "development",
	})

	slog.SetDefault(slog.New(handler))
}
