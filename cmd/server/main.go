// Package main is the entry point for the employee directory server.
//
// main stays minimal: read configuration, create the logger, ensure the data
// directory exists, start the server. All real logic lives in the internal
// packages so it can be tested without running a process.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/employee-directory/internal/config"
	"github.com/sakif/employee-directory/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger isn't built yet — a bootstrap logger covers config errors.
		slog.New(slog.NewTextHandler(os.Stderr, nil)).
			Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))

	// The SQLite file's parent directory must exist before sql.Open touches
	// it. MkdirAll is `mkdir -p` — no error if it's already there.
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", filepath.Dir(cfg.DBPath)),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
