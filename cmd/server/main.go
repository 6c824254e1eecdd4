// Package main is the entry point for the habitloop HTTP server.
//
// main stays minimal: load configuration, build a logger, hand both to
// internal/server and block until shutdown. Settings come from defaults,
// an optional YAML file (--config or $HABITLOOP_CONFIG) and environment
// variables; see internal/config.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/sakif/habitloop/internal/config"
	"github.com/sakif/habitloop/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath, os.Getenv)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate already proved these parse.
	level, _ := cfg.SlogLevel()
	loc, _ := cfg.Location()
	opts, _ := cfg.AnalyticsOptions()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))

	// mkdir -p for the database directory.
	if cfg.DBPath != ":memory:" {
		dbDir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", dbDir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	srv, err := server.New(server.Config{
		Port:     cfg.Port,
		DBPath:   cfg.DBPath,
		Location: loc,
		Analysis: opts,
	}, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until SIGINT or SIGTERM.
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
