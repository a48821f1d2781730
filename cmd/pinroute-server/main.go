// Package main provides the HTTP API server for pinroute.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/raphaelgruber/pinroute/internal/app"
	"github.com/raphaelgruber/pinroute/internal/config"
)

func main() {
	port := flag.String("port", "", "listen port (overrides PINROUTE_SERVER_PORT)")
	flag.Parse()

	cfg := config.Load()
	if *port != "" {
		cfg.ServerPort = *port
	}

	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Serve(ctx, cfg, logger); err != nil {
		logger.Error("server failed", "error", err)
		stop()
		cleanup()
		os.Exit(1)
	}
}
