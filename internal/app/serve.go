package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/raphaelgruber/pinroute/internal/config"
	"github.com/raphaelgruber/pinroute/internal/server"
)

// Serve builds the App and runs the HTTP server until ctx is cancelled.
func Serve(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	a, err := New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(context.Background()); err != nil {
			logger.Error("failed to close app", "error", err)
		}
	}()

	srv := server.New(server.Deps{
		Addresses: a.Addresses,
		Routes:    a.Routes,
		Metrics:   a.Metrics,
		Logger:    logger,
		Timeout:   cfg.RequestTimeout,
	})

	logger.Info("starting pinroute-server", "port", cfg.ServerPort, "store", cfg.Store)
	if err := srv.Run(ctx, ":"+cfg.ServerPort); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
