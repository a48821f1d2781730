package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/raphaelgruber/pinroute/internal/app"
	"github.com/raphaelgruber/pinroute/internal/config"
	"github.com/spf13/cobra"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the pinroute HTTP API. Configuration comes from PINROUTE_* and
SURREALDB_* environment variables; --port overrides PINROUTE_SERVER_PORT.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if servePort != "" {
			cfg.ServerPort = servePort
		}

		level := cfg.LogLevel
		if verbose {
			level = slog.LevelDebug
		}
		logger, closeLog := config.SetupLogger(cfg.LogFile, level)
		defer func() {
			if err := closeLog(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
			}
		}()

		slog.SetDefault(logger)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return app.Serve(ctx, cfg, logger)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "listen port")
}
