// Package cli provides the command-line interface for pinroute.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/raphaelgruber/pinroute/internal/app"
	"github.com/raphaelgruber/pinroute/internal/client"
	"github.com/raphaelgruber/pinroute/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose   bool
	serverURL string

	// Global config, loaded before every command
	cfg config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pinroute",
	Short: "Postal address correction and hub routing",
	Long: `pinroute resolves misspelled or partial postal addresses to canonical
delivery offices and plans shortest routes between regional hub offices.

Commands run in-process against the configured store and hub network, or
against a running pinroute server with --server.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("config: %w", err)
		}
		return nil
	},
}

// cliLogger logs to stderr only: warnings by default, everything with --verbose.
func cliLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return config.SetupLoggerWithWriters(os.Stderr, io.Discard, level)
}

// getBackend returns the server client when --server is set, otherwise
// in-process services built from the environment. The returned func releases
// the backend.
func getBackend(ctx context.Context) (backend, func(), error) {
	if serverURL != "" {
		return client.New(serverURL), func() {}, nil
	}

	a, err := app.New(ctx, cfg, cliLogger())
	if err != nil {
		return nil, nil, err
	}
	return localBackend{app: a}, func() {
		if err := a.Close(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close: %v\n", err)
		}
	}, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "", "pinroute server URL (default: run in-process)")

	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(routeCmd)
	rootCmd.AddCommand(hubsCmd)
	rootCmd.AddCommand(seedCmd)
}
