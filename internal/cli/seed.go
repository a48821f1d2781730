package cli

import (
	"context"
	"fmt"

	"github.com/raphaelgruber/pinroute/internal/app"
	"github.com/raphaelgruber/pinroute/internal/db"
	"github.com/spf13/cobra"
)

var (
	seedFile  string
	seedWipe  bool
	seedBatch int
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load locality records into SurrealDB",
	Long: `Load delivery office records from a YAML file (or the built-in Maharashtra
set) into the SurrealDB locality table.

Examples:
  pinroute seed --wipe
  pinroute seed --file offices.yaml --batch 500`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML seed file (default: PINROUTE_SEED_FILE or built-in records)")
	seedCmd.Flags().BoolVar(&seedWipe, "wipe", false, "delete existing localities first")
	seedCmd.Flags().IntVarP(&seedBatch, "batch", "b", 100, "records per insert")
}

func runSeed(cmd *cobra.Command, args []string) error {
	path := seedFile
	if path == "" {
		path = cfg.SeedFile
	}
	records, err := db.LoadSeedFile(path)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := app.Connect(ctx, cfg, cliLogger(), nil)
	if err != nil {
		return err
	}
	defer client.Close(ctx)

	if seedWipe {
		if err := client.WipeData(ctx); err != nil {
			return err
		}
	}

	var n int
	if stdoutIsTerminal() {
		n, err = runSeedProgress(ctx, client, records, seedBatch)
	} else {
		n, err = seedPlain(ctx, client, records, seedBatch, func(line string) {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		})
	}
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	if !stdoutIsTerminal() {
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d localities.\n", n)
	}
	return nil
}
