package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var routeCmd = &cobra.Command{
	Use:   "route <source-district> <destination-district>",
	Short: "Plan the shortest hub route between two districts",
	Long: `Find the minimum-distance path between the hubs serving two districts.
District names must match the network configuration exactly.

Examples:
  pinroute route Mumbai Nagpur
  pinroute route Wardha Pune --server http://localhost:8585`,
	Args: cobra.ExactArgs(2),
	RunE: runRoute,
}

func runRoute(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	b, done, err := getBackend(ctx)
	if err != nil {
		return err
	}
	defer done()

	r, err := b.Route(ctx, args[0], args[1])
	if err != nil {
		return fmt.Errorf("route: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), renderRoute(outputTheme(), r))
	return nil
}
