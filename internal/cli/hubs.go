package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var hubsCmd = &cobra.Command{
	Use:   "hubs",
	Short: "List the hub network",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		b, done, err := getBackend(ctx)
		if err != nil {
			return err
		}
		defer done()

		hubs, err := b.Hubs(ctx)
		if err != nil {
			return fmt.Errorf("list hubs: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), renderHubs(outputTheme(), hubs))
		return nil
	},
}
