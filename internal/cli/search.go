package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search offices by name or district",
	Long: `Full-text search over office names and districts. Returns at most 10 offices.

Examples:
  pinroute search wardha
  pinroute search "jawahar nagar"`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	b, done, err := getBackend(ctx)
	if err != nil {
		return err
	}
	defer done()

	results, err := b.Search(ctx, args[0])
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, "No results found.")
		return nil
	}

	t := outputTheme()
	fmt.Fprintf(out, "%s\n\n", t.title(fmt.Sprintf("Found %d results:", len(results))))
	for i, a := range results {
		fmt.Fprintf(out, "%d. %s\n", i+1, formatAddress(a))
	}
	return nil
}
