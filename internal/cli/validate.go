package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/raphaelgruber/pinroute/internal/client"
	"github.com/spf13/cobra"
)

var (
	validatePincode  string
	validateDistrict string
)

var validateCmd = &cobra.Command{
	Use:   "validate [address]",
	Short: "Correct an address or check a PIN code",
	Long: `Resolve a free-text locality to the closest delivery office, or look up a
PIN code. A PIN code takes precedence over the address.

Examples:
  pinroute validate "Sawngi" --district Wardha
  pinroute validate --pincode 442107
  pinroute validate "Sevagram" --server http://localhost:8585`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validatePincode, "pincode", "p", "", "PIN code to look up")
	validateCmd.Flags().StringVarP(&validateDistrict, "district", "d", "", "restrict matching to a district")
}

func runValidate(cmd *cobra.Command, args []string) error {
	in := client.ValidateInput{
		Address:  strings.Join(args, " "),
		Pincode:  validatePincode,
		District: validateDistrict,
	}
	if strings.TrimSpace(in.Address) == "" && strings.TrimSpace(in.Pincode) == "" {
		return fmt.Errorf("provide an address or --pincode")
	}

	ctx := context.Background()
	b, done, err := getBackend(ctx)
	if err != nil {
		return err
	}
	defer done()

	v, err := b.Validate(ctx, in)
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), renderValidation(outputTheme(), v))
	return nil
}
