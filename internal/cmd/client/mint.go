package client

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/max-niederman/beryl/pkg/crystal"
)

// NewMintCommand constructs the `mint` command.
func NewMintCommand(baseURL BaseURLFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Mint crystals from the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			count, _ := cmd.Flags().GetInt("count")
			var resp struct {
				Crystals []crystal.Crystal `json:"crystals"`
			}
			if err := postJSON(baseURL()+"/v1/crystals/mint", map[string]int{"count": count}, &resp); err != nil {
				return err
			}
			for _, c := range resp.Crystals {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
	cmd.Flags().Int("count", 1, "Number of crystals to mint")
	return cmd
}
