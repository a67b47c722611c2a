package cli

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/agentnft/beaconctl/internal/cli/render"
	"github.com/agentnft/beaconctl/internal/usecase"
)

// NewTokenCmd creates the token command group
func NewTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Read AgentNFT tokens",
	}

	cmd.AddCommand(newTokenShowCmd())

	return cmd
}

func newTokenShowCmd() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "show <token-id>",
		Short: "Show the owner, URI and data of an AgentNFT token",
		Long: `Show the owner, URI, data descriptions and data hashes of an AgentNFT token.

The token is read from the configured agent_nft proxy unless --address is given.

Examples:
  beaconctl token show 7
  beaconctl token show 0x2a --address 0x5b8ef7960187b1acfc532c6eC2C058383FDe3143`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			id, ok := new(big.Int).SetString(args[0], 0)
			if !ok {
				return fmt.Errorf("invalid token id %q", args[0])
			}

			info, err := app.ShowToken.Run(cmd.Context(), usecase.ShowTokenParams{Address: address, TokenID: id})
			if err != nil {
				return err
			}

			return render.NewTokenRenderer(cmd.OutOrStdout(), app.Config.Output).Render(info)
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "AgentNFT proxy address (defaults to agent_nft.proxy)")

	return cmd
}
