package cli

import (
	"github.com/spf13/cobra"

	"github.com/agentnft/beaconctl/internal/cli/render"
	"github.com/agentnft/beaconctl/internal/usecase"
)

// NewInspectCmd creates the inspect command
func NewInspectCmd() *cobra.Command {
	var only []string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the beacon, implementation, owner and version of each module",
		Long: `Show the on-chain state of every module that has a proxy configured.

Nothing is signed or sent. Modules are read concurrently and read failures are
reported per module.

Examples:
  beaconctl inspect --network zg-testnet
  beaconctl inspect --only agent_nft -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			infos, err := app.InspectBeacons.Run(cmd.Context(), usecase.InspectBeaconsParams{Only: only})
			if err != nil {
				return err
			}

			return render.NewInspectRenderer(cmd.OutOrStdout(), app.Config.Output).Render(infos)
		},
	}

	cmd.Flags().StringSliceVar(&only, "only", nil, "Restrict the output to these modules (name or config key)")

	return cmd
}
