package cli

import (
	"github.com/spf13/cobra"

	"github.com/agentnft/beaconctl/internal/cli/render"
	"github.com/agentnft/beaconctl/internal/domain"
	"github.com/agentnft/beaconctl/internal/usecase"
)

// NewUpgradeCmd creates the upgrade command
func NewUpgradeCmd() *cobra.Command {
	var only []string

	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade every enabled module to its configured implementation",
		Long: `Upgrade every enabled module to its configured implementation.

For each enabled module the beacon is read from the proxy's EIP-1967 beacon slot,
the proxy and new implementation are checked for deployed code, the signer is
checked against the beacon owner, upgradeTo is sent and the beacon is re-read to
confirm the new implementation.

The signer key is read from UPGRADE_PRIVATE_KEY. The command exits with status 1
when any enabled module fails.

Examples:
  beaconctl upgrade --network zg-testnet
  beaconctl upgrade --only verifier,agent_nft --yes
  beaconctl upgrade -o json --non-interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			summary, err := app.UpgradeBeacons.Run(cmd.Context(), usecase.UpgradeBeaconsParams{Only: only})
			if err != nil {
				return err
			}

			renderer := render.NewUpgradeRenderer(cmd.OutOrStdout(), app.Config.Output)
			if err := renderer.Render(summary); err != nil {
				return err
			}

			if !summary.Success() {
				return domain.ErrUpgradeFailed
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&only, "only", nil, "Restrict the run to these modules (name or config key)")
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().String("metrics-file", "", "Write Prometheus metrics to this textfile after the run")
	cmd.Flags().Duration("receipt-timeout", 0, "How long to wait for each upgrade receipt (default 2m)")
	cmd.Flags().Duration("poll-interval", 0, "Receipt polling interval (default 2s)")
	cmd.Flags().Bool("safety-checks", true, "Check for deployed code before upgrading")
	cmd.Flags().Uint64("gas-limit", 0, "Gas limit for upgrade transactions (0 estimates)")
	cmd.Flags().String("max-fee-gwei", "", "Max fee per gas in gwei (empty uses the node suggestion)")
	cmd.Flags().String("priority-fee-gwei", "", "Priority fee per gas in gwei (empty uses the node suggestion)")

	return cmd
}
