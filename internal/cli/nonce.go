package cli

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentnft/beaconctl/internal/cli/render"
	"github.com/agentnft/beaconctl/internal/config"
	"github.com/agentnft/beaconctl/internal/domain"
	"github.com/agentnft/beaconctl/internal/usecase"
)

// errNoncesStuck is returned by nonce clear when transactions remain pending
var errNoncesStuck = errors.New("stuck transactions remain")

// NewNonceCmd creates the nonce command group
func NewNonceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nonce",
		Short: "Inspect and clear stuck transactions of the signer",
	}

	cmd.AddCommand(newNonceStatusCmd())
	cmd.AddCommand(newNonceClearCmd())

	return cmd
}

func newNonceStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Compare the latest and pending nonce of the signer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			status, err := app.GetNonceStatus.Run(cmd.Context())
			if err != nil {
				return err
			}

			return render.NewNonceRenderer(cmd.OutOrStdout(), app.Config.Output).RenderStatus(status)
		},
	}
}

type nonceClearFlags struct {
	maxFee               string
	priorityFee          string
	escalatedMaxFee      string
	escalatedPriorityFee string
	gasLimit             uint64
	interval             time.Duration
	settle               time.Duration
}

func newNonceClearCmd() *cobra.Command {
	var flags nonceClearFlags

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Replace every stuck transaction with a zero-value self-transfer",
		Long: `Replace every pending nonce of the signer with a zero-value transfer to itself.

Each replacement is sent with the given fees. When the node rejects it as
underpriced it is resent once with the escalated fees. Use --settle to wait and
re-read the nonces afterwards; the command exits with status 1 when transactions
are still pending.

Examples:
  beaconctl nonce clear --network zg-testnet
  beaconctl nonce clear --max-fee 300 --priority-fee 60 --settle 30s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params, err := flags.params()
			if err != nil {
				return err
			}

			result, err := app.ClearStuckNonces.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			if err := render.NewNonceRenderer(cmd.OutOrStdout(), app.Config.Output).RenderClear(result); err != nil {
				return err
			}

			if !result.Cleared() {
				return errNoncesStuck
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.maxFee, "max-fee", "120", "Max fee per gas in gwei")
	cmd.Flags().StringVar(&flags.priorityFee, "priority-fee", "25", "Priority fee per gas in gwei")
	cmd.Flags().StringVar(&flags.escalatedMaxFee, "escalated-max-fee", "200", "Max fee in gwei when a replacement is underpriced")
	cmd.Flags().StringVar(&flags.escalatedPriorityFee, "escalated-priority-fee", "50", "Priority fee in gwei when a replacement is underpriced")
	cmd.Flags().Uint64Var(&flags.gasLimit, "replacement-gas", usecase.DefaultReplacementGas, "Gas limit of each replacement")
	cmd.Flags().DurationVar(&flags.interval, "interval", usecase.DefaultSendInterval, "Minimum time between replacements")
	cmd.Flags().DurationVar(&flags.settle, "settle", 0, "Wait this long and re-read the nonces (0 skips)")

	return cmd
}

// params converts the gwei flags into wei fee caps
func (f nonceClearFlags) params() (usecase.ClearStuckNoncesParams, error) {
	fees, err := feeCaps("max-fee", f.maxFee, "priority-fee", f.priorityFee)
	if err != nil {
		return usecase.ClearStuckNoncesParams{}, err
	}
	escalated, err := feeCaps("escalated-max-fee", f.escalatedMaxFee, "escalated-priority-fee", f.escalatedPriorityFee)
	if err != nil {
		return usecase.ClearStuckNoncesParams{}, err
	}

	return usecase.ClearStuckNoncesParams{
		Fees:          fees,
		EscalatedFees: escalated,
		GasLimit:      f.gasLimit,
		Interval:      f.interval,
		Settle:        f.settle,
	}, nil
}

func feeCaps(maxName, maxGwei, tipName, tipGwei string) (domain.FeeCaps, error) {
	maxFee, err := gwei(maxName, maxGwei)
	if err != nil {
		return domain.FeeCaps{}, err
	}
	tip, err := gwei(tipName, tipGwei)
	if err != nil {
		return domain.FeeCaps{}, err
	}
	if maxFee != nil && tip != nil && tip.Cmp(maxFee) > 0 {
		return domain.FeeCaps{}, fmt.Errorf("--%s must not exceed --%s", tipName, maxName)
	}
	return domain.FeeCaps{MaxFee: maxFee, MaxPriorityFee: tip}, nil
}

func gwei(name, value string) (*big.Int, error) {
	wei, err := config.GweiToWei(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return wei, nil
}
