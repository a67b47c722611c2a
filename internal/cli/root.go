package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentnft/beaconctl/internal/app"
	"github.com/agentnft/beaconctl/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
	// releaseKey is the context key for the pre-run cleanup func
	releaseKey contextKey = "release"
)

// Execute runs rootCmd and releases what its pre-run acquired, whether or not
// the command failed
func Execute(rootCmd *cobra.Command) error {
	cmd, err := rootCmd.ExecuteC()
	if cmd != nil && cmd.Context() != nil {
		if release, ok := cmd.Context().Value(releaseKey).(func()); ok {
			release()
		}
	}
	return err
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "beaconctl",
		Short: "Upgrade beacon-proxied contract modules",
		Long: `beaconctl upgrades the implementation behind each configured beacon proxy.

Every enabled module is driven through beacon discovery, safety checks, owner
authorization, the upgrade transaction and post-upgrade verification. Modules
are processed in dependency order and a failing module does not stop the rest.

Configuration is read from upgrade.toml, .env files, UPGRADE_* environment
variables and flags, in increasing order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			workDir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to resolve working directory: %w", err)
			}

			v, err := config.SetupViper(workDir, cmd)
			if err != nil {
				return err
			}

			// Initialize app with DI
			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			// Add timeout if configured
			var cancel context.CancelFunc
			if appInstance.Config.Timeout > 0 {
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
			} else {
				ctx, cancel = context.WithCancel(ctx)
			}
			ctx = context.WithValue(ctx, releaseKey, func() {
				cancel()
				appInstance.Close()
			})

			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("manifest", "", "Path to the upgrade manifest (default ./upgrade.toml)")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network name from the manifest [networks] table")
	rootCmd.PersistentFlags().String("rpc-url", "", "JSON-RPC endpoint (overrides --network)")
	rootCmd.PersistentFlags().Uint64("chain-id", 0, "Expected chain ID (0 accepts whatever the node reports)")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format: table, json or yaml")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts and spinners")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Overall deadline for the command (0 disables)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "tools",
		Title: "Tools",
	})

	upgradeCmd := NewUpgradeCmd()
	upgradeCmd.GroupID = "main"
	rootCmd.AddCommand(upgradeCmd)

	inspectCmd := NewInspectCmd()
	inspectCmd.GroupID = "main"
	rootCmd.AddCommand(inspectCmd)

	nonceCmd := NewNonceCmd()
	nonceCmd.GroupID = "tools"
	rootCmd.AddCommand(nonceCmd)

	tokenCmd := NewTokenCmd()
	tokenCmd.GroupID = "tools"
	rootCmd.AddCommand(tokenCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
