package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "upmpoly",
		Short: "CLI tool for the UPM-poly ledger API",
		Long: `upmpoly is a CLI tool for interacting with the UPM-poly ledger JSON API.

It covers player and faculty management, the economic actions (buying,
paying rent, trading) and the administrative seed and delete operations.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			client = NewClient(cfg.ServerURL, cfg.AdminToken)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: UPMPOLY_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.AdminToken, "admin-token", cfg.AdminToken, "Admin token for seed and delete (env: UPMPOLY_ADMIN_TOKEN)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")

	// Add subcommands
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newSeedCmd())
	rootCmd.AddCommand(newExistsCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newFacultyCmd())
	rootCmd.AddCommand(newBuyCmd())
	rootCmd.AddCommand(newRentCmd())
	rootCmd.AddCommand(newTradeCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
