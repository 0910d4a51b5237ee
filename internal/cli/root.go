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
		Use:   "bingoctl",
		Short: "CLI tool for the studio bingo challenge API",
		Long: `bingoctl is a CLI tool for interacting with the studio bingo challenge API.

It submits marked cards, reads leaderboards and weekly stats, scans card
photos through the vision service, and runs the admin operations.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Every command identifies as the same device across runs
			if err := cfg.EnsureDeviceID(); err != nil {
				return err
			}

			client = NewClient(cfg.ServerURL, cfg.DeviceID, cfg.StudioCode)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: BINGO_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.DeviceID, "device-id", cfg.DeviceID, "Device id (env: BINGO_DEVICE_ID)")
	rootCmd.PersistentFlags().StringVar(&cfg.StudioCode, "studio-code", cfg.StudioCode, "Studio code for admin commands (env: BINGO_STUDIO_CODE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newSubmitCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newCardCmd())
	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newRaffleCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
