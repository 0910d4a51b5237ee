package cli

import (
	"github.com/spf13/cobra"
)

func newRaffleCmd() *cobra.Command {
	var week string

	cmd := &cobra.Command{
		Use:   "raffle",
		Short: "Draw a raffle winner for a week (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"week_id": week}

			var result RaffleResult
			if err := client.Post("/api/v1/admin/raffle", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Week id (required)")
	_ = cmd.MarkFlagRequired("week")

	return cmd
}
