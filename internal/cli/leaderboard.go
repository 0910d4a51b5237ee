package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newLeaderboardCmd() *cobra.Command {
	var week string
	var limit int

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the leaderboard for a week",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			query.Set("week", week)
			if limit > 0 {
				query.Set("limit", fmt.Sprintf("%d", limit))
			}

			var result Leaderboard
			if err := client.Get("/api/v1/leaderboard?"+query.Encode(), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Week id (required)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum rows to return")
	_ = cmd.MarkFlagRequired("week")

	return cmd
}
