package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	var week string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate stats for a week",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			query.Set("week", week)

			var result WeekStats
			if err := client.Get("/api/v1/stats?"+query.Encode(), &result); err != nil {
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
