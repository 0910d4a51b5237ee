package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSubmitCmd() *cobra.Command {
	var week, name, team, mask string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a marked card for a week",
		RunE: func(cmd *cobra.Command, args []string) error {
			if week == "" || name == "" || mask == "" {
				return fmt.Errorf("--week, --name, and --mask are required")
			}

			req := map[string]string{
				"week_id":      week,
				"display_name": name,
				"marked_mask":  mask,
			}
			if team != "" {
				req["team"] = team
			}
			var result SubmitResult

			if err := client.Post("/api/v1/submit", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Week id, e.g. week1 (required)")
	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&team, "team", "", "Team tag")
	cmd.Flags().StringVar(&mask, "mask", "", "Marked mask as a decimal bitmask (required)")
	_ = cmd.MarkFlagRequired("week")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("mask")

	return cmd
}
