package cli

import (
	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	var week string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove this device's submission for a week",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"week_id": week}

			var result struct {
				OK bool `json:"ok"`
			}
			if err := client.Post("/api/v1/delete", req, &result); err != nil {
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
