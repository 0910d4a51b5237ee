package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newCardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Card definition commands",
	}

	cmd.AddCommand(newCardGetCmd())
	cmd.AddCommand(newCardDefineCmd())

	return cmd
}

func newCardGetCmd() *cobra.Command {
	var week string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show the card definition for a week",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			query.Set("week", week)

			var result Card
			if err := client.Get("/api/v1/card?"+query.Encode(), &result); err != nil {
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

func newCardDefineCmd() *cobra.Command {
	var week, image string

	cmd := &cobra.Command{
		Use:   "define",
		Short: "Define a week's card from a photo (admin)",
		Long: `Define a week's card by uploading a photo of it. The cell labels are
read off the photo by the vision service. Requires the studio code.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := map[string]string{"week": week}

			var result Card
			if err := client.PostImage("/api/v1/admin/define-card", fields, image, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Week id (required)")
	cmd.Flags().StringVar(&image, "image", "", "Path to a photo of the card (required)")
	_ = cmd.MarkFlagRequired("week")
	_ = cmd.MarkFlagRequired("image")

	return cmd
}
