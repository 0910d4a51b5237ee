package cli

import (
	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	var week, image string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a card photo for handwritten marks",
		Long: `Scan a photo of your marked card. The detected marks are merged with
your stored submission and returned; nothing is saved until you submit
the merged mask.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := map[string]string{}
			if week != "" {
				fields["week"] = week
			}

			var result ScanResult
			if err := client.PostImage("/api/v1/scan", fields, image, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Week id (detected from the photo if omitted)")
	cmd.Flags().StringVar(&image, "image", "", "Path to a photo of the card (required)")
	_ = cmd.MarkFlagRequired("image")

	return cmd
}
