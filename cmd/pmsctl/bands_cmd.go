package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pms/internal/platform/config"
)

func newBandsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bands",
		Short: "Rating band tools",
	}
	cmd.AddCommand(newBandsCheckCmd())
	return cmd
}

func newBandsCheckCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a rating band file and print the resulting table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				file = config.Load().RatingBandsFile
			}
			bands, err := config.LoadRatingBands(file)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "MIN SCORE\tLABEL")
			for _, band := range bands.Bands() {
				fmt.Fprintf(tw, "%g\t%s\n", band.MinScore, band.Label)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Rating bands YAML (defaults to RATING_BANDS_FILE, then built-in bands)")
	return cmd
}
