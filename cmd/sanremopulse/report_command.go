package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReportCommand(serataFlag *int) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Run the full pipeline: collect, publish the dataset, and queue a report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := setup(cmd, *serataFlag, true)
			if err != nil {
				return err
			}
			defer container.Close()

			cfg := container.Config
			contestants, err := container.Lineup.Contestants(cmd.Context(), cfg.Serata)
			if err != nil {
				return fmt.Errorf("lineup resolution failed: %w", err)
			}

			reportID, err := container.Pipeline.Run(cmd.Context(), cfg.Serata, contestants, cfg.ThreadID(cfg.Serata))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Report in coda: %s\n", reportID)
			return nil
		},
	}
}
