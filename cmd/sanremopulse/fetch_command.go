package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFetchCommand(serataFlag *int) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Collect Spotify and Reddit signals for a serata and write the dataset CSV",
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

			result, err := container.Collector.Collect(cmd.Context(), cfg.Serata, contestants, cfg.ThreadID(cfg.Serata))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderMetricsTable(result.Rows, result.Variant))
			fmt.Fprintf(cmd.OutOrStdout(), "Dataset scritto in %s (%d righe)\n", result.RelPath, len(result.Rows))
			return nil
		},
	}
}
