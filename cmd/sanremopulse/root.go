package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sanremolab/sanremo-pulse-go/internal/app"
	"github.com/sanremolab/sanremo-pulse-go/internal/config"
	"github.com/sanremolab/sanremo-pulse-go/internal/util"
)

func newRootCommand() *cobra.Command {
	var serataFlag int

	rootCmd := &cobra.Command{
		Use:           "sanremopulse",
		Short:         "Sanremo audience-pulse datasets, reports, and site",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().IntVar(&serataFlag, "serata", 0, "Festival night to work on (1-5, overrides SERATA)")

	rootCmd.AddCommand(newFetchCommand(&serataFlag))
	rootCmd.AddCommand(newReportCommand(&serataFlag))
	rootCmd.AddCommand(newSiteCommand())

	return rootCmd
}

// setup loads configuration and assembles the service container. The serata
// flag wins over the SERATA variable; validation happens here, before
// anything touches the network.
func setup(cmd *cobra.Command, serataFlag int, serataRequired bool) (*app.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if serataFlag != 0 {
		if err := config.ValidateSerata(serataFlag); err != nil {
			return nil, err
		}
		cfg.Serata = serataFlag
	}
	if serataRequired && cfg.Serata == 0 {
		return nil, fmt.Errorf("serata is required: pass --serata or set SERATA")
	}

	logger := util.NewLogger(cfg.Logging.Level)

	return app.Build(cmd.Context(), cfg, logger)
}
