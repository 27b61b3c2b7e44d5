package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func newSiteCommand() *cobra.Command {
	var reportIDFlag string
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "site",
		Short: "Generate the static page of report links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := setup(cmd, 0, false)
			if err != nil {
				return err
			}
			defer container.Close()

			reportID := resolveReportID(reportIDFlag, container.Config.GitHub.ProjectDir)
			if err := container.Site.Build(cmd.Context(), reportID, outputFlag); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Pagina generata: %s\n", outputFlag)
			return nil
		},
	}

	cmd.Flags().StringVar(&reportIDFlag, "report-id", "", "Report to wait for before rendering (overrides NEW_REPORT_ID and report_id.txt)")
	cmd.Flags().StringVar(&outputFlag, "output", filepath.Join("site", "index.html"), "Output path of the generated page")

	return cmd
}

// resolveReportID finds the freshly queued report to wait for: flag, then
// NEW_REPORT_ID, then the report_id.txt the pipeline leaves behind. Empty
// means render whatever reports already exist.
func resolveReportID(flagValue, projectDir string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("NEW_REPORT_ID"); env != "" {
		return env
	}
	data, err := os.ReadFile(filepath.Join(projectDir, "report_id.txt"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
