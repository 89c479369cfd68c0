package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/darmiel/gatecheck/internal/report"
)

var reportCSV bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Regenerate the report from an existing audit log",
	Example: `  gatecheck report --out ./out
  gatecheck report --out ./reports --log ./out/audit.jsonl --csv=false`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := f.ResolveOutDir()
		if err != nil {
			return err
		}
		logPath, err := f.ResolveLogPath()
		if err != nil {
			return err
		}

		rep, err := report.Generate(logPath, out, report.Options{CSV: reportCSV})
		if err != nil {
			return err
		}

		switch rep.Status {
		case report.StatusLogMissing:
			log.Warn().Msgf("no audit log found at %s", logPath)
		case report.StatusLogEmpty:
			log.Warn().Msgf("audit log %s contains no readable entries", logPath)
		}
		if rep.Skipped > 0 {
			log.Warn().Msgf("skipped %d unreadable audit log lines", rep.Skipped)
		}

		fmt.Printf("Authorization report written to: %s\n", rep.TextPath)
		if rep.CSVPath != "" {
			fmt.Printf("CSV report written to: %s\n", rep.CSVPath)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	f.bindOutFlag(reportCmd.Flags())
	f.bindLogFlag(reportCmd.Flags())
	reportCmd.Flags().BoolVar(&reportCSV, "csv", true, "Also write the CSV report")
}
