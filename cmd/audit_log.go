package cmd

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/darmiel/gatecheck/internal/audit"
	"github.com/darmiel/gatecheck/internal/report"
)

var auditWhere string

// auditLogCmd represents the audit log command
var auditLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Display audit log entries",
	Long: `Reads the JSON-lines audit log of a run and prints it as a table.

--where takes a boolean expression over the entry fields (timestamp_utc,
matrix_id, matrix_title, decision, reason, signals, harness_version).`,
	Example: `  gatecheck audit log --out ./out
  gatecheck audit log --out ./out --where 'decision == "DENY" && "financial" in signals'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, err := cmd.Flags().GetInt("limit")
		if err != nil {
			return err
		}

		filter, err := audit.CompileFilter(auditWhere)
		if err != nil {
			return err
		}

		logPath, err := f.ResolveLogPath()
		if err != nil {
			return err
		}

		read, err := audit.ReadLog(logPath)
		if err != nil {
			return err
		}
		if read.Skipped > 0 {
			log.Warn().Msgf("skipped %d unreadable lines", read.Skipped)
		}

		entries, err := filter.Apply(read.Entries)
		if err != nil {
			return err
		}
		if limit > 0 && len(entries) > limit {
			entries = entries[len(entries)-limit:]
		}

		log.Info().Msgf("Showing %d of %d audit entries", len(entries), len(read.Entries))

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{
			"Time", "Matrix", "Title", "Decision", "Signals",
		})

		for _, e := range entries {
			t.AppendRow(table.Row{
				e.TimestampUTC,
				truncate(e.MatrixID, 30),
				truncate(e.MatrixTitle, 35),
				colorDecision(e.Decision),
				report.JoinSignals(e.Signals, "-"),
			})
		}

		applyTableFormat(t)
		t.Render()
		return nil
	},
}

func init() {
	auditCmd.AddCommand(auditLogCmd)

	f.bindOutFlag(auditLogCmd.Flags())
	f.bindLogFlag(auditLogCmd.Flags())
	auditLogCmd.Flags().StringVarP(&auditWhere, "where", "w", "", "Filter expression")
	auditLogCmd.Flags().IntP("limit", "n", 25, "Number of most recent entries to show (0 for all)")
}
