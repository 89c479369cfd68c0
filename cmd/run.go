package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/darmiel/gatecheck/internal/logging"
	"github.com/darmiel/gatecheck/internal/report"
	"github.com/darmiel/gatecheck/internal/runner"
)

var runDryRun bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the test matrices through the authorization gate",
	Long: `Loads every matrix from --matrices (a single YAML file or a directory of
*.yaml / *.yml files), evaluates each prompt, appends one audit entry per
matrix to <out>/audit.jsonl and renders the run report.

The audit log is truncated at the start of every run, so the report only
reflects the current run.`,
	Example: `  # run all matrices in a directory
  gatecheck run --matrices ./matrices --out ./out

  # single matrix, text report only
  gatecheck run -m ./matrices/refund.yaml -o ./out --csv=false

  # evaluate without writing anything
  gatecheck run -m ./matrices -o ./out --dry-run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		matrices := viper.GetString(RunMatricesKey)
		if matrices == "" {
			return fmt.Errorf("matrices source not specified (use --matrices or set GATECHECK_RUN_MATRICES)")
		}
		out := viper.GetString(RunOutKey)
		if out == "" {
			return fmt.Errorf("output directory not specified (use --out or set GATECHECK_RUN_OUT)")
		}

		eng, err := f.GetEngine()
		if err != nil {
			return err
		}

		runLogger := log.With().Str("run_id", xid.New().String()).Logger()
		runLogger.Debug().
			Str("matrices", matrices).
			Str("out", out).
			Bool("dry_run", runDryRun).
			Msg("starting run")

		var progress logging.InternalLogger = logging.NewWriterLogger(cmd.OutOrStdout())
		if viper.GetString(logging.FormatKey) == logging.FormatJSON {
			// mirror progress as structured events for log collectors
			progress = logging.NewMultiLogger(progress, logging.NewZLogger(runLogger))
		}

		r := &runner.Runner{
			Engine:  eng,
			Logger:  progress,
			Version: f.Version(),
			DryRun:  runDryRun,
		}
		res, err := r.RunAll(matrices, out)
		if err != nil {
			return err
		}

		printRunSummary(res)

		if runDryRun {
			fmt.Println(faint("Dry run: no audit log or report written."))
			return nil
		}

		if _, err := os.Stat(res.LogPath); err != nil {
			fmt.Println("No audit log found — report not generated.")
			return nil
		}

		rep, err := report.Generate(res.LogPath, out, report.Options{
			CSV: viper.GetBool(RunCSVKey),
		})
		if err != nil {
			return err
		}
		if rep.Skipped > 0 {
			runLogger.Warn().Msgf("skipped %d unreadable audit log lines", rep.Skipped)
		}

		fmt.Printf("Authorization report written to: %s\n", rep.TextPath)
		if rep.CSVPath != "" {
			fmt.Printf("CSV report written to: %s\n", rep.CSVPath)
		}
		runLogger.Debug().Str("log", res.LogPath).Msg("run complete")
		return nil
	},
}

func printRunSummary(res *runner.Result) {
	rate := 0.0
	if res.Total > 0 {
		rate = float64(res.Denied) / float64(res.Total) * 100
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Total", "DENY", "PASS", "DENY Rate"})
	t.AppendRow(table.Row{
		res.Total,
		red(res.Denied),
		green(res.Passed),
		fmt.Sprintf("%.1f%%", rate),
	})
	applyTableFormat(t)
	t.Render()
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("matrices", "m", "", "Matrix YAML file or directory of *.yaml / *.yml files")
	_ = viper.BindPFlag(RunMatricesKey, runCmd.Flags().Lookup("matrices"))

	runCmd.Flags().StringP("out", "o", "", "Output directory for the audit log and reports")
	_ = viper.BindPFlag(RunOutKey, runCmd.Flags().Lookup("out"))

	runCmd.Flags().Bool("csv", true, "Also write the CSV report")
	_ = viper.BindPFlag(RunCSVKey, runCmd.Flags().Lookup("csv"))

	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Evaluate and print decisions without writing the audit log or reports")
}
