package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/darmiel/gatecheck/internal/audit"
	"github.com/darmiel/gatecheck/internal/core"
)

var (
	gateExplain bool
	gateJSON    bool
	gateRecord  string
	gateID      string
)

var gateCmd = &cobra.Command{
	Use:   "gate PROMPT...",
	Short: "Evaluate a single prompt against the authorization policy",
	Long: `Evaluates one prompt and prints the decision. Pass "-" to read the prompt
from stdin. With --record the decision is appended to the audit log of the
given output directory; the log is not truncated.`,
	Example: `  gatecheck gate "please issue a refund"
  echo "restart the database" | gatecheck gate - --explain
  gatecheck gate --record ./out --id manual-01 "wipe the disk"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt, err := readPrompt(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}

		eng, err := f.GetEngine()
		if err != nil {
			return err
		}
		trace := eng.Trace(prompt)

		if gateRecord != "" {
			logPath, err := recordDecision(gateRecord, gateID, trace.Record, f.Version())
			if err != nil {
				return err
			}
			log.Debug().Str("log", logPath).Str("matrix_id", gateID).Msg("recorded decision")
		}

		if gateJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if gateExplain {
				return enc.Encode(trace)
			}
			return enc.Encode(trace.Record)
		}

		if gateExplain {
			printTrace(cmd.OutOrStdout(), &trace)
			return nil
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", colorDecision(trace.Record.Decision), trace.Record.Reason)
		return nil
	},
}

// recordDecision appends the record to the audit log in outDir, creating
// the directory if needed. The log is never truncated.
func recordDecision(outDir, matrixID string, record core.DecisionRecord, version string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory '%s': %w", outDir, err)
	}
	logPath := audit.LogPath(outDir)
	if err := audit.LogEvent(logPath, matrixID, "", record, version, time.Now()); err != nil {
		return "", err
	}
	return logPath, nil
}

func readPrompt(stdin io.Reader, args []string) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading prompt from stdin: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}
	return strings.Join(args, " "), nil
}

func printTrace(w io.Writer, trace *core.EvaluationTrace) {
	_, _ = fmt.Fprintf(w, "\n%s for prompt: %s\n", bold("Evaluation Trace"), truncate(trace.Prompt, 60))
	_, _ = fmt.Fprintln(w, faint("---------------------------------------------------"))

	for _, res := range trace.CategoryResults {
		icon := faint("·")
		if res.Matched {
			icon = redCross
		}
		_, _ = fmt.Fprintf(w, "%s %s\n", icon, bold(res.Category))
		for _, phrase := range res.Phrases {
			_, _ = fmt.Fprintf(w, "    ↳ %s\n", cyan(phrase))
		}
	}

	_, _ = fmt.Fprintln(w, "---------------------------------------------------")
	if trace.Record.Denied() {
		_, _ = fmt.Fprintf(w, "Decision: %s\n", colorDecision(trace.Record.Decision))
	} else {
		_, _ = fmt.Fprintf(w, "Decision: %s %s\n", colorDecision(trace.Record.Decision), greenCheck)
	}
	_, _ = fmt.Fprintf(w, "Reason:   %s\n\n", trace.Record.Reason)
}

func init() {
	rootCmd.AddCommand(gateCmd)

	gateCmd.Flags().BoolVarP(&gateExplain, "explain", "e", false, "Show which phrases triggered each category")
	gateCmd.Flags().BoolVar(&gateJSON, "json", false, "Print the result as JSON")
	gateCmd.Flags().StringVar(&gateRecord, "record", "", "Append the decision to the audit log in this output directory")
	gateCmd.Flags().StringVar(&gateID, "id", "adhoc", "Matrix id used with --record")
}
