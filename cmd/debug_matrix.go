package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/darmiel/gatecheck/internal/core"
	"github.com/darmiel/gatecheck/internal/matrix"
)

var debugMatrixFormat string

var debugMatrixCmd = &cobra.Command{
	Use:   "matrix PATH",
	Short: "Prints the matrices parsed from a file or directory",
	Long: `Loads matrices exactly like "gatecheck run" does and prints the decoded values
without evaluating them. Useful to check ids and prompts of hand-written files.

Formats: yaml (default), json, or spew for a raw Go dump.`,
	Example: `  gatecheck debug matrix ./matrices
  gatecheck debug matrix ./matrices/refund.yaml --format spew`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		matrices, err := matrix.Load(args[0])
		if err != nil {
			return err
		}

		log.Info().Msgf("Loaded %d matrices", len(matrices))
		return renderMatrices(cmd.OutOrStdout(), matrices, debugMatrixFormat)
	},
}

func renderMatrices(w io.Writer, matrices []core.Matrix, format string) error {
	for i, m := range matrices {
		switch strings.ToLower(format) {
		case "yaml", "yml", "":
			data, err := yaml.Marshal(m)
			if err != nil {
				return fmt.Errorf("encoding matrix '%s': %w", m.ID, err)
			}
			if i > 0 {
				_, _ = fmt.Fprintln(w, "---")
			}
			_, _ = fmt.Fprintf(w, "# %s\n%s", m.Source, data)
		case "json":
			data, err := json.Marshal(m)
			if err != nil {
				return fmt.Errorf("encoding matrix '%s': %w", m.ID, err)
			}
			_, _ = fmt.Fprintf(w, "%s\n", data)
		case "spew":
			_, _ = fmt.Fprintf(w, "%s (%s):\n%s", m.ID, m.Source, spew.Sdump(m))
		default:
			return fmt.Errorf("unknown format '%s' (use yaml, json or spew)", format)
		}
	}
	return nil
}

func init() {
	debugCmd.AddCommand(debugMatrixCmd)

	debugMatrixCmd.Flags().StringVar(&debugMatrixFormat, "format", "yaml", "Output format (yaml, json, spew)")
}
