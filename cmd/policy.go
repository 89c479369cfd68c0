package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var policyFormat string

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Inspect the authorization policy",
}

var policyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the trigger phrases of every policy category",
	Example: `  gatecheck policy show
  gatecheck policy show --format yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := f.GetEngine()
		if err != nil {
			return err
		}
		policy := eng.Policy()

		switch strings.ToLower(policyFormat) {
		case "yaml", "yml":
			data, err := yaml.Marshal(policy)
			if err != nil {
				return fmt.Errorf("encoding policy: %w", err)
			}
			_, _ = cmd.OutOrStdout().Write(data)
			return nil
		case "table", "":
		default:
			return fmt.Errorf("unknown format '%s' (use table or yaml)", policyFormat)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Category", "Phrases"})
		for _, category := range policy.Categories() {
			t.AppendRow(table.Row{bold(category), strings.Join(policy[category], ", ")})
		}
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 2, WidthMax: 80},
		})
		applyTableFormat(t)
		t.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(policyCmd)
	policyCmd.AddCommand(policyShowCmd)

	policyShowCmd.Flags().StringVar(&policyFormat, "format", "table", "Output format (table, yaml)")
}
