package cmd

import (
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/darmiel/gatecheck/internal/core"
)

var (
	bold  = color.New(color.Bold).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()

	greenCheck = green("✔")
	redCross   = red("✖")
)

func colorDecision(d core.Decision) string {
	switch d.Normalize() {
	case core.DecisionDeny:
		return bold(red(string(d)))
	case core.DecisionPass:
		return bold(green(string(d)))
	default:
		return bold(color.YellowString(string(d)))
	}
}

func applyTableFormat(t table.Writer) {
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	if color.NoColor {
		t.Style().Color = table.ColorOptions{}
	}
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
