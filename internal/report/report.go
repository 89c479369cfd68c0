// Package report renders the text and CSV summaries of a single run's audit log.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/darmiel/gatecheck/internal/audit"
	"github.com/darmiel/gatecheck/internal/core"
)

const (
	TextFileName = "authorization_report.txt"
	CSVFileName  = "authorization_report.csv"

	generatedLayout = "2006-01-02 15:04:05Z"
)

// CSVHeader lists the columns of the tabular export.
var CSVHeader = []string{
	"timestamp_utc",
	"matrix_id",
	"matrix_title",
	"decision",
	"reason",
	"signals",
	"harness_version",
}

// Options control report generation.
type Options struct {
	// CSV also writes the tabular export.
	CSV bool
	// Now is the clock used for the generation timestamp. Defaults to time.Now.
	Now func() time.Time
}

// Status describes what the report was built from.
type Status int

const (
	StatusOK Status = iota
	StatusLogMissing
	StatusLogEmpty
)

// Result describes the files written by Generate.
type Result struct {
	TextPath string
	CSVPath  string // empty when no CSV was requested
	Status   Status
	Skipped  int
	Summary  Summary
}

// Generate reads the audit log and writes the report files to outDir,
// replacing any previous report. A missing or empty log still produces a
// report stating that condition.
func Generate(logPath, outDir string, opts Options) (*Result, error) {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory '%s': %w", outDir, err)
	}

	res := &Result{
		TextPath: filepath.Join(outDir, TextFileName),
		Status:   StatusOK,
	}
	if opts.CSV {
		res.CSVPath = filepath.Join(outDir, CSVFileName)
	}

	read, err := audit.ReadLog(logPath)
	switch {
	case errors.Is(err, audit.ErrLogNotFound):
		res.Status = StatusLogMissing
	case err != nil:
		return nil, err
	default:
		res.Skipped = read.Skipped
		if len(read.Entries) == 0 {
			res.Status = StatusLogEmpty
		} else {
			res.Summary = Summarize(read.Entries)
		}
	}

	text := RenderText(res.Summary, res.Status, now())
	if err := os.WriteFile(res.TextPath, []byte(text), 0o644); err != nil {
		return nil, fmt.Errorf("writing text report: %w", err)
	}

	if opts.CSV {
		if err := writeCSV(res.CSVPath, res.Summary.Entries); err != nil {
			return nil, err
		}
	}

	return res, nil
}

// RenderText renders the human readable report.
func RenderText(s Summary, status Status, generated time.Time) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line("AI ACTION AUTHORIZATION TEST REPORT")
	line("===================================")
	line("Generated (UTC): %s", generated.UTC().Format(generatedLayout))
	line("")

	switch status {
	case StatusLogMissing:
		line("No audit log found.")
		return b.String()
	case StatusLogEmpty:
		line("Audit log exists but contains no readable entries.")
		return b.String()
	}

	line("SUMMARY")
	line("-------")
	line("Total Matrices: %d", s.Total)
	line("DENY: %d", s.Denied)
	line("PASS: %d", s.Passed)
	if s.Unknown > 0 {
		line("UNKNOWN: %d", s.Unknown)
	}
	line("DENY Rate: %.1f%%", s.DenyRate())
	line("")

	if len(s.SignalFrequency) > 0 {
		line("DENY SIGNAL FREQUENCY")
		line("---------------------")
		for _, sc := range s.SignalFrequency {
			line("%s: %d", sc.Signal, sc.Count)
		}
		line("")
	}

	line("DETAILS")
	line("-------")
	for _, e := range s.Entries {
		id := e.MatrixID
		if id == "" {
			id = core.UnknownMatrixID
		}
		if e.MatrixTitle != "" {
			line("Matrix: %s — %s", id, e.MatrixTitle)
		} else {
			line("Matrix: %s", id)
		}
		line("Decision: %s", e.Decision)
		line("Reason: %s", e.Reason)
		line("Signals Detected: %s", JoinSignals(e.Signals, "(none)"))
		line("")
	}

	line("----")
	line("This report was generated by gatecheck, the AI action authorization test harness.")

	return b.String()
}

// JoinSignals joins signals with ", " or returns empty when there are none.
func JoinSignals(signals core.Signals, empty string) string {
	if len(signals) == 0 {
		return empty
	}
	return strings.Join(signals, ", ")
}

func writeCSV(path string, entries []core.AuditEntry) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("opening csv report: %w", err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	w := csv.NewWriter(f)
	if err := w.Write(CSVHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, e := range entries {
		if err := w.Write(csvRow(e)); err != nil {
			return fmt.Errorf("writing csv row for '%s': %w", e.MatrixID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing csv report: %w", err)
	}
	return f.Close()
}

func csvRow(e core.AuditEntry) []string {
	return []string{
		e.TimestampUTC,
		e.MatrixID,
		e.MatrixTitle,
		string(e.Decision),
		e.Reason,
		JoinSignals(e.Signals, ""),
		e.HarnessVersion,
	}
}
