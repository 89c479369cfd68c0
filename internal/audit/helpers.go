package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/darmiel/gatecheck/internal/core"
)

// LogFileName is the audit log written inside a run's output directory.
const LogFileName = "audit.jsonl"

// LogPath returns the audit log location for an output directory.
func LogPath(outDir string) string {
	return filepath.Join(outDir, LogFileName)
}

// NewEntry assembles an audit entry. The version is passed explicitly and
// never influences the decision.
func NewEntry(now time.Time, matrixID, matrixTitle string, record core.DecisionRecord, version string) core.AuditEntry {
	signals := record.Signals
	if signals == nil {
		signals = core.Signals{}
	}
	return core.AuditEntry{
		TimestampUTC:   core.FormatTimestamp(now),
		MatrixID:       matrixID,
		MatrixTitle:    matrixTitle,
		Decision:       record.Decision,
		Reason:         record.Reason,
		Signals:        signals,
		HarnessVersion: version,
	}
}

// LogEvent appends a single entry to path and closes the file again.
func LogEvent(path, matrixID, matrixTitle string, record core.DecisionRecord, version string, now time.Time) error {
	a, err := NewFileAuditor(path)
	if err != nil {
		return err
	}
	if err := a.Log(NewEntry(now, matrixID, matrixTitle, record, version)); err != nil {
		_ = a.Close()
		return err
	}
	if err := a.Close(); err != nil {
		return fmt.Errorf("closing audit log file: %w", err)
	}
	return nil
}

// Reset truncates the log at path, creating it if needed.
func Reset(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("resetting audit log '%s': %w", path, err)
	}
	return f.Close()
}
