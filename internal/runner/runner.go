// Package runner sequences loading, gate evaluation and audit logging for one run.
package runner

import (
	"fmt"
	"os"
	"time"

	"github.com/darmiel/gatecheck/internal/audit"
	"github.com/darmiel/gatecheck/internal/core"
	"github.com/darmiel/gatecheck/internal/engine"
	"github.com/darmiel/gatecheck/internal/logging"
	"github.com/darmiel/gatecheck/internal/matrix"
)

// Runner evaluates every loaded matrix in order and records the decisions.
type Runner struct {
	Engine *engine.Engine
	Logger logging.InternalLogger

	// Version is written into every audit entry.
	Version string

	// Now is the clock used for audit timestamps. Defaults to time.Now.
	Now func() time.Time

	// DryRun evaluates without touching the audit log.
	DryRun bool
}

// Result summarizes a completed run.
type Result struct {
	// LogPath is the audit log written by the run; empty for dry runs.
	LogPath string
	Total   int
	Denied  int
	Passed  int
	// Entries holds the entries of a dry run.
	Entries []core.AuditEntry
}

// RunAll creates outDir, truncates the run's audit log, loads the matrices
// from source and logs one entry per matrix. Any error aborts the run.
func (r *Runner) RunAll(source, outDir string) (*Result, error) {
	if r.Engine == nil {
		return nil, fmt.Errorf("runner has no engine")
	}
	now := r.Now
	if now == nil {
		now = time.Now
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory '%s': %w", outDir, err)
	}

	res := &Result{}

	var auditor core.Auditor
	if r.DryRun {
		auditor = audit.NewInMemoryAuditor()
	} else {
		res.LogPath = audit.LogPath(outDir)
		// start fresh so the report reflects only this run
		if err := audit.Reset(res.LogPath); err != nil {
			return nil, err
		}
	}

	matrices, err := matrix.Load(source)
	if err != nil {
		return nil, fmt.Errorf("loading matrices: %w", err)
	}

	if auditor == nil {
		fa, err := audit.NewFileAuditor(res.LogPath)
		if err != nil {
			return nil, err
		}
		auditor = fa
	}
	defer func() {
		_ = auditor.Close()
	}()

	r.info("Running %d tests...", len(matrices))

	for _, m := range matrices {
		record := r.Engine.Evaluate(m.UserPrompt)

		r.info("%s -> %s (%s)", m.ID, record.Decision, record.Reason)

		entry := audit.NewEntry(now(), m.ID, m.Title, record, r.Version)
		if err := auditor.Log(entry); err != nil {
			return nil, fmt.Errorf("logging matrix '%s': %w", m.ID, err)
		}

		res.Total++
		if record.Denied() {
			res.Denied++
		} else {
			res.Passed++
		}
	}

	if mem, ok := auditor.(*audit.InMemoryAuditor); ok {
		res.Entries = mem.Entries()
	}
	if err := auditor.Close(); err != nil {
		return nil, fmt.Errorf("closing audit log: %w", err)
	}

	if res.LogPath != "" {
		r.debug("Audit log saved to: %s", res.LogPath)
	}
	return res, nil
}

func (r *Runner) info(format string, args ...any) {
	if r.Logger != nil {
		r.Logger.Info(format, args...)
	}
}

func (r *Runner) debug(format string, args ...any) {
	if r.Logger != nil {
		r.Logger.Debug(format, args...)
	}
}
