package audit

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/darmiel/gatecheck/internal/core"
)

// Filter selects audit entries, e.g. for `audit log --where`.
type Filter struct {
	Source  string
	program *vm.Program
}

// CompileFilter compiles a boolean expr-lang expression over the audit
// fields, for example:
//
//	decision == "DENY" && "financial" in signals
//
// An empty source matches everything.
func CompileFilter(source string) (*Filter, error) {
	if source == "" {
		return &Filter{}, nil
	}
	program, err := expr.Compile(source, expr.Env(filterEnv(core.AuditEntry{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling filter '%s': %w", source, err)
	}
	return &Filter{Source: source, program: program}, nil
}

// Match reports whether the entry satisfies the filter.
func (f *Filter) Match(entry core.AuditEntry) (bool, error) {
	if f == nil || f.program == nil {
		return true, nil
	}
	out, err := expr.Run(f.program, filterEnv(entry))
	if err != nil {
		return false, fmt.Errorf("evaluating filter for matrix '%s': %w", entry.MatrixID, err)
	}
	b, ok := out.(bool)
	return ok && b, nil
}

// Apply returns the entries matching the filter, keeping their order.
func (f *Filter) Apply(entries []core.AuditEntry) ([]core.AuditEntry, error) {
	out := make([]core.AuditEntry, 0, len(entries))
	for _, e := range entries {
		ok, err := f.Match(e)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func filterEnv(e core.AuditEntry) map[string]any {
	signals := []string(e.Signals)
	if signals == nil {
		signals = []string{}
	}
	return map[string]any{
		"timestamp_utc":   e.TimestampUTC,
		"matrix_id":       e.MatrixID,
		"matrix_title":    e.MatrixTitle,
		"decision":        string(e.Decision.Normalize()),
		"reason":          e.Reason,
		"signals":         signals,
		"harness_version": e.HarnessVersion,
	}
}
