package report

import (
	"sort"

	"github.com/darmiel/gatecheck/internal/core"
)

// UnknownDecision replaces a missing decision value.
const UnknownDecision core.Decision = "UNKNOWN"

// SignalCount is the number of DENY entries a signal appeared in.
type SignalCount struct {
	Signal string
	Count  int
}

// Summary is everything the renderers need, derived from the audit entries.
type Summary struct {
	Total   int
	Denied  int
	Passed  int
	Unknown int

	// SignalFrequency counts signals of DENY entries only, most frequent first.
	SignalFrequency []SignalCount

	// Entries are sorted DENY, PASS, anything else, then by matrix id.
	Entries []core.AuditEntry
}

// DenyRate is the DENY share in percent; zero when there are no entries.
func (s Summary) DenyRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Denied) / float64(s.Total) * 100
}

// Summarize computes counts, DENY signal frequency and detail ordering.
// Decisions are compared case-insensitively; anything that is not PASS or
// DENY is counted as unknown, never merged into either bucket.
func Summarize(entries []core.AuditEntry) Summary {
	s := Summary{Total: len(entries)}

	counts := make(map[string]int)
	var order []string

	sorted := make([]core.AuditEntry, 0, len(entries))
	for _, e := range entries {
		e.Decision = e.Decision.Normalize()
		if e.Decision == "" {
			e.Decision = UnknownDecision
		}

		switch e.Decision {
		case core.DecisionDeny:
			s.Denied++
			for _, sig := range e.Signals {
				if _, seen := counts[sig]; !seen {
					order = append(order, sig)
				}
				counts[sig]++
			}
		case core.DecisionPass:
			s.Passed++
		default:
			s.Unknown++
		}

		sorted = append(sorted, e)
	}

	s.SignalFrequency = make([]SignalCount, 0, len(order))
	for _, sig := range order {
		s.SignalFrequency = append(s.SignalFrequency, SignalCount{Signal: sig, Count: counts[sig]})
	}
	// stable: ties keep first-encountered order
	sort.SliceStable(s.SignalFrequency, func(i, j int) bool {
		return s.SignalFrequency[i].Count > s.SignalFrequency[j].Count
	})

	sort.SliceStable(sorted, func(i, j int) bool {
		bi, bj := bucket(sorted[i].Decision), bucket(sorted[j].Decision)
		if bi != bj {
			return bi < bj
		}
		return sorted[i].MatrixID < sorted[j].MatrixID
	})
	s.Entries = sorted

	return s
}

func bucket(d core.Decision) int {
	switch d {
	case core.DecisionDeny:
		return 0
	case core.DecisionPass:
		return 1
	default:
		return 2
	}
}
