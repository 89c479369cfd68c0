package engine

import (
	"strings"

	"github.com/darmiel/gatecheck/internal/core"
)

const (
	// DenyReasonPrefix precedes the sorted list of triggered categories.
	DenyReasonPrefix = "Authorization required: "
	// PassReason is used when no category triggered.
	PassReason = "No authorization boundary detected"
)

// Engine holds the keyword policy and evaluates prompts against it.
// It is safe for concurrent use; nothing is mutated after New.
type Engine struct {
	policy core.Policy
}

// New creates a new Engine with the given policy.
// The policy is copied, so later changes by the caller have no effect.
// Empty phrases never fire; run the policy through validation.ValidatePolicy
// first to have them rejected instead.
func New(policy core.Policy) *Engine {
	return &Engine{
		policy: policy.Clone(),
	}
}

// Policy returns a copy of the policy the engine evaluates against.
func (e *Engine) Policy() core.Policy {
	return e.policy.Clone()
}

// Evaluate classifies the prompt as PASS or DENY.
// Matching is a case-insensitive substring search; there is no weighting,
// negation, or word-boundary handling.
func (e *Engine) Evaluate(prompt string) core.DecisionRecord {
	return e.Trace(prompt).Record
}

// Trace evaluates the prompt and records the phrases that fired per category.
func (e *Engine) Trace(prompt string) core.EvaluationTrace {
	lower := strings.ToLower(prompt)

	categories := e.policy.Categories()

	trace := core.EvaluationTrace{
		Prompt:          prompt,
		CategoryResults: make([]core.CategoryResult, 0, len(categories)),
	}

	triggered := make([]string, 0)
	for _, category := range categories {
		res := core.CategoryResult{Category: category}
		for _, phrase := range e.policy[category] {
			if phrase == "" {
				continue
			}
			if strings.Contains(lower, phrase) {
				res.Matched = true
				res.Phrases = append(res.Phrases, phrase)
			}
		}
		if res.Matched {
			triggered = append(triggered, category)
		}
		trace.CategoryResults = append(trace.CategoryResults, res)
	}

	trace.Record = decide(triggered)
	return trace
}

// decide expects triggered to be sorted already.
func decide(triggered []string) core.DecisionRecord {
	if len(triggered) == 0 {
		return core.DecisionRecord{
			Decision: core.DecisionPass,
			Reason:   PassReason,
			Signals:  core.Signals{},
		}
	}
	return core.DecisionRecord{
		Decision: core.DecisionDeny,
		Reason:   DenyReasonPrefix + strings.Join(triggered, ", "),
		Signals:  core.Signals(triggered),
	}
}
