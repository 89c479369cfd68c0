package core

import (
	"slices"
	"strings"
)

// UnknownMatrixID is used when a matrix definition carries no id.
const UnknownMatrixID = "unknown"

// Decision is the outcome of a gate evaluation.
type Decision string

const (
	DecisionPass Decision = "PASS"
	DecisionDeny Decision = "DENY"
)

// IsValid reports whether the decision is one the gate can produce.
// Values read back from an audit log may be anything.
func (d Decision) IsValid() bool {
	switch d {
	case DecisionPass, DecisionDeny:
		return true
	default:
		return false
	}
}

// Normalize upper-cases the decision so "deny" and "DENY" bucket together.
func (d Decision) Normalize() Decision {
	return Decision(strings.ToUpper(strings.TrimSpace(string(d))))
}

// Matrix is one test case: an identifier paired with a prompt to evaluate.
type Matrix struct {
	// ID identifies the matrix within a run.
	ID string `mapstructure:"id" yaml:"id" json:"id"`

	// Title is an optional human-readable label.
	Title string `mapstructure:"title" yaml:"title,omitempty" json:"title,omitempty"`

	// UserPrompt is the text handed to the gate.
	UserPrompt string `mapstructure:"user_prompt" yaml:"user_prompt" json:"user_prompt"`

	// Source is the file the matrix was loaded from.
	Source string `mapstructure:"-" yaml:"-" json:"-"`
}

// DecisionRecord is the result of evaluating a single prompt.
type DecisionRecord struct {
	Decision Decision `json:"decision"`
	Reason   string   `json:"reason"`
	// Signals are the triggered policy categories, sorted lexically.
	Signals Signals `json:"signals"`
}

// Denied is a shorthand for Decision == DENY.
func (r DecisionRecord) Denied() bool {
	return r.Decision == DecisionDeny
}

// Policy maps a category name to its ordered list of trigger phrases.
// A category is triggered when any of its phrases occurs in the prompt.
type Policy map[string][]string

// Categories returns the category names in lexical order.
func (p Policy) Categories() []string {
	out := make([]string, 0, len(p))
	for name := range p {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// Clone returns a deep copy so callers can modify the result freely.
func (p Policy) Clone() Policy {
	out := make(Policy, len(p))
	for name, phrases := range p {
		out[name] = append([]string(nil), phrases...)
	}
	return out
}
