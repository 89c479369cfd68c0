package core

// EvaluationTrace captures which phrases fired for a single prompt.
type EvaluationTrace struct {
	// Prompt is the text as it was handed to the gate.
	Prompt string `yaml:"prompt" json:"prompt"`

	// CategoryResults contains one entry per policy category, sorted by name.
	CategoryResults []CategoryResult `yaml:"category_results" json:"category_results"`

	// Record is the final decision.
	Record DecisionRecord `yaml:"record" json:"record"`
}

// CategoryResult captures why a category triggered or stayed silent.
type CategoryResult struct {
	Category string   `yaml:"category" json:"category"`
	Matched  bool     `yaml:"matched" json:"matched"`
	Phrases  []string `yaml:"phrases,omitempty" json:"phrases,omitempty"`
}
