package validation

import (
	"fmt"
	"strings"

	"github.com/darmiel/gatecheck/internal/core"
)

// ValidatePolicy checks the keyword table and returns a normalized copy:
// phrases are lower-cased and trimmed, duplicates inside a category dropped.
func ValidatePolicy(policy core.Policy) (core.Policy, error) {
	if len(policy) == 0 {
		return nil, fmt.Errorf("policy has no categories")
	}

	// iterate in a stable order so the first reported error is deterministic
	names := policy.Categories()

	validPolicy := make(core.Policy, len(policy))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("policy contains a category with an empty name")
		}

		phrases := policy[name]
		if len(phrases) == 0 {
			return nil, fmt.Errorf("category '%s' has no trigger phrases", name)
		}

		seen := make(map[string]struct{}, len(phrases))
		normalized := make([]string, 0, len(phrases))
		for i, phrase := range phrases {
			p := strings.ToLower(strings.TrimSpace(phrase))
			if p == "" {
				return nil, fmt.Errorf("category '%s' has an empty phrase at index %d", name, i)
			}
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			normalized = append(normalized, p)
		}

		validPolicy[name] = normalized
	}

	return validPolicy, nil
}
