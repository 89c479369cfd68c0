package validation

import (
	"reflect"
	"testing"

	"github.com/darmiel/gatecheck/internal/core"
	"github.com/darmiel/gatecheck/internal/engine"
)

func TestValidatePolicy(t *testing.T) {
	tests := []struct {
		name    string
		policy  core.Policy
		want    core.Policy
		wantErr bool
	}{
		{
			name:   "Normalizes Case And Whitespace",
			policy: core.Policy{"financial": {" Refund ", "PAYMENT"}},
			want:   core.Policy{"financial": {"refund", "payment"}},
		},
		{
			name:   "Drops Duplicates Keeping Order",
			policy: core.Policy{"hr": {"fire", "hire", "Fire"}},
			want:   core.Policy{"hr": {"fire", "hire"}},
		},
		{
			name:    "Empty Policy",
			policy:  core.Policy{},
			wantErr: true,
		},
		{
			name:    "Empty Category Name",
			policy:  core.Policy{" ": {"x"}},
			wantErr: true,
		},
		{
			name:    "Category Without Phrases",
			policy:  core.Policy{"legal": nil},
			wantErr: true,
		},
		{
			name:    "Blank Phrase",
			policy:  core.Policy{"legal": {"nda", "  "}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidatePolicy(tt.policy)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePolicy() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ValidatePolicy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidatePolicy_DefaultPolicyIsValidAndUnchanged(t *testing.T) {
	def := engine.DefaultPolicy()

	got, err := ValidatePolicy(def)
	if err != nil {
		t.Fatalf("default policy invalid: %v", err)
	}
	if len(got) != len(def) {
		t.Fatalf("got %d categories, want %d", len(got), len(def))
	}
	for name, phrases := range def {
		if !reflect.DeepEqual(got[name], phrases) {
			t.Errorf("category %s changed: %v -> %v", name, phrases, got[name])
		}
	}
}
