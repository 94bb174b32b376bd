package model

import "testing"

func TestValidationRulesHasFileRule(t *testing.T) {
	cases := []struct {
		name  string
		rules ValidationRules
		want  bool
	}{
		{"no rules", ValidationRules{}, false},
		{"file rule set", ValidationRules{File: true}, true},
		{"required but not file", ValidationRules{Required: true}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.rules.HasFileRule(); got != tc.want {
				t.Errorf("HasFileRule() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestValidationRulesIsOptional(t *testing.T) {
	required := ValidationRules{Required: true}
	if required.IsOptional() {
		t.Error("expected required rule set to not be optional")
	}

	optional := ValidationRules{}
	if !optional.IsOptional() {
		t.Error("expected zero-value rule set to be optional")
	}
}
