package engine_test

import (
	"testing"

	"github.com/parley-labs/parley/engine"
)

func TestMatchClauses(t *testing.T) {
	candidates := []engine.Clause{
		{ClauseType: "indemnity", Text: "Each party shall indemnify the other.", Confidence: 0.82, Page: 4, RiskLevel: engine.RiskLow},
		{ClauseType: "liability", Text: "Liability is limited to fees paid.", Confidence: 0.91, Page: 2, RiskLevel: engine.RiskLow},
		{ClauseType: "indemnity", Text: "Supplier shall hold harmless the customer.", Confidence: 0.95, Page: 7, RiskLevel: engine.RiskMedium},
		{ClauseType: "indemnity", Text: "Indemnification survives termination.", Confidence: 0.95, Page: 3, RiskLevel: engine.RiskLow},
		{ClauseType: "indemnity", Text: "General boilerplate.", Confidence: 0.41, Page: 9, RiskLevel: engine.RiskLow},
	}

	tests := []struct {
		name     string
		criteria engine.MatchCriteria
		want     []int // indices into candidates, in expected output order
	}{
		{
			"type and threshold",
			engine.MatchCriteria{ClauseType: "indemnity", MinConfidence: 0.5},
			[]int{3, 2, 0},
		},
		{
			"equal confidence breaks tie on page",
			engine.MatchCriteria{ClauseType: "indemnity", MinConfidence: 0.9},
			[]int{3, 2},
		},
		{
			"keyword narrows matches",
			engine.MatchCriteria{ClauseType: "indemnity", MinConfidence: 0.5, Keywords: []string{"hold harmless"}},
			[]int{2},
		},
		{
			"keyword match is case-insensitive",
			engine.MatchCriteria{ClauseType: "indemnity", MinConfidence: 0.5, Keywords: []string{"INDEMNIF"}},
			[]int{3, 0},
		},
		{
			"no candidates of type",
			engine.MatchCriteria{ClauseType: "termination", MinConfidence: 0},
			nil,
		},
		{
			"threshold excludes everything",
			engine.MatchCriteria{ClauseType: "liability", MinConfidence: 0.99},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.MatchClauses(tt.criteria, candidates)

			if len(got) != len(tt.want) {
				t.Fatalf("matched %d clauses, want %d", len(got), len(tt.want))
			}
			for i, idx := range tt.want {
				if got[i] != candidates[idx] {
					t.Errorf("position %d: got %+v, want candidate %d", i, got[i], idx)
				}
			}
		})
	}
}

func TestMatchClausesEmptyResultIsNotNilError(t *testing.T) {
	got := engine.MatchClauses(engine.MatchCriteria{ClauseType: "indemnity"}, nil)
	if got == nil || len(got) != 0 {
		t.Errorf("want empty non-nil slice, got %v", got)
	}
}
