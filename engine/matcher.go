package engine

import (
	"cmp"
	"slices"
	"strings"
)

// MatchClauses returns the candidates satisfying the criteria: clause
// type equal to the criterion's type, confidence at or above the
// threshold, and, when keywords are present, at least one keyword
// occurring in the clause text (case-insensitive). The result is ordered
// by descending confidence, then ascending page, so identical inputs
// always produce identical output. An empty result is not an error; it
// signals a missing clause to the evaluator.
func MatchClauses(criteria MatchCriteria, candidates []Clause) []Clause {
	matched := make([]Clause, 0)

	for _, clause := range candidates {
		if clause.ClauseType != criteria.ClauseType {
			continue
		}
		if clause.Confidence < criteria.MinConfidence {
			continue
		}
		if !matchesKeywords(criteria.Keywords, clause.Text) {
			continue
		}
		matched = append(matched, clause)
	}

	slices.SortStableFunc(matched, func(a, b Clause) int {
		if c := cmp.Compare(b.Confidence, a.Confidence); c != 0 {
			return c
		}
		return cmp.Compare(a.Page, b.Page)
	})

	return matched
}

func matchesKeywords(keywords []string, text string) bool {
	if len(keywords) == 0 {
		return true
	}

	lower := strings.ToLower(text)
	return slices.ContainsFunc(keywords, func(k string) bool {
		return k != "" && strings.Contains(lower, strings.ToLower(k))
	})
}
