package engine

import (
	"fmt"
	"slices"
)

// BuildRecommendations derives one candidate recommendation per rule with
// status missing, non_compliant, or review_required, merges candidates
// whose clause types overlap, and returns the list sorted by priority
// descending with playbook order breaking ties. Downstream UI and exports
// depend on this ordering byte-for-byte, so both the merge and the sort
// are deterministic: candidates are built in playbook order and the sort
// is stable.
func BuildRecommendations(cfg Config, playbook Playbook, results []ComplianceResult) []Recommendation {
	merged := make([]Recommendation, 0)

	for i, result := range results {
		if result.Status == StatusCompliant {
			continue
		}

		candidate := newCandidate(cfg, playbook.Rules[i], result)

		if idx := overlapping(merged, candidate.ClauseTypes); idx >= 0 {
			merged[idx] = mergeRecommendations(merged[idx], candidate)
			continue
		}
		merged = append(merged, candidate)
	}

	slices.SortStableFunc(merged, func(a, b Recommendation) int {
		return b.Priority.Rank() - a.Priority.Rank()
	})

	return merged
}

func newCandidate(cfg Config, rule Rule, result ComplianceResult) Recommendation {
	description := ""
	if len(result.Recommendations) > 0 {
		description = result.Recommendations[0]
	}

	rec := Recommendation{
		ID:          result.RuleID,
		Title:       fmt.Sprintf("Address %s", result.RuleName),
		Description: description,
		Priority:    recommendPriority(cfg, rule, result),
		Category:    factorCategory(rule),
		Impact:      defaulted(rule.Impact),
		Effort:      defaulted(rule.Effort),
		ClauseTypes: []string{rule.Criteria.ClauseType},
	}

	if rule.SuggestedLanguage != "" {
		lang := rule.SuggestedLanguage
		rec.SuggestedLanguage = &lang
	}

	return rec
}

// recommendPriority maps rule outcome to urgency: a missing required
// clause is urgent, non_compliant splits on the rule risk score, and
// review_required always lands in the middle.
func recommendPriority(cfg Config, rule Rule, result ComplianceResult) Priority {
	switch result.Status {
	case StatusMissing:
		return PriorityUrgent
	case StatusReviewRequired:
		return PriorityMedium
	default:
		if result.RiskScore >= cfg.HighRiskSplit {
			return PriorityHigh
		}
		return PriorityLow
	}
}

// overlapping returns the index of the first recommendation sharing a
// clause type with types, or -1.
func overlapping(recs []Recommendation, types []string) int {
	for i, rec := range recs {
		for _, t := range types {
			if slices.Contains(rec.ClauseTypes, t) {
				return i
			}
		}
	}
	return -1
}

// mergeRecommendations folds next into kept: the higher priority wins
// the headline fields, clause types union, and suggested language from
// both sides is preserved.
func mergeRecommendations(kept, next Recommendation) Recommendation {
	types := unionTypes(kept.ClauseTypes, next.ClauseTypes)
	lang := joinLanguage(kept.SuggestedLanguage, next.SuggestedLanguage)

	winner := kept
	if next.Priority.Rank() > kept.Priority.Rank() {
		winner = next
	}

	winner.ClauseTypes = types
	winner.SuggestedLanguage = lang
	return winner
}

func unionTypes(base, extra []string) []string {
	for _, t := range extra {
		if !slices.Contains(base, t) {
			base = append(base, t)
		}
	}
	return base
}

func joinLanguage(base, extra *string) *string {
	switch {
	case extra == nil || *extra == "":
		return base
	case base == nil || *base == "":
		return extra
	case *base == *extra:
		return base
	default:
		joined := *base + "\n\n" + *extra
		return &joined
	}
}

func factorCategory(rule Rule) string {
	if rule.Category == "" {
		return "General"
	}
	return rule.Category
}

func defaulted(value string) string {
	if value == "" {
		return "medium"
	}
	return value
}
