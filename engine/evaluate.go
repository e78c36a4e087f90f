package engine

// EvaluateRule decides the compliance status for one rule given its
// matched clauses. The check order is significant: missing takes
// priority over every other outcome, and review_required for high-risk
// or low-confidence matches takes priority over a clean compliant
// verdict, so ambiguous evidence is never silently marked compliant.
func EvaluateRule(cfg Config, rule Rule, matched []Clause) ComplianceResult {
	result := ComplianceResult{
		RuleID:          rule.ID,
		RuleName:        rule.Name,
		MatchedClauses:  matched,
		Recommendations: []string{},
	}

	switch {
	case len(matched) == 0 && rule.Required:
		result.Status = StatusMissing
		result.MissingClause = true
		result.RiskScore = clampScore(100 * rule.Weight)

	case len(matched) == 0:
		// Optional rule with no evidence is not a finding.
		result.Status = StatusCompliant
		result.RiskScore = 0

	case needsReview(cfg, matched):
		result.Status = StatusReviewRequired
		result.RiskScore = clampScore(dominantBase(cfg, matched) * rule.Weight)

	case allLowRisk(matched):
		result.Status = StatusCompliant
		result.RiskScore = cfg.CompliantBaseline

	default:
		result.Status = StatusNonCompliant
		result.RiskScore = clampScore(dominantBase(cfg, matched) * rule.Weight)
	}

	if result.Status != StatusCompliant && len(rule.Recommendations) > 0 {
		result.Recommendations = append(result.Recommendations, rule.Recommendations...)
	}

	return result
}

func needsReview(cfg Config, matched []Clause) bool {
	for _, c := range matched {
		if c.RiskLevel == RiskHigh || c.Confidence < cfg.ReviewConfidence {
			return true
		}
	}
	return false
}

func allLowRisk(matched []Clause) bool {
	for _, c := range matched {
		if c.RiskLevel != RiskLow {
			return false
		}
	}
	return true
}

// dominantBase maps the highest risk level present among the matched
// clauses to its base score.
func dominantBase(cfg Config, matched []Clause) float64 {
	base := cfg.LowBase
	for _, c := range matched {
		switch c.RiskLevel {
		case RiskHigh:
			return cfg.HighBase
		case RiskMedium:
			base = max(base, cfg.MediumBase)
		}
	}
	return base
}

func clampScore(score float64) float64 {
	return min(100, max(0, score))
}
