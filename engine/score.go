package engine

import (
	"fmt"
	"math"
)

// ScoreRisk aggregates per-rule results into the overall risk score. The
// overall score is the weight-normalized sum of rule risk scores, rounded
// to the nearest integer and clamped to [0,100] — a deterministic
// function of the results and playbook weights. prior is the document's
// most recent completed analysis, or nil when the document has no
// history.
func ScoreRisk(cfg Config, playbook Playbook, results []ComplianceResult, prior *AnalysisResult) RiskScore {
	factors := make([]RiskFactor, 0, len(results))
	weighted := 0.0
	totalWeight := 0.0

	for i, result := range results {
		rule := playbook.Rules[i]
		factors = append(factors, newRiskFactor(rule, result))
		weighted += result.RiskScore * rule.Weight
		totalWeight += rule.Weight
	}

	overall := 0
	if totalWeight > 0 {
		overall = int(math.Round(weighted / totalWeight))
	}
	overall = min(100, max(0, overall))

	return RiskScore{
		OverallScore: overall,
		Category:     categorize(cfg, overall),
		Confidence:   matchConfidence(cfg, results),
		Factors:      factors,
		Trend:        CompareTrend(cfg, overall, prior),
	}
}

// CompareTrend classifies the new overall score against the prior
// analysis: a drop of at least TrendDelta points is improving, a rise of
// at least TrendDelta points is worsening, anything else is stable. No
// prior record defaults to stable.
func CompareTrend(cfg Config, overall int, prior *AnalysisResult) Trend {
	if prior == nil {
		return TrendStable
	}

	delta := overall - prior.RiskScore.OverallScore
	switch {
	case delta <= -cfg.TrendDelta:
		return TrendImproving
	case delta >= cfg.TrendDelta:
		return TrendWorsening
	default:
		return TrendStable
	}
}

// BuildSummary counts rule outcomes by status. Statuses are mutually
// exclusive, so every rule is counted exactly once.
func BuildSummary(results []ComplianceResult) ComplianceSummary {
	summary := ComplianceSummary{TotalRules: len(results)}

	for _, result := range results {
		switch result.Status {
		case StatusCompliant:
			summary.Compliant++
		case StatusNonCompliant:
			summary.NonCompliant++
		case StatusReviewRequired:
			summary.ReviewRequired++
		case StatusMissing:
			summary.MissingClauses++
		}
	}

	if summary.TotalRules > 0 {
		summary.CompliancePercent = summary.Compliant * 100 / summary.TotalRules
	} else {
		summary.CompliancePercent = 100
	}

	return summary
}

// MissingClauseNames returns the rule names whose required clause was
// missing, in playbook order.
func MissingClauseNames(results []ComplianceResult) []string {
	names := make([]string, 0)
	for _, result := range results {
		if result.Status == StatusMissing {
			names = append(names, result.RuleName)
		}
	}
	return names
}

func newRiskFactor(rule Rule, result ComplianceResult) RiskFactor {
	category := rule.Category
	if category == "" {
		category = "General"
	}

	return RiskFactor{
		FactorID:        result.RuleID,
		Name:            result.RuleName,
		Description:     fmt.Sprintf("Compliance status: %s", result.Status),
		Weight:          rule.Weight,
		Score:           result.RiskScore,
		Category:        category,
		Recommendations: result.Recommendations,
	}
}

func categorize(cfg Config, score int) RiskCategory {
	switch {
	case score >= cfg.CriticalThreshold:
		return CategoryCritical
	case score >= cfg.HighThreshold:
		return CategoryHigh
	case score >= cfg.MediumThreshold:
		return CategoryMedium
	default:
		return CategoryLow
	}
}

// matchConfidence is the mean confidence of matched clauses across all
// rules with at least one match. When nothing matched anywhere, the
// sparse sentinel signals thin evidence.
func matchConfidence(cfg Config, results []ComplianceResult) float64 {
	sum := 0.0
	count := 0

	for _, result := range results {
		for _, clause := range result.MatchedClauses {
			sum += clause.Confidence
			count++
		}
	}

	if count == 0 {
		return cfg.SparseConfidence
	}
	return sum / float64(count)
}
