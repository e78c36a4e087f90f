// Package engine implements the contract compliance and risk assessment
// core for Parley. Given a document's extracted clauses and a playbook of
// weighted compliance rules, it matches clauses to rules, evaluates a
// compliance status per rule, aggregates rule-level risk into a single
// weighted score with confidence and trend, and derives a prioritized,
// de-duplicated recommendation list.
//
// The package is pure domain logic: it owns no storage and no transport.
// External collaborators (clause retrieval, analysis history) enter
// through the ClauseSource and History interfaces consumed by the
// Orchestrator.
package engine

import (
	"time"

	"github.com/google/uuid"
)

// RiskLevel classifies an individual clause's risk as assessed upstream.
type RiskLevel string

// Clause risk levels.
const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Clause is a span of extracted document text classified by type with a
// confidence score. Clauses are produced by the upstream extraction
// collaborator and are immutable inputs to the engine.
type Clause struct {
	ClauseType string    `json:"clause_type"`
	Text       string    `json:"text"`
	Confidence float64   `json:"confidence"`
	Page       int       `json:"page"`
	RiskLevel  RiskLevel `json:"risk_level"`
}

// ClauseSet is the ordered clause list extracted from one document.
type ClauseSet struct {
	DocumentID uuid.UUID `json:"document_id"`
	Clauses    []Clause  `json:"clauses"`
}

// MatchCriteria describes what a rule looks for: a clause type, optional
// keyword markers, and a minimum extraction confidence. A zero
// MinConfidence accepts every candidate of the matching type.
type MatchCriteria struct {
	ClauseType    string   `json:"clause_type" validate:"required"`
	Keywords      []string `json:"keywords,omitempty"`
	MinConfidence float64  `json:"min_confidence" validate:"gte=0,lte=1"`
}

// Rule is a single compliance rule within a playbook. Weight scales the
// rule's contribution to the overall risk score and must be positive.
// Recommendations and SuggestedLanguage are authored text carried through
// to generated recommendations; the engine never writes prose itself.
type Rule struct {
	ID                string        `json:"rule_id" validate:"required"`
	Name              string        `json:"rule_name" validate:"required"`
	Weight            float64       `json:"weight" validate:"gt=0"`
	Criteria          MatchCriteria `json:"match_criteria"`
	Required          bool          `json:"required"`
	Category          string        `json:"category,omitempty"`
	Recommendations   []string      `json:"recommendations,omitempty"`
	SuggestedLanguage string        `json:"suggested_language,omitempty"`
	Impact            string        `json:"impact,omitempty"`
	Effort            string        `json:"effort,omitempty"`
}

// Playbook is a named, ordered set of compliance rules. Rule order is
// significant: it is the tie-break for recommendation ordering.
type Playbook struct {
	ID        uuid.UUID `json:"playbook_id"`
	Name      string    `json:"name"`
	Rules     []Rule    `json:"rules"`
	IsDefault bool      `json:"is_default"`
}

// Status is the per-rule compliance verdict.
type Status string

// Compliance statuses. StatusMissing applies only to required rules with
// no matching clause; StatusReviewRequired marks ambiguous evidence and
// is a first-class outcome, not an error.
const (
	StatusCompliant      Status = "compliant"
	StatusNonCompliant   Status = "non_compliant"
	StatusReviewRequired Status = "review_required"
	StatusMissing        Status = "missing"
)

// ComplianceResult is the outcome of evaluating one rule against one
// document. Created by EvaluateRule and immutable thereafter.
type ComplianceResult struct {
	RuleID          string   `json:"rule_id"`
	RuleName        string   `json:"rule_name"`
	Status          Status   `json:"status"`
	MatchedClauses  []Clause `json:"matched_clauses"`
	MissingClause   bool     `json:"missing_clause"`
	RiskScore       float64  `json:"risk_score"`
	Recommendations []string `json:"recommendations"`
}

// RiskCategory bands the overall numeric risk score.
type RiskCategory string

// Risk categories.
const (
	CategoryLow      RiskCategory = "low"
	CategoryMedium   RiskCategory = "medium"
	CategoryHigh     RiskCategory = "high"
	CategoryCritical RiskCategory = "critical"
)

// Trend is the direction of risk-score change relative to the document's
// previous analysis.
type Trend string

// Trend directions.
const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendWorsening Trend = "worsening"
)

// RiskFactor is the per-rule contribution to the overall risk score.
type RiskFactor struct {
	FactorID        string   `json:"factor_id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Weight          float64  `json:"weight"`
	Score           float64  `json:"score"`
	Category        string   `json:"category"`
	Recommendations []string `json:"recommendations"`
}

// RiskScore is the aggregate risk assessment for one analysis run.
type RiskScore struct {
	OverallScore int          `json:"overall_score"`
	Category     RiskCategory `json:"category"`
	Confidence   float64      `json:"confidence"`
	Factors      []RiskFactor `json:"factors"`
	Trend        Trend        `json:"trend"`
}

// Priority ranks a recommendation's urgency.
type Priority string

// Recommendation priorities.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var priorityRank = map[Priority]int{
	PriorityUrgent: 4,
	PriorityHigh:   3,
	PriorityMedium: 2,
	PriorityLow:    1,
}

// Rank returns the numeric ordering weight for a priority. Unknown
// priorities rank below PriorityLow.
func (p Priority) Rank() int {
	return priorityRank[p]
}

// Recommendation is a prioritized, actionable finding derived from
// non-compliant, missing, or review-required rules.
type Recommendation struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Priority          Priority `json:"priority"`
	Category          string   `json:"category"`
	Impact            string   `json:"impact"`
	Effort            string   `json:"effort"`
	ClauseTypes       []string `json:"clause_types"`
	SuggestedLanguage *string  `json:"suggested_language,omitempty"`
}

// ComplianceSummary counts rule outcomes by status. Each rule lands in
// exactly one bucket, so the bucket sum never exceeds TotalRules.
type ComplianceSummary struct {
	TotalRules        int `json:"total_rules"`
	Compliant         int `json:"compliant"`
	NonCompliant      int `json:"non_compliant"`
	ReviewRequired    int `json:"review_required"`
	MissingClauses    int `json:"missing_clauses"`
	CompliancePercent int `json:"compliance_percent"`
}

// AnalysisResult is the aggregate root produced by one analysis run for a
// (document, playbook) pair. Results are append-only history: a re-run
// produces a new result and never mutates a prior one.
type AnalysisResult struct {
	ID                uuid.UUID          `json:"id"`
	DocumentID        uuid.UUID          `json:"document_id"`
	PlaybookID        uuid.UUID          `json:"playbook_id"`
	RiskScore         RiskScore          `json:"risk_score"`
	ComplianceResults []ComplianceResult `json:"compliance_results"`
	Recommendations   []Recommendation   `json:"recommendations"`
	MissingClauses    []string           `json:"missing_clauses"`
	Summary           ComplianceSummary  `json:"compliance_summary"`
	CreatedAt         time.Time          `json:"created_at"`
}
