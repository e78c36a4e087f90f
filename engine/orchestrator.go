package engine

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// State tracks an analysis run's progress through the orchestration
// pipeline. Runs move pending → matching → scoring → recommending →
// complete; failed is terminal and reachable only from malformed input
// or a collaborator failure, never from "no clauses found".
type State string

// Orchestration states.
const (
	StatePending      State = "pending"
	StateMatching     State = "matching"
	StateScoring      State = "scoring"
	StateRecommending State = "recommending"
	StateComplete     State = "complete"
	StateFailed       State = "failed"
)

// ClauseSource retrieves the extracted clause set for a document. It is
// the upstream retrieval collaborator; failures are surfaced to callers
// as ErrUpstreamUnavailable.
type ClauseSource interface {
	GetClauses(ctx context.Context, documentID uuid.UUID) (*ClauseSet, error)
}

// History is the trend tracker's store contract: a read of the most
// recent prior result for a document and an append of the newly
// completed result. Latest returns (nil, nil) when the document has no
// history. Appended records are immutable; history is never edited.
type History interface {
	Latest(ctx context.Context, documentID uuid.UUID) (*AnalysisResult, error)
	Append(ctx context.Context, result *AnalysisResult) error
}

// Orchestrator sequences one analysis run: clause retrieval, per-rule
// matching and evaluation, risk scoring against history, recommendation
// generation, and the single append to history. Runs for different
// documents are fully independent; runs for the same document serialize
// on a per-document exclusion token.
type Orchestrator struct {
	cfg     Config
	source  ClauseSource
	history History
	logger  *slog.Logger
	locks   *documentLocks
}

// NewOrchestrator creates an Orchestrator after finalizing the config.
func NewOrchestrator(cfg Config, source ClauseSource, history History, logger *slog.Logger) (*Orchestrator, error) {
	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}

	return &Orchestrator{
		cfg:     cfg,
		source:  source,
		history: history,
		logger:  logger.With("system", "engine"),
		locks:   newDocumentLocks(),
	}, nil
}

// Config returns the orchestrator's finalized configuration.
func (o *Orchestrator) Config() Config {
	return o.cfg
}

// Analyze runs the full pipeline for one (document, playbook) pair and
// returns the completed, persisted result. On any failure no partial
// result is persisted. Per-rule evaluation runs in parallel; results are
// merged in playbook order before scoring, so parallelism never affects
// output ordering.
func (o *Orchestrator) Analyze(ctx context.Context, playbook Playbook, documentID uuid.UUID) (*AnalysisResult, error) {
	logger := o.logger.With("document_id", documentID, "playbook_id", playbook.ID)
	state := StatePending

	if err := ValidatePlaybook(playbook); err != nil {
		logger.Warn("analysis rejected", "state", StateFailed, "error", err)
		return nil, err
	}

	if !o.locks.TryLock(documentID) {
		return nil, fmt.Errorf("%w: %s", ErrAnalysisInFlight, documentID)
	}
	defer o.locks.Unlock(documentID)

	state = StateMatching
	logger.Debug("analysis state", "state", state)

	set, err := o.retrieveClauses(ctx, documentID)
	if err != nil {
		logger.Warn("analysis failed", "state", StateFailed, "error", err)
		return nil, err
	}

	results := o.evaluateRules(ctx, playbook, set.Clauses)
	if err := ctx.Err(); err != nil {
		logger.Warn("analysis cancelled", "state", StateFailed, "error", err)
		return nil, err
	}

	state = StateScoring
	logger.Debug("analysis state", "state", state)

	prior, err := o.history.Latest(ctx, documentID)
	if err != nil {
		err = fmt.Errorf("%w: read history: %w", ErrUpstreamUnavailable, err)
		logger.Warn("analysis failed", "state", StateFailed, "error", err)
		return nil, err
	}

	riskScore := ScoreRisk(o.cfg, playbook, results, prior)

	state = StateRecommending
	logger.Debug("analysis state", "state", state)

	result := &AnalysisResult{
		ID:                uuid.New(),
		DocumentID:        documentID,
		PlaybookID:        playbook.ID,
		RiskScore:         riskScore,
		ComplianceResults: results,
		Recommendations:   BuildRecommendations(o.cfg, playbook, results),
		MissingClauses:    MissingClauseNames(results),
		Summary:           BuildSummary(results),
		CreatedAt:         time.Now().UTC(),
	}

	if err := o.history.Append(ctx, result); err != nil {
		err = fmt.Errorf("append analysis result: %w", err)
		logger.Error("analysis failed", "state", StateFailed, "error", err)
		return nil, err
	}

	state = StateComplete
	logger.Info(
		"analysis complete",
		"state", state,
		"overall_score", result.RiskScore.OverallScore,
		"category", result.RiskScore.Category,
		"trend", result.RiskScore.Trend,
		"rules", result.Summary.TotalRules,
	)

	return result, nil
}

func (o *Orchestrator) retrieveClauses(ctx context.Context, documentID uuid.UUID) (*ClauseSet, error) {
	retrieveCtx, cancel := context.WithTimeout(ctx, o.cfg.RetrievalTimeoutDuration())
	defer cancel()

	set, err := o.source.GetClauses(retrieveCtx, documentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
	if set == nil {
		set = &ClauseSet{DocumentID: documentID}
	}

	return set, nil
}

// evaluateRules matches and evaluates every rule with bounded
// parallelism. Each result lands at its rule's index, preserving
// playbook order regardless of completion order.
func (o *Orchestrator) evaluateRules(ctx context.Context, playbook Playbook, clauses []Clause) []ComplianceResult {
	results := make([]ComplianceResult, len(playbook.Rules))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(len(playbook.Rules)))

	for i, rule := range playbook.Rules {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			matched := MatchClauses(rule.Criteria, clauses)
			results[i] = EvaluateRule(o.cfg, rule, matched)
			return nil
		})
	}

	// Evaluation is pure per rule; the only possible error is
	// cancellation, which the caller checks on ctx.
	_ = g.Wait()

	return results
}

func workerCount(ruleCount int) int {
	return max(min(runtime.NumCPU(), ruleCount), 1)
}
