package engine_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/parley-labs/parley/engine"
)

type stubSource struct {
	mu    sync.Mutex
	sets  map[uuid.UUID][]engine.Clause
	err   error
	block chan struct{}
	calls int
}

func (s *stubSource) GetClauses(ctx context.Context, documentID uuid.UUID) (*engine.ClauseSet, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return &engine.ClauseSet{DocumentID: documentID, Clauses: s.sets[documentID]}, nil
}

type stubHistory struct {
	mu        sync.Mutex
	latest    map[uuid.UUID]*engine.AnalysisResult
	appended  []*engine.AnalysisResult
	appendErr error
}

func (h *stubHistory) Latest(ctx context.Context, documentID uuid.UUID) (*engine.AnalysisResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest[documentID], nil
}

func (h *stubHistory) Append(ctx context.Context, result *engine.AnalysisResult) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.appendErr != nil {
		return h.appendErr
	}
	h.appended = append(h.appended, result)
	if h.latest == nil {
		h.latest = make(map[uuid.UUID]*engine.AnalysisResult)
	}
	h.latest[result.DocumentID] = result
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPlaybook() engine.Playbook {
	return engine.Playbook{
		ID:   uuid.MustParse("770e8400-e29b-41d4-a716-446655440000"),
		Name: "Standard Contract Playbook",
		Rules: []engine.Rule{
			{
				ID: "indemnity_clause", Name: "Indemnity Clause", Weight: 0.9, Required: true,
				Criteria:        engine.MatchCriteria{ClauseType: "indemnity", MinConfidence: 0.5},
				Recommendations: []string{"Add mutual indemnity clause"},
			},
			{
				ID: "governing_law", Name: "Governing Law", Weight: 0.5, Required: true,
				Criteria: engine.MatchCriteria{ClauseType: "governing_law", MinConfidence: 0.5},
			},
		},
	}
}

func TestAnalyzeEmptyClauseSetIsScoreable(t *testing.T) {
	documentID := uuid.New()
	source := &stubSource{}
	history := &stubHistory{}

	o, err := engine.NewOrchestrator(engine.DefaultConfig(), source, history, testLogger())
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}

	result, err := o.Analyze(context.Background(), testPlaybook(), documentID)
	if err != nil {
		t.Fatalf("Analyze with no clauses must not fail: %v", err)
	}

	if result.Summary.MissingClauses != 2 {
		t.Errorf("missing count: got %d, want 2", result.Summary.MissingClauses)
	}
	// Missing scores: 100×0.9=90 and 100×0.5=50, so the weighted
	// aggregate is (90×0.9 + 50×0.5) / 1.4 = 75.7, rounded to 76.
	if result.RiskScore.OverallScore != 76 {
		t.Errorf("overall_score: got %d, want 76", result.RiskScore.OverallScore)
	}
	if result.RiskScore.Category != engine.CategoryHigh {
		t.Errorf("category: got %s, want high", result.RiskScore.Category)
	}
	if len(history.appended) != 1 {
		t.Fatalf("appended %d results, want 1", len(history.appended))
	}
	if history.appended[0] != result {
		t.Error("persisted result differs from returned result")
	}
	if result.RiskScore.Confidence != 0.3 {
		t.Errorf("confidence: got %v, want sparse sentinel", result.RiskScore.Confidence)
	}
}

func TestAnalyzeInvalidPlaybook(t *testing.T) {
	source := &stubSource{}
	history := &stubHistory{}
	o, err := engine.NewOrchestrator(engine.DefaultConfig(), source, history, testLogger())
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}

	tests := []struct {
		name     string
		playbook engine.Playbook
	}{
		{"empty rule set", engine.Playbook{Name: "empty"}},
		{
			"non-positive weight",
			engine.Playbook{Name: "bad", Rules: []engine.Rule{
				{ID: "r", Name: "R", Weight: 0, Criteria: engine.MatchCriteria{ClauseType: "t"}},
			}},
		},
		{
			"negative weight",
			engine.Playbook{Name: "bad", Rules: []engine.Rule{
				{ID: "r", Name: "R", Weight: -1, Criteria: engine.MatchCriteria{ClauseType: "t"}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := o.Analyze(context.Background(), tt.playbook, uuid.New())
			if !errors.Is(err, engine.ErrInvalidPlaybook) {
				t.Errorf("got %v, want ErrInvalidPlaybook", err)
			}
			if engine.Retryable(err) {
				t.Error("invalid playbook must not be retryable")
			}
		})
	}

	if source.calls != 0 {
		t.Errorf("clause retrieval called %d times for invalid playbooks, want 0", source.calls)
	}
	if len(history.appended) != 0 {
		t.Errorf("appended %d results for failed runs, want 0", len(history.appended))
	}
}

func TestAnalyzeUpstreamUnavailable(t *testing.T) {
	source := &stubSource{err: errors.New("retrieval timed out")}
	history := &stubHistory{}
	o, err := engine.NewOrchestrator(engine.DefaultConfig(), source, history, testLogger())
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}

	_, err = o.Analyze(context.Background(), testPlaybook(), uuid.New())

	if !errors.Is(err, engine.ErrUpstreamUnavailable) {
		t.Errorf("got %v, want ErrUpstreamUnavailable", err)
	}
	if !engine.Retryable(err) {
		t.Error("upstream failure must be retryable")
	}
	if len(history.appended) != 0 {
		t.Errorf("appended %d results, want 0 (no partial persistence)", len(history.appended))
	}
}

func TestAnalyzeAppendFailurePersistsNothing(t *testing.T) {
	source := &stubSource{}
	history := &stubHistory{appendErr: errors.New("store down")}

	o, err := engine.NewOrchestrator(engine.DefaultConfig(), source, history, testLogger())
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}

	if _, err := o.Analyze(context.Background(), testPlaybook(), uuid.New()); err == nil {
		t.Fatal("Analyze must fail when the history append fails")
	}
	if len(history.appended) != 0 {
		t.Errorf("appended %d results, want 0", len(history.appended))
	}
}

func TestAnalyzeTrendAgainstPriorResult(t *testing.T) {
	documentID := uuid.New()
	source := &stubSource{
		sets: map[uuid.UUID][]engine.Clause{
			documentID: {
				{ClauseType: "indemnity", Text: "indemnify", Confidence: 0.95, Page: 1, RiskLevel: engine.RiskLow},
				{ClauseType: "governing_law", Text: "governed by", Confidence: 0.9, Page: 2, RiskLevel: engine.RiskLow},
			},
		},
	}
	history := &stubHistory{
		latest: map[uuid.UUID]*engine.AnalysisResult{
			documentID: {
				DocumentID: documentID,
				RiskScore:  engine.RiskScore{OverallScore: 80},
			},
		},
	}

	o, err := engine.NewOrchestrator(engine.DefaultConfig(), source, history, testLogger())
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}

	result, err := o.Analyze(context.Background(), testPlaybook(), documentID)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	// Both rules compliant at baseline 10 → overall 10, down 70 points.
	if result.RiskScore.OverallScore != 10 {
		t.Errorf("overall: got %d, want 10", result.RiskScore.OverallScore)
	}
	if result.RiskScore.Trend != engine.TrendImproving {
		t.Errorf("trend: got %s, want improving", result.RiskScore.Trend)
	}
}

func TestAnalyzeSerializesPerDocument(t *testing.T) {
	documentID := uuid.New()
	block := make(chan struct{})
	source := &stubSource{block: block}
	history := &stubHistory{}

	o, err := engine.NewOrchestrator(engine.DefaultConfig(), source, history, testLogger())
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		close(started)
		_, err := o.Analyze(context.Background(), testPlaybook(), documentID)
		done <- err
	}()

	<-started
	// Wait until the first run holds the document lock inside retrieval.
	for {
		source.mu.Lock()
		calls := source.calls
		source.mu.Unlock()
		if calls > 0 {
			break
		}
		time.Sleep(time.Millisecond)
	}

	_, err = o.Analyze(context.Background(), testPlaybook(), documentID)
	if !errors.Is(err, engine.ErrAnalysisInFlight) {
		t.Errorf("concurrent same-document run: got %v, want ErrAnalysisInFlight", err)
	}
	if !engine.Retryable(err) {
		t.Error("in-flight rejection must be retryable")
	}

	close(block)
	if err := <-done; err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	// The lock is released; the document can be analyzed again.
	if _, err := o.Analyze(context.Background(), testPlaybook(), documentID); err != nil {
		t.Fatalf("run after release failed: %v", err)
	}
}
