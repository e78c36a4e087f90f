package analysis

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/parley-labs/parley/engine"
	"github.com/parley-labs/parley/internal/playbooks"
	"github.com/parley-labs/parley/pkg/cache"
	"github.com/parley-labs/parley/pkg/pagination"
	"github.com/parley-labs/parley/pkg/query"
	"github.com/parley-labs/parley/pkg/repository"
	"github.com/parley-labs/parley/pkg/storage"
)

// DefaultHighRiskScore is the overall-score floor for the high-risk
// query when the caller names no threshold.
const DefaultHighRiskScore = 70

type repo struct {
	db           *sql.DB
	logger       *slog.Logger
	pagination   pagination.Config
	books        playbooks.System
	archive      storage.System
	cache        cache.System
	orchestrator *engine.Orchestrator
}

// New creates an analysis repository implementing the System interface.
// The repository registers itself as the engine's history store, so
// every orchestrated run reads its trend baseline from and appends its
// result to the same analyses table this repository serves.
func New(
	db *sql.DB,
	engineCfg engine.Config,
	logger *slog.Logger,
	pagination pagination.Config,
	source engine.ClauseSource,
	books playbooks.System,
	archive storage.System,
	cache cache.System,
) (System, error) {
	r := &repo{
		db:         db,
		logger:     logger.With("system", "analysis"),
		pagination: pagination,
		books:      books,
		archive:    archive,
		cache:      cache,
	}

	orchestrator, err := engine.NewOrchestrator(engineCfg, source, r, logger)
	if err != nil {
		return nil, err
	}
	r.orchestrator = orchestrator

	return r, nil
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Record], error) {
	page.Normalize(r.pagination)

	qb := query.NewBuilder(projection, defaultSort)

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count analyses: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	records, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}

	result := pagination.NewPageResult(records, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Record, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	rec, err := repository.QueryOne(ctx, r.db, q, args, scanRecord)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &rec, nil
}

func (r *repo) ForDocument(ctx context.Context, documentID uuid.UUID) ([]Record, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("DocumentID", &documentID).
		Build()

	records, err := repository.QueryMany(ctx, r.db, q, args, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("query document analyses: %w", err)
	}
	return records, nil
}

func (r *repo) HighRisk(ctx context.Context, minScore int) ([]Record, error) {
	if minScore <= 0 {
		minScore = DefaultHighRiskScore
	}

	q, args := query.
		NewBuilder(projection, query.SortField{Field: "OverallScore", Descending: true}).
		WhereAtLeast("OverallScore", &minScore).
		Build()

	records, err := repository.QueryMany(ctx, r.db, q, args, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("query high risk analyses: %w", err)
	}
	return records, nil
}

// Analyze resolves the playbook and hands the run to the engine. The
// completed result is already persisted when this returns.
func (r *repo) Analyze(ctx context.Context, cmd AnalyzeCommand) (*engine.AnalysisResult, error) {
	var (
		book *playbooks.Playbook
		err  error
	)

	if cmd.PlaybookID != nil {
		book, err = r.books.Find(ctx, *cmd.PlaybookID)
	} else {
		book, err = r.books.Default(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve playbook: %w", err)
	}

	return r.orchestrator.Analyze(ctx, book.Engine(), cmd.DocumentID)
}

// Latest returns the most recent stored result for a document, or
// (nil, nil) when the document has no history. The cache is consulted
// first; misses fall through to the database and repopulate it.
func (r *repo) Latest(ctx context.Context, documentID uuid.UUID) (*engine.AnalysisResult, error) {
	var cached engine.AnalysisResult
	if err := r.cache.GetJSON(ctx, latestKey(documentID), &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		r.logger.Warn("latest cache read failed", "document_id", documentID, "error", err)
	}

	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("DocumentID", &documentID).
		BuildSingleOrNull()

	rec, err := repository.QueryOne(ctx, r.db, q, args, scanRecord)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest analysis: %w", err)
	}

	if err := r.cache.SetJSON(ctx, latestKey(documentID), &rec.Result); err != nil {
		r.logger.Warn("latest cache write failed", "document_id", documentID, "error", err)
	}

	return &rec.Result, nil
}

// Append persists a completed result as a new history row, then
// archives the result JSON to blob storage and refreshes the latest
// cache. Archive and cache writes are best effort: the row is the
// durable record.
func (r *repo) Append(ctx context.Context, result *engine.AnalysisResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal analysis result: %w", err)
	}

	q := `
		INSERT INTO analyses(id, document_id, playbook_id, overall_score, category, confidence, trend, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	args := []any{
		result.ID, result.DocumentID, result.PlaybookID,
		result.RiskScore.OverallScore, result.RiskScore.Category,
		result.RiskScore.Confidence, result.RiskScore.Trend,
		payload, result.CreatedAt,
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	key := archiveKey(result.ID)
	if err := r.archive.Upload(ctx, key, bytes.NewReader(payload), "application/json"); err != nil {
		r.logger.Warn("analysis archive failed", "id", result.ID, "key", key, "error", err)
	}

	if err := r.cache.SetJSON(ctx, latestKey(result.DocumentID), result); err != nil {
		r.logger.Warn("latest cache write failed", "document_id", result.DocumentID, "error", err)
	}

	r.logger.Info(
		"analysis appended",
		"id", result.ID,
		"document_id", result.DocumentID,
		"overall_score", result.RiskScore.OverallScore,
	)
	return nil
}

func latestKey(documentID uuid.UUID) string {
	return "analysis:latest:" + documentID.String()
}

func archiveKey(id uuid.UUID) string {
	return fmt.Sprintf("analyses/%s.json", id)
}
