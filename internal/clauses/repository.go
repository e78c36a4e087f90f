package clauses

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/parley-labs/parley/engine"
	"github.com/parley-labs/parley/pkg/pagination"
	"github.com/parley-labs/parley/pkg/query"
	"github.com/parley-labs/parley/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a clause repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "clauses"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Clause], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "ClauseType", "Text")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count clauses: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanClause)
	if err != nil {
		return nil, fmt.Errorf("query clauses: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Clause, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanClause)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) ForDocument(ctx context.Context, documentID uuid.UUID) ([]Clause, error) {
	q, args := query.
		NewBuilder(projection, documentSort).
		WhereEquals("DocumentID", &documentID).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanClause)
	if err != nil {
		return nil, fmt.Errorf("query document clauses: %w", err)
	}
	return items, nil
}

// Ingest replaces the document's stored clause set inside a single
// transaction. Positions are assigned from payload order.
func (r *repo) Ingest(ctx context.Context, documentID uuid.UUID, cmd IngestCommand) ([]Clause, error) {
	if err := validateInputs(cmd.Clauses); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO clauses(document_id, position, clause_type, text, confidence, page, risk_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, document_id, position, clause_type, text, confidence, page, risk_level, ingested_at`

	stored, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) ([]Clause, error) {
		if _, err := tx.ExecContext(
			ctx,
			"DELETE FROM clauses WHERE document_id = $1",
			documentID,
		); err != nil {
			return nil, fmt.Errorf("clear document clauses: %w", err)
		}

		inserted := make([]Clause, 0, len(cmd.Clauses))
		for i, input := range cmd.Clauses {
			args := []any{
				documentID, i,
				input.ClauseType, input.Text, input.Confidence,
				input.Page, input.RiskLevel,
			}

			c, err := repository.QueryOne(ctx, tx, q, args, scanClause)
			if err != nil {
				return nil, fmt.Errorf("insert clause %d: %w", i, err)
			}
			inserted = append(inserted, c)
		}

		return inserted, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("clauses ingested", "document_id", documentID, "count", len(stored))
	return stored, nil
}

// GetClauses serves the engine's retrieval contract. A document with no
// stored clauses yields an empty set, not an error.
func (r *repo) GetClauses(ctx context.Context, documentID uuid.UUID) (*engine.ClauseSet, error) {
	stored, err := r.ForDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	set := &engine.ClauseSet{
		DocumentID: documentID,
		Clauses:    make([]engine.Clause, 0, len(stored)),
	}
	for i := range stored {
		set.Clauses = append(set.Clauses, stored[i].Engine())
	}
	return set, nil
}
