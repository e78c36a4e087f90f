package clauses

import (
	"context"

	"github.com/google/uuid"

	"github.com/parley-labs/parley/engine"
	"github.com/parley-labs/parley/pkg/pagination"
)

// System defines the public contract for clause domain operations.
// GetClauses satisfies engine.ClauseSource, so a clause System can be
// handed directly to the analysis orchestrator.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Clause], error)

	Find(ctx context.Context, id uuid.UUID) (*Clause, error)
	ForDocument(ctx context.Context, documentID uuid.UUID) ([]Clause, error)
	Ingest(ctx context.Context, documentID uuid.UUID, cmd IngestCommand) ([]Clause, error)
	GetClauses(ctx context.Context, documentID uuid.UUID) (*engine.ClauseSet, error)
}
