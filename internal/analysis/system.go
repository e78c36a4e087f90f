package analysis

import (
	"context"

	"github.com/google/uuid"

	"github.com/parley-labs/parley/engine"
	"github.com/parley-labs/parley/pkg/pagination"
)

// System defines the public contract for analysis domain operations.
// Latest and Append satisfy engine.History, so the analysis system
// doubles as the orchestrator's trend store.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Record], error)

	Find(ctx context.Context, id uuid.UUID) (*Record, error)
	ForDocument(ctx context.Context, documentID uuid.UUID) ([]Record, error)
	HighRisk(ctx context.Context, minScore int) ([]Record, error)
	Analyze(ctx context.Context, cmd AnalyzeCommand) (*engine.AnalysisResult, error)

	Latest(ctx context.Context, documentID uuid.UUID) (*engine.AnalysisResult, error)
	Append(ctx context.Context, result *engine.AnalysisResult) error
}
