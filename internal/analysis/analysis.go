// Package analysis implements the compliance analysis domain for Parley.
// It runs the engine for a (document, playbook) pair, persists each
// completed result as an immutable history row, archives result JSON to
// blob storage, and serves analysis history and high-risk queries.
package analysis

import (
	"time"

	"github.com/google/uuid"

	"github.com/parley-labs/parley/engine"
)

// Record is one persisted analysis run. Scalar columns duplicate the
// headline numbers from Result so history queries can filter and sort
// without unpacking JSON.
type Record struct {
	ID           uuid.UUID             `json:"id"`
	DocumentID   uuid.UUID             `json:"document_id"`
	PlaybookID   uuid.UUID             `json:"playbook_id"`
	OverallScore int                   `json:"overall_score"`
	Category     engine.RiskCategory   `json:"category"`
	Confidence   float64               `json:"confidence"`
	Trend        engine.Trend          `json:"trend"`
	Result       engine.AnalysisResult `json:"result"`
	CreatedAt    time.Time             `json:"created_at"`
}

// AnalyzeCommand requests an analysis run. A nil PlaybookID selects the
// default playbook.
type AnalyzeCommand struct {
	DocumentID uuid.UUID  `json:"document_id"`
	PlaybookID *uuid.UUID `json:"playbook_id,omitempty"`
}
