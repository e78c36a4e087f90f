// Package clauses implements the extracted clause domain for Parley.
// It stores the normalized clause set the upstream extraction service
// produces for each document and serves those clauses to the compliance
// engine as its retrieval source.
package clauses

import (
	"time"

	"github.com/google/uuid"

	"github.com/parley-labs/parley/engine"
)

// Clause is one stored clause extraction for a document. Position
// preserves the extraction order within the document's clause set.
type Clause struct {
	ID         uuid.UUID        `json:"id"`
	DocumentID uuid.UUID        `json:"document_id"`
	Position   int              `json:"position"`
	ClauseType string           `json:"clause_type"`
	Text       string           `json:"text"`
	Confidence float64          `json:"confidence"`
	Page       int              `json:"page"`
	RiskLevel  engine.RiskLevel `json:"risk_level"`
	IngestedAt time.Time        `json:"ingested_at"`
}

// Engine converts the stored clause to its engine representation.
func (c *Clause) Engine() engine.Clause {
	return engine.Clause{
		ClauseType: c.ClauseType,
		Text:       c.Text,
		Confidence: c.Confidence,
		Page:       c.Page,
		RiskLevel:  c.RiskLevel,
	}
}

// ClauseInput is one clause in an ingest payload.
type ClauseInput struct {
	ClauseType string           `json:"clause_type" validate:"required"`
	Text       string           `json:"text" validate:"required"`
	Confidence float64          `json:"confidence" validate:"gte=0,lte=1"`
	Page       int              `json:"page" validate:"gte=0"`
	RiskLevel  engine.RiskLevel `json:"risk_level"`
}

// IngestCommand carries a document's full clause set as pushed by the
// extraction collaborator. Ingest replaces any previously stored set
// for the document; an empty list is valid and clears it.
type IngestCommand struct {
	Clauses []ClauseInput `json:"clauses"`
}
