package clauses

import (
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/parley-labs/parley/engine"
	"github.com/parley-labs/parley/pkg/query"
	"github.com/parley-labs/parley/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "clauses", "cl").
	Project("id", "ID").
	Project("document_id", "DocumentID").
	Project("position", "Position").
	Project("clause_type", "ClauseType").
	Project("text", "Text").
	Project("confidence", "Confidence").
	Project("page", "Page").
	Project("risk_level", "RiskLevel").
	Project("ingested_at", "IngestedAt")

var defaultSort = query.SortField{
	Field:      "IngestedAt",
	Descending: true,
}

var documentSort = query.SortField{
	Field: "Position",
}

// Filters contains optional filtering criteria for clause queries.
// Nil fields are ignored. MinConfidence keeps only clauses at or above
// the given confidence; the other fields use exact matching.
type Filters struct {
	DocumentID    *uuid.UUID        `json:"document_id,omitempty"`
	ClauseType    *string           `json:"clause_type,omitempty"`
	RiskLevel     *engine.RiskLevel `json:"risk_level,omitempty"`
	MinConfidence *float64          `json:"min_confidence,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("DocumentID", f.DocumentID).
		WhereEquals("ClauseType", f.ClauseType).
		WhereEquals("RiskLevel", f.RiskLevel).
		WhereAtLeast("Confidence", f.MinConfidence)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if d := values.Get("document_id"); d != "" {
		if id, err := uuid.Parse(d); err == nil {
			f.DocumentID = &id
		}
	}

	if c := values.Get("clause_type"); c != "" {
		f.ClauseType = &c
	}

	if r := values.Get("risk_level"); r != "" {
		level := engine.RiskLevel(r)
		f.RiskLevel = &level
	}

	if m := values.Get("min_confidence"); m != "" {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			f.MinConfidence = &v
		}
	}

	return f
}

func scanClause(s repository.Scanner) (Clause, error) {
	var c Clause
	err := s.Scan(
		&c.ID,
		&c.DocumentID,
		&c.Position,
		&c.ClauseType,
		&c.Text,
		&c.Confidence,
		&c.Page,
		&c.RiskLevel,
		&c.IngestedAt,
	)
	return c, err
}
