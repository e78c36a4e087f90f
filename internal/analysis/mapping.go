package analysis

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/parley-labs/parley/engine"
	"github.com/parley-labs/parley/pkg/query"
	"github.com/parley-labs/parley/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "analyses", "a").
	Project("id", "ID").
	Project("document_id", "DocumentID").
	Project("playbook_id", "PlaybookID").
	Project("overall_score", "OverallScore").
	Project("category", "Category").
	Project("confidence", "Confidence").
	Project("trend", "Trend").
	Project("result", "Result").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for analysis queries.
// Nil fields are ignored. MinScore keeps only analyses at or above the
// given overall score; the other fields use exact matching.
type Filters struct {
	DocumentID *uuid.UUID           `json:"document_id,omitempty"`
	PlaybookID *uuid.UUID           `json:"playbook_id,omitempty"`
	Category   *engine.RiskCategory `json:"category,omitempty"`
	Trend      *engine.Trend        `json:"trend,omitempty"`
	MinScore   *int                 `json:"min_score,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("DocumentID", f.DocumentID).
		WhereEquals("PlaybookID", f.PlaybookID).
		WhereEquals("Category", f.Category).
		WhereEquals("Trend", f.Trend).
		WhereAtLeast("OverallScore", f.MinScore)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if d := values.Get("document_id"); d != "" {
		if id, err := uuid.Parse(d); err == nil {
			f.DocumentID = &id
		}
	}

	if p := values.Get("playbook_id"); p != "" {
		if id, err := uuid.Parse(p); err == nil {
			f.PlaybookID = &id
		}
	}

	if c := values.Get("category"); c != "" {
		category := engine.RiskCategory(c)
		f.Category = &category
	}

	if tr := values.Get("trend"); tr != "" {
		trend := engine.Trend(tr)
		f.Trend = &trend
	}

	if m := values.Get("min_score"); m != "" {
		if v, err := strconv.Atoi(m); err == nil {
			f.MinScore = &v
		}
	}

	return f
}

func scanRecord(s repository.Scanner) (Record, error) {
	var r Record
	var resultRaw []byte

	err := s.Scan(
		&r.ID,
		&r.DocumentID,
		&r.PlaybookID,
		&r.OverallScore,
		&r.Category,
		&r.Confidence,
		&r.Trend,
		&resultRaw,
		&r.CreatedAt,
	)

	if err != nil {
		return r, err
	}

	if err := json.Unmarshal(resultRaw, &r.Result); err != nil {
		return r, fmt.Errorf("unmarshal result: %w", err)
	}

	return r, nil
}
