package clauses_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/parley-labs/parley/engine"
	"github.com/parley-labs/parley/internal/clauses"
	"github.com/parley-labs/parley/pkg/pagination"
)

func TestIngestRejectsInvalidInputs(t *testing.T) {
	sys := clauses.New(
		nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
	)
	documentID := uuid.New()

	valid := clauses.ClauseInput{
		ClauseType: "liability",
		Text:       "Liability is capped at fees paid.",
		Confidence: 0.9,
		Page:       2,
		RiskLevel:  engine.RiskLow,
	}

	cases := []struct {
		name    string
		mutate  func(c *clauses.ClauseInput)
		wantErr error
	}{
		{
			name:    "confidence above one",
			mutate:  func(c *clauses.ClauseInput) { c.Confidence = 1.2 },
			wantErr: clauses.ErrInvalidClause,
		},
		{
			name:    "confidence below zero",
			mutate:  func(c *clauses.ClauseInput) { c.Confidence = -0.1 },
			wantErr: clauses.ErrInvalidClause,
		},
		{
			name:    "negative page",
			mutate:  func(c *clauses.ClauseInput) { c.Page = -3 },
			wantErr: clauses.ErrInvalidClause,
		},
		{
			name:    "empty clause type",
			mutate:  func(c *clauses.ClauseInput) { c.ClauseType = "" },
			wantErr: clauses.ErrInvalidClause,
		},
		{
			name:    "empty text",
			mutate:  func(c *clauses.ClauseInput) { c.Text = "" },
			wantErr: clauses.ErrInvalidClause,
		},
		{
			name:    "unknown risk level",
			mutate:  func(c *clauses.ClauseInput) { c.RiskLevel = "severe" },
			wantErr: clauses.ErrInvalidRiskLevel,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := valid
			tc.mutate(&input)

			_, err := sys.Ingest(context.Background(), documentID, clauses.IngestCommand{
				Clauses: []clauses.ClauseInput{input},
			})
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Ingest() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}
