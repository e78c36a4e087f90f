package api

import (
	"github.com/parley-labs/parley/internal/analysis"
	"github.com/parley-labs/parley/internal/clauses"
	"github.com/parley-labs/parley/internal/playbooks"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Playbooks playbooks.System
	Clauses   clauses.System
	Analysis  analysis.System
}

// NewDomain creates all domain systems from the API runtime. The clause
// system doubles as the clause source for analysis runs, and the analysis
// system carries the archive store and result cache.
func NewDomain(runtime *Runtime) (*Domain, error) {
	playbooksSystem := playbooks.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	clausesSystem := clauses.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	analysisSystem, err := analysis.New(
		runtime.Database.Connection(),
		runtime.Engine,
		runtime.Logger,
		runtime.Pagination,
		clausesSystem,
		playbooksSystem,
		runtime.Storage,
		runtime.Cache,
	)
	if err != nil {
		return nil, err
	}

	return &Domain{
		Playbooks: playbooksSystem,
		Clauses:   clausesSystem,
		Analysis:  analysisSystem,
	}, nil
}
