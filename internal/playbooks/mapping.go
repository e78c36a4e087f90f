package playbooks

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/parley-labs/parley/engine"
	"github.com/parley-labs/parley/pkg/query"
	"github.com/parley-labs/parley/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "playbooks", "pb").
	Project("id", "ID").
	Project("name", "Name").
	Project("version", "Version").
	Project("description", "Description").
	Project("is_default", "IsDefault").
	Project("rules", "Rules").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field: "Name",
}

// Filters contains optional filtering criteria for playbook queries.
// Nil fields are ignored. Name uses case-insensitive contains matching;
// IsDefault uses exact matching.
type Filters struct {
	Name      *string `json:"name,omitempty"`
	IsDefault *bool   `json:"is_default,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("Name", f.Name).
		WhereEquals("IsDefault", f.IsDefault)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	if d := values.Get("is_default"); d != "" {
		if v, err := strconv.ParseBool(d); err == nil {
			f.IsDefault = &v
		}
	}

	return f
}

func scanPlaybook(s repository.Scanner) (Playbook, error) {
	var p Playbook
	var rulesRaw []byte

	err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Version,
		&p.Description,
		&p.IsDefault,
		&rulesRaw,
		&p.CreatedAt,
	)

	if err != nil {
		return p, err
	}

	if len(rulesRaw) > 0 {
		if err := json.Unmarshal(rulesRaw, &p.Rules); err != nil {
			return p, fmt.Errorf("unmarshal rules: %w", err)
		}
	}

	if p.Rules == nil {
		p.Rules = []engine.Rule{}
	}

	return p, nil
}
