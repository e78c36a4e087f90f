// Package playbooks implements the compliance playbook domain for Parley.
// It provides types, data access, and HTTP handlers for managing versioned
// rule playbooks, including the built-in templates used to seed a fresh
// deployment.
package playbooks

import (
	"time"

	"github.com/google/uuid"

	"github.com/parley-labs/parley/engine"
)

// Playbook is a named, versioned set of compliance rules. Rows are
// immutable: revising a playbook inserts a new row with an incremented
// version rather than updating in place, so analyses keep a stable
// reference to the exact rules they ran against.
type Playbook struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Version     int           `json:"version"`
	Description *string       `json:"description"`
	IsDefault   bool          `json:"is_default"`
	Rules       []engine.Rule `json:"rules"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Engine converts the stored playbook to its engine representation.
func (p *Playbook) Engine() engine.Playbook {
	return engine.Playbook{
		ID:        p.ID,
		Name:      p.Name,
		Rules:     p.Rules,
		IsDefault: p.IsDefault,
	}
}

// CreateCommand carries the data needed to create a new playbook.
type CreateCommand struct {
	Name        string        `json:"name"`
	Description *string       `json:"description"`
	Rules       []engine.Rule `json:"rules"`
}

// ReviseCommand carries the data for a new version of an existing
// playbook. The name is inherited from the revised playbook.
type ReviseCommand struct {
	Description *string       `json:"description"`
	Rules       []engine.Rule `json:"rules"`
}
