package playbooks

import (
	"context"

	"github.com/google/uuid"

	"github.com/parley-labs/parley/pkg/pagination"
)

// System defines the public contract for playbook domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Playbook], error)

	Find(ctx context.Context, id uuid.UUID) (*Playbook, error)
	Default(ctx context.Context) (*Playbook, error)
	Create(ctx context.Context, cmd CreateCommand) (*Playbook, error)
	Revise(ctx context.Context, id uuid.UUID, cmd ReviseCommand) (*Playbook, error)
	SetDefault(ctx context.Context, id uuid.UUID) (*Playbook, error)
	Templates() []Playbook
	SeedTemplates(ctx context.Context) ([]Playbook, error)
}
