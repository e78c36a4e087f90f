package playbooks

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/parley-labs/parley/pkg/pagination"
	"github.com/parley-labs/parley/pkg/query"
	"github.com/parley-labs/parley/pkg/repository"
)

const returning = "id, name, version, description, is_default, rules, created_at"

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a playbook repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "playbooks"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Playbook], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Description")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count playbooks: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	books, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanPlaybook)
	if err != nil {
		return nil, fmt.Errorf("query playbooks: %w", err)
	}

	result := pagination.NewPageResult(books, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Playbook, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPlaybook)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &p, nil
}

func (r *repo) Default(ctx context.Context) (*Playbook, error) {
	isDefault := true
	q, args := query.
		NewBuilder(projection).
		WhereEquals("IsDefault", &isDefault).
		BuildSingleOrNull()

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPlaybook)
	if err != nil {
		return nil, repository.MapError(err, ErrNoDefault, ErrDuplicate)
	}
	return &p, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Playbook, error) {
	if err := validateRules(cmd.Name, cmd.Rules); err != nil {
		return nil, err
	}

	rules, err := json.Marshal(cmd.Rules)
	if err != nil {
		return nil, fmt.Errorf("marshal rules: %w", err)
	}

	q := fmt.Sprintf(`
		INSERT INTO playbooks(name, version, description, rules)
		VALUES ($1, 1, $2, $3)
		RETURNING %s`, returning)

	args := []any{cmd.Name, cmd.Description, rules}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Playbook, error) {
		return repository.QueryOne(ctx, tx, q, args, scanPlaybook)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("playbook created", "id", p.ID, "name", p.Name, "rules", len(p.Rules))
	return &p, nil
}

// Revise inserts a new version of an existing playbook. The prior row is
// untouched so analyses keep pointing at the rules they actually ran
// against. Default status carries over to the new version.
func (r *repo) Revise(ctx context.Context, id uuid.UUID, cmd ReviseCommand) (*Playbook, error) {
	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Playbook, error) {
		findQ, findArgs := query.NewBuilder(projection).BuildSingle("ID", id)
		current, err := repository.QueryOne(ctx, tx, findQ, findArgs, scanPlaybook)
		if err != nil {
			return Playbook{}, err
		}

		if err := validateRules(current.Name, cmd.Rules); err != nil {
			return Playbook{}, err
		}

		rules, err := json.Marshal(cmd.Rules)
		if err != nil {
			return Playbook{}, fmt.Errorf("marshal rules: %w", err)
		}

		description := cmd.Description
		if description == nil {
			description = current.Description
		}

		if current.IsDefault {
			if _, err := tx.ExecContext(
				ctx,
				"UPDATE playbooks SET is_default = false WHERE is_default = true",
			); err != nil {
				return Playbook{}, fmt.Errorf("clear default: %w", err)
			}
		}

		insertQ := fmt.Sprintf(`
			INSERT INTO playbooks(name, version, description, is_default, rules)
			SELECT $1, COALESCE(MAX(version), 0) + 1, $2, $3, $4
			FROM playbooks WHERE name = $1
			RETURNING %s`, returning)

		insertArgs := []any{current.Name, description, current.IsDefault, rules}
		return repository.QueryOne(ctx, tx, insertQ, insertArgs, scanPlaybook)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("playbook revised", "id", p.ID, "name", p.Name, "version", p.Version)
	return &p, nil
}

func (r *repo) SetDefault(ctx context.Context, id uuid.UUID) (*Playbook, error) {
	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Playbook, error) {
		if _, err := tx.ExecContext(
			ctx,
			"UPDATE playbooks SET is_default = false WHERE is_default = true",
		); err != nil {
			return Playbook{}, fmt.Errorf("clear default: %w", err)
		}

		q := fmt.Sprintf(`
			UPDATE playbooks SET is_default = true
			WHERE id = $1
			RETURNING %s`, returning)

		return repository.QueryOne(ctx, tx, q, []any{id}, scanPlaybook)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("default playbook set", "id", p.ID, "name", p.Name, "version", p.Version)
	return &p, nil
}

func (r *repo) Templates() []Playbook {
	return Templates()
}

// SeedTemplates inserts any built-in template whose name is not yet
// present. The standard template becomes the default when no default
// exists. Already-seeded templates are skipped, so seeding is safe to
// repeat.
func (r *repo) SeedTemplates(ctx context.Context) ([]Playbook, error) {
	seeded, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) ([]Playbook, error) {
		var hasDefault bool
		if err := tx.QueryRowContext(
			ctx,
			"SELECT EXISTS (SELECT 1 FROM playbooks WHERE is_default = true)",
		).Scan(&hasDefault); err != nil {
			return nil, fmt.Errorf("check default: %w", err)
		}

		var inserted []Playbook
		for _, tpl := range Templates() {
			q, args := query.
				NewBuilder(projection).
				WhereEquals("Name", &tpl.Name).
				BuildSingleOrNull()

			_, err := repository.QueryOne(ctx, tx, q, args, scanPlaybook)
			if err == nil {
				continue
			}
			if !errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("check template %q: %w", tpl.Name, err)
			}

			rules, err := json.Marshal(tpl.Rules)
			if err != nil {
				return nil, fmt.Errorf("marshal template rules: %w", err)
			}

			isDefault := tpl.IsDefault && !hasDefault
			if isDefault {
				hasDefault = true
			}

			insertQ := fmt.Sprintf(`
				INSERT INTO playbooks(name, version, description, is_default, rules)
				VALUES ($1, 1, $2, $3, $4)
				RETURNING %s`, returning)

			p, err := repository.QueryOne(
				ctx, tx, insertQ,
				[]any{tpl.Name, tpl.Description, isDefault, rules},
				scanPlaybook,
			)
			if err != nil {
				return nil, fmt.Errorf("seed template %q: %w", tpl.Name, err)
			}

			inserted = append(inserted, p)
		}

		return inserted, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if len(seeded) > 0 {
		r.logger.Info("playbook templates seeded", "count", len(seeded))
	}
	return seeded, nil
}
