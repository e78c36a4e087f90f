package api

import (
	"github.com/parley-labs/parley/engine"
	"github.com/parley-labs/parley/internal/config"
	"github.com/parley-labs/parley/internal/infrastructure"
	"github.com/parley-labs/parley/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Engine     engine.Config
	Pagination pagination.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
			Cache:     infra.Cache,
		},
		Engine:     cfg.Engine,
		Pagination: cfg.API.Pagination,
	}
}
