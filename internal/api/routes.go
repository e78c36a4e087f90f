package api

import (
	"net/http"

	"github.com/parley-labs/parley/internal/config"
	"github.com/parley-labs/parley/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	archive := newArchiveHandler(
		runtime.Storage,
		runtime.Logger,
		cfg.Storage.MaxListSize,
	)

	routes.Register(
		mux,
		domain.Playbooks.Handler().Routes(),
		domain.Clauses.Handler().Routes(),
		domain.Analysis.Handler().Routes(),
		archive.routes(),
	)
}
