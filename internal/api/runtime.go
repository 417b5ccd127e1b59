package api

import (
	"github.com/JaimeStill/docchat/internal/config"
	"github.com/JaimeStill/docchat/internal/infrastructure"
	"github.com/JaimeStill/docchat/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination    pagination.Config
	Ingest        config.IngestConfig
	MaxUploadSize int64
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
			Embedder:  infra.Embedder,
		},
		Pagination:    cfg.API.Pagination,
		Ingest:        cfg.Ingest,
		MaxUploadSize: cfg.Storage.MaxUploadSizeBytes(),
	}
}
