package main

import (
	"net/http"

	"github.com/JaimeStill/docchat/internal/api"
	"github.com/JaimeStill/docchat/internal/config"
	"github.com/JaimeStill/docchat/internal/infrastructure"
	"github.com/JaimeStill/docchat/pkg/middleware"
	"github.com/JaimeStill/docchat/pkg/module"
	"github.com/JaimeStill/docchat/pkg/storage"
)

type Modules struct {
	API *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{
		API: apiModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
}

func buildRouter(infra *infrastructure.Infrastructure, cfg *config.Config) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})

	if cfg.Storage.Provider == storage.ProviderFilesystem {
		blobs := middleware.Logger(infra.Logger.With("module", "blobs"))(
			storage.Handler(infra.Storage, infra.Logger),
		)
		router.HandleNative("GET /blobs/{key...}", blobs.ServeHTTP)
	}

	return router
}
