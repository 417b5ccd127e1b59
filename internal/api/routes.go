package api

import (
	"net/http"

	"github.com/JaimeStill/docchat/internal/config"
	"github.com/JaimeStill/docchat/internal/documents"
	"github.com/JaimeStill/docchat/internal/extraction"
	"github.com/JaimeStill/docchat/internal/ingestion"
	"github.com/JaimeStill/docchat/internal/resources"
	"github.com/JaimeStill/docchat/pkg/openapi"
	"github.com/JaimeStill/docchat/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	spec *openapi.Spec,
	runtime *Runtime,
	domain *Domain,
	cfg *config.Config,
) {
	documentsHandler := documents.NewHandler(domain.Documents, runtime.Logger, runtime.Pagination, runtime.MaxUploadSize)
	ingestionHandler := ingestion.NewHandler(domain.Ingestion, runtime.Logger, runtime.MaxUploadSize)
	resourcesHandler := resources.NewHandler(domain.Resources, runtime.Logger)
	extractionHandler := extraction.NewHandler(domain.Extraction, runtime.Logger)

	groups := []routes.Group{
		documentsHandler.Routes(),
		ingestionHandler.Routes(),
	}
	groups = append(groups, resourcesHandler.Routes()...)
	groups = append(groups, extractionHandler.Routes())

	routes.Register(mux, cfg.API.BasePath, spec, groups...)
}
