package resources

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/docchat/pkg/handlers"
	"github.com/JaimeStill/docchat/pkg/routes"
)

// Handler provides HTTP endpoints for resource retrieval.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a resource handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "resources"),
	}
}

// Routes returns the resource route groups: similarity search under
// /resources and per-document listing under /documents.
func (h *Handler) Routes() []routes.Group {
	return []routes.Group{
		{
			Prefix:      "/resources",
			Tags:        []string{"Resources"},
			Description: "Embedded document chunks",
			Schemas:     Spec.Schemas(),
			Routes: []routes.Route{
				{Method: "POST", Pattern: "/search", Handler: h.Search, OpenAPI: Spec.Search},
			},
		},
		{
			Prefix: "/documents",
			Tags:   []string{"Resources"},
			Routes: []routes.Route{
				{Method: "GET", Pattern: "/{id}/resources", Handler: h.ListByDocument, OpenAPI: Spec.ListByDocument},
			},
		},
	}
}

func (h *Handler) ListByDocument(w http.ResponseWriter, r *http.Request) {
	resources, err := h.sys.ListByDocument(r.Context(), r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{"resources": resources})
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	results, err := h.sys.Search(r.Context(), req.Query, req.Limit)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{"results": results})
}
