package documents

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/docchat/pkg/handlers"
	"github.com/JaimeStill/docchat/pkg/pagination"
	"github.com/JaimeStill/docchat/pkg/routes"
)

// ListResponse is a page of documents, newest first.
type ListResponse struct {
	Documents  []Document `json:"documents"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}

// DocumentResponse wraps a single document. Document is null when a
// lookup by id finds nothing.
type DocumentResponse struct {
	Document *Document `json:"document"`
}

// Handler provides HTTP endpoints for document operations.
type Handler struct {
	sys           System
	logger        *slog.Logger
	pagination    pagination.Config
	maxUploadSize int64
}

// NewHandler creates a document handler with the specified configuration.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "documents"),
		pagination:    pagination,
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the document endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/documents",
		Tags:        []string{"Documents"},
		Description: "Document upload and lookup",
		Schemas:     Spec.Schemas(),
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: Spec.Find},
			{Method: "POST", Pattern: "/upload", Handler: h.Upload, OpenAPI: Spec.Upload},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete, OpenAPI: Spec.Delete},
		},
	}
}

// List returns a page of documents, or a single document when the id
// query parameter is present.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if id := r.URL.Query().Get("id"); id != "" {
		h.lookup(w, r, id)
		return
	}

	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ListResponse{
		Documents:  result.Data,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	})
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request, id string) {
	doc, err := h.sys.Find(r.Context(), id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, DocumentResponse{Document: doc})
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	doc, err := h.sys.Find(r.Context(), r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, doc)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.Delete(r.Context(), r.PathValue("id")); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	cmd, err := ParseUpload(w, r, h.maxUploadSize)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	doc, err := h.sys.Upload(r.Context(), *cmd)
	if err != nil {
		RespondUploadError(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, DocumentResponse{Document: doc})
}

// RespondUploadError writes an upload failure. Failures after the blob was
// stored include its url.
func RespondUploadError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var uploadErr *UploadError
	if errors.As(err, &uploadErr) {
		handlers.RespondErrorWith(w, logger, MapHTTPStatus(err), err, map[string]any{"url": uploadErr.URL})
		return
	}
	handlers.RespondError(w, logger, MapHTTPStatus(err), err)
}
