package ingestion

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/docchat/internal/documents"
	"github.com/JaimeStill/docchat/pkg/handlers"
	"github.com/JaimeStill/docchat/pkg/routes"
)

// EmbedRequest is the body of an embed request.
type EmbedRequest struct {
	DocumentID string `json:"documentId"`
}

// Handler exposes the ingestion pipeline over HTTP.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

// NewHandler creates an ingestion handler.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "ingestion"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the ingestion route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/documents",
		Tags:        []string{"Ingestion"},
		Description: "Text extraction and embedding of stored documents",
		Schemas:     Spec.Schemas(),
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/embed", Handler: h.Embed, OpenAPI: Spec.Embed},
			{Method: "POST", Pattern: "/ingest", Handler: h.Ingest, OpenAPI: Spec.Ingest},
		},
	}
}

func (h *Handler) Embed(w http.ResponseWriter, r *http.Request) {
	var req EmbedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrMissingInput)
		return
	}

	outcome, err := h.sys.Embed(r.Context(), req.DocumentID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, outcome)
}

func (h *Handler) Ingest(w http.ResponseWriter, r *http.Request) {
	cmd, err := documents.ParseUpload(w, r, h.maxUploadSize)
	if err != nil {
		handlers.RespondError(w, h.logger, documents.MapHTTPStatus(err), err)
		return
	}

	outcome, err := h.sys.Ingest(r.Context(), *cmd)
	if err != nil {
		documents.RespondUploadError(w, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, outcome)
}
