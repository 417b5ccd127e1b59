package extraction

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/docchat/pkg/handlers"
	"github.com/JaimeStill/docchat/pkg/routes"
)

// ParseRequest is the body of a parse-pdf request.
type ParseRequest struct {
	URL string `json:"url"`
}

// ParseResponse carries the extracted text.
type ParseResponse struct {
	Content string `json:"content"`
}

// Handler exposes PDF text extraction over HTTP.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates an extraction handler.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "extraction"),
	}
}

// Routes returns the extraction route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/parse-pdf",
		Tags:        []string{"Extraction"},
		Description: "Plain-text extraction from PDF documents",
		Schemas:     Spec.Schemas(),
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.ParsePDF, OpenAPI: Spec.ParsePDF},
		},
	}
}

// ParsePDF fetches the PDF at the requested URL and returns its text.
// Every failure past input validation is reported as a 500.
func (h *Handler) ParsePDF(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrMissingURL)
		return
	}

	content, err := h.sys.Parse(r.Context(), req.URL, KindPDF)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ParseResponse{Content: content})
}
