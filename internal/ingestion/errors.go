package ingestion

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/docchat/internal/extraction"
	"github.com/JaimeStill/docchat/internal/resources"
)

// Domain errors for the embedding pipeline. Messages are returned to
// clients verbatim.
var (
	ErrMissingInput    = errors.New("Missing documentId")
	ErrNotFound        = errors.New("Document not found")
	ErrNoContent       = errors.New("No extractable content")
	ErrEmbeddingFailed = resources.ErrEmbedding
)

// MapHTTPStatus converts pipeline errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrMissingInput), errors.Is(err, ErrNoContent):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, extraction.ErrFetch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
