package resources

import (
	"errors"
	"net/http"
)

// Domain errors for resource operations.
var (
	ErrNoChunks         = errors.New("content produced no chunks")
	ErrEmbedding        = errors.New("embedding failed")
	ErrPersistence      = errors.New("resource persistence failed")
	ErrEmptyQuery       = errors.New("Missing query")
	ErrDocumentNotFound = errors.New("Document not found")
)

// MapHTTPStatus converts domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrEmptyQuery) || errors.Is(err, ErrNoChunks) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrDocumentNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
