package extraction

import (
	"errors"
	"net/http"
)

var (
	// ErrMissingURL indicates a parse request without a source URL.
	ErrMissingURL = errors.New("Missing url")
	// ErrFetch indicates the content URL could not be retrieved.
	ErrFetch = errors.New("fetch failed")
	// ErrExtraction indicates the fetched bytes could not be parsed.
	ErrExtraction = errors.New("extraction failed")
	// ErrNoContent indicates extraction produced only whitespace.
	ErrNoContent = errors.New("no extractable content")
)

// MapHTTPStatus maps extraction errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrMissingURL), errors.Is(err, ErrNoContent):
		return http.StatusBadRequest
	case errors.Is(err, ErrFetch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
