package documents

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/docchat/pkg/storage"
)

// Domain errors for document operations.
var (
	ErrNotFound     = errors.New("Document not found")
	ErrDuplicate    = errors.New("document already exists")
	ErrNoFile       = errors.New("No file uploaded")
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
	ErrStorage      = errors.New("blob upload failed")
	ErrPersistence  = errors.New("document persistence failed")
)

// UploadError reports a failure that happened after the blob was stored.
// URL locates the stored blob so the caller can surface or reclaim it.
type UploadError struct {
	URL string
	Err error
}

func (e *UploadError) Error() string { return e.Err.Error() }

func (e *UploadError) Unwrap() error { return e.Err }

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNoFile):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, storage.ErrMissingToken):
		return http.StatusInternalServerError
	case errors.Is(err, ErrStorage):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
