package storage

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strconv"

	"github.com/JaimeStill/docchat/pkg/handlers"
)

// Handler serves stored blobs for requests matching a "{key...}" wildcard,
// making URLs returned by the filesystem provider resolvable.
func Handler(sys System, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.PathValue("key")

		data, err := sys.Retrieve(r.Context(), key)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidKey):
				handlers.RespondError(w, logger, http.StatusNotFound, ErrNotFound)
			case errors.Is(err, ErrPermissionDenied):
				handlers.RespondError(w, logger, http.StatusForbidden, err)
			default:
				handlers.RespondError(w, logger, http.StatusInternalServerError, err)
			}
			return
		}

		contentType := mime.TypeByExtension(path.Ext(key))
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}
