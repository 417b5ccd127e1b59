package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/docchat/pkg/lifecycle"
)

// System defines blob storage operations. Store returns the publicly
// resolvable URL of the written blob.
type System interface {
	// Store saves data at key, overwriting existing contents.
	// Returns ErrInvalidKey if the key is empty or contains path traversal.
	Store(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Retrieve returns the data stored at key or ErrNotFound.
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// URL returns the public URL for key without touching storage.
	URL(key string) string

	// Start registers lifecycle hooks with the coordinator.
	Start(lc *lifecycle.Coordinator) error
}

// New creates the System selected by cfg.Provider.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	switch cfg.Provider {
	case ProviderFilesystem, "":
		return newFilesystem(cfg, logger)
	case ProviderRemote:
		return newRemote(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage provider: %s", cfg.Provider)
	}
}
