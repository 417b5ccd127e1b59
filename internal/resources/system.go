package resources

import "context"

// System defines resource creation and retrieval.
type System interface {
	// Create replaces the resources of documentID with freshly embedded
	// chunks of content in a single transaction.
	Create(ctx context.Context, documentID, content string) (*Result, error)
	ListByDocument(ctx context.Context, documentID string) ([]Resource, error)
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
}

// SearchLimits bounds the number of similarity search results.
type SearchLimits struct {
	Default int
	Max     int
}

// Clamp returns limit bounded to [1, Max], using Default when limit is unset.
func (l SearchLimits) Clamp(limit int) int {
	if limit < 1 {
		limit = l.Default
	}
	if l.Max > 0 && limit > l.Max {
		limit = l.Max
	}
	if limit < 1 {
		limit = 1
	}
	return limit
}
