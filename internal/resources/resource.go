// Package resources turns document text into embedded retrieval chunks and
// stores them in Postgres as pgvector rows.
package resources

import (
	"time"

	"github.com/google/uuid"
)

// Resource is a persisted chunk of document text. The embedding is stored
// alongside it but never returned to clients.
type Resource struct {
	ID         uuid.UUID `json:"id"`
	DocumentID string    `json:"documentId"`
	ChunkIndex int       `json:"chunkIndex"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Chunk is a piece of content paired with its embedding, ready to persist.
type Chunk struct {
	Index     int
	Content   string
	Embedding []float32
}

// Result reports the outcome of building resources for a document.
type Result struct {
	DocumentID string `json:"documentId"`
	Chunks     int    `json:"chunks"`
	Replaced   int    `json:"replaced"`
	Message    string `json:"message"`
}

// SearchRequest is the body of a similarity search.
type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// SearchResult is a resource ranked by cosine similarity to a query.
type SearchResult struct {
	ResourceID uuid.UUID `json:"resourceId"`
	DocumentID string    `json:"documentId"`
	ChunkIndex int       `json:"chunkIndex"`
	Content    string    `json:"content"`
	Similarity float64   `json:"similarity"`
}
