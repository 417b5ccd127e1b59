package resources

import (
	"context"
	"fmt"

	"github.com/JaimeStill/docchat/pkg/embeddings"
)

// Builder chunks content and embeds every chunk.
type Builder struct {
	chunker  *Chunker
	embedder embeddings.Embedder
}

// NewBuilder creates a Builder from a chunker and an embedder.
func NewBuilder(chunker *Chunker, embedder embeddings.Embedder) *Builder {
	return &Builder{chunker: chunker, embedder: embedder}
}

// Build returns the embedded chunks of content. Either every chunk is
// embedded or an error is returned.
func (b *Builder) Build(ctx context.Context, content string) ([]Chunk, error) {
	texts, err := b.chunker.Split(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoChunks, err)
	}
	if len(texts) == 0 {
		return nil, ErrNoChunks
	}

	vectors, err := b.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbedding, err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("%w: got %d vectors for %d chunks", ErrEmbedding, len(vectors), len(texts))
	}

	chunks := make([]Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = Chunk{Index: i, Content: text, Embedding: vectors[i]}
	}
	return chunks, nil
}
