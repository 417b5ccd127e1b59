package resources

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/docchat/pkg/embeddings"
	"github.com/JaimeStill/docchat/pkg/query"
	"github.com/JaimeStill/docchat/pkg/repository"
	"github.com/pgvector/pgvector-go"
)

var projection = query.NewProjectionMap("public", "resources", "r").
	Project("id", "Id").
	Project("document_id", "DocumentId").
	Project("chunk_index", "ChunkIndex").
	Project("content", "Content").
	Project("created_at", "CreatedAt")

func scanResource(s repository.Scanner) (Resource, error) {
	var r Resource
	err := s.Scan(
		&r.ID,
		&r.DocumentID,
		&r.ChunkIndex,
		&r.Content,
		&r.CreatedAt,
	)
	return r, err
}

func scanSearchResult(s repository.Scanner) (SearchResult, error) {
	var r SearchResult
	err := s.Scan(
		&r.ResourceID,
		&r.DocumentID,
		&r.ChunkIndex,
		&r.Content,
		&r.Similarity,
	)
	return r, err
}

type repo struct {
	db       *sql.DB
	builder  *Builder
	embedder embeddings.Embedder
	limits   SearchLimits
	logger   *slog.Logger
}

// New creates a resource System backed by db.
func New(db *sql.DB, builder *Builder, embedder embeddings.Embedder, limits SearchLimits, logger *slog.Logger) System {
	return &repo{
		db:       db,
		builder:  builder,
		embedder: embedder,
		limits:   limits,
		logger:   logger.With("system", "resources"),
	}
}

func (r *repo) Create(ctx context.Context, documentID, content string) (*Result, error) {
	chunks, err := r.builder.Build(ctx, content)
	if err != nil {
		return nil, err
	}

	replaced, err := r.replace(ctx, documentID, chunks)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	r.logger.Info("resources created", "document_id", documentID, "chunks", len(chunks), "replaced", replaced)

	return &Result{
		DocumentID: documentID,
		Chunks:     len(chunks),
		Replaced:   replaced,
		Message:    fmt.Sprintf("Resource successfully created and embedded (%d chunks).", len(chunks)),
	}, nil
}

func (r *repo) replace(ctx context.Context, documentID string, chunks []Chunk) (int, error) {
	return repository.WithTx(ctx, r.db, func(tx *sql.Tx) (int, error) {
		res, err := tx.ExecContext(ctx, `DELETE FROM resources WHERE document_id = $1`, documentID)
		if err != nil {
			return 0, fmt.Errorf("delete resources: %w", err)
		}

		replaced, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}

		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO resources(document_id, chunk_index, content, embedding) VALUES($1, $2, $3, $4)`)
		if err != nil {
			return 0, fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, c := range chunks {
			if _, err := stmt.ExecContext(ctx, documentID, c.Index, c.Content, pgvector.NewVector(c.Embedding)); err != nil {
				return 0, fmt.Errorf("insert chunk %d: %w", c.Index, err)
			}
		}

		return int(replaced), nil
	})
}

func (r *repo) ListByDocument(ctx context.Context, documentID string) ([]Resource, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM documents WHERE id = $1)`, documentID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check document: %w", err)
	}
	if !exists {
		return nil, ErrDocumentNotFound
	}

	q := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1 ORDER BY %s",
		projection.Columns(),
		projection.Table(),
		projection.Column("DocumentId"),
		projection.Column("ChunkIndex"),
	)

	resources, err := repository.QueryMany(ctx, r.db, q, []any{documentID}, scanResource)
	if err != nil {
		return nil, fmt.Errorf("query resources: %w", err)
	}
	return resources, nil
}

func (r *repo) Search(ctx context.Context, text string, limit int) ([]SearchResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyQuery
	}

	vector, err := r.embedder.EmbedText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbedding, err)
	}

	q := `SELECT r.id, r.document_id, r.chunk_index, r.content, 1 - (r.embedding <=> $1) AS similarity
		FROM public.resources r
		ORDER BY r.embedding <=> $1
		LIMIT $2`

	results, err := repository.QueryMany(ctx, r.db, q, []any{pgvector.NewVector(vector), r.limits.Clamp(limit)}, scanSearchResult)
	if err != nil {
		return nil, fmt.Errorf("search resources: %w", err)
	}

	r.logger.Debug("resources searched", "results", len(results))
	return results, nil
}
