// Package ingestion runs the embedding pipeline for stored documents:
// resolve the record, extract its text, then build and persist resources.
package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/docchat/internal/documents"
	"github.com/JaimeStill/docchat/internal/extraction"
	"github.com/JaimeStill/docchat/internal/resources"
)

// Pipeline outcome statuses.
const (
	StatusEmbedded = "embedded"
	StatusStored   = "stored"
)

// Outcome reports the result of an embed or ingest request. Document is
// set for ingest requests. Error is set when the document was stored but
// could not be embedded.
type Outcome struct {
	Status   string              `json:"status"`
	Document *documents.Document `json:"document,omitempty"`
	Message  string              `json:"message,omitempty"`
	Chunks   int                 `json:"chunks,omitempty"`
	Error    string              `json:"error,omitempty"`
}

// System orchestrates document embedding.
type System interface {
	// Embed extracts and embeds a stored document in a single pass.
	Embed(ctx context.Context, documentID string) (*Outcome, error)

	// Ingest uploads a document and embeds it. Upload failures are returned
	// as errors; embedding failures produce a "stored" outcome.
	Ingest(ctx context.Context, cmd documents.UploadCommand) (*Outcome, error)
}

type pipeline struct {
	documents  documents.System
	extraction extraction.System
	resources  resources.System
	logger     *slog.Logger
}

// New creates the ingestion System.
func New(docs documents.System, ext extraction.System, res resources.System, logger *slog.Logger) System {
	return &pipeline{
		documents:  docs,
		extraction: ext,
		resources:  res,
		logger:     logger.With("system", "ingestion"),
	}
}

func (p *pipeline) Embed(ctx context.Context, documentID string) (*Outcome, error) {
	documentID = strings.TrimSpace(documentID)
	if documentID == "" {
		return nil, ErrMissingInput
	}

	logger := p.logger.With("document_id", documentID)
	logger.Info("embedding started")

	doc, err := p.documents.Find(ctx, documentID)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			logger.Warn("document not found")
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("resolve document: %w", err)
	}
	logger.Info("document resolved", "name", doc.Name, "mime_type", doc.MimeType)

	content, err := p.extraction.Extract(ctx, doc.URL, doc.MimeType)
	if err != nil {
		if errors.Is(err, extraction.ErrNoContent) {
			logger.Warn("no extractable content")
			return nil, ErrNoContent
		}
		return nil, err
	}
	logger.Info("content extracted", "chars", len(content))

	result, err := p.resources.Create(ctx, doc.ID, content)
	if err != nil {
		switch {
		case errors.Is(err, resources.ErrNoChunks):
			return nil, ErrNoContent
		case errors.Is(err, ErrEmbeddingFailed):
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrEmbeddingFailed, err)
	}
	logger.Info("embedding finished", "chunks", result.Chunks, "replaced", result.Replaced)

	return &Outcome{
		Status:  StatusEmbedded,
		Message: result.Message,
		Chunks:  result.Chunks,
	}, nil
}

func (p *pipeline) Ingest(ctx context.Context, cmd documents.UploadCommand) (*Outcome, error) {
	doc, err := p.documents.Upload(ctx, cmd)
	if err != nil {
		return nil, err
	}

	outcome, err := p.Embed(ctx, doc.ID)
	if err != nil {
		p.logger.Warn("document stored without embeddings", "document_id", doc.ID, "error", err)
		return &Outcome{
			Status:   StatusStored,
			Document: doc,
			Error:    err.Error(),
		}, nil
	}

	outcome.Document = doc
	return outcome, nil
}
