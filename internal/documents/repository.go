package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/docchat/pkg/pagination"
	"github.com/JaimeStill/docchat/pkg/query"
	"github.com/JaimeStill/docchat/pkg/repository"
	"github.com/JaimeStill/docchat/pkg/storage"
	"github.com/google/uuid"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a document System with database and blob storage integration.
func New(db *sql.DB, storage storage.System, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		storage:    storage,
		logger:     logger.With("system", "documents"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Document], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.SearchTerm(), "Name")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	docs, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}

	result := pagination.NewPageResult(docs, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id string) (*Document, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		BuildSingle("Id", id)

	doc, err := repository.QueryOne(ctx, r.db, q, args, scanDocument)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &doc, nil
}

func (r *repo) Upload(ctx context.Context, cmd UploadCommand) (*Document, error) {
	id := uuid.NewString()

	name := cmd.Filename
	if name == "" {
		name = "document-" + id
	}

	mimeType := cmd.MimeType
	if mimeType == "" {
		mimeType = defaultMimeType
	}

	var pageCount *int
	if mimeType == "application/pdf" {
		if pageCount = pdfPageCount(cmd.Data); pageCount == nil {
			r.logger.Warn("failed to read pdf page count", "id", id, "name", name)
		}
	}

	key := storage.DocumentKey(id, name)
	url, err := r.storage.Store(ctx, key, cmd.Data, mimeType)
	if err != nil {
		if errors.Is(err, storage.ErrMissingToken) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	q := `INSERT INTO documents(id, name, url, mime_type, size, page_count)
		VALUES($1, $2, $3, $4, $5, $6)
		RETURNING id, name, url, mime_type, size, page_count, created_at`

	doc, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Document, error) {
		return repository.QueryOne(ctx, tx, q, []any{
			id, name, url, mimeType, int64(len(cmd.Data)), pageCount,
		}, scanDocument)
	})

	if err != nil {
		r.logger.Error("document insert failed after blob upload", "id", id, "url", url, "error", err)
		return nil, &UploadError{
			URL: url,
			Err: fmt.Errorf("%w: %v", ErrPersistence, repository.MapError(err, ErrNotFound, ErrDuplicate)),
		}
	}

	r.logger.Info("document created", "id", doc.ID, "name", doc.Name, "key", key, "size", doc.Size)
	return &doc, nil
}

// Delete removes the document row, its resources by cascade, and then the
// blob. A blob that cannot be removed is logged and left behind.
func (r *repo) Delete(ctx context.Context, id string) error {
	doc, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, "DELETE FROM documents WHERE id = $1", id)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	key := storage.DocumentKey(doc.ID, doc.Name)
	if err := r.storage.Delete(ctx, key); err != nil {
		r.logger.Error("blob cleanup failed", "id", id, "key", key, "error", err)
	}

	r.logger.Info("document deleted", "id", id)
	return nil
}
