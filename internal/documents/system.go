package documents

import (
	"context"

	"github.com/JaimeStill/docchat/pkg/pagination"
)

// System defines the document operations.
// Implementations handle blob storage and database persistence.
type System interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Document], error)
	Find(ctx context.Context, id string) (*Document, error)
	Upload(ctx context.Context, cmd UploadCommand) (*Document, error)
	Delete(ctx context.Context, id string) error
}
