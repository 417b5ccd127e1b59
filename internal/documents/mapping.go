package documents

import (
	"github.com/JaimeStill/docchat/pkg/query"
	"github.com/JaimeStill/docchat/pkg/repository"
)

var projection = query.NewProjectionMap("public", "documents", "d").
	Project("id", "Id").
	Project("name", "Name").
	Project("url", "Url").
	Project("mime_type", "MimeType").
	Project("size", "Size").
	Project("page_count", "PageCount").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{Field: "CreatedAt", Descending: true}

func scanDocument(s repository.Scanner) (Document, error) {
	var d Document
	err := s.Scan(
		&d.ID,
		&d.Name,
		&d.URL,
		&d.MimeType,
		&d.Size,
		&d.PageCount,
		&d.CreatedAt,
	)
	return d, err
}
