package documents

import (
	"net/url"
	"strings"

	"github.com/JaimeStill/docchat/pkg/query"
)

// Filters narrows a document listing.
type Filters struct {
	Name     *string
	MimeType *string
	IDs      []string
}

// FiltersFromQuery reads name, mime_type and ids (comma-separated) from the
// query string.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if n := strings.TrimSpace(values.Get("name")); n != "" {
		f.Name = &n
	}

	if mt := strings.TrimSpace(values.Get("mime_type")); mt != "" {
		mt = strings.ToLower(mt)
		f.MimeType = &mt
	}

	for id := range strings.SplitSeq(values.Get("ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			f.IDs = append(f.IDs, id)
		}
	}

	return f
}

// Apply adds the filter conditions to b.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.WhereContains("Name", f.Name)

	if f.MimeType != nil {
		b.WhereEquals("MimeType", *f.MimeType)
	}

	if len(f.IDs) > 0 {
		ids := make([]any, len(f.IDs))
		for i, id := range f.IDs {
			ids[i] = id
		}
		b.WhereIn("Id", ids)
	}

	return b
}
