package extraction

import (
	"mime"
	"net/url"
	"strings"
)

// Kind identifies how fetched bytes are turned into text.
type Kind int

const (
	KindText Kind = iota
	KindJSON
	KindPDF
)

func (k Kind) String() string {
	switch k {
	case KindPDF:
		return "pdf"
	case KindJSON:
		return "json"
	default:
		return "text"
	}
}

// Classify picks the Kind for a document from its declared MIME type and URL.
// PDF is checked before JSON; anything else is treated as text.
func Classify(mimeType, rawURL string) Kind {
	mt := normalizeMIME(mimeType)
	ext := urlExtension(rawURL)

	switch {
	case mt == "application/pdf" || ext == ".pdf":
		return KindPDF
	case mt == "application/json" || ext == ".json":
		return KindJSON
	default:
		return KindText
	}
}

func normalizeMIME(mimeType string) string {
	if mt, _, err := mime.ParseMediaType(mimeType); err == nil {
		return mt
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}

func urlExtension(rawURL string) string {
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		path = u.Path
	}

	path = strings.ToLower(path)
	if i := strings.LastIndex(path, "."); i >= 0 && !strings.Contains(path[i:], "/") {
		return path[i:]
	}
	return ""
}
