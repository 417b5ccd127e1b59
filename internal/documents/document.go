// Package documents records uploaded files. Bytes go to blob storage and
// metadata to Postgres; the stored record is immutable.
package documents

import (
	"time"
)

// Document is the metadata of an uploaded file.
type Document struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	MimeType  string    `json:"mimeType"`
	Size      int64     `json:"size"`
	PageCount *int      `json:"pageCount,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// UploadCommand contains a parsed upload ready to store.
type UploadCommand struct {
	Filename string
	MimeType string
	Data     []byte
}
