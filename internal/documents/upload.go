package documents

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

const (
	defaultMimeType   = "application/octet-stream"
	multipartOverhead = 1 << 20
	multipartMemLimit = 32 << 20
)

func init() {
	api.DisableConfigDir()
}

// ParseUpload reads the multipart "file" field from r. The part's declared
// Content-Type is kept as-is; a missing one becomes application/octet-stream.
// Files larger than maxSize return ErrFileTooLarge.
func ParseUpload(w http.ResponseWriter, r *http.Request, maxSize int64) (*UploadCommand, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(multipartMemLimit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, ErrFileTooLarge
		}
		return nil, ErrNoFile
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, ErrNoFile
	}
	defer file.Close()

	if header.Size > maxSize {
		return nil, ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > maxSize {
		return nil, ErrFileTooLarge
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = defaultMimeType
	}

	return &UploadCommand{
		Filename: header.Filename,
		MimeType: mimeType,
		Data:     data,
	}, nil
}

// pdfPageCount returns the page count of a PDF, or nil when data cannot be
// read as one.
func pdfPageCount(data []byte) *int {
	count, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return nil
	}
	return &count
}
