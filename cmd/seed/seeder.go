// Package main provides the seed command, which uploads every supported
// file in a directory to a running docchat API and, by default, embeds it.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// supported lists the extensions the API can extract text from.
var supported = map[string]string{
	".pdf":  "application/pdf",
	".json": "application/json",
	".txt":  "text/plain",
	".md":   "text/markdown",
	".csv":  "text/csv",
}

// Seeder uploads documents to the API.
type Seeder struct {
	BaseURL string
	Embed   bool
	Client  *http.Client
}

// Result is the outcome for one file.
type Result struct {
	Path       string
	DocumentID string
	Status     string
	Err        error
}

type response struct {
	Status   string `json:"status"`
	Error    string `json:"error"`
	Document *struct {
		ID string `json:"id"`
	} `json:"document"`
}

// SeedDir uploads every supported file under dir in lexical order.
// Per-file failures are recorded in the results; only walk errors abort.
func (s *Seeder) SeedDir(ctx context.Context, dir string) ([]Result, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := supported[strings.ToLower(filepath.Ext(path))]; ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(paths)

	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		results = append(results, s.seedFile(ctx, path))
	}
	return results, nil
}

func (s *Seeder) seedFile(ctx context.Context, path string) Result {
	result := Result{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Err = err
		return result
	}

	body, contentType, err := multipartFile(filepath.Base(path), mimeType(path), data)
	if err != nil {
		result.Err = err
		return result
	}

	endpoint := "/documents/upload"
	if s.Embed {
		endpoint = "/documents/ingest"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimSuffix(s.BaseURL, "/")+endpoint, body)
	if err != nil {
		result.Err = err
		return result
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := s.Client.Do(req)
	if err != nil {
		result.Err = err
		return result
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	var out response
	if err := json.Unmarshal(raw, &out); err != nil {
		result.Err = fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
		return result
	}

	if resp.StatusCode != http.StatusOK {
		result.Err = fmt.Errorf("status %d: %s", resp.StatusCode, out.Error)
		return result
	}

	if out.Document != nil {
		result.DocumentID = out.Document.ID
	}

	result.Status = out.Status
	if result.Status == "" {
		result.Status = "stored"
	}
	if out.Error != "" {
		result.Err = fmt.Errorf("stored without embeddings: %s", out.Error)
	}
	return result
}

func mimeType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if mt, ok := supported[ext]; ok {
		return mt
	}
	if mt := mime.TypeByExtension(ext); mt != "" {
		return mt
	}
	return "application/octet-stream"
}

func multipartFile(filename, contentType string, data []byte) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}

	return &buf, mw.FormDataContentType(), nil
}
