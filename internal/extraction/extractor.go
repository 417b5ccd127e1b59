// Package extraction fetches document bytes by URL and turns them into
// plain text according to the document kind.
package extraction

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// System extracts text from documents addressed by URL.
type System interface {
	// Extract classifies the document, fetches it and returns its trimmed
	// text. Whitespace-only results return ErrNoContent.
	Extract(ctx context.Context, url, mimeType string) (string, error)

	// Parse fetches url and decodes it as kind, returning trimmed text that
	// may be empty.
	Parse(ctx context.Context, url string, kind Kind) (string, error)
}

// Config bounds content fetches.
type Config struct {
	FetchTimeout time.Duration
	MaxFetchSize int64
}

type extractor struct {
	client  *http.Client
	maxSize int64
	logger  *slog.Logger
}

// New creates an extraction System.
func New(cfg Config, logger *slog.Logger) System {
	return &extractor{
		client:  &http.Client{Timeout: cfg.FetchTimeout},
		maxSize: cfg.MaxFetchSize,
		logger:  logger.With("system", "extraction"),
	}
}

func (e *extractor) Extract(ctx context.Context, url, mimeType string) (string, error) {
	kind := Classify(mimeType, url)

	text, err := e.Parse(ctx, url, kind)
	if err != nil {
		return "", err
	}

	if text == "" {
		return "", ErrNoContent
	}

	return text, nil
}

func (e *extractor) Parse(ctx context.Context, url string, kind Kind) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", ErrMissingURL
	}

	data, err := e.fetch(ctx, url)
	if err != nil {
		return "", err
	}

	text, err := kind.decoder()(data)
	if err != nil {
		return "", err
	}

	text = trimContent(text)
	e.logger.Debug("content extracted", "kind", kind, "bytes", len(data), "chars", len(text))

	return text, nil
}

func (e *extractor) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrFetch, url, resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if e.maxSize > 0 {
		body = io.LimitReader(resp.Body, e.maxSize+1)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrFetch, err)
	}

	if e.maxSize > 0 && int64(len(data)) > e.maxSize {
		return nil, fmt.Errorf("%w: content exceeds %d bytes", ErrFetch, e.maxSize)
	}

	return data, nil
}
