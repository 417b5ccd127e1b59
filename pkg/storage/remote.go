package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/docchat/pkg/lifecycle"
)

// remote implements System against a hosted blob API. Objects are written with
// PUT {endpoint}/{key} and the API answers with the public URL of the blob.
type remote struct {
	endpoint string
	token    string
	client   *http.Client
	logger   *slog.Logger
}

type putResponse struct {
	URL string `json:"url"`
}

func newRemote(cfg *Config, logger *slog.Logger) (*remote, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("endpoint required")
	}

	return &remote{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		token:    strings.TrimSpace(cfg.Token),
		client:   &http.Client{Timeout: cfg.TimeoutDuration()},
		logger:   logger.With("system", "storage", "provider", ProviderRemote),
	}, nil
}

func (r *remote) Start(lc *lifecycle.Coordinator) error {
	r.logger.Info("starting storage system", "endpoint", r.endpoint)
	return nil
}

func (r *remote) URL(key string) string {
	return r.endpoint + "/" + key
}

func (r *remote) Store(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	resp, err := r.do(ctx, http.MethodPut, key, bytes.NewReader(data), func(req *http.Request) {
		req.Header.Set("x-content-type", contentType)
		req.ContentLength = int64(len(data))
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var out putResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}
	if out.URL == "" {
		return "", fmt.Errorf("%w: response missing url", ErrUpstream)
	}

	return out.URL, nil
}

func (r *remote) Retrieve(ctx context.Context, key string) ([]byte, error) {
	resp, err := r.do(ctx, http.MethodGet, key, nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUpstream, err)
	}
	return data, nil
}

func (r *remote) Delete(ctx context.Context, key string) error {
	resp, err := r.do(ctx, http.MethodDelete, key, nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil && err != ErrNotFound {
		return err
	}
	return nil
}

func (r *remote) do(ctx context.Context, method, key string, body io.Reader, decorate func(*http.Request)) (*http.Response, error) {
	if r.token == "" {
		return nil, ErrMissingToken
	}
	if !validKey(key) {
		return nil, ErrInvalidKey
	}

	req, err := http.NewRequestWithContext(ctx, method, r.URL(key), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.token)
	if decorate != nil {
		decorate(req)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return resp, nil
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return ErrPermissionDenied
	default:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
}
