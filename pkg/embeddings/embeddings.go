// Package embeddings generates vector embeddings through an OpenAI-compatible
// API (langchaingo) or an Ollama or Azure provider (go-agents). Requests are
// split into batches and throttled by a token bucket shared by every caller
// of the same Embedder.
package embeddings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"

	lcembeddings "github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
	"golang.org/x/time/rate"
)

// ErrCountMismatch indicates the provider returned a different number of
// vectors than texts submitted.
var ErrCountMismatch = errors.New("embeddings: vector count mismatch")

// Embedder generates embeddings for text.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Client is the provider surface used by the batching embedder.
// langchaingo's embeddings.Embedder satisfies it.
type Client interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
}

type embedder struct {
	client    Client
	limiter   *rate.Limiter
	batchSize int
	logger    *slog.Logger
}

// New creates an Embedder for cfg.Provider. The openai provider uses
// langchaingo; ollama and azure go through a go-agents Agent.
func New(cfg *Config, logger *slog.Logger) (Embedder, error) {
	if cfg.Provider != ProviderOpenAI {
		a, err := newAgent(cfg)
		if err != nil {
			return nil, fmt.Errorf("create %s agent: %w", cfg.Provider, err)
		}
		return NewWithClient(cfg, NewAgentClient(a), logger), nil
	}


	// OpenAI-compatible local servers accept any bearer value.
	token := cfg.Token
	if token == "" {
		token = "none"
	}

	llm, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(token),
		openai.WithEmbeddingModel(cfg.Model),
		openai.WithHTTPClient(&http.Client{Timeout: cfg.TimeoutDuration()}),
	)
	if err != nil {
		return nil, fmt.Errorf("create embeddings client: %w", err)
	}

	client, err := lcembeddings.NewEmbedder(
		llm,
		lcembeddings.WithStripNewLines(true),
		lcembeddings.WithBatchSize(cfg.BatchSize),
	)
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}

	return NewWithClient(cfg, client, logger), nil
}

// NewWithClient wraps client with batching and rate limiting from cfg.
func NewWithClient(cfg *Config, client Client, logger *slog.Logger) Embedder {
	limit := rate.Limit(cfg.RequestsPerSecond)
	if cfg.RequestsPerSecond <= 0 {
		limit = rate.Inf
	}

	batchSize := cfg.BatchSize
	if batchSize < 1 {
		batchSize = 1
	}

	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &embedder{
		client:    client,
		limiter:   rate.NewLimiter(limit, burst),
		batchSize: batchSize,
		logger:    logger.With("system", "embeddings", "provider", cfg.Provider, "model", cfg.Model),
	}
}

func (e *embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (e *embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	batches := int(math.Ceil(float64(len(texts)) / float64(e.batchSize)))
	e.logger.Debug("embedding texts", "count", len(texts), "batches", batches)

	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += e.batchSize {
		end := min(start+e.batchSize, len(texts))
		batch := texts[start:end]

		if err := e.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		out, err := e.client.EmbedDocuments(ctx, batch)
		if err != nil {
			e.logger.Error("embedding batch failed", "start", start, "size", len(batch), "error", err)
			return nil, fmt.Errorf("embed batch at %d: %w", start, err)
		}

		if len(out) != len(batch) {
			return nil, fmt.Errorf("%w: got %d, want %d", ErrCountMismatch, len(out), len(batch))
		}

		vectors = append(vectors, out...)
	}

	return vectors, nil
}
