package embeddings_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/JaimeStill/go-agents/pkg/mock"

	"github.com/JaimeStill/docchat/pkg/embeddings"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type recordingClient struct {
	mu      sync.Mutex
	batches [][]string
	drop    bool
	err     error
}

func (c *recordingClient) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.err != nil {
		return nil, c.err
	}

	c.batches = append(c.batches, texts)

	n := len(texts)
	if c.drop {
		n--
	}

	out := make([][]float32, n)
	for i := range out {
		out[i] = []float32{float32(len(texts[i]))}
	}
	return out, nil
}

func newEmbedder(client embeddings.Client, batchSize int) embeddings.Embedder {
	return embeddings.NewWithClient(&embeddings.Config{
		Model:             "test-embed",
		BatchSize:         batchSize,
		RequestsPerSecond: -1,
	}, client, discard)
}

func TestEmbedTexts_Batches(t *testing.T) {
	client := &recordingClient{}
	emb := newEmbedder(client, 2)

	texts := []string{"a", "bb", "ccc", "dddd", "eeeee"}
	vectors, err := emb.EmbedTexts(context.Background(), texts)
	if err != nil {
		t.Fatalf("EmbedTexts() error = %v", err)
	}

	if len(client.batches) != 3 {
		t.Errorf("batches = %d, want 3", len(client.batches))
	}

	if len(vectors) != len(texts) {
		t.Fatalf("len(vectors) = %d, want %d", len(vectors), len(texts))
	}

	for i, v := range vectors {
		if v[0] != float32(len(texts[i])) {
			t.Errorf("vectors[%d] = %v, order not preserved", i, v)
		}
	}
}

func TestEmbedTexts_Empty(t *testing.T) {
	client := &recordingClient{}
	vectors, err := newEmbedder(client, 4).EmbedTexts(context.Background(), nil)

	if err != nil {
		t.Fatalf("EmbedTexts() error = %v", err)
	}
	if len(vectors) != 0 || len(client.batches) != 0 {
		t.Errorf("EmbedTexts(nil) made %d calls, returned %d vectors", len(client.batches), len(vectors))
	}
}

func TestEmbedTexts_CountMismatch(t *testing.T) {
	_, err := newEmbedder(&recordingClient{drop: true}, 4).EmbedTexts(context.Background(), []string{"a", "b"})

	if !errors.Is(err, embeddings.ErrCountMismatch) {
		t.Errorf("EmbedTexts() error = %v, want ErrCountMismatch", err)
	}
}

func TestEmbedTexts_ProviderError(t *testing.T) {
	providerErr := errors.New("503 service unavailable")
	_, err := newEmbedder(&recordingClient{err: providerErr}, 4).EmbedTexts(context.Background(), []string{"a"})

	if !errors.Is(err, providerErr) {
		t.Errorf("EmbedTexts() error = %v, want wrapped provider error", err)
	}
}

func TestEmbedTexts_CancelledContext(t *testing.T) {
	emb := embeddings.NewWithClient(&embeddings.Config{
		Model:             "test-embed",
		BatchSize:         1,
		RequestsPerSecond: 0.001,
		Burst:             1,
	}, &recordingClient{}, discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := emb.EmbedTexts(ctx, []string{"a", "b"}); err == nil {
		t.Error("EmbedTexts() error = nil, want context error")
	}
}

func TestEmbedText(t *testing.T) {
	v, err := newEmbedder(&recordingClient{}, 4).EmbedText(context.Background(), "hello")
	if err != nil {
		t.Fatalf("EmbedText() error = %v", err)
	}
	if len(v) != 1 || v[0] != 5 {
		t.Errorf("EmbedText() = %v, want [5]", v)
	}
}

func TestConfig_Finalize(t *testing.T) {
	cfg := &embeddings.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.BatchSize != 16 {
		t.Errorf("BatchSize = %d, want 16", cfg.BatchSize)
	}

	bad := &embeddings.Config{Timeout: "soon"}
	if err := bad.Finalize(nil); err == nil {
		t.Error("Finalize() error = nil, want invalid timeout")
	}
}

func TestConfig_ProviderDefaults(t *testing.T) {
	tests := []struct {
		provider  embeddings.Provider
		wantURL   string
		wantModel string
	}{
		{"", "https://api.openai.com/v1", "text-embedding-3-small"},
		{embeddings.ProviderOllama, "http://localhost:11434", "nomic-embed-text"},
	}

	for _, tt := range tests {
		t.Run(string(tt.provider), func(t *testing.T) {
			cfg := &embeddings.Config{Provider: tt.provider}
			if err := cfg.Finalize(nil); err != nil {
				t.Fatalf("Finalize() error = %v", err)
			}
			if cfg.BaseURL != tt.wantURL || cfg.Model != tt.wantModel {
				t.Errorf("Finalize() = %s %s, want %s %s", cfg.BaseURL, cfg.Model, tt.wantURL, tt.wantModel)
			}
		})
	}

	if err := (&embeddings.Config{Provider: "cohere"}).Finalize(nil); err == nil {
		t.Error("Finalize() error = nil, want unknown provider")
	}
	if err := (&embeddings.Config{Provider: embeddings.ProviderAzure}).Finalize(nil); err == nil {
		t.Error("Finalize() error = nil, want azure to require base_url")
	}
}

func TestAgentClient_EmbedDocuments(t *testing.T) {
	client := embeddings.NewAgentClient(mock.NewEmbeddingsAgent("embed", []float64{0.5, 0.25}))
	emb := newEmbedder(client, 2)

	vectors, err := emb.EmbedTexts(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("EmbedTexts() error = %v", err)
	}

	if len(vectors) != 3 {
		t.Fatalf("len(vectors) = %d, want 3", len(vectors))
	}
	for i, v := range vectors {
		if len(v) != 2 || v[0] != 0.5 || v[1] != 0.25 {
			t.Errorf("vectors[%d] = %v, want [0.5 0.25]", i, v)
		}
	}
}

func TestAgentClient_Failure(t *testing.T) {
	boom := errors.New("provider unavailable")
	client := embeddings.NewAgentClient(mock.NewFailingAgent("embed", boom))

	_, err := newEmbedder(client, 4).EmbedTexts(context.Background(), []string{"a"})
	if !errors.Is(err, boom) {
		t.Errorf("EmbedTexts() error = %v, want %v", err, boom)
	}
}

func TestNew_AgentProviders(t *testing.T) {
	ollama := &embeddings.Config{Provider: embeddings.ProviderOllama}
	if err := ollama.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if _, err := embeddings.New(ollama, discard); err != nil {
		t.Errorf("New(ollama) error = %v", err)
	}

	azure := &embeddings.Config{
		Provider: embeddings.ProviderAzure,
		BaseURL:  "https://example.openai.azure.com/openai",
		Model:    "text-embedding-3-small",
		Token:    "secret",
	}
	if err := azure.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if _, err := embeddings.New(azure, discard); err == nil {
		t.Error("New(azure) without deployment options error = nil, want error")
	}

	azure.Options = map[string]any{"deployment": "embed", "auth_type": "api_key", "api_version": "2024-06-01"}
	if _, err := embeddings.New(azure, discard); err != nil {
		t.Errorf("New(azure) error = %v", err)
	}
}
