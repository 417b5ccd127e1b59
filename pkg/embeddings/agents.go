package embeddings

import (
	"context"
	"fmt"
	"maps"

	"github.com/JaimeStill/go-agents/pkg/agent"
	agtconfig "github.com/JaimeStill/go-agents/pkg/config"
)

type agentClient struct {
	agent agent.Agent
}

// NewAgentClient adapts a go-agents Agent to Client. The agent embeddings
// protocol takes a single input, so each text is a separate request.
func NewAgentClient(a agent.Agent) Client {
	return &agentClient{agent: a}
}

func (c *agentClient) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for i, text := range texts {
		resp, err := c.agent.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embed text %d: %w", i, err)
		}
		if resp == nil || len(resp.Data) == 0 {
			return nil, fmt.Errorf("embed text %d: empty response", i)
		}
		vectors = append(vectors, toFloat32(resp.Data[0].Embedding))
	}
	return vectors, nil
}

func newAgent(cfg *Config) (agent.Agent, error) {
	options := make(map[string]any, len(cfg.Options)+1)
	maps.Copy(options, cfg.Options)
	if _, ok := options["token"]; !ok && cfg.Token != "" {
		options["token"] = cfg.Token
	}

	ac := agtconfig.DefaultAgentConfig()
	ac.Merge(&agtconfig.AgentConfig{
		Name: "docchat-embeddings",
		Client: &agtconfig.ClientConfig{
			Timeout: agtconfig.Duration(cfg.TimeoutDuration()),
		},
		Provider: &agtconfig.ProviderConfig{
			Name:    string(cfg.Provider),
			BaseURL: cfg.BaseURL,
			Options: options,
		},
		Model: &agtconfig.ModelConfig{Name: cfg.Model},
	})

	return agent.New(&ac)
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, f := range v {
		out[i] = float32(f)
	}
	return out
}
