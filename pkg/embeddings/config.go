package embeddings

import (
	"fmt"
	"maps"
	"os"
	"strconv"
	"time"
)

// Provider selects the embeddings backend.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderOllama Provider = "ollama"
	ProviderAzure  Provider = "azure"
)

// Config describes an embeddings endpoint and the client side throttling
// applied to it. Options are passed to go-agents providers verbatim; azure
// needs deployment, auth_type and api_version there.
type Config struct {
	Provider          Provider       `toml:"provider"`
	BaseURL           string         `toml:"base_url"`
	Model             string         `toml:"model"`
	Token             string         `toml:"token"`
	BatchSize         int            `toml:"batch_size"`
	RequestsPerSecond float64        `toml:"requests_per_second"`
	Burst             int            `toml:"burst"`
	Timeout           string         `toml:"timeout"`
	Options           map[string]any `toml:"options"`
}

// Env maps environment variable names for embeddings configuration.
type Env struct {
	Provider          string
	BaseURL           string
	Model             string
	Token             string
	BatchSize         string
	RequestsPerSecond string
	Burst             string
	Timeout           string
}

// TimeoutDuration parses and returns the per-request timeout.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	c.loadProviderDefaults()
	return c.validate()
}

// Merge applies non-zero values from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.Token != "" {
		c.Token = overlay.Token
	}
	if overlay.BatchSize != 0 {
		c.BatchSize = overlay.BatchSize
	}
	if overlay.RequestsPerSecond != 0 {
		c.RequestsPerSecond = overlay.RequestsPerSecond
	}
	if overlay.Burst != 0 {
		c.Burst = overlay.Burst
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.Options != nil {
		if c.Options == nil {
			c.Options = make(map[string]any)
		}
		maps.Copy(c.Options, overlay.Options)
	}
}

func (c *Config) loadDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderOpenAI
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 16
	}
	if c.RequestsPerSecond == 0 {
		c.RequestsPerSecond = 5
	}
	if c.Burst <= 0 {
		c.Burst = 1
	}
	if c.Timeout == "" {
		c.Timeout = "60s"
	}
}

// Azure has no default endpoint or model; both name a customer deployment.
func (c *Config) loadProviderDefaults() {
	switch c.Provider {
	case ProviderOpenAI:
		if c.BaseURL == "" {
			c.BaseURL = "https://api.openai.com/v1"
		}
		if c.Model == "" {
			c.Model = "text-embedding-3-small"
		}
	case ProviderOllama:
		if c.BaseURL == "" {
			c.BaseURL = "http://localhost:11434"
		}
		if c.Model == "" {
			c.Model = "nomic-embed-text"
		}
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := getenv(env.Provider); v != "" {
		c.Provider = Provider(v)
	}
	if v := getenv(env.BaseURL); v != "" {
		c.BaseURL = v
	}
	if v := getenv(env.Model); v != "" {
		c.Model = v
	}
	if v := getenv(env.Token); v != "" {
		c.Token = v
	}
	if v := getenv(env.BatchSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.BatchSize = n
		}
	}
	if v := getenv(env.RequestsPerSecond); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RequestsPerSecond = f
		}
	}
	if v := getenv(env.Burst); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Burst = n
		}
	}
	if v := getenv(env.Timeout); v != "" {
		c.Timeout = v
	}
}

func (c *Config) validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderOllama, ProviderAzure:
	default:
		return fmt.Errorf("unknown provider %q (must be openai, ollama or azure)", c.Provider)
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base_url required")
	}
	if c.Model == "" {
		return fmt.Errorf("model required")
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batch_size must be positive")
	}
	if c.Burst < 1 {
		return fmt.Errorf("burst must be positive")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}

func getenv(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
