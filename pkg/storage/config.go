package storage

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/docker/go-units"
)

// Provider selects the blob storage backend.
type Provider string

const (
	// ProviderFilesystem stores blobs under a local directory served by the API.
	ProviderFilesystem Provider = "filesystem"
	// ProviderRemote stores blobs through an authenticated HTTP blob API.
	ProviderRemote Provider = "remote"
)

// Config contains blob storage configuration.
type Config struct {
	Provider Provider `toml:"provider"`
	// BasePath is the root directory for filesystem storage.
	// Default: ".data/blobs"
	BasePath string `toml:"base_path"`
	// PublicURL prefixes keys to form the URL returned for stored blobs.
	PublicURL string `toml:"public_url"`
	// Endpoint is the base URL of the remote blob API.
	Endpoint string `toml:"endpoint"`
	// Token authenticates requests to the remote blob API.
	Token            string `toml:"token"`
	Timeout          string `toml:"timeout"`
	MaxUploadSize    string `toml:"max_upload_size"`
	maxUploadSizeVal int64
}

// Env maps environment variable names for storage configuration.
type Env struct {
	Provider      string
	BasePath      string
	PublicURL     string
	Endpoint      string
	Token         string
	Timeout       string
	MaxUploadSize string
}

// MaxUploadSizeBytes returns the parsed upload limit.
func (c *Config) MaxUploadSizeBytes() int64 {
	return c.maxUploadSizeVal
}

// TimeoutDuration parses and returns the remote request timeout.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the storage configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.PublicURL != "" {
		c.PublicURL = overlay.PublicURL
	}
	if overlay.Endpoint != "" {
		c.Endpoint = overlay.Endpoint
	}
	if overlay.Token != "" {
		c.Token = overlay.Token
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if size, err := units.FromHumanSize(overlay.MaxUploadSize); err == nil {
		c.MaxUploadSize = overlay.MaxUploadSize
		c.maxUploadSizeVal = size
	}
}

func (c *Config) loadDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderFilesystem
	}
	if c.BasePath == "" {
		c.BasePath = ".data/blobs"
	}
	if c.PublicURL == "" {
		c.PublicURL = "http://localhost:8080/blobs"
	}
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "50MB"
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := getenv(env.Provider); v != "" {
		c.Provider = Provider(v)
	}
	if v := getenv(env.BasePath); v != "" {
		c.BasePath = v
	}
	if v := getenv(env.PublicURL); v != "" {
		c.PublicURL = v
	}
	if v := getenv(env.Endpoint); v != "" {
		c.Endpoint = v
	}
	if v := getenv(env.Token); v != "" {
		c.Token = v
	}
	if v := getenv(env.Timeout); v != "" {
		c.Timeout = v
	}
	if v := getenv(env.MaxUploadSize); v != "" {
		c.MaxUploadSize = v
	}
}

func (c *Config) validate() error {
	switch c.Provider {
	case ProviderFilesystem:
		if c.BasePath == "" {
			return fmt.Errorf("base_path required")
		}
		if c.PublicURL == "" {
			return fmt.Errorf("public_url required")
		}
	case ProviderRemote:
		if c.Endpoint == "" {
			return fmt.Errorf("endpoint required for remote provider")
		}
		if strings.TrimSpace(c.Token) == "" {
			return fmt.Errorf("token required for remote provider: %w", ErrMissingToken)
		}
	default:
		return fmt.Errorf("invalid provider: %s (must be filesystem or remote)", c.Provider)
	}

	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}

	size, err := units.FromHumanSize(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	c.maxUploadSizeVal = size

	return nil
}

func getenv(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
