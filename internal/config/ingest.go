package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/docker/go-units"
)

// IngestConfig tunes extraction, chunking and vector search.
type IngestConfig struct {
	ChunkSize       int    `toml:"chunk_size"`
	ChunkOverlap    *int   `toml:"chunk_overlap"`
	FetchTimeout    string `toml:"fetch_timeout"`
	MaxFetchSize    string `toml:"max_fetch_size"`
	SearchLimit     int    `toml:"search_limit"`
	MaxSearchLimit  int    `toml:"max_search_limit"`
	maxFetchSizeVal int64
}

// FetchTimeoutDuration parses and returns the content fetch timeout.
func (c *IngestConfig) FetchTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.FetchTimeout)
	return d
}

// Overlap returns the configured chunk overlap. Zero disables overlap.
func (c *IngestConfig) Overlap() int {
	if c.ChunkOverlap == nil {
		return 0
	}
	return *c.ChunkOverlap
}

// MaxFetchSizeBytes returns the parsed fetch body limit.
func (c *IngestConfig) MaxFetchSizeBytes() int64 {
	return c.maxFetchSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *IngestConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if c.ChunkOverlap == nil {
		overlap := min(200, c.ChunkSize/5)
		c.ChunkOverlap = &overlap
	}
	return c.validate()
}

// Merge applies non-zero values from overlay.
func (c *IngestConfig) Merge(overlay *IngestConfig) {
	if overlay.ChunkSize != 0 {
		c.ChunkSize = overlay.ChunkSize
	}
	if overlay.ChunkOverlap != nil {
		c.ChunkOverlap = overlay.ChunkOverlap
	}
	if overlay.FetchTimeout != "" {
		c.FetchTimeout = overlay.FetchTimeout
	}
	if overlay.MaxFetchSize != "" {
		c.MaxFetchSize = overlay.MaxFetchSize
	}
	if overlay.SearchLimit != 0 {
		c.SearchLimit = overlay.SearchLimit
	}
	if overlay.MaxSearchLimit != 0 {
		c.MaxSearchLimit = overlay.MaxSearchLimit
	}
}

func (c *IngestConfig) loadDefaults() {
	if c.ChunkSize <= 0 {
		c.ChunkSize = 1000
	}
	if c.FetchTimeout == "" {
		c.FetchTimeout = "30s"
	}
	if c.MaxFetchSize == "" {
		c.MaxFetchSize = "50MB"
	}
	if c.SearchLimit <= 0 {
		c.SearchLimit = 4
	}
	if c.MaxSearchLimit <= 0 {
		c.MaxSearchLimit = 20
	}
}

func (c *IngestConfig) loadEnv() {
	if v := os.Getenv("INGEST_CHUNK_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.ChunkSize = n
		}
	}
	if v := os.Getenv("INGEST_CHUNK_OVERLAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.ChunkOverlap = &n
		}
	}
	if v := os.Getenv("INGEST_FETCH_TIMEOUT"); v != "" {
		c.FetchTimeout = v
	}
	if v := os.Getenv("INGEST_MAX_FETCH_SIZE"); v != "" {
		c.MaxFetchSize = v
	}
}

func (c *IngestConfig) validate() error {
	if c.Overlap() < 0 {
		return fmt.Errorf("chunk_overlap cannot be negative")
	}
	if c.Overlap() >= c.ChunkSize {
		return fmt.Errorf("chunk_overlap (%d) must be smaller than chunk_size (%d)", c.Overlap(), c.ChunkSize)
	}
	if _, err := time.ParseDuration(c.FetchTimeout); err != nil {
		return fmt.Errorf("invalid fetch_timeout: %w", err)
	}

	size, err := units.FromHumanSize(c.MaxFetchSize)
	if err != nil {
		return fmt.Errorf("invalid max_fetch_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_fetch_size must be positive")
	}
	c.maxFetchSizeVal = size

	if c.SearchLimit > c.MaxSearchLimit {
		return fmt.Errorf("search_limit cannot exceed max_search_limit")
	}
	return nil
}
