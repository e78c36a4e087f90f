package config

import (
	"fmt"
	"os"

	"github.com/parley-labs/parley/pkg/formatting"
	"github.com/parley-labs/parley/pkg/middleware"
	"github.com/parley-labs/parley/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "PARLEY_CORS_ENABLED",
	Origins:          "PARLEY_CORS_ORIGINS",
	AllowedMethods:   "PARLEY_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "PARLEY_CORS_ALLOWED_HEADERS",
	AllowCredentials: "PARLEY_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "PARLEY_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "PARLEY_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "PARLEY_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds API routing, CORS, and pagination settings.
type APIConfig struct {
	BasePath    string                `toml:"base_path"`
	MaxBodySize string                `toml:"max_body_size"`
	CORS        middleware.CORSConfig `toml:"cors"`
	Pagination  pagination.Config     `toml:"pagination"`
}

// MaxBodySizeBytes bounds JSON request bodies, sized for large clause
// ingest payloads.
func (c *APIConfig) MaxBodySizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxBodySize)
	if err != nil {
		return 10 * 1024 * 1024
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "10MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("PARLEY_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("PARLEY_API_MAX_BODY_SIZE"); v != "" {
		c.MaxBodySize = v
	}
}
