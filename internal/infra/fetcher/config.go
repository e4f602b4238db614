package fetcher

import (
	"fmt"
	"time"
)

// Config holds the configuration for article fetching.
//
// Security settings:
//   - DenyPrivateIPs: blocks private IP targets (SSRF prevention)
//   - MaxBodySize: rejects oversized responses
//   - MaxRedirects: bounds redirect chains
//   - Timeout: bounds a single request
type Config struct {
	// Timeout is the maximum duration for a single HTTP request.
	// Default: 15s
	Timeout time.Duration

	// MaxBodySize is the maximum HTTP response body size in bytes.
	// Enforced while reading, not from the Content-Length header.
	// Default: 10485760 (10MB)
	MaxBodySize int64

	// MaxRedirects is the maximum number of HTTP redirects to follow.
	// Each redirect target is re-validated. Default: 5
	MaxRedirects int

	// DenyPrivateIPs controls whether URLs resolving to private, loopback,
	// or link-local addresses are rejected. Default: true
	DenyPrivateIPs bool

	// UserAgent is sent with each request. Some news sites refuse requests
	// without a browser-like agent.
	UserAgent string
}

// DefaultConfig returns production-ready fetcher defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:        15 * time.Second,
		MaxBodySize:    10 * 1024 * 1024,
		MaxRedirects:   5,
		DenyPrivateIPs: true,
		UserAgent:      "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
	}
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.MaxBodySize < 1024 || c.MaxBodySize > 100*1024*1024 {
		return fmt.Errorf("max body size must be in [1KB, 100MB], got %d", c.MaxBodySize)
	}
	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be in [0, 10], got %d", c.MaxRedirects)
	}
	return nil
}
