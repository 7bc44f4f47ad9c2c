package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.Ingest.validate(); err != nil {
		return fmt.Errorf("ingest: %w", err)
	}

	if c.Transfer.ActivityCopyWindow <= 0 {
		return fmt.Errorf("transfer: activity_copy_window must be > 0 (got %s)", c.Transfer.ActivityCopyWindow)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics: path must start with / (got %q)", c.Metrics.Path)
	}

	return nil
}

func (i *IngestConfig) validate() error {
	if i.DedupWindow <= 0 {
		return fmt.Errorf("dedup_window must be > 0 (got %s)", i.DedupWindow)
	}
	if i.ForwardTimeout <= 0 || i.ForwardTimeout > time.Minute {
		return fmt.Errorf("forward_timeout must be in (0, 1m] (got %s)", i.ForwardTimeout)
	}
	if i.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be >= 0 (got %d)", i.MaxRetries)
	}
	if i.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be > 0 (got %d)", i.MaxBodyBytes)
	}
	if i.RateLimitPerMinute < 0 {
		return fmt.Errorf("rate_limit_per_minute must be >= 0 (got %d)", i.RateLimitPerMinute)
	}
	return nil
}
