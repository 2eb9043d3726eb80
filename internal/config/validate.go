package config

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

func (c *Config) Validate() error {
	// Server config
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port (%d) must be between 1 and 65535", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode %q must be one of debug, release, test", c.Server.Mode)
	}
	if c.Server.ShutdownTimeout < 0 {
		return errors.New("server.shutdown_timeout must not be negative")
	}

	// Limits config
	if c.Limits.MaxTextChars <= 0 {
		return errors.New("limits.max_text_chars must be positive")
	}
	if c.Limits.MaxImages <= 0 {
		return errors.New("limits.max_images must be positive")
	}
	if c.Limits.MaxImageBytes <= 0 {
		return errors.New("limits.max_image_bytes must be positive")
	}
	if c.Limits.MaxImagePixels <= 0 {
		return errors.New("limits.max_image_pixels must be positive")
	}
	if c.Limits.MaxBodyBytes <= 0 {
		return errors.New("limits.max_body_bytes must be positive")
	}

	// Model metadata
	if c.Model.Version == "" {
		return errors.New("model.version is required")
	}
	if c.Model.Accuracy < 0 || c.Model.Accuracy > 1 {
		return fmt.Errorf("model.accuracy (%v) must be within [0, 1]", c.Model.Accuracy)
	}

	// Rate limit config
	if c.RateLimit.Enabled {
		if c.RateLimit.RPS <= 0 {
			return errors.New("rate_limit.rps must be positive when rate limiting is enabled")
		}
		if c.RateLimit.Burst <= 0 {
			return errors.New("rate_limit.burst must be positive when rate limiting is enabled")
		}
	}

	// Logging config
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format %q must be text or json", c.Log.Format)
	}

	return nil
}
