package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateDisplay(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateMatching() error {
	thresholds := []struct {
		key   string
		value float64
	}{
		{"matching.duplicate_threshold", c.Matching.DuplicateThreshold},
		{"matching.owned_artist_threshold", c.Matching.OwnedArtistThreshold},
		{"matching.owned_title_threshold", c.Matching.OwnedTitleThreshold},
		{"matching.same_artist_threshold", c.Matching.SameArtistThreshold},
		{"matching.query_threshold", c.Matching.QueryThreshold},
	}
	for _, th := range thresholds {
		if th.value <= 0 || th.value > 1 {
			return fmt.Errorf("%s must be greater than 0 and at most 1 (got %v)", th.key, th.value)
		}
	}
	return nil
}

func (c *Config) validateDisplay() error {
	switch c.Display.MediaType {
	case "cd", "vinyl":
	default:
		return fmt.Errorf("display.media_type: unsupported value %q (want cd or vinyl)", c.Display.MediaType)
	}
	switch c.Display.SortKey {
	case "artist", "title", "year", "genre", "label", "created":
	default:
		return fmt.Errorf("display.sort_key: unsupported value %q", c.Display.SortKey)
	}
	switch c.Display.SortOrder {
	case "asc", "desc":
	default:
		return errors.New("display.sort_order must be asc or desc")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
