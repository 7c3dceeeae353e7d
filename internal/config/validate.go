package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateThumbnails(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.StoreDir) == "" {
		return errors.New("paths.store_dir must be set")
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if c.Catalog.PageSize <= 0 {
		return errors.New("catalog.page_size must be positive")
	}
	if len(c.Catalog.AllowedExtensions) == 0 {
		return errors.New("catalog.allowed_extensions must include at least one extension")
	}
	switch c.Catalog.MissingCategory {
	case MissingCategoryReject, MissingCategoryUncategorized:
		return nil
	default:
		return fmt.Errorf("catalog.missing_category must be %q or %q", MissingCategoryReject, MissingCategoryUncategorized)
	}
}

func (c *Config) validateThumbnails() error {
	if c.Thumbnails.MaxWidth <= 0 {
		return errors.New("thumbnails.max_width must be positive")
	}
	if c.Thumbnails.MaxHeight <= 0 {
		return errors.New("thumbnails.max_height must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
