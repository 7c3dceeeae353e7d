package config

import "strings"

// normalize expands paths and canonicalizes user-supplied values so the rest
// of the system can rely on their shape.
func (c *Config) normalize() error {
	var err error
	if c.Paths.StoreDir, err = ExpandPath(c.Paths.StoreDir); err != nil {
		return err
	}
	if c.Paths.DataDir, err = ExpandPath(c.Paths.DataDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return err
	}

	c.Catalog.AllowedExtensions = normalizeExtensions(c.Catalog.AllowedExtensions)
	c.Catalog.MissingCategory = strings.ToLower(strings.TrimSpace(c.Catalog.MissingCategory))
	if c.Catalog.MissingCategory == "" {
		c.Catalog.MissingCategory = MissingCategoryReject
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}

func normalizeExtensions(exts []string) []string {
	seen := make(map[string]struct{}, len(exts))
	normalized := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		normalized = append(normalized, ext)
	}
	return normalized
}
