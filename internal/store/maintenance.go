package store

import (
	"context"
	"fmt"
)

// Stats counts catalog rows for diagnostics output.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	queries := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(1) FROM pictures", &stats.Pictures},
		{"SELECT COUNT(1) FROM categories", &stats.Categories},
		{"SELECT COUNT(1) FROM keywords", &stats.Keywords},
		{"SELECT COUNT(1) FROM pictures WHERE category_id IS NULL", &stats.Uncategorized},
	}
	for _, q := range queries {
		if err := s.db.QueryRowContext(ctx, q.query).Scan(q.dest); err != nil {
			return nil, fmt.Errorf("stats query: %w", err)
		}
	}
	return stats, nil
}

// AllArtifactNames returns every artifact name the catalog references,
// originals and thumbnails alike. Sweep jobs treat files outside this set as
// orphans.
func (s *Store) AllArtifactNames(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT filename, thumbnail FROM pictures`)
	if err != nil {
		return nil, fmt.Errorf("list artifact names: %w", err)
	}
	defer rows.Close()

	names := make(map[string]struct{})
	for rows.Next() {
		var filename, thumbnail string
		if err := rows.Scan(&filename, &thumbnail); err != nil {
			return nil, fmt.Errorf("scan artifact names: %w", err)
		}
		names[filename] = struct{}{}
		names[thumbnail] = struct{}{}
	}
	return names, rows.Err()
}
