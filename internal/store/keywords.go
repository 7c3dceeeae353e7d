package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"picbox/internal/slugify"
)

// UpsertKeywords finds or creates a keyword per name, matching on slug.
// Duplicate names within the input collapse to one keyword. The whole batch
// runs in a single transaction.
func (s *Store) UpsertKeywords(ctx context.Context, names []string) ([]Keyword, error) {
	type pending struct {
		slug string
		name string
	}
	seen := make(map[string]struct{}, len(names))
	batch := make([]pending, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		slug := slugify.Slugify(name)
		if slug == "" {
			return nil, fmt.Errorf("%w: keyword %q", ErrEmptySlug, name)
		}
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}
		batch = append(batch, pending{slug: slug, name: name})
	}
	if len(batch) == 0 {
		return nil, nil
	}

	keywords := make([]Keyword, 0, len(batch))
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for _, entry := range batch {
			var kw Keyword
			row := tx.QueryRowContext(ctx,
				`SELECT id, slug, name FROM keywords WHERE slug = ?`, entry.slug)
			err := row.Scan(&kw.ID, &kw.Slug, &kw.Name)
			switch {
			case err == nil:
			case errors.Is(err, sql.ErrNoRows):
				res, insertErr := tx.ExecContext(ctx,
					`INSERT INTO keywords (slug, name) VALUES (?, ?)`, entry.slug, entry.name)
				if insertErr != nil {
					return fmt.Errorf("insert keyword %q: %w", entry.name, insertErr)
				}
				id, idErr := res.LastInsertId()
				if idErr != nil {
					return fmt.Errorf("last insert id: %w", idErr)
				}
				kw = Keyword{ID: id, Slug: entry.slug, Name: entry.name}
			default:
				return fmt.Errorf("find keyword %q: %w", entry.name, err)
			}
			keywords = append(keywords, kw)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keywords, nil
}

// ListKeywords returns all keywords ordered by name.
func (s *Store) ListKeywords(ctx context.Context) ([]Keyword, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, slug, name FROM keywords ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list keywords: %w", err)
	}
	defer rows.Close()

	var keywords []Keyword
	for rows.Next() {
		var kw Keyword
		if err := rows.Scan(&kw.ID, &kw.Slug, &kw.Name); err != nil {
			return nil, fmt.Errorf("scan keyword: %w", err)
		}
		keywords = append(keywords, kw)
	}
	return keywords, rows.Err()
}
