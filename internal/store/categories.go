package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"picbox/internal/slugify"
)

// CreateCategory inserts a category. The slug is derived from the name unless
// explicitly supplied; a collision with an existing slug fails with
// ErrDuplicateSlug.
func (s *Store) CreateCategory(ctx context.Context, name, explicitSlug string) (*Category, error) {
	name = strings.TrimSpace(name)
	slug, err := resolveSlug(name, explicitSlug)
	if err != nil {
		return nil, err
	}

	var id int64
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		taken, err := slugTaken(ctx, tx, slug, 0)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: %q", ErrDuplicateSlug, slug)
		}

		res, err := tx.ExecContext(ctx, `INSERT INTO categories (slug, name) VALUES (?, ?)`, slug, name)
		if err != nil {
			return fmt.Errorf("insert category: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Category{ID: id, Slug: slug, Name: name}, nil
}

// UpdateCategory renames a category and re-resolves its slug. Returns
// (nil, nil) when the category does not exist.
func (s *Store) UpdateCategory(ctx context.Context, id int64, name, explicitSlug string) (*Category, error) {
	name = strings.TrimSpace(name)
	slug, err := resolveSlug(name, explicitSlug)
	if err != nil {
		return nil, err
	}

	found := true
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		var existing int64
		row := tx.QueryRowContext(ctx, `SELECT id FROM categories WHERE id = ?`, id)
		if err := row.Scan(&existing); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				found = false
				return nil
			}
			return fmt.Errorf("get category: %w", err)
		}

		taken, err := slugTaken(ctx, tx, slug, id)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: %q", ErrDuplicateSlug, slug)
		}

		if _, err := tx.ExecContext(ctx, `UPDATE categories SET slug = ?, name = ? WHERE id = ?`, slug, name, id); err != nil {
			return fmt.Errorf("update category: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &Category{ID: id, Slug: slug, Name: name}, nil
}

// GetCategory fetches a category by identifier. Returns (nil, nil) on miss.
func (s *Store) GetCategory(ctx context.Context, id int64) (*Category, error) {
	return s.scanCategory(s.db.QueryRowContext(ctx,
		`SELECT id, slug, name FROM categories WHERE id = ?`, id))
}

// GetCategoryBySlug fetches a category by slug. Returns (nil, nil) on miss.
func (s *Store) GetCategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	return s.scanCategory(s.db.QueryRowContext(ctx,
		`SELECT id, slug, name FROM categories WHERE slug = ?`, slug))
}

// ResolveCategory looks a category up by exact display name first, then by
// slug. A display name shared by several categories fails with
// ErrAmbiguousName since only slugs are unique. Returns (nil, nil) when
// neither matches.
func (s *Store) ResolveCategory(ctx context.Context, nameOrSlug string) (*Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, slug, name FROM categories WHERE name = ? LIMIT 2`, nameOrSlug)
	if err != nil {
		return nil, fmt.Errorf("query categories by name: %w", err)
	}
	defer rows.Close()

	var matches []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Slug, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		matches = append(matches, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(matches) {
	case 1:
		c := matches[0]
		return &c, nil
	case 0:
		return s.GetCategoryBySlug(ctx, nameOrSlug)
	default:
		return nil, fmt.Errorf("%w: %q", ErrAmbiguousName, nameOrSlug)
	}
}

// ListCategories returns all categories ordered by name.
func (s *Store) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, slug, name FROM categories ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Slug, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// DeleteCategory removes an unreferenced category. Deletion is refused with
// ErrCategoryInUse while pictures still reference it; there is no cascade.
func (s *Store) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	removed := false
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var references int
		row := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM pictures WHERE category_id = ?`, id)
		if err := row.Scan(&references); err != nil {
			return fmt.Errorf("count category references: %w", err)
		}
		if references > 0 {
			return fmt.Errorf("%w: %d picture(s)", ErrCategoryInUse, references)
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		removed = affected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

func (s *Store) scanCategory(row *sql.Row) (*Category, error) {
	var c Category
	if err := row.Scan(&c.ID, &c.Slug, &c.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func resolveSlug(name, explicitSlug string) (string, error) {
	slug := strings.TrimSpace(explicitSlug)
	if slug == "" {
		slug = slugify.Slugify(name)
	} else {
		slug = slugify.Slugify(slug)
	}
	if slug == "" {
		return "", fmt.Errorf("%w: %q", ErrEmptySlug, name)
	}
	return slug, nil
}

func slugTaken(ctx context.Context, tx *sql.Tx, slug string, excludeID int64) (bool, error) {
	var count int
	row := tx.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM categories WHERE slug = ? AND id != ?`, slug, excludeID)
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return count > 0, nil
}
