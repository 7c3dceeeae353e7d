package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Filter narrows picture queries. Nil fields match everything; an episode
// filter is only meaningful together with a category.
type Filter struct {
	CategoryID *int64
	Episode    *int64
}

func (f Filter) where() (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if f.CategoryID != nil {
		clauses = append(clauses, "category_id = ?")
		args = append(args, *f.CategoryID)
	}
	if f.Episode != nil {
		clauses = append(clauses, "episode = ?")
		args = append(args, *f.Episode)
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// CountPictures returns how many pictures match the filter.
func (s *Store) CountPictures(ctx context.Context, filter Filter) (int, error) {
	where, args := filter.where()
	var count int
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM pictures`+where, args...)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count pictures: %w", err)
	}
	return count, nil
}

// ListPictures returns a page of matching pictures, newest first. Keywords
// are attached per row.
func (s *Store) ListPictures(ctx context.Context, filter Filter, limit, offset int) ([]Picture, error) {
	where, args := filter.where()
	args = append(args, limit, offset)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, category_id, owner_id, filename, original_filename, thumbnail, episode, created_at, updated_at
		FROM pictures`+where+`
		ORDER BY id DESC
		LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("list pictures: %w", err)
	}
	defer rows.Close()

	var pictures []Picture
	for rows.Next() {
		pic, err := scanPicture(rows)
		if err != nil {
			return nil, fmt.Errorf("scan picture: %w", err)
		}
		pictures = append(pictures, *pic)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range pictures {
		if err := s.attachKeywords(ctx, &pictures[i]); err != nil {
			return nil, err
		}
	}
	return pictures, nil
}

// RandomPicture picks one matching picture uniformly at random. Returns
// (nil, nil) when nothing matches.
func (s *Store) RandomPicture(ctx context.Context, filter Filter) (*Picture, error) {
	where, args := filter.where()
	row := s.db.QueryRowContext(ctx, `
		SELECT id, category_id, owner_id, filename, original_filename, thumbnail, episode, created_at, updated_at
		FROM pictures`+where+`
		ORDER BY RANDOM()
		LIMIT 1`, args...)
	pic, err := scanPicture(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("random picture: %w", err)
	}
	if err := s.attachKeywords(ctx, pic); err != nil {
		return nil, err
	}
	return pic, nil
}

// PicturesAfter returns up to limit pictures with id greater than afterID in
// ascending order. Maintenance jobs use it to walk the catalog in batches.
func (s *Store) PicturesAfter(ctx context.Context, afterID int64, limit int) ([]Picture, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, category_id, owner_id, filename, original_filename, thumbnail, episode, created_at, updated_at
		FROM pictures
		WHERE id > ?
		ORDER BY id ASC
		LIMIT ?`, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("pictures after %d: %w", afterID, err)
	}
	defer rows.Close()

	var pictures []Picture
	for rows.Next() {
		pic, err := scanPicture(rows)
		if err != nil {
			return nil, fmt.Errorf("scan picture: %w", err)
		}
		pictures = append(pictures, *pic)
	}
	return pictures, rows.Err()
}
