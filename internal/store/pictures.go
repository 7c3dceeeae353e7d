package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CreatePicture inserts a picture row and its keyword links in one
// transaction. A failure anywhere leaves no partial row behind.
func (s *Store) CreatePicture(ctx context.Context, input NewPicture) (*Picture, error) {
	now := time.Now().UTC()
	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO pictures (category_id, owner_id, filename, original_filename, thumbnail, episode, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			nullableInt64(input.CategoryID),
			nullableString(input.OwnerID),
			input.Filename,
			nullableString(input.OriginalFilename),
			input.Thumbnail,
			nullableInt64(input.Episode),
			timestamp(now),
			timestamp(now),
		)
		if err != nil {
			return fmt.Errorf("insert picture: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}

		for _, keywordID := range input.KeywordIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO pictures_keywords (picture_id, keyword_id) VALUES (?, ?)`,
				id, keywordID); err != nil {
				return fmt.Errorf("link keyword %d: %w", keywordID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetPicture(ctx, id)
}

// GetPicture fetches a picture with its keywords. Returns (nil, nil) on miss.
func (s *Store) GetPicture(ctx context.Context, id int64) (*Picture, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, category_id, owner_id, filename, original_filename, thumbnail, episode, created_at, updated_at
		FROM pictures WHERE id = ?`, id)
	pic, err := scanPicture(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get picture: %w", err)
	}
	if err := s.attachKeywords(ctx, pic); err != nil {
		return nil, err
	}
	return pic, nil
}

// DeletePicture removes a picture row; the junction rows cascade. The boolean
// reports whether a row existed.
func (s *Store) DeletePicture(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM pictures WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete picture: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// UpdatePictureThumbnail records a newly generated thumbnail artifact name.
func (s *Store) UpdatePictureThumbnail(ctx context.Context, id int64, thumbnail string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE pictures SET thumbnail = ?, updated_at = ? WHERE id = ?`,
		thumbnail, timestamp(time.Now().UTC()), id)
	if err != nil {
		return fmt.Errorf("update thumbnail: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPicture(row rowScanner) (*Picture, error) {
	var (
		pic              Picture
		categoryID       sql.NullInt64
		ownerID          sql.NullString
		originalFilename sql.NullString
		episode          sql.NullInt64
		createdAt        string
		updatedAt        string
	)
	err := row.Scan(&pic.ID, &categoryID, &ownerID, &pic.Filename,
		&originalFilename, &pic.Thumbnail, &episode, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if categoryID.Valid {
		pic.CategoryID = &categoryID.Int64
	}
	pic.OwnerID = ownerID.String
	pic.OriginalFilename = originalFilename.String
	if episode.Valid {
		pic.Episode = &episode.Int64
	}
	if pic.CreatedAt, err = parseTimeString(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if pic.UpdatedAt, err = parseTimeString(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &pic, nil
}

func (s *Store) attachKeywords(ctx context.Context, pic *Picture) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT k.id, k.slug, k.name
		FROM keywords k
		JOIN pictures_keywords pk ON pk.keyword_id = k.id
		WHERE pk.picture_id = ?
		ORDER BY k.name, k.id`, pic.ID)
	if err != nil {
		return fmt.Errorf("load keywords: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kw Keyword
		if err := rows.Scan(&kw.ID, &kw.Slug, &kw.Name); err != nil {
			return fmt.Errorf("scan keyword: %w", err)
		}
		pic.Keywords = append(pic.Keywords, kw)
	}
	return rows.Err()
}
