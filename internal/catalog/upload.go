package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"picbox/internal/artifacts"
	"picbox/internal/config"
	"picbox/internal/logging"
	"picbox/internal/store"
)

// UploadRequest describes one incoming picture.
type UploadRequest struct {
	// Source is the raw image stream. Required.
	Source io.Reader
	// Filename is the client-supplied name. Its extension selects the
	// stored format; the rest is kept for display only.
	Filename string
	// Category is a display name or slug. Empty means uncategorized.
	Category string
	// Keywords are free-form tags, created on first use.
	Keywords []string
	// OwnerID optionally records who uploaded the picture.
	OwnerID string
	// Episode optionally positions the picture within its category.
	Episode *int64
}

// Upload stores a picture: the artifact pair is written first, then the row.
// If the row insert fails the freshly written files are removed so the
// content store never accumulates entries the catalog does not know about.
func (e *Engine) Upload(ctx context.Context, req UploadRequest) (*store.Picture, error) {
	if req.Source == nil {
		return nil, fmt.Errorf("%w: missing upload source", ErrValidation)
	}
	ext := artifacts.NormalizeExtension(filepath.Ext(req.Filename))
	if !e.cfg.ExtensionAllowed(ext) {
		return nil, fmt.Errorf("%w: %w: %q", ErrValidation, artifacts.ErrExtensionRejected, ext)
	}
	if req.Episode != nil && *req.Episode < 1 {
		return nil, fmt.Errorf("%w: episode must be positive", ErrValidation)
	}

	categoryID, err := e.resolveUploadCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	keywords, err := e.store.UpsertKeywords(ctx, req.Keywords)
	if err != nil {
		if errors.Is(err, store.ErrEmptySlug) {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	keywordIDs := make([]int64, len(keywords))
	for i, kw := range keywords {
		keywordIDs[i] = kw.ID
	}

	stored, err := e.files.Store(req.Source, ext)
	if err != nil {
		if errors.Is(err, artifacts.ErrExtensionRejected) {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	if err := uploadPersistHook(ctx, e); err != nil {
		e.compensateUpload(stored)
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	pic, err := e.store.CreatePicture(ctx, store.NewPicture{
		CategoryID:       categoryID,
		OwnerID:          strings.TrimSpace(req.OwnerID),
		Filename:         stored.Original,
		OriginalFilename: filepath.Base(req.Filename),
		Thumbnail:        stored.Thumbnail,
		Episode:          req.Episode,
		KeywordIDs:       keywordIDs,
	})
	if err != nil {
		e.compensateUpload(stored)
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	e.logger.Info("picture uploaded",
		logging.Int64("picture_id", pic.ID),
		logging.String("file", pic.Filename),
	)
	return pic, nil
}

// compensateUpload removes the artifact pair written for a failed upload. A
// cleanup failure is logged but not surfaced; the upload error already stands.
func (e *Engine) compensateUpload(stored artifacts.Stored) {
	if err := e.files.Delete(stored.Original, stored.Thumbnail); err != nil {
		e.logger.Error("failed to clean up artifacts after aborted upload",
			logging.String("file", stored.Original),
			logging.Error(err),
		)
	}
}

func (e *Engine) resolveUploadCategory(ctx context.Context, nameOrSlug string) (*int64, error) {
	nameOrSlug = strings.TrimSpace(nameOrSlug)
	if nameOrSlug == "" {
		return nil, nil
	}

	cat, err := e.store.ResolveCategory(ctx, nameOrSlug)
	if err != nil {
		if errors.Is(err, store.ErrAmbiguousName) {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if cat != nil {
		return &cat.ID, nil
	}

	switch e.cfg.Catalog.MissingCategory {
	case config.MissingCategoryUncategorized:
		e.logger.Warn("unknown category on upload, storing uncategorized",
			logging.String("category", nameOrSlug))
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: category %q", ErrNotFound, nameOrSlug)
	}
}
