package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"picbox/internal/artifacts"
	"picbox/internal/config"
	"picbox/internal/logging"
	"picbox/internal/store"
)

// Engine orchestrates catalog operations across the row store and the content
// store, including the compensation rules that keep the two consistent.
type Engine struct {
	cfg    *config.Config
	store  *store.Store
	files  *artifacts.Manager
	logger *slog.Logger
}

// New wires an engine from its parts.
func New(cfg *config.Config, st *store.Store, files *artifacts.Manager, logger *slog.Logger) *Engine {
	return &Engine{
		cfg:    cfg,
		store:  st,
		files:  files,
		logger: logging.NewComponentLogger(logger, "catalog"),
	}
}

// GetPicture fetches one picture by id.
func (e *Engine) GetPicture(ctx context.Context, id int64) (*store.Picture, error) {
	pic, err := e.store.GetPicture(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if pic == nil {
		return nil, fmt.Errorf("%w: picture %d", ErrNotFound, id)
	}
	return pic, nil
}

// ArtifactPath resolves a picture's stored artifact to a filesystem path.
// When thumbnail is true the thumbnail file is returned instead of the
// original.
func (e *Engine) ArtifactPath(ctx context.Context, id int64, thumbnail bool) (string, error) {
	pic, err := e.GetPicture(ctx, id)
	if err != nil {
		return "", err
	}
	name := pic.Filename
	if thumbnail {
		name = pic.Thumbnail
	}
	path, err := e.files.Path(name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return path, nil
}

// Category fetches one category by id.
func (e *Engine) Category(ctx context.Context, id int64) (*store.Category, error) {
	cat, err := e.store.GetCategory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if cat == nil {
		return nil, fmt.Errorf("%w: category %d", ErrNotFound, id)
	}
	return cat, nil
}

// Stats reports row counts for diagnostics.
func (e *Engine) Stats(ctx context.Context) (*store.Stats, error) {
	stats, err := e.store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return stats, nil
}

// Keywords lists every keyword in the catalog.
func (e *Engine) Keywords(ctx context.Context) ([]store.Keyword, error) {
	keywords, err := e.store.ListKeywords(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return keywords, nil
}
