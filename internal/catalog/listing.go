package catalog

import (
	"context"
	"fmt"
	"strings"

	"picbox/internal/store"
)

// ListRequest selects a page of pictures. Page numbers are 1-based; a zero
// Page means page 1 and a zero PageSize falls back to the configured default.
type ListRequest struct {
	Category string
	Episode  *int64
	Page     int
	PageSize int
}

// PageResult is one page of pictures with enough metadata to paginate.
type PageResult struct {
	Pictures   []store.Picture
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// List returns one page of pictures, newest first. Requesting a page past the
// end fails with ErrNotFound (refined by ErrPageOutOfRange); asking for page 1
// of an empty selection succeeds with an empty page.
func (e *Engine) List(ctx context.Context, req ListRequest) (*PageResult, error) {
	filter, err := e.resolveFilter(ctx, req.Category, req.Episode)
	if err != nil {
		return nil, err
	}

	page := req.Page
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return nil, fmt.Errorf("%w: page %d", ErrValidation, page)
	}
	pageSize := req.PageSize
	if pageSize == 0 {
		pageSize = e.cfg.Catalog.PageSize
	}
	if pageSize < 1 {
		return nil, fmt.Errorf("%w: page size %d", ErrValidation, pageSize)
	}

	total, err := e.store.CountPictures(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	offset := (page - 1) * pageSize
	if offset > total {
		return nil, fmt.Errorf("%w: %w: page %d of %d", ErrNotFound, ErrPageOutOfRange, page, totalPages(total, pageSize))
	}

	pictures, err := e.store.ListPictures(ctx, filter, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	return &PageResult{
		Pictures:   pictures,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

// Random picks one picture uniformly at random from the selection. An empty
// selection fails with ErrNotFound refined by ErrEmptyCatalog.
func (e *Engine) Random(ctx context.Context, category string, episode *int64) (*store.Picture, error) {
	filter, err := e.resolveFilter(ctx, category, episode)
	if err != nil {
		return nil, err
	}

	pic, err := e.store.RandomPicture(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if pic == nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, ErrEmptyCatalog)
	}
	return pic, nil
}

// resolveFilter translates a category name/slug and episode into a store
// filter. An episode without a category is rejected: episode numbers only
// mean something within a category.
func (e *Engine) resolveFilter(ctx context.Context, category string, episode *int64) (store.Filter, error) {
	category = strings.TrimSpace(category)
	if episode != nil && category == "" {
		return store.Filter{}, fmt.Errorf("%w: episode filter requires a category", ErrValidation)
	}
	if episode != nil && *episode < 1 {
		return store.Filter{}, fmt.Errorf("%w: episode must be positive", ErrValidation)
	}

	var filter store.Filter
	if category != "" {
		cat, err := e.FindCategory(ctx, category)
		if err != nil {
			return store.Filter{}, err
		}
		filter.CategoryID = &cat.ID
	}
	filter.Episode = episode
	return filter, nil
}

func totalPages(total, pageSize int) int {
	return (total + pageSize - 1) / pageSize
}
