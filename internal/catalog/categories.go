package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"picbox/internal/store"
)

// AddCategory creates a category. The slug is derived from the name unless a
// non-empty slug is supplied.
func (e *Engine) AddCategory(ctx context.Context, name, slug string) (*store.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrValidation)
	}
	cat, err := e.store.CreateCategory(ctx, name, slug)
	if err != nil {
		return nil, mapCategoryError(err)
	}
	return cat, nil
}

// EditCategory renames an existing category.
func (e *Engine) EditCategory(ctx context.Context, id int64, name, slug string) (*store.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrValidation)
	}
	cat, err := e.store.UpdateCategory(ctx, id, name, slug)
	if err != nil {
		return nil, mapCategoryError(err)
	}
	if cat == nil {
		return nil, fmt.Errorf("%w: category %d", ErrNotFound, id)
	}
	return cat, nil
}

// RemoveCategory deletes a category identified by name or slug. Deletion is
// refused while pictures still reference it.
func (e *Engine) RemoveCategory(ctx context.Context, nameOrSlug string) error {
	cat, err := e.store.ResolveCategory(ctx, nameOrSlug)
	if err != nil {
		return mapCategoryError(err)
	}
	if cat == nil {
		return fmt.Errorf("%w: category %q", ErrNotFound, nameOrSlug)
	}
	if _, err := e.store.DeleteCategory(ctx, cat.ID); err != nil {
		return mapCategoryError(err)
	}
	return nil
}

// Categories lists all categories ordered by name.
func (e *Engine) Categories(ctx context.Context) ([]store.Category, error) {
	categories, err := e.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return categories, nil
}

// FindCategory resolves a category by display name or slug.
func (e *Engine) FindCategory(ctx context.Context, nameOrSlug string) (*store.Category, error) {
	cat, err := e.store.ResolveCategory(ctx, nameOrSlug)
	if err != nil {
		return nil, mapCategoryError(err)
	}
	if cat == nil {
		return nil, fmt.Errorf("%w: category %q", ErrNotFound, nameOrSlug)
	}
	return cat, nil
}

func mapCategoryError(err error) error {
	switch {
	case errors.Is(err, store.ErrDuplicateSlug), errors.Is(err, store.ErrCategoryInUse):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, store.ErrEmptySlug), errors.Is(err, store.ErrAmbiguousName):
		return fmt.Errorf("%w: %w", ErrValidation, err)
	default:
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
}
