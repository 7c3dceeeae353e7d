package store

import "errors"

var (
	// ErrDuplicateSlug indicates an insert or update would collide with an
	// existing slug.
	ErrDuplicateSlug = errors.New("slug already taken")
	// ErrAmbiguousName indicates more than one category shares the given
	// display name; only slugs are unique.
	ErrAmbiguousName = errors.New("category name is ambiguous")
	// ErrCategoryInUse indicates a category still referenced by pictures
	// cannot be deleted.
	ErrCategoryInUse = errors.New("category is referenced by pictures")
	// ErrEmptySlug indicates a name collapsed to an empty slug, which is
	// invalid for uniqueness-constrained fields.
	ErrEmptySlug = errors.New("name produces an empty slug")
)
