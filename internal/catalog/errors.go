package catalog

import "errors"

// Caller-facing error taxonomy. Every engine operation that fails returns an
// error matching exactly one of the four sentinels; more specific causes stay
// wrapped underneath and remain matchable with errors.Is.
var (
	// ErrValidation indicates the request itself was malformed: bad
	// extension, missing fields, or an episode filter without a category.
	ErrValidation = errors.New("invalid request")
	// ErrNotFound indicates the referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a uniqueness or referential clash, such as a
	// duplicate slug or deleting a category still in use.
	ErrConflict = errors.New("conflict")
	// ErrStorage indicates a persistence or content-store failure.
	ErrStorage = errors.New("storage failure")
)

var (
	// ErrEmptyCatalog refines ErrNotFound for random picks from an empty
	// selection.
	ErrEmptyCatalog = errors.New("no pictures match")
	// ErrPageOutOfRange refines ErrNotFound for listing pages past the end.
	ErrPageOutOfRange = errors.New("page out of range")
)
