// Package catalog orchestrates picture catalog operations.
//
// The engine sits between the row store and the content store and owns the
// consistency rules between them: uploads write artifacts first and remove
// them if the row insert fails, deletes remove the row first and tolerate
// artifact removal failures. Every operation maps its failures onto a small
// caller-facing taxonomy (ErrValidation, ErrNotFound, ErrConflict,
// ErrStorage) so callers can branch without knowing store internals.
package catalog
