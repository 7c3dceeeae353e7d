// Package slugify derives URL-safe ASCII identifiers from display names.
//
// Slugs are not unique by construction; uniqueness is enforced by the
// catalog store at insertion time.
package slugify
