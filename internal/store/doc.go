// Package store persists the picture catalog in SQLite.
//
// The store owns the schema (categories, keywords, pictures, and the
// picture-keyword junction) and verifies its version on open. Mutations that
// touch more than one table run in a single transaction. Lookups that miss
// return (nil, nil); callers translate misses into their own error taxonomy.
package store
