// Package artifacts manages the image files backing catalog pictures.
//
// Every picture has exactly two artifacts in a flat content store directory:
// the verbatim original (<uuid>.<ext>) and a bounded-size thumbnail
// (<uuid>.thumb.<ext>). Names are always freshly generated identifiers, so
// concurrent uploads never collide and caller input never reaches the
// filesystem. The package owns file lifecycle only; all metadata lives in
// the catalog store.
package artifacts
