// Package changelog converts between the CHANGELOG.md Markdown dialect and
// an in-memory document tree.
//
// This package implements:
//   - Parsing of the constrained Markdown format (Changelog -> Version -> Change)
//   - Deterministic serialization back to Markdown
//   - Version and change querying for CLI display
//   - Colored terminal rendering
//
// The text format is the only persistence format. Versions are stored in
// append order (oldest first) but rendered newest-first; see DisplayOrder
// for the explicit conversion.
package changelog
