// Package changelog decides the version bump declared in release notes.
//
// This package implements:
//   - Reading the change-type checkbox list ("[x] minor") at the top of the notes
//   - Structural validation of the "## cdf" and "## templates" sections
//   - Extraction of the notes from a commit message ("## Changelog" marker)
//   - Dated release headings and placeholder entries for changelog files
//   - Terminal formatting of the decision
//
// The decision engine is a pure function of a parsed document.Document; it
// never reads or writes files.
package changelog
