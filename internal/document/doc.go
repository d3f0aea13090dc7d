// Package document parses Markdown release notes into a flat, typed block tree.
//
// This package implements:
//   - Parsing of headings, lists, list items and paragraphs via goldmark
//   - A closed Block sum type consumed with type switches
//   - Predicates for locating headings and extracting the leading text of an entry
//
// Syntax the tree does not model (code blocks, quotes, HTML) is kept as
// Paragraph blocks holding the source text verbatim, so Parse never fails.
package document
