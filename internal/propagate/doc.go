// Package propagate writes a new version into every file that carries the
// old one: plain version files, container image references and changelogs.
//
// A run is split into two phases. All files are read and transformed in
// memory first; only when every transformation succeeded are the files
// rewritten. A failure in the first phase leaves the tree untouched.
package propagate
