package propagate

import (
	"github.com/relbump/relbump/internal/release"
)

// FileKind identifies how a file is rewritten.
type FileKind int

const (
	KindVersion FileKind = iota
	KindImage
	KindChangelog
)

func (k FileKind) String() string {
	switch k {
	case KindVersion:
		return "version"
	case KindImage:
		return "image"
	case KindChangelog:
		return "changelog"
	default:
		return "unknown"
	}
}

// Action describes what happened to a single file.
type Action string

const (
	ActionReplacedVersion  Action = "replaced version"
	ActionReplacedImage    Action = "replaced image tag"
	ActionReleasedPending  Action = "released pending heading"
	ActionInsertedNoChange Action = "inserted empty release"
	ActionNoMatch          Action = "no match"
)

// FileResult is the outcome for one file.
type FileResult struct {
	Path    string
	Kind    FileKind
	Action  Action
	Changed bool
	// Diff is a line diff of the change, only set on dry runs.
	Diff string
}

// Report summarizes a propagation run.
type Report struct {
	Old     release.Version
	New     release.Version
	Heading string
	DryRun  bool
	Files   []FileResult
}

// Unchanged returns the paths of files that did not contain the text to replace.
func (r *Report) Unchanged() []string {
	var paths []string
	for _, f := range r.Files {
		if !f.Changed {
			paths = append(paths, f.Path)
		}
	}
	return paths
}

// Changed returns the paths of files that were (or, on a dry run, would be) rewritten.
func (r *Report) Changed() []string {
	var paths []string
	for _, f := range r.Files {
		if f.Changed {
			paths = append(paths, f.Path)
		}
	}
	return paths
}

// Count returns how many files of the given kind took part in the run.
func (r *Report) Count(kind FileKind) int {
	n := 0
	for _, f := range r.Files {
		if f.Kind == kind {
			n++
		}
	}
	return n
}
