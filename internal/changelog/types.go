package changelog

import (
	"fmt"
	"strings"
)

// ChangeType is the kind of release declared in the notes.
type ChangeType string

const (
	Major ChangeType = "major"
	Minor ChangeType = "minor"
	Patch ChangeType = "patch"
	// Skip declares that nothing should be released.
	Skip ChangeType = "skip"
)

// Section headings expected after the selection list, in order.
const (
	SectionCDF       = "cdf"
	SectionTemplates = "templates"
)

// NoChangesMarker is the paragraph that explicitly marks a section as empty.
const NoChangesMarker = "No changes."

// ValidChangeTypes returns the accepted change types in declaration order.
func ValidChangeTypes() []ChangeType {
	return []ChangeType{Major, Minor, Patch, Skip}
}

// ParseChangeType case-folds s and maps it to a ChangeType.
func ParseChangeType(s string) (ChangeType, error) {
	folded := ChangeType(strings.ToLower(strings.TrimSpace(s)))
	for _, ct := range ValidChangeTypes() {
		if folded == ct {
			return ct, nil
		}
	}
	return "", fmt.Errorf("unknown change type %q (expected one of major, minor, patch, skip)", s)
}

// IsRelease returns true for every change type except Skip.
func (c ChangeType) IsRelease() bool {
	return c != Skip
}

// SectionSummary describes one validated section of the notes.
type SectionSummary struct {
	Name string
	// Entries is the number of top-level blocks in the section.
	Entries int
	// NoChanges is set when the section is the explicit "No changes." marker.
	NoChanges bool
}

// Decision is the outcome of validating a set of release notes.
type Decision struct {
	Change   ChangeType
	Sections []SectionSummary
}
