package changelog

import (
	"fmt"
	"time"
)

// DateLayout is the ISO date format used in release headings.
const DateLayout = "2006-01-02"

// ReleaseHeading formats the heading of a released version,
// e.g. "## [1.3.0] - 2026-10-15".
func ReleaseHeading(version string, date time.Time) string {
	return fmt.Sprintf("## [%s] - %s", version, date.Format(DateLayout))
}

// NoChangesEntry is the placeholder written for a product with nothing to release.
func NoChangesEntry(name string) string {
	return fmt.Sprintf("No changes to %s.", name)
}

// ReleaseLines returns the entry inserted into a changelog with no pending
// heading: the release heading and the placeholder for name, each followed by
// a blank line.
func ReleaseLines(version string, date time.Time, name string) []string {
	return []string{
		ReleaseHeading(version, date),
		"",
		NoChangesEntry(name),
		"",
	}
}
