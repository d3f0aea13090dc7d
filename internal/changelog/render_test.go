package changelog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReleaseHeading(t *testing.T) {
	t.Parallel()

	date := time.Date(2026, time.March, 4, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "## [1.3.0] - 2026-03-04", ReleaseHeading("1.3.0", date))
	assert.Equal(t, "No changes to Foo.", NoChangesEntry("Foo"))
}

func TestReleaseLines(t *testing.T) {
	t.Parallel()

	date := time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)
	lines := ReleaseLines("2.0.0a1", date, "templates")

	assert.Equal(t, []string{
		"## [2.0.0a1] - 2026-10-15",
		"",
		"No changes to templates.",
		"",
	}, lines)
}
