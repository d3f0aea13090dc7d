package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relbump/relbump/internal/changelog"
	"github.com/relbump/relbump/internal/config"
	"github.com/relbump/relbump/internal/discovery"
	"github.com/relbump/relbump/internal/document"
	"github.com/relbump/relbump/internal/lock"
	"github.com/relbump/relbump/internal/propagate"
	"github.com/relbump/relbump/internal/release"
)

func TestFromError(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err      error
		category ErrorCategory
		usage    bool
	}{
		"structure":        {err: &changelog.StructureError{Message: "missing cdf section"}, category: Changelog},
		"no selection":     {err: changelog.ErrNoSelection, category: Changelog},
		"ambiguous":        {err: changelog.ErrAmbiguousSelection, category: Changelog},
		"empty section":    {err: &changelog.EmptySectionError{Section: "cdf"}, category: Changelog},
		"no changelog":     {err: changelog.ErrNoChangelog, category: Changelog},
		"malformed":        {err: &document.MalformedEntryError{Found: "strong"}, category: Changelog},
		"illegal":          {err: &release.IllegalTransitionError{Message: "x"}, category: Version},
		"no transition":    {err: release.ErrNoTransitionRequested, category: Argument, usage: true},
		"conflicting":      {err: release.ErrConflictingTransition, category: Argument, usage: true},
		"invalid version":  {err: &release.InvalidVersionError{Input: "1.2"}, category: Version},
		"nothing":          {err: propagate.ErrNothingToRelease, category: Prerequisite},
		"locked":           {err: lock.ErrLocked, category: Prerequisite},
		"validation":       {err: &config.ValidationError{FilePath: "c.yml", Field: "log_level"}, category: Configuration},
		"no source":        {err: config.ErrNoVersionSource, category: Configuration},
		"pipeline missing": {err: &config.NotFoundError{PipelineID: "p"}, category: Configuration},
		"parameter":        {err: &config.MissingParameterError{PipelineID: "p", Parameter: "k"}, category: Configuration},
		"no match":         {err: &discovery.NoMatchError{Pattern: "*.toml"}, category: Configuration},
		"unknown":          {err: stderrors.New("disk on fire"), category: Runtime},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			wrapped := fmt.Errorf("context: %w", tt.err)
			got := FromError(wrapped)
			require.NotNil(t, got)

			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, wrapped.Error(), got.Message)
			assert.ErrorIs(t, got, tt.err)
			if tt.category != Runtime {
				assert.NotEmpty(t, got.Remediation)
			}
			assert.Equal(t, tt.usage, got.Usage != "")
		})
	}
}

func TestFromError_KeepsCLIError(t *testing.T) {
	t.Parallel()

	cliErr := NewArgumentError("bad", "fix it")
	assert.Same(t, cliErr, FromError(cliErr))
	assert.Nil(t, FromError(nil))
}

func TestFprintAny_Plain(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	FprintAny(&buf, lock.ErrLocked, true)

	assert.Contains(t, buf.String(), "Error [Prerequisite Error]: "+lock.ErrLocked.Error())
	assert.Contains(t, buf.String(), "To fix this:")
}
