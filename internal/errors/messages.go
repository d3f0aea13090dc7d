package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/relbump/relbump/internal/changelog"
	"github.com/relbump/relbump/internal/config"
	"github.com/relbump/relbump/internal/discovery"
	"github.com/relbump/relbump/internal/document"
	"github.com/relbump/relbump/internal/lock"
	"github.com/relbump/relbump/internal/propagate"
	"github.com/relbump/relbump/internal/release"
)

const bumpUsage = "relbump bump [--major|--minor|--patch] [--alpha|--beta|--stable] [--dry-run]"

// FromError translates err into a CLIError with remediation for the failure
// it wraps. Errors that already are a CLIError are returned as is, anything
// unknown becomes a Runtime error.
func FromError(err error) *CLIError {
	if err == nil {
		return nil
	}
	if cliErr := AsCLIError(err); cliErr != nil {
		return cliErr
	}

	var (
		structErr  *changelog.StructureError
		emptyErr   *changelog.EmptySectionError
		malformed  *document.MalformedEntryError
		illegal    *release.IllegalTransitionError
		invalidVer *release.InvalidVersionError
		validErr   *config.ValidationError
		notFound   *config.NotFoundError
		missingErr *config.MissingParameterError
		noMatch    *discovery.NoMatchError
	)

	switch {
	case stderrors.As(err, &structErr):
		return Wrap(err, Changelog,
			"Start the notes with the checkbox list: - [ ] major, - [ ] minor, - [ ] patch, - [ ] skip",
			fmt.Sprintf("Follow the list with a '## %s' section and then a '## %s' section",
				changelog.SectionCDF, changelog.SectionTemplates),
		)
	case stderrors.Is(err, changelog.ErrNoSelection):
		return Wrap(err, Changelog,
			"Check exactly one box, e.g. '- [x] patch'",
			"Check 'skip' when the change should not be released",
		)
	case stderrors.Is(err, changelog.ErrAmbiguousSelection):
		return Wrap(err, Changelog, "Leave exactly one change type checked")
	case stderrors.As(err, &emptyErr):
		return Wrap(err, Changelog,
			fmt.Sprintf("Add at least one entry under '## %s'", emptyErr.Section),
			fmt.Sprintf("Write '%s' when there is nothing to report", changelog.NoChangesMarker),
		)
	case stderrors.Is(err, changelog.ErrNoChangelog):
		return Wrap(err, Changelog,
			"Add the changelog marker heading followed by the release notes to the commit message",
			"Change the marker with changelog_marker in .relbump/config.yml",
		)
	case stderrors.As(err, &malformed):
		return Wrap(err, Changelog, "Remove formatting from the start of the entry so it begins with plain text")
	case stderrors.As(err, &illegal):
		return Wrap(err, Version,
			"Stages only move forward: final -> alpha -> beta -> stable",
			"Run 'relbump next <version> --help' to preview a transition",
		)
	case stderrors.Is(err, release.ErrNoTransitionRequested),
		stderrors.Is(err, release.ErrConflictingTransition):
		return &CLIError{
			Category:    Argument,
			Message:     err.Error(),
			Usage:       bumpUsage,
			Remediation: []string{"Pass at most one of --major, --minor, --patch and at most one of --alpha, --beta, --stable"},
			Cause:       err,
		}
	case stderrors.As(err, &invalidVer):
		return Wrap(err, Version,
			"Versions look like 1.2.3, 2.0.0a1 or 2.0.0b2",
			"Check current_version or the file named by version_source.path",
		)
	case stderrors.Is(err, propagate.ErrNothingToRelease):
		return Wrap(err, Prerequisite,
			"Add entries under the pending heading of at least one changelog",
			"Pass --allow-empty to release anyway",
		)
	case stderrors.Is(err, lock.ErrLocked):
		return Wrap(err, Prerequisite,
			"Wait for the other run to finish",
			"Remove the lock file if no other relbump process is running",
		)
	case stderrors.As(err, &validErr):
		return Wrap(err, Configuration,
			"Fix the reported field in the config file",
			"Run 'relbump config show' to see the merged configuration",
		)
	case stderrors.Is(err, config.ErrNoVersionSource):
		return Wrap(err, Configuration,
			"Set current_version in .relbump/config.yml",
			"Or point version_source.path at the file holding the version",
		)
	case stderrors.As(err, &notFound):
		return Wrap(err, Configuration, "Check the pipeline id and the pipeline base URL")
	case stderrors.As(err, &missingErr):
		return Wrap(err, Configuration,
			fmt.Sprintf("Pass %s with --param %s=<value>", missingErr.Parameter, missingErr.Parameter),
		)
	case stderrors.As(err, &noMatch):
		return Wrap(err, Configuration,
			"Check version_files and image.files in .relbump/config.yml",
			"Patterns are relative to the working directory",
		)
	}

	return Wrap(err, Runtime)
}
