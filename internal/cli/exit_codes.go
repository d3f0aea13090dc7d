package cli

import (
	"errors"
	"fmt"

	"github.com/relbump/relbump/internal/changelog"
	"github.com/relbump/relbump/internal/config"
	"github.com/relbump/relbump/internal/discovery"
	"github.com/relbump/relbump/internal/document"
	clierrors "github.com/relbump/relbump/internal/errors"
	"github.com/relbump/relbump/internal/lock"
	"github.com/relbump/relbump/internal/propagate"
	"github.com/relbump/relbump/internal/release"
)

// Exit codes for the relbump CLI.
// Each typed failure has its own code so CI jobs can branch on the outcome.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a failure without a more specific code
	ExitFailure = 1

	// ExitStructure indicates release notes that do not follow the expected layout
	ExitStructure = 2

	// ExitInvalidArguments indicates invalid arguments, including a missing
	// or conflicting version transition
	ExitInvalidArguments = 3

	// ExitNoSelection indicates that no change type was checked
	ExitNoSelection = 4

	// ExitAmbiguousSelection indicates that more than one change type was checked
	ExitAmbiguousSelection = 5

	// ExitEmptySection indicates a required notes section without entries
	ExitEmptySection = 6

	// ExitIllegalTransition indicates a stage change the version cannot make
	ExitIllegalTransition = 7

	// ExitMalformedEntry indicates a notes entry not starting with plain text
	ExitMalformedEntry = 8

	// ExitNothingToRelease indicates that no changelog has pending entries
	ExitNothingToRelease = 9

	// ExitLocked indicates that another run holds the repository lock
	ExitLocked = 10

	// ExitConfig indicates invalid or missing configuration
	ExitConfig = 11
)

// ExitError carries an exit code. Err is nil when the failure was already
// reported to the user.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError returns an already reported failure with the given code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// ExitCode maps err to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
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
	case errors.As(err, &structErr), errors.Is(err, changelog.ErrNoChangelog):
		return ExitStructure
	case errors.Is(err, release.ErrNoTransitionRequested),
		errors.Is(err, release.ErrConflictingTransition),
		errors.As(err, &invalidVer):
		return ExitInvalidArguments
	case errors.Is(err, changelog.ErrNoSelection):
		return ExitNoSelection
	case errors.Is(err, changelog.ErrAmbiguousSelection):
		return ExitAmbiguousSelection
	case errors.As(err, &emptyErr):
		return ExitEmptySection
	case errors.As(err, &illegal):
		return ExitIllegalTransition
	case errors.As(err, &malformed):
		return ExitMalformedEntry
	case errors.Is(err, propagate.ErrNothingToRelease):
		return ExitNothingToRelease
	case errors.Is(err, lock.ErrLocked):
		return ExitLocked
	case errors.As(err, &validErr),
		errors.Is(err, config.ErrNoVersionSource),
		errors.As(err, &notFound),
		errors.As(err, &missingErr),
		errors.As(err, &noMatch):
		return ExitConfig
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case clierrors.Argument:
			return ExitInvalidArguments
		case clierrors.Configuration:
			return ExitConfig
		}
	}
	return ExitFailure
}
