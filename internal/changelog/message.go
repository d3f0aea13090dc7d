package changelog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/relbump/relbump/internal/document"
)

// DefaultMarker introduces the release notes inside a commit message.
const DefaultMarker = "## Changelog"

// ErrNoChangelog is returned when a commit message carries no release notes.
var ErrNoChangelog = errors.New("no changelog entry found in the commit message")

// FromMessage returns the trimmed text between the first marker in msg and
// the next one, if any. An empty marker means DefaultMarker.
func FromMessage(msg, marker string) (string, error) {
	if marker == "" {
		marker = DefaultMarker
	}

	_, notes, found := strings.Cut(msg, marker)
	if !found {
		return "", fmt.Errorf("%w: missing %q", ErrNoChangelog, marker)
	}
	notes, _, _ = strings.Cut(notes, marker)

	notes = strings.TrimSpace(notes)
	if notes == "" {
		return "", fmt.Errorf("%w: nothing after %q", ErrNoChangelog, marker)
	}
	return notes, nil
}

// ValidateMessage extracts, parses and validates the notes in a commit message.
func ValidateMessage(msg, marker string) (Decision, error) {
	notes, err := FromMessage(msg, marker)
	if err != nil {
		return Decision{}, err
	}
	return Validate(document.Parse(notes))
}
