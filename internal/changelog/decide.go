package changelog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/relbump/relbump/internal/document"
)

const (
	checkedMarker   = "[x]"
	uncheckedMarker = "[ ]"
)

var (
	// ErrNoSelection is returned when no change type is marked with [x].
	ErrNoSelection = errors.New("no change type selected")
	// ErrAmbiguousSelection is returned when more than one change type is marked with [x].
	ErrAmbiguousSelection = errors.New("more than one change type selected")
)

// StructureError is returned when the notes do not follow the expected
// heading and section layout.
type StructureError struct {
	Message string
	Detail  string
}

func (e *StructureError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// EmptySectionError is returned when a required section has no entries.
type EmptySectionError struct {
	Section string
}

func (e *EmptySectionError) Error() string {
	return fmt.Sprintf("section %q has no entries (write %q if there is nothing to report)", e.Section, NoChangesMarker)
}

// IsStructureError returns true if the error is a StructureError.
func IsStructureError(err error) bool {
	var se *StructureError
	return errors.As(err, &se)
}

// Decide returns the single change type selected in the leading checkbox list
// of doc. It has no side effects and returns the same result for the same doc.
func Decide(doc document.Document) (ChangeType, error) {
	return decide(doc.WithoutBlankLines())
}

func decide(blocks []document.Block) (ChangeType, error) {
	if len(blocks) == 0 {
		return "", &StructureError{Message: "expected selection list first", Detail: "the notes are empty"}
	}

	list, ok := blocks[0].(document.List)
	if !ok {
		return "", &StructureError{Message: "expected selection list first", Detail: "found " + document.Describe(blocks[0])}
	}

	var selected []ChangeType
	for i, item := range list.Items {
		text, err := document.ExtractRawText(item)
		if err != nil {
			return "", fmt.Errorf("selection item %d: %w", i+1, err)
		}

		switch {
		case strings.HasPrefix(text, uncheckedMarker):
			continue
		case strings.HasPrefix(text, checkedMarker):
			ct, err := ParseChangeType(strings.TrimPrefix(text, checkedMarker))
			if err != nil {
				return "", &StructureError{Message: "invalid selection item", Detail: err.Error()}
			}
			selected = append(selected, ct)
		default:
			return "", &StructureError{
				Message: "invalid selection item",
				Detail:  fmt.Sprintf("%q must start with %q or %q", text, uncheckedMarker, checkedMarker),
			}
		}
	}

	switch len(selected) {
	case 0:
		return "", ErrNoSelection
	case 1:
		return selected[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguousSelection, joinChangeTypes(selected))
	}
}

// Validate decides the change type and, unless it is Skip, checks that the
// notes carry a "## cdf" section right after the selection list and a
// "## templates" section further down, each with at least one entry.
func Validate(doc document.Document) (Decision, error) {
	blocks := doc.WithoutBlankLines()

	change, err := decide(blocks)
	if err != nil {
		return Decision{}, err
	}

	decision := Decision{Change: change}
	if change == Skip {
		return decision, nil
	}

	rest := blocks[1:]
	if len(rest) == 0 || !document.IsHeading(rest[0], 2, SectionCDF) {
		return Decision{}, &StructureError{Message: "missing cdf section", Detail: fmt.Sprintf("expected \"## %s\" after the selection list", SectionCDF)}
	}

	cdf := takeSection(rest[1:])
	if err := ValidateSection(SectionCDF, cdf); err != nil {
		return Decision{}, err
	}
	decision.Sections = append(decision.Sections, summarize(SectionCDF, cdf))

	remaining := rest[1+len(cdf):]
	idx := -1
	for i, b := range remaining {
		if !document.IsHeading(b, 2, SectionTemplates) {
			continue
		}
		if idx >= 0 {
			return Decision{}, &StructureError{Message: "duplicate templates section"}
		}
		idx = i
	}
	if idx < 0 {
		return Decision{}, &StructureError{Message: "missing templates section", Detail: fmt.Sprintf("expected a \"## %s\" heading", SectionTemplates)}
	}

	templates := remaining[idx+1:]
	if err := ValidateSection(SectionTemplates, templates); err != nil {
		return Decision{}, err
	}
	decision.Sections = append(decision.Sections, summarize(SectionTemplates, templates))

	return decision, nil
}

// ValidateSection checks that a section holds at least one entry. A lone
// "No changes." paragraph is the explicit way to declare an empty section.
func ValidateSection(name string, entries []document.Block) error {
	if countEntries(entries) == 0 {
		return &EmptySectionError{Section: name}
	}
	return nil
}

// takeSection returns the blocks up to, not including, the next level-2 heading.
func takeSection(blocks []document.Block) []document.Block {
	for i, b := range blocks {
		if document.IsHeading(b, 2) {
			return blocks[:i]
		}
	}
	return blocks
}

func countEntries(entries []document.Block) int {
	n := 0
	for _, b := range entries {
		if _, blank := b.(document.BlankLine); !blank {
			n++
		}
	}
	return n
}

func summarize(name string, entries []document.Block) SectionSummary {
	return SectionSummary{
		Name:      name,
		Entries:   countEntries(entries),
		NoChanges: isNoChanges(entries),
	}
}

// isNoChanges reports whether the section opens with the "No changes." marker.
func isNoChanges(entries []document.Block) bool {
	for _, b := range entries {
		switch v := b.(type) {
		case document.BlankLine:
			continue
		case document.Paragraph:
			text, ok := v.Inline.FirstText()
			return ok && strings.TrimSpace(text) == NoChangesMarker
		default:
			return false
		}
	}
	return false
}

func joinChangeTypes(types []ChangeType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}
