package document

import (
	"errors"
	"fmt"
)

// MalformedEntryError is returned when a block does not start with plain text.
type MalformedEntryError struct {
	// Found describes what was found where text was expected.
	Found string
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("malformed entry: expected plain text, found %s", e.Found)
}

// IsMalformedEntry returns true if the error is a MalformedEntryError.
func IsMalformedEntry(err error) bool {
	var me *MalformedEntryError
	return errors.As(err, &me)
}

// IsHeading reports whether b is a heading at exactly level whose first inline
// span is plain text. When text is given it must match that span exactly.
func IsHeading(b Block, level int, text ...string) bool {
	h, ok := b.(Heading)
	if !ok || h.Level != level {
		return false
	}
	first, ok := h.Inline.FirstText()
	if !ok {
		return false
	}
	return len(text) == 0 || first == text[0]
}

// ExtractRawText returns the first literal text run of a List, ListItem or
// Paragraph. A List yields its first item, an item its first child block,
// which must be a Paragraph.
func ExtractRawText(b Block) (string, error) {
	switch v := b.(type) {
	case List:
		if len(v.Items) == 0 {
			return "", &MalformedEntryError{Found: "empty list"}
		}
		return ExtractRawText(v.Items[0])
	case ListItem:
		if len(v.Blocks) == 0 {
			return "", &MalformedEntryError{Found: "empty list item"}
		}
		if _, ok := v.Blocks[0].(Paragraph); !ok {
			return "", &MalformedEntryError{Found: Describe(v.Blocks[0])}
		}
		return ExtractRawText(v.Blocks[0])
	case Paragraph:
		if len(v.Inline.Spans) == 0 {
			return "", &MalformedEntryError{Found: "empty paragraph"}
		}
		first, ok := v.Inline.FirstText()
		if !ok {
			return "", &MalformedEntryError{Found: v.Inline.Spans[0].Kind.String()}
		}
		return first, nil
	default:
		return "", &MalformedEntryError{Found: Describe(b)}
	}
}

// Describe returns a short human-readable label for a block.
func Describe(b Block) string {
	switch v := b.(type) {
	case Heading:
		return fmt.Sprintf("heading %q (level %d)", v.Inline.Text(), v.Level)
	case List:
		return fmt.Sprintf("list with %d items", len(v.Items))
	case ListItem:
		return "list item"
	case Paragraph:
		return fmt.Sprintf("paragraph %q", v.Inline.Text())
	case BlankLine:
		return "blank line"
	default:
		return fmt.Sprintf("%T", b)
	}
}
