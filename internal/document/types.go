package document

import "strings"

// Document is the ordered sequence of top-level blocks produced by Parse.
// It is never modified after parsing.
type Document struct {
	Blocks []Block
}

// Block is one of Heading, List, ListItem, Paragraph or BlankLine.
// The interface is sealed; dispatch on it with a type switch.
type Block interface {
	block()
}

// Heading is an ATX or setext heading.
type Heading struct {
	Level  int
	Inline Inline
}

// List is a bullet or ordered list.
type List struct {
	Ordered bool
	Items   []ListItem
}

// ListItem holds the blocks nested under one list marker.
// For a simple bullet the first block is a Paragraph.
type ListItem struct {
	Blocks []Block
}

// Paragraph is a run of text. Unmodelled syntax also lands here verbatim.
type Paragraph struct {
	Inline Inline
}

// BlankLine marks one or more blank lines preceding the next block.
type BlankLine struct{}

func (Heading) block()   {}
func (List) block()      {}
func (ListItem) block()  {}
func (Paragraph) block() {}
func (BlankLine) block() {}

// SpanKind classifies an inline span.
type SpanKind int

const (
	// SpanText is literal text with no formatting.
	SpanText SpanKind = iota
	// SpanCode is an inline code span.
	SpanCode
	// SpanEmphasis is emphasised or strong text.
	SpanEmphasis
	// SpanLink is a link, autolink or image.
	SpanLink
	// SpanOther covers raw HTML and anything else.
	SpanOther
)

// String returns a short name for the span kind.
func (k SpanKind) String() string {
	switch k {
	case SpanText:
		return "text"
	case SpanCode:
		return "code"
	case SpanEmphasis:
		return "emphasis"
	case SpanLink:
		return "link"
	default:
		return "other"
	}
}

// Span is a single inline run. Adjacent plain text is merged into one SpanText.
type Span struct {
	Kind SpanKind
	Text string
}

// Inline is the inline content of a heading or paragraph.
type Inline struct {
	Spans []Span
}

// Text returns the concatenated text of all spans, formatting removed.
func (in Inline) Text() string {
	var b strings.Builder
	for _, s := range in.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// FirstText returns the first span when it is plain text.
func (in Inline) FirstText() (string, bool) {
	if len(in.Spans) == 0 || in.Spans[0].Kind != SpanText {
		return "", false
	}
	return in.Spans[0].Text, true
}

// WithoutBlankLines returns the document blocks with BlankLine entries removed.
func (d Document) WithoutBlankLines() []Block {
	blocks := make([]Block, 0, len(d.Blocks))
	for _, b := range d.Blocks {
		if _, ok := b.(BlankLine); ok {
			continue
		}
		blocks = append(blocks, b)
	}
	return blocks
}
