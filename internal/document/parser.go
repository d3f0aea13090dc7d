package document

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// markdown is a plain CommonMark parser. The GFM task-list extension is left
// out on purpose so that "[x]" markers survive as literal text.
var markdown = goldmark.New()

// Parse converts Markdown text into a Document. It never fails: syntax that
// has no Block counterpart is kept verbatim as a Paragraph.
func Parse(src string) Document {
	source := []byte(src)
	root := markdown.Parser().Parse(text.NewReader(source))

	var blocks []Block
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if n.HasBlankPreviousLines() {
			blocks = append(blocks, BlankLine{})
		}
		blocks = append(blocks, convertBlock(n, source))
	}

	return Document{Blocks: blocks}
}

// convertBlock folds a goldmark block node into the Block sum type.
func convertBlock(n ast.Node, source []byte) Block {
	switch v := n.(type) {
	case *ast.Heading:
		return Heading{Level: v.Level, Inline: convertInline(v, source)}
	case *ast.List:
		list := List{Ordered: v.IsOrdered()}
		for c := v.FirstChild(); c != nil; c = c.NextSibling() {
			list.Items = append(list.Items, convertListItem(c, source))
		}
		return list
	case *ast.ListItem:
		return convertListItem(v, source)
	case *ast.Paragraph, *ast.TextBlock:
		return Paragraph{Inline: convertInline(v, source)}
	default:
		return verbatim(n, source)
	}
}

func convertListItem(n ast.Node, source []byte) ListItem {
	var item ListItem
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		item.Blocks = append(item.Blocks, convertBlock(c, source))
	}
	return item
}

// convertInline collects the inline children of n, merging adjacent text.
func convertInline(n ast.Node, source []byte) Inline {
	var spans []Span
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		span := convertSpan(c, source)
		if last := len(spans) - 1; last >= 0 && span.Kind == SpanText && spans[last].Kind == SpanText {
			spans[last].Text += span.Text
			continue
		}
		spans = append(spans, span)
	}
	return Inline{Spans: spans}
}

func convertSpan(n ast.Node, source []byte) Span {
	switch v := n.(type) {
	case *ast.Text:
		return Span{Kind: SpanText, Text: textValue(v, source)}
	case *ast.String:
		return Span{Kind: SpanText, Text: string(v.Value)}
	case *ast.CodeSpan:
		return Span{Kind: SpanCode, Text: flatten(v, source)}
	case *ast.Emphasis:
		return Span{Kind: SpanEmphasis, Text: flatten(v, source)}
	case *ast.AutoLink:
		return Span{Kind: SpanLink, Text: string(v.Label(source))}
	case *ast.Link, *ast.Image:
		return Span{Kind: SpanLink, Text: flatten(v, source)}
	default:
		return Span{Kind: SpanOther, Text: flatten(v, source)}
	}
}

func textValue(t *ast.Text, source []byte) string {
	s := string(t.Segment.Value(source))
	if t.SoftLineBreak() || t.HardLineBreak() {
		s += "\n"
	}
	return s
}

// flatten returns the text of every descendant of n with formatting removed.
func flatten(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := c.(type) {
		case *ast.Text:
			b.WriteString(textValue(v, source))
		case *ast.String:
			b.Write(v.Value)
		case *ast.RawHTML:
			for i := 0; i < v.Segments.Len(); i++ {
				seg := v.Segments.At(i)
				b.Write(seg.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// verbatim keeps an unmodelled block as a Paragraph of its source lines.
func verbatim(n ast.Node, source []byte) Paragraph {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || c.Type() != ast.TypeBlock {
			return ast.WalkContinue, nil
		}
		lines := c.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			b.Write(seg.Value(source))
		}
		return ast.WalkContinue, nil
	})

	raw := strings.TrimRight(b.String(), "\n")
	if raw == "" {
		if _, ok := n.(*ast.ThematicBreak); ok {
			raw = "---"
		}
	}
	return Paragraph{Inline: Inline{Spans: []Span{{Kind: SpanText, Text: raw}}}}
}
