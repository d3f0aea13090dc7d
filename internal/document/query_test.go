package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsHeading(t *testing.T) {
	t.Parallel()

	heading := func(level int, spans ...Span) Block {
		return Heading{Level: level, Inline: Inline{Spans: spans}}
	}

	tests := map[string]struct {
		block Block
		level int
		text  []string
		want  bool
	}{
		"level match without text": {
			block: heading(2, Span{Kind: SpanText, Text: "cdf"}),
			level: 2,
			want:  true,
		},
		"level and text match": {
			block: heading(2, Span{Kind: SpanText, Text: "cdf"}),
			level: 2,
			text:  []string{"cdf"},
			want:  true,
		},
		"level mismatch": {
			block: heading(3, Span{Kind: SpanText, Text: "cdf"}),
			level: 2,
			text:  []string{"cdf"},
			want:  false,
		},
		"case sensitive": {
			block: heading(2, Span{Kind: SpanText, Text: "CDF"}),
			level: 2,
			text:  []string{"cdf"},
			want:  false,
		},
		"first span is code": {
			block: heading(2, Span{Kind: SpanCode, Text: "cdf"}),
			level: 2,
			want:  false,
		},
		"not a heading": {
			block: Paragraph{Inline: Inline{Spans: []Span{{Kind: SpanText, Text: "cdf"}}}},
			level: 2,
			want:  false,
		},
		"blank line": {
			block: BlankLine{},
			level: 2,
			want:  false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsHeading(tt.block, tt.level, tt.text...))
		})
	}
}

func TestIsHeading_FromParsedMarkdown(t *testing.T) {
	t.Parallel()

	blocks := Parse("## templates\n\n## `cdf`\n").WithoutBlankLines()
	require.Len(t, blocks, 2)

	assert.True(t, IsHeading(blocks[0], 2, "templates"))
	assert.False(t, IsHeading(blocks[1], 2), "code-formatted heading is not plain text")
}

func TestExtractRawText(t *testing.T) {
	t.Parallel()

	text := func(s string) Span { return Span{Kind: SpanText, Text: s} }
	para := func(spans ...Span) Paragraph { return Paragraph{Inline: Inline{Spans: spans}} }

	tests := map[string]struct {
		block   Block
		want    string
		wantErr bool
	}{
		"paragraph": {
			block: para(text("No changes.")),
			want:  "No changes.",
		},
		"paragraph with trailing formatting": {
			block: para(text("Added "), Span{Kind: SpanCode, Text: "cdf"}),
			want:  "Added ",
		},
		"list item": {
			block: ListItem{Blocks: []Block{para(text("[x] minor"))}},
			want:  "[x] minor",
		},
		"list returns first item": {
			block: List{Items: []ListItem{
				{Blocks: []Block{para(text("first"))}},
				{Blocks: []Block{para(text("second"))}},
			}},
			want: "first",
		},
		"leading emphasis": {
			block:   para(Span{Kind: SpanEmphasis, Text: "bold"}),
			wantErr: true,
		},
		"empty paragraph": {
			block:   para(),
			wantErr: true,
		},
		"empty list": {
			block:   List{},
			wantErr: true,
		},
		"list item starting with nested list": {
			block: ListItem{Blocks: []Block{List{Items: []ListItem{
				{Blocks: []Block{para(text("[x] minor"))}},
			}}}},
			wantErr: true,
		},
		"heading": {
			block:   Heading{Level: 2, Inline: Inline{Spans: []Span{text("cdf")}}},
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := ExtractRawText(tt.block)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsMalformedEntry(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractRawText_FormattedListEntry(t *testing.T) {
	t.Parallel()

	blocks := Parse("- **bold** entry\n").WithoutBlankLines()
	require.Len(t, blocks, 1)

	_, err := ExtractRawText(blocks[0])
	require.Error(t, err)

	var me *MalformedEntryError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "emphasis", me.Found)
}
