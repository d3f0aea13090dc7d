package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_BlockKinds(t *testing.T) {
	t.Parallel()

	src := `# Changelog

- [x] minor
- [ ] major

## cdf

Added X
`
	blocks := Parse(src).WithoutBlankLines()
	require.Len(t, blocks, 4)

	h, ok := blocks[0].(Heading)
	require.True(t, ok, "first block should be a heading, got %s", Describe(blocks[0]))
	assert.Equal(t, 1, h.Level)
	assert.Equal(t, "Changelog", h.Inline.Text())

	list, ok := blocks[1].(List)
	require.True(t, ok, "second block should be a list, got %s", Describe(blocks[1]))
	assert.False(t, list.Ordered)
	assert.Len(t, list.Items, 2)

	assert.True(t, IsHeading(blocks[2], 2, "cdf"))

	p, ok := blocks[3].(Paragraph)
	require.True(t, ok)
	assert.Equal(t, "Added X", p.Inline.Text())
}

func TestParse_CheckboxTextSurvives(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		src  string
		want []string
	}{
		"selected and unselected": {
			src:  "- [x] minor\n- [ ] major\n",
			want: []string{"[x] minor", "[ ] major"},
		},
		"asterisk bullets": {
			src:  "* [ ] patch\n* [x] Skip\n",
			want: []string{"[ ] patch", "[x] Skip"},
		},
		"loose list": {
			src:  "- [x] major\n\n- [ ] minor\n",
			want: []string{"[x] major", "[ ] minor"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			blocks := Parse(tt.src).WithoutBlankLines()
			require.Len(t, blocks, 1)
			list, ok := blocks[0].(List)
			require.True(t, ok)
			require.Len(t, list.Items, len(tt.want))

			for i, item := range list.Items {
				got, err := ExtractRawText(item)
				require.NoError(t, err)
				assert.Equal(t, tt.want[i], got)
			}
		})
	}
}

func TestParse_UnmodelledSyntaxBecomesParagraph(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		src      string
		contains string
	}{
		"fenced code": {
			src:      "```\nsome code\n```\n",
			contains: "some code",
		},
		"block quote": {
			src:      "> quoted text\n",
			contains: "quoted text",
		},
		"thematic break": {
			src:      "---\n",
			contains: "---",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			blocks := Parse(tt.src).WithoutBlankLines()
			require.Len(t, blocks, 1)
			p, ok := blocks[0].(Paragraph)
			require.True(t, ok, "expected paragraph, got %s", Describe(blocks[0]))
			assert.Contains(t, p.Inline.Text(), tt.contains)
		})
	}
}

func TestParse_EmptyInput(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Parse("").WithoutBlankLines())
	assert.Empty(t, Parse("\n\n\n").WithoutBlankLines())
}

func TestParse_IsDeterministic(t *testing.T) {
	t.Parallel()

	src := "- [x] patch\n\n## cdf\n\n- Fixed a bug\n"
	assert.Equal(t, Parse(src), Parse(src))
}
