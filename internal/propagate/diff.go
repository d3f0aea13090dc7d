package propagate

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is the number of unchanged lines kept around each change.
const diffContext = 2

// lineDiff renders a line-oriented diff of before and after. Removed lines
// are prefixed with "-", added lines with "+" and context lines with a space.
func lineDiff(before, after string) string {
	if before == after {
		return ""
	}

	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	for i, d := range diffs {
		text := splitLines(d.Text)
		switch d.Type {
		case diffpatch.DiffDelete:
			writePrefixed(&out, "-", text)
		case diffpatch.DiffInsert:
			writePrefixed(&out, "+", text)
		case diffpatch.DiffEqual:
			writePrefixed(&out, " ", trimContext(text, i == 0, i == len(diffs)-1))
		}
	}
	return out.String()
}

// trimContext keeps at most diffContext lines next to each neighbouring change.
func trimContext(lines []string, first, last bool) []string {
	switch {
	case first && last:
		return nil
	case first:
		if len(lines) > diffContext {
			return lines[len(lines)-diffContext:]
		}
	case last:
		if len(lines) > diffContext {
			return lines[:diffContext]
		}
	default:
		if len(lines) > 2*diffContext+1 {
			kept := append([]string{}, lines[:diffContext]...)
			kept = append(kept, "...")
			return append(kept, lines[len(lines)-diffContext:]...)
		}
	}
	return lines
}

func writePrefixed(b *strings.Builder, prefix string, lines []string) {
	for _, l := range lines {
		b.WriteString(prefix)
		b.WriteString(l)
		b.WriteByte('\n')
	}
}

// splitLines splits s into lines, ignoring a single trailing newline.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
