package changelog

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// ChangeStyle defines the color and icon for a change type.
type ChangeStyle struct {
	Color *color.Color
	Icon  string
}

// changeStyles maps change types to their terminal styling.
var changeStyles = map[ChangeType]ChangeStyle{
	Major: {Color: color.New(color.FgRed, color.Bold), Icon: "⚠"},
	Minor: {Color: color.New(color.FgGreen, color.Bold), Icon: "✓"},
	Patch: {Color: color.New(color.FgYellow, color.Bold), Icon: "⚡"},
	Skip:  {Color: color.New(color.Faint), Icon: "~"},
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatDecision writes a short summary of a validated decision.
func FormatDecision(d Decision, w io.Writer, opts FormatOptions) error {
	if d.Change == Skip {
		_, err := fmt.Fprintln(w, "No changes to release.")
		return err
	}

	if err := writeChangeHeader(d.Change, w, opts); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	width := resolveWidth(opts.MaxWidth)
	for _, s := range d.Sections {
		line := truncateText(formatSection(s), width-2)
		if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
			return fmt.Errorf("writing section %s: %w", s.Name, err)
		}
	}
	return nil
}

// writeChangeHeader writes the release type line.
func writeChangeHeader(change ChangeType, w io.Writer, opts FormatOptions) error {
	if opts.Plain {
		_, err := fmt.Fprintf(w, "Release type: %s\n", change)
		return err
	}

	style := changeStyles[change]
	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "%s Release type: %s\n", colored(style.Icon), colored(string(change)))
	return err
}

func formatSection(s SectionSummary) string {
	if s.NoChanges {
		return fmt.Sprintf("%-10s %s", s.Name, NoChangesMarker)
	}
	noun := "entries"
	if s.Entries == 1 {
		noun = "entry"
	}
	return fmt.Sprintf("%-10s %d %s", s.Name, s.Entries, noun)
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// truncateText truncates text to maxLen, adding ellipsis if needed.
func truncateText(text string, maxLen int) string {
	if maxLen <= 3 || len(text) <= maxLen {
		return text
	}
	return text[:maxLen-3] + "..."
}
