// Package output provides terminal output formatting utilities for the relbump CLI.
// This package is designed to have minimal dependencies to avoid import cycles.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// FormatDiff indents every line of a line diff. Unless plain is set, added
// lines are green and removed lines red.
func FormatDiff(diff, indent string, plain bool) string {
	added := color.New(color.FgGreen).SprintFunc()
	removed := color.New(color.FgRed).SprintFunc()

	var sb strings.Builder
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		text := strings.TrimSuffix(line, "\n")
		sb.WriteString(indent)
		switch {
		case plain:
			sb.WriteString(text)
		case strings.HasPrefix(text, "+"):
			sb.WriteString(added(text))
		case strings.HasPrefix(text, "-"):
			sb.WriteString(removed(text))
		default:
			sb.WriteString(text)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// PrintSuccess prints a summary line, prefixed with a green checkmark
// unless plain is set.
func PrintSuccess(out io.Writer, message string, plain bool) error {
	if plain {
		_, err := fmt.Fprintln(out, message)
		return err
	}
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	_, err := fmt.Fprintf(out, "%s %s\n", green("✓"), message)
	return err
}

// PrintFileAction prints one file of a run, e.g. "  version   pyproject.toml: replaced version".
// The path is cyan unless plain is set.
func PrintFileAction(out io.Writer, kind fmt.Stringer, path, action string, plain bool) {
	if plain {
		fmt.Fprintf(out, "  %-9s %s: %s\n", kind, path, action)
		return
	}
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(out, "  %-9s %s: %s\n", kind, cyan(path), action)
}
