package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// palette styles the parts of a rendered CLIError.
type palette struct {
	label, category, message func(a ...any) string
	usageLabel, usage        func(a ...any) string
	fixLabel, bullet         func(a ...any) string
}

var (
	colorPalette = palette{
		label:      color.New(color.FgRed, color.Bold).SprintFunc(),
		category:   color.New(color.FgYellow).SprintFunc(),
		message:    color.New(color.FgRed).SprintFunc(),
		usageLabel: color.New(color.FgCyan, color.Bold).SprintFunc(),
		usage:      color.New(color.FgCyan).SprintFunc(),
		fixLabel:   color.New(color.FgGreen, color.Bold).SprintFunc(),
		bullet:     color.New(color.FgGreen).SprintFunc(),
	}
	plainPalette = palette{
		label:      fmt.Sprint,
		category:   fmt.Sprint,
		message:    fmt.Sprint,
		usageLabel: fmt.Sprint,
		usage:      fmt.Sprint,
		fixLabel:   fmt.Sprint,
		bullet:     fmt.Sprint,
	}
)

// FormatError renders a CLIError with colors. fatih/color drops them on its
// own when stdout is not a terminal or NO_COLOR is set.
func FormatError(err *CLIError) string {
	return render(err, colorPalette)
}

// FormatErrorPlain renders a CLIError without colors:
//
//	Error [Changelog Error]: no change type selected
//
//	To fix this:
//	  • Check exactly one box, e.g. '- [x] patch'
func FormatErrorPlain(err *CLIError) string {
	return render(err, plainPalette)
}

func render(err *CLIError, p palette) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s]: %s\n", p.label("Error"), p.category(err.Category.String()), p.message(err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s%s\n", p.usageLabel("Usage: "), p.usage(err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", p.fixLabel("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", p.bullet("•"), step)
		}
	}
	return sb.String()
}

// FprintAny prints err to w, translating known failures into a CLIError
// first. Colors are used unless plain is set.
func FprintAny(w io.Writer, err error, plain bool) {
	if err == nil {
		return
	}
	p := colorPalette
	if plain {
		p = plainPalette
	}
	fmt.Fprint(w, render(FromError(err), p))
}
