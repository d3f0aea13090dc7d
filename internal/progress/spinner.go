package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

const spinnerDelay = 100 * time.Millisecond

// Spinner shows an animated status line on a terminal and degrades to
// plain result lines elsewhere.
type Spinner struct {
	w       io.Writer
	symbols ProgressSymbols
	s       *spinner.Spinner
}

// NewSpinner creates a spinner writing to w. The animation only runs when
// caps reports a TTY.
func NewSpinner(w io.Writer, caps TerminalCapabilities) *Spinner {
	symbols := SelectSymbols(caps)
	sp := &Spinner{w: w, symbols: symbols}
	if caps.IsTTY {
		sp.s = spinner.New(spinner.CharSets[symbols.SpinnerSet], spinnerDelay, spinner.WithWriter(w))
	}
	return sp
}

// Start begins the animation with msg next to it.
func (sp *Spinner) Start(msg string) {
	if sp.s == nil {
		return
	}
	sp.s.Suffix = " " + msg
	sp.s.Start()
}

// Success stops the spinner and prints msg with a checkmark.
func (sp *Spinner) Success(msg string) {
	sp.finish(sp.symbols.Checkmark, msg)
}

// Fail stops the spinner and prints msg with a failure marker.
func (sp *Spinner) Fail(msg string) {
	sp.finish(sp.symbols.Failure, msg)
}

func (sp *Spinner) finish(symbol, msg string) {
	if sp.s != nil {
		sp.s.Stop()
	}
	fmt.Fprintf(sp.w, "%s %s\n", symbol, msg)
}
