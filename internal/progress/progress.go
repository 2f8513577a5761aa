// Package progress reports slice-execution progress to the terminal.
// Grounded on the teacher's plain fmt.Fprintf(os.Stderr, ...) debug path
// (internal/analyzer.go) and the original's rotating
// `print!("Executing Slice {}\r")` spinner — no structured-logging library
// appears anywhere in the retrieval pack, so none is introduced here.
package progress

import (
	"fmt"
	"io"
)

var spinnerFrames = [...]byte{'|', '/', '-', '\\'}

// Reporter writes spinner and verbose-mode progress lines to Out.
// Verbose gates the extra Debugf diagnostic lines, the Go equivalent of the
// original's cfg!(debug_assertions) trace prints.
type Reporter struct {
	Out     io.Writer
	Verbose bool

	frame int
}

// NewReporter returns a Reporter writing to out.
func NewReporter(out io.Writer, verbose bool) *Reporter {
	return &Reporter{Out: out, Verbose: verbose}
}

// Spin advances the spinner and prints "Executing Slice <id>" over the
// previous line.
func (r *Reporter) Spin(sliceID int) {
	if r.Out == nil {
		return
	}
	fmt.Fprintf(r.Out, "\r%c Executing Slice %d", spinnerFrames[r.frame%len(spinnerFrames)], sliceID)
	r.frame++
}

// Done clears the spinner line and prints a final summary.
func (r *Reporter) Done(sliceCount int) {
	if r.Out == nil {
		return
	}
	fmt.Fprintf(r.Out, "\rExecuted %d slices.\n", sliceCount)
}

// Debugf prints a verbose diagnostic line, a no-op unless Verbose is set.
func (r *Reporter) Debugf(format string, args ...any) {
	if r.Out == nil || !r.Verbose {
		return
	}
	fmt.Fprintf(r.Out, format+"\n", args...)
}
