package diag

import (
	"fmt"
	"io"
)

// Reporter is the single sink for compile diagnostics. A failure is
// reported by whoever first detects it, exactly once; enclosing callers
// propagate the error value without reporting it again.
type Reporter struct {
	w io.Writer
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Report writes err as a single "Error: <message>" line and returns it
// unchanged, so a detection site can report and propagate in one step.
func (r *Reporter) Report(err error) error {
	fmt.Fprintf(r.w, "Error: %s\n", err)
	return err
}
