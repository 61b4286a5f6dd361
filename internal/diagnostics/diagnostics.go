// Package diagnostics collects and formats the compiler's user-facing
// error messages. Name and type errors are values, not panics: a pass
// appends to a Reporter and keeps walking so that a single invocation
// surfaces every independent problem it can find, in source order
// (spec.md §5, §7). Internal invariant violations are a separate, fatal
// path (the package-level Fatalf) that always aborts the process.
package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/dmars-lang/dmarsc/internal/token"
)

// Diagnostic is one reported user-facing error.
type Diagnostic struct {
	Pos     token.Position
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("FATAL %s: %s", d.Pos, d.Message)
}

// Reporter accumulates diagnostics in the order they are reported, which
// name and type analysis guarantee is source order because every pass is
// a depth-first, left-to-right tree walk.
type Reporter struct {
	diags []Diagnostic
}

// NewReporter returns an empty Reporter.
func NewReporter() *Reporter { return &Reporter{} }

// Report appends a diagnostic at pos.
func (r *Reporter) Report(pos token.Position, format string, args ...any) {
	r.diags = append(r.diags, Diagnostic{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether any diagnostic has been recorded.
func (r *Reporter) HasErrors() bool { return len(r.diags) > 0 }

// Diagnostics returns the recorded diagnostics, in report order.
func (r *Reporter) Diagnostics() []Diagnostic { return r.diags }

// Write prints every diagnostic to w, one per line, in the wire format
// mandated by spec.md §6: "FATAL [L,C]-[L,C]: <message>".
func (r *Reporter) Write(w io.Writer) {
	for _, d := range r.diags {
		fmt.Fprintln(w, d.String())
	}
}

// Fatalf reports an internal-invariant violation (a node missing its
// type during emission, an unknown BaseType, an Enter/Leave imbalance
// surfacing as a nil scope, ...). These never originate from user source
// and are never collected alongside user diagnostics: the process exits
// immediately.
func Fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "FATAL INTERNAL: %s\n", fmt.Sprintf(format, args...))
	os.Exit(2)
}
