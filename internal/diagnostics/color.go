package diagnostics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether f is attached to an interactive terminal.
// It is the check WritePretty's color argument corresponds to; nothing in
// this module calls it, and the cmd/dmarsc driver prints diagnostics
// through Reporter.Write, which never underlines. The first line of each
// diagnostic (the "FATAL [...]: message" line machine-readable tests key
// off of) is the same in both renderings.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// WritePretty writes every diagnostic to w. When color is true, each
// diagnostic is followed by the offending source line with the reported
// column range underlined in red.
func (r *Reporter) WritePretty(w io.Writer, src string, color bool) {
	lines := strings.Split(src, "\n")
	for _, d := range r.diags {
		fmt.Fprintln(w, d.String())
		if !color {
			continue
		}
		lineIdx := d.Pos.StartLine - 1
		if lineIdx < 0 || lineIdx >= len(lines) {
			continue
		}
		line := lines[lineIdx]
		fmt.Fprintln(w, "  "+line)
		fmt.Fprintln(w, "  "+underline(line, d.Pos.StartCol, d.Pos.EndCol))
	}
}

func underline(line string, startCol, endCol int) string {
	if endCol < startCol {
		endCol = startCol
	}
	var sb strings.Builder
	sb.WriteString("\x1b[31m")
	for i := 1; i <= len(line) || i <= endCol; i++ {
		if i >= startCol && i <= endCol {
			sb.WriteByte('^')
		} else {
			sb.WriteByte(' ')
		}
	}
	sb.WriteString("\x1b[0m")
	return sb.String()
}
