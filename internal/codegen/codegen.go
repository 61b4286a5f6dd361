// Package codegen lowers a tac.Program to AT&T-syntax x86-64 assembly,
// ready to assemble and link against the small C runtime named in
// spec.md §4.4 / §6. It mirrors the reference x64_codegen.cpp pass
// quad-for-quad, adapted to Go's io.Writer-based text emission instead
// of C++ ostream insertion.
package codegen

import (
	"bufio"
	"fmt"
	"io"

	"github.com/dmars-lang/dmarsc/internal/config"
	"github.com/dmars-lang/dmarsc/internal/tac"
)

// Emit writes the full assembly translation of prog to w.
func Emit(w io.Writer, prog *tac.Program, cfg *config.Config) error {
	bw := bufio.NewWriter(w)

	emitData(bw, prog)
	fmt.Fprintf(bw, ".globl main\n")
	fmt.Fprintf(bw, ".text\n")

	for _, proc := range prog.Procedures {
		emitProcedure(bw, proc, cfg.Runtime)
	}

	return bw.Flush()
}

func emitData(w io.Writer, prog *tac.Program) {
	fmt.Fprintf(w, ".data\n")
	for _, g := range prog.GlobalOrder {
		fmt.Fprintf(w, "gbl_%s: .quad 0\n", g.Symbol.Name)
	}
	for _, s := range prog.Strings {
		fmt.Fprintf(w, "%s: .asciz %q\n", s.Label, s.Value)
	}
	// Placed after the globals and strings so everything preceding
	// .text lands back on a quadword boundary (spec.md §4.4).
	fmt.Fprintf(w, ".align 8\n")
}

func emitProcedure(w io.Writer, proc *tac.Procedure, rt config.Runtime) {
	pf := buildFrame(proc)
	// main is the process entry point the C runtime's startup code
	// calls by its bare name; every other procedure is only ever
	// reached through a CallQuad, which always targets fun_<name>, so
	// it is labeled accordingly.
	if proc.Name == "main" {
		fmt.Fprintf(w, "main:\n")
	} else {
		fmt.Fprintf(w, "fun_%s:\n", proc.Name)
	}
	for _, q := range proc.Body {
		emitQuad(w, q, pf, rt)
	}
}
