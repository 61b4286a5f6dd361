package codegen

import "github.com/dmars-lang/dmarsc/internal/tac"

// procFrame is the per-procedure context every quad emitter needs:
// where each operand lives relative to %rbp, how large the activation
// record is, and how many formals the procedure declares (needed to
// locate stack-passed arguments beyond the sixth).
type procFrame struct {
	offsets    map[tac.Operand]int
	size       int
	numFormals int
}

// buildFrame assigns every local, temporary, and formal in proc a
// %rbp-relative stack slot: locals first, then temporaries, then
// formals, starting at -24(%rbp) and decrementing by each operand's
// width in bytes (spec.md §4.4's activation record layout). Because the
// prologue adds 16 to %rbp so positive offsets reach the caller's frame,
// the sixteen bytes just below %rbp hold the return address and the saved
// %rbp; the first slot, at -24(%rbp), covers the eight bytes under them.
func buildFrame(proc *tac.Procedure) *procFrame {
	offsets := make(map[tac.Operand]int)
	offset := -24

	place := func(opd tac.Operand) {
		offsets[opd] = offset
		offset -= opd.Width() / 8
	}
	for _, l := range proc.LocalOrder {
		place(l)
	}
	for _, t := range proc.Temps {
		place(t)
	}
	for _, f := range proc.Formals {
		place(f)
	}

	return &procFrame{
		offsets:    offsets,
		size:       -24 - offset,
		numFormals: len(proc.Formals),
	}
}
