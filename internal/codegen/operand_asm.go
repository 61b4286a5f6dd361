package codegen

import (
	"fmt"
	"io"

	"github.com/dmars-lang/dmarsc/internal/diagnostics"
	"github.com/dmars-lang/dmarsc/internal/tac"
)

// memLoc renders opd's storage location as an assembly operand: a
// %rip-relative global label, or a %rbp-relative frame slot.
func memLoc(opd tac.Operand, pf *procFrame) string {
	switch o := opd.(type) {
	case *tac.SymOpd:
		if o.Global {
			return fmt.Sprintf("gbl_%s(%%rip)", o.Symbol.Name)
		}
		return fmt.Sprintf("%d(%%rbp)", pf.offsets[opd])
	case *tac.AuxOpd:
		return fmt.Sprintf("%d(%%rbp)", pf.offsets[opd])
	default:
		diagnostics.Fatalf("codegen: memLoc: unaddressable operand %T", opd)
		return ""
	}
}

// genLoadVal emits the instruction that loads opd's value into role, at
// opd's own width. String-literal LitOpds load their address (leaq)
// rather than an immediate, since their Value field is unused text
// (spec.md §4.4 only spells out the int/bool immediate case).
func genLoadVal(w io.Writer, opd tac.Operand, role string, pf *procFrame) {
	if lit, ok := opd.(*tac.LitOpd); ok {
		if lit.Label != "" {
			fmt.Fprintf(w, "leaq %s(%%rip), %s\n", lit.Label, reg(role, 64))
			return
		}
		fmt.Fprintf(w, "%s $%d, %s\n", movOp(lit.Wid), lit.Value, reg(role, lit.Wid))
		return
	}
	fmt.Fprintf(w, "%s %s, %s\n", movOp(opd.Width()), memLoc(opd, pf), reg(role, opd.Width()))
}

// genStoreVal emits the inverse move, from role back into opd's slot.
func genStoreVal(w io.Writer, opd tac.Operand, role string, pf *procFrame) {
	fmt.Fprintf(w, "%s %s, %s\n", movOp(opd.Width()), reg(role, opd.Width()), memLoc(opd, pf))
}
