package codegen

import (
	"fmt"
	"io"

	"github.com/dmars-lang/dmarsc/internal/config"
	"github.com/dmars-lang/dmarsc/internal/diagnostics"
	"github.com/dmars-lang/dmarsc/internal/tac"
)

var setccFor = map[tac.BinOp]string{
	tac.EQ:  "sete",
	tac.NEQ: "setne",
	tac.LT:  "setl",
	tac.LTE: "setle",
	tac.GT:  "setg",
	tac.GTE: "setge",
}

func isComparison(op tac.BinOp) bool {
	_, ok := setccFor[op]
	return ok
}

// emitQuad writes one quad's labels and body within the procedure frame
// pf (lowering has already spliced Program.Init into main's body, so
// every quad reaching emission belongs to some procedure's frame).
func emitQuad(w io.Writer, q tac.Quad, pf *procFrame, rt config.Runtime) {
	for _, lbl := range q.Labels() {
		fmt.Fprintf(w, "%s:\n", lbl)
	}

	switch n := q.(type) {
	case *tac.BinOpQuad:
		emitBinOp(w, n, pf)
	case *tac.UnaryOpQuad:
		emitUnaryOp(w, n, pf)
	case *tac.AssignQuad:
		genLoadVal(w, n.Src, regA, pf)
		genStoreVal(w, n.Dst, regA, pf)
	case *tac.ReadQuad:
		emitRead(w, n, rt)
		genStoreVal(w, n.Dst, regA, pf)
	case *tac.WriteQuad:
		genLoadVal(w, n.Src, regDI, pf)
		emitWrite(w, n, rt)
	case *tac.GotoQuad:
		fmt.Fprintf(w, "jmp %s\n", n.Target)
	case *tac.IfzQuad:
		genLoadVal(w, n.Cond, regDI, pf)
		fmt.Fprintf(w, "cmpq $0, %%rdi\n")
		fmt.Fprintf(w, "je %s\n", n.Target)
	case *tac.CallQuad:
		emitCall(w, n)
	case *tac.EnterQuad:
		fmt.Fprintf(w, "pushq %%rbp\n")
		fmt.Fprintf(w, "movq %%rsp, %%rbp\n")
		fmt.Fprintf(w, "addq $16, %%rbp\n")
		fmt.Fprintf(w, "subq $%d, %%rsp\n", pf.size)
	case *tac.LeaveQuad:
		fmt.Fprintf(w, "addq $%d, %%rsp\n", pf.size)
		fmt.Fprintf(w, "popq %%rbp\n")
		fmt.Fprintf(w, "retq\n")
	case *tac.SetArgQuad:
		emitSetArg(w, n, pf)
	case *tac.GetArgQuad:
		emitGetArg(w, n, pf)
	case *tac.SetRetQuad:
		genLoadVal(w, n.Operand, regA, pf)
	case *tac.GetRetQuad:
		genStoreVal(w, n.Operand, regA, pf)
	case *tac.ExitQuad:
		fmt.Fprintf(w, "call %s\n", rt.Exit)
	case *tac.MagicQuad:
		fmt.Fprintf(w, "callq %s\n", rt.Magic)
	case *tac.NopQuad:
		fmt.Fprintf(w, "nop\n")
	case *tac.LocQuad:
		// reserved, never emitted by the lowering pass.
	default:
		diagnostics.Fatalf("codegen: emitQuad: unhandled quad %T", q)
	}
}

func emitBinOp(w io.Writer, q *tac.BinOpQuad, pf *procFrame) {
	width := q.Width
	genLoadVal(w, q.Src1, regA, pf)
	genLoadVal(w, q.Src2, regB, pf)

	switch {
	case q.Op == tac.ADD:
		fmt.Fprintf(w, "add%s %s, %s\n", sfx(width), reg(regB, width), reg(regA, width))
	case q.Op == tac.SUB:
		fmt.Fprintf(w, "sub%s %s, %s\n", sfx(width), reg(regB, width), reg(regA, width))
	case q.Op == tac.MULT:
		fmt.Fprintf(w, "imul%s %s\n", sfx(width), reg(regB, width))
	case q.Op == tac.DIV:
		if width == 64 {
			fmt.Fprintf(w, "cqto\n")
		}
		fmt.Fprintf(w, "idiv%s %s\n", sfx(width), reg(regB, width))
	case q.Op == tac.AND:
		fmt.Fprintf(w, "and%s %s, %s\n", sfx(width), reg(regB, width), reg(regA, width))
	case q.Op == tac.OR:
		fmt.Fprintf(w, "or%s %s, %s\n", sfx(width), reg(regB, width), reg(regA, width))
	case isComparison(q.Op):
		// Spec'd as an unconditional cmpq regardless of operand width,
		// matching the reference compiler's comparison sequence exactly.
		fmt.Fprintf(w, "cmpq %s, %s\n", reg(regB, width), reg(regA, width))
		fmt.Fprintf(w, "%s %s\n", setccFor[q.Op], reg(regA, 8))
	default:
		diagnostics.Fatalf("codegen: emitBinOp: unhandled op %v", q.Op)
	}
	genStoreVal(w, q.Dst, regA, pf)
}

func emitUnaryOp(w io.Writer, q *tac.UnaryOpQuad, pf *procFrame) {
	width := q.Width
	genLoadVal(w, q.Src, regA, pf)
	switch q.Op {
	case tac.NEG:
		fmt.Fprintf(w, "neg%s %s\n", sfx(width), reg(regA, width))
	case tac.NOT:
		fmt.Fprintf(w, "cmpq $0, %s\n", reg(regA, width))
		fmt.Fprintf(w, "setz %s\n", reg(regA, 8))
	default:
		diagnostics.Fatalf("codegen: emitUnaryOp: unhandled op %v", q.Op)
	}
	genStoreVal(w, q.Dst, regA, pf)
}

func emitRead(w io.Writer, q *tac.ReadQuad, rt config.Runtime) {
	switch {
	case isIntType(q.DstType):
		fmt.Fprintf(w, "callq %s\n", rt.GetInt)
	case isBoolType(q.DstType):
		fmt.Fprintf(w, "callq %s\n", rt.GetBool)
	default:
		diagnostics.Fatalf("codegen: take statement with non-int/bool destination reached emission")
	}
}

func emitWrite(w io.Writer, q *tac.WriteQuad, rt config.Runtime) {
	switch {
	case isIntType(q.SrcType):
		fmt.Fprintf(w, "callq %s\n", rt.PrintInt)
	case isStringType(q.SrcType):
		fmt.Fprintf(w, "callq %s\n", rt.PrintString)
	case isBoolType(q.SrcType):
		fmt.Fprintf(w, "callq %s\n", rt.PrintBool)
	default:
		diagnostics.Fatalf("codegen: give statement with non-printable source reached emission")
	}
}

func emitCall(w io.Writer, q *tac.CallQuad) {
	if q.ArgCount >= 7 && q.ArgCount%2 != 0 {
		fmt.Fprintf(w, "pushq $0\n")
	}
	fmt.Fprintf(w, "callq fun_%s\n", q.Callee)
}

func emitSetArg(w io.Writer, q *tac.SetArgQuad, pf *procFrame) {
	if q.Index <= 6 {
		genLoadVal(w, q.Operand, argRoleFor(q.Index), pf)
		return
	}
	genLoadVal(w, q.Operand, regA, pf)
	fmt.Fprintf(w, "pushq %%rax\n")
}

func emitGetArg(w io.Writer, q *tac.GetArgQuad, pf *procFrame) {
	if q.Index <= 6 {
		fmt.Fprintf(w, "%s %s, %s\n", movOp(q.Operand.Width()), argRegisters64[q.Index-1], memLoc(q.Operand, pf))
		return
	}
	// The caller pushed formals beyond the sixth right to left (highest
	// index pushed first), so the 7th formal sits closest to %rbp and
	// each higher index sits 8 bytes further out. A lone alignment push
	// (when the total formal count is odd) sits below all of them and
	// shifts every stack formal's offset up by one word.
	stackOffset := 8 * (q.Index - 7)
	if pf.numFormals%2 != 0 {
		stackOffset += 8
	}
	fmt.Fprintf(w, "movq %d(%%rbp), %%rbx\n", stackOffset)
	fmt.Fprintf(w, "%s %s, %s\n", movOp(q.Operand.Width()), reg(regB, q.Operand.Width()), memLoc(q.Operand, pf))
}

func argRoleFor(index int) string {
	switch index {
	case 1:
		return regDI
	case 2:
		return regSI
	case 3:
		return regD
	case 4:
		return regC
	case 5:
		return regR8
	case 6:
		return regR9
	default:
		diagnostics.Fatalf("codegen: argRoleFor: index %d has no register role", index)
		return ""
	}
}
