package tac

import (
	"fmt"
	"io"
)

// Dump writes a readable textual rendering of prog for the `-a` driver
// mode: one line per quad, labels inline before the quad they anchor.
// This is a diagnostic format, not a format fed back into any later
// pass — codegen walks the *Program directly, never this text.
func Dump(w io.Writer, prog *Program) {
	for _, q := range prog.Init {
		dumpQuad(w, q)
	}
	for _, proc := range prog.Procedures {
		fmt.Fprintf(w, "proc %s:\n", proc.Name)
		for _, q := range proc.Body {
			dumpQuad(w, q)
		}
	}
}

func dumpQuad(w io.Writer, q Quad) {
	for _, lbl := range q.Labels() {
		fmt.Fprintf(w, "%s:\n", lbl)
	}
	fmt.Fprintf(w, "    %s\n", quadText(q))
}

func quadText(q Quad) string {
	switch n := q.(type) {
	case *BinOpQuad:
		return fmt.Sprintf("%s := %s %s %s", opnd(n.Dst), opnd(n.Src1), binOpText[n.Op], opnd(n.Src2))
	case *UnaryOpQuad:
		return fmt.Sprintf("%s := %s%s", opnd(n.Dst), unaryOpText[n.Op], opnd(n.Src))
	case *AssignQuad:
		return fmt.Sprintf("%s := %s", opnd(n.Dst), opnd(n.Src))
	case *ReadQuad:
		return fmt.Sprintf("%s := take(%s)", opnd(n.Dst), n.DstType)
	case *WriteQuad:
		return fmt.Sprintf("give(%s: %s)", opnd(n.Src), n.SrcType)
	case *GotoQuad:
		return fmt.Sprintf("goto %s", n.Target)
	case *IfzQuad:
		return fmt.Sprintf("ifz %s goto %s", opnd(n.Cond), n.Target)
	case *CallQuad:
		return fmt.Sprintf("call fun_%s", n.Callee)
	case *SetArgQuad:
		return fmt.Sprintf("setarg %d, %s", n.Index, opnd(n.Operand))
	case *GetArgQuad:
		return fmt.Sprintf("getarg %d, %s", n.Index, opnd(n.Operand))
	case *SetRetQuad:
		return fmt.Sprintf("setret %s", opnd(n.Operand))
	case *GetRetQuad:
		return fmt.Sprintf("getret %s", opnd(n.Operand))
	case *EnterQuad:
		return fmt.Sprintf("enter %s", n.Procedure)
	case *LeaveQuad:
		return fmt.Sprintf("leave %s", n.Procedure)
	case *ExitQuad:
		return "exit"
	case *MagicQuad:
		return "magic"
	case *NopQuad:
		return "nop"
	case *LocQuad:
		return "loc"
	default:
		return fmt.Sprintf("<unknown quad %T>", q)
	}
}

var binOpText = map[BinOp]string{
	ADD: "+", SUB: "-", MULT: "*", DIV: "/",
	EQ: "==", NEQ: "!=", LT: "<", LTE: "<=", GT: ">", GTE: ">=",
	AND: "&&", OR: "||",
}

var unaryOpText = map[UnaryOp]string{
	NEG: "-",
	NOT: "!",
}

func opnd(o Operand) string {
	switch v := o.(type) {
	case *SymOpd:
		if v.Global {
			return "gbl_" + v.Symbol.Name
		}
		return v.Symbol.Name
	case *AuxOpd:
		return v.Name
	case *LitOpd:
		if v.Label != "" {
			return v.Label
		}
		if v.Str != "" {
			return fmt.Sprintf("%q", v.Str)
		}
		return fmt.Sprintf("%d", v.Value)
	case *AddrOpd:
		return "&" + opnd(v.Base)
	default:
		return fmt.Sprintf("<unknown operand %T>", o)
	}
}
