package tac

import (
	"fmt"

	"github.com/dmars-lang/dmarsc/internal/ast"
	"github.com/dmars-lang/dmarsc/internal/diagnostics"
	"github.com/dmars-lang/dmarsc/internal/symbols"
)

// flatten lowers e to an Operand, emitting whatever quads are necessary
// into the current procedure (spec.md §4.3's "flatten" operation).
// Leaves return themselves; every compound expression allocates a fresh
// AuxOpd to hold its result.
func (l *lowerer) flatten(e ast.Exp) Operand {
	switch n := e.(type) {
	case *ast.ID:
		return l.symOpd(n.Symbol.(*symbols.Symbol))
	case *ast.IntLit:
		return &LitOpd{Value: n.Value, Wid: 64}
	case *ast.StrLit:
		l.strNum++
		label := fmt.Sprintf("str_%d", l.strNum)
		l.prog.Strings = append(l.prog.Strings, StringLiteral{Label: label, Value: n.Value})
		return &LitOpd{Str: n.Value, Label: label, Wid: 64}
	case *ast.True:
		return &LitOpd{Value: 1, Wid: 8}
	case *ast.False:
		return &LitOpd{Value: 0, Wid: 8}
	case *ast.Magic:
		diagnostics.Fatalf("tac: Magic reached lowering")
		return nil
	case *ast.UnaryExp:
		return l.flattenUnary(n)
	case *ast.BinaryExp:
		return l.flattenBinary(n)
	case *ast.CallExp:
		return l.flattenCall(n)
	default:
		diagnostics.Fatalf("tac: flatten: unhandled exp %T", e)
		return nil
	}
}

func (l *lowerer) flattenUnary(n *ast.UnaryExp) Operand {
	src := l.flatten(n.Exp)
	width := src.Width()
	op := NEG
	if n.Op == ast.Not {
		op = NOT
	}
	dst := l.newTemp(width)
	l.emit(&UnaryOpQuad{Op: op, Src: src, Dst: dst, Width: width})
	return dst
}

var binOpTable = map[ast.BinOp]BinOp{
	ast.Plus:       ADD,
	ast.Minus:      SUB,
	ast.Times:      MULT,
	ast.Divide:     DIV,
	ast.And:        AND,
	ast.Or:         OR,
	ast.Equals:     EQ,
	ast.NotEquals:  NEQ,
	ast.Less:       LT,
	ast.LessEq:     LTE,
	ast.Greater:    GT,
	ast.GreaterEq:  GTE,
}

// resultWidth reports the width of a BinaryExp's own *result*: arithmetic
// stays 64-bit, everything else (logical, equality, relational) is a
// boolean and is 8-bit, per spec.md §4.3.
func resultWidth(op ast.BinOp) int {
	switch op {
	case ast.Plus, ast.Minus, ast.Times, ast.Divide:
		return 64
	default:
		return 8
	}
}

func (l *lowerer) flattenBinary(n *ast.BinaryExp) Operand {
	o1 := l.flatten(n.LHS)
	o2 := l.flatten(n.RHS)

	// Operand width for the comparison/op itself: string equality
	// compares 64-bit pointers; bool operands compare at 8-bit; int
	// operands (arithmetic or relational) at 64-bit. Both operands share
	// a type by the time a typed tree reaches lowering, so either side's
	// width suffices.
	opWidth := o1.Width()

	dst := l.newTemp(resultWidth(n.Op))
	l.emit(&BinOpQuad{Op: binOpTable[n.Op], Src1: o1, Src2: o2, Dst: dst, Width: opWidth})
	return dst
}

func (l *lowerer) flattenCall(n *ast.CallExp) Operand {
	l.lowerCallArgs(n.Args)
	l.emit(&CallQuad{Callee: n.Callee.Name, ArgCount: len(n.Args)})

	retType := l.typeOf(n)
	// A call used for its value always yields a temporary holding the
	// return; CallStmt (a void-discarding use) never reaches flatten.
	dst := l.newTemp(widthOf(retType))
	l.emit(&GetRetQuad{Operand: dst})
	return dst
}

// lowerCallArgs evaluates args left to right (side effects happen in
// source order) and then emits SetArgQuads for them: the first six in
// ascending index order (they land in fixed argument registers, order
// doesn't matter), the rest in descending index order so that emitting
// them as a sequence of pushes, in quad order, pushes the stack
// arguments right to left — matching spec.md §4.4's calling convention.
func (l *lowerer) lowerCallArgs(args []ast.Exp) {
	operands := make([]Operand, len(args))
	for i, arg := range args {
		operands[i] = l.flatten(arg)
	}
	n := len(operands)
	regCount := n
	if regCount > 6 {
		regCount = 6
	}
	for i := 0; i < regCount; i++ {
		l.emit(&SetArgQuad{Index: i + 1, Operand: operands[i]})
	}
	for i := n - 1; i >= 6; i-- {
		l.emit(&SetArgQuad{Index: i + 1, Operand: operands[i]})
	}
}
