// Package unparse renders an *ast.Program back to Drewno Mars source text.
// It implements ast.Visitor directly (one pass, no intermediate doc tree),
// the same shape as the reference unparse.cpp's per-node-kind methods, with
// the indentation folded into each visit instead of threaded as an explicit
// parameter.
package unparse

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dmars-lang/dmarsc/internal/ast"
	"github.com/dmars-lang/dmarsc/internal/symbols"
)

// Printer walks a tree and writes its source form to an io.Writer.
type Printer struct {
	w      io.Writer
	indent int
}

// New returns a Printer that writes to w.
func New(w io.Writer) *Printer { return &Printer{w: w} }

// Program unparses the whole tree. Each ID that carries an attached
// symbol is printed with its resolved type (name{type}); an ID whose
// Symbol is nil is printed bare. Both the -p and -n driver modes run
// name analysis first, so resolved IDs are annotated in either dump.
func Program(w io.Writer, prog *ast.Program) {
	p := New(w)
	prog.Accept(p)
}

// String renders n to a string, for callers that don't have a natural
// io.Writer (e.g. error messages that want the offending subtree).
func String(n ast.Node) string {
	var buf bytes.Buffer
	n.Accept(New(&buf))
	return buf.String()
}

func (p *Printer) write(s string) { fmt.Fprint(p.w, s) }

func (p *Printer) doIndent() {
	for i := 0; i < p.indent; i++ {
		p.write("    ")
	}
}

// ---- Program / declarations -------------------------------------------

func (p *Printer) VisitProgram(n *ast.Program) {
	for _, decl := range n.Globals {
		decl.Accept(p)
	}
}

func (p *Printer) VisitVarDecl(n *ast.VarDecl) {
	p.doIndent()
	n.ID.Accept(p)
	p.write(" : ")
	n.Type.Accept(p)
	if n.Init != nil {
		p.write(" = ")
		n.Init.Accept(p)
	}
	p.write(";\n")
}

func (p *Printer) VisitFnDecl(n *ast.FnDecl) {
	p.doIndent()
	n.ID.Accept(p)
	p.write(" : (")
	for i, formal := range n.Formals {
		if i > 0 {
			p.write(", ")
		}
		formal.ID.Accept(p)
		p.write(" : ")
		formal.Type.Accept(p)
	}
	p.write(") ")
	n.RetType.Accept(p)
	p.write(" {\n")
	p.indent++
	for _, stmt := range n.Body {
		stmt.Accept(p)
	}
	p.indent--
	p.doIndent()
	p.write("}\n")
}

// ---- Statements ---------------------------------------------------------

func (p *Printer) VisitAssignStmt(n *ast.AssignStmt) {
	p.doIndent()
	n.Dst.Accept(p)
	p.write(" = ")
	n.Src.Accept(p)
	p.write(";\n")
}

func (p *Printer) VisitTakeStmt(n *ast.TakeStmt) {
	p.doIndent()
	p.write("take ")
	n.Dst.Accept(p)
	p.write(";\n")
}

func (p *Printer) VisitGiveStmt(n *ast.GiveStmt) {
	p.doIndent()
	p.write("give ")
	n.Src.Accept(p)
	p.write(";\n")
}

func (p *Printer) VisitExitStmt(n *ast.ExitStmt) {
	p.doIndent()
	p.write("exit;\n")
}

func (p *Printer) VisitPostIncStmt(n *ast.PostIncStmt) {
	p.doIndent()
	n.Loc.Accept(p)
	p.write("++;\n")
}

func (p *Printer) VisitPostDecStmt(n *ast.PostDecStmt) {
	p.doIndent()
	n.Loc.Accept(p)
	p.write("--;\n")
}

func (p *Printer) VisitIfStmt(n *ast.IfStmt) {
	p.doIndent()
	p.write("if (")
	n.Cond.Accept(p)
	p.write(") {\n")
	p.indent++
	for _, stmt := range n.Body {
		stmt.Accept(p)
	}
	p.indent--
	p.doIndent()
	p.write("}\n")
}

func (p *Printer) VisitIfElseStmt(n *ast.IfElseStmt) {
	p.doIndent()
	p.write("if (")
	n.Cond.Accept(p)
	p.write(") {\n")
	p.indent++
	for _, stmt := range n.BodyTrue {
		stmt.Accept(p)
	}
	p.indent--
	p.doIndent()
	p.write("} else {\n")
	p.indent++
	for _, stmt := range n.BodyFalse {
		stmt.Accept(p)
	}
	p.indent--
	p.doIndent()
	p.write("}\n")
}

func (p *Printer) VisitWhileStmt(n *ast.WhileStmt) {
	p.doIndent()
	p.write("while (")
	n.Cond.Accept(p)
	p.write(") {\n")
	p.indent++
	for _, stmt := range n.Body {
		stmt.Accept(p)
	}
	p.indent--
	p.doIndent()
	p.write("}\n")
}

func (p *Printer) VisitReturnStmt(n *ast.ReturnStmt) {
	p.doIndent()
	p.write("return")
	if n.Exp != nil {
		p.write(" ")
		n.Exp.Accept(p)
	}
	p.write(";\n")
}

func (p *Printer) VisitCallStmt(n *ast.CallStmt) {
	p.doIndent()
	n.Call.Accept(p)
	p.write(";\n")
}

// ---- Expressions --------------------------------------------------------

// unparseNested wraps an expression in parentheses: binary operands are
// always parenthesized when they themselves are binary or unary, matching
// the reference ExpNode::unparseNested rather than computing precedence.
func (p *Printer) unparseNested(e ast.Exp) {
	switch e.(type) {
	case *ast.BinaryExp, *ast.UnaryExp:
		p.write("(")
		e.Accept(p)
		p.write(")")
	default:
		e.Accept(p)
	}
}

func (p *Printer) VisitID(n *ast.ID) {
	p.write(n.Name)
	if n.Symbol == nil {
		return
	}
	if sym, ok := n.Symbol.(*symbols.Symbol); ok {
		p.write("{")
		p.write(sym.Type.String())
		p.write("}")
	}
}

func (p *Printer) VisitIntLit(n *ast.IntLit) {
	p.write(fmt.Sprintf("%d", n.Value))
}

func (p *Printer) VisitStrLit(n *ast.StrLit) {
	p.write(fmt.Sprintf("%q", n.Value))
}

func (p *Printer) VisitTrue(n *ast.True)   { p.write("true") }
func (p *Printer) VisitFalse(n *ast.False) { p.write("false") }
func (p *Printer) VisitMagic(n *ast.Magic) { p.write("magic") }

func (p *Printer) VisitUnaryExp(n *ast.UnaryExp) {
	switch n.Op {
	case ast.Neg:
		p.write("-")
	case ast.Not:
		p.write("!")
	}
	p.unparseNested(n.Exp)
}

var binOpText = map[ast.BinOp]string{
	ast.Plus:      "+",
	ast.Minus:     "-",
	ast.Times:     "*",
	ast.Divide:    "/",
	ast.And:       "&&",
	ast.Or:        "||",
	ast.Equals:    "==",
	ast.NotEquals: "!=",
	ast.Less:      "<",
	ast.LessEq:    "<=",
	ast.Greater:   ">",
	ast.GreaterEq: ">=",
}

func (p *Printer) VisitBinaryExp(n *ast.BinaryExp) {
	p.unparseNested(n.LHS)
	p.write(" ")
	p.write(binOpText[n.Op])
	p.write(" ")
	p.unparseNested(n.RHS)
}

func (p *Printer) VisitCallExp(n *ast.CallExp) {
	n.Callee.Accept(p)
	p.write("(")
	for i, arg := range n.Args {
		if i > 0 {
			p.write(", ")
		}
		arg.Accept(p)
	}
	p.write(")")
}

// ---- Types ---------------------------------------------------------------

func (p *Printer) VisitIntType(n *ast.IntType)       { p.write("int") }
func (p *Printer) VisitBoolType(n *ast.BoolType)     { p.write("bool") }
func (p *Printer) VisitVoidType(n *ast.VoidType)     { p.write("void") }
func (p *Printer) VisitStringType(n *ast.StringType) { p.write("string") }

func (p *Printer) VisitImmutableType(n *ast.ImmutableType) {
	p.write("perfect ")
	n.Inner.Accept(p)
}
