package tac

import (
	"github.com/dmars-lang/dmarsc/internal/ast"
	"github.com/dmars-lang/dmarsc/internal/diagnostics"
	"github.com/dmars-lang/dmarsc/internal/symbols"
)

func (l *lowerer) lowerStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.VarDecl:
		l.lowerLocalVarDecl(n)
	case *ast.AssignStmt:
		l.lowerAssign(n.Dst, n.Src)
	case *ast.TakeStmt:
		l.lowerTake(n)
	case *ast.GiveStmt:
		l.lowerGive(n)
	case *ast.ExitStmt:
		l.emit(&ExitQuad{})
	case *ast.PostIncStmt:
		l.lowerPostOp(n.Loc, ADD)
	case *ast.PostDecStmt:
		l.lowerPostOp(n.Loc, SUB)
	case *ast.IfStmt:
		l.lowerIf(n)
	case *ast.IfElseStmt:
		l.lowerIfElse(n)
	case *ast.WhileStmt:
		l.lowerWhile(n)
	case *ast.ReturnStmt:
		l.lowerReturn(n)
	case *ast.CallStmt:
		l.lowerCallStmt(n)
	default:
		diagnostics.Fatalf("tac: lowerStmt: unhandled stmt %T", s)
	}
}

// lowerLocalVarDecl handles a VarDecl appearing inside a function body
// (*ast.VarDecl also satisfies ast.Stmt, so local declarations sit
// directly in statement lists and reach this through lowerStmt).
func (l *lowerer) lowerLocalVarDecl(n *ast.VarDecl) {
	sym := n.ID.Symbol.(*symbols.Symbol)
	dst := l.symOpd(sym)
	if n.Init == nil {
		return
	}
	src := l.flatten(n.Init)
	l.emit(&AssignQuad{Src: src, Dst: dst})
}

func (l *lowerer) lowerAssign(dstExp, srcExp ast.Exp) {
	dstID := dstExp.(*ast.ID)
	dst := l.symOpd(dstID.Symbol.(*symbols.Symbol))
	src := l.flatten(srcExp)
	l.emit(&AssignQuad{Src: src, Dst: dst})
}

func (l *lowerer) lowerTake(n *ast.TakeStmt) {
	dstID := n.Dst.(*ast.ID)
	dst := l.symOpd(dstID.Symbol.(*symbols.Symbol))
	l.emit(&ReadQuad{Dst: dst, DstType: l.typeOf(n.Dst)})
}

func (l *lowerer) lowerGive(n *ast.GiveStmt) {
	src := l.flatten(n.Src)
	l.emit(&WriteQuad{Src: src, SrcType: l.typeOf(n.Src)})
}

func (l *lowerer) lowerPostOp(locExp ast.Exp, op BinOp) {
	id := locExp.(*ast.ID)
	opd := l.symOpd(id.Symbol.(*symbols.Symbol))
	one := &LitOpd{Value: 1, Wid: 64}
	tmp := l.newTemp(64)
	l.emit(&BinOpQuad{Op: op, Src1: opd, Src2: one, Dst: tmp, Width: 64})
	l.emit(&AssignQuad{Src: tmp, Dst: opd})
}

func (l *lowerer) lowerIf(n *ast.IfStmt) {
	cond := l.flatten(n.Cond)
	lEnd := l.newLabel()
	l.emit(&IfzQuad{Cond: cond, Target: lEnd})
	for _, stmt := range n.Body {
		l.lowerStmt(stmt)
	}
	l.emitLabeled(&NopQuad{}, lEnd)
}

func (l *lowerer) lowerIfElse(n *ast.IfElseStmt) {
	cond := l.flatten(n.Cond)
	lElse := l.newLabel()
	lEnd := l.newLabel()
	l.emit(&IfzQuad{Cond: cond, Target: lElse})
	for _, stmt := range n.BodyTrue {
		l.lowerStmt(stmt)
	}
	l.emit(&GotoQuad{Target: lEnd})
	l.emitLabeled(&NopQuad{}, lElse)
	for _, stmt := range n.BodyFalse {
		l.lowerStmt(stmt)
	}
	l.emitLabeled(&NopQuad{}, lEnd)
}

func (l *lowerer) lowerWhile(n *ast.WhileStmt) {
	lHead := l.newLabel()
	lEnd := l.newLabel()
	cond := l.flattenLabeled(n.Cond, lHead)
	l.emit(&IfzQuad{Cond: cond, Target: lEnd})
	for _, stmt := range n.Body {
		l.lowerStmt(stmt)
	}
	l.emit(&GotoQuad{Target: lHead})
	l.emitLabeled(&NopQuad{}, lEnd)
}

// flattenLabeled flattens cond but attaches lbl to the first quad it
// emits (or, for a bare leaf operand that emits nothing, to a Nop so the
// loop head always has a concrete jump target).
func (l *lowerer) flattenLabeled(cond ast.Exp, lbl Label) Operand {
	bodyStart := len(l.proc.Body)
	opd := l.flatten(cond)
	if len(l.proc.Body) == bodyStart {
		l.emitLabeled(&NopQuad{}, lbl)
	} else {
		l.proc.Body[bodyStart].AddLabel(lbl)
	}
	return opd
}

func (l *lowerer) lowerReturn(n *ast.ReturnStmt) {
	if n.Exp != nil {
		v := l.flatten(n.Exp)
		l.emit(&SetRetQuad{Operand: v})
	}
	l.emit(&GotoQuad{Target: l.epilogueLabel()})
}

func (l *lowerer) epilogueLabel() Label {
	return Label("lbl_leave_" + l.proc.Name)
}

func (l *lowerer) lowerCallStmt(n *ast.CallStmt) {
	l.lowerCallArgs(n.Call.Args)
	l.emit(&CallQuad{Callee: n.Call.Callee.Name, ArgCount: len(n.Call.Args)})
}
