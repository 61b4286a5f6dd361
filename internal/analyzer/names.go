// Package analyzer implements the two tightly coupled passes that sit
// between parsing and TAC lowering: name analysis (this file) and type
// analysis (typecheck.go). Both walk the AST with a direct recursive type
// switch rather than ast.Visitor double-dispatch — the same style the
// reference inference pass in the teacher repo uses for its own
// tree-walking evaluator, carrying an explicit context struct instead of
// package state.
package analyzer

import (
	"github.com/dmars-lang/dmarsc/internal/ast"
	"github.com/dmars-lang/dmarsc/internal/diagnostics"
	"github.com/dmars-lang/dmarsc/internal/symbols"
	"github.com/dmars-lang/dmarsc/internal/types"
)

type nameResolver struct {
	table *symbols.Table
	ctx   *types.Context
	rep   *diagnostics.Reporter
	ok    bool
}

// ResolveNames walks prog, attaching a *symbols.Symbol to every resolving
// ID and validating every declared type, per spec.md §4.1 / the
// reference name_analysis.cpp. It returns false iff at least one name
// diagnostic was reported to rep; the pipeline halts before type
// analysis in that case.
func ResolveNames(prog *ast.Program, ctx *types.Context, rep *diagnostics.Reporter) bool {
	r := &nameResolver{table: symbols.NewTable(), ctx: ctx, rep: rep, ok: true}
	r.table.Enter()
	for _, decl := range prog.Globals {
		r.resolveDecl(decl)
	}
	r.table.Leave()
	return r.ok
}

func (r *nameResolver) fail() { r.ok = false }

func (r *nameResolver) resolveDecl(d ast.Decl) {
	switch n := d.(type) {
	case *ast.VarDecl:
		r.resolveVarDecl(n)
	case *ast.FnDecl:
		r.resolveFnDecl(n)
	default:
		diagnostics.Fatalf("resolveDecl: unhandled decl %T", d)
	}
}

// resolveVarDecl follows the reference VarDeclNode::nameAnalysis order
// exactly: visit the type node, evaluate its validity, name-analyze the
// initializer regardless of that result (so nested errors still surface),
// then check for a same-scope clash, and only insert/bind if every check
// passed.
func (r *nameResolver) resolveVarDecl(n *ast.VarDecl) {
	declType := resolveTypeNode(n.Type, r.ctx)
	validType := declType.ValidVarType()
	if !validType {
		r.rep.Report(n.ID.Pos(), "Invalid type in declaration")
		r.fail()
	}

	if n.Init != nil {
		r.resolveExp(n.Init)
	}

	if r.table.Clash(n.ID.Name) {
		r.rep.Report(n.ID.Pos(), "Multiply declared identifier")
		r.fail()
		return
	}
	if !validType {
		return
	}

	storage := symbols.VarStorage
	if n.IsFormal {
		storage = symbols.FormalStorage
	}
	sym := &symbols.Symbol{Name: n.ID.Name, Type: declType, Storage: storage}
	r.table.Insert(sym)
	n.ID.AttachSymbol(sym)
}

// resolveFnDecl mirrors FnDeclNode::nameAnalysis: hold the enclosing
// scope, open the body scope, check for and report a clash against the
// *enclosing* scope, and — if clean — insert the function symbol into
// that enclosing scope before analyzing formals or body, so recursive
// calls resolve.
func (r *nameResolver) resolveFnDecl(n *ast.FnDecl) {
	retType := resolveTypeNode(n.RetType, r.ctx)

	r.table.Enter()
	defer r.table.Leave()

	validName := true
	if r.table.ClashInScopeAt(1, n.ID.Name) {
		r.rep.Report(n.ID.Pos(), "Multiply declared identifier")
		r.fail()
		validName = false
	}

	formalTypes := make([]types.Type, len(n.Formals))
	for i, formal := range n.Formals {
		r.resolveVarDecl(formal)
		formalTypes[i] = resolveTypeNode(formal.Type, r.ctx)
	}
	fnType := r.ctx.Fn(r.ctx.TypeList(formalTypes), retType)

	if validName {
		sym := &symbols.Symbol{Name: n.ID.Name, Type: fnType, Storage: symbols.FnStorage}
		r.table.InsertInScopeAt(1, sym)
		n.ID.AttachSymbol(sym)
	}

	for _, stmt := range n.Body {
		r.resolveStmt(stmt)
	}
}

func (r *nameResolver) resolveStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.VarDecl:
		r.resolveVarDecl(n)
	case *ast.AssignStmt:
		r.resolveExp(n.Dst)
		r.resolveExp(n.Src)
	case *ast.TakeStmt:
		r.resolveExp(n.Dst)
	case *ast.GiveStmt:
		r.resolveExp(n.Src)
	case *ast.ExitStmt:
		// trivially succeeds
	case *ast.PostIncStmt:
		r.resolveExp(n.Loc)
	case *ast.PostDecStmt:
		r.resolveExp(n.Loc)
	case *ast.IfStmt:
		r.resolveExp(n.Cond)
		r.table.Enter()
		for _, stmt := range n.Body {
			r.resolveStmt(stmt)
		}
		r.table.Leave()
	case *ast.IfElseStmt:
		r.resolveExp(n.Cond)
		r.table.Enter()
		for _, stmt := range n.BodyTrue {
			r.resolveStmt(stmt)
		}
		r.table.Leave()
		r.table.Enter()
		for _, stmt := range n.BodyFalse {
			r.resolveStmt(stmt)
		}
		r.table.Leave()
	case *ast.WhileStmt:
		r.resolveExp(n.Cond)
		r.table.Enter()
		for _, stmt := range n.Body {
			r.resolveStmt(stmt)
		}
		r.table.Leave()
	case *ast.ReturnStmt:
		if n.Exp != nil {
			r.resolveExp(n.Exp)
		}
	case *ast.CallStmt:
		r.resolveExp(n.Call)
	default:
		diagnostics.Fatalf("resolveStmt: unhandled stmt %T", s)
	}
}

func (r *nameResolver) resolveExp(e ast.Exp) {
	switch n := e.(type) {
	case *ast.ID:
		sym := r.table.Find(n.Name)
		if sym == nil {
			r.rep.Report(n.Pos(), "Undeclared identifier")
			r.fail()
			return
		}
		n.AttachSymbol(sym)
	case *ast.IntLit, *ast.StrLit, *ast.True, *ast.False, *ast.Magic:
		// literals succeed trivially
	case *ast.UnaryExp:
		r.resolveExp(n.Exp)
	case *ast.BinaryExp:
		r.resolveExp(n.LHS)
		r.resolveExp(n.RHS)
	case *ast.CallExp:
		r.resolveExp(n.Callee)
		for _, arg := range n.Args {
			r.resolveExp(arg)
		}
	default:
		diagnostics.Fatalf("resolveExp: unhandled exp %T", e)
	}
}
