package analyzer

import (
	"github.com/dmars-lang/dmarsc/internal/ast"
	"github.com/dmars-lang/dmarsc/internal/diagnostics"
	"github.com/dmars-lang/dmarsc/internal/symbols"
	"github.com/dmars-lang/dmarsc/internal/types"
)

// typeChecker mirrors the reference TypeAnalysis object: a node→type
// side table plus a "current function type" used only for Return
// checking, set on entering a FnDecl and cleared on exit. It never
// mutates the AST — that is name analysis's job alone (spec.md §9's
// "two-phase visitation with mutation" design note).
type typeChecker struct {
	ctx       *types.Context
	rep       *diagnostics.Reporter
	nodeTypes map[ast.Node]types.Type
	currentFn *types.Fn
	ok        bool
}

// CheckTypes walks prog, which must already have passed a successful
// ResolveNames, and returns whether it type-checks cleanly along with
// the node→type map TAC lowering consumes.
func CheckTypes(prog *ast.Program, ctx *types.Context, rep *diagnostics.Reporter) (bool, map[ast.Node]types.Type) {
	tc := &typeChecker{ctx: ctx, rep: rep, nodeTypes: make(map[ast.Node]types.Type), ok: true}
	for _, decl := range prog.Globals {
		tc.checkDecl(decl)
	}
	tc.set(prog, ctx.Void())
	return tc.ok, tc.nodeTypes
}

func (tc *typeChecker) fail()                           { tc.ok = false }
func (tc *typeChecker) set(n ast.Node, t types.Type)     { tc.nodeTypes[n] = t }
func (tc *typeChecker) typeOf(n ast.Node) types.Type {
	t, ok := tc.nodeTypes[n]
	if !ok {
		diagnostics.Fatalf("typeOf: node %T visited with no recorded type", n)
	}
	return t
}

func (tc *typeChecker) checkDecl(d ast.Decl) {
	switch n := d.(type) {
	case *ast.VarDecl:
		tc.checkVarDecl(n)
	case *ast.FnDecl:
		tc.checkFnDecl(n)
	default:
		diagnostics.Fatalf("checkDecl: unhandled decl %T", d)
	}
}

func (tc *typeChecker) checkVarDecl(n *ast.VarDecl) {
	if n.Init != nil {
		res, novelError := tc.checkAssign(n.ID, n.Init)
		if res == nil {
			tc.set(n, tc.ctx.Error())
			return
		}
		if novelError {
			tc.rep.Report(n.Pos(), "Invalid assignment operation")
			tc.fail()
			tc.set(n, tc.ctx.Error())
			return
		}
		tc.set(n, res)
		return
	}
	declType := resolveTypeNode(n.Type, tc.ctx)
	tc.set(n, declType)
}

func (tc *typeChecker) checkFnDecl(n *ast.FnDecl) {
	retType := resolveTypeNode(n.RetType, tc.ctx)
	formalTypes := make([]types.Type, len(n.Formals))
	for i, formal := range n.Formals {
		formalTypes[i] = resolveTypeNode(formal.Type, tc.ctx)
		tc.set(formal, formalTypes[i])
	}
	fnType := tc.ctx.Fn(tc.ctx.TypeList(formalTypes), retType)
	tc.set(n, fnType)

	prevFn := tc.currentFn
	tc.currentFn = fnType
	for _, stmt := range n.Body {
		tc.checkStmt(stmt)
	}
	tc.currentFn = prevFn
}

func (tc *typeChecker) checkStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.VarDecl:
		tc.checkVarDecl(n)
	case *ast.AssignStmt:
		tc.checkAssignStmt(n)
	case *ast.TakeStmt:
		tc.checkTake(n)
	case *ast.GiveStmt:
		tc.checkGive(n)
	case *ast.ExitStmt:
		tc.set(n, tc.ctx.Void())
	case *ast.PostIncStmt:
		tc.checkPostOp(n.Loc)
	case *ast.PostDecStmt:
		tc.checkPostOp(n.Loc)
	case *ast.IfStmt:
		tc.checkIf(n)
	case *ast.IfElseStmt:
		tc.checkIfElse(n)
	case *ast.WhileStmt:
		tc.checkWhile(n)
	case *ast.ReturnStmt:
		tc.checkReturn(n)
	case *ast.CallStmt:
		tc.checkExp(n.Call)
		tc.set(n, tc.ctx.Void())
	default:
		diagnostics.Fatalf("checkStmt: unhandled stmt %T", s)
	}
}

func (tc *typeChecker) checkAssignStmt(n *ast.AssignStmt) {
	res, novelError := tc.checkAssign(n.Dst, n.Src)
	if res == nil {
		tc.set(n, tc.ctx.Error())
		return
	}
	if novelError {
		tc.rep.Report(n.Pos(), "Invalid assignment operation")
		tc.fail()
		tc.set(n, tc.ctx.Error())
		return
	}
	tc.set(n, res)
}

// validAssignOpd reports whether t may appear on either side of an
// assignment: Int or Bool, or the Error sentinel (already reported,
// don't re-report). Every other type — String, Void, Fn — is invalid.
func validAssignOpd(t types.Type) bool {
	return types.IsBasic(t, types.Int) || types.IsBasic(t, types.Bool) || types.IsError(t)
}

// checkAssign implements the shared Assign/VarDecl-with-init typing rule
// (spec.md §4.2's "Assign dst = src" row), following the reference
// checkAssign exactly, including its Fn-to-Fn resolution: reported here
// as two independent "Invalid assignment operand" diagnostics rather
// than silently falling through (spec.md §9 open question (c)).
//
// Return value: (nil, _) means an operand-level error already reported
// or propagated — caller should record Error without an additional
// diagnostic. (non-nil, true) means both operands were individually
// valid but the assignment itself is ill-formed (novel "operation"
// error still to be reported by the caller, who knows its own position).
// (non-nil, false) is success, with the returned type the statement's
// result (Void).
func (tc *typeChecker) checkAssign(dst, src ast.Exp) (types.Type, bool) {
	tc.checkExp(dst)
	tc.checkExp(src)
	dstType := tc.typeOf(dst)
	srcType := tc.typeOf(src)

	knownError := types.IsError(dstType) || types.IsError(srcType)
	validOperands := true
	if !validAssignOpd(dstType) {
		tc.rep.Report(dst.Pos(), "Invalid assignment operand")
		tc.fail()
		validOperands = false
	}
	if !validAssignOpd(srcType) {
		tc.rep.Report(src.Pos(), "Invalid assignment operand")
		tc.fail()
		validOperands = false
	}
	if !validOperands || knownError {
		return nil, false
	}

	if dstType == srcType {
		if types.AsFn(dstType) != nil {
			tc.rep.Report(dst.Pos(), "Invalid assignment operand")
			tc.rep.Report(src.Pos(), "Invalid assignment operand")
			tc.fail()
			return nil, false
		}
		return tc.ctx.Void(), false
	}

	return tc.ctx.Error(), true
}

func (tc *typeChecker) checkTake(n *ast.TakeStmt) {
	tc.checkExp(n.Dst)
	dstType := tc.typeOf(n.Dst)
	switch {
	case types.IsBasic(dstType, types.Int), types.IsBasic(dstType, types.Bool):
		tc.set(n, tc.ctx.Void())
	case types.AsFn(dstType) != nil:
		tc.rep.Report(n.Dst.Pos(), "Attempt to assign user input to function")
		tc.fail()
		tc.set(n, tc.ctx.Error())
	case types.IsError(dstType):
		tc.set(n, tc.ctx.Error())
	default:
		tc.set(n, tc.ctx.Void())
	}
}

func (tc *typeChecker) checkGive(n *ast.GiveStmt) {
	tc.checkExp(n.Src)
	srcType := tc.typeOf(n.Src)
	switch {
	case types.IsError(srcType):
		tc.set(n, tc.ctx.Error())
	case types.IsBasic(srcType, types.Void):
		tc.rep.Report(n.Src.Pos(), "Attempt to output void")
		tc.fail()
		tc.set(n, tc.ctx.Error())
	case types.AsFn(srcType) != nil:
		tc.rep.Report(n.Src.Pos(), "Attempt to output a function")
		tc.fail()
		tc.set(n, tc.ctx.Error())
	default:
		tc.set(n, tc.ctx.Void())
	}
}

func (tc *typeChecker) checkPostOp(loc ast.Exp) {
	tc.checkExp(loc)
	t := tc.typeOf(loc)
	if types.IsError(t) || types.IsBasic(t, types.Int) {
		return
	}
	tc.rep.Report(loc.Pos(), "Arithmetic operator applied to invalid operand")
	tc.fail()
}

func (tc *typeChecker) checkCond(cond ast.Exp) bool {
	tc.checkExp(cond)
	t := tc.typeOf(cond)
	if types.IsError(t) {
		return false
	}
	if !types.IsBasic(t, types.Bool) {
		tc.rep.Report(cond.Pos(), "Non-bool expression used as a condition")
		tc.fail()
		return false
	}
	return true
}

func (tc *typeChecker) checkIf(n *ast.IfStmt) {
	goodCond := tc.checkCond(n.Cond)
	for _, stmt := range n.Body {
		tc.checkStmt(stmt)
	}
	if goodCond {
		tc.set(n, tc.ctx.Void())
	} else {
		tc.set(n, tc.ctx.Error())
	}
}

func (tc *typeChecker) checkIfElse(n *ast.IfElseStmt) {
	goodCond := tc.checkCond(n.Cond)
	for _, stmt := range n.BodyTrue {
		tc.checkStmt(stmt)
	}
	for _, stmt := range n.BodyFalse {
		tc.checkStmt(stmt)
	}
	if goodCond {
		tc.set(n, tc.ctx.Void())
	} else {
		tc.set(n, tc.ctx.Error())
	}
}

func (tc *typeChecker) checkWhile(n *ast.WhileStmt) {
	goodCond := tc.checkCond(n.Cond)
	for _, stmt := range n.Body {
		tc.checkStmt(stmt)
	}
	if goodCond {
		tc.set(n, tc.ctx.Void())
	} else {
		tc.set(n, tc.ctx.Error())
	}
}

func (tc *typeChecker) checkReturn(n *ast.ReturnStmt) {
	if tc.currentFn == nil {
		diagnostics.Fatalf("checkReturn: Return outside of a function")
	}
	fnRet := tc.currentFn.Ret

	if types.IsBasic(fnRet, types.Void) {
		if n.Exp != nil {
			tc.checkExp(n.Exp)
			tc.rep.Report(n.Exp.Pos(), "Return with a value in void function")
			tc.fail()
			tc.set(n, tc.ctx.Error())
		} else {
			tc.set(n, tc.ctx.Void())
		}
		return
	}

	if n.Exp == nil {
		tc.rep.Report(n.Pos(), "Missing return value")
		tc.fail()
		tc.set(n, tc.ctx.Error())
		return
	}

	tc.checkExp(n.Exp)
	childType := tc.typeOf(n.Exp)
	if types.IsError(childType) {
		tc.set(n, tc.ctx.Error())
		return
	}
	if childType != fnRet {
		tc.rep.Report(n.Exp.Pos(), "Bad return value")
		tc.fail()
		tc.set(n, tc.ctx.Error())
		return
	}
	tc.set(n, tc.ctx.Void())
}

func (tc *typeChecker) checkExp(e ast.Exp) {
	switch n := e.(type) {
	case *ast.IntLit:
		tc.set(n, tc.ctx.Int())
	case *ast.StrLit:
		tc.set(n, tc.ctx.String())
	case *ast.True:
		tc.set(n, tc.ctx.Bool())
	case *ast.False:
		tc.set(n, tc.ctx.Bool())
	case *ast.Magic:
		diagnostics.Fatalf("checkExp: Magic reached type analysis")
	case *ast.ID:
		if n.Symbol == nil {
			diagnostics.Fatalf("checkExp: ID %q has no attached symbol", n.Name)
		}
		sym := n.Symbol.(*symbols.Symbol)
		tc.set(n, sym.Type)
	case *ast.UnaryExp:
		tc.checkUnary(n)
	case *ast.BinaryExp:
		tc.checkBinary(n)
	case *ast.CallExp:
		tc.checkCall(n)
	default:
		diagnostics.Fatalf("checkExp: unhandled exp %T", e)
	}
}
