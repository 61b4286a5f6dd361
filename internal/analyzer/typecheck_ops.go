package analyzer

import (
	"github.com/dmars-lang/dmarsc/internal/ast"
	"github.com/dmars-lang/dmarsc/internal/diagnostics"
	"github.com/dmars-lang/dmarsc/internal/symbols"
	"github.com/dmars-lang/dmarsc/internal/types"
)

func (tc *typeChecker) checkUnary(n *ast.UnaryExp) {
	tc.checkExp(n.Exp)
	operandType := tc.typeOf(n.Exp)

	switch n.Op {
	case ast.Neg:
		if types.IsError(operandType) {
			tc.set(n, operandType)
			return
		}
		if types.IsBasic(operandType, types.Int) {
			tc.set(n, tc.ctx.Int())
			return
		}
		tc.rep.Report(n.Exp.Pos(), "Arithmetic operator applied to invalid operand")
		tc.fail()
		tc.set(n, tc.ctx.Error())
	case ast.Not:
		if types.IsError(operandType) {
			tc.set(n, tc.ctx.Error())
			return
		}
		if types.IsBasic(operandType, types.Bool) {
			tc.set(n, operandType)
			return
		}
		tc.rep.Report(n.Exp.Pos(), "Logical operator applied to non-bool operand")
		tc.fail()
		tc.set(n, tc.ctx.Error())
	}
}

func (tc *typeChecker) checkBinary(n *ast.BinaryExp) {
	switch n.Op {
	case ast.Plus, ast.Minus, ast.Times, ast.Divide:
		tc.checkBinaryMath(n)
	case ast.And, ast.Or:
		tc.checkBinaryLogic(n)
	case ast.Equals, ast.NotEquals:
		tc.checkBinaryEq(n)
	case ast.Less, ast.LessEq, ast.Greater, ast.GreaterEq:
		tc.checkBinaryRel(n)
	}
}

// typeMathOpd checks one arithmetic operand, reporting at most once per
// operand and never re-reporting an already-Error operand.
func (tc *typeChecker) typeMathOpd(opd ast.Exp) bool {
	tc.checkExp(opd)
	t := tc.typeOf(opd)
	if types.IsBasic(t, types.Int) {
		return true
	}
	if types.IsError(t) {
		return false
	}
	tc.rep.Report(opd.Pos(), "Arithmetic operator applied to invalid operand")
	tc.fail()
	return false
}

func (tc *typeChecker) checkBinaryMath(n *ast.BinaryExp) {
	lhsOK := tc.typeMathOpd(n.LHS)
	rhsOK := tc.typeMathOpd(n.RHS)
	if !lhsOK || !rhsOK {
		tc.set(n, tc.ctx.Error())
		return
	}
	tc.set(n, tc.ctx.Int())
}

// typeLogicOpd returns (type, ok): ok is false either because the
// operand was already Error (don't re-report) or because it was reported
// just now as a fresh logic-operand error.
func (tc *typeChecker) typeLogicOpd(opd ast.Exp) (types.Type, bool) {
	tc.checkExp(opd)
	t := tc.typeOf(opd)
	if types.IsBasic(t, types.Bool) {
		return t, true
	}
	if types.IsError(t) {
		return t, false
	}
	tc.rep.Report(opd.Pos(), "Logical operator applied to non-bool operand")
	tc.fail()
	return nil, false
}

func (tc *typeChecker) checkBinaryLogic(n *ast.BinaryExp) {
	_, lhsOK := tc.typeLogicOpd(n.LHS)
	_, rhsOK := tc.typeLogicOpd(n.RHS)
	if !lhsOK || !rhsOK {
		tc.set(n, tc.ctx.Error())
		return
	}
	tc.set(n, tc.ctx.Bool())
}

// typeEqOpd returns the operand's type for equality checking, or the
// Error sentinel if it isn't Int/Bool (reporting once if it wasn't
// already an Error).
func (tc *typeChecker) typeEqOpd(opd ast.Exp) types.Type {
	tc.checkExp(opd)
	t := tc.typeOf(opd)
	if types.IsBasic(t, types.Int) || types.IsBasic(t, types.Bool) {
		return t
	}
	if types.IsError(t) {
		return tc.ctx.Error()
	}
	tc.rep.Report(opd.Pos(), "Invalid equality operand")
	tc.fail()
	return tc.ctx.Error()
}

func (tc *typeChecker) checkBinaryEq(n *ast.BinaryExp) {
	lhsType := tc.typeEqOpd(n.LHS)
	rhsType := tc.typeEqOpd(n.RHS)

	if types.IsError(lhsType) || types.IsError(rhsType) {
		tc.set(n, tc.ctx.Error())
		return
	}
	if lhsType == rhsType {
		tc.set(n, tc.ctx.Bool())
		return
	}
	tc.rep.Report(n.Pos(), "Invalid equality operation")
	tc.fail()
	tc.set(n, tc.ctx.Error())
}

// typeRelOpd checks one relational operand; both must be Int.
func (tc *typeChecker) typeRelOpd(opd ast.Exp) (types.Type, bool) {
	tc.checkExp(opd)
	t := tc.typeOf(opd)
	if types.IsBasic(t, types.Int) {
		return t, true
	}
	if types.IsError(t) {
		return t, false
	}
	tc.rep.Report(opd.Pos(), "Relational operator applied to non-numeric operand")
	tc.fail()
	tc.set(opd, tc.ctx.Error())
	return nil, false
}

func (tc *typeChecker) checkBinaryRel(n *ast.BinaryExp) {
	_, lhsOK := tc.typeRelOpd(n.LHS)
	_, rhsOK := tc.typeRelOpd(n.RHS)
	if !lhsOK || !rhsOK {
		tc.set(n, tc.ctx.Error())
		return
	}
	tc.set(n, tc.ctx.Bool())
}

func (tc *typeChecker) checkCall(n *ast.CallExp) {
	argTypes := make([]types.Type, len(n.Args))
	for i, arg := range n.Args {
		tc.checkExp(arg)
		argTypes[i] = tc.typeOf(arg)
	}

	if n.Callee.Symbol == nil {
		diagnostics.Fatalf("checkCall: callee %q has no attached symbol", n.Callee.Name)
	}
	calleeType := n.Callee.Symbol.(*symbols.Symbol).Type
	tc.set(n.Callee, calleeType)

	fnType := types.AsFn(calleeType)
	if fnType == nil {
		tc.rep.Report(n.Callee.Pos(), "Attempt to call a non-function")
		tc.fail()
		tc.set(n, tc.ctx.Error())
		return
	}

	formals := fnType.Formals.Elements
	if len(argTypes) != len(formals) {
		tc.rep.Report(n.Pos(), "Function call with wrong number of args")
		tc.fail()
		// Still considered to return the declared return type, per
		// spec.md §4.2's Call row.
	} else {
		for i, actual := range argTypes {
			if types.IsError(actual) || types.IsError(formals[i]) {
				continue
			}
			if actual == formals[i] {
				continue
			}
			tc.rep.Report(n.Args[i].Pos(), "Type of actual does not match type of formal")
			tc.fail()
		}
	}

	tc.set(n, fnType.Ret)
}
