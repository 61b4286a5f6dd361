package analyzer_test

import (
	"testing"

	"github.com/dmars-lang/dmarsc/internal/analyzer"
	"github.com/dmars-lang/dmarsc/internal/diagnostics"
	"github.com/dmars-lang/dmarsc/internal/parser"
	"github.com/dmars-lang/dmarsc/internal/types"
)

func namesOf(t *testing.T, src string) (bool, *diagnostics.Reporter) {
	t.Helper()
	rep := diagnostics.NewReporter()
	prog := parser.ParseProgram(src, rep)
	if rep.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", rep.Diagnostics())
	}
	ctx := types.NewContext()
	ok := analyzer.ResolveNames(prog, ctx, rep)
	return ok, rep
}

func TestResolveNamesUndeclared(t *testing.T) {
	// S2 from spec.md's end-to-end scenarios.
	ok, rep := namesOf(t, "main: () void { y = 3; }")
	if ok {
		t.Fatalf("expected name analysis to fail")
	}
	diags := rep.Diagnostics()
	if len(diags) != 1 || diags[0].Message != "Undeclared identifier" {
		t.Fatalf("got %v", diags)
	}
}

func TestResolveNamesInvalidType(t *testing.T) {
	// S5 from spec.md.
	ok, rep := namesOf(t, "main: () void { x: void; }")
	if ok {
		t.Fatalf("expected name analysis to fail")
	}
	diags := rep.Diagnostics()
	if len(diags) != 1 || diags[0].Message != "Invalid type in declaration" {
		t.Fatalf("got %v", diags)
	}
}

func TestResolveNamesRecursion(t *testing.T) {
	ok, rep := namesOf(t, "f: (n: int) int { return f(n); }")
	if !ok {
		t.Fatalf("expected recursive call to resolve, got diags: %v", rep.Diagnostics())
	}
}

func TestResolveNamesMultiplyDeclared(t *testing.T) {
	ok, rep := namesOf(t, "x: int; x: int;")
	if ok {
		t.Fatalf("expected clash to fail")
	}
	diags := rep.Diagnostics()
	if len(diags) != 1 || diags[0].Message != "Multiply declared identifier" {
		t.Fatalf("got %v", diags)
	}
}

func TestResolveNamesShadowAcrossScopes(t *testing.T) {
	// Formals share the body scope with locals, so a local may not reuse
	// a formal's name; a formal (or local) may shadow a global, since the
	// global lives in a different scope.
	ok, _ := namesOf(t, "x: int; f: (x: int) int { return x; }")
	if !ok {
		t.Fatalf("expected formal shadowing a global to resolve")
	}
}

func checkTypesOf(t *testing.T, src string) (bool, *diagnostics.Reporter) {
	t.Helper()
	rep := diagnostics.NewReporter()
	prog := parser.ParseProgram(src, rep)
	if rep.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", rep.Diagnostics())
	}
	ctx := types.NewContext()
	if ok := analyzer.ResolveNames(prog, ctx, rep); !ok {
		t.Fatalf("unexpected name errors: %v", rep.Diagnostics())
	}
	ok, _ := analyzer.CheckTypes(prog, ctx, rep)
	return ok, rep
}

func TestCheckTypesBadReturn(t *testing.T) {
	// S3 from spec.md.
	ok, rep := checkTypesOf(t, "f: (a: int) bool { return a; }")
	if ok {
		t.Fatalf("expected type analysis to fail")
	}
	diags := rep.Diagnostics()
	if len(diags) != 1 || diags[0].Message != "Bad return value" {
		t.Fatalf("got %v", diags)
	}
}

func TestCheckTypesExtraReturnValueInVoidFunction(t *testing.T) {
	ok, rep := checkTypesOf(t, "main: () void { return 1; }")
	if ok {
		t.Fatalf("expected type analysis to fail")
	}
	diags := rep.Diagnostics()
	if len(diags) != 1 || diags[0].Message != "Return with a value in void function" {
		t.Fatalf("got %v", diags)
	}
}

func TestCheckTypesNonBoolCondition(t *testing.T) {
	// S4 from spec.md.
	ok, rep := checkTypesOf(t, "main: () void { if (1 + 1){ } }")
	if ok {
		t.Fatalf("expected type analysis to fail")
	}
	diags := rep.Diagnostics()
	if len(diags) != 1 || diags[0].Message != "Non-bool expression used as a condition" {
		t.Fatalf("got %v", diags)
	}
}

func TestCheckTypesValidProgram(t *testing.T) {
	// S1 from spec.md.
	ok, rep := checkTypesOf(t, "x: int; main: () void { x = 3; give x; }")
	if !ok {
		t.Fatalf("expected program to type-check, got: %v", rep.Diagnostics())
	}
}

func TestCheckTypesAssignOperand(t *testing.T) {
	ok, rep := checkTypesOf(t, `main: () void { s: string; s = "hi"; }`)
	if ok {
		t.Fatalf("expected string assignment to be rejected")
	}
	for _, d := range rep.Diagnostics() {
		if d.Message != "Invalid assignment operand" {
			t.Fatalf("got unexpected diagnostic: %v", d)
		}
	}
}

func TestCheckTypesMismatchedAssign(t *testing.T) {
	ok, rep := checkTypesOf(t, "main: () void { x: int; b: bool; x = b; }")
	if ok {
		t.Fatalf("expected mismatched assignment to fail")
	}
	diags := rep.Diagnostics()
	if len(diags) != 1 || diags[0].Message != "Invalid assignment operation" {
		t.Fatalf("got %v", diags)
	}
}

func TestCheckTypesCallWrongArgCount(t *testing.T) {
	ok, rep := checkTypesOf(t, `f: (a: int) void { } main: () void { f(); }`)
	if ok {
		t.Fatalf("expected wrong-arity call to fail")
	}
	diags := rep.Diagnostics()
	if len(diags) != 1 || diags[0].Message != "Function call with wrong number of args" {
		t.Fatalf("got %v", diags)
	}
}

func TestCheckTypesStringEquality(t *testing.T) {
	ok, rep := checkTypesOf(t, `main: () void { s: string; t: string; if (s == t) { } }`)
	if ok {
		t.Fatalf("expected string equality operands to be rejected")
	}
	diags := rep.Diagnostics()
	if len(diags) != 2 || diags[0].Message != "Invalid equality operand" || diags[1].Message != "Invalid equality operand" {
		t.Fatalf("got %v", diags)
	}
}
