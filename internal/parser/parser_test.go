package parser_test

import (
	"testing"

	"github.com/dmars-lang/dmarsc/internal/ast"
	"github.com/dmars-lang/dmarsc/internal/diagnostics"
	"github.com/dmars-lang/dmarsc/internal/parser"
)

func TestParseProgram(t *testing.T) {
	testCases := []struct {
		name       string
		input      string
		wantDecls  int
		wantErrors bool
	}{
		{"var_decl", "x: int;", 1, false},
		{"var_decl_init", "x: int = 3;", 1, false},
		{"fn_decl", "main: () void { }", 1, false},
		{"fn_decl_with_formals", "f: (a: int, b: bool) int { return a; }", 1, false},
		{"if_else", "main: () void { if (true) { } else { } }", 1, false},
		{"while_take_give", "main: () void { x: int; while (true) { take x; give x; } }", 1, false},
		{"post_inc_dec", "main: () void { x: int; x++; x--; }", 1, false},
		{"call_stmt", "f: () void { } main: () void { f(); }", 2, false},
		{"exit_stmt", "main: () void { exit; }", 1, false},
		{"immutable_type", "x: perfect int = 1;", 1, false},
		{"class_rejected", "class Foo { }", 0, true},
		{"missing_semicolon", "x: int", 1, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rep := diagnostics.NewReporter()
			prog := parser.ParseProgram(tc.input, rep)
			if got := len(prog.Globals); got != tc.wantDecls {
				t.Errorf("got %d globals, want %d", got, tc.wantDecls)
			}
			if rep.HasErrors() != tc.wantErrors {
				t.Errorf("HasErrors() = %v, want %v (diags: %v)", rep.HasErrors(), tc.wantErrors, rep.Diagnostics())
			}
		})
	}
}

func TestExpressionPrecedence(t *testing.T) {
	rep := diagnostics.NewReporter()
	prog := parser.ParseProgram("main: () void { x: int = 1 + 2 * 3; }", rep)
	if rep.HasErrors() {
		t.Fatalf("unexpected errors: %v", rep.Diagnostics())
	}
	if len(prog.Globals) != 1 {
		t.Fatalf("expected 1 global, got %d", len(prog.Globals))
	}
	decl := prog.Globals[0].(*ast.FnDecl).Body[0].(*ast.VarDecl)
	sum, ok := decl.Init.(*ast.BinaryExp)
	if !ok || sum.Op != ast.Plus {
		t.Fatalf("expected + at the root of 1 + 2 * 3, got %#v", decl.Init)
	}
	if prod, ok := sum.RHS.(*ast.BinaryExp); !ok || prod.Op != ast.Times {
		t.Fatalf("expected 2 * 3 to bind tighter as the right operand of +, got %#v", sum.RHS)
	}
}
