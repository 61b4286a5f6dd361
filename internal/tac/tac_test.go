package tac_test

import (
	"testing"

	"github.com/dmars-lang/dmarsc/internal/analyzer"
	"github.com/dmars-lang/dmarsc/internal/diagnostics"
	"github.com/dmars-lang/dmarsc/internal/parser"
	"github.com/dmars-lang/dmarsc/internal/tac"
	"github.com/dmars-lang/dmarsc/internal/types"
)

func lower(t *testing.T, src string) *tac.Program {
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
	ok, nodeTypes := analyzer.CheckTypes(prog, ctx, rep)
	if !ok {
		t.Fatalf("unexpected type errors: %v", rep.Diagnostics())
	}
	return tac.Lower(prog, nodeTypes, ctx)
}

func findProc(t *testing.T, irProg *tac.Program, name string) *tac.Procedure {
	t.Helper()
	for _, p := range irProg.Procedures {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("no procedure named %q", name)
	return nil
}

// S1 from spec.md, checked structurally: a global with an initializer
// flows through Program.Init, spliced into main's body.
func TestLowerGlobalInitSplicedIntoMain(t *testing.T) {
	irProg := lower(t, "x: int = 3; main: () void { give x; }")
	main := findProc(t, irProg, "main")

	if len(irProg.Init) == 0 {
		t.Fatalf("expected a global initializer in Program.Init")
	}
	foundAssign := false
	for _, q := range main.Body {
		if _, ok := q.(*tac.AssignQuad); ok {
			foundAssign = true
			break
		}
	}
	if !foundAssign {
		t.Fatalf("expected main's body to contain the spliced initializer's AssignQuad, got %#v", main.Body)
	}
}

func TestLowerFnDeclShapeAndGetArg(t *testing.T) {
	irProg := lower(t, "f: (a: int, b: bool) int { return a; }")
	f := findProc(t, irProg, "f")

	if _, ok := f.Body[0].(*tac.EnterQuad); !ok {
		t.Fatalf("expected Body[0] to be the Enter quad, got %T", f.Body[0])
	}
	getArgs := 0
	for _, q := range f.Body {
		if _, ok := q.(*tac.GetArgQuad); ok {
			getArgs++
		}
	}
	if getArgs != 2 {
		t.Fatalf("expected 2 GetArgQuads for 2 formals, got %d", getArgs)
	}
	if len(f.Formals) != 2 {
		t.Fatalf("expected 2 formals recorded, got %d", len(f.Formals))
	}
	last := f.Body[len(f.Body)-1]
	if _, ok := last.(*tac.LeaveQuad); !ok {
		t.Fatalf("expected the last quad to be Leave, got %T", last)
	}
}

func TestLowerReturnTargetsEpilogueLabel(t *testing.T) {
	irProg := lower(t, "f: (a: int) int { return a; }")
	f := findProc(t, irProg, "f")

	var gotoQ *tac.GotoQuad
	for _, q := range f.Body {
		if g, ok := q.(*tac.GotoQuad); ok {
			gotoQ = g
		}
	}
	if gotoQ == nil {
		t.Fatalf("expected a Goto quad from lowering Return")
	}
	if gotoQ.Target != "lbl_leave_f" {
		t.Fatalf("expected Return's Goto to target the epilogue label, got %q", gotoQ.Target)
	}
	found := false
	for _, lbl := range f.Leave.Labels() {
		if lbl == gotoQ.Target {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Leave to carry the epilogue label %q", gotoQ.Target)
	}
}

func TestLowerWhileLoopStructure(t *testing.T) {
	irProg := lower(t, "main: () void { x: int = 0; while (x < 10) { x = x + 1; } }")
	main := findProc(t, irProg, "main")

	var ifz *tac.IfzQuad
	var gotos []*tac.GotoQuad
	for _, q := range main.Body {
		switch n := q.(type) {
		case *tac.IfzQuad:
			ifz = n
		case *tac.GotoQuad:
			gotos = append(gotos, n)
		}
	}
	if ifz == nil {
		t.Fatalf("expected an Ifz quad for the loop condition")
	}
	if len(gotos) == 0 {
		t.Fatalf("expected at least one Goto quad closing the loop body")
	}
}

func TestLowerCallArgOrderingWithinSixRegisters(t *testing.T) {
	irProg := lower(t, "f: (a: int, b: int, c: int) void { } main: () void { f(1, 2, 3); } ")
	main := findProc(t, irProg, "main")

	var setArgs []*tac.SetArgQuad
	for _, q := range main.Body {
		if s, ok := q.(*tac.SetArgQuad); ok {
			setArgs = append(setArgs, s)
		}
	}
	if len(setArgs) != 3 {
		t.Fatalf("expected 3 SetArgQuads, got %d", len(setArgs))
	}
	for i, s := range setArgs {
		if s.Index != i+1 {
			t.Fatalf("expected ascending indices for <=6 args, got %d at position %d", s.Index, i)
		}
	}
}

func TestLowerStringLiteralInterned(t *testing.T) {
	irProg := lower(t, `main: () void { give "hi"; }`)
	if len(irProg.Strings) != 1 {
		t.Fatalf("expected one interned string literal, got %d", len(irProg.Strings))
	}
	if irProg.Strings[0].Value != "hi" {
		t.Fatalf("got %q", irProg.Strings[0].Value)
	}
}
