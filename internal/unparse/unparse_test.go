package unparse_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dmars-lang/dmarsc/internal/analyzer"
	"github.com/dmars-lang/dmarsc/internal/diagnostics"
	"github.com/dmars-lang/dmarsc/internal/parser"
	"github.com/dmars-lang/dmarsc/internal/types"
	"github.com/dmars-lang/dmarsc/internal/unparse"
)

func unparseSrc(t *testing.T, src string, resolve bool) string {
	t.Helper()
	rep := diagnostics.NewReporter()
	prog := parser.ParseProgram(src, rep)
	if rep.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", rep.Diagnostics())
	}
	if resolve {
		ctx := types.NewContext()
		if ok := analyzer.ResolveNames(prog, ctx, rep); !ok {
			t.Fatalf("unexpected name errors: %v", rep.Diagnostics())
		}
	}
	var buf bytes.Buffer
	unparse.Program(&buf, prog)
	return buf.String()
}

func TestUnparsePlainSyntaxHasNoTypeAnnotations(t *testing.T) {
	out := unparseSrc(t, "x: int = 3;", false)
	if strings.Contains(out, "{") {
		t.Fatalf("expected no ID annotation before name analysis, got:\n%s", out)
	}
	if !strings.Contains(out, "x : int = 3;\n") {
		t.Fatalf("expected the var decl unparsed verbatim, got:\n%s", out)
	}
}

func TestUnparseAnnotatesIDsAfterNameAnalysis(t *testing.T) {
	out := unparseSrc(t, "x: int = 3;", true)
	if !strings.Contains(out, "x{int}") {
		t.Fatalf("expected x{int} once a symbol is attached, got:\n%s", out)
	}
}

func TestUnparseFnDeclShape(t *testing.T) {
	out := unparseSrc(t, "f: (a: int, b: bool) int { return a; }", false)
	want := "f : (a : int, b : bool) int {\n    return a;\n}\n"
	if out != want {
		t.Fatalf("got:\n%q\nwant:\n%q", out, want)
	}
}

func TestUnparseIfElseNesting(t *testing.T) {
	out := unparseSrc(t, "main: () void { if (true) { give 1; } else { give 2; } }", false)
	if !strings.Contains(out, "if (true) {\n") || !strings.Contains(out, "} else {\n") {
		t.Fatalf("expected an if/else block shape, got:\n%s", out)
	}
}

func TestUnparseBinaryExpParenthesizesNestedOperands(t *testing.T) {
	out := unparseSrc(t, "main: () void { give (1 + 2) * 3; }", false)
	if !strings.Contains(out, "(1 + 2) * 3") {
		t.Fatalf("expected the nested addition to be parenthesized, got:\n%s", out)
	}
}

func TestUnparseSurfaceVocabularyDivergesFromOriginal(t *testing.T) {
	out := unparseSrc(t, "main: () void { exit; }", false)
	if !strings.Contains(out, "exit;\n") {
		t.Fatalf("expected the plain exit keyword, got:\n%s", out)
	}
	if strings.Contains(out, "today I don't") {
		t.Fatalf("unparser must not reproduce the original's flavor text, got:\n%s", out)
	}
}
