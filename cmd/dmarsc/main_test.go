package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSrc(t *testing.T, dir, src string) string {
	t.Helper()
	path := filepath.Join(dir, "in.dm")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

func TestRunNoArgs(t *testing.T) {
	if code := run(nil); code != 1 {
		t.Fatalf("expected exit 1 with no args, got %d", code)
	}
}

func TestRunMissingInputFile(t *testing.T) {
	if code := run([]string{"/no/such/file.dm"}); code != 1 {
		t.Fatalf("expected exit 1 for unreadable input, got %d", code)
	}
}

func TestRunTokensMode(t *testing.T) {
	dir := t.TempDir()
	in := writeSrc(t, dir, "main: () void { }")
	out := filepath.Join(dir, "toks.txt")

	if code := run([]string{in, "-t", out}); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	got := readFile(t, out)
	if !strings.Contains(got, "ID") || !strings.Contains(got, "main") {
		t.Fatalf("expected token dump to mention main, got:\n%s", got)
	}
}

func TestRunUnparseMode(t *testing.T) {
	dir := t.TempDir()
	in := writeSrc(t, dir, "x: void = 3;")
	out := filepath.Join(dir, "unparsed.dm")

	if code := run([]string{in, "-p", out}); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	got := readFile(t, out)
	if strings.Contains(got, "{") {
		t.Fatalf("-p with an unresolvable program shouldn't fail, but annotation leaked: %s", got)
	}
	if !strings.Contains(got, "x : void = 3;") {
		t.Fatalf("expected the var decl unparsed, got:\n%s", got)
	}
}

func TestRunUnparseModeAnnotatesResolvedIDs(t *testing.T) {
	dir := t.TempDir()
	in := writeSrc(t, dir, "x: int = 3;")
	out := filepath.Join(dir, "unparsed.dm")

	if code := run([]string{in, "-p", out}); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	got := readFile(t, out)
	if !strings.Contains(got, "x{int}") {
		t.Fatalf("expected -p to annotate the resolvable x with its type, got:\n%s", got)
	}
}

func TestRunNamedUnparseModeSurfacesNameErrors(t *testing.T) {
	dir := t.TempDir()
	in := writeSrc(t, dir, "main: () void { give y; }")
	out := filepath.Join(dir, "named.dm")

	if code := run([]string{in, "-n", out}); code == 0 {
		t.Fatalf("expected nonzero exit for an undeclared identifier")
	}
}

func TestRunNamedUnparseModeSuccess(t *testing.T) {
	dir := t.TempDir()
	in := writeSrc(t, dir, "x: int = 3;")
	out := filepath.Join(dir, "named.dm")

	if code := run([]string{in, "-n", out}); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	got := readFile(t, out)
	if !strings.Contains(got, "x{int}") {
		t.Fatalf("expected -n to annotate x with its resolved type, got:\n%s", got)
	}
}

func TestRunCheckOnlyMode(t *testing.T) {
	dir := t.TempDir()
	in := writeSrc(t, dir, "main: () void { x: int = 1 + true; }")

	if code := run([]string{in, "-c"}); code == 0 {
		t.Fatalf("expected nonzero exit for a type error")
	}

	in2 := writeSrc(t, dir, "main: () void { x: int = 1 + 2; }")
	if code := run([]string{in2, "-c"}); code != 0 {
		t.Fatalf("expected exit 0 for a well-typed program, got %d", code)
	}
}

func TestRunTACMode(t *testing.T) {
	dir := t.TempDir()
	in := writeSrc(t, dir, `main: () void { give 1; }`)
	out := filepath.Join(dir, "out.tac")

	if code := run([]string{in, "-a", out}); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	got := readFile(t, out)
	if !strings.Contains(got, "give(") {
		t.Fatalf("expected a give quad in the TAC dump, got:\n%s", got)
	}
}

func TestRunAsmMode(t *testing.T) {
	dir := t.TempDir()
	in := writeSrc(t, dir, "main: () void { give 1; }")
	out := filepath.Join(dir, "out.s")

	if code := run([]string{in, "-o", out}); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	got := readFile(t, out)
	if !strings.Contains(got, ".globl main") {
		t.Fatalf("expected assembly output, got:\n%s", got)
	}
}

func TestRunMultipleFlagsTogether(t *testing.T) {
	dir := t.TempDir()
	in := writeSrc(t, dir, "main: () void { give 1; }")
	tokOut := filepath.Join(dir, "t.txt")
	tacOut := filepath.Join(dir, "a.tac")
	asmOut := filepath.Join(dir, "o.s")

	code := run([]string{in, "-t", tokOut, "-a", tacOut, "-o", asmOut})
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if _, err := os.Stat(tokOut); err != nil {
		t.Fatalf("expected tokens file to exist: %v", err)
	}
	if _, err := os.Stat(tacOut); err != nil {
		t.Fatalf("expected tac file to exist: %v", err)
	}
	if _, err := os.Stat(asmOut); err != nil {
		t.Fatalf("expected asm file to exist: %v", err)
	}
}

func TestRunConfigFlag(t *testing.T) {
	dir := t.TempDir()
	in := writeSrc(t, dir, "main: () void { give 1; }")
	cfgPath := filepath.Join(dir, "dmarsc.yaml")
	if err := os.WriteFile(cfgPath, []byte("runtime:\n  printIntSymbol: rt_printInt\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	out := filepath.Join(dir, "out.s")

	if code := run([]string{in, "-config", cfgPath, "-o", out}); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	got := readFile(t, out)
	if !strings.Contains(got, "callq rt_printInt") {
		t.Fatalf("expected the configured runtime symbol, got:\n%s", got)
	}
}

func TestRunParseErrorReported(t *testing.T) {
	dir := t.TempDir()
	in := writeSrc(t, dir, "main: () void { give ; }")

	if code := run([]string{in, "-c"}); code == 0 {
		t.Fatalf("expected nonzero exit for a syntax error")
	}
}
