package codegen_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dmars-lang/dmarsc/internal/analyzer"
	"github.com/dmars-lang/dmarsc/internal/codegen"
	"github.com/dmars-lang/dmarsc/internal/config"
	"github.com/dmars-lang/dmarsc/internal/diagnostics"
	"github.com/dmars-lang/dmarsc/internal/parser"
	"github.com/dmars-lang/dmarsc/internal/tac"
	"github.com/dmars-lang/dmarsc/internal/types"
)

func emitAsm(t *testing.T, src string) string {
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
	irProg := tac.Lower(prog, nodeTypes, ctx)

	var buf bytes.Buffer
	if err := codegen.Emit(&buf, irProg, config.Default()); err != nil {
		t.Fatalf("emit failed: %v", err)
	}
	return buf.String()
}

func TestEmitHeaderSections(t *testing.T) {
	asm := emitAsm(t, "main: () void { }")
	if !strings.HasPrefix(asm, ".data\n") {
		t.Fatalf("expected assembly to start with .data, got:\n%s", asm)
	}
	if !strings.Contains(asm, ".globl main\n") {
		t.Fatalf("expected .globl main, got:\n%s", asm)
	}
	if !strings.Contains(asm, ".text\n") {
		t.Fatalf("expected .text, got:\n%s", asm)
	}
	if !strings.Contains(asm, "main:\n") {
		t.Fatalf("expected a bare main: label, got:\n%s", asm)
	}
}

func TestEmitGlobalAndStringLiterals(t *testing.T) {
	asm := emitAsm(t, `x: int; main: () void { give "hi"; }`)
	if !strings.Contains(asm, "gbl_x: .quad 0\n") {
		t.Fatalf("expected a global slot for x, got:\n%s", asm)
	}
	if !strings.Contains(asm, `: .asciz "hi"`) {
		t.Fatalf("expected the interned string literal, got:\n%s", asm)
	}
	if !strings.Contains(asm, ".align 8\n") {
		t.Fatalf("expected trailing .align 8, got:\n%s", asm)
	}
}

func TestEmitPrologueEpilogueAndCall(t *testing.T) {
	asm := emitAsm(t, "f: (a: int) void { } main: () void { f(1); }")
	if !strings.Contains(asm, "fun_f:\n") {
		t.Fatalf("expected a fun_f label, got:\n%s", asm)
	}
	if !strings.Contains(asm, "pushq %rbp\nmovq %rsp, %rbp\naddq $16, %rbp\n") {
		t.Fatalf("expected the standard prologue sequence, got:\n%s", asm)
	}
	if !strings.Contains(asm, "popq %rbp\nretq\n") {
		t.Fatalf("expected the standard epilogue tail, got:\n%s", asm)
	}
	if !strings.Contains(asm, "callq fun_f\n") {
		t.Fatalf("expected a call to fun_f, got:\n%s", asm)
	}
}

func TestEmitArithmeticAndComparison(t *testing.T) {
	asm := emitAsm(t, "main: () void { x: int = 1 + 2; b: bool = x < 3; }")
	if !strings.Contains(asm, "addq %rbx, %rax\n") {
		t.Fatalf("expected a 64-bit add, got:\n%s", asm)
	}
	if !strings.Contains(asm, "setl %al\n") {
		t.Fatalf("expected a setl for the < comparison, got:\n%s", asm)
	}
}

func TestEmitGetArgStackOffsetsForMultipleStackFormals(t *testing.T) {
	// 8 formals: the first 6 arrive in registers, the 7th and 8th on the
	// stack. ArgCount is even so no alignment dummy is pushed, and the
	// 7th formal (pushed last, closest to %rbp) must land at a smaller
	// offset than the 8th (pushed first, furthest from %rbp).
	asm := emitAsm(t, "f: (a: int, b: int, c: int, d: int, e: int, g: int, h: int, i: int) void { } main: () void { }")
	if !strings.Contains(asm, "movq 0(%rbp), %rbx\n") {
		t.Fatalf("expected the 7th formal to read from 0(%%rbp), got:\n%s", asm)
	}
	if !strings.Contains(asm, "movq 8(%rbp), %rbx\n") {
		t.Fatalf("expected the 8th formal to read from 8(%%rbp), got:\n%s", asm)
	}
}

func TestEmitRuntimeCallsUseConfiguredNames(t *testing.T) {
	cfg := config.Default()
	cfg.Runtime.PrintInt = "rt_printInt"

	rep := diagnostics.NewReporter()
	src := "main: () void { give 1; }"
	prog := parser.ParseProgram(src, rep)
	ctx := types.NewContext()
	analyzer.ResolveNames(prog, ctx, rep)
	_, nodeTypes := analyzer.CheckTypes(prog, ctx, rep)
	irProg := tac.Lower(prog, nodeTypes, ctx)

	var buf bytes.Buffer
	if err := codegen.Emit(&buf, irProg, cfg); err != nil {
		t.Fatalf("emit failed: %v", err)
	}
	if !strings.Contains(buf.String(), "callq rt_printInt\n") {
		t.Fatalf("expected the configured runtime symbol name, got:\n%s", buf.String())
	}
}
