package tac

import "github.com/dmars-lang/dmarsc/internal/symbols"

// StringLiteral records one interned string constant destined for the
// .data section.
type StringLiteral struct {
	Label string
	Value string
}

// Program is the lowering pass's output: every procedure in declaration
// order, the global symbol table's storage mapping, and the pool of
// string literals collected while flattening expressions.
type Program struct {
	Procedures []*Procedure
	Globals    map[*symbols.Symbol]*SymOpd
	// GlobalOrder records Globals' keys in declaration order; Go map
	// iteration order is unspecified and codegen output must be stable.
	GlobalOrder []*SymOpd
	Strings     []StringLiteral

	// Init holds quads lowered from top-level VarDecl initializers. The
	// grammar allows `x: int = 5;` at global scope, but neither the
	// runtime ABI nor the activation-record model describes a
	// program-init routine distinct from `main` — Lower splices Init into
	// `main`'s body right after its Enter and GetArg quads (and homes the
	// temporaries Init uses in main's frame), mirroring a C runtime
	// running static initializers before the entry point.
	Init []Quad
}

// Procedure is one function's lowered body.
type Procedure struct {
	Name    string
	Formals []*SymOpd
	Locals  map[*symbols.Symbol]*SymOpd
	// LocalOrder records Locals' keys in the order they were first
	// referenced, so frame-offset assignment and any diagnostic dump of
	// the activation record is reproducible across runs.
	LocalOrder []*SymOpd
	Temps      []*AuxOpd
	Enter   *EnterQuad
	Body    []Quad
	Leave   *LeaveQuad

	// FrameSize is left zero by lowering and is not written by the
	// emitter either: codegen computes the frame size into its own
	// per-procedure frame record.
	FrameSize int
}
