// Package tac implements the three-address intermediate representation
// the type-checked AST is lowered into, and the lowering pass itself.
// The shape mirrors the teacher's bytecode Compiler (internal/vm/compiler.go):
// a stateful lowering object that walks the tree once, emitting into a
// growing instruction list and tracking scope-relative storage — except
// here the "instructions" are typed three-address quads over symbolic
// operands rather than a stack machine's opcodes, and labels stand in
// for the teacher's numeric jump-patch offsets.
package tac

import "github.com/dmars-lang/dmarsc/internal/symbols"

// Operand is the tagged-variant operand referenced by quads.
type Operand interface {
	operandNode()
	Width() int
}

// SymOpd references a declared variable or formal: a global (label-based)
// or local (frame-relative) storage location tied to a *symbols.Symbol.
type SymOpd struct {
	Symbol *symbols.Symbol
	Global bool
	Wid    int
}

func (o *SymOpd) operandNode() {}
func (o *SymOpd) Width() int   { return o.Wid }

// AuxOpd is a compiler-generated temporary, always stack-allocated in the
// owning Procedure's frame.
type AuxOpd struct {
	Name string
	Wid  int
}

func (o *AuxOpd) operandNode() {}
func (o *AuxOpd) Width() int   { return o.Wid }

// LitOpd is an immediate value. String literals additionally carry a
// Label naming their .data entry; Value is unused for those (Label is
// the operand actually referenced in codegen).
type LitOpd struct {
	Value int64
	Str   string // literal text, only meaningful when Label != ""
	Label string // non-empty for string literals
	Wid   int
}

func (o *LitOpd) operandNode() {}
func (o *LitOpd) Width() int   { return o.Wid }

// AddrOpd is an address-valued operand. Reserved: nothing in this
// grammar (no arrays, no pointers) ever constructs one, but it is part
// of the closed operand vocabulary the quads are typed over.
type AddrOpd struct {
	Base Operand
}

func (o *AddrOpd) operandNode() {}
func (o *AddrOpd) Width() int   { return 64 }
