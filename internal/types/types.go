// Package types implements the Drewno Mars type system: a small, closed
// universe of flyweighted types. Two Type values denoting the same
// structure are always the same Go pointer, so type identity is pointer
// (==) identity — no structural comparison is ever needed downstream.
//
// The flyweight tables live on an explicit Context rather than behind
// package-level globals, so that two compilations (e.g. in tests) never
// share mutable state.
package types

import "strings"

// Type is the interface implemented by every member of the type universe.
type Type interface {
	String() string
	// ValidVarType reports whether a value of this type may be the
	// declared type of a variable or formal parameter.
	ValidVarType() bool
	// Size is the storage width in bytes under the compiler's current
	// (flat, no-optimization) convention.
	Size() int
}

// BaseKind enumerates the scalar kinds.
type BaseKind int

const (
	Int BaseKind = iota
	Bool
	Void
	String
)

func (k BaseKind) String() string {
	switch k {
	case Int:
		return "int"
	case Bool:
		return "bool"
	case Void:
		return "void"
	case String:
		return "string"
	default:
		return "?"
	}
}

// Basic is a scalar type: int, bool, void, or string.
type Basic struct {
	Kind BaseKind
}

func (b *Basic) String() string { return b.Kind.String() }
func (b *Basic) ValidVarType() bool { return b.Kind != Void }
func (b *Basic) Size() int { return 8 }

// Immutable wraps another type with the "perfect"/read-only modifier. It
// delegates every predicate and the size to Inner; only assignment
// analysis (outside this package, in a later pass per spec.md's
// glossary) distinguishes it from its inner type.
type Immutable struct {
	Inner Type
}

func (m *Immutable) String() string     { return "perfect " + m.Inner.String() }
func (m *Immutable) ValidVarType() bool { return m.Inner.ValidVarType() }
func (m *Immutable) Size() int          { return m.Inner.Size() }

// TypeList is an ordered list of types, used for function formal lists.
type TypeList struct {
	Elements []Type
}

func (l *TypeList) String() string {
	var sb strings.Builder
	for i, t := range l.Elements {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(t.String())
	}
	return sb.String()
}
func (l *TypeList) ValidVarType() bool { return false }
func (l *TypeList) Size() int {
	total := 0
	for _, t := range l.Elements {
		total += t.Size()
	}
	return total
}

// Fn is the type of a function: an ordered formal-type list and a return
// type. Functions are not storable values (Size is 0) but a function
// *declaration* at global scope is a valid "variable" for name purposes,
// so ValidVarType is true.
type Fn struct {
	Formals *TypeList
	Ret     Type
}

func (f *Fn) String() string { return "(" + f.Formals.String() + ")->" + f.Ret.String() }
func (f *Fn) ValidVarType() bool { return true }
func (f *Fn) Size() int          { return 0 }

// errorType is the distinguished error sentinel: a single instance,
// produced by Context.Error(), that absorbs further diagnostics without
// cascading (spec.md §4.2, §7).
type errorType struct{}

func (errorType) String() string     { return "ERROR" }
func (errorType) ValidVarType() bool { return false }
func (errorType) Size() int          { return 0 }

// IsError reports whether t is the error sentinel.
func IsError(t Type) bool {
	_, ok := t.(errorType)
	return ok
}

// IsBasic reports whether t is a Basic of the given kind (looking through
// Immutable wrappers, matching the reference DataType::isInt/isBool/...
// predicates, which delegate through PerfectType).
func IsBasic(t Type, k BaseKind) bool {
	b, ok := Unwrap(t).(*Basic)
	return ok && b.Kind == k
}

// AsFn returns the Fn view of t (looking through Immutable), or nil.
func AsFn(t Type) *Fn {
	f, _ := Unwrap(t).(*Fn)
	return f
}

// Unwrap strips any Immutable wrapper, returning the underlying type.
func Unwrap(t Type) Type {
	for {
		m, ok := t.(*Immutable)
		if !ok {
			return t
		}
		t = m.Inner
	}
}
