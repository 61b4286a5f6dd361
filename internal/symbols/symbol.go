// Package symbols implements the Drewno Mars symbol table: one Symbol per
// declaration site, and a stack of lexical scopes that name analysis
// pushes and pops as it walks the tree.
package symbols

import "github.com/dmars-lang/dmarsc/internal/types"

// StorageClass distinguishes how a symbol is ultimately stored.
type StorageClass int

const (
	VarStorage StorageClass = iota
	FormalStorage
	FnStorage
)

// Symbol is the single binding created at a declaration site; every later
// use of the name is a reference to this same Symbol value.
type Symbol struct {
	Name    string
	Type    types.Type
	Storage StorageClass
}

// SymbolName implements ast.Symbol, letting *Symbol be attached directly
// to ast.ID nodes without ast importing symbols.
func (s *Symbol) SymbolName() string { return s.Name }
