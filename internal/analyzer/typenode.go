package analyzer

import (
	"github.com/dmars-lang/dmarsc/internal/ast"
	"github.com/dmars-lang/dmarsc/internal/diagnostics"
	"github.com/dmars-lang/dmarsc/internal/types"
)

// resolveTypeNode maps a syntactic type annotation to its flyweighted
// types.Type, by direct type switch rather than double dispatch through
// ast.Visitor: this mirrors the reference compiler's TypeNode::getType,
// and both name analysis (to validate a declared type) and type analysis
// (to type VarDecl/FnDecl) need the same mapping.
func resolveTypeNode(tn ast.TypeNode, ctx *types.Context) types.Type {
	switch n := tn.(type) {
	case *ast.IntType:
		return ctx.Int()
	case *ast.BoolType:
		return ctx.Bool()
	case *ast.VoidType:
		return ctx.Void()
	case *ast.StringType:
		return ctx.String()
	case *ast.ImmutableType:
		return ctx.Immutable(resolveTypeNode(n.Inner, ctx))
	default:
		diagnostics.Fatalf("resolveTypeNode: unhandled type node %T", tn)
		return nil
	}
}
