package codegen

import "github.com/dmars-lang/dmarsc/internal/types"

func isIntType(t types.Type) bool    { return types.IsBasic(t, types.Int) }
func isBoolType(t types.Type) bool   { return types.IsBasic(t, types.Bool) }
func isStringType(t types.Type) bool { return types.IsBasic(t, types.String) }
