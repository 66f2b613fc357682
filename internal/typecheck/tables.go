package typecheck

import (
	"github.com/light-lang/lightc/internal/ast"
	"github.com/light-lang/lightc/internal/symbol"
)

// functionSignature is the module-level function table entry (spec §4.4
// "Symbol tables (module-level)"): a function's declared shape, independent
// of whether this file saw a body or only a forward declaration.
type functionSignature struct {
	Name       symbol.ID
	ReturnType ast.ValueType
	ParamTypes []ast.ValueType
	Defined    bool // true once a body-bearing FunctionStmt registers it
}

// recordType is the module-level struct-field table entry.
type recordType struct {
	Name   symbol.ID
	Fields []ast.Field
}

func fieldType(fields []ast.Field, name string) (ast.ValueType, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return ast.Invalid, false
}
