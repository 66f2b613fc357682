package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/light-lang/lightc/internal/ast"
)

func TestIdentifierIsLValueOnlyWhenSet(t *testing.T) {
	id := &ast.Identifier{Span: ast.Position{File: "a.lht", Line: 1, Column: 1}, Name: "x"}
	assert.False(t, id.IsLValue())
	id.SetLValue(true)
	assert.True(t, id.IsLValue())
}

func TestTypeSlotRoundTrips(t *testing.T) {
	n := &ast.NumberLit{Value: 42}
	assert.False(t, n.Type().IsValid())
	n.SetType(ast.Number)
	assert.Equal(t, ast.Number, n.Type())
}

func TestFunctionStmtForwardDeclaration(t *testing.T) {
	f := &ast.FunctionStmt{Name: "f", ReturnType: ast.Void}
	assert.True(t, f.IsDeclarationOnly())
	f.Body = &ast.Block{}
	assert.False(t, f.IsDeclarationOnly())
}

func TestStringers(t *testing.T) {
	bin := &ast.Binary{
		Op:    ast.OpPlus,
		Left:  &ast.NumberLit{Value: 1},
		Right: &ast.NumberLit{Value: 2},
	}
	assert.Equal(t, "(1 + 2)", bin.String())

	access := &ast.ArrayAccess{Base: &ast.Identifier{Name: "arr"}, Index: &ast.NumberLit{Value: 3}}
	assert.Equal(t, "arr[3]", access.String())
}
