package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/light-lang/lightc/internal/ast"
)

func TestScalarEquality(t *testing.T) {
	assert.True(t, ast.Number.Equal(ast.Number))
	assert.False(t, ast.Number.Equal(ast.Real))
}

func TestPointerAndArrayEquality(t *testing.T) {
	p1 := ast.PointerTo(ast.Number)
	p2 := ast.PointerTo(ast.Number)
	p3 := ast.PointerTo(ast.Real)
	assert.True(t, p1.Equal(p2))
	assert.False(t, p1.Equal(p3))

	a1 := ast.ArrayOf(ast.Number, 10)
	a2 := ast.ArrayOf(ast.Number, 10)
	a3 := ast.ArrayOf(ast.Number, 5)
	assert.True(t, a1.Equal(a2))
	assert.False(t, a1.Equal(a3), "size mismatch must not be equal")
}

func TestStructEqualityIsNominal(t *testing.T) {
	s1 := ast.StructNamed("Point")
	s2 := ast.StructNamed("Point")
	s3 := ast.StructNamed("Vector")
	assert.True(t, s1.Equal(s2))
	assert.False(t, s1.Equal(s3))
}

func TestNullCompatibility(t *testing.T) {
	assert.True(t, ast.IsCompatible(ast.Null, ast.PointerTo(ast.Number)))
	assert.True(t, ast.IsCompatible(ast.PointerTo(ast.Number), ast.Null))
	assert.True(t, ast.IsCompatible(ast.Null, ast.String))
	assert.False(t, ast.IsCompatible(ast.Null, ast.Number))
}

func TestVoidPointerCompatibility(t *testing.T) {
	ptrVoid := ast.PointerTo(ast.Void)
	ptrNum := ast.PointerTo(ast.Number)
	assert.True(t, ast.IsCompatible(ptrVoid, ptrNum))
	assert.True(t, ast.IsCompatible(ptrNum, ptrVoid))
}

func TestArraySizeMismatchIsIncompatible(t *testing.T) {
	a := ast.ArrayOf(ast.Number, 10)
	b := ast.ArrayOf(ast.Number, 5)
	assert.False(t, ast.IsCompatible(a, b))
}

func TestScalarBroadcastForInitOnly(t *testing.T) {
	arr := ast.ArrayOf(ast.Number, 10)
	assert.True(t, ast.IsCompatibleForInit(arr, ast.Number))
	assert.False(t, ast.IsCompatible(arr, ast.Number), "broadcast must not apply outside init")
	assert.False(t, ast.IsCompatibleForInit(arr, ast.Real))
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "number", ast.Number.String())
	assert.Equal(t, "ptr number", ast.PointerTo(ast.Number).String())
	assert.Equal(t, "[number; 10]", ast.ArrayOf(ast.Number, 10).String())
	assert.Equal(t, "Point", ast.StructNamed("Point").String())
}
