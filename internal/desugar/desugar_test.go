package desugar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-lang/lightc/internal/ast"
	"github.com/light-lang/lightc/internal/desugar"
)

func sampleFor() *ast.For {
	initDecl := &ast.VariableDeclaration{Name: "i", DeclaredType: ast.Number, Init: &ast.NumberLit{Value: 0}}
	cond := &ast.BinaryLogic{Op: ast.OpLess, Left: &ast.Identifier{Name: "i"}, Right: &ast.NumberLit{Value: 10}}
	step := &ast.VariableAssignment{
		LHS: &ast.Identifier{Name: "i"},
		RHS: &ast.Binary{Op: ast.OpPlus, Left: &ast.Identifier{Name: "i"}, Right: &ast.NumberLit{Value: 1}},
	}
	body := &ast.Block{Stmts: []ast.Stmt{&ast.ExprStmt{Expr: &ast.Call{Name: "print", Args: []ast.Expr{&ast.Identifier{Name: "i"}}}}}}
	return &ast.For{InitDecl: initDecl, Cond: cond, Step: step, Body: body}
}

func TestDesugarForProducesInitThenWhile(t *testing.T) {
	out := desugar.Desugar([]ast.Stmt{sampleFor()})
	require.Len(t, out, 1)

	block, ok := out[0].(*ast.Block)
	require.True(t, ok, "for-loop must desugar to a Block")
	require.Len(t, block.Stmts, 2)

	decl, ok := block.Stmts[0].(*ast.VariableDeclaration)
	require.True(t, ok)
	assert.Equal(t, "i", decl.Name)

	while, ok := block.Stmts[1].(*ast.While)
	require.True(t, ok)
	// body statements followed by the step, in that order.
	require.Len(t, while.Body.Stmts, 2)
	_, bodyIsExpr := while.Body.Stmts[0].(*ast.ExprStmt)
	assert.True(t, bodyIsExpr)
	_, stepIsAssign := while.Body.Stmts[1].(*ast.VariableAssignment)
	assert.True(t, stepIsAssign)
}

func TestDesugarRecursesIntoFunctionBodyAndBranches(t *testing.T) {
	fn := &ast.FunctionStmt{
		Name: "f",
		Body: &ast.Block{Stmts: []ast.Stmt{
			&ast.If{
				Cond: &ast.BoolLit{Value: true},
				Then: &ast.Block{Stmts: []ast.Stmt{sampleFor()}},
				Else: &ast.Block{Stmts: []ast.Stmt{sampleFor()}},
			},
		}},
	}
	out := desugar.Desugar([]ast.Stmt{fn})
	outFn := out[0].(*ast.FunctionStmt)
	ifStmt := outFn.Body.Stmts[0].(*ast.If)
	_, thenIsBlockWrappingFor := ifStmt.Then.Stmts[0].(*ast.Block)
	assert.True(t, thenIsBlockWrappingFor)
	_, elseIsBlockWrappingFor := ifStmt.Else.Stmts[0].(*ast.Block)
	assert.True(t, elseIsBlockWrappingFor)
}

func TestDesugarIsIdempotent(t *testing.T) {
	once := desugar.Desugar([]ast.Stmt{sampleFor()})
	twice := desugar.Desugar(once)
	assert.Equal(t, once, twice)
}

func TestDesugarHandlesNestedForInBody(t *testing.T) {
	outer := sampleFor()
	outer.Body = &ast.Block{Stmts: []ast.Stmt{sampleFor()}}
	out := desugar.Desugar([]ast.Stmt{outer})
	block := out[0].(*ast.Block)
	while := block.Stmts[1].(*ast.While)
	// The nested for (first body statement) must itself have been lowered
	// to a Block, not survive as an *ast.For.
	_, nestedIsBlock := while.Body.Stmts[0].(*ast.Block)
	assert.True(t, nestedIsBlock)
}

func TestDesugarLeavesNonForStatementsUntouched(t *testing.T) {
	decl := &ast.VariableDeclaration{Name: "x", Init: &ast.NumberLit{Value: 1}}
	out := desugar.Desugar([]ast.Stmt{decl})
	assert.Same(t, decl, out[0])
}
