package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-lang/lightc/internal/ast"
	"github.com/light-lang/lightc/internal/parser"
	"github.com/light-lang/lightc/internal/token"
)

func lexAll(t *testing.T, src string) []token.Token {
	t.Helper()
	lex := token.NewLexer("t.lht", strings.NewReader(src))
	var out []token.Token
	for {
		tok := lex.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return out
}

func parse(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	toks := lexAll(t, src)
	p := parser.New(toks, "t.lht", "t")
	stmts, diags, err := p.Parse()
	require.NoError(t, err, "diagnostics: %v", diags)
	return stmts
}

func TestParsesFunctionWithBody(t *testing.T) {
	stmts := parse(t, `fn add(a: number, b: number): number { return a + b; }`)
	require.Len(t, stmts, 1)
	fn, ok := stmts[0].(*ast.FunctionStmt)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	assert.False(t, fn.IsDeclarationOnly())
	require.Len(t, fn.Params, 2)
	assert.Equal(t, ast.Number, fn.ReturnType)
	require.Len(t, fn.Body.Stmts, 1)
	ret, ok := fn.Body.Stmts[0].(*ast.Return)
	require.True(t, ok)
	bin, ok := ret.Expr.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.OpPlus, bin.Op)
}

func TestParsesForwardDeclaration(t *testing.T) {
	stmts := parse(t, `export fn helper(x: number): void;`)
	fn := stmts[0].(*ast.FunctionStmt)
	assert.True(t, fn.Exported)
	assert.True(t, fn.IsDeclarationOnly())
}

func TestEqualityIsRightAssociative(t *testing.T) {
	stmts := parse(t, `fn f(): void { let x = a == b == c; }`)
	fn := stmts[0].(*ast.FunctionStmt)
	decl := fn.Body.Stmts[0].(*ast.VariableDeclaration)
	outer, ok := decl.Init.(*ast.BinaryLogic)
	require.True(t, ok)
	assert.Equal(t, ast.OpEqual, outer.Op)
	// a == (b == c): outer.Left is the identifier "a", outer.Right recurses.
	_, leftIsIdent := outer.Left.(*ast.Identifier)
	assert.True(t, leftIsIdent)
	inner, ok := outer.Right.(*ast.BinaryLogic)
	require.True(t, ok)
	assert.Equal(t, ast.OpEqual, inner.Op)
}

func TestParsesStructDeclaration(t *testing.T) {
	stmts := parse(t, `struct Point { x: number; y: number; }`)
	st := stmts[0].(*ast.StructStmt)
	assert.Equal(t, "Point", st.Name)
	require.Len(t, st.Fields, 2)
	assert.Equal(t, "x", st.Fields[0].Name)
}

func TestParsesImport(t *testing.T) {
	stmts := parse(t, `import "other/mod";`)
	im := stmts[0].(*ast.Import)
	assert.Equal(t, "other/mod", im.ModulePath)
}

func TestParsesForLoopClauses(t *testing.T) {
	stmts := parse(t, `
fn f(): void {
	for (let i: number = 0; i < 10; i = i + 1) {
		break;
	}
}`)
	fn := stmts[0].(*ast.FunctionStmt)
	forStmt, ok := fn.Body.Stmts[0].(*ast.For)
	require.True(t, ok)
	assert.Equal(t, "i", forStmt.InitDecl.Name)
	_, stepIsAssign := forStmt.Step.(*ast.VariableAssignment)
	assert.True(t, stepIsAssign)
	require.Len(t, forStmt.Body.Stmts, 1)
	_, isBreak := forStmt.Body.Stmts[0].(*ast.Break)
	assert.True(t, isBreak)
}

func TestParsesPointerAndArrayTypes(t *testing.T) {
	stmts := parse(t, `fn f(p: ptr number, a: [number; 3]): void { }`)
	fn := stmts[0].(*ast.FunctionStmt)
	assert.Equal(t, ast.PointerTo(ast.Number), fn.Params[0].Type)
	assert.Equal(t, ast.ArrayOf(ast.Number, 3), fn.Params[1].Type)
}

func TestParsesMemberAndArrayAccessChain(t *testing.T) {
	stmts := parse(t, `fn f(): void { let x = a.b[0].c; }`)
	fn := stmts[0].(*ast.FunctionStmt)
	decl := fn.Body.Stmts[0].(*ast.VariableDeclaration)
	outer, ok := decl.Init.(*ast.MemberAccess)
	require.True(t, ok)
	assert.Equal(t, "c", outer.Field)
}

func TestParsesAddrofAndDeref(t *testing.T) {
	stmts := parse(t, `fn f(): void { let x = deref addrof y; }`)
	fn := stmts[0].(*ast.FunctionStmt)
	decl := fn.Body.Stmts[0].(*ast.VariableDeclaration)
	deref, ok := decl.Init.(*ast.DeReference)
	require.True(t, ok)
	addr, ok := deref.Target.(*ast.AddressOf)
	require.True(t, ok)
	assert.Equal(t, "y", addr.Target.Name)
}

func TestParsesStructLiteralAndCall(t *testing.T) {
	stmts := parse(t, `fn f(): void { let p = struct Point { 1, 2 }; let s = add(p, 3); }`)
	fn := stmts[0].(*ast.FunctionStmt)
	decl := fn.Body.Stmts[0].(*ast.VariableDeclaration)
	lit, ok := decl.Init.(*ast.StructLiteral)
	require.True(t, ok)
	assert.Equal(t, "Point", lit.TypeName)
	require.Len(t, lit.Fields, 2)

	decl2 := fn.Body.Stmts[1].(*ast.VariableDeclaration)
	call, ok := decl2.Init.(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, "add", call.Name)
	require.Len(t, call.Args, 2)
}

func TestSyntaxErrorStopsParse(t *testing.T) {
	toks := lexAll(t, `fn f(: void { }`)
	p := parser.New(toks, "t.lht", "t")
	stmts, diags, err := p.Parse()
	assert.Nil(t, stmts)
	require.Error(t, err)
	assert.True(t, diags.HasErrors())
}

func TestFunctionWithoutReturnTypeIsRejected(t *testing.T) {
	toks := lexAll(t, `fn f() { return 1; }`)
	p := parser.New(toks, "t.lht", "t")
	stmts, diags, err := p.Parse()
	assert.Nil(t, stmts)
	require.Error(t, err)
	assert.True(t, diags.HasErrors())
}
