package typecheck_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-lang/lightc/internal/ast"
	"github.com/light-lang/lightc/internal/desugar"
	"github.com/light-lang/lightc/internal/diag"
	"github.com/light-lang/lightc/internal/parser"
	"github.com/light-lang/lightc/internal/token"
	"github.com/light-lang/lightc/internal/typecheck"
)

func lexAll(src string) []token.Token {
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

// compile runs the parser and desugarer (no import resolution — these
// fixtures are single-file) and type-checks the result, returning the
// checked statements and the accumulated diagnostics.
func compile(t *testing.T, src string) ([]ast.Stmt, *diag.Bag) {
	t.Helper()
	toks := lexAll(src)
	p := parser.New(toks, "t.lht", "t")
	stmts, _, err := p.Parse()
	require.NoError(t, err)
	stmts = desugar.Desugar(stmts)
	c := typecheck.New()
	out, diags := c.Check(stmts)
	return out, diags
}

func TestScenario1_MutualCallsAccepted(t *testing.T) {
	_, diags := compile(t, `
fn add(a: number, b: number): number { return a + b; }
fn main(): number { return add(1, 2); }
`)
	assert.False(t, diags.HasErrors(), "%v", diags.Items())
}

func TestScenario2_ArgumentTypeMismatchRejected(t *testing.T) {
	_, diags := compile(t, `
fn f(b: bool): bool { return b; }
fn main(): number { f(42); return 0; }
`)
	assert.True(t, diags.HasErrors())
}

func TestScenario3_ArrayAccessLvalueFlags(t *testing.T) {
	stmts, diags := compile(t, `
fn main(): void {
	let arr: [number; 10] = 0;
	arr[3] = 7;
	let x: number = arr[3];
}
`)
	require.False(t, diags.HasErrors(), "%v", diags.Items())
	fn := stmts[0].(*ast.FunctionStmt)
	assign := fn.Body.Stmts[1].(*ast.VariableAssignment)
	writeAccess := assign.LHS.(*ast.ArrayAccess)
	assert.True(t, writeAccess.IsLValue())

	decl := fn.Body.Stmts[2].(*ast.VariableDeclaration)
	readAccess := decl.Init.(*ast.ArrayAccess)
	assert.False(t, readAccess.IsLValue())
	assert.Equal(t, ast.Number, readAccess.Type())
}

func TestScenario4_StructLiteralFieldTypeMismatchRejected(t *testing.T) {
	_, diags := compile(t, `
struct S { count: number; }
fn main(): void { let s: S = struct S { false }; }
`)
	assert.True(t, diags.HasErrors())
}

func TestScenario5_VoidPointerCompatibility(t *testing.T) {
	stmts, diags := compile(t, `
fn malloc(size: number): ptr void;
fn main(): void {
	let p: ptr number = malloc(80);
	p[0] = 1;
}
`)
	require.False(t, diags.HasErrors(), "%v", diags.Items())
	fn := stmts[1].(*ast.FunctionStmt)
	assign := fn.Body.Stmts[1].(*ast.VariableAssignment)
	access := assign.LHS.(*ast.ArrayAccess)
	assert.Equal(t, ast.Number, access.Type())
}

func TestScenario6_MissingReturnRejected(t *testing.T) {
	_, diags := compile(t, `fn f(): number {}`)
	assert.True(t, diags.HasErrors())
}

func TestBreakOutsideLoopRejected(t *testing.T) {
	_, diags := compile(t, `fn f(): void { break; }`)
	assert.True(t, diags.HasErrors())
}

func TestParameterRedeclarationInBodyAccepted(t *testing.T) {
	_, diags := compile(t, `fn f(a: number): void { let a: number = 1; }`)
	assert.False(t, diags.HasErrors(), "%v", diags.Items())
}

func TestNestedFunctionRejected(t *testing.T) {
	// The statement grammar has no `fn` form, so a nested function cannot be
	// written in source; build the AST directly to reach the checker's rule.
	inner := &ast.FunctionStmt{Name: "inner", ReturnType: ast.Void, Body: &ast.Block{}}
	outer := &ast.FunctionStmt{Name: "outer", ReturnType: ast.Void, Body: &ast.Block{Stmts: []ast.Stmt{inner}}}
	c := typecheck.New()
	_, diags := c.Check([]ast.Stmt{outer})
	assert.True(t, diags.HasErrors())
}

func TestRedeclarationInSameScopeRejected(t *testing.T) {
	_, diags := compile(t, `fn f(): void { let x: number = 1; let x: number = 2; }`)
	assert.True(t, diags.HasErrors())
}

func TestArrayRealMismatchRejected(t *testing.T) {
	_, diags := compile(t, `fn f(): void { let a: [number; 3] = 1.5; }`)
	assert.True(t, diags.HasErrors())
}

func TestForLiveCheckingBeforeDesugar(t *testing.T) {
	toks := lexAll(`
fn f(): void {
	for (let i: number = 0; i < 10; i = i + 1) { }
}
`)
	p := parser.New(toks, "t.lht", "t")
	stmts, _, err := p.Parse()
	require.NoError(t, err)
	// Intentionally skip desugaring to exercise the live For-checking path.
	c := typecheck.New()
	_, diags := c.Check(stmts)
	assert.False(t, diags.HasErrors(), "%v", diags.Items())
}

func TestForLiveCheckingRejectsBoolInit(t *testing.T) {
	toks := lexAll(`
fn f(): void {
	for (let i: bool = false; i; i = false) { }
}
`)
	p := parser.New(toks, "t.lht", "t")
	stmts, _, err := p.Parse()
	require.NoError(t, err)
	c := typecheck.New()
	_, diags := c.Check(stmts)
	assert.True(t, diags.HasErrors())
}

func TestMultipleIndependentErrorsAccumulate(t *testing.T) {
	_, diags := compile(t, `
fn f(): void {
	let a: number = true;
	let b: number = false;
}
`)
	assert.GreaterOrEqual(t, len(diags.Items()), 2)
}
