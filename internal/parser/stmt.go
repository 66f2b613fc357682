package parser

import (
	"github.com/light-lang/lightc/internal/ast"
	"github.com/light-lang/lightc/internal/token"
)

// parseTopStmt implements the top-level production in spec §4.1:
//
//	top_stmt := import | ("export")? (function | struct)
func (p *Parser) parseTopStmt() ast.Stmt {
	if p.check(token.KwImport) {
		return p.parseImport()
	}
	exported := false
	if _, ok := p.match(token.KwExport); ok {
		exported = true
	}
	switch {
	case p.check(token.KwFn):
		return p.parseFunction(exported)
	case p.check(token.KwStruct):
		return p.parseStruct(exported)
	default:
		t := p.peek()
		p.fail(p.pos(t), "expected 'import', 'fn' or 'struct' at top level, found %s %q", t.Kind, t.Lexeme)
		return nil
	}
}

// parseImport: import := "import" string ";"
func (p *Parser) parseImport() ast.Stmt {
	kw := p.advance()
	pathTok := p.expect(token.StringLiteral, "expected a quoted module path after 'import'")
	p.expect(token.Semicolon, "expected ';' after import")
	return &ast.Import{Span: p.pos(kw), FilePath: p.filename, ModulePath: pathTok.Lexeme}
}

// parseFunction: function := "fn" ident params ":" type (block | ";")
func (p *Parser) parseFunction(exported bool) ast.Stmt {
	kw := p.expect(token.KwFn, "expected 'fn'")
	nameTok := p.expect(token.Ident, "expected a function name after 'fn'")
	params := p.parseParams()

	p.expect(token.Colon, "expected ':' after ')', function return type must be declared")
	retType := p.parseType()

	if _, ok := p.match(token.Semicolon); ok {
		return &ast.FunctionStmt{
			Span: p.pos(kw), Name: nameTok.Lexeme, Params: params,
			ReturnType: retType, Body: nil, Exported: exported,
		}
	}
	body := p.parseBlock()
	return &ast.FunctionStmt{
		Span: p.pos(kw), Name: nameTok.Lexeme, Params: params,
		ReturnType: retType, Body: body, Exported: exported,
	}
}

// parseParams: params := "(" (param ("," param)*)? ")", param := ident ":" type
func (p *Parser) parseParams() []ast.Param {
	p.expect(token.LParen, "expected '(' to start a parameter list")
	if _, ok := p.match(token.RParen); ok {
		return nil
	}
	var params []ast.Param
	for {
		nameTok := p.expect(token.Ident, "expected a parameter name")
		p.expect(token.Colon, "expected ':' after parameter name")
		ty := p.parseType()
		params = append(params, ast.Param{Name: nameTok.Lexeme, Type: ty})
		if _, ok := p.match(token.Comma); !ok {
			break
		}
	}
	p.expect(token.RParen, "expected ')' to close parameter list")
	return params
}

// parseStruct: struct := "struct" ident "{" (field ";")* "}", field := ident ":" type
func (p *Parser) parseStruct(exported bool) ast.Stmt {
	kw := p.expect(token.KwStruct, "expected 'struct'")
	nameTok := p.expect(token.Ident, "expected a struct name")
	p.expect(token.LBrace, "expected '{' after struct name")
	var fields []ast.Field
	for !p.check(token.RBrace) {
		fieldTok := p.expect(token.Ident, "expected a field name")
		p.expect(token.Colon, "expected ':' after field name")
		ty := p.parseType()
		p.expect(token.Semicolon, "expected ';' after struct field")
		fields = append(fields, ast.Field{Name: fieldTok.Lexeme, Type: ty})
	}
	p.expect(token.RBrace, "expected '}' to close struct body")
	return &ast.StructStmt{Span: p.pos(kw), Name: nameTok.Lexeme, Fields: fields, Exported: exported}
}

// parseBlock: block := "{" stmt* "}"
func (p *Parser) parseBlock() *ast.Block {
	lb := p.expect(token.LBrace, "expected '{' to start a block")
	var stmts []ast.Stmt
	for !p.check(token.RBrace) {
		stmts = append(stmts, p.parseStmt())
	}
	p.expect(token.RBrace, "expected '}' to close block")
	return &ast.Block{Span: p.pos(lb), Stmts: stmts}
}

// parseStmt implements the inner-statement grammar:
//
//	stmt := decl | if | while | for | return | break | block | assign_or_expr
func (p *Parser) parseStmt() ast.Stmt {
	switch {
	case p.check(token.KwLet):
		return p.parseDecl()
	case p.check(token.KwIf):
		return p.parseIf()
	case p.check(token.KwWhile):
		return p.parseWhile()
	case p.check(token.KwFor):
		return p.parseFor()
	case p.check(token.KwReturn):
		return p.parseReturn()
	case p.check(token.KwBreak):
		return p.parseBreak()
	case p.check(token.LBrace):
		return p.parseBlock()
	default:
		return p.parseAssignOrExpr()
	}
}

// parseDecl: decl := "let" ident (":" type)? "=" expr ";"
func (p *Parser) parseDecl() ast.Stmt {
	kw := p.advance()
	nameTok := p.expect(token.Ident, "expected a variable name after 'let'")
	declaredType := ast.Invalid
	if _, ok := p.match(token.Colon); ok {
		declaredType = p.parseType()
	}
	p.expect(token.Assign, "expected '=' in 'let' declaration")
	init := p.parseExpr()
	p.expect(token.Semicolon, "expected ';' after 'let' declaration")
	return &ast.VariableDeclaration{
		Span: p.pos(kw), Name: nameTok.Lexeme, DeclaredType: declaredType, Init: init,
	}
}

// parseIf: if := "if" expr block ("else" (if | block))?
func (p *Parser) parseIf() ast.Stmt {
	kw := p.advance()
	cond := p.parseExpr()
	then := p.parseBlock()
	var elseBlock *ast.Block
	if _, ok := p.match(token.KwElse); ok {
		if p.check(token.KwIf) {
			nested := p.parseIf().(*ast.If)
			elseBlock = &ast.Block{Span: nested.Span, Stmts: []ast.Stmt{nested}}
		} else {
			elseBlock = p.parseBlock()
		}
	}
	return &ast.If{Span: p.pos(kw), Cond: cond, Then: then, Else: elseBlock}
}

// parseWhile: while := "while" expr block
func (p *Parser) parseWhile() ast.Stmt {
	kw := p.advance()
	cond := p.parseExpr()
	body := p.parseBlock()
	return &ast.While{Span: p.pos(kw), Cond: cond, Body: body}
}

// parseFor: for := "for" "(" decl expr ";" assign_or_expr ")" block
//
// The surface for-loop's three clauses (spec §4.3): an init declaration,
// a condition, and a step statement, the latter sharing assign_or_expr's
// grammar rather than requiring a trailing semicolon of its own.
func (p *Parser) parseFor() ast.Stmt {
	kw := p.advance()
	p.expect(token.LParen, "expected '(' after 'for'")
	initDecl := p.parseDecl().(*ast.VariableDeclaration)
	cond := p.parseExpr()
	p.expect(token.Semicolon, "expected ';' after 'for' condition")
	step := p.parseAssignOrExprNoSemicolon()
	p.expect(token.RParen, "expected ')' to close 'for' clauses")
	body := p.parseBlock()
	return &ast.For{Span: p.pos(kw), InitDecl: initDecl, Cond: cond, Step: step, Body: body}
}

// parseReturn: return := "return" expr ";"
func (p *Parser) parseReturn() ast.Stmt {
	kw := p.advance()
	expr := p.parseExpr()
	p.expect(token.Semicolon, "expected ';' after 'return' expression")
	return &ast.Return{Span: p.pos(kw), Expr: expr}
}

// parseBreak: break := "break" ";"
func (p *Parser) parseBreak() ast.Stmt {
	kw := p.advance()
	p.expect(token.Semicolon, "expected ';' after 'break'")
	return &ast.Break{Span: p.pos(kw)}
}

// parseAssignOrExpr: assign_or_expr := expr ("=" expr)? ";"
func (p *Parser) parseAssignOrExpr() ast.Stmt {
	stmt := p.parseAssignOrExprNoSemicolon()
	p.expect(token.Semicolon, "expected ';' after statement")
	return stmt
}

// parseAssignOrExprNoSemicolon parses the same shape without requiring (or
// consuming) a trailing semicolon — used standalone for assign_or_expr and
// as the step clause of a for-loop, which is bounded by ')' rather than ';'.
func (p *Parser) parseAssignOrExprNoSemicolon() ast.Stmt {
	start := p.curPos()
	expr := p.parseExpr()
	if _, ok := p.match(token.Assign); ok {
		rhs := p.parseExpr()
		return &ast.VariableAssignment{Span: start, LHS: expr, RHS: rhs}
	}
	return &ast.ExprStmt{Span: start, Expr: expr}
}
