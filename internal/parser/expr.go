package parser

import (
	"strconv"

	"github.com/light-lang/lightc/internal/ast"
	"github.com/light-lang/lightc/internal/token"
)

// parseInt and parseFloat convert a literal token's lexeme, failing the
// parse (rather than panicking on a malformed literal) if the lexer ever
// handed us a Number/Real token whose text doesn't parse — which should
// only happen on lexer bugs, not on well-formed input.
func parseInt(p *Parser, tok token.Token) int64 {
	v, err := strconv.ParseInt(tok.Lexeme, 10, 64)
	if err != nil {
		p.fail(p.pos(tok), "invalid integer literal %q", tok.Lexeme)
	}
	return v
}

func parseFloat(p *Parser, tok token.Token) float64 {
	v, err := strconv.ParseFloat(tok.Lexeme, 64)
	if err != nil {
		p.fail(p.pos(tok), "invalid real literal %q", tok.Lexeme)
	}
	return v
}

// parseExpr is the grammar's `expr` entry point.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseOr()
}

// parseOr: or := and ("or" and)*
func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for {
		tok, ok := p.match(token.KwOr)
		if !ok {
			return left
		}
		right := p.parseAnd()
		left = &ast.BinaryLogic{Span: p.pos(tok), Op: ast.OpOr, Left: left, Right: right}
	}
}

// parseAnd: and := equality ("and" equality)*
func (p *Parser) parseAnd() ast.Expr {
	left := p.parseEquality()
	for {
		tok, ok := p.match(token.KwAnd)
		if !ok {
			return left
		}
		right := p.parseEquality()
		left = &ast.BinaryLogic{Span: p.pos(tok), Op: ast.OpAnd, Left: left, Right: right}
	}
}

// parseEquality: equality := comparison (("=="|"!=") comparison)*, but
// right-associative — intentional, matching the source behavior spec §4.1
// and §9 call out explicitly ("a == b == c" parses as "a == (b == c)").
func (p *Parser) parseEquality() ast.Expr {
	left := p.parseComparison()
	if tok, ok := p.match(token.EqEq); ok {
		right := p.parseEquality()
		return &ast.BinaryLogic{Span: p.pos(tok), Op: ast.OpEqual, Left: left, Right: right}
	}
	if tok, ok := p.match(token.NotEq); ok {
		right := p.parseEquality()
		return &ast.BinaryLogic{Span: p.pos(tok), Op: ast.OpNotEqual, Left: left, Right: right}
	}
	return left
}

// parseComparison: comparison := term (("<"|">"|"<="|">=") term)*
func (p *Parser) parseComparison() ast.Expr {
	left := p.parseTerm()
	for {
		tok, ok := p.matchAny(token.Less, token.More, token.LessEq, token.MoreEq)
		if !ok {
			return left
		}
		right := p.parseTerm()
		op := comparisonOp(tok.Kind)
		left = &ast.BinaryLogic{Span: p.pos(tok), Op: op, Left: left, Right: right}
	}
}

func comparisonOp(k token.Kind) ast.LogicOp {
	switch k {
	case token.Less:
		return ast.OpLess
	case token.More:
		return ast.OpMore
	case token.LessEq:
		return ast.OpLessEqual
	case token.MoreEq:
		return ast.OpMoreEqual
	default:
		panic("unreachable comparison operator")
	}
}

// parseTerm: term := factor (("+"|"-") factor)*
func (p *Parser) parseTerm() ast.Expr {
	left := p.parseFactor()
	for {
		tok, ok := p.matchAny(token.Plus, token.Minus)
		if !ok {
			return left
		}
		right := p.parseFactor()
		op := ast.OpPlus
		if tok.Kind == token.Minus {
			op = ast.OpMinus
		}
		left = &ast.Binary{Span: p.pos(tok), Op: op, Left: left, Right: right}
	}
}

// parseFactor: factor := unary (("*"|"/"|"%") unary)*
func (p *Parser) parseFactor() ast.Expr {
	left := p.parseUnary()
	for {
		tok, ok := p.matchAny(token.Star, token.Slash, token.Percent)
		if !ok {
			return left
		}
		right := p.parseUnary()
		var op ast.BinaryOp
		switch tok.Kind {
		case token.Star:
			op = ast.OpMultiply
		case token.Slash:
			op = ast.OpDivide
		case token.Percent:
			op = ast.OpModulo
		}
		left = &ast.Binary{Span: p.pos(tok), Op: op, Left: left, Right: right}
	}
}

// parseUnary: unary := ("-"|"not")? call — binds tighter than any binary
// operator and associates right.
func (p *Parser) parseUnary() ast.Expr {
	if tok, ok := p.match(token.Minus); ok {
		return &ast.Unary{Span: p.pos(tok), Op: ast.OpNegate, Operand: p.parseUnary()}
	}
	if tok, ok := p.match(token.KwNot); ok {
		return &ast.Unary{Span: p.pos(tok), Op: ast.OpNot, Operand: p.parseUnary()}
	}
	return p.parseCall()
}

// parseCall: call := primary ("(" (expr ("," expr)*)? ")")?
func (p *Parser) parseCall() ast.Expr {
	expr := p.parsePrimary()
	if name, ok := expr.(*ast.Identifier); ok {
		if lp, ok := p.match(token.LParen); ok {
			args := p.parseArgs()
			p.expect(token.RParen, "expected ')' after call arguments")
			return &ast.Call{Span: p.pos(lp), Name: name.Name, Args: args}
		}
	}
	return expr
}

func (p *Parser) parseArgs() []ast.Expr {
	if p.check(token.RParen) {
		return nil
	}
	args := []ast.Expr{p.parseExpr()}
	for {
		if _, ok := p.match(token.Comma); !ok {
			return args
		}
		args = append(args, p.parseExpr())
	}
}

// parsePrimary: primary := number | real | true | false | string
//
//	| "null" | ident | "(" expr ")"
//	| "addrof" ident | "deref" expr
//	| ident "[" expr "]"       -- array access
//	| ident "." ident          -- member access
//	| "struct" ident "{" (expr ("," expr)*)? "}"
func (p *Parser) parsePrimary() ast.Expr {
	tok := p.peek()
	switch tok.Kind {
	case token.Number:
		p.advance()
		return &ast.NumberLit{Span: p.pos(tok), Value: parseInt(p, tok)}
	case token.Real:
		p.advance()
		return &ast.RealLit{Span: p.pos(tok), Value: parseFloat(p, tok)}
	case token.KwTrue:
		p.advance()
		return &ast.BoolLit{Span: p.pos(tok), Value: true}
	case token.KwFalse:
		p.advance()
		return &ast.BoolLit{Span: p.pos(tok), Value: false}
	case token.StringLiteral:
		p.advance()
		return &ast.StringLit{Span: p.pos(tok), Value: tok.Lexeme}
	case token.CharLiteral:
		p.advance()
		r := []rune(tok.Lexeme)
		var v rune
		if len(r) > 0 {
			v = r[0]
		}
		return &ast.CharLit{Span: p.pos(tok), Value: v}
	case token.KwNull:
		p.advance()
		return &ast.NullLit{Span: p.pos(tok)}
	case token.LParen:
		p.advance()
		inner := p.parseExpr()
		p.expect(token.RParen, "expected ')' to close '('")
		return &ast.Group{Span: p.pos(tok), Inner: inner}
	case token.KwAddrof:
		p.advance()
		idTok := p.expect(token.Ident, "expected an identifier after 'addrof'")
		return &ast.AddressOf{
			Span:   p.pos(tok),
			Target: &ast.Identifier{Span: p.pos(idTok), Name: idTok.Lexeme},
		}
	case token.KwDeref:
		p.advance()
		target := p.parseUnary()
		return &ast.DeReference{Span: p.pos(tok), Target: target}
	case token.KwStruct:
		p.advance()
		nameTok := p.expect(token.Ident, "expected a struct name after 'struct'")
		p.expect(token.LBrace, "expected '{' after struct name")
		var fields []ast.Expr
		if !p.check(token.RBrace) {
			fields = p.parseArgs()
		}
		p.expect(token.RBrace, "expected '}' to close struct literal")
		return &ast.StructLiteral{Span: p.pos(tok), TypeName: nameTok.Lexeme, Fields: fields}
	case token.Ident:
		p.advance()
		var expr ast.Expr = &ast.Identifier{Span: p.pos(tok), Name: tok.Lexeme}
		for {
			if lb, ok := p.match(token.LBracket); ok {
				index := p.parseExpr()
				p.expect(token.RBracket, "unclosed '[' in array access")
				expr = &ast.ArrayAccess{Span: p.pos(lb), Base: expr, Index: index}
				continue
			}
			if dot, ok := p.match(token.Dot); ok {
				fieldTok := p.expect(token.Ident, "expected a field name after '.'")
				expr = &ast.MemberAccess{Span: p.pos(dot), Object: expr, Field: fieldTok.Lexeme}
				continue
			}
			break
		}
		return expr
	default:
		p.fail(p.pos(tok), "expected an expression, found %s %q", tok.Kind, tok.Lexeme)
		return nil
	}
}
