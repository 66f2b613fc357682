package parser

import (
	"strconv"

	"github.com/light-lang/lightc/internal/ast"
	"github.com/light-lang/lightc/internal/token"
)

// parseType implements the `type` production from spec §4.1's grammar:
//
//	type := "number" | "real" | "bool" | "string" | "void"
//	      | "ptr" type
//	      | "[" type ";" int_literal "]"
//	      | ident
func (p *Parser) parseType() ast.ValueType {
	switch {
	case p.check(token.TyNumber):
		p.advance()
		return ast.Number
	case p.check(token.TyReal):
		p.advance()
		return ast.Real
	case p.check(token.TyBool):
		p.advance()
		return ast.Bool
	case p.check(token.TyString):
		p.advance()
		return ast.String
	case p.check(token.TyVoid):
		p.advance()
		return ast.Void
	case p.check(token.TyChar):
		p.advance()
		return ast.Char
	case p.check(token.KwPtr):
		p.advance()
		inner := p.parseType()
		return ast.PointerTo(inner)
	case p.check(token.LBracket):
		p.advance()
		elem := p.parseType()
		p.expect(token.Semicolon, "expected ';' after array element type")
		sizeTok := p.expect(token.Number, "expected a constant array size")
		size, err := strconv.Atoi(sizeTok.Lexeme)
		if err != nil {
			p.fail(p.pos(sizeTok), "invalid array size %q", sizeTok.Lexeme)
		}
		p.expect(token.RBracket, "unclosed '[' in array type")
		return ast.ArrayOf(elem, size)
	case p.check(token.Ident):
		name := p.advance().Lexeme
		return ast.StructNamed(name)
	default:
		t := p.peek()
		p.fail(p.pos(t), "expected a type name, found %s %q", t.Kind, t.Lexeme)
		return ast.Invalid
	}
}
