// Package parser implements the recursive-descent, precedence-climbing
// parser described in spec §4.1. It consumes a flat token sequence (the
// lexer is an external collaborator — see internal/token for the one this
// repo ships) and produces a raw AST: a flat ordered sequence of top-level
// Import/Function/Struct statements, or a failure.
package parser

import (
	"github.com/light-lang/lightc/internal/ast"
	"github.com/light-lang/lightc/internal/diag"
	"github.com/light-lang/lightc/internal/token"
)

// Parser holds the state kept during parsing of one file's token stream.
// It is not safe for concurrent use and is discarded after one Parse call.
type Parser struct {
	tokens     []token.Token
	pos        int // index of the current (not yet consumed) token
	filename   string
	modulePath string
	diags      diag.Bag
}

// New creates a Parser over tokens. filename is used in diagnostics and
// recorded on every AST node's span. modulePath is stored on the Parser but
// written into no node: an Import node records the quoted path exactly as
// it appears in the source, and the resolver joins that against the
// importing file's directory (spec §4.2).
func New(tokens []token.Token, filename, modulePath string) *Parser {
	return &Parser{tokens: tokens, filename: filename, modulePath: modulePath}
}

// abortParse is panicked to unwind out of a deeply nested recursive-descent
// call stack on the first syntax error, matching spec §4.1's "no
// recovery": a syntax error fails the whole file's parse immediately. This
// mirrors grailbio-gql's panic.go idiom (Panicf + a single top-level
// Recover) rather than threading error returns through every grammar rule.
type abortParse struct{}

// Parse runs the grammar in spec §4.1 over the whole token stream. On
// success it returns the flat top-level statement list and a nil error. On
// failure it returns nil and the one diagnostic describing the syntax
// error; per spec §4.1 the parser does not attempt recovery within a file.
func (p *Parser) Parse() (stmts []ast.Stmt, diags *diag.Bag, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(abortParse); ok {
				stmts, diags, err = nil, &p.diags, &p.diags
				return
			}
			panic(r)
		}
	}()

	var out []ast.Stmt
	for !p.check(token.EOF) {
		out = append(out, p.parseTopStmt())
	}
	return out, &p.diags, nil
}

func (p *Parser) fail(pos ast.Position, format string, args ...interface{}) {
	p.diags.Addf(pos, format, args...)
	panic(abortParse{})
}

func (p *Parser) pos(t token.Token) ast.Position {
	return ast.Position{File: p.filename, Line: t.Pos.Line, Column: t.Pos.Column}
}

func (p *Parser) curPos() ast.Position { return p.pos(p.peek()) }

// peek returns the current token without consuming it.
func (p *Parser) peek() token.Token {
	if p.pos >= len(p.tokens) {
		if len(p.tokens) == 0 {
			return token.Token{Kind: token.EOF}
		}
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

// previous returns the most recently consumed token; used when an EOF is
// hit mid-construct so the reported position is the last real token (spec
// §4.1 "Positions").
func (p *Parser) previous() token.Token {
	if p.pos == 0 {
		return p.peek()
	}
	return p.tokens[p.pos-1]
}

func (p *Parser) check(k token.Kind) bool { return p.peek().Kind == k }

// advance consumes and returns the current token.
func (p *Parser) advance() token.Token {
	t := p.peek()
	if t.Kind != token.EOF {
		p.pos++
	}
	return t
}

// match consumes and returns the current token if its kind is k.
func (p *Parser) match(k token.Kind) (token.Token, bool) {
	if p.check(k) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// matchAny consumes and returns the current token if its kind is one of ks.
func (p *Parser) matchAny(ks ...token.Kind) (token.Token, bool) {
	for _, k := range ks {
		if t, ok := p.match(k); ok {
			return t, true
		}
	}
	return token.Token{}, false
}

// expect consumes the current token, failing the parse with msg if its
// kind is not k.
func (p *Parser) expect(k token.Kind, msg string) token.Token {
	if t, ok := p.match(k); ok {
		return t
	}
	t := p.peek()
	if t.Kind == token.EOF {
		p.fail(p.pos(p.previous()), "unexpected end of file: %s", msg)
	}
	p.fail(p.pos(t), "%s (found %s %q)", msg, t.Kind, t.Lexeme)
	return token.Token{}
}
