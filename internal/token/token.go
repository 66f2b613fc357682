// Package token defines the token stream the parser consumes (spec §6.1).
// The lexer's internals are an external collaborator per the spec; this
// package provides one concrete implementation so the parser and its tests
// have a real token producer to run against.
package token

import "fmt"

// Kind classifies a token.
type Kind int

const (
	EOF Kind = iota
	Error

	Ident
	Number
	Real
	StringLiteral
	CharLiteral

	// Keywords
	KwIf
	KwElse
	KwWhile
	KwFor
	KwLet
	KwReturn
	KwBreak
	KwFn
	KwImport
	KwExport
	KwStruct
	KwTrue
	KwFalse
	KwAnd
	KwOr
	KwNot
	KwAddrof
	KwDeref
	KwNull
	KwPtr

	// Type names
	TyNumber
	TyReal
	TyBool
	TyString
	TyVoid
	TyChar

	// Punctuation
	LBrace
	RBrace
	LParen
	RParen
	LBracket
	RBracket
	Comma
	Semicolon
	Colon
	Assign // '='

	EqEq
	NotEq
	Less
	LessEq
	More
	MoreEq
	Plus
	Minus
	Star
	Slash
	Percent
	Dot
)

var keywords = map[string]Kind{
	"if":     KwIf,
	"else":   KwElse,
	"while":  KwWhile,
	"for":    KwFor,
	"let":    KwLet,
	"return": KwReturn,
	"break":  KwBreak,
	"fn":     KwFn,
	"import": KwImport,
	"export": KwExport,
	"struct": KwStruct,
	"true":   KwTrue,
	"false":  KwFalse,
	"and":    KwAnd,
	"or":     KwOr,
	"not":    KwNot,
	"addrof": KwAddrof,
	"deref":  KwDeref,
	"null":   KwNull,
	"ptr":    KwPtr,

	"number": TyNumber,
	"real":   TyReal,
	"bool":   TyBool,
	"string": TyString,
	"void":   TyVoid,
	"char":   TyChar,
}

// LookupIdent reports whether word is a keyword/type-name token; if so it
// returns that Kind, otherwise Ident.
func LookupIdent(word string) Kind {
	if k, ok := keywords[word]; ok {
		return k
	}
	return Ident
}

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Error:
		return "Error"
	case Ident:
		return "Identifier"
	case Number:
		return "Number"
	case Real:
		return "Real"
	case StringLiteral:
		return "StringLiteral"
	case CharLiteral:
		return "CharLiteral"
	default:
		if name, ok := punctNames[k]; ok {
			return name
		}
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

var punctNames = map[Kind]string{
	KwIf: "if", KwElse: "else", KwWhile: "while", KwFor: "for", KwLet: "let",
	KwReturn: "return", KwBreak: "break", KwFn: "fn", KwImport: "import",
	KwExport: "export", KwStruct: "struct", KwTrue: "true", KwFalse: "false",
	KwAnd: "and", KwOr: "or", KwNot: "not", KwAddrof: "addrof", KwDeref: "deref",
	KwNull: "null", KwPtr: "ptr",
	TyNumber: "number", TyReal: "real", TyBool: "bool", TyString: "string",
	TyVoid: "void", TyChar: "char",
	LBrace: "{", RBrace: "}", LParen: "(", RParen: ")", LBracket: "[", RBracket: "]",
	Comma: ",", Semicolon: ";", Colon: ":", Assign: "=",
	EqEq: "==", NotEq: "!=", Less: "<", LessEq: "<=", More: ">", MoreEq: ">=",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%", Dot: ".",
}

// Position is a 1-based source location.
type Position struct {
	Line   int
	Column int
}

// Token is one lexical unit: its kind, its literal text, and the position
// of its first character.
type Token struct {
	Kind   Kind
	Lexeme string
	Pos    Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Kind, t.Lexeme, t.Pos.Line, t.Pos.Column)
}
