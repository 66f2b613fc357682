package token

import (
	"io"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/grailbio/base/log"
)

// Lexer tokenizes light source text on top of text/scanner, the same
// foundation grailbio-gql/gql/lex.go builds its own tokenizer on (custom
// IsIdentRune, a keyword table, and a small multi-character-operator
// lookahead), generalized here to light's operator set.
type Lexer struct {
	sc       scanner.Scanner
	filename string

	// errored is set by sc.Error when text/scanner hits a problem scanning
	// the token currently in progress (e.g. an unterminated string or char
	// literal) and cleared before every Scan call. text/scanner still
	// returns a String/Char token kind in that case (see scanner.go's
	// scanString/scanChar), so this is the only signal Next has that the
	// literal it's about to build a token from was never actually closed.
	errored bool
}

// NewLexer creates a Lexer reading from in; filename is attached to every
// token's position for diagnostics.
func NewLexer(filename string, in io.Reader) *Lexer {
	lex := &Lexer{filename: filename}
	lex.sc.Init(in)
	lex.sc.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats |
		scanner.ScanStrings | scanner.ScanChars | scanner.ScanComments | scanner.SkipComments
	lex.sc.Filename = filename
	lex.sc.IsIdentRune = func(ch rune, i int) bool {
		return ch == '_' || unicode.IsLetter(ch) || (unicode.IsDigit(ch) && i > 0)
	}
	lex.sc.Error = func(_ *scanner.Scanner, msg string) {
		lex.errored = true
		log.Debug.Printf("%s: lexer: %s", filename, msg)
	}
	return lex
}

var twoCharOps = map[string]Kind{
	"==": EqEq,
	"!=": NotEq,
	"<=": LessEq,
	">=": MoreEq,
}

var oneCharOps = map[rune]Kind{
	'{': LBrace, '}': RBrace,
	'(': LParen, ')': RParen,
	'[': LBracket, ']': RBracket,
	',': Comma, ';': Semicolon, ':': Colon, '=': Assign,
	'<': Less, '>': More,
	'+': Plus, '-': Minus, '*': Star, '/': Slash, '%': Percent,
	'.': Dot,
}

// Next scans and returns the next token. It returns an EOF token once the
// input is exhausted; callers should stop calling Next after that.
func (l *Lexer) Next() Token {
	l.errored = false
	tok := l.sc.Scan()
	pos := Position{Line: l.sc.Position.Line, Column: l.sc.Position.Column}

	switch tok {
	case scanner.EOF:
		return Token{Kind: EOF, Pos: pos}
	case scanner.Ident:
		text := l.sc.TokenText()
		return Token{Kind: LookupIdent(text), Lexeme: text, Pos: pos}
	case scanner.Int:
		return Token{Kind: Number, Lexeme: l.sc.TokenText(), Pos: pos}
	case scanner.Float:
		return Token{Kind: Real, Lexeme: l.sc.TokenText(), Pos: pos}
	case scanner.String, scanner.RawString:
		text := l.sc.TokenText()
		if l.errored {
			return Token{Kind: Error, Lexeme: text, Pos: pos}
		}
		return Token{Kind: StringLiteral, Lexeme: strings.Trim(text, `"`+"`"), Pos: pos}
	case scanner.Char:
		text := l.sc.TokenText()
		if l.errored {
			return Token{Kind: Error, Lexeme: text, Pos: pos}
		}
		return Token{Kind: CharLiteral, Lexeme: strings.Trim(text, "'"), Pos: pos}
	default:
		return l.scanOperator(rune(tok), pos)
	}
}

func (l *Lexer) scanOperator(first rune, pos Position) Token {
	switch first {
	case '!', '<', '>', '=':
		if l.sc.Peek() == '=' {
			two := string(first) + "="
			l.sc.Next()
			if k, ok := twoCharOps[two]; ok {
				return Token{Kind: k, Lexeme: two, Pos: pos}
			}
		}
	}
	if k, ok := oneCharOps[first]; ok {
		return Token{Kind: k, Lexeme: string(first), Pos: pos}
	}
	return Token{Kind: Error, Lexeme: string(first), Pos: pos}
}

// Filename returns the name this lexer was constructed with.
func (l *Lexer) Filename() string { return l.filename }
