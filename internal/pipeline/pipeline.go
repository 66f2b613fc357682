// Package pipeline wires the lexer, Parser, ImportResolver, Desugarer and
// TypeChecker into the single data-flow spec §2 describes, the way
// grailbio-gql/main.go assembles its own components (parse, then eval) in
// sequence before handing a Session to the REPL.
package pipeline

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/grailbio/base/log"
	"github.com/pkg/errors"

	"github.com/light-lang/lightc/internal/ast"
	"github.com/light-lang/lightc/internal/desugar"
	"github.com/light-lang/lightc/internal/diag"
	"github.com/light-lang/lightc/internal/parser"
	"github.com/light-lang/lightc/internal/resolver"
	"github.com/light-lang/lightc/internal/token"
	"github.com/light-lang/lightc/internal/typecheck"
)

// Options configures one Compile call (spec §2.3): no global mutable
// config, every field is passed by value so concurrent compilations never
// share state.
type Options struct {
	// ModuleRoot is the directory import paths in the entry file are
	// resolved relative to. If empty, the entry file's own directory is
	// used.
	ModuleRoot string
	// Verbose turns on log.Debug tracing of phase transitions (spec §2.1).
	Verbose bool
}

// Result is everything a caller needs after a Compile call: the
// fully-checked statement list (type slots populated in place) and every
// diagnostic accumulated across parsing and type-checking. A non-empty
// Diags does not mean Stmts is nil — callers that want partial results for
// tooling can still inspect it — but Diags.HasErrors() must be checked
// before treating the compilation as successful.
type Result struct {
	Stmts []ast.Stmt
	Diags *diag.Bag
}

// osFileReader reads files directly off the local filesystem, the FileReader
// implementation resolver.Resolver uses outside of tests.
type osFileReader struct{}

func (osFileReader) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// lex tokenizes src with internal/token's Lexer, running it to completion
// (including the trailing EOF token the parser expects to see).
func lex(filename, src string) []token.Token {
	l := token.NewLexer(filename, strings.NewReader(src))
	var out []token.Token
	for {
		tok := l.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return out
}

// parseSource adapts internal/parser to resolver.ParseFunc's shape.
func parseSource(filename, modulePath, source string) ([]ast.Stmt, *diag.Bag, error) {
	toks := lex(filename, source)
	p := parser.New(toks, filename, modulePath)
	return p.Parse()
}

// Compile runs the full pipeline over the file at entryPath: lex, parse,
// resolve imports, desugar for-loops, then type-check. It returns as soon as
// a phase fails outright (a Go error — I/O failure, import cycle, or a
// syntax error, none of which leave a usable partial AST); type-check
// diagnostics are always returned in Result.Diags rather than as a Go error,
// matching spec §7's "diagnostics vs. host errors" split.
func Compile(opts Options, entryPath string) (result *Result, err error) {
	// An `invariant()` violation inside internal/typecheck (or any other
	// phase) panics rather than returning a diagnostic — it signals an AST
	// shape that should be impossible by construction, not a property of the
	// user's source. Recovering here turns that into a returned error instead
	// of taking the whole process down, the same panic-becomes-error shape
	// as grailbio-gql's panic.go Recover.
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, errors.Errorf("internal compiler error: %v\n%s", r, debug.Stack())
		}
	}()
	return compile(opts, entryPath)
}

func compile(opts Options, entryPath string) (*Result, error) {
	reader := osFileReader{}
	source, err := reader.ReadFile(entryPath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading entry file %q", entryPath)
	}

	modulePath := strings.TrimSuffix(filepath.Base(entryPath), filepath.Ext(entryPath))
	stmts, _, err := parseSource(entryPath, modulePath, source)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %q", entryPath)
	}
	if opts.Verbose {
		log.Debug.Printf("pipeline: parsed %s (%d top-level statements)", entryPath, len(stmts))
	}

	root := opts.ModuleRoot
	if root == "" {
		root = filepath.Dir(entryPath)
	}
	res := resolver.New(reader, parseSource)
	resolved, err := res.Resolve(stmts, root)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving imports for %q", entryPath)
	}
	if opts.Verbose {
		log.Debug.Printf("pipeline: resolved imports for %s (%d statements after merge)", entryPath, len(resolved))
	}

	desugared := desugar.Desugar(resolved)
	if opts.Verbose {
		log.Debug.Printf("pipeline: desugared %s", entryPath)
	}

	checker := typecheck.New()
	checked, diags := checker.Check(desugared)
	if opts.Verbose {
		log.Debug.Printf("pipeline: type-checked %s (%d diagnostics)", entryPath, len(diags.Items()))
	}

	return &Result{Stmts: checked, Diags: diags}, nil
}
