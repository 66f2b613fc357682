// Package typecheck implements the two-pass, scope-aware type checker
// described in spec §4.4: given a kernel AST (post-import-resolution,
// post-desugar — no Import or For node may remain), it populates every
// expression's type slot in place and either returns the same AST or a
// non-empty ordered list of diagnostics.
package typecheck

import (
	"github.com/grailbio/base/log"

	"github.com/light-lang/lightc/internal/ast"
	"github.com/light-lang/lightc/internal/diag"
	"github.com/light-lang/lightc/internal/symbol"
)

// Checker holds the state accumulated over one file's type-check pass. A
// Checker is not reused across files: module-level tables are cleared
// between compilation units (spec §4.4 "Symbol tables... cleared between
// compilation units"). Entries contributed by the import resolver reach the
// tables as forward-declaration and struct statements in the list passed to
// Check; the tables themselves cannot be seeded from outside the package.
type Checker struct {
	scopes    *scopeStack
	functions map[symbol.ID]functionSignature
	structs   map[symbol.ID]recordType
	structAST map[symbol.ID]*ast.StructStmt

	inFunction *ast.ValueType // nil == None; non-nil == Some(ret_type)
	loopDepth  int

	diags diag.Bag
}

// New creates an empty Checker.
func New() *Checker {
	return &Checker{
		scopes:    newScopeStack(),
		functions: map[symbol.ID]functionSignature{},
		structs:   map[symbol.ID]recordType{},
		structAST: map[symbol.ID]*ast.StructStmt{},
	}
}

// Check runs the full pass over stmts (spec §4.4 "Algorithms"): a pre-pass
// registers every top-level function and struct signature (so forward
// references within the file resolve), then a single statement walk checks
// bodies in source order. It returns the (in-place mutated) statement list
// and the accumulated diagnostics; callers should treat a non-empty Bag as
// failure even though stmts is still returned for inspection/tooling.
func (c *Checker) Check(stmts []ast.Stmt) ([]ast.Stmt, *diag.Bag) {
	c.registerTopLevel(stmts)
	for _, s := range stmts {
		c.checkStmt(s)
	}
	return stmts, &c.diags
}

// registerTopLevel implements spec §4.4 point 1: functions and records
// register their signatures before any body is inspected, regardless of
// source order within the file.
func (c *Checker) registerTopLevel(stmts []ast.Stmt) {
	for _, s := range stmts {
		switch n := s.(type) {
		case *ast.FunctionStmt:
			c.registerFunctionSignature(n)
		case *ast.StructStmt:
			c.registerStructSignature(n)
		}
	}
}

func (c *Checker) registerFunctionSignature(n *ast.FunctionStmt) {
	name := symbol.Intern(n.Name)
	// Two imports (or an import and a local definition) declaring the same
	// function name are both kept by the resolver; the second one seen
	// here is reported as a redefinition (spec §4.2 "Name collisions").
	if _, redefined := c.functions[name]; redefined {
		c.errorf(n.Span, "redefinition of function '%s'", n.Name)
		return
	}
	paramTypes := make([]ast.ValueType, len(n.Params))
	for i, p := range n.Params {
		paramTypes[i] = p.Type
	}
	c.functions[name] = functionSignature{
		Name: name, ReturnType: n.ReturnType, ParamTypes: paramTypes,
		Defined: n.Body != nil,
	}
	// The module scope also gets a binding for the function's bare name, to
	// its return type — reproduced from
	// original_source/compiler/src/type_system/type_check_statement.rs's
	// visit_function_statement, which inserts (callee, return_type) into
	// the global variable frame rather than a Function-typed slot. Nothing
	// in this checker resolves a call through that binding (Call looks up
	// functions directly); it only matters if a bare function name is ever
	// referenced as a value, which the grammar otherwise never produces.
	c.scopes.frames[0][name] = n.ReturnType
}

func (c *Checker) registerStructSignature(n *ast.StructStmt) {
	name := symbol.Intern(n.Name)
	if _, ok := c.structs[name]; ok {
		c.errorf(n.Span, "redefinition of struct '%s'", n.Name)
		return
	}
	c.structs[name] = recordType{Name: name, Fields: n.Fields}
	c.structAST[name] = n
}

func (c *Checker) errorf(pos ast.Position, format string, args ...interface{}) {
	c.diags.Addf(pos, format, args...)
}

// invariant reports a programmer/internal error — an AST shape that should
// be impossible by the time the type checker runs (spec §7 "Internal
// invariant") — and crashes the process rather than surfacing a diagnostic,
// matching grailbio-gql's panic.go idiom of log.Panicf for invariants.
func invariant(format string, args ...interface{}) {
	log.Panicf(format, args...)
}
