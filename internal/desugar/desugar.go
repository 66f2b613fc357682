// Package desugar implements the AST rewrite described in spec §4.3: it
// lowers every surface `for` loop into the initializer-plus-while-loop form
// the type checker and code generator actually understand, and is the one
// place a `For` node is allowed to exist before it is rewritten away.
package desugar

import (
	"github.com/light-lang/lightc/internal/ast"
)

// Desugar returns a rewritten copy of stmts; the input slice is left as it
// is (statement slices are replaced, not mutated element-by-element, since
// ast.Stmt values are themselves immutable once built). The traversal
// recurses into nested blocks, function bodies, and if/else branches but
// never into expressions (spec §4.3) — a `for` inside an expression is not
// a construct the grammar allows, so there is nothing to recurse into
// there. Desugaring is idempotent: running it again on its own output is a
// no-op, because the output never contains a For node.
func Desugar(stmts []ast.Stmt) []ast.Stmt {
	out := make([]ast.Stmt, len(stmts))
	for i, s := range stmts {
		out[i] = desugarStmt(s)
	}
	return out
}

func desugarStmt(s ast.Stmt) ast.Stmt {
	switch n := s.(type) {
	case *ast.FunctionStmt:
		if n.Body == nil {
			return n
		}
		return &ast.FunctionStmt{
			Span: n.Span, Name: n.Name, Params: n.Params,
			ReturnType: n.ReturnType, Body: desugarBlock(n.Body), Exported: n.Exported,
		}
	case *ast.Block:
		return desugarBlock(n)
	case *ast.If:
		then := desugarBlock(n.Then)
		var elseBlock *ast.Block
		if n.Else != nil {
			elseBlock = desugarBlock(n.Else)
		}
		return &ast.If{Span: n.Span, Cond: n.Cond, Then: then, Else: elseBlock}
	case *ast.While:
		return &ast.While{Span: n.Span, Cond: n.Cond, Body: desugarBlock(n.Body)}
	case *ast.For:
		return desugarFor(n)
	default:
		// ExprStmt, VariableDeclaration, VariableAssignment, Return, Break,
		// StructStmt, Import: no nested statement to recurse into.
		return s
	}
}

func desugarBlock(b *ast.Block) *ast.Block {
	if b == nil {
		return nil
	}
	return &ast.Block{Span: b.Span, Stmts: Desugar(b.Stmts)}
}

// desugarFor rewrites spec §4.3's surface form:
//
//	for (init_decl; cond; step) body
//
// into:
//
//	{ init_decl; while (cond) { body...; step; } }
//
// The outer Block is what introduces the scope init_decl lives in (spec
// §4.3's "the outer block is what introduces the scope"). body's own
// statements are recursively desugared first, so a for-loop nested inside
// another for-loop's body is fully lowered too.
func desugarFor(f *ast.For) ast.Stmt {
	innerBody := desugarBlock(f.Body)
	whileStmts := make([]ast.Stmt, 0, len(innerBody.Stmts)+1)
	whileStmts = append(whileStmts, innerBody.Stmts...)
	whileStmts = append(whileStmts, desugarStmt(f.Step))

	whileLoop := &ast.While{
		Span: f.Span,
		Cond: f.Cond,
		Body: &ast.Block{Span: innerBody.Span, Stmts: whileStmts},
	}

	return &ast.Block{
		Span: f.Span,
		Stmts: []ast.Stmt{
			f.InitDecl,
			whileLoop,
		},
	}
}
