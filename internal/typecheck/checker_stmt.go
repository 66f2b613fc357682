package typecheck

import (
	"github.com/light-lang/lightc/internal/ast"
	"github.com/light-lang/lightc/internal/symbol"
)

// checkStmt implements spec §4.4 point 2: statements are checked in source
// order. A statement that can't be fully checked records one or more
// diagnostics and returns without panicking, so the caller's loop over a
// statement list keeps going — "does not abort immediately... continues
// through the current statement list" — but any component that failed
// within this one statement is not retried.
func (c *Checker) checkStmt(stmt ast.Stmt) {
	switch n := stmt.(type) {
	case *ast.ExprStmt:
		c.checkExpr(n.Expr)
	case *ast.VariableDeclaration:
		c.checkDecl(n)
	case *ast.VariableAssignment:
		c.checkAssignment(n)
	case *ast.FunctionStmt:
		c.checkFunction(n)
	case *ast.StructStmt:
		// Already registered in the pre-pass (spec §4.4 point 1); nothing
		// further to check — a struct declaration has no body to walk.
	case *ast.Block:
		c.checkBlock(n)
	case *ast.Return:
		c.checkReturn(n)
	case *ast.If:
		c.checkIf(n)
	case *ast.While:
		c.checkWhile(n)
	case *ast.For:
		c.checkFor(n)
	case *ast.Break:
		c.checkBreak(n)
	case *ast.Import:
		invariant("typecheck: Import statement survived past import resolution")
	default:
		invariant("typecheck: unhandled statement node %T", stmt)
	}
}

// checkDecl implements spec §4.4 point 3.
func (c *Checker) checkDecl(n *ast.VariableDeclaration) {
	initTy := c.checkExpr(n.Init)
	if !initTy.IsValid() {
		return
	}
	if !ast.IsCompatibleForInit(n.DeclaredType, initTy) {
		c.errorf(n.Span, "variable '%s' is declared as '%s' but init expression has type '%s'",
			n.Name, n.DeclaredType, initTy)
		return
	}
	name := symbol.Intern(n.Name)
	if c.scopes.declaredInCurrent(name) {
		c.errorf(n.Span, "redefinition of variable '%s'.", n.Name)
		return
	}
	c.scopes.declare(name, n.DeclaredType)
}

// checkAssignment implements spec §4.4 point 4: the lhs must be an
// l-value, and the matched variant has its IsLValue flag set.
func (c *Checker) checkAssignment(n *ast.VariableAssignment) {
	lv, ok := n.LHS.(ast.LValue)
	if !ok {
		c.errorf(n.Span, "left-hand side of an assignment must be an l-value")
		return
	}
	lv.SetLValue(true)

	switch target := lv.(type) {
	case *ast.ArrayAccess:
		lhsTy := c.checkExpr(target)
		rhsTy := c.checkExpr(n.RHS)
		if !lhsTy.IsValid() || !rhsTy.IsValid() {
			return
		}
		if !ast.IsCompatible(lhsTy, rhsTy) {
			c.errorf(n.Span, "can't assign expression of type '%s' to array element of type '%s'", rhsTy, lhsTy)
		}
	case *ast.DeReference:
		lhsTy := c.checkExpr(target)
		rhsTy := c.checkExpr(n.RHS)
		if !lhsTy.IsValid() || !rhsTy.IsValid() {
			return
		}
		if !ast.IsCompatible(lhsTy, rhsTy) {
			c.errorf(n.Span, "cannot assign type '%s' through a dereferenced pointer of type '%s'", rhsTy, lhsTy)
		}
	case *ast.MemberAccess:
		lhsTy := c.checkExpr(target)
		rhsTy := c.checkExpr(n.RHS)
		if !lhsTy.IsValid() || !rhsTy.IsValid() {
			return
		}
		if !ast.IsCompatible(lhsTy, rhsTy) {
			c.errorf(n.Span, "cannot assign on member '%s' of type '%s' with type '%s'", target.Field, lhsTy, rhsTy)
		}
	case *ast.Identifier:
		c.checkSimpleAssignment(target, n.RHS, n.Span)
	default:
		invariant("typecheck: unhandled l-value node %T", lv)
	}
}

func (c *Checker) checkSimpleAssignment(target *ast.Identifier, rhs ast.Expr, span ast.Position) {
	rhsTy := c.checkExpr(rhs)
	name := symbol.Intern(target.Name)
	varTy, ok := c.scopes.lookup(name)
	if !ok {
		c.errorf(span, "undeclared variable '%s'", target.Name)
		return
	}
	target.SetType(varTy)
	if !rhsTy.IsValid() {
		return
	}
	if !ast.IsCompatible(rhsTy, varTy) {
		c.errorf(span, "cannot assign expression of type '%s' to variable '%s' of type '%s'.", rhsTy, target.Name, varTy)
	}
}

// checkFunction implements spec §4.4 points 7 and the in_function state
// machine: nested functions are forbidden, a body-bearing function with a
// non-Void return type must contain at least one top-level return
// statement.
func (c *Checker) checkFunction(n *ast.FunctionStmt) {
	if n.Body == nil {
		return // forward declaration: already registered, nothing to walk
	}
	if c.inFunction != nil {
		c.errorf(n.Span, "nested function is not allowed.")
		return
	}

	c.scopes.push()
	for _, p := range n.Params {
		c.scopes.declare(symbol.Intern(p.Name), p.Type)
	}

	ret := n.ReturnType
	c.inFunction = &ret
	c.checkBlock(n.Body)
	c.scopes.pop()
	c.inFunction = nil

	if n.ReturnType.Kind != ast.VoidKind && !blockHasTopLevelReturn(n.Body) {
		c.errorf(n.Span, "function '%s' returns no values", n.Name)
	}
}

func blockHasTopLevelReturn(b *ast.Block) bool {
	for _, s := range b.Stmts {
		if _, ok := s.(*ast.Return); ok {
			return true
		}
	}
	return false
}

// checkBlock implements spec §4.4's "Entering a Block pushes a frame".
func (c *Checker) checkBlock(b *ast.Block) {
	c.scopes.push()
	for _, s := range b.Stmts {
		c.checkStmt(s)
	}
	c.scopes.pop()
}

// checkReturn implements spec §4.4 point 6.
func (c *Checker) checkReturn(n *ast.Return) {
	if c.inFunction == nil {
		c.errorf(n.Span, "return statement is valid only in a function.")
		return
	}
	if n.Expr == nil {
		if c.inFunction.Kind != ast.VoidKind {
			c.errorf(n.Span, "returned 'void' is not compatible with function return type '%s'", c.inFunction)
		}
		return
	}
	exprTy := c.checkExpr(n.Expr)
	if !exprTy.IsValid() {
		return
	}
	if !ast.IsCompatible(exprTy, *c.inFunction) {
		c.errorf(n.Span, "returned '%s' is not compatible with function return type '%s'", exprTy, c.inFunction)
	}
}

// checkIf implements spec §4.4 point 6.
func (c *Checker) checkIf(n *ast.If) {
	condTy := c.checkExpr(n.Cond)
	if condTy.IsValid() && condTy.Kind != ast.BoolKind {
		c.errorf(n.Span, "if condition has type '%s' but the type bool is needed.", condTy)
	}
	c.checkBlock(n.Then)
	if n.Else != nil {
		c.checkBlock(n.Else)
	}
}

// checkWhile implements spec §4.4 point 6: the loop body is checked inside
// the incremented loop_depth so nested break statements validate.
func (c *Checker) checkWhile(n *ast.While) {
	condTy := c.checkExpr(n.Cond)
	if condTy.IsValid() && condTy.Kind != ast.BoolKind {
		c.errorf(n.Span, "while condition has type '%s' but the type bool is needed.", condTy)
	}
	c.loopDepth++
	c.checkBlock(n.Body)
	c.loopDepth--
}

// checkFor implements spec §4.4: live (pre-desugar) for-loop checking,
// exercised only when the type checker runs directly on un-desugared input
// (e.g. the boundary tests spec §8 calls out). A For gets its own scope for
// the induction variable, to avoid false-positive redefinitions against an
// outer variable of the same name.
func (c *Checker) checkFor(n *ast.For) {
	c.scopes.push()
	c.loopDepth++

	c.checkDecl(n.InitDecl)
	initTy := n.InitDecl.DeclaredType
	condTy := c.checkExpr(n.Cond)
	c.checkStmt(n.Step)
	c.checkBlock(n.Body)

	c.loopDepth--
	c.scopes.pop()

	if initTy.Kind != ast.NumberKind && initTy.Kind != ast.RealKind {
		c.errorf(n.Span, "for init declaration has type '%s' but type 'number' or 'real' is required.", initTy)
	}
	if condTy.IsValid() && condTy.Kind != ast.BoolKind {
		c.errorf(n.Span, "for loop expression has type '%s' but type 'bool' is required.", condTy)
	}
}

// checkBreak implements spec §4.4 point 6.
func (c *Checker) checkBreak(n *ast.Break) {
	if c.loopDepth == 0 {
		c.errorf(n.Span, "break statement outside a loop.")
	}
}
