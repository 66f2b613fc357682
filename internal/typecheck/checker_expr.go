package typecheck

import (
	"github.com/light-lang/lightc/internal/ast"
	"github.com/light-lang/lightc/internal/symbol"
)

// checkExpr implements spec §4.4 point 5: it type-checks expr, writes its
// resolved type into any type slot it carries, and returns that type. On
// error it records a diagnostic at expr's position and returns ast.Invalid
// — callers check IsValid() before trusting the result further, which is
// how "does not attempt to recover inside a statement" is realized without
// exceptions.
func (c *Checker) checkExpr(expr ast.Expr) ast.ValueType {
	var ty ast.ValueType
	switch n := expr.(type) {
	case *ast.NumberLit:
		ty = ast.Number
	case *ast.RealLit:
		ty = ast.Real
	case *ast.BoolLit:
		ty = ast.Bool
	case *ast.CharLit:
		ty = ast.Char
	case *ast.StringLit:
		ty = ast.String
	case *ast.NullLit:
		ty = ast.Null
	case *ast.Identifier:
		ty = c.checkIdentifier(n)
	case *ast.Group:
		ty = c.checkExpr(n.Inner)
	case *ast.Binary:
		ty = c.checkBinary(n)
	case *ast.BinaryLogic:
		ty = c.checkBinaryLogic(n)
	case *ast.Unary:
		ty = c.checkUnary(n)
	case *ast.Call:
		ty = c.checkCall(n)
	case *ast.ArrayAccess:
		ty = c.checkArrayAccess(n)
	case *ast.AddressOf:
		ty = c.checkAddressOf(n)
	case *ast.DeReference:
		ty = c.checkDeReference(n)
	case *ast.MemberAccess:
		ty = c.checkMemberAccess(n)
	case *ast.StructLiteral:
		ty = c.checkStructLiteral(n)
	default:
		invariant("typecheck: unhandled expression node %T", expr)
	}

	if typed, ok := expr.(ast.Typed); ok {
		typed.SetType(ty)
	}
	return ty
}

func (c *Checker) checkIdentifier(n *ast.Identifier) ast.ValueType {
	name := symbol.Intern(n.Name)
	ty, ok := c.scopes.lookup(name)
	if !ok {
		c.errorf(n.Span, "'%s' is not declared. Declare it 'let %s: <typename> = <init_expr>;'", n.Name, n.Name)
		return ast.Invalid
	}
	return ty
}

// checkBinary implements spec §4.4's arithmetic rule: both sides must share
// the same numeric type (Number<->Number or Real<->Real); applying
// arithmetic to any other type is an error.
func (c *Checker) checkBinary(n *ast.Binary) ast.ValueType {
	lt := c.checkExpr(n.Left)
	rt := c.checkExpr(n.Right)
	if !lt.IsValid() || !rt.IsValid() {
		return ast.Invalid
	}
	if !isNumeric(lt) || !isNumeric(rt) || !lt.Equal(rt) {
		c.errorf(n.Span, "type '%s' is not compatible with type '%s'. Consider casting.", lt, rt)
		return ast.Invalid
	}
	return lt
}

func isNumeric(t ast.ValueType) bool {
	return t.Kind == ast.NumberKind || t.Kind == ast.RealKind
}

// checkBinaryLogic implements spec §4.4's comparison/boolean-connective
// rule: both sides must be compatible (same numeric type, or both Bool);
// the result is always Bool.
func (c *Checker) checkBinaryLogic(n *ast.BinaryLogic) ast.ValueType {
	lt := c.checkExpr(n.Left)
	rt := c.checkExpr(n.Right)
	if !lt.IsValid() || !rt.IsValid() {
		return ast.Invalid
	}
	compatible := (isNumeric(lt) && isNumeric(rt) && lt.Equal(rt)) ||
		(lt.Kind == ast.BoolKind && rt.Kind == ast.BoolKind) ||
		ast.IsCompatible(lt, rt)
	if !compatible {
		c.errorf(n.Span, "type '%s' is not compatible with type '%s'. Consider casting.", lt, rt)
		return ast.Invalid
	}
	return ast.Bool
}

// checkUnary implements spec §4.4: `-` requires a numeric operand; `not`
// accepts Bool or Number (source behavior carried forward per spec §9 Open
// Question (c): "not applied to integers is permitted for bitwise-style
// use").
func (c *Checker) checkUnary(n *ast.Unary) ast.ValueType {
	ot := c.checkExpr(n.Operand)
	if !ot.IsValid() {
		return ast.Invalid
	}
	switch n.Op {
	case ast.OpNegate:
		if !isNumeric(ot) {
			c.errorf(n.Span, "unary '-' requires a numeric operand, found '%s'", ot)
			return ast.Invalid
		}
		return ot
	case ast.OpNot:
		if ot.Kind != ast.BoolKind && ot.Kind != ast.NumberKind {
			c.errorf(n.Span, "'not' requires a bool or number operand, found '%s'", ot)
			return ast.Invalid
		}
		return ot
	default:
		invariant("typecheck: unhandled unary operator %v", n.Op)
		return ast.Invalid
	}
}

// checkCall implements spec §4.4: the function must be declared, the
// argument count must match, each argument must be compatible with its
// declared parameter type; the result is the function's return type.
func (c *Checker) checkCall(n *ast.Call) ast.ValueType {
	name := symbol.Intern(n.Name)
	sig, ok := c.functions[name]
	if !ok {
		c.errorf(n.Span, "function '%s' is not declared in this module.", n.Name)
		return ast.Invalid
	}
	if len(n.Args) != len(sig.ParamTypes) {
		c.errorf(n.Span, "expected %d arguments for function '%s' call but got %d arguments.",
			len(sig.ParamTypes), n.Name, len(n.Args))
		return ast.Invalid
	}
	ok = true
	for i, arg := range n.Args {
		argTy := c.checkExpr(arg)
		if !argTy.IsValid() {
			ok = false
			continue
		}
		if !ast.IsCompatible(argTy, sig.ParamTypes[i]) {
			c.errorf(arg.Pos(), "argument of type '%s' cannot be applied to function argument of type '%s' in the call to '%s'",
				argTy, sig.ParamTypes[i], n.Name)
			ok = false
		}
	}
	if !ok {
		return ast.Invalid
	}
	return sig.ReturnType
}

// checkArrayAccess implements spec §4.4: base must be declared as Array or
// Pointer; index must be numeric; result is the element/pointee type.
func (c *Checker) checkArrayAccess(n *ast.ArrayAccess) ast.ValueType {
	baseTy := c.checkExpr(n.Base)
	idxTy := c.checkExpr(n.Index)
	if !baseTy.IsValid() {
		return ast.Invalid
	}
	if idxTy.IsValid() && !isNumeric(idxTy) {
		c.errorf(n.Index.Pos(), "array index must be numeric, found '%s'", idxTy)
		return ast.Invalid
	}
	switch baseTy.Kind {
	case ast.ArrayKind, ast.PointerKind:
		return *baseTy.Elem
	default:
		c.errorf(n.Span, "'%s' is not a subscriptable type.", n.Base)
		return ast.Invalid
	}
}

// checkAddressOf implements spec §4.4: operand must be a declared
// variable; result is Pointer(operand.type).
func (c *Checker) checkAddressOf(n *ast.AddressOf) ast.ValueType {
	name := symbol.Intern(n.Target.Name)
	ty, ok := c.scopes.lookup(name)
	if !ok {
		c.errorf(n.Span, "undeclared variable '%s'", n.Target.Name)
		return ast.Invalid
	}
	n.Target.SetType(ty)
	return ast.PointerTo(ty)
}

// checkDeReference implements spec §4.4: operand must be a declared
// variable of Pointer(T); result is T.
func (c *Checker) checkDeReference(n *ast.DeReference) ast.ValueType {
	innerTy := c.checkExpr(n.Target)
	if !innerTy.IsValid() {
		return ast.Invalid
	}
	if innerTy.Kind != ast.PointerKind {
		c.errorf(n.Span, "'%s' is either not a pointer or declared in this scope.", n.Target)
		return ast.Invalid
	}
	return *innerTy.Elem
}

// checkMemberAccess implements spec §4.4: object must be a variable of
// Struct(name); the named field must exist; result is the field's type.
func (c *Checker) checkMemberAccess(n *ast.MemberAccess) ast.ValueType {
	objTy := c.checkExpr(n.Object)
	if !objTy.IsValid() {
		return ast.Invalid
	}
	if objTy.Kind != ast.StructKind {
		c.errorf(n.Span, "'%s' is not a struct, the dot operator can't be applied on it.", n.Object)
		return ast.Invalid
	}
	structName := symbol.Intern(objTy.StructName)
	rec, ok := c.structs[structName]
	if !ok {
		c.errorf(n.Span, "undeclared struct '%s'", objTy.StructName)
		return ast.Invalid
	}
	fieldTy, ok := fieldType(rec.Fields, n.Field)
	if !ok {
		c.errorf(n.Span, "type '%s' (accessed from '%s') has no field '%s'", objTy.StructName, n.Object, n.Field)
		return ast.Invalid
	}
	return fieldTy
}

// checkStructLiteral implements spec §4.4: the type name must refer to a
// known record; the expression count must equal the field count; each
// positional expression must be init-compatible with its field's type.
func (c *Checker) checkStructLiteral(n *ast.StructLiteral) ast.ValueType {
	name := symbol.Intern(n.TypeName)
	rec, ok := c.structs[name]
	if !ok {
		c.errorf(n.Span, "undeclared struct '%s'", n.TypeName)
		return ast.Invalid
	}
	if len(rec.Fields) != len(n.Fields) {
		c.errorf(n.Span, "incorrect number of expressions to init struct '%s', got %d expressions but %d are required.",
			n.TypeName, len(n.Fields), len(rec.Fields))
		return ast.Invalid
	}
	ok = true
	for i, fieldExpr := range n.Fields {
		exprTy := c.checkExpr(fieldExpr)
		if !exprTy.IsValid() {
			ok = false
			continue
		}
		if !ast.IsCompatibleForInit(rec.Fields[i].Type, exprTy) {
			c.errorf(fieldExpr.Pos(), "in struct '%s' literal, can't init type '%s' with type '%s' at position %d",
				n.TypeName, rec.Fields[i].Type, exprTy, i+1)
			ok = false
		}
	}
	if !ok {
		return ast.Invalid
	}
	return ast.StructNamed(n.TypeName)
}
