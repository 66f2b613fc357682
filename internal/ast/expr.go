package ast

import (
	"fmt"
	"strings"
)

// Node is implemented by every AST node. Unlike the query-evaluator AST it
// is modeled on, a Node here carries no eval/hash behavior: this module's
// AST is a static data structure consumed by the type checker and handed
// off to a code generator, never interpreted in place.
type Node interface {
	Pos() Position
	String() string
}

// Expr is any expression node. Nodes whose variant carries a type slot
// implement Typed as well; the type checker populates it in place.
type Expr interface {
	Node
	exprNode()
}

// Typed is implemented by expression nodes that carry a ValueType slot
// filled in by the type checker (spec §3.2's "ty?" fields).
type Typed interface {
	Type() ValueType
	SetType(ValueType)
}

// LValue is implemented by the four expression variants that may appear on
// the left of an assignment (spec: Identifier, ArrayAccess, DeReference,
// MemberAccess).
type LValue interface {
	Expr
	IsLValue() bool
	SetLValue(bool)
}

type typeSlot struct {
	ty ValueType
}

func (s *typeSlot) Type() ValueType     { return s.ty }
func (s *typeSlot) SetType(t ValueType) { s.ty = t }

type lvalueSlot struct {
	isLValue bool
}

func (s *lvalueSlot) IsLValue() bool     { return s.isLValue }
func (s *lvalueSlot) SetLValue(v bool)   { s.isLValue = v }

// --- Literals ---------------------------------------------------------

// NumberLit is an integer literal (spec: Number(i64)).
type NumberLit struct {
	Span  Position
	Value int64
	typeSlot
}

func (*NumberLit) exprNode()         {}
func (n *NumberLit) Pos() Position   { return n.Span }
func (n *NumberLit) String() string  { return fmt.Sprintf("%d", n.Value) }

// RealLit is a floating-point literal (spec: Real(f64)).
type RealLit struct {
	Span  Position
	Value float64
	typeSlot
}

func (*RealLit) exprNode()        {}
func (n *RealLit) Pos() Position  { return n.Span }
func (n *RealLit) String() string { return fmt.Sprintf("%g", n.Value) }

// BoolLit is a `true`/`false` literal.
type BoolLit struct {
	Span  Position
	Value bool
	typeSlot
}

func (*BoolLit) exprNode()        {}
func (n *BoolLit) Pos() Position  { return n.Span }
func (n *BoolLit) String() string { return fmt.Sprintf("%t", n.Value) }

// CharLit is a single-character literal.
type CharLit struct {
	Span  Position
	Value rune
	typeSlot
}

func (*CharLit) exprNode()        {}
func (n *CharLit) Pos() Position  { return n.Span }
func (n *CharLit) String() string { return fmt.Sprintf("'%c'", n.Value) }

// StringLit is a string literal.
type StringLit struct {
	Span  Position
	Value string
	typeSlot
}

func (*StringLit) exprNode()        {}
func (n *StringLit) Pos() Position  { return n.Span }
func (n *StringLit) String() string { return fmt.Sprintf("%q", n.Value) }

// NullLit is the `null` literal; its type is always Null.
type NullLit struct {
	Span Position
	typeSlot
}

func (*NullLit) exprNode()        {}
func (n *NullLit) Pos() Position  { return n.Span }
func (n *NullLit) String() string { return "null" }

// StructLiteral is `struct Name { e0, e1, ... }`.
type StructLiteral struct {
	Span     Position
	TypeName string
	Fields   []Expr // positional initializer expressions, in source order
	typeSlot
}

func (*StructLiteral) exprNode()       {}
func (n *StructLiteral) Pos() Position { return n.Span }
func (n *StructLiteral) String() string {
	parts := make([]string, len(n.Fields))
	for i, f := range n.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("struct %s { %s }", n.TypeName, strings.Join(parts, ", "))
}

// Identifier is a bare name reference; it is an LValue when it appears on
// the left of `=`.
type Identifier struct {
	Span Position
	Name string
	typeSlot
	lvalueSlot
}

func (*Identifier) exprNode()        {}
func (n *Identifier) Pos() Position  { return n.Span }
func (n *Identifier) String() string { return n.Name }

// --- Operators ---------------------------------------------------------

// BinaryOp is the arithmetic operator kind for Binary nodes.
type BinaryOp uint8

const (
	OpPlus BinaryOp = iota
	OpMinus
	OpMultiply
	OpDivide
	OpModulo
)

func (op BinaryOp) String() string {
	switch op {
	case OpPlus:
		return "+"
	case OpMinus:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	case OpModulo:
		return "%"
	default:
		return "?"
	}
}

// Binary is an arithmetic expression: Plus/Minus/Multiply/Divide/Modulo.
type Binary struct {
	Span        Position
	Op          BinaryOp
	Left, Right Expr
	typeSlot
}

func (*Binary) exprNode()       {}
func (n *Binary) Pos() Position { return n.Span }
func (n *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left, n.Op, n.Right)
}

// LogicOp is the comparison/boolean-connective kind for BinaryLogic nodes.
type LogicOp uint8

const (
	OpAnd LogicOp = iota
	OpOr
	OpEqual
	OpNotEqual
	OpMore
	OpLess
	OpMoreEqual
	OpLessEqual
)

func (op LogicOp) String() string {
	switch op {
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpEqual:
		return "=="
	case OpNotEqual:
		return "!="
	case OpMore:
		return ">"
	case OpLess:
		return "<"
	case OpMoreEqual:
		return ">="
	case OpLessEqual:
		return "<="
	default:
		return "?"
	}
}

// BinaryLogic is a comparison or boolean-connective expression.
type BinaryLogic struct {
	Span        Position
	Op          LogicOp
	Left, Right Expr
	typeSlot
}

func (*BinaryLogic) exprNode()       {}
func (n *BinaryLogic) Pos() Position { return n.Span }
func (n *BinaryLogic) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left, n.Op, n.Right)
}

// UnaryOp is the operator kind for Unary nodes.
type UnaryOp uint8

const (
	OpNot UnaryOp = iota
	OpNegate
)

func (op UnaryOp) String() string {
	if op == OpNot {
		return "not"
	}
	return "-"
}

// Unary is `not e` or `-e`.
type Unary struct {
	Span    Position
	Op      UnaryOp
	Operand Expr
	typeSlot
}

func (*Unary) exprNode()       {}
func (n *Unary) Pos() Position { return n.Span }
func (n *Unary) String() string {
	if n.Op == OpNot {
		return fmt.Sprintf("not %s", n.Operand)
	}
	return fmt.Sprintf("-%s", n.Operand)
}

// Call is a function call `name(args...)`.
type Call struct {
	Span Position
	Name string
	Args []Expr
	typeSlot
}

func (*Call) exprNode()       {}
func (n *Call) Pos() Position { return n.Span }
func (n *Call) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", n.Name, strings.Join(parts, ", "))
}

// ArrayAccess is `base[index]`; it is an LValue when assigned to.
type ArrayAccess struct {
	Span  Position
	Base  Expr
	Index Expr
	typeSlot
	lvalueSlot
}

func (*ArrayAccess) exprNode()        {}
func (n *ArrayAccess) Pos() Position  { return n.Span }
func (n *ArrayAccess) String() string { return fmt.Sprintf("%s[%s]", n.Base, n.Index) }

// AddressOf is `addrof ident`.
type AddressOf struct {
	Span   Position
	Target *Identifier
	typeSlot
}

func (*AddressOf) exprNode()        {}
func (n *AddressOf) Pos() Position  { return n.Span }
func (n *AddressOf) String() string { return fmt.Sprintf("addrof %s", n.Target) }

// DeReference is `deref expr`; it is an LValue when assigned to.
type DeReference struct {
	Span   Position
	Target Expr
	typeSlot
	lvalueSlot
}

func (*DeReference) exprNode()        {}
func (n *DeReference) Pos() Position  { return n.Span }
func (n *DeReference) String() string { return fmt.Sprintf("deref %s", n.Target) }

// MemberAccess is `object.field`; it is an LValue when assigned to.
type MemberAccess struct {
	Span   Position
	Object Expr
	Field  string
	typeSlot
	lvalueSlot
}

func (*MemberAccess) exprNode()        {}
func (n *MemberAccess) Pos() Position  { return n.Span }
func (n *MemberAccess) String() string { return fmt.Sprintf("%s.%s", n.Object, n.Field) }

// Group is a parenthesized expression `(inner)`.
type Group struct {
	Span  Position
	Inner Expr
	typeSlot
}

func (*Group) exprNode()        {}
func (n *Group) Pos() Position  { return n.Span }
func (n *Group) String() string { return fmt.Sprintf("(%s)", n.Inner) }

var (
	_ Typed  = (*NumberLit)(nil)
	_ Typed  = (*Call)(nil)
	_ LValue = (*Identifier)(nil)
	_ LValue = (*ArrayAccess)(nil)
	_ LValue = (*DeReference)(nil)
	_ LValue = (*MemberAccess)(nil)
)
