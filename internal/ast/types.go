package ast

import "fmt"

// Kind tags a ValueType's shape. Scalars compare by Kind alone; Pointer,
// Array, and Struct carry extra payload compared by the richer rules in
// Equal/IsCompatible below.
type Kind uint8

// Caution: append new kinds at the end; do not renumber existing ones.
const (
	InvalidKind Kind = iota
	NumberKind
	RealKind
	BoolKind
	CharKind
	StringKind
	VoidKind
	NullKind
	FunctionKind
	PointerKind
	ArrayKind
	StructKind
)

func (k Kind) String() string {
	switch k {
	case NumberKind:
		return "number"
	case RealKind:
		return "real"
	case BoolKind:
		return "bool"
	case CharKind:
		return "char"
	case StringKind:
		return "string"
	case VoidKind:
		return "void"
	case NullKind:
		return "null"
	case FunctionKind:
		return "function"
	case PointerKind:
		return "ptr"
	case ArrayKind:
		return "array"
	case StructKind:
		return "struct"
	default:
		return "invalid"
	}
}

// ValueType is the tagged variant described in spec §3.1: scalars close
// over Kind alone; Pointer/Array/Struct carry the extra payload that makes
// equality and compatibility recursive or nominal.
type ValueType struct {
	Kind Kind

	// Elem is the pointee type (PointerKind) or element type (ArrayKind).
	Elem *ValueType
	// Size is the fixed array length (ArrayKind only).
	Size int
	// StructName is the nominal record name (StructKind only).
	StructName string
}

// Scalar singleton constructors. These are safe to share because ValueType
// is a plain value with no mutable state.
var (
	Number   = ValueType{Kind: NumberKind}
	Real     = ValueType{Kind: RealKind}
	Bool     = ValueType{Kind: BoolKind}
	Char     = ValueType{Kind: CharKind}
	String   = ValueType{Kind: StringKind}
	Void     = ValueType{Kind: VoidKind}
	Null     = ValueType{Kind: NullKind}
	Function = ValueType{Kind: FunctionKind}
	Invalid  = ValueType{Kind: InvalidKind}
)

// PointerTo builds a Pointer(inner) type.
func PointerTo(inner ValueType) ValueType {
	i := inner
	return ValueType{Kind: PointerKind, Elem: &i}
}

// ArrayOf builds an Array{element, size} type.
func ArrayOf(elem ValueType, size int) ValueType {
	e := elem
	return ValueType{Kind: ArrayKind, Elem: &e, Size: size}
}

// StructNamed builds a Struct(name) nominal type.
func StructNamed(name string) ValueType {
	return ValueType{Kind: StructKind, StructName: name}
}

// IsValid reports whether t is anything other than the zero/Invalid type.
func (t ValueType) IsValid() bool { return t.Kind != InvalidKind }

// String renders t the way diagnostics quote it (spec §4.5's "display").
func (t ValueType) String() string {
	switch t.Kind {
	case PointerKind:
		return "ptr " + t.Elem.String()
	case ArrayKind:
		return fmt.Sprintf("[%s; %d]", t.Elem.String(), t.Size)
	case StructKind:
		return t.StructName
	default:
		return t.Kind.String()
	}
}

// Equal is structural for scalars/arrays/pointers and nominal for structs
// (spec §3.1).
func (t ValueType) Equal(o ValueType) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case PointerKind:
		return t.Elem.Equal(*o.Elem)
	case ArrayKind:
		return t.Size == o.Size && t.Elem.Equal(*o.Elem)
	case StructKind:
		return t.StructName == o.StructName
	default:
		return true
	}
}

// IsCompatible implements spec §3.1's compatibility rule used for binary
// operators, return values, and plain assignments: equal types are always
// compatible, plus the Null/Pointer-to-Void exceptions.
func IsCompatible(a, b ValueType) bool {
	if a.Equal(b) {
		return true
	}
	if a.Kind == NullKind && (b.Kind == PointerKind || b.Kind == StringKind) {
		return true
	}
	if b.Kind == NullKind && (a.Kind == PointerKind || a.Kind == StringKind) {
		return true
	}
	if a.Kind == PointerKind && b.Kind == PointerKind {
		if a.Elem.Kind == VoidKind || b.Elem.Kind == VoidKind {
			return true
		}
	}
	return false
}

// IsCompatibleForInit implements spec §3.1's superset used only at
// declaration sites: everything IsCompatible allows, plus scalar-to-array
// broadcast (a single Number initializes an array of Number).
func IsCompatibleForInit(declared, provided ValueType) bool {
	if IsCompatible(declared, provided) {
		return true
	}
	if declared.Kind == ArrayKind && provided.Kind != ArrayKind {
		return IsCompatible(*declared.Elem, provided)
	}
	return false
}
