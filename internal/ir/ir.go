package ir

import "strings"

// MessageType is one packet definition handed to the generators. The order of
// Fields is the wire order.
type MessageType struct {
	Name   string
	ID     int
	Fields []Field
	Source string
}

type Field struct {
	Name string
	Type SourceType
}

type Primitive int

const (
	PrimInt8 Primitive = iota
	PrimInt16
	PrimInt32
	PrimFloat32
	PrimInt64
	PrimBool
)

func (p Primitive) String() string {
	switch p {
	case PrimInt8:
		return "int8"
	case PrimInt16:
		return "int16"
	case PrimInt32:
		return "int32"
	case PrimFloat32:
		return "float32"
	case PrimInt64:
		return "int64"
	case PrimBool:
		return "bool"
	default:
		return "unknown"
	}
}

type TypeKind int

const (
	TypePrimitive TypeKind = iota
	TypeText
	TypeOpaque
	TypeIntArray
	TypeArray
	TypeContainer
	TypeUnknown
)

// SourceType classifies a field's declared type before it is mapped to the
// target language. Elem is set for TypeArray and TypeContainer; Name holds the
// container name or the raw name of an unknown type.
type SourceType struct {
	Kind      TypeKind
	Primitive Primitive
	Elem      *SourceType
	Name      string
}

func Prim(p Primitive) SourceType {
	return SourceType{Kind: TypePrimitive, Primitive: p}
}

func Text() SourceType {
	return SourceType{Kind: TypeText}
}

func Opaque() SourceType {
	return SourceType{Kind: TypeOpaque}
}

func IntArray() SourceType {
	return SourceType{Kind: TypeIntArray}
}

func ArrayOf(elem SourceType) SourceType {
	return SourceType{Kind: TypeArray, Elem: &elem}
}

func ContainerOf(name string, elem SourceType) SourceType {
	return SourceType{Kind: TypeContainer, Name: name, Elem: &elem}
}

func Unknown(name string) SourceType {
	return SourceType{Kind: TypeUnknown, Name: name}
}

func (t SourceType) IsPrimitive() bool {
	return t.Kind == TypePrimitive
}

// String renders the raw source-side name of the type.
func (t SourceType) String() string {
	switch t.Kind {
	case TypePrimitive:
		return t.Primitive.String()
	case TypeText:
		return "string"
	case TypeOpaque:
		return "any"
	case TypeIntArray:
		return "IntSeq"
	case TypeArray:
		return "[]" + t.elemString()
	case TypeContainer:
		var b strings.Builder
		b.WriteString(t.Name)
		b.WriteString("<")
		b.WriteString(t.elemString())
		b.WriteString(">")
		return b.String()
	default:
		return t.Name
	}
}

func (t SourceType) elemString() string {
	if t.Elem == nil {
		return "?"
	}
	return t.Elem.String()
}
