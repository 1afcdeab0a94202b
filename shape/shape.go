// Package shape models the declared type of a record field as a closed
// tagged union. A Shape is built once through the constructors below,
// is immutable afterward, and knows how to validate and convert raw
// values against itself.
package shape

import (
	"fmt"
	"reflect"
	"strings"
)

// Kind identifies which variant of the union a Shape is. Exactly one kind
// applies to any given Shape.
type Kind int

const (
	KindScalar Kind = iota
	KindOptional
	KindList
	KindUnion
	KindLiteral
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "Scalar"
	case KindOptional:
		return "Optional"
	case KindList:
		return "List"
	case KindUnion:
		return "Union"
	case KindLiteral:
		return "Literal"
	case KindEnum:
		return "Enum"
	default:
		return "Unknown"
	}
}

// EnumMember is one named constant of an Enum shape. Validation converts
// raw values into members, so field values of enum-shaped fields are
// always EnumMember.
type EnumMember struct {
	Name  string
	Value any
}

func (m EnumMember) String() string {
	return m.Name
}

// Shape is a tagged description of a declared field type. Nesting is
// arbitrary, e.g. Optional(List(Literal(...))).
type Shape struct {
	kind     Kind
	scalar   reflect.Type // KindScalar
	inner    *Shape       // KindOptional, KindList
	members  []*Shape     // KindUnion
	literals []any        // KindLiteral
	enumName string       // KindEnum
	enum     []EnumMember // KindEnum
}

// Scalar declares a field holding exactly one value of type t.
func Scalar(t reflect.Type) *Shape {
	if t == nil {
		panic("shape: Scalar requires a non-nil type")
	}
	return &Shape{kind: KindScalar, scalar: t}
}

var (
	stringType  = reflect.TypeOf("")
	intType     = reflect.TypeOf(int(0))
	int64Type   = reflect.TypeOf(int64(0))
	float64Type = reflect.TypeOf(float64(0))
	boolType    = reflect.TypeOf(false)
)

// String declares a string-valued field.
func String() *Shape { return Scalar(stringType) }

// Int declares an int-valued field.
func Int() *Shape { return Scalar(intType) }

// Float declares a float64-valued field.
func Float() *Shape { return Scalar(float64Type) }

// Bool declares a bool-valued field. Bool-shaped fields become
// presence/absence switches on the command line.
func Bool() *Shape { return Scalar(boolType) }

// Optional wraps inner so that the absence sentinel (nil) validates.
func Optional(inner *Shape) *Shape {
	if inner == nil {
		panic("shape: Optional requires an inner shape")
	}
	return &Shape{kind: KindOptional, inner: inner}
}

// List declares a repeated field of inner-shaped elements.
func List(inner *Shape) *Shape {
	if inner == nil {
		panic("shape: List requires an inner shape")
	}
	return &Shape{kind: KindList, inner: inner}
}

// Union declares a field that validates against the first matching member,
// tried in declaration order.
func Union(members ...*Shape) *Shape {
	if len(members) < 2 {
		panic("shape: Union requires at least two members")
	}
	return &Shape{kind: KindUnion, members: append([]*Shape(nil), members...)}
}

// Literal declares a field restricted to an ordered set of constants.
func Literal(values ...any) *Shape {
	if len(values) == 0 {
		panic("shape: Literal requires at least one value")
	}
	return &Shape{kind: KindLiteral, literals: append([]any(nil), values...)}
}

// Enum declares a field restricted to a named set of members.
func Enum(name string, members ...EnumMember) *Shape {
	if len(members) == 0 {
		panic("shape: Enum requires at least one member")
	}
	return &Shape{kind: KindEnum, enumName: name, enum: append([]EnumMember(nil), members...)}
}

// Kind reports which variant this shape is.
func (s *Shape) Kind() Kind { return s.kind }

// IsBool reports whether this is a bare bool scalar. Callers strip
// Optional layers themselves before testing.
func (s *Shape) IsBool() bool {
	return s.kind == KindScalar && s.scalar == boolType
}

// UnwrapOptional returns the inner shape if this is Optional, one level at
// a time. Callers loop to strip nested optionals.
func (s *Shape) UnwrapOptional() (*Shape, bool) {
	if s.kind == KindOptional {
		return s.inner, true
	}
	return nil, false
}

// UnwrapList returns the element shape if this is a list, looking through
// one layer of Optional first. List(Optional(T)) unwraps to Optional(T),
// not further.
func (s *Shape) UnwrapList() (*Shape, bool) {
	target := s
	if inner, ok := s.UnwrapOptional(); ok {
		target = inner
	}
	if target.kind == KindList {
		return target.inner, true
	}
	return nil, false
}

// AllowedValues returns the ordered allowed constants for Literal shapes,
// or the ordered member values (not members) for Enum shapes.
func (s *Shape) AllowedValues() ([]any, bool) {
	switch s.kind {
	case KindLiteral:
		return append([]any(nil), s.literals...), true
	case KindEnum:
		values := make([]any, len(s.enum))
		for i, m := range s.enum {
			values[i] = m.Value
		}
		return values, true
	default:
		return nil, false
	}
}

// Members returns the enum members of an Enum shape.
func (s *Shape) Members() ([]EnumMember, bool) {
	if s.kind == KindEnum {
		return append([]EnumMember(nil), s.enum...), true
	}
	return nil, false
}

func (s *Shape) String() string {
	switch s.kind {
	case KindScalar:
		return s.scalar.String()
	case KindOptional:
		return fmt.Sprintf("Optional[%s]", s.inner)
	case KindList:
		return fmt.Sprintf("List[%s]", s.inner)
	case KindUnion:
		parts := make([]string, len(s.members))
		for i, m := range s.members {
			parts[i] = m.String()
		}
		return fmt.Sprintf("Union[%s]", strings.Join(parts, ", "))
	case KindLiteral:
		return fmt.Sprintf("Literal%s", renderValues(s.literals))
	case KindEnum:
		return s.enumName
	default:
		return "Unknown"
	}
}

func renderValues(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%v", v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func typename(t reflect.Type) string {
	return "'" + t.String() + "'"
}

func typenameOf(v any) string {
	if v == nil {
		return "'nil'"
	}
	return typename(reflect.TypeOf(v))
}
