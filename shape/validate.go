package shape

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/typedargs/typedargs/internal/textutil"
)

// Validate checks value against the shape and returns the converted value.
// A nil error message means success. The absence sentinel is untyped nil.
//
// The check order matters and mirrors how shapes nest: Optional first,
// then Union, List, Literal, Enum, and finally the nominal scalar check.
func (s *Shape) Validate(value any) (any, error) {
	switch s.kind {
	case KindOptional:
		if value == nil {
			return nil, nil
		}
		return s.inner.Validate(value)

	case KindUnion:
		errs := make([]string, 0, len(s.members))
		for _, member := range s.members {
			converted, err := member.Validate(value)
			if err == nil {
				return converted, nil
			}
			errs = append(errs, err.Error())
		}
		return value, fmt.Errorf(
			"value %v did not match any type of union:\n - %s",
			value, strings.Join(errs, "\n - "),
		)

	case KindList:
		return s.validateList(value)

	case KindLiteral:
		for _, allowed := range s.literals {
			if literalEqual(value, allowed) {
				return value, nil
			}
		}
		return value, fmt.Errorf(
			"value %v does not match any allowed literal value in %s",
			value, renderValues(s.literals),
		)

	case KindEnum:
		return s.validateEnum(value)

	case KindScalar:
		if value == nil {
			return value, fmt.Errorf("value is of type 'nil', expected %s", typename(s.scalar))
		}
		rt := reflect.TypeOf(value)
		if rt.AssignableTo(s.scalar) {
			return value, nil
		}
		return value, fmt.Errorf(
			"value is of type %s, expected %s",
			typenameOf(value), typename(s.scalar),
		)

	default:
		return value, fmt.Errorf("shape has unknown kind %d", s.kind)
	}
}

func (s *Shape) validateList(value any) (any, error) {
	if value == nil {
		// Absent list-shaped values coerce to an empty list.
		return []any{}, nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice {
		// A scalar is never split into a single-element list.
		return value, fmt.Errorf("value is of type %s, expected 'list'", typenameOf(value))
	}
	converted := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		element, err := s.inner.Validate(rv.Index(i).Interface())
		if err != nil {
			return value, fmt.Errorf("not all elements of the list have proper type (%s)", err)
		}
		converted = append(converted, element)
	}
	return converted, nil
}

func (s *Shape) validateEnum(value any) (any, error) {
	// Pass 1: underlying value match or member identity.
	for _, member := range s.enum {
		if literalEqual(value, member.Value) {
			return member, nil
		}
		if m, ok := value.(EnumMember); ok && m == member {
			return member, nil
		}
	}
	// Pass 2: fuzzy name match, normalizing case and -/_ separators.
	if name, ok := value.(string); ok {
		for _, member := range s.enum {
			if textutil.Normalize(name) == textutil.Normalize(member.Name) {
				return member, nil
			}
		}
	}
	names := make([]any, len(s.enum))
	for i, m := range s.enum {
		names[i] = m.Name
	}
	return value, fmt.Errorf(
		"value %v does not match any allowed enum value in %s",
		value, renderValues(names),
	)
}

// literalEqual is plain equality guarded against uncomparable operands.
func literalEqual(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
