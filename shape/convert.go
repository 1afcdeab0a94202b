package shape

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/typedargs/typedargs/internal/textutil"
)

// ConvertFunc turns one command-line token into a field value.
type ConvertFunc func(string) (any, error)

// Converter synthesizes the string conversion hook handed to the
// underlying flag parser for this shape, or nil if the shape has no
// sensible conversion (the token is then kept as a string).
//
// Literal and Enum converters deliberately never fail: on no match they
// return the raw token unchanged, so that the parser's own choices
// restriction produces the error message instead.
func (s *Shape) Converter() ConvertFunc {
	switch s.kind {
	case KindScalar:
		return scalarConverter(s.scalar)
	case KindOptional, KindList:
		return s.inner.Converter()
	case KindLiteral:
		literals := s.literals
		return func(token string) (any, error) {
			for _, allowed := range literals {
				if match, ok := fuzzyTokenMatch(token, allowed); ok {
					return match, nil
				}
			}
			return token, nil
		}
	case KindEnum:
		members := s.enum
		return func(token string) (any, error) {
			for _, member := range members {
				if textutil.Normalize(token) == textutil.Normalize(member.Name) {
					return member, nil
				}
				if _, ok := fuzzyTokenMatch(token, member.Value); ok {
					return member, nil
				}
			}
			return token, nil
		}
	default:
		return nil
	}
}

func scalarConverter(t reflect.Type) ConvertFunc {
	switch t.Kind() {
	case reflect.String:
		return namedConverter(t, stringType, func(token string) (any, error) {
			return token, nil
		})
	case reflect.Int:
		return namedConverter(t, intType, func(token string) (any, error) {
			n, err := strconv.Atoi(token)
			if err != nil {
				return nil, fmt.Errorf("invalid integer value %q", token)
			}
			return n, nil
		})
	case reflect.Int64:
		return namedConverter(t, int64Type, func(token string) (any, error) {
			n, err := strconv.ParseInt(token, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid integer value %q", token)
			}
			return n, nil
		})
	case reflect.Float64:
		return namedConverter(t, float64Type, func(token string) (any, error) {
			f, err := strconv.ParseFloat(token, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid float value %q", token)
			}
			return f, nil
		})
	case reflect.Bool:
		return namedConverter(t, boolType, func(token string) (any, error) {
			b, err := strconv.ParseBool(token)
			if err != nil {
				return nil, fmt.Errorf("invalid boolean value %q", token)
			}
			return b, nil
		})
	}
	return nil
}

// namedConverter wraps a base-kind converter so that fields declared with
// a named scalar type receive values of that type, not the underlying
// kind's, keeping the nominal validation check satisfied.
func namedConverter(t, base reflect.Type, conv ConvertFunc) ConvertFunc {
	if t == base {
		return conv
	}
	return func(token string) (any, error) {
		v, err := conv(token)
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(v).Convert(t).Interface(), nil
	}
}

// fuzzyTokenMatch compares a raw token against an allowed constant,
// first as-is, then after converting the token to the constant's type.
func fuzzyTokenMatch(token string, allowed any) (any, bool) {
	if textutil.FuzzyEqual(token, allowed) {
		return allowed, true
	}
	at := reflect.TypeOf(allowed)
	if at == nil {
		return nil, false
	}
	if conv := scalarConverter(at); conv != nil {
		if converted, err := conv(token); err == nil {
			if textutil.FuzzyEqual(converted, allowed) {
				return allowed, true
			}
		}
	}
	return nil, false
}
