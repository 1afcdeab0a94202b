package usage

import (
	"fmt"
	"strings"
)

// MissingFields is returned when one or more declared fields are absent
// from the raw values. Names are reported in declaration order.
func MissingFields(names []string) *Error {
	var msg string
	if len(names) == 1 {
		msg = fmt.Sprintf("arguments object is missing field '%s'", names[0])
	} else {
		msg = fmt.Sprintf("arguments object is missing fields '%s'", strings.Join(names, "', '"))
	}
	return &Error{Kind: ErrMissingFields, Message: msg}
}

// ExtraFields is returned when extra raw values are present and extras are
// disallowed. Names are reported in sorted order.
func ExtraFields(names []string) *Error {
	var msg string
	if len(names) == 1 {
		msg = fmt.Sprintf("arguments object has an unexpected extra field '%s'", names[0])
	} else {
		msg = fmt.Sprintf("arguments object has unexpected extra fields '%s'", strings.Join(names, "', '"))
	}
	return &Error{Kind: ErrExtraFields, Message: msg}
}

// InvalidFieldValue is returned when a raw value fails its field's shape
// validation.
func InvalidFieldValue(fieldName, reason string) *Error {
	return &Error{
		Kind:    ErrInvalidFieldValue,
		Message: fmt.Sprintf("failed to validate field '%s': %s", fieldName, reason),
	}
}

// InvalidFieldValues aggregates several per-field validation failures into
// one error, in declaration order.
func InvalidFieldValues(failures []string) *Error {
	if len(failures) == 1 {
		return &Error{Kind: ErrInvalidFieldValue, Message: failures[0]}
	}
	return &Error{
		Kind:    ErrInvalidFieldValue,
		Message: "failed to validate fields:\n - " + strings.Join(failures, "\n - "),
	}
}

// UnionFailed is returned when raw values match none of a union's member
// record types. Every member's failure reason is included.
func UnionFailed(reasons []string) *Error {
	return &Error{
		Kind:    ErrInvalidFieldValue,
		Message: "validation failed against all member types of union:\n - " + strings.Join(reasons, "\n - "),
	}
}

// UnknownField is returned when an operation names a field the record type
// does not declare.
func UnknownField(typeName, fieldName string) *Error {
	return &Error{
		Kind:    ErrUnknown,
		Message: fmt.Sprintf("record type '%s' has no field '%s'", typeName, fieldName),
	}
}

// NoAllowedValues is returned when choices are requested for a field whose
// shape is not literal- or enum-like.
func NoAllowedValues(typeName, fieldName string) *Error {
	return &Error{
		Kind:    ErrUnknown,
		Message: fmt.Sprintf("could not infer allowed values of field '%s' on record type '%s'", fieldName, typeName),
	}
}
