package usage

import (
	"fmt"
	"strings"
)

// SubParserConflict is returned when two declarations claim the same
// sub-command path.
func SubParserConflict(typeName string, path []string, existingName string) *Error {
	return &Error{
		Kind: ErrSubParserConflict,
		Message: fmt.Sprintf(
			"detected a sub parser conflict: adding sub parser '%s' at path [%s] conflicts with sub parser '%s'",
			typeName, strings.Join(path, " "), existingName,
		),
	}
}

// SiblingConflict is returned when two sibling sub-commands share a name
// or alias within the same group.
func SiblingConflict(name string) *Error {
	return &Error{
		Kind:    ErrSubParserConflict,
		Message: fmt.Sprintf("sub-command name or alias '%s' is declared more than once within the same group", name),
	}
}

// ReservedFieldName is returned when a record field collides with a
// reserved instance method name.
func ReservedFieldName(typeName, fieldName string) *Error {
	return &Error{
		Kind:    ErrReservedFieldName,
		Message: fmt.Sprintf("record type '%s' must not have a field called '%s'", typeName, fieldName),
	}
}

// DuplicateField is returned when the flattened field set of a record type
// declares the same name twice.
func DuplicateField(typeName, fieldName string) *Error {
	return &Error{
		Kind:    ErrDuplicateField,
		Message: fmt.Sprintf("record type '%s' declares field '%s' more than once", typeName, fieldName),
	}
}

// InvalidFlagName is returned when an explicit flag spelling does not start
// with '-'.
func InvalidFlagName(fieldName string, flags []string) *Error {
	return &Error{
		Kind: ErrInvalidFlagName,
		Message: fmt.Sprintf(
			"invalid flags for field '%s': %v; all flags must start with '-' (declare a positional field instead)",
			fieldName, flags,
		),
	}
}

// InvalidFieldSpec is returned when a field declaration carries improper
// metadata (no shape, conflicting defaults, empty name).
func InvalidFieldSpec(typeName, fieldName, reason string) *Error {
	return &Error{
		Kind:    ErrInvalidFieldSpec,
		Message: fmt.Sprintf("invalid field '%s' on record type '%s': %s", fieldName, typeName, reason),
	}
}

// VariadicPositional is returned when a positional field follows a
// variadic positional field, or a one-or-more positional is optional.
func VariadicPositional(fieldName, reason string) *Error {
	return &Error{
		Kind:    ErrVariadicPositional,
		Message: fmt.Sprintf("invalid positional field '%s': %s", fieldName, reason),
	}
}

// InvalidBinding is returned when a binding has no record type or no handler.
func InvalidBinding(reason string) *Error {
	return &Error{
		Kind:    ErrInvalidBinding,
		Message: fmt.Sprintf("invalid binding: %s", reason),
	}
}

// IncompleteBindings is returned when a record type reachable through the
// parser tree has no binding.
func IncompleteBindings(typeName string) *Error {
	return &Error{
		Kind:    ErrIncompleteBindings,
		Message: fmt.Sprintf("incomplete bindings: there is no binding for type '%s'", typeName),
	}
}
