package record

import "github.com/typedargs/typedargs/shape"

// NArgs controls the repetition semantics of a field's command-line
// arguments. The zero value means a single value (or, for list-shaped
// fields, zero-or-more).
type NArgs int

const (
	NArgsDefault    NArgs = 0
	NArgsZeroOrMore NArgs = -1
	NArgsOneOrMore  NArgs = -2
)

// Positive NArgs values request an exact occurrence count.

// FieldSpec declares one field of a record type. It is read-only once the
// containing type is constructed.
type FieldSpec struct {
	Name string

	// Shape is the declared type of the field. Required.
	Shape *shape.Shape

	// Default is a literal default value. DefaultFunc produces the default
	// lazily and is invoked once per parse. The two are mutually exclusive.
	Default     any
	DefaultFunc func() any

	// Flags are explicit CLI spellings ("-f", "--file"). When empty, the
	// long flag is derived from the field name. Positional fields take the
	// value from a bare argument instead of a flag.
	Flags      []string
	Positional bool

	NArgs NArgs
	Help  string

	// Convert overrides the shape-derived string conversion.
	Convert shape.ConvertFunc

	// Choices supplies the allowed values dynamically, overriding any
	// literal/enum-derived set. Invoked once per parse.
	Choices func() []any
}

// HasDefault reports whether the field carries a default value or thunk.
func (f *FieldSpec) HasDefault() bool {
	return f.Default != nil || f.DefaultFunc != nil
}

// ResolveDefault produces the default value. The thunk, if any, wins and
// is evaluated on every call.
func (f *FieldSpec) ResolveDefault() any {
	if f.DefaultFunc != nil {
		return f.DefaultFunc()
	}
	return f.Default
}
