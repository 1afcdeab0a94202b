// Package record implements typed argument records: declared schemas of
// named, shaped fields, and the materializer that validates a flat
// name→value result object into a populated instance.
package record

import (
	"strings"

	"github.com/typedargs/typedargs/usage"
)

// reservedNames are instance accessor names a field must not shadow.
var reservedNames = map[string]bool{
	"get":    true,
	"type":   true,
	"equal":  true,
	"string": true,
	"fields": true,
}

// Spec declares a record type. Base contributes shared "common args"
// fields, flattened ahead of the type's own fields.
type Spec struct {
	Name   string
	Base   *Type
	Fields []FieldSpec
}

// Type is a validated, immutable record type declaration.
type Type struct {
	name     string
	fields   []FieldSpec // flattened, base fields first
	ownStart int
	base     *Type
}

// New builds a record type from its declaration, validating field
// metadata eagerly.
func New(spec Spec) (*Type, error) {
	t := &Type{name: spec.Name, base: spec.Base}

	if spec.Base != nil {
		t.fields = append(t.fields, spec.Base.fields...)
	}
	t.ownStart = len(t.fields)

	seen := make(map[string]bool, len(t.fields)+len(spec.Fields))
	for _, f := range t.fields {
		seen[f.Name] = true
	}

	for _, f := range spec.Fields {
		if f.Name == "" {
			return nil, usage.InvalidFieldSpec(spec.Name, f.Name, "empty field name")
		}
		if reservedNames[strings.ToLower(f.Name)] {
			return nil, usage.ReservedFieldName(spec.Name, f.Name)
		}
		if seen[f.Name] {
			return nil, usage.DuplicateField(spec.Name, f.Name)
		}
		if f.Shape == nil {
			return nil, usage.InvalidFieldSpec(spec.Name, f.Name, "field has no shape")
		}
		if f.Default != nil && f.DefaultFunc != nil {
			return nil, usage.InvalidFieldSpec(spec.Name, f.Name,
				"a literal default and a default thunk are mutually exclusive")
		}
		seen[f.Name] = true
		t.fields = append(t.fields, f)
	}

	return t, nil
}

// MustNew is New for declarations known to be valid at program definition
// time; it panics on declaration errors.
func MustNew(spec Spec) *Type {
	t, err := New(spec)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the declared type name.
func (t *Type) Name() string { return t.name }

// Base returns the common-args type this type extends, if any.
func (t *Type) Base() *Type { return t.base }

// Fields returns all fields in declaration order, inherited first.
func (t *Type) Fields() []FieldSpec {
	return append([]FieldSpec(nil), t.fields...)
}

// OwnFields returns only the fields declared directly on this type.
func (t *Type) OwnFields() []FieldSpec {
	return append([]FieldSpec(nil), t.fields[t.ownStart:]...)
}

// Field looks up a declared field by name.
func (t *Type) Field(name string) (FieldSpec, bool) {
	for _, f := range t.fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}
