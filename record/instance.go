package record

import (
	"fmt"
	"reflect"
	"strings"
)

// Instance is a validated, populated record. Instances are created by the
// materializer and are not meant to be mutated afterward.
type Instance struct {
	typ    *Type
	values map[string]any
}

// Type returns the record type this instance was materialized from.
func (in *Instance) Type() *Type { return in.typ }

// Get returns the validated value of a field, or nil for unknown names.
func (in *Instance) Get(name string) any {
	return in.values[name]
}

// Lookup returns the validated value of a field and whether the field
// exists on the instance.
func (in *Instance) Lookup(name string) (any, bool) {
	v, ok := in.values[name]
	return v, ok
}

// Fields returns the field names in declaration order.
func (in *Instance) Fields() []string {
	names := make([]string, len(in.typ.fields))
	for i, f := range in.typ.fields {
		names[i] = f.Name
	}
	return names
}

// Equal reports structural equality: two instances are equal iff all of
// their field values are equal, regardless of their declared types.
func (in *Instance) Equal(other *Instance) bool {
	if other == nil {
		return false
	}
	return reflect.DeepEqual(in.values, other.values)
}

// String renders the instance as TypeName(field=value, ...) in field
// declaration order.
func (in *Instance) String() string {
	pairs := make([]string, len(in.typ.fields))
	for i, f := range in.typ.fields {
		pairs[i] = fmt.Sprintf("%s=%v", f.Name, in.values[f.Name])
	}
	return fmt.Sprintf("%s(%s)", in.typ.name, strings.Join(pairs, ", "))
}
