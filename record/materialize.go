package record

import (
	"reflect"
	"sort"

	"github.com/iancoleman/strcase"

	"github.com/typedargs/typedargs/usage"
)

// Namespace is the flat name→value result object read back from the
// underlying parser. An absent key means the field was never registered;
// a nil value is the absence sentinel for optional/list coercion.
type Namespace map[string]any

// Has reports whether a key is present, regardless of its value.
func (ns Namespace) Has(name string) bool {
	_, ok := ns[name]
	return ok
}

// FromNamespace validates and converts the raw values into an instance of
// t. All missing field names are collected into a single error, as are all
// per-field validation failures. Extra keys are tolerated.
func FromNamespace(t *Type, ns Namespace) (*Instance, error) {
	return materialize(t, ns, false)
}

// FromNamespaceStrict behaves like FromNamespace but additionally rejects
// keys that do not correspond to any declared field.
func FromNamespaceStrict(t *Type, ns Namespace) (*Instance, error) {
	return materialize(t, ns, true)
}

func materialize(t *Type, ns Namespace, disallowExtras bool) (*Instance, error) {
	var missing []string
	var failures []string
	values := make(map[string]any, len(t.fields))

	for _, f := range t.fields {
		raw, ok := ns[f.Name]
		if !ok {
			// Positional destinations are recorded under the hyphenated
			// CLI spelling.
			raw, ok = ns[strcase.ToKebab(f.Name)]
		}
		if !ok {
			missing = append(missing, f.Name)
			continue
		}

		converted, err := f.Shape.Validate(raw)
		if err != nil {
			failures = append(failures, usage.InvalidFieldValue(f.Name, err.Error()).Message)
			continue
		}
		values[f.Name] = copyContainers(converted)
	}

	if len(missing) > 0 {
		return nil, usage.MissingFields(missing)
	}
	if len(failures) > 0 {
		return nil, usage.InvalidFieldValues(failures)
	}

	if disallowExtras {
		accepted := make(map[string]bool, 2*len(t.fields))
		for _, f := range t.fields {
			accepted[f.Name] = true
			accepted[strcase.ToKebab(f.Name)] = true
		}
		var extras []string
		for key := range ns {
			if !accepted[key] {
				extras = append(extras, key)
			}
		}
		if len(extras) > 0 {
			sort.Strings(extras)
			return nil, usage.ExtraFields(extras)
		}
	}

	return &Instance{typ: t, values: values}, nil
}

// ChoicesFor returns the Literal/Enum allowed-value set of a declared
// field, unwrapping one Optional and one List layer first.
func ChoicesFor(t *Type, fieldName string) ([]any, error) {
	f, ok := t.Field(fieldName)
	if !ok {
		return nil, usage.UnknownField(t.name, fieldName)
	}

	s := f.Shape
	if inner, ok := s.UnwrapOptional(); ok {
		s = inner
	}
	if inner, ok := s.UnwrapList(); ok {
		s = inner
	}
	values, ok := s.AllowedValues()
	if !ok {
		return nil, usage.NoAllowedValues(t.name, fieldName)
	}
	return values, nil
}

// copyContainers deep-copies slices and maps so that one instance's
// in-place mutation of a container value can never be observed through
// another instance sharing the same default.
func copyContainers(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			element := copyContainers(rv.Index(i).Interface())
			if element == nil {
				continue
			}
			out.Index(i).Set(reflect.ValueOf(element))
		}
		return out.Interface()
	case reflect.Map:
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			value := copyContainers(iter.Value().Interface())
			out.SetMapIndex(iter.Key(), reflect.ValueOf(value))
		}
		return out.Interface()
	default:
		return v
	}
}
