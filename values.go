package typedargs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/typedargs/typedargs/shape"
)

// flag value holders implementing pflag.Value. Each holder records
// whether the flag was seen, so requiredness and defaults can be resolved
// after the delegate parse.

// scalarValue holds a single converted value, optionally restricted to an
// allowed set.
type scalarValue struct {
	convert  shape.ConvertFunc
	choices  []any
	typeHint string
	set      bool
	value    any
}

func (v *scalarValue) Set(token string) error {
	converted, err := convertToken(v.convert, token)
	if err != nil {
		return err
	}
	if err := checkChoice(converted, v.choices); err != nil {
		return err
	}
	v.value = converted
	v.set = true
	return nil
}

func (v *scalarValue) String() string {
	if !v.set {
		return ""
	}
	return fmt.Sprintf("%v", v.value)
}

func (v *scalarValue) Type() string { return v.typeHint }

// listValue collects one element per flag occurrence.
type listValue struct {
	convert  shape.ConvertFunc
	choices  []any
	typeHint string
	set      bool
	values   []any
}

func (v *listValue) Set(token string) error {
	converted, err := convertToken(v.convert, token)
	if err != nil {
		return err
	}
	if err := checkChoice(converted, v.choices); err != nil {
		return err
	}
	v.values = append(v.values, converted)
	v.set = true
	return nil
}

func (v *listValue) String() string {
	if !v.set {
		return ""
	}
	parts := make([]string, len(v.values))
	for i, value := range v.values {
		parts[i] = fmt.Sprintf("%v", value)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func (v *listValue) Type() string { return v.typeHint }

// switchValue is a presence switch. A bare occurrence stores the switch
// polarity; an explicit =true/=false token is honored relative to it, so
// a negating switch given --flag=false yields the positive value.
type switchValue struct {
	store bool
	set   bool
	value bool
}

func (v *switchValue) Set(token string) error {
	b, err := strconv.ParseBool(token)
	if err != nil {
		return fmt.Errorf("invalid boolean value %q", token)
	}
	if b {
		v.value = v.store
	} else {
		v.value = !v.store
	}
	v.set = true
	return nil
}

func (v *switchValue) String() string { return strconv.FormatBool(v.value) }

func (v *switchValue) Type() string { return "bool" }

func convertToken(convert shape.ConvertFunc, token string) (any, error) {
	if convert == nil {
		return token, nil
	}
	return convert(token)
}

func checkChoice(value any, choices []any) error {
	if choices == nil {
		return nil
	}
	for _, allowed := range choices {
		if choiceEqual(value, allowed) {
			return nil
		}
	}
	return fmt.Errorf("invalid choice: %v (choose from %s)", value, renderChoices(choices))
}

func renderChoices(choices []any) string {
	parts := make([]string, len(choices))
	for i, c := range choices {
		parts[i] = fmt.Sprintf("%v", c)
	}
	return strings.Join(parts, ", ")
}

// choiceEqual guards plain equality against uncomparable operands, and
// lets enum members match their underlying value.
func choiceEqual(value, allowed any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	if m, ok := value.(shape.EnumMember); ok {
		return m.Value == allowed || any(m) == allowed
	}
	return value == allowed
}
