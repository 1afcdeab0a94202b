package typedargs

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/spf13/pflag"

	"github.com/typedargs/typedargs/record"
	"github.com/typedargs/typedargs/shape"
	"github.com/typedargs/typedargs/usage"
)

/// fieldPlan is the compiled, per-field flag synthesis: everything that
// can be derived once at parser construction instead of on every parse.
type fieldPlan struct {
	spec       record.FieldSpec
	positional bool
	isSwitch   bool
	isList     bool
	isOptional bool
	required   bool
	hasDefault bool
	nargs      record.NArgs
	longs      []string // flag spellings without leading dashes; first is primary
	shorthand  string
	convert    shape.ConvertFunc
	choices    []any // static allowed values; nil when unrestricted
	typeHint   string
}

// compileType compiles and caches the flag plans for every field of t.
// commonContext marks types used as group common args, which must not
// declare positional fields (they would be indistinguishable from
// sub-command tokens).
func (p *Parser) compileType(t *record.Type, commonContext bool) error {
	plans, compiled := p.plans[t]
	if !compiled {
		variadicSeen := false
		for _, f := range t.Fields() {
			plan, err := compileField(t.Name(), f)
			if err != nil {
				return err
			}
			if plan.positional {
				if variadicSeen {
					return usage.VariadicPositional(f.Name,
						"positional fields may not follow a variadic positional field")
				}
				if plan.isList && plan.nargs < 0 {
					variadicSeen = true
				}
			}
			plans = append(plans, plan)
		}
		p.plans[t] = plans
	}

	if commonContext {
		for _, plan := range plans {
			if plan.positional {
				return usage.InvalidFieldSpec(t.Name(), plan.spec.Name,
					"positional fields are not allowed in group common args")
			}
		}
	}
	return nil
}

func compileField(typeName string, f record.FieldSpec) (fieldPlan, error) {
	plan := fieldPlan{
		spec:       f,
		positional: f.Positional,
		hasDefault: f.HasDefault(),
		nargs:      f.NArgs,
	}

	s := f.Shape
	_, plan.isOptional = s.UnwrapOptional()
	_, plan.isList = s.UnwrapList()

	// Optionality is stripped before the switch test: Optional[bool] is a
	// presence switch just like a bare bool, absent meaning false.
	switchShape := s
	for {
		inner, ok := switchShape.UnwrapOptional()
		if !ok {
			break
		}
		switchShape = inner
	}
	plan.isSwitch = switchShape.IsBool() && !f.Positional

	if plan.isList {
		if plan.nargs == record.NArgsDefault {
			plan.nargs = record.NArgsZeroOrMore
		}
		if plan.nargs == record.NArgsOneOrMore && plan.isOptional {
			return plan, usage.InvalidFieldSpec(typeName, f.Name,
				"an argument with one-or-more arity must not be optional")
		}
	} else {
		// Repetition arity only applies to list-shaped fields.
		plan.nargs = record.NArgsDefault
	}

	plan.required = !plan.isSwitch && !plan.isOptional && !plan.hasDefault && !f.Positional

	if plan.isSwitch && f.Default != nil {
		if _, ok := f.Default.(bool); !ok {
			return plan, usage.InvalidFieldSpec(typeName, f.Name,
				fmt.Sprintf("invalid default for bool: %v", f.Default))
		}
	}

	plan.convert = f.Convert
	if plan.convert == nil {
		plan.convert = s.Converter()
	}

	choiceShape := s
	if inner, ok := choiceShape.UnwrapOptional(); ok {
		choiceShape = inner
	}
	if inner, ok := choiceShape.UnwrapList(); ok {
		choiceShape = inner
	}
	if values, ok := choiceShape.AllowedValues(); ok {
		plan.choices = values
	}
	plan.typeHint = typeHint(choiceShape)

	if f.Positional {
		if len(f.Flags) > 0 {
			return plan, usage.InvalidFieldSpec(typeName, f.Name,
				"a positional field must not declare flag spellings")
		}
		return plan, nil
	}

	if len(f.Flags) == 0 {
		plan.longs = []string{hyphenate(f.Name)}
		return plan, nil
	}

	allShort := true
	for _, flag := range f.Flags {
		switch {
		case strings.HasPrefix(flag, "--"):
			plan.longs = append(plan.longs, strings.TrimPrefix(flag, "--"))
			allShort = false
		case strings.HasPrefix(flag, "-") && len(flag) == 2:
			if plan.shorthand != "" {
				return plan, usage.InvalidFieldSpec(typeName, f.Name,
					"at most one short flag is supported")
			}
			plan.shorthand = strings.TrimPrefix(flag, "-")
		default:
			return plan, usage.InvalidFlagName(f.Name, f.Flags)
		}
	}

	// A short flag on its own gets the hyphenated long form added
	// automatically, as long as the field name is more than one rune.
	if allShort && len(f.Name) > 1 {
		plan.longs = append(plan.longs, hyphenate(f.Name))
	}
	if len(plan.longs) == 0 {
		plan.longs = []string{f.Name}
	}
	return plan, nil
}

func hyphenate(name string) string {
	return strcase.ToKebab(name)
}

func typeHint(s *shape.Shape) string {
	switch s.Kind() {
	case shape.KindScalar:
		return s.String()
	case shape.KindEnum:
		return s.String()
	default:
		return "value"
	}
}

// flagHolder pairs a registered pflag value with its plan so defaults and
// requiredness can be resolved after the delegate parse. For switches the
// default is resolved at registration (it decides the switch polarity) and
// stashed here, so a default thunk still runs exactly once per parse.
type flagHolder struct {
	plan          fieldPlan
	value         pflag.Value
	switchDefault bool
}

// isSet reports whether the flag occurred in the input at this level.
func (h *flagHolder) isSet() bool {
	switch v := h.value.(type) {
	case *switchValue:
		return v.set
	case *listValue:
		return v.set
	default:
		return h.value.(*scalarValue).set
	}
}

// emit resolves the final namespace value for the holder's field.
func (h *flagHolder) emit(ns record.Namespace) error {
	name := h.plan.spec.Name

	switch v := h.value.(type) {
	case *switchValue:
		if v.set {
			ns[name] = v.value
			return nil
		}
		if h.plan.hasDefault {
			ns[name] = h.switchDefault
			return nil
		}
		ns[name] = false
		return nil

	case *listValue:
		if v.set {
			if h.plan.nargs > 0 && len(v.values) != int(h.plan.nargs) {
				return usage.BadInput(fmt.Errorf(
					"flag --%s expects exactly %d values, got %d",
					h.plan.longs[0], h.plan.nargs, len(v.values)))
			}
			ns[name] = v.values
			return nil
		}
		if h.plan.hasDefault {
			ns[name] = h.plan.spec.ResolveDefault()
			return nil
		}
		if h.plan.required {
			return usage.RequiredFlagNotSet([]string{"--" + h.plan.longs[0]})
		}
		ns[name] = nil
		return nil

	default:
		v2 := h.value.(*scalarValue)
		if v2.set {
			ns[name] = v2.value
			return nil
		}
		if h.plan.hasDefault {
			ns[name] = h.plan.spec.ResolveDefault()
			return nil
		}
		if h.plan.required {
			return usage.RequiredFlagNotSet([]string{"--" + h.plan.longs[0]})
		}
		ns[name] = nil
		return nil
	}
}

// walk performs the parse-phase descent: synthesize a fresh flag set for
// the current level, let the delegate parse, record the values that were
// actually given, and follow the chosen sub-command.
//
// Common args are registered again at every deeper level, so they are
// accepted both before and after the sub-command token. The deepest
// occurrence wins; holders whose flag never occurred go into pending and
// are resolved (default, requiredness, absence) only after the full
// descent, since a later level may still supply the value.
func (p *Parser) walk(n Node, args []string, depth int, ns record.Namespace, pending *[]*flagHolder) error {
	switch n := n.(type) {
	case *Group:
		fs, holders, err := p.newFlagSet(n.common, false)
		if err != nil {
			return err
		}
		if err := p.runFlagSet(fs, args, n.allNames()); err != nil {
			return err
		}
		if err := collectSet(holders, ns, pending); err != nil {
			return err
		}

		rest := fs.Args()
		if len(rest) == 0 {
			if n.required {
				return usage.MissingSubCommand(destName(depth))
			}
			return nil
		}

		token := rest[0]
		sub := n.find(token)
		if sub == nil {
			return usage.UnknownSubCommand(token, findSimilar(token, n.allNames())...)
		}
		ns[destName(depth)] = token
		return p.walk(sub.child, rest[1:], depth+1, ns, pending)

	case argsNode:
		fs, holders, err := p.newFlagSet(n.typ, true)
		if err != nil {
			return err
		}
		if err := p.runFlagSet(fs, args, nil); err != nil {
			return err
		}
		if err := collectSet(holders, ns, pending); err != nil {
			return err
		}
		return p.assignPositionals(n.typ, fs.Args(), ns)

	default:
		return usage.InternalError("unknown node type in declaration tree", "")
	}
}

// collectSet emits the holders whose flag occurred and defers the rest.
func collectSet(holders []*flagHolder, ns record.Namespace, pending *[]*flagHolder) error {
	for _, h := range holders {
		if h.isSet() {
			if err := h.emit(ns); err != nil {
				return err
			}
			continue
		}
		*pending = append(*pending, h)
	}
	return nil
}

// resolvePending emits defaults, absence sentinels, and requiredness
// errors for the holders whose flag never occurred at any level.
func resolvePending(pending []*flagHolder, ns record.Namespace) error {
	for _, h := range pending {
		if ns.Has(h.plan.spec.Name) {
			continue
		}
		if err := h.emit(ns); err != nil {
			return err
		}
	}
	return nil
}

// newFlagSet synthesizes a fresh delegate flag set for one tree level.
// Positional fields are handled after the delegate parse.
func (p *Parser) newFlagSet(t *record.Type, interspersed bool) (*pflag.FlagSet, []*flagHolder, error) {
	fs := pflag.NewFlagSet(p.spec.Prog, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SetInterspersed(interspersed)

	if t == nil {
		return fs, nil, nil
	}

	var holders []*flagHolder
	for _, plan := range p.plans[t] {
		if plan.positional {
			continue
		}

		choices, err := p.resolveChoices(plan)
		if err != nil {
			return nil, nil, err
		}

		var value pflag.Value
		var switchDefault bool
		if plan.isSwitch {
			store := true
			if plan.hasDefault {
				resolved := plan.spec.ResolveDefault()
				d, ok := resolved.(bool)
				if !ok {
					return nil, nil, usage.InvalidFieldSpec(t.Name(), plan.spec.Name,
						fmt.Sprintf("invalid default for bool: %v", resolved))
				}
				switchDefault = d
				if d {
					// A true default turns the flag into a negating switch.
					store = false
				}
			}
			value = &switchValue{store: store}
		} else if plan.isList {
			value = &listValue{convert: plan.convert, choices: choices, typeHint: plan.typeHint}
		} else {
			value = &scalarValue{convert: plan.convert, choices: choices, typeHint: plan.typeHint}
		}

		primary := plan.longs[0]
		fs.VarP(value, primary, plan.shorthand, plan.spec.Help)
		if plan.isSwitch {
			fs.Lookup(primary).NoOptDefVal = "true"
		}
		for _, alias := range plan.longs[1:] {
			fs.Var(value, alias, plan.spec.Help)
			_ = fs.MarkHidden(alias)
			if plan.isSwitch {
				fs.Lookup(alias).NoOptDefVal = "true"
			}
		}

		holders = append(holders, &flagHolder{plan: plan, value: value, switchDefault: switchDefault})
	}
	return fs, holders, nil
}

// resolveChoices evaluates the dynamic choices thunk, falling back to the
// shape-derived static set. The thunk runs once per parse.
func (p *Parser) resolveChoices(plan fieldPlan) ([]any, error) {
	if plan.spec.Choices != nil {
		return plan.spec.Choices(), nil
	}
	return plan.choices, nil
}

func (p *Parser) runFlagSet(fs *pflag.FlagSet, args, subs []string) error {
	err := fs.Parse(args)
	if err == nil {
		return nil
	}
	if errors.Is(err, pflag.ErrHelp) {
		return usage.HelpRequested(p.helpText(fs, subs))
	}
	return usage.BadInput(err)
}

func (p *Parser) helpText(fs *pflag.FlagSet, subs []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "usage: %s\n", p.spec.Prog)
	if p.spec.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", p.spec.Description)
	}
	if len(subs) > 0 {
		fmt.Fprintf(&b, "\nsub-commands:\n  %s\n", strings.Join(subs, ", "))
	}
	if flagUsages := fs.FlagUsages(); flagUsages != "" {
		fmt.Fprintf(&b, "\noptions:\n%s", flagUsages)
	}
	if p.spec.Epilog != "" {
		fmt.Fprintf(&b, "\n%s\n", p.spec.Epilog)
	}
	return b.String()
}

// assignPositionals matches the delegate's leftover tokens against the
// leaf's positional fields in declaration order.
func (p *Parser) assignPositionals(t *record.Type, tokens []string, ns record.Namespace) error {
	for _, plan := range p.plans[t] {
		if !plan.positional {
			continue
		}

		display := hyphenate(plan.spec.Name)
		choices, err := p.resolveChoices(plan)
		if err != nil {
			return err
		}

		switch {
		case plan.isList && plan.nargs > 0:
			n := int(plan.nargs)
			if len(tokens) < n {
				return usage.MissingPositional(display)
			}
			values, err := p.convertPositionals(plan, choices, tokens[:n], display)
			if err != nil {
				return err
			}
			tokens = tokens[n:]
			ns[display] = values

		case plan.isList && plan.nargs == record.NArgsOneOrMore:
			if len(tokens) == 0 {
				return usage.MissingPositional(display)
			}
			values, err := p.convertPositionals(plan, choices, tokens, display)
			if err != nil {
				return err
			}
			tokens = nil
			ns[display] = values

		case plan.isList:
			if len(tokens) == 0 {
				if plan.hasDefault {
					ns[display] = plan.spec.ResolveDefault()
				} else {
					ns[display] = nil
				}
				continue
			}
			values, err := p.convertPositionals(plan, choices, tokens, display)
			if err != nil {
				return err
			}
			tokens = nil
			ns[display] = values

		default:
			if len(tokens) == 0 {
				// The delegate treats a positional with a default as
				// optionally occurring, so absence is not an error here.
				switch {
				case plan.hasDefault:
					ns[display] = plan.spec.ResolveDefault()
				case plan.isOptional:
					ns[display] = nil
				default:
					return usage.MissingPositional(display)
				}
				continue
			}
			value, err := p.convertPositional(plan, choices, tokens[0], display)
			if err != nil {
				return err
			}
			tokens = tokens[1:]
			ns[display] = value
		}
	}

	if len(tokens) > 0 {
		return usage.UnrecognizedArguments(tokens)
	}
	return nil
}

func (p *Parser) convertPositional(plan fieldPlan, choices []any, token, display string) (any, error) {
	value, err := convertToken(plan.convert, token)
	if err != nil {
		return nil, usage.BadInput(fmt.Errorf("argument '%s': %v", display, err))
	}
	if err := checkChoice(value, choices); err != nil {
		return nil, usage.BadInput(fmt.Errorf("argument '%s': %v", display, err))
	}
	return value, nil
}

func (p *Parser) convertPositionals(plan fieldPlan, choices []any, tokens []string, display string) ([]any, error) {
	values := make([]any, 0, len(tokens))
	for _, token := range tokens {
		value, err := p.convertPositional(plan, choices, token, display)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}
