package typedargs

import (
	"github.com/kballard/go-shellquote"
	"github.com/kr/pretty"

	"github.com/typedargs/typedargs/record"
	"github.com/typedargs/typedargs/usage"
)

// Binding associates a concrete record type with the handler invoked for
// its instances.
type Binding struct {
	Type    *record.Type
	Handler func(*record.Instance) error
}

// Bind builds a binding.
func Bind(t *record.Type, handler func(*record.Instance) error) Binding {
	return Binding{Type: t, Handler: handler}
}

// Bindings is an ordered binding list; dispatch tries them in order.
type Bindings []Binding

// LazyBindings produces the bindings at run time, deferring both their
// construction and their completeness check.
type LazyBindings func() Bindings

// Verify checks the completeness of bindings against this parser's tree:
// every reachable record type, including non-required branches' common
// args, must have a binding.
func (p *Parser) Verify(bindings Bindings) error {
	offered := make(map[*record.Type]bool, len(bindings))
	for _, b := range bindings {
		if b.Type == nil {
			return usage.InvalidBinding("binding has no record type")
		}
		if b.Handler == nil {
			return usage.InvalidBinding("binding for type '" + b.Type.Name() + "' has no handler")
		}
		offered[b.Type] = true
	}

	for _, entry := range p.entries {
		if !offered[entry.typ] {
			return usage.IncompleteBindings(entry.typ.Name())
		}
	}
	return nil
}

// Bind turns the parser into an executable app with eager bindings,
// verified immediately.
func (p *Parser) Bind(bindings ...Binding) (*App, error) {
	if err := p.Verify(bindings); err != nil {
		return nil, err
	}
	return &App{parser: p, bindings: bindings}, nil
}

// BindLazy turns the parser into an executable app whose bindings are
// produced and verified when it runs.
func (p *Parser) BindLazy(lazy LazyBindings) *App {
	return &App{parser: p, lazy: lazy}
}

// App is a parser joined with handler bindings.
type App struct {
	parser   *Parser
	bindings Bindings
	lazy     LazyBindings
}

// Run parses the arguments, verifies the (possibly lazy) bindings, and
// invokes the handler bound to the materialized instance's exact type.
// No handler runs when the bindings are incomplete.
func (a *App) Run(argv []string) error {
	// Argument parsing comes first for responsiveness.
	instance, err := a.parser.ParseArgs(argv)
	if err != nil {
		return err
	}

	bindings := a.bindings
	if a.lazy != nil {
		bindings = a.lazy()
	}
	if err := a.parser.Verify(bindings); err != nil {
		return err
	}

	for _, b := range bindings {
		// Exact type match, not subtype matching, so a base-args handler
		// never accidentally fires for a derived type.
		if instance.Type() == b.Type {
			return b.Handler(instance)
		}
	}

	// Should be impossible after a successful Verify.
	return usage.InternalError(
		"argument type '"+instance.Type().Name()+"' did not match any binding",
		pretty.Sprintf("bindings: %v", bindingNames(bindings)),
	)
}

// RunLine splits a command line with shell quoting rules and runs it.
func (a *App) RunLine(line string) error {
	argv, err := shellquote.Split(line)
	if err != nil {
		return usage.BadInput(err)
	}
	return a.Run(argv)
}

func bindingNames(bindings Bindings) []string {
	names := make([]string, len(bindings))
	for i, b := range bindings {
		names[i] = b.Type.Name()
	}
	return names
}
