// Command typedargs-demo is a small showcase of declaring record types,
// sub-commands with common args, and handler bindings.
//
// Usage examples:
//
//	typedargs-demo fetch --url https://example.com --timeout 10
//	typedargs-demo --verbose convert in.dat --format json
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/typedargs/typedargs"
	"github.com/typedargs/typedargs/record"
	"github.com/typedargs/typedargs/shape"
	"github.com/typedargs/typedargs/usage"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	fieldStyle  = lipgloss.NewStyle().Faint(true)
)

var commonArgs = record.MustNew(record.Spec{
	Name: "CommonArgs",
	Fields: []record.FieldSpec{
		{Name: "verbose", Shape: shape.Bool(), Flags: []string{"-v"}, Help: "enable verbose output"},
	},
})

var fetchArgs = record.MustNew(record.Spec{
	Name: "FetchArgs",
	Base: commonArgs,
	Fields: []record.FieldSpec{
		{Name: "url", Shape: shape.String(), Help: "source URL"},
		{Name: "timeout", Shape: shape.Optional(shape.Int()), Help: "request timeout in seconds"},
		{Name: "retries", Shape: shape.Int(), Default: 3, Help: "number of retries"},
	},
})

var convertArgs = record.MustNew(record.Spec{
	Name: "ConvertArgs",
	Base: commonArgs,
	Fields: []record.FieldSpec{
		{Name: "input_file", Shape: shape.String(), Positional: true, Help: "file to convert"},
		{Name: "format", Shape: shape.Literal("json", "yaml", "toml"), Default: "json", Help: "output format"},
	},
})

func main() {
	styled := term.IsTerminal(int(os.Stdout.Fd()))

	parser := typedargs.MustParser(
		typedargs.NewGroup(typedargs.GroupSpec{
			CommonArgs: commonArgs,
			Subs: []*typedargs.SubParser{
				typedargs.Sub(typedargs.SubSpec{Name: "fetch", Node: typedargs.Args(fetchArgs), Help: "download a resource"}),
				typedargs.Sub(typedargs.SubSpec{Name: "convert", Node: typedargs.Args(convertArgs), Aliases: []string{"conv"}, Help: "convert a file"}),
			},
		}),
		typedargs.ParserSpec{
			Prog:        "typedargs-demo",
			Description: "Demonstrates typed, declarative argument parsing.",
		},
	)

	app, err := parser.Bind(
		typedargs.Bind(fetchArgs, func(args *record.Instance) error {
			printInstance(styled, "fetch", args)
			return nil
		}),
		typedargs.Bind(convertArgs, func(args *record.Instance) error {
			printInstance(styled, "convert", args)
			return nil
		}),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	if err := app.Run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		if ue, ok := err.(*usage.Error); ok {
			os.Exit(ue.GetExitCode())
		}
		os.Exit(1)
	}
}

func printInstance(styled bool, command string, args *record.Instance) {
	header := command + " " + args.Type().Name()
	if styled {
		header = headerStyle.Render(header)
	}
	fmt.Println(header)

	for _, name := range args.Fields() {
		line := fmt.Sprintf("  %s = %v", name, args.Get(name))
		if styled {
			line = fieldStyle.Render(line)
		}
		fmt.Println(line)
	}
}
