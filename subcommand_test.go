package typedargs

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/typedargs/typedargs/record"
	"github.com/typedargs/typedargs/shape"
	"github.com/typedargs/typedargs/usage"
)

func subCommandFixture(t *testing.T) (common, foo, bar *record.Type, root Node) {
	t.Helper()
	common = record.MustNew(record.Spec{
		Name:   "CommonArgs",
		Fields: []record.FieldSpec{{Name: "verbose", Shape: shape.Bool()}},
	})
	foo = record.MustNew(record.Spec{
		Name: "FooArgs",
		Base: common,
		Fields: []record.FieldSpec{
			{Name: "file", Shape: shape.String()},
			{Name: "num", Shape: shape.Int(), Default: 1},
		},
	})
	bar = record.MustNew(record.Spec{
		Name: "BarArgs",
		Base: common,
		Fields: []record.FieldSpec{
			{Name: "src", Shape: shape.String(), Positional: true},
		},
	})
	root = NewGroup(GroupSpec{
		CommonArgs: common,
		Subs: []*SubParser{
			Sub(SubSpec{Name: "foo", Node: Args(foo)}),
			Sub(SubSpec{Name: "bar", Node: Args(bar), Aliases: []string{"b"}}),
		},
	})
	return common, foo, bar, root
}

func TestSubCommands_Dispatch(t *testing.T) {
	_, foo, bar, root := subCommandFixture(t)
	p := testParser(t, root)

	args, err := p.ParseArgs([]string{"foo", "--file", "x"})
	require.NoError(t, err)
	require.Equal(t, foo, args.Type())
	require.Equal(t, "x", args.Get("file"))
	require.Equal(t, 1, args.Get("num"))
	require.Equal(t, false, args.Get("verbose"))

	args, err = p.ParseArgs([]string{"bar", "data"})
	require.NoError(t, err)
	require.Equal(t, bar, args.Type())
	require.Equal(t, "data", args.Get("src"))
}

func TestSubCommands_CommonArgBeforeAndAfterToken(t *testing.T) {
	_, _, _, root := subCommandFixture(t)
	p := testParser(t, root)

	for _, argv := range [][]string{
		{"--verbose", "foo", "--file", "x"},
		{"foo", "--verbose", "--file", "x"},
		{"foo", "--file", "x", "--verbose"},
	} {
		args, err := p.ParseArgs(argv)
		require.NoError(t, err, "argv: %v", argv)
		require.Equal(t, true, args.Get("verbose"), "argv: %v", argv)
		require.Equal(t, "x", args.Get("file"), "argv: %v", argv)
	}
}

func TestSubCommands_Alias(t *testing.T) {
	_, _, bar, root := subCommandFixture(t)
	p := testParser(t, root)

	args, err := p.ParseArgs([]string{"b", "data"})
	require.NoError(t, err)
	require.Equal(t, bar, args.Type())
}

func TestSubCommands_Missing(t *testing.T) {
	_, _, _, root := subCommandFixture(t)
	p := testParser(t, root)

	_, err := p.ParseArgs(nil)
	require.Error(t, err)
	require.Equal(t, usage.ErrMissingSubCommand, usage.KindOf(err))
	require.Equal(t, "the following arguments are required: <sub-command>", err.Error())
}

func TestSubCommands_UnknownWithSuggestion(t *testing.T) {
	_, _, _, root := subCommandFixture(t)
	p := testParser(t, root)

	_, err := p.ParseArgs([]string{"fo"})
	require.Error(t, err)
	require.Equal(t, usage.ErrUnknownSubCommand, usage.KindOf(err))
	require.Contains(t, err.Error(), "unknown sub-command 'fo'")
	require.Contains(t, err.Error(), "Did you mean?")
	require.Contains(t, err.Error(), "foo")
}

func TestSubCommands_Nested(t *testing.T) {
	addArgs := record.MustNew(record.Spec{
		Name:   "RemoteAddArgs",
		Fields: []record.FieldSpec{{Name: "name", Shape: shape.String(), Positional: true}},
	})
	removeArgs := record.MustNew(record.Spec{
		Name:   "RemoteRemoveArgs",
		Fields: []record.FieldSpec{{Name: "name", Shape: shape.String(), Positional: true}},
	})
	statusArgs := record.MustNew(record.Spec{Name: "StatusArgs"})

	root := NewGroup(GroupSpec{
		Subs: []*SubParser{
			Sub(SubSpec{Name: "remote", Node: NewGroup(GroupSpec{
				Subs: []*SubParser{
					Sub(SubSpec{Name: "add", Node: Args(addArgs)}),
					Sub(SubSpec{Name: "remove", Node: Args(removeArgs)}),
				},
			})}),
			Sub(SubSpec{Name: "status", Node: Args(statusArgs)}),
		},
	})
	p := testParser(t, root)

	args, err := p.ParseArgs([]string{"remote", "add", "origin"})
	require.NoError(t, err)
	require.Equal(t, addArgs, args.Type())
	require.Equal(t, "origin", args.Get("name"))

	args, err = p.ParseArgs([]string{"status"})
	require.NoError(t, err)
	require.Equal(t, statusArgs, args.Type())

	// A nested group needs its own sub-command token.
	_, err = p.ParseArgs([]string{"remote"})
	require.Error(t, err)
	require.Equal(t, "the following arguments are required: <sub-sub-command>", err.Error())
}

func TestSubCommands_OptionalGroup(t *testing.T) {
	common := record.MustNew(record.Spec{
		Name:   "RootArgs",
		Fields: []record.FieldSpec{{Name: "verbose", Shape: shape.Bool()}},
	})
	runArgs := record.MustNew(record.Spec{
		Name:   "RunArgs",
		Base:   common,
		Fields: []record.FieldSpec{{Name: "target", Shape: shape.String(), Positional: true}},
	})
	root := NewGroup(GroupSpec{
		CommonArgs: common,
		Optional:   true,
		Subs: []*SubParser{
			Sub(SubSpec{Name: "run", Node: Args(runArgs)}),
		},
	})
	p := testParser(t, root)

	// Without a sub-command the group's own common args materialize.
	args, err := p.ParseArgs(nil)
	require.NoError(t, err)
	require.Equal(t, common, args.Type())
	require.Equal(t, false, args.Get("verbose"))

	args, err = p.ParseArgs([]string{"--verbose"})
	require.NoError(t, err)
	require.Equal(t, common, args.Type())
	require.Equal(t, true, args.Get("verbose"))

	// With a token, the longer path wins.
	args, err = p.ParseArgs([]string{"run", "web"})
	require.NoError(t, err)
	require.Equal(t, runArgs, args.Type())
	require.Equal(t, "web", args.Get("target"))
}

func TestNewParser_SiblingConflicts(t *testing.T) {
	typ := record.MustNew(record.Spec{Name: "T"})

	tests := []struct {
		name string
		root Node
	}{
		{
			name: "duplicate sub-command name",
			root: NewGroup(GroupSpec{Subs: []*SubParser{
				Sub(SubSpec{Name: "foo", Node: Args(typ)}),
				Sub(SubSpec{Name: "foo", Node: Args(typ)}),
			}}),
		},
		{
			name: "alias collides with sibling name",
			root: NewGroup(GroupSpec{Subs: []*SubParser{
				Sub(SubSpec{Name: "foo", Node: Args(typ)}),
				Sub(SubSpec{Name: "bar", Node: Args(typ), Aliases: []string{"foo"}}),
			}}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser(tt.root, ParserSpec{Prog: "test", ContinueOnError: true})
			require.Error(t, err)
			require.Equal(t, usage.ErrSubParserConflict, usage.KindOf(err))
		})
	}
}

func TestNewParser_PositionalInCommonArgs(t *testing.T) {
	common := record.MustNew(record.Spec{
		Name:   "CommonArgs",
		Fields: []record.FieldSpec{{Name: "path", Shape: shape.String(), Positional: true}},
	})
	leaf := record.MustNew(record.Spec{Name: "LeafArgs"})

	root := NewGroup(GroupSpec{
		CommonArgs: common,
		Subs:       []*SubParser{Sub(SubSpec{Name: "go", Node: Args(leaf)})},
	})

	_, err := NewParser(root, ParserSpec{Prog: "test", ContinueOnError: true})
	require.Error(t, err)
	require.Contains(t, err.Error(), "positional fields are not allowed in group common args")
}

func TestSubCommands_GroupHelpListsNames(t *testing.T) {
	_, _, _, root := subCommandFixture(t)
	p := testParser(t, root)

	_, err := p.ParseArgs([]string{"--help"})
	require.Error(t, err)
	require.Equal(t, usage.ErrHelpRequested, usage.KindOf(err))
	ue := err.(*usage.Error)
	require.Contains(t, ue.Message, "sub-commands:")
	require.Contains(t, ue.Message, "foo, bar, b")
}
