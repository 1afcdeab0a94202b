package typedargs

import "github.com/typedargs/typedargs/record"

// Node is a position in the declared command tree: either a record type
// (a leaf) or a group of named sub-commands.
type Node interface {
	node()
}

type argsNode struct {
	typ *record.Type
}

func (argsNode) node() {}

// Args wraps a record type as a leaf node.
func Args(t *record.Type) Node {
	return argsNode{typ: t}
}

// SubParser names one branch of a group and the node it leads to.
type SubParser struct {
	name    string
	aliases []string
	help    string
	child   Node
}

// SubSpec declares a sub-command.
type SubSpec struct {
	Name    string
	Node    Node
	Aliases []string
	Help    string
}

// Sub builds a sub-command declaration.
func Sub(spec SubSpec) *SubParser {
	return &SubParser{
		name:    spec.Name,
		aliases: append([]string(nil), spec.Aliases...),
		help:    spec.Help,
		child:   spec.Node,
	}
}

// names returns the primary name followed by all aliases.
func (s *SubParser) names() []string {
	return append([]string{s.name}, s.aliases...)
}

// GroupSpec declares a group of sub-commands. CommonArgs fields are
// registered ahead of the sub-command token and flattened into every
// child's field set. The zero value of Optional keeps the group required,
// matching the common case.
type GroupSpec struct {
	Subs        []*SubParser
	CommonArgs  *record.Type
	Description string
	Optional    bool
}

// Group is an internal node holding named sub-commands.
type Group struct {
	subs        []*SubParser
	common      *record.Type
	description string
	required    bool
}

func (*Group) node() {}

// NewGroup builds a sub-command group from its declaration.
func NewGroup(spec GroupSpec) *Group {
	return &Group{
		subs:        append([]*SubParser(nil), spec.Subs...),
		common:      spec.CommonArgs,
		description: spec.Description,
		required:    !spec.Optional,
	}
}

// find matches a token against sub-command names and aliases.
func (g *Group) find(token string) *SubParser {
	for _, sub := range g.subs {
		for _, name := range sub.names() {
			if name == token {
				return sub
			}
		}
	}
	return nil
}

// allNames collects every sibling name and alias, for suggestions and
// the help listing.
func (g *Group) allNames() []string {
	var names []string
	for _, sub := range g.subs {
		names = append(names, sub.names()...)
	}
	return names
}
