package typedargs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/kr/pretty"

	"github.com/typedargs/typedargs/record"
	"github.com/typedargs/typedargs/usage"
)

// ParserSpec carries the parser-wide settings forwarded to the underlying
// flag parser.
type ParserSpec struct {
	Prog        string
	Description string
	Epilog      string

	// ContinueOnError makes parse errors return instead of following the
	// delegate convention of printing a message and exiting the process.
	ContinueOnError bool

	// Output receives error and help text. Defaults to os.Stderr.
	Output io.Writer
}

type mappingEntry struct {
	path []string
	typ  *record.Type
}

// Parser drives the underlying flag parser from a tree of record type
// declarations. The tree and its derived lookup tables are built once and
// never mutated afterward.
type Parser struct {
	root Node
	spec ParserSpec

	// typeMapping maps value paths (the chosen sub-command names) to the
	// record type materialized there. entries preserves traversal order.
	typeMapping map[string]*record.Type
	entries     []mappingEntry

	// keyPaths are discriminator-destination tuples for every leaf and
	// every non-required branch's common args, longest first.
	keyPaths [][]string

	plans map[*record.Type][]fieldPlan
}

// NewParser builds a parser from a declaration tree. Structural errors
// (sibling name or alias collisions, duplicate sub-command paths, invalid
// field metadata) are reported here, never deferred to parse time.
func NewParser(root Node, spec ParserSpec) (*Parser, error) {
	if spec.Prog == "" {
		spec.Prog = filepath.Base(os.Args[0])
	}
	if spec.Output == nil {
		spec.Output = os.Stderr
	}

	p := &Parser{
		root:        root,
		spec:        spec,
		typeMapping: make(map[string]*record.Type),
		plans:       make(map[*record.Type][]fieldPlan),
	}

	if err := p.traverseMapping(root, nil); err != nil {
		return nil, err
	}
	if err := p.traverseKeyPaths(root, nil); err != nil {
		return nil, err
	}

	// Longest (most specific) key paths are tried first at parse time;
	// ties are ordered lexicographically for determinism.
	sort.SliceStable(p.keyPaths, func(i, j int) bool {
		if len(p.keyPaths[i]) != len(p.keyPaths[j]) {
			return len(p.keyPaths[i]) > len(p.keyPaths[j])
		}
		return pathKey(p.keyPaths[i]) < pathKey(p.keyPaths[j])
	})

	return p, nil
}

// MustParser is NewParser for trees known to be valid at program
// definition time; it panics on declaration errors.
func MustParser(root Node, spec ParserSpec) *Parser {
	p, err := NewParser(root, spec)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Parser) traverseMapping(n Node, valuePath []string) error {
	switch n := n.(type) {
	case *Group:
		if n.common != nil {
			if err := p.compileType(n.common, true); err != nil {
				return err
			}
			if !n.required {
				p.putMapping(valuePath, n.common)
			}
		}

		seen := make(map[string]bool)
		for _, sub := range n.subs {
			for _, name := range sub.names() {
				if seen[name] {
					return usage.SiblingConflict(name)
				}
				seen[name] = true
			}
		}

		for _, sub := range n.subs {
			for _, name := range sub.names() {
				if err := p.traverseMapping(sub.child, append(append([]string(nil), valuePath...), name)); err != nil {
					return err
				}
			}
		}
		return nil

	case argsNode:
		if err := p.compileType(n.typ, false); err != nil {
			return err
		}
		if existing, ok := p.typeMapping[pathKey(valuePath)]; ok {
			return usage.SubParserConflict(n.typ.Name(), valuePath, existing.Name())
		}
		p.putMapping(valuePath, n.typ)
		return nil

	default:
		return usage.InternalError("unknown node type in declaration tree",
			pretty.Sprintf("node: %v", n))
	}
}

func (p *Parser) putMapping(valuePath []string, t *record.Type) {
	key := pathKey(valuePath)
	if _, ok := p.typeMapping[key]; !ok {
		p.entries = append(p.entries, mappingEntry{path: append([]string(nil), valuePath...), typ: t})
	}
	p.typeMapping[key] = t
}

func (p *Parser) traverseKeyPaths(n Node, destPath []string) error {
	switch n := n.(type) {
	case *Group:
		if n.common != nil && !n.required {
			p.keyPaths = append(p.keyPaths, append([]string(nil), destPath...))
		}
		dest := destName(len(destPath))
		for _, sub := range n.subs {
			if err := p.traverseKeyPaths(sub.child, append(append([]string(nil), destPath...), dest)); err != nil {
				return err
			}
		}
		return nil

	case argsNode:
		p.keyPaths = append(p.keyPaths, append([]string(nil), destPath...))
		return nil

	default:
		return usage.InternalError("unknown node type in declaration tree",
			pretty.Sprintf("node: %v", n))
	}
}

// destName is the synthetic discriminator destination for a sub-command
// level. Deeper levels get longer names so nested groups never collide.
func destName(depth int) string {
	return "<" + strings.Repeat("sub-", depth+1) + "command>"
}

func pathKey(parts []string) string {
	return strings.Join(parts, "\x1f")
}

// ParseArgs parses the given argument tokens into a validated record
// instance. With default settings, malformed input prints an error and
// terminates the process following the delegate parser's convention.
func (p *Parser) ParseArgs(argv []string) (*record.Instance, error) {
	instance, err := p.parse(argv)
	if err != nil && !p.spec.ContinueOnError {
		p.exit(err)
	}
	return instance, err
}

// ParseLine splits a command line with shell quoting rules and parses the
// resulting tokens.
func (p *Parser) ParseLine(line string) (*record.Instance, error) {
	argv, err := shellquote.Split(line)
	if err != nil {
		badInput := usage.BadInput(err)
		if !p.spec.ContinueOnError {
			p.exit(badInput)
		}
		return nil, badInput
	}
	return p.ParseArgs(argv)
}

func (p *Parser) parse(argv []string) (*record.Instance, error) {
	ns := record.Namespace{}
	var pending []*flagHolder
	if err := p.walk(p.root, argv, 0, ns, &pending); err != nil {
		return nil, err
	}
	if err := resolvePending(pending, ns); err != nil {
		return nil, err
	}

	t := p.determineType(ns)
	if t == nil {
		// Only reachable when non-required branches leave no recorded
		// selection that maps to a type. Report with full diagnostic state.
		return nil, usage.InternalError(
			"failed to extract argument type from namespace object",
			pretty.Sprintf("namespace: %v\nkey paths: %v\ntype mapping: %v", ns, p.keyPaths, p.entries),
		)
	}

	return record.FromNamespace(t, ns)
}

// determineType translates each key path from destination names to the
// actually chosen values and returns the type mapped at the longest
// matching value path.
func (p *Parser) determineType(ns record.Namespace) *record.Type {
	for _, keyPath := range p.keyPaths {
		valuePath := make([]string, 0, len(keyPath))
		ok := true
		for _, dest := range keyPath {
			chosen, found := ns[dest].(string)
			if !found {
				ok = false
				break
			}
			valuePath = append(valuePath, chosen)
		}
		if !ok {
			continue
		}
		if t, found := p.typeMapping[pathKey(valuePath)]; found {
			return t
		}
	}
	return nil
}

// exit follows the delegate parser's error convention: print the message
// and terminate with the error's exit code.
func (p *Parser) exit(err error) {
	if ue, ok := err.(*usage.Error); ok {
		fmt.Fprintln(p.spec.Output, ue.Error())
		osExit(ue.GetExitCode())
		return
	}
	fmt.Fprintln(p.spec.Output, err.Error())
	osExit(1)
}

// osExit is stubbed in tests.
var osExit = os.Exit
