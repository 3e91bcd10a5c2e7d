package yangsrc

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/openconfig/goyang/pkg/yang"

	"github.com/alpakka/wools/schema"
)

// builtinTypes are the YANG built-in type names.
var builtinTypes = map[string]bool{
	"binary": true, "bits": true, "boolean": true, "decimal64": true,
	"empty": true, "enumeration": true, "identityref": true,
	"instance-identifier": true, "int8": true, "int16": true, "int32": true,
	"int64": true, "leafref": true, "string": true, "uint8": true,
	"uint16": true, "uint32": true, "uint64": true, "union": true,
}

// nodeKinds maps the statements that become schema nodes to their kind.
var nodeKinds = map[string]schema.Kind{
	"container": schema.KindContainer,
	"list":      schema.KindList,
	"leaf":      schema.KindLeaf,
	"leaf-list": schema.KindLeafList,
	"grouping":  schema.KindGrouping,
	"typedef":   schema.KindTypedef,
	"choice":    schema.KindChoice,
	"case":      schema.KindCase,
	"rpc":       schema.KindRPC,
	"input":     schema.KindInput,
	"output":    schema.KindOutput,
}

// scope holds the groupings visible at one level of a module.
type scope struct {
	parent    *scope
	groupings map[string]*schema.Node
}

func (s *scope) child() *scope {
	return &scope{parent: s, groupings: make(map[string]*schema.Node)}
}

func (s *scope) lookup(name string) *schema.Node {
	for cur := s; cur != nil; cur = cur.parent {
		if g, ok := cur.groupings[name]; ok {
			return g
		}
	}
	return nil
}

type moduleState struct {
	name     string
	node     *schema.Node
	prefixes map[string]string
	top      *scope
}

// module resolves a prefix to a module name; "" or the own prefix is the
// module itself.
func (m *moduleState) module(prefix string) (string, bool) {
	if prefix == "" {
		return m.name, true
	}
	name, ok := m.prefixes[prefix]
	return name, ok
}

type pendingAugment struct {
	mod  *moduleState
	stmt *yang.Statement
}

type pendingRef struct {
	mod  *moduleState
	node *schema.Node
	path string
}

type build struct {
	logger   *slog.Logger
	loader   *Loader
	modules  map[string]*moduleState
	augments []pendingAugment
	refs     []pendingRef
}

func newBuild(l *Loader) *build {
	return &build{
		logger:  l.logger,
		loader:  l,
		modules: make(map[string]*moduleState),
	}
}

func (b *build) module(st *yang.Statement) error {
	prefix := argOf(st, "prefix")
	if prefix == "" {
		return fmt.Errorf("module %s has no prefix", st.Argument)
	}
	m := &moduleState{
		name:     st.Argument,
		node:     schema.NewModule(st.Argument, prefix),
		prefixes: map[string]string{prefix: st.Argument},
		top:      (&scope{}).child(),
	}
	for _, imp := range subs(st, "import") {
		m.node.Imports = append(m.node.Imports, imp.Argument)
		if p := argOf(imp, "prefix"); p != "" {
			m.prefixes[p] = imp.Argument
		}
	}
	b.modules[m.name] = m

	body := st.SubStatements()
	for _, sub := range b.loader.submodules[m.name] {
		b.logger.Debug("including submodule", "module", m.name, "submodule", sub.Argument)
		body = append(body, sub.SubStatements()...)
	}
	b.children(m, m.node, body, m.top)
	return nil
}

// children converts the child statements of parent. Groupings are declared
// in the scope before any child is converted so that uses may refer to
// groupings declared further down.
func (b *build) children(m *moduleState, parent *schema.Node, stmts []*yang.Statement, sc *scope) {
	// module level groupings live in the module scope so other modules
	// can reach them
	local := sc
	if parent.Kind != schema.KindModule {
		local = sc.child()
	}
	declared := make(map[*yang.Statement]*schema.Node)
	for _, st := range stmts {
		if st.Keyword == "grouping" {
			g := schema.New(schema.KindGrouping, st.Argument, m.name)
			local.groupings[st.Argument] = g
			declared[st] = g
		}
	}

	for _, st := range stmts {
		switch st.Keyword {
		case "uses":
			parent.Uses = append(parent.Uses, b.resolveUses(m, st, local))
			continue
		case "augment":
			if parent.Kind == schema.KindModule {
				b.augments = append(b.augments, pendingAugment{mod: m, stmt: st})
			} else {
				b.logger.Debug("ignoring nested augment", "module", m.name, "path", st.Argument)
			}
			continue
		}

		kind, ok := nodeKinds[st.Keyword]
		if !ok {
			continue
		}
		n, ok := declared[st]
		if !ok {
			n = schema.New(kind, st.Argument, m.name)
		}
		if kind == schema.KindInput || kind == schema.KindOutput {
			n.Name = st.Keyword
		}
		parent.Add(n)
		b.fill(m, n, st, local)
	}
}

func (b *build) fill(m *moduleState, n *schema.Node, st *yang.Statement, sc *scope) {
	switch n.Kind {
	case schema.KindLeaf, schema.KindLeafList, schema.KindTypedef:
		if t := firstSub(st, "type"); t != nil {
			n.Type = b.typeRef(m, t)
			if n.Type.Name == "leafref" {
				b.refs = append(b.refs, pendingRef{mod: m, node: n, path: n.Type.Path})
			}
		} else {
			b.logger.Warn("statement without type", "module", m.name, "node", n.Path())
		}
		return
	case schema.KindList:
		n.Keys = strings.Fields(argOf(st, "key"))
	case schema.KindChoice:
		b.choice(m, n, st, sc)
		return
	}
	b.children(m, n, st.SubStatements(), sc)
}

// choice converts the cases of a choice. Data statements placed directly
// under the choice are wrapped in a case of the same name.
func (b *build) choice(m *moduleState, n *schema.Node, st *yang.Statement, sc *scope) {
	for _, sub := range st.SubStatements() {
		switch sub.Keyword {
		case "container", "leaf", "leaf-list", "list", "choice":
			cs := schema.New(schema.KindCase, sub.Argument, m.name)
			n.Add(cs)
			b.children(m, cs, []*yang.Statement{sub}, sc)
		case "case", "uses":
			b.children(m, n, []*yang.Statement{sub}, sc)
		}
	}
}

func (b *build) resolveUses(m *moduleState, st *yang.Statement, sc *scope) *schema.Node {
	prefix, name := splitPrefix(st.Argument)
	modName, ok := m.module(prefix)
	if !ok {
		b.logger.Warn("uses with unknown prefix", "module", m.name, "grouping", st.Argument)
		return nil
	}
	if modName == m.name {
		if g := sc.lookup(name); g != nil {
			return g
		}
	} else if other, ok := b.modules[modName]; ok {
		if g := other.top.lookup(name); g != nil {
			return g
		}
	}
	b.logger.Warn("grouping not found", "module", m.name, "grouping", st.Argument)
	return nil
}

func (b *build) typeRef(m *moduleState, st *yang.Statement) *schema.TypeRef {
	prefix, name := splitPrefix(st.Argument)
	ref := &schema.TypeRef{Name: name}
	if prefix == "" && builtinTypes[name] {
		ref.BuiltIn = true
	} else if modName, ok := m.module(prefix); ok {
		ref.Module = modName
	} else {
		b.logger.Warn("type with unknown prefix", "module", m.name, "type", st.Argument)
		ref.Module = prefix
	}

	switch name {
	case "enumeration":
		for _, e := range subs(st, "enum") {
			ref.Enums = append(ref.Enums, schema.EnumValue{Name: e.Argument, Value: intArg(e, "value")})
		}
	case "bits":
		for _, bit := range subs(st, "bit") {
			ref.Bits = append(ref.Bits, schema.BitValue{Name: bit.Argument, Position: intArg(bit, "position")})
		}
	case "union":
		for _, t := range subs(st, "type") {
			ref.Union = append(ref.Union, b.typeRef(m, t))
		}
	case "leafref":
		ref.Path = argOf(st, "path")
	}
	return ref
}

func intArg(st *yang.Statement, keyword string) *int {
	s := argOf(st, keyword)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

func firstSub(st *yang.Statement, keyword string) *yang.Statement {
	for _, s := range st.SubStatements() {
		if s.Keyword == keyword {
			return s
		}
	}
	return nil
}

func splitPrefix(s string) (string, string) {
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return s[:i], s[i+1:]
	}
	return "", s
}
