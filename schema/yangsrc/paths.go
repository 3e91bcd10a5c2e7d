package yangsrc

import (
	"regexp"
	"strings"

	"github.com/alpakka/wools/schema"
)

var predicate = regexp.MustCompile(`\[[^\]]*\]`)

// maxUsesDepth bounds the search through nested groupings.
const maxUsesDepth = 16

func (b *build) applyAugments() {
	for _, a := range b.augments {
		target := b.resolvePath(a.mod, nil, a.stmt.Argument)
		if target == nil {
			b.logger.Warn("augment target not found", "module", a.mod.name, "path", a.stmt.Argument)
			continue
		}

		holder := schema.New(target.Kind, target.Name, a.mod.name)
		b.children(a.mod, holder, a.stmt.SubStatements(), a.mod.top)
		// groupings used by the augment are instantiated in place
		for _, u := range holder.Uses {
			if u == nil {
				// resolveUses already warned
				continue
			}
			holder.Children = append(holder.Children, b.expandUses(a.mod, u, 0)...)
		}
		for _, c := range holder.Children {
			c.Augmented = true
			target.Add(c)
		}
		b.logger.Debug("applied augment", "module", a.mod.name, "target", target.String(), "nodes", len(holder.Children))
	}
}

// expandUses returns copies of the data nodes of grouping g, including the
// ones of groupings g uses, declared by module m.
func (b *build) expandUses(m *moduleState, g *schema.Node, depth int) []*schema.Node {
	if depth > maxUsesDepth {
		b.logger.Warn("grouping nesting too deep inside augment", "module", m.name, "grouping", g.Name)
		return nil
	}
	var out []*schema.Node
	for _, c := range g.Children {
		if c.Kind == schema.KindGrouping || c.Kind == schema.KindTypedef {
			continue
		}
		out = append(out, b.cloneNode(m, c))
	}
	for _, u := range g.Uses {
		if u == nil {
			b.logger.Warn("unresolved uses inside grouping used by augment", "module", m.name, "grouping", g.Name)
			continue
		}
		out = append(out, b.expandUses(m, u, depth+1)...)
	}
	return out
}

// cloneNode deep copies n as a node declared by m. Grouping references stay
// shared.
func (b *build) cloneNode(m *moduleState, n *schema.Node) *schema.Node {
	c := schema.New(n.Kind, n.Name, m.name)
	c.Type = n.Type
	c.Keys = n.Keys
	c.Uses = n.Uses
	if c.Type != nil && c.Type.Name == "leafref" {
		// paths keep the prefixes of the module that declared the grouping
		src := m
		if orig, ok := b.modules[n.OrigModule]; ok {
			src = orig
		}
		b.refs = append(b.refs, pendingRef{mod: src, node: c, path: c.Type.Path})
	}
	for _, child := range n.Children {
		c.Add(b.cloneNode(m, child))
	}
	return c
}

func (b *build) resolveLeafrefs() {
	for _, r := range b.refs {
		target := b.resolvePath(r.mod, r.node, r.path)
		if target == nil || (target.Kind != schema.KindLeaf && target.Kind != schema.KindLeafList) {
			b.logger.Debug("leafref target not resolved", "module", r.mod.name, "node", r.node.String(), "path", r.path)
			continue
		}
		r.node.Target = target
	}
}

// resolvePath walks an absolute or relative schema path. Predicates are
// ignored; paths using functions are not resolved.
func (b *build) resolvePath(m *moduleState, from *schema.Node, path string) *schema.Node {
	path = strings.TrimSpace(predicate.ReplaceAllString(path, ""))
	if path == "" || strings.Contains(path, "(") {
		return nil
	}

	var cur *schema.Node
	segments := strings.Split(path, "/")
	if strings.HasPrefix(path, "/") {
		segments = segments[1:]
		if len(segments) == 0 {
			return nil
		}
		prefix, _ := splitPrefix(segments[0])
		modName, ok := m.module(prefix)
		if !ok {
			return nil
		}
		other, ok := b.modules[modName]
		if !ok {
			return nil
		}
		cur = other.node
	} else {
		cur = from
	}

	for _, seg := range segments {
		if cur == nil {
			return nil
		}
		seg = strings.TrimSpace(seg)
		switch seg {
		case "", ".":
			continue
		case "..":
			cur = dataParent(cur)
			continue
		}
		_, name := splitPrefix(seg)
		cur = dataChild(cur, name, 0)
	}
	return cur
}

func transparent(n *schema.Node) bool {
	return n.Kind == schema.KindChoice || n.Kind == schema.KindCase
}

func dataParent(n *schema.Node) *schema.Node {
	p := n.Parent
	for p != nil && transparent(p) {
		p = p.Parent
	}
	return p
}

// dataChild finds a child by name. Choices and cases match by their own
// name and are also searched through, as are the groupings n uses.
func dataChild(n *schema.Node, name string, depth int) *schema.Node {
	if depth > maxUsesDepth {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name && c.Kind != schema.KindGrouping && c.Kind != schema.KindTypedef {
			return c
		}
	}
	for _, c := range n.Children {
		if transparent(c) {
			if found := dataChild(c, name, depth+1); found != nil {
				return found
			}
		}
	}
	for _, g := range n.Uses {
		if g == nil {
			continue
		}
		if found := dataChild(g, name, depth+1); found != nil {
			return found
		}
	}
	return nil
}
