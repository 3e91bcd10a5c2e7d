package wool

import (
	"sort"

	"github.com/alpakka/wools/schema"
)

// Member is one field of a class.
type Member struct {
	Name string
	Node *schema.Node
	// Type is nil when the member's type could not be resolved.
	Type       Descriptor
	Collection bool
}

// JavaType is the member's declared type, or "" when unresolved.
func (m *Member) JavaType() string {
	if m.Type == nil {
		return ""
	}
	return m.Type.JavaType()
}

// Group is a wrapped node that owns members: containers, lists, groupings,
// cases, choices, rpc input and output.
type Group struct {
	base
	children []Wrapper
	members  *orderedMap[*Member]
	uses     []*Grouping
	super    *Grouping
	class    *Class
}

// BuildGroup wraps n's children and reused groupings and computes its member
// list.
//
// With no groupings every data child is a member. With exactly one grouping
// that grouping becomes the super type and only local children are members.
// With several groupings their full member views are copied in after the
// local members, in declaration order; the first entry for a name wins.
func (b *Builder) BuildGroup(n *schema.Node, parent Wrapper) (*Group, error) {
	g := &Group{
		base:    base{node: n, module: b.module, parent: parent},
		members: newOrderedMap[*Member](),
	}

	wrapped := make(map[*schema.Node]Wrapper, len(n.Children))
	for _, child := range typedefsFirst(n.Children) {
		w, err := b.Wrap(child, g)
		if err != nil {
			return nil, err
		}
		if w != nil {
			wrapped[child] = w
		}
	}
	for _, child := range n.Children {
		if w, ok := wrapped[child]; ok {
			g.children = append(g.children, w)
		}
	}

	for _, u := range n.Uses {
		if u == nil {
			if err := b.Warn(ErrMalformedTree, "absent reuse target", "node", n.String()); err != nil {
				return nil, err
			}
			continue
		}
		w, err := b.Wrap(u, nil)
		if err != nil {
			return nil, err
		}
		if w == nil {
			continue
		}
		gr, ok := w.(*Grouping)
		if !ok {
			if err := b.Warn(ErrMalformedTree, "reuse target is not a grouping", "node", n.String(), "target", u.String()); err != nil {
				return nil, err
			}
			continue
		}
		g.uses = append(g.uses, gr)
	}

	for _, w := range g.children {
		g.addLocal(w)
	}

	switch len(g.uses) {
	case 0:
	case 1:
		g.super = g.uses[0]
	default:
		for _, u := range g.uses {
			for _, m := range u.FullMembers() {
				g.members.SetIfAbsent(m.Name, m)
			}
		}
	}
	return g, nil
}

func memberFor(name string, w Wrapper) *Member {
	m := &Member{Name: name, Node: w.Node(), Type: w}
	switch t := w.(type) {
	case *Leaf:
		if t.Type == nil {
			m.Type = nil
		}
	case *LeafList:
		m.Collection = true
	case *List:
		m.Collection = true
	}
	return m
}

func (g *Group) addLocal(w Wrapper) {
	switch w.Node().Kind {
	case schema.KindLeaf, schema.KindLeafList, schema.KindContainer, schema.KindList:
		g.members.Set(MemberName(w.Node().Name), memberFor(MemberName(w.Node().Name), w))
	case schema.KindChoice:
		ch, ok := w.(*Choice)
		if !ok {
			return
		}
		for _, c := range ch.children {
			if c.Node().Kind != schema.KindCase {
				continue
			}
			name := MemberName(c.Node().Name)
			g.members.Set(name, memberFor(name, c))
		}
	}
}

// Children are the wrapped direct children in declaration order.
func (g *Group) Children() []Wrapper {
	return g.children
}

// Uses are the reused groupings in declaration order.
func (g *Group) Uses() []*Grouping {
	return g.uses
}

// Super is the single reused grouping, or nil.
func (g *Group) Super() *Grouping {
	return g.super
}

// Class is the descriptor registered for this group, if any.
func (g *Group) Class() *Class {
	return g.class
}

// Members are the members this group declares itself, including the ones
// copied in by flattening.
func (g *Group) Members() []*Member {
	return g.members.Values()
}

func (g *Group) Member(name string) (*Member, bool) {
	return g.members.Get(name)
}

func (g *Group) MemberNames() []string {
	return g.members.Keys()
}

// InheritedMembers walks the super chain: the super's inherited members
// followed by the super's own members.
func (g *Group) InheritedMembers() []*Member {
	if g.super == nil {
		return nil
	}
	out := newOrderedMap[*Member]()
	for _, m := range g.super.InheritedMembers() {
		out.Set(m.Name, m)
	}
	for _, m := range g.super.Members() {
		out.Set(m.Name, m)
	}
	return out.Values()
}

// FullMembers is InheritedMembers followed by Members, one entry per name.
func (g *Group) FullMembers() []*Member {
	out := newOrderedMap[*Member]()
	for _, m := range g.InheritedMembers() {
		out.SetIfAbsent(m.Name, m)
	}
	for _, m := range g.Members() {
		out.SetIfAbsent(m.Name, m)
	}
	return out.Values()
}

// ClassImports collects what a class generated from g has to import.
func (g *Group) ClassImports() *ImportSet {
	out := NewImportSet()
	hasList := false
	for _, m := range g.FullMembers() {
		if m.Type != nil {
			out.Merge(m.Type.Imports())
		}
		if m.Collection {
			hasList = true
		}
	}
	if g.super != nil {
		out.Merge(g.super.Imports())
	}
	if hasList {
		out.Add(immutableListPkg, immutableListType)
	}
	return out
}

// Class is the descriptor of one generated Java class.
type Class struct {
	Name      string
	Package   string
	Kind      schema.Kind
	Augmented bool
	Node      *schema.Node
	// Keys are the member names of the list key, for list element classes.
	Keys      []string
	group     *Group
}

func (c *Class) Group() *Group {
	return c.group
}

func (c *Class) Members() []*Member {
	return c.group.Members()
}

func (c *Class) InheritedMembers() []*Member {
	return c.group.InheritedMembers()
}

func (c *Class) MemberNames() []string {
	return c.group.MemberNames()
}

// SuperName is the class name of the single super type, or "".
func (c *Class) SuperName() string {
	if c.group.super == nil {
		return ""
	}
	return c.group.super.JavaType()
}

// Imports returns the flattened import strings of the class, leaving out the
// class itself.
func (c *Class) Imports() []string {
	set := c.group.ClassImports()
	var out []string
	self := c.Package + "." + c.Name
	for _, imp := range set.Strings() {
		if imp != self {
			out = append(out, imp)
		}
	}
	return out
}

// memberDiff is the symmetric difference of the member names of a and b.
func memberDiff(a, b *Class) []string {
	left := make(map[string]bool)
	for _, n := range a.MemberNames() {
		left[n] = true
	}
	right := make(map[string]bool)
	for _, n := range b.MemberNames() {
		right[n] = true
	}
	var diff []string
	for n := range left {
		if !right[n] {
			diff = append(diff, n)
		}
	}
	for n := range right {
		if !left[n] {
			diff = append(diff, n)
		}
	}
	sort.Strings(diff)
	return diff
}
