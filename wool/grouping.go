package wool

import (
	"github.com/alpakka/wools/schema"
)

// Grouping is a reusable member bundle. Every grouping becomes a class so
// that a single reuse can be expressed as inheritance.
type Grouping struct {
	*Group
}

func newGrouping(b *Builder, n *schema.Node, parent Wrapper) (Wrapper, error) {
	g, err := b.BuildGroup(n, parent)
	if err != nil {
		return nil, err
	}
	name := b.Names().GenerateName(n, b.module)
	g.javaType = name
	g.Imports().Add(b.PackageOf(n), name)
	if _, err := b.RegisterClass(name, g); err != nil {
		return nil, err
	}
	return &Grouping{Group: g}, nil
}

// Case is one branch of a choice. It becomes a class named with
// CaseClassSuffix.
type Case struct {
	*Group
}

func newCase(b *Builder, n *schema.Node, parent Wrapper) (Wrapper, error) {
	g, err := b.BuildGroup(n, parent)
	if err != nil {
		return nil, err
	}
	name := b.Names().GenerateName(n, b.module) + CaseClassSuffix
	g.javaType = name
	g.Imports().Add(b.PackageOf(n), name)
	if _, err := b.RegisterClass(name, g); err != nil {
		return nil, err
	}
	return &Case{Group: g}, nil
}

// Choice produces no class; its cases become members of the enclosing group.
type Choice struct {
	*Group
}

func newChoice(b *Builder, n *schema.Node, parent Wrapper) (Wrapper, error) {
	g, err := b.BuildGroup(n, parent)
	if err != nil {
		return nil, err
	}
	return &Choice{Group: g}, nil
}

// Cases are the wrapped case branches in declaration order.
func (c *Choice) Cases() []*Case {
	var out []*Case
	for _, w := range c.children {
		if cs, ok := w.(*Case); ok {
			out = append(out, cs)
		}
	}
	return out
}
