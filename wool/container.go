package wool

import (
	"github.com/alpakka/wools/schema"
)

// fallbackKinds are the child kinds admitted as members when a container has
// children but no members were computed.
var fallbackKinds = map[schema.Kind]bool{
	schema.KindContainer: true,
	schema.KindGrouping:  true,
	schema.KindList:      true,
	schema.KindLeafList:  true,
}

// Container is a structural node. It becomes a class unless it only wraps a
// single grouping, in which case it stands for that grouping.
type Container struct {
	*Group
	// Delegate is the grouping this container stands for, if any.
	Delegate *Grouping
}

func newContainer(b *Builder, n *schema.Node, parent Wrapper) (Wrapper, error) {
	g, err := b.BuildGroup(n, parent)
	if err != nil {
		return nil, err
	}
	c := &Container{Group: g}

	if len(g.uses) == 1 && g.members.Len() == 0 {
		c.Delegate = g.uses[0]
		g.javaType = c.Delegate.JavaType()
		g.imports = c.Delegate.Imports()
		return c, nil
	}

	if len(n.Children) > 0 && g.members.Len() == 0 {
		for _, w := range g.children {
			if !fallbackKinds[w.Node().Kind] {
				continue
			}
			name := CamelCase(w.Node().Name)
			g.members.Set(name, memberFor(name, w))
		}
	}

	name := b.Names().GenerateName(n, b.module)
	g.javaType = name
	g.Imports().Add(b.PackageOf(n), name)
	if _, err := b.RegisterClass(name, g); err != nil {
		return nil, err
	}
	return c, nil
}

// Delegates reports whether the container introduced no class of its own.
func (c *Container) Delegates() bool {
	return c.Delegate != nil
}
