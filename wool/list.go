package wool

import (
	"fmt"

	"github.com/alpakka/wools/schema"
)

// List is a keyed collection. Its Java type is List<E>, where E is either a
// generated element class or the type of its single reused grouping.
type List struct {
	*Group
	// Element is the generated element class, if one was registered.
	Element *Class
	// ElementType is the Java type of one entry, "" for an untyped list.
	ElementType string
	Keys        []string
}

func newList(b *Builder, n *schema.Node, parent Wrapper) (Wrapper, error) {
	g, err := b.BuildGroup(n, parent)
	if err != nil {
		return nil, err
	}
	l := &List{Group: g}
	for _, k := range n.Keys {
		l.Keys = append(l.Keys, CamelCase(k))
	}
	g.Imports().Add(javaUtilPackage, javaListClass)

	if g.super != nil {
		g.Imports().Merge(g.super.Imports())
	}

	switch {
	case len(n.Children)+len(g.uses) > 0 && g.members.Len() > 0:
		name := b.Names().GenerateName(n, b.module) + ListClassSuffix
		g.Imports().Add(b.PackageOf(n), name)
		elem, err := b.RegisterClass(name, g)
		if err != nil {
			return nil, err
		}
		elem.Keys = l.Keys
		l.Element = elem
		l.ElementType = name
	case g.super != nil:
		l.ElementType = g.super.JavaType()
	}

	if l.ElementType != "" {
		g.javaType = fmt.Sprintf("%s<%s>", javaListClass, l.ElementType)
	} else {
		g.javaType = javaListClass
	}
	return l, nil
}
