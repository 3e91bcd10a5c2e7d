package wool

import (
	"fmt"

	"github.com/alpakka/wools/schema"
)

// Leaf is a single typed value. Type is nil when resolution failed.
type Leaf struct {
	base
	Type TypeDescriptor
}

func newLeaf(b *Builder, n *schema.Node, parent Wrapper) (Wrapper, error) {
	t, err := b.ResolveType(n, b.Names().GenerateName(n, b.module))
	if err != nil {
		return nil, err
	}
	l := &Leaf{base: base{node: n, module: b.module, parent: parent}, Type: t}
	if t != nil {
		l.javaType = t.JavaType()
		l.Imports().Merge(t.Imports())
	}
	return l, nil
}

// LeafList is a list of typed values, declared as List<T>.
type LeafList struct {
	base
	Type TypeDescriptor
}

func newLeafList(b *Builder, n *schema.Node, parent Wrapper) (Wrapper, error) {
	t, err := b.ResolveType(n, b.Names().GenerateName(n, b.module))
	if err != nil {
		return nil, err
	}
	l := &LeafList{base: base{node: n, module: b.module, parent: parent}, Type: t}
	l.Imports().Add(javaUtilPackage, javaListClass)
	if t != nil && t.JavaType() != "" {
		l.javaType = fmt.Sprintf("%s<%s>", javaListClass, t.JavaType())
		l.Imports().Merge(t.Imports())
	} else {
		l.javaType = javaListClass
	}
	return l, nil
}

// ElementType is the Java type of one entry, or "" for an untyped list.
func (l *LeafList) ElementType() string {
	if l.Type == nil {
		return ""
	}
	return l.Type.JavaType()
}

// Typedef is a named type definition. Definitions of a reference type are
// resolvable by name but not emitted; they stand for the type of the
// referenced node.
type Typedef struct {
	base
	Name    string
	Package string
	Type    TypeDescriptor
}

func newTypedef(b *Builder, n *schema.Node, parent Wrapper) (Wrapper, error) {
	name := b.Names().GenerateName(n, b.module)
	t, err := b.ResolveType(n, name)
	if err != nil {
		return nil, err
	}
	d := &Typedef{
		base:    base{node: n, module: b.module, parent: parent},
		Name:    name,
		Package: b.PackageOf(n),
		Type:    t,
	}

	if ref, ok := t.(*SelfRef); ok {
		d.javaType = ref.JavaType()
		d.Imports().Merge(ref.Imports())
		b.module.addTypedefAlias(d)
		return d, nil
	}
	d.javaType = name
	d.Imports().Add(d.Package, name)
	b.module.AddTypedef(d)
	return d, nil
}

// Group classifies the definition for emission: base, enum, union, bits or
// type.
func (d *Typedef) Group() string {
	return emissionGroup(d.Type)
}

// BaseJavaType is the Java type the definition extends.
func (d *Typedef) BaseJavaType() string {
	if d.Type == nil {
		return placeholderType
	}
	return d.Type.JavaType()
}
