package wool

import (
	"github.com/alpakka/wools/schema"
)

// Wrapper is the engine's view of one wrapped schema node.
type Wrapper interface {
	Descriptor
	Node() *schema.Node
	// Module is the registry the node was wrapped into.
	Module() *Module
}

type base struct {
	node     *schema.Node
	module   *Module
	parent   Wrapper
	javaType string
	imports  *ImportSet
}

func (w *base) Node() *schema.Node { return w.node }
func (w *base) Module() *Module    { return w.module }
func (w *base) Parent() Wrapper    { return w.parent }
func (w *base) JavaType() string   { return w.javaType }

func (w *base) Imports() *ImportSet {
	if w.imports == nil {
		w.imports = NewImportSet()
	}
	return w.imports
}

// Builder carries the state of one module's wrap pass. Constructors
// registered in a Factory receive it to wrap children, resolve types and
// register classes.
type Builder struct {
	batch  *Batch
	module *Module
}

func (b *Builder) Module() *Module { return b.module }
func (b *Builder) Names() *Names   { return b.batch.names }
func (b *Builder) Config() *Config { return b.batch.cfg }

// Warn reports a fault through the batch policy. A non-nil return means the
// policy wants the batch aborted.
func (b *Builder) Warn(kind error, msg string, attrs ...any) error {
	return b.batch.warn(kind, b.module.Name, msg, attrs...)
}

// PackageOf is the Java package of the module that declared n.
func (b *Builder) PackageOf(n *schema.Node) string {
	mod := n.OrigModule
	if mod == "" {
		mod = n.Module
	}
	return PackageName(mod, b.batch.cfg.Prefix)
}

// Wrap builds (or returns the already built) wrapper for n. A nil wrapper
// with a nil error means the node was skipped after a warning.
func (b *Builder) Wrap(n *schema.Node, parent Wrapper) (Wrapper, error) {
	if n == nil {
		return nil, b.Warn(ErrMalformedTree, "nil schema node")
	}
	if w, ok := b.batch.wrapped[n]; ok {
		return w, nil
	}
	if b.batch.inProgress[n] {
		return nil, b.Warn(ErrMalformedTree, "recursive reference", "node", n.String())
	}
	ctor, ok := b.batch.factory.Lookup(n.Kind)
	if !ok {
		return nil, b.Warn(ErrMalformedTree, "no constructor for node kind", "kind", string(n.Kind), "node", n.String())
	}

	b.batch.inProgress[n] = true
	w, err := ctor(b, n, parent)
	delete(b.batch.inProgress, n)
	if err != nil {
		return nil, err
	}
	if w != nil {
		b.batch.wrapped[n] = w
	}
	return w, nil
}

// RegisterClass creates the class descriptor for g under name and adds it to
// the module registry. The returned class is the new descriptor even when
// the registry kept an earlier one.
func (b *Builder) RegisterClass(name string, g *Group) (*Class, error) {
	c := &Class{
		Name:      name,
		Package:   b.PackageOf(g.node),
		Kind:      g.node.Kind,
		Augmented: g.node.Augmented,
		Node:      g.node,
		group:     g,
	}
	g.class = c
	if _, err := b.module.AddClass(c); err != nil {
		return nil, err
	}
	return c, nil
}

// typedefsFirst orders nodes so that type definitions come before anything
// that might use them; the relative order of the rest is kept.
func typedefsFirst(nodes []*schema.Node) []*schema.Node {
	out := make([]*schema.Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Kind == schema.KindTypedef {
			out = append(out, n)
		}
	}
	for _, n := range nodes {
		if n.Kind != schema.KindTypedef {
			out = append(out, n)
		}
	}
	return out
}
