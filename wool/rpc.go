package wool

import (
	"github.com/alpakka/wools/schema"
)

// RPC is a remote procedure of a module's backend interface.
type RPC struct {
	base
	JavaName string
	Input    *Group
	Output   *Group
}

func newRPC(b *Builder, n *schema.Node, parent Wrapper) (Wrapper, error) {
	r := &RPC{
		base:     base{node: n, module: b.module, parent: parent},
		JavaName: CamelCase(n.Name),
	}
	for _, child := range typedefsFirst(n.Children) {
		w, err := b.Wrap(child, r)
		if err != nil {
			return nil, err
		}
		g, ok := w.(*Group)
		if !ok {
			continue
		}
		switch child.Kind {
		case schema.KindInput:
			r.Input = g
		case schema.KindOutput:
			r.Output = g
		}
	}
	b.module.AddRPC(r)
	return r, nil
}

// newIO wraps rpc input and output statements. They produce no class; the
// procedure signature is built from their members.
func newIO(b *Builder, n *schema.Node, parent Wrapper) (Wrapper, error) {
	g, err := b.BuildGroup(n, parent)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Imports are the imports needed by every input and output member.
func (r *RPC) Imports() *ImportSet {
	out := NewImportSet()
	for _, g := range []*Group{r.Input, r.Output} {
		if g != nil {
			out.Merge(g.ClassImports())
		}
	}
	return out
}

func (r *RPC) InputMembers() []*Member {
	if r.Input == nil {
		return nil
	}
	return r.Input.FullMembers()
}

func (r *RPC) OutputMembers() []*Member {
	if r.Output == nil {
		return nil
	}
	return r.Output.FullMembers()
}
