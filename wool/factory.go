package wool

import (
	"sort"

	"github.com/alpakka/wools/schema"
)

// Constructor builds the wrapper of one schema node. Returning a nil wrapper
// and a nil error skips the node.
type Constructor func(b *Builder, n *schema.Node, parent Wrapper) (Wrapper, error)

// Factory maps node kinds to constructors.
type Factory struct {
	ctors map[schema.Kind]Constructor
}

// NewFactory creates an empty factory.
func NewFactory() *Factory {
	return &Factory{ctors: make(map[schema.Kind]Constructor)}
}

// DefaultFactory creates a factory with the constructors for every data
// node kind.
func DefaultFactory() *Factory {
	f := NewFactory()
	f.Register(schema.KindContainer, newContainer)
	f.Register(schema.KindList, newList)
	f.Register(schema.KindLeaf, newLeaf)
	f.Register(schema.KindLeafList, newLeafList)
	f.Register(schema.KindGrouping, newGrouping)
	f.Register(schema.KindTypedef, newTypedef)
	f.Register(schema.KindChoice, newChoice)
	f.Register(schema.KindCase, newCase)
	f.Register(schema.KindRPC, newRPC)
	f.Register(schema.KindInput, newIO)
	f.Register(schema.KindOutput, newIO)
	return f
}

// Register sets the constructor for kind, replacing any previous one.
func (f *Factory) Register(kind schema.Kind, ctor Constructor) {
	f.ctors[kind] = ctor
}

func (f *Factory) Lookup(kind schema.Kind) (Constructor, bool) {
	c, ok := f.ctors[kind]
	return c, ok
}

// Kinds lists the registered kinds, sorted.
func (f *Factory) Kinds() []schema.Kind {
	out := make([]schema.Kind, 0, len(f.ctors))
	for k := range f.ctors {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
