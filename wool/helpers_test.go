package wool

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alpakka/wools/schema"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func mod(name string, children ...*schema.Node) *schema.Node {
	m := schema.NewModule(name, name)
	for _, c := range children {
		m.Add(c)
	}
	return m
}

func node(kind schema.Kind, name string, children ...*schema.Node) *schema.Node {
	n := schema.New(kind, name, "")
	for _, c := range children {
		n.Add(c)
	}
	return n
}

// leaf declares a leaf of a built-in type.
func leaf(name, typ string) *schema.Node {
	n := schema.New(schema.KindLeaf, name, "")
	n.Type = &schema.TypeRef{Name: typ, BuiltIn: true}
	return n
}

// typedLeaf declares a leaf of a named type definition.
func typedLeaf(name, typ, typeModule string) *schema.Node {
	n := schema.New(schema.KindLeaf, name, "")
	n.Type = &schema.TypeRef{Name: typ, Module: typeModule}
	return n
}

func typedef(name string, ref *schema.TypeRef) *schema.Node {
	n := schema.New(schema.KindTypedef, name, "")
	n.Type = ref
	return n
}

func enumRef(values ...string) *schema.TypeRef {
	ref := &schema.TypeRef{Name: "enumeration", BuiltIn: true}
	for _, v := range values {
		ref.Enums = append(ref.Enums, schema.EnumValue{Name: v})
	}
	return ref
}

func uses(n *schema.Node, groupings ...*schema.Node) *schema.Node {
	n.Uses = append(n.Uses, groupings...)
	return n
}

func catalogOf(t *testing.T, mods ...*schema.Node) *schema.Catalog {
	t.Helper()
	cat := schema.NewCatalog()
	for _, m := range mods {
		if err := cat.AddModule(m); err != nil {
			t.Fatal(err)
		}
	}
	return cat
}

func testConfig() *Config {
	return &Config{Logger: quietLogger}
}

func newTestBatch(t *testing.T, cfg *Config, mods ...*schema.Node) *Batch {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	b, err := NewBatch(catalogOf(t, mods...), cfg)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// wrapAll wraps every module without merging.
func wrapAll(t *testing.T, mods ...*schema.Node) *Batch {
	t.Helper()
	b := newTestBatch(t, nil, mods...)
	if err := b.WrapAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	return b
}

func memberNames(ms []*Member) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Name)
	}
	return out
}

func warningsOf(b *Batch, kind error) []*Warning {
	var out []*Warning
	for _, w := range b.Warnings() {
		if w.Kind == kind {
			out = append(out, w)
		}
	}
	return out
}
