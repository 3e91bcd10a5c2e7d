package wool

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alpakka/wools/schema"
)

func TestResolveBaseTypes(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		yang  string
		java  string
		boxed string
	}{
		{"int32", "int", "Integer"},
		{"uint8", "int", "Integer"},
		{"int", "int", "Integer"},
		{"string", "String", ""},
		{"boolean", "boolean", "Boolean"},
		{"decimal64", "double", "Double"},
		{"binary", "byte[]", ""},
		{"empty", "Object", ""},
	}

	var leaves []*schema.Node
	for _, tc := range tests {
		leaves = append(leaves, leaf("v-"+tc.yang, tc.yang))
	}
	b := wrapAll(t, mod("sample", node(schema.KindContainer, "box", leaves...)))

	for i, tc := range tests {
		l := b.wrapped[leaves[i]].(*Leaf)
		bt, ok := l.Type.(*BaseType)
		if !assert.True(ok, tc.yang) {
			continue
		}
		assert.Equal(tc.java, bt.JavaType(), tc.yang)
		assert.Equal(tc.boxed, bt.Boxed, tc.yang)
		assert.Equal(VariantBase, bt.Variant())
	}
	assert.Empty(b.Warnings())
}

func TestResolveUnmatchedBuiltIn(t *testing.T) {
	assert := assert.New(t)

	ident := leaf("kind", "identityref")
	box := node(schema.KindContainer, "box", ident)
	b := wrapAll(t, mod("sample", box))

	l := b.wrapped[ident].(*Leaf)
	assert.Nil(l.Type)
	assert.Len(warningsOf(b, ErrUnresolvedType), 1)

	// the member survives with no type
	m, ok := b.wrapped[box].(*Container).Member("kind")
	require.True(t, ok)
	assert.Nil(m.Type)
	assert.Equal("", m.JavaType())
}

func TestResolveCustomTypePattern(t *testing.T) {
	assert := assert.New(t)

	ip := leaf("ip", "inet-address")
	cfg := testConfig()
	cfg.TypePatterns = append(DefaultTypePatterns(), TypePattern{Pattern: `inet-.*`, Java: "InetAddress"})
	b := newTestBatch(t, cfg, mod("sample", node(schema.KindContainer, "box", ip)))
	require.NoError(t, b.WrapAll(t.Context()))

	assert.Equal("InetAddress", b.wrapped[ip].JavaType())
}

func TestResolveInlineEnum(t *testing.T) {
	assert := assert.New(t)

	status := leaf("admin-status", "")
	status.Type = enumRef("up", "down", "1st-choice")
	b := wrapAll(t, mod("sample", node(schema.KindContainer, "box", status)))

	l := b.wrapped[status].(*Leaf)
	e, ok := l.Type.(*EnumType)
	require.True(t, ok)
	assert.Equal("AdminStatus", e.JavaType())
	assert.Equal("sample", e.Package)
	assert.Equal([]string{"UP", "DOWN", "_1ST_CHOICE"}, []string{e.Values[0].Constant, e.Values[1].Constant, e.Values[2].Constant})
	assert.True(e.HasConstants())
	assert.True(l.Imports().Contains("sample", "AdminStatus"))

	enums := b.Module("sample").Enums()
	require.Len(t, enums, 1)
	assert.Same(e, enums[0])
}

func TestResolveTypedefs(t *testing.T) {
	assert := assert.New(t)

	state := typedef("oper-state", enumRef("UP", "DOWN"))
	percent := typedef("percent", &schema.TypeRef{Name: "uint8", BuiltIn: true})
	ratio := typedef("ratio", &schema.TypeRef{Name: "percent"})
	// used before it is declared
	use := typedLeaf("state", "sample:oper-state", "")
	box := node(schema.KindContainer, "box", use, typedLeaf("load", "ratio", ""))
	b := wrapAll(t, mod("sample", box, state, percent, ratio))
	reg := b.Module("sample")

	l := b.wrapped[use].(*Leaf)
	ref, ok := l.Type.(*TypeDefRef)
	require.True(t, ok)
	assert.Equal("OperState", ref.JavaType())
	assert.True(ref.Imports().Contains("sample", "OperState"))
	assert.Equal(VariantTypeDef, ref.Variant())

	assert.Len(reg.Typedefs(), 3)
	require.Len(t, reg.Enums(), 1)
	assert.Equal("OperState", reg.Enums()[0].Name)
	require.Len(t, reg.BaseExtensions(), 1)
	assert.Equal("Percent", reg.BaseExtensions()[0].Name)
	assert.Equal("int", reg.BaseExtensions()[0].BaseJavaType())
	require.Len(t, reg.TypeExtensions(), 1)
	assert.Equal("Ratio", reg.TypeExtensions()[0].Name)
	assert.Equal("Percent", reg.TypeExtensions()[0].BaseJavaType())
	assert.Empty(b.Warnings())
}

func TestResolveTypedefNotRegisteredYet(t *testing.T) {
	assert := assert.New(t)

	use := typedLeaf("later", "other-mod:future", "other-mod")
	a := mod("first", node(schema.KindContainer, "box", use))
	other := mod("other-mod", typedef("future", &schema.TypeRef{Name: "string", BuiltIn: true}))

	b := wrapAll(t, a, other)

	assert.Nil(b.wrapped[use].(*Leaf).Type)
	ws := warningsOf(b, ErrUnresolvedType)
	require.Len(t, ws, 1)
	assert.Equal("first", ws[0].Module)
	assert.True(errors.Is(ws[0], ErrUnresolvedType))
}

func TestResolveImportedTypedef(t *testing.T) {
	use := typedLeaf("addr", "t:address", "types")
	a := mod("first", node(schema.KindContainer, "box", use))
	a.Imports = []string{"types"}
	types := mod("types", typedef("address", &schema.TypeRef{Name: "string", BuiltIn: true}))

	b := wrapAll(t, a, types)

	l := b.wrapped[use].(*Leaf)
	assert.Equal(t, "Address", l.JavaType())
	assert.True(t, l.Imports().Contains("types", "Address"))
	assert.Empty(t, b.Warnings())
}

func TestResolveLeafref(t *testing.T) {
	assert := assert.New(t)

	name := leaf("name", "string")
	ref := leaf("ref", "leafref")
	ref.Type.Path = "../name"
	ref.Target = name
	dangling := leaf("dangling", "leafref")
	dangling.Type.Path = "/nowhere"
	b := wrapAll(t, mod("sample", node(schema.KindContainer, "box", ref, name, dangling)))

	sr, ok := b.wrapped[ref].(*Leaf).Type.(*SelfRef)
	require.True(t, ok)
	assert.False(sr.Unresolved())
	assert.Equal("String", sr.JavaType())
	assert.Equal(VariantBase, sr.Target.Variant())

	sr, ok = b.wrapped[dangling].(*Leaf).Type.(*SelfRef)
	require.True(t, ok)
	assert.True(sr.Unresolved())
	assert.Equal("Object", sr.JavaType())
	assert.Equal("/nowhere", sr.Path)
	assert.Len(warningsOf(b, ErrUnresolvedType), 1)
}

func TestResolveLeafrefTypedefIsNotRegistered(t *testing.T) {
	assert := assert.New(t)

	target := leaf("id", "uint32")
	td := typedef("id-ref", &schema.TypeRef{Name: "leafref", BuiltIn: true, Path: "/box/id"})
	td.Target = target
	b := wrapAll(t, mod("sample", td, node(schema.KindContainer, "box", target)))

	d := b.wrapped[td].(*Typedef)
	assert.Equal("int", d.JavaType())
	assert.Empty(b.Module("sample").Typedefs())
}

func TestResolveBitsAndUnions(t *testing.T) {
	assert := assert.New(t)

	pos := 3
	flags := typedef("flags", &schema.TypeRef{Name: "bits", BuiltIn: true, Bits: []schema.BitValue{
		{Name: "read-only"},
		{Name: "v1.2", Position: &pos},
	}})
	either := typedef("either", &schema.TypeRef{Name: "union", BuiltIn: true, Union: []*schema.TypeRef{
		{Name: "string", BuiltIn: true},
		{Name: "int32", BuiltIn: true},
	}})
	inline := leaf("mixed", "union")
	b := wrapAll(t, mod("sample", flags, either, node(schema.KindContainer, "box", inline)))
	reg := b.Module("sample")

	bits := reg.Bits()
	require.Len(t, bits, 1)
	assert.Equal("Flags", bits[0].Name)
	assert.Equal("read_only", bits[0].Bits[0].Constant)
	assert.Equal(&pos, bits[0].Bits[1].Position)

	unions := reg.Unions()
	require.Len(t, unions, 1)
	u := unions[0].Type.(*UnionType)
	assert.Equal("Either", u.JavaType())
	assert.Empty(u.Members)

	assert.Equal("Object", b.wrapped[inline].JavaType())
	assert.Empty(b.Warnings())
}

func TestResolveLeafrefTypedefByName(t *testing.T) {
	assert := assert.New(t)

	target := leaf("id", "uint32")
	td := typedef("id-ref", &schema.TypeRef{Name: "leafref", BuiltIn: true, Path: "/box/id"})
	td.Target = target
	owner := typedLeaf("owner", "id-ref", "")
	b := wrapAll(t, mod("sample",
		td,
		node(schema.KindContainer, "box", target),
		node(schema.KindContainer, "other", owner),
	))

	ref, ok := b.wrapped[owner].(*Leaf).Type.(*TypeDefRef)
	require.True(t, ok)
	assert.Equal("int", ref.JavaType())
	assert.Equal("int", b.wrapped[owner].JavaType())
	assert.Empty(b.Module("sample").Typedefs())
	assert.Empty(b.Warnings())
}

func TestResolveInlineEnumNameClash(t *testing.T) {
	assert := assert.New(t)

	first := leaf("status", "")
	first.Type = enumRef("up", "down")
	second := leaf("status", "")
	second.Type = enumRef("red", "green", "blue")
	same := leaf("status", "")
	same.Type = enumRef("up", "down")
	b := wrapAll(t, mod("sample",
		node(schema.KindContainer, "a", first),
		node(schema.KindContainer, "b", second),
		node(schema.KindContainer, "c", same),
		node(schema.KindContainer, "status", leaf("note", "string")),
	))
	reg := b.Module("sample")

	assert.Equal("Status", b.wrapped[first].JavaType())
	assert.Equal("BStatus", b.wrapped[second].JavaType())
	// identical values share the enumeration
	assert.Same(b.wrapped[first].(*Leaf).Type, b.wrapped[same].(*Leaf).Type)

	var names []string
	for _, e := range reg.Enums() {
		names = append(names, e.Name)
	}
	assert.Equal([]string{"Status", "BStatus"}, names)
	assert.Equal([]string{"A", "B", "C", "StatusTop"}, reg.ClassNames())
	assert.Empty(b.Warnings())
}

func TestResolveInlineEnumCollisionWarns(t *testing.T) {
	first := leaf("status", "")
	first.Type = enumRef("up", "down")
	root := leaf("status", "")
	root.Type = enumRef("on")

	// a root leaf has no ancestor path to fall back to
	b := wrapAll(t, mod("sample",
		node(schema.KindContainer, "a", first),
		root,
	))
	assert.Equal(t, "Status", b.wrapped[root].JavaType())
	assert.Len(t, warningsOf(b, ErrNameCollision), 1)
}

func TestResolveInlineBitsNameClash(t *testing.T) {
	assert := assert.New(t)

	one := leaf("flags", "bits")
	one.Type.Bits = []schema.BitValue{{Name: "up"}}
	two := leaf("flags", "bits")
	two.Type.Bits = []schema.BitValue{{Name: "down"}}
	b := wrapAll(t, mod("sample",
		node(schema.KindContainer, "a", one),
		node(schema.KindContainer, "b", two),
	))

	assert.Equal("Flags", b.wrapped[one].JavaType())
	assert.Equal("BFlags", b.wrapped[two].JavaType())
	assert.Len(b.Module("sample").Bits(), 2)
}
