package wool

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alpakka/wools/schema"
)

func TestListFlattensSeveralGroupings(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	g1 := node(schema.KindGrouping, "named", leaf("id", "string"), leaf("name", "string"))
	g2 := node(schema.KindGrouping, "valued", leaf("id", "uint32"), leaf("value", "decimal64"))
	entry := uses(node(schema.KindList, "entry"), g1, g2)
	entry.Keys = []string{"id"}
	m := mod("sample", g1, g2, entry)

	b := wrapAll(t, m)
	reg := b.Module("sample")

	w := b.wrapped[entry]
	list, ok := w.(*List)
	require.True(ok)
	assert.Nil(list.Super())
	assert.Len(list.Uses(), 2)

	if diff := cmp.Diff([]string{"id", "name", "value"}, list.MemberNames()); diff != "" {
		t.Errorf("flattened members (-want +got):\n%s", diff)
	}
	id, ok := list.Member("id")
	require.True(ok)
	assert.Equal("String", id.JavaType())

	require.NotNil(list.Element)
	assert.Equal("EntryListType", list.Element.Name)
	assert.Equal("List<EntryListType>", list.JavaType())
	assert.Equal([]string{"id"}, list.Keys)
	assert.True(list.Imports().Contains("java.util", "List"))
	assert.True(list.Imports().Contains("sample", "EntryListType"))

	_, ok = reg.Class("EntryListType")
	assert.True(ok)
	assert.Empty(b.Warnings())
}

func TestLocalMembersShadowFlattened(t *testing.T) {
	assert := assert.New(t)

	g1 := node(schema.KindGrouping, "named", leaf("id", "string"), leaf("name", "string"))
	g2 := node(schema.KindGrouping, "valued", leaf("id", "uint32"), leaf("value", "decimal64"))
	box := uses(node(schema.KindContainer, "box", leaf("id", "boolean")), g1, g2)
	m := mod("sample", g1, g2, box)

	b := wrapAll(t, m)
	c := b.wrapped[box].(*Container)

	assert.Equal([]string{"id", "name", "value"}, c.MemberNames())
	id, _ := c.Member("id")
	assert.Equal("boolean", id.JavaType())
	value, _ := c.Member("value")
	assert.Equal("double", value.JavaType())
	assert.False(c.Delegates())
}

func TestFlatteningKeepsEveryUniqueMember(t *testing.T) {
	g1 := node(schema.KindGrouping, "first", leaf("a", "string"), leaf("shared", "string"))
	g2 := node(schema.KindGrouping, "second", leaf("b", "string"), leaf("shared", "int8"))
	g3 := node(schema.KindGrouping, "third", leaf("c", "string"), leaf("a", "boolean"))
	box := uses(node(schema.KindContainer, "box", leaf("local", "string")), g1, g2, g3)
	m := mod("sample", g1, g2, g3, box)

	b := wrapAll(t, m)
	c := b.wrapped[box].(*Container)

	want := []string{"local", "a", "shared", "b", "c"}
	if diff := cmp.Diff(want, c.MemberNames()); diff != "" {
		t.Errorf("members (-want +got):\n%s", diff)
	}
	a, _ := c.Member("a")
	assert.Equal(t, "String", a.JavaType())
}

func TestSingleUseContainerDelegates(t *testing.T) {
	assert := assert.New(t)

	g := node(schema.KindGrouping, "address", leaf("ip", "string"))
	box := uses(node(schema.KindContainer, "box"), g)
	m := mod("sample", g, box)

	b := wrapAll(t, m)
	reg := b.Module("sample")
	c := b.wrapped[box].(*Container)
	grouping := b.wrapped[g].(*Grouping)

	assert.True(c.Delegates())
	assert.Same(grouping, c.Delegate)
	assert.Equal("Address", c.JavaType())
	assert.Same(grouping.Imports(), c.Imports())
	assert.Equal([]string{"Address"}, reg.ClassNames())
	assert.Nil(c.Class())
}

func TestSingleUseBecomesSuper(t *testing.T) {
	assert := assert.New(t)

	base := node(schema.KindGrouping, "base", leaf("a", "string"))
	mid := uses(node(schema.KindGrouping, "mid", leaf("b", "int32")), base)
	box := uses(node(schema.KindContainer, "box", leaf("c", "boolean")), mid)
	m := mod("sample", base, mid, box)

	b := wrapAll(t, m)
	c := b.wrapped[box].(*Container)

	assert.Equal("Mid", c.Super().JavaType())
	assert.Equal([]string{"c"}, c.MemberNames())
	assert.Equal([]string{"a", "b"}, memberNames(c.InheritedMembers()))
	assert.Equal([]string{"a", "b", "c"}, memberNames(c.FullMembers()))

	cls := c.Class()
	if assert.NotNil(cls) {
		assert.Equal("Box", cls.Name)
		assert.Equal("Mid", cls.SuperName())
		assert.Contains(cls.Imports(), "sample.Mid")
		assert.NotContains(cls.Imports(), "sample.Box")
	}
}

func TestChoiceCasesBecomeMembers(t *testing.T) {
	assert := assert.New(t)

	choice := node(schema.KindChoice, "transport",
		node(schema.KindCase, "tcp", leaf("port", "uint16")),
		node(schema.KindCase, "udp", leaf("port", "uint16")),
	)
	box := node(schema.KindContainer, "box", leaf("name", "string"), choice)
	m := mod("sample", box)

	b := wrapAll(t, m)
	reg := b.Module("sample")
	c := b.wrapped[box].(*Container)

	assert.Equal([]string{"name", "tcp", "udp"}, c.MemberNames())
	tcp, _ := c.Member("tcp")
	assert.Equal("TcpCaseType", tcp.JavaType())
	assert.ElementsMatch([]string{"TcpCaseType", "UdpCaseType", "Box"}, reg.ClassNames())

	ch := b.wrapped[choice].(*Choice)
	assert.Len(ch.Cases(), 2)
}

func TestContainerFallbackAdmitsStructuralChildren(t *testing.T) {
	assert := assert.New(t)

	inner := node(schema.KindGrouping, "inner-part", leaf("x", "string"))
	box := node(schema.KindContainer, "box", inner, typedef("percent", &schema.TypeRef{Name: "uint8", BuiltIn: true}))
	m := mod("sample", box)

	b := wrapAll(t, m)
	c := b.wrapped[box].(*Container)

	assert.Equal([]string{"innerPart"}, c.MemberNames())
	_, ok := b.Module("sample").Class("Box")
	assert.True(ok)
}

func TestListElementTypes(t *testing.T) {
	assert := assert.New(t)

	g := node(schema.KindGrouping, "item", leaf("id", "string"))
	bare := node(schema.KindList, "bare")
	single := uses(node(schema.KindList, "single"), g)
	extended := uses(node(schema.KindList, "extended", leaf("extra", "string")), g)
	m := mod("sample", g, bare, single, extended)

	b := wrapAll(t, m)
	reg := b.Module("sample")

	l := b.wrapped[bare].(*List)
	assert.Equal("List", l.JavaType())
	assert.Nil(l.Element)

	l = b.wrapped[single].(*List)
	assert.Equal("List<Item>", l.JavaType())
	assert.Equal("Item", l.ElementType)
	assert.True(l.Imports().Contains("sample", "Item"))

	l = b.wrapped[extended].(*List)
	assert.Equal("List<ExtendedListType>", l.JavaType())
	assert.Equal("Item", l.Element.SuperName())

	assert.Equal([]string{"Item", "ExtendedListType"}, reg.ClassNames())
}

func TestClassImportsIncludeImmutableList(t *testing.T) {
	assert := assert.New(t)

	box := node(schema.KindContainer, "box",
		leaf("name", "string"),
		node(schema.KindLeafList, "tags"),
	)
	box.Children[1].Type = &schema.TypeRef{Name: "string", BuiltIn: true}
	m := mod("sample", box)

	b := wrapAll(t, m)
	cls, ok := b.Module("sample").Class("Box")
	if !assert.True(ok) {
		return
	}
	tags, _ := cls.Group().Member("tags")
	assert.True(tags.Collection)
	assert.Equal("List<String>", tags.JavaType())
	assert.Equal([]string{
		"com.google.common.collect.ImmutableList",
		"java.util.List",
	}, cls.Imports())
}
