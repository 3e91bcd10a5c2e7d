package wool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alpakka/wools/schema"
)

// augmented builds a container declared by module orig that is attached
// into another module's tree.
func augmented(name, orig string, children ...*schema.Node) *schema.Node {
	n := schema.New(schema.KindContainer, name, orig)
	n.Augmented = true
	for _, c := range children {
		c.OrigModule = orig
		n.Add(c)
	}
	return n
}

func TestMergeRelocatesAugmentedClasses(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	top := node(schema.KindContainer, "top", leaf("name", "string"))
	base := mod("base", top)
	addon := mod("addon", node(schema.KindContainer, "settings", leaf("level", "int8")))
	top.Add(augmented("extra", "addon", leaf("flag", "boolean")))

	b := newTestBatch(t, nil, base, addon)
	require.NoError(t, b.WrapAll(ctx))

	_, ok := b.Module("base").Class("TopExtra")
	assert.True(ok, "augmented class is first registered where its node lives")

	records, err := b.Merge(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(MergeRecord{Class: "TopExtra", From: "base", To: "addon", Action: MergeRelocated}, records[0])

	_, ok = b.Module("base").Class("TopExtra")
	assert.False(ok)
	c, ok := b.Module("addon").Class("TopExtra")
	assert.True(ok)
	assert.Equal("addon", c.Package)
	assert.True(c.Augmented)
	assert.Empty(b.Warnings())

	// merging again does nothing
	records, err = b.Merge(ctx)
	assert.NoError(err)
	assert.Empty(records)
}

func TestMergeDropsDuplicates(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	top := node(schema.KindContainer, "top")
	base := mod("base", top)
	top.Add(augmented("extra", "addon", leaf("flag", "boolean")))
	// the declaring module already holds a class of the same name
	addon := mod("addon", node(schema.KindContainer, "top-extra", leaf("other", "string")))

	b := newTestBatch(t, nil, base, addon)
	require.NoError(t, b.WrapAll(ctx))
	records, err := b.Merge(ctx)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(MergeDropped, records[0].Action)
	assert.Equal([]string{"flag", "other"}, records[0].Diff)

	c, ok := b.Module("addon").Class("TopExtra")
	require.True(t, ok)
	assert.Equal([]string{"other"}, c.MemberNames())
	_, ok = b.Module("base").Class("TopExtra")
	assert.False(ok)

	assert.Len(warningsOf(b, ErrMergeConflict), 1)
}

func TestMergeDuplicateWithSameMembers(t *testing.T) {
	ctx := context.Background()

	top := node(schema.KindContainer, "top")
	base := mod("base", top)
	top.Add(augmented("extra", "addon", leaf("flag", "boolean")))
	addon := mod("addon", node(schema.KindContainer, "top-extra", leaf("flag", "boolean")))

	b := newTestBatch(t, nil, base, addon)
	require.NoError(t, b.WrapAll(ctx))
	records, err := b.Merge(ctx)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, MergeDropped, records[0].Action)
	assert.Empty(t, records[0].Diff)
	assert.Empty(t, b.Warnings())
}

func TestMergeRequiresWrappedModules(t *testing.T) {
	ctx := context.Background()

	b := newTestBatch(t, nil, mod("base"), mod("addon"))
	require.NoError(t, b.Wrap(ctx, "base"))

	_, err := b.Merge(ctx)
	assert.ErrorIs(t, err, ErrNotWrapped)
}

func TestMergeOwnerOutsideBatch(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	top := node(schema.KindContainer, "top")
	base := mod("base", top)
	top.Add(augmented("extra", "ghost", leaf("flag", "boolean")))

	b := newTestBatch(t, nil, base)
	require.NoError(t, b.WrapAll(ctx))
	records, err := b.Merge(ctx)
	require.NoError(t, err)

	assert.Empty(records)
	_, ok := b.Module("base").Class("TopExtra")
	assert.True(ok)
	assert.Len(warningsOf(b, ErrMalformedTree), 1)
}

func TestEveryClassHeldOnceAfterMerge(t *testing.T) {
	ctx := context.Background()

	shared := node(schema.KindGrouping, "common", leaf("id", "string"))
	lib := mod("lib", shared)

	a1 := node(schema.KindContainer, "alpha")
	a := mod("app-a", a1)
	a.Imports = []string{"lib"}
	a1.Add(augmented("ext", "app-b", leaf("x", "string")))

	b1 := node(schema.KindContainer, "beta")
	bm := mod("app-b", b1)
	bm.Imports = []string{"lib"}
	b1.Add(uses(node(schema.KindContainer, "wrapped"), shared))
	b1.Add(augmented("ext", "app-a", leaf("y", "string")))

	b := newTestBatch(t, nil, lib, a, bm)
	res, err := b.Run(ctx)
	require.NoError(t, err)

	holders := map[string][]string{}
	for _, m := range res.Modules {
		for _, name := range m.ClassNames() {
			holders[name] = append(holders[name], m.Name)
		}
	}
	for name, mods := range holders {
		assert.Len(t, mods, 1, "class %s held by %v", name, mods)
	}
	for _, m := range res.Modules {
		for _, c := range m.Classes() {
			assert.Equal(t, m.Name, c.Node.OrigModule, c.Name)
		}
	}
}
