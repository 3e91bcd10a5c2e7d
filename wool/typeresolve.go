package wool

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alpakka/wools/schema"
)

// maxRefDepth bounds chains of leafrefs pointing at leafrefs.
const maxRefDepth = 32

// TypePattern maps schema built-in type names matching Pattern to a Java type.
type TypePattern struct {
	Pattern string `toml:"pattern"`
	Java    string `toml:"java"`
}

// DefaultTypePatterns are the built-in mappings used when the configuration
// sets none.
func DefaultTypePatterns() []TypePattern {
	return []TypePattern{
		{Pattern: `u?int\d*`, Java: "int"},
		{Pattern: `string`, Java: "String"},
		{Pattern: `boolean`, Java: "boolean"},
		{Pattern: `decimal64`, Java: "double"},
		{Pattern: `binary`, Java: "byte[]"},
		{Pattern: `empty`, Java: "Object"},
	}
}

type compiledPattern struct {
	re   *regexp.Regexp
	java string
}

func compilePatterns(patterns []TypePattern) ([]compiledPattern, error) {
	out := make([]compiledPattern, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(`^(?:` + p.Pattern + `)$`)
		if err != nil {
			return nil, fmt.Errorf("compiling type pattern %q: %w", p.Pattern, err)
		}
		out = append(out, compiledPattern{re: re, java: p.Java})
	}
	return out, nil
}

func (b *Builder) baseType(name string) (*BaseType, bool) {
	for _, p := range b.batch.patterns {
		if p.re.MatchString(name) {
			return &BaseType{Name: p.java, Boxed: BoxedType(p.java)}, true
		}
	}
	return nil, false
}

// ResolveType maps the declared type of owner to a descriptor. Generated
// types (enumerations, bits, unions) are named className; enumerations and
// bits declared on a leaf fall back to their ancestor path name when
// className already holds different values. A nil descriptor
// with a nil error means the type did not resolve and a warning was
// reported.
func (b *Builder) ResolveType(owner *schema.Node, className string) (TypeDescriptor, error) {
	return b.resolveType(owner, className, 0)
}

func (b *Builder) resolveType(owner *schema.Node, className string, depth int) (TypeDescriptor, error) {
	ref := owner.Type
	if ref == nil {
		return nil, b.Warn(ErrUnresolvedType, "node declares no type", "node", owner.String())
	}

	switch ref.Name {
	case "enumeration":
		t, err := b.enumType(owner, className)
		if err != nil {
			return nil, err
		}
		return t, nil
	case "bits":
		t, err := b.bitsType(owner, className)
		if err != nil {
			return nil, err
		}
		return t, nil
	case "union":
		return b.unionType(owner, className), nil
	case "leafref":
		return b.selfRef(owner, depth)
	}

	if ref.BuiltIn {
		if t, ok := b.baseType(ref.Name); ok {
			return t, nil
		}
		return nil, b.Warn(ErrUnresolvedType, "no type pattern matches built-in type", "type", ref.Name, "node", owner.String())
	}

	name := ref.Name
	if i := strings.IndexByte(name, ':'); i >= 0 {
		name = name[i+1:]
	}
	modName := ref.Module
	if modName == "" {
		modName = owner.OrigModule
	}
	if modName == "" {
		modName = owner.Module
	}
	mod, ok := b.batch.modules.Get(modName)
	if !ok {
		return nil, b.Warn(ErrUnresolvedType, "type definition in unknown module", "type", ref.Name, "typeModule", modName, "node", owner.String())
	}
	def, ok := mod.TypedefByName(name)
	if !ok {
		return nil, b.Warn(ErrUnresolvedType, "type definition not registered yet", "type", ref.Name, "typeModule", modName, "node", owner.String())
	}
	return &TypeDefRef{Def: def}, nil
}

// inlineAltName is the fallback name of an enumeration or bits type
// declared on owner: the class names of its ancestors and its own.
func (b *Builder) inlineAltName(owner *schema.Node) string {
	alt := b.Names().augmentKey(owner)
	if b.module.takenByOtherKind(alt, owner.Kind) {
		alt += CollisionSuffix
	}
	return alt
}

func (b *Builder) enumType(owner *schema.Node, className string) (*EnumType, error) {
	t := &EnumType{
		Name:    className,
		Package: b.PackageOf(owner),
		imports: NewImportSet(),
		owner:   owner,
	}
	for _, e := range owner.Type.Enums {
		t.Values = append(t.Values, EnumValue{
			Name:     e.Name,
			Constant: EnumConstant(e.Name),
			Value:    e.Value,
		})
	}
	if owner.Kind != schema.KindTypedef {
		stored, err := b.module.AddEnum(t, b.inlineAltName(owner))
		if err != nil {
			return nil, err
		}
		if stored != t {
			return stored, nil
		}
	}
	t.imports.Add(t.Package, t.Name)
	return t, nil
}

func (b *Builder) bitsType(owner *schema.Node, className string) (*BitsType, error) {
	t := &BitsType{
		Name:    className,
		Package: b.PackageOf(owner),
		imports: NewImportSet(),
		owner:   owner,
	}
	for _, bit := range owner.Type.Bits {
		t.Bits = append(t.Bits, Bit{
			Name:     bit.Name,
			Constant: BitName(bit.Name),
			Position: bit.Position,
		})
	}
	if owner.Kind != schema.KindTypedef {
		stored, err := b.module.AddBits(t, b.inlineAltName(owner))
		if err != nil {
			return nil, err
		}
		if stored != t {
			return stored, nil
		}
	}
	t.imports.Add(t.Package, t.Name)
	return t, nil
}

// unionType does not resolve the member types. A union declared directly on
// a leaf has no class of its own and is typed as a plain object.
func (b *Builder) unionType(owner *schema.Node, className string) *UnionType {
	t := &UnionType{Name: className, imports: NewImportSet()}
	if owner.Kind != schema.KindTypedef {
		t.Name = placeholderType
	}
	return t
}

func (b *Builder) selfRef(owner *schema.Node, depth int) (TypeDescriptor, error) {
	ref := &SelfRef{Path: owner.Type.Path}
	target := owner.Target
	if target == nil {
		return ref, b.Warn(ErrUnresolvedType, "reference target not found", "path", ref.Path, "node", owner.String())
	}
	if depth >= maxRefDepth {
		return ref, b.Warn(ErrUnresolvedType, "reference chain too deep", "path", ref.Path, "node", owner.String())
	}

	// reuse the target's descriptor when it was already wrapped
	if w, ok := b.batch.wrapped[target]; ok {
		switch t := w.(type) {
		case *Leaf:
			ref.Target = t.Type
		case *LeafList:
			ref.Target = t.Type
		case *Typedef:
			ref.Target = t.Type
		}
		if ref.Target != nil {
			return ref, nil
		}
	}

	t, err := b.resolveType(target, b.Names().GenerateName(target, b.module), depth+1)
	if err != nil {
		return ref, err
	}
	ref.Target = t
	return ref, nil
}
