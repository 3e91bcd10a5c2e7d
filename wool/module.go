package wool

import (
	"log/slog"

	"github.com/alpakka/wools/schema"
)

// Module is the descriptor registry of one schema module: the classes,
// type definitions and remote procedures generated from it.
type Module struct {
	Name string
	// Package is the Java package of the module.
	Package string
	// JavaName is the class-name form of the module prefix, used to name the
	// backend interface.
	JavaName string

	node       *schema.Node
	javaPrefix string
	logger     *slog.Logger
	report     func(*Warning) error

	classes      *orderedMap[*Class]
	typedefs     *orderedMap[*Typedef]
	typedefNames map[string]*Typedef
	rpcs         *orderedMap[*RPC]
	enums        *orderedMap[*EnumType]
	bits         *orderedMap[*BitsType]
	roots        []Wrapper
	wrapped      bool
}

// NewModule creates an empty registry for the module node n. javaPrefix is
// prepended to the generated package names.
func NewModule(n *schema.Node, javaPrefix string, names *Names) *Module {
	prefix := n.Prefix
	if prefix == "" {
		prefix = n.Name
	}
	return &Module{
		Name:         n.Name,
		Package:      PackageName(n.Name, javaPrefix),
		JavaName:     names.ClassName(prefix),
		node:         n,
		javaPrefix:   javaPrefix,
		logger:       slog.Default().With("module", n.Name),
		report:       (&WarnPolicy{}).Report,
		classes:      newOrderedMap[*Class](),
		typedefs:     newOrderedMap[*Typedef](),
		typedefNames: make(map[string]*Typedef),
		rpcs:         newOrderedMap[*RPC](),
		enums:        newOrderedMap[*EnumType](),
		bits:         newOrderedMap[*BitsType](),
	}
}

func (m *Module) Node() *schema.Node {
	return m.node
}

// Subpath is the package as a relative directory.
func (m *Module) Subpath() string {
	return Subpath(m.Name, m.javaPrefix)
}

// Wrapped reports whether the wrap pass of the module completed.
func (m *Module) Wrapped() bool {
	return m.wrapped
}

func (m *Module) warn(kind error, msg string, attrs ...any) error {
	return m.report(&Warning{Kind: kind, Module: m.Name, Message: msg, Attrs: attrs})
}

// AddClass registers c under its name. The first registration of a name
// wins; a later one is dropped and, when the member names differ, reported
// as a name collision. The boolean reports whether c was stored.
func (m *Module) AddClass(c *Class) (bool, error) {
	prev, ok := m.classes.Get(c.Name)
	if !ok {
		m.classes.Set(c.Name, c)
		classesRegistered.Inc()
		return true, nil
	}

	m.logger.Debug("class already registered", "class", c.Name)
	if diff := memberDiff(prev, c); len(diff) > 0 {
		return false, m.warn(ErrNameCollision, "class registered twice with different members",
			"class", c.Name, "stored", prev.Node.String(), "incoming", c.Node.String(), "diff", diff)
	}
	return false, nil
}

func (m *Module) Class(name string) (*Class, bool) {
	return m.classes.Get(name)
}

// Classes returns the registered classes in registration order.
func (m *Module) Classes() []*Class {
	return m.classes.Values()
}

func (m *Module) ClassNames() []string {
	return m.classes.Keys()
}

func (m *Module) removeClass(name string) {
	m.classes.Delete(name)
}

// AddTypedef registers d, replacing any definition of the same name.
func (m *Module) AddTypedef(d *Typedef) {
	m.typedefs.Set(d.Name, d)
	m.typedefNames[d.node.Name] = d
}

// addTypedefAlias makes d resolvable by its schema identifier without
// emitting it. Used for definitions that stand for another node's type.
func (m *Module) addTypedefAlias(d *Typedef) {
	m.typedefNames[d.node.Name] = d
}

// TypedefByName looks a definition up by its schema identifier.
func (m *Module) TypedefByName(name string) (*Typedef, bool) {
	d, ok := m.typedefNames[name]
	return d, ok
}

func (m *Module) Typedefs() []*Typedef {
	return m.typedefs.Values()
}

// AddRPC registers r, replacing any procedure of the same name.
func (m *Module) AddRPC(r *RPC) {
	m.rpcs.Set(r.JavaName, r)
}

func (m *Module) RPCs() []*RPC {
	return m.rpcs.Values()
}

// AddEnum registers an enumeration declared directly on a leaf under the
// first free name of e.Name and alt. An enumeration with the same values
// already registered under one of them is returned instead of e. When both
// names hold different values the first registration wins and a name
// collision is reported.
func (m *Module) AddEnum(e *EnumType, alt string) (*EnumType, error) {
	var first *EnumType
	for _, name := range []string{e.Name, alt} {
		prev, ok := m.enums.Get(name)
		if !ok {
			e.Name = name
			m.enums.Set(name, e)
			return e, nil
		}
		if sameEnumValues(prev.Values, e.Values) {
			return prev, nil
		}
		if first == nil {
			first = prev
		}
	}
	return first, m.warn(ErrNameCollision, "enumeration registered twice with different values",
		"enum", first.Name, "incoming", e.owner.String())
}

// AddBits registers a bits type declared directly on a leaf, with the same
// naming rule as AddEnum.
func (m *Module) AddBits(bt *BitsType, alt string) (*BitsType, error) {
	var first *BitsType
	for _, name := range []string{bt.Name, alt} {
		prev, ok := m.bits.Get(name)
		if !ok {
			bt.Name = name
			m.bits.Set(name, bt)
			return bt, nil
		}
		if sameBits(prev.Bits, bt.Bits) {
			return prev, nil
		}
		if first == nil {
			first = prev
		}
	}
	return first, m.warn(ErrNameCollision, "bits type registered twice with different bits",
		"bits", first.Name, "incoming", bt.owner.String())
}

// takenByOtherKind reports whether name already names a generated file of
// this module that was built from a node of a kind other than kind.
func (m *Module) takenByOtherKind(name string, kind schema.Kind) bool {
	if c, ok := m.classes.Get(name); ok && c.Kind != kind {
		return true
	}
	if d, ok := m.typedefs.Get(name); ok && d.node.Kind != kind {
		return true
	}
	if e, ok := m.enums.Get(name); ok && e.owner.Kind != kind {
		return true
	}
	if bt, ok := m.bits.Get(name); ok && bt.owner.Kind != kind {
		return true
	}
	return false
}

func (m *Module) typedefsIn(group string) []*Typedef {
	var out []*Typedef
	for _, d := range m.typedefs.Values() {
		if d.Group() == group {
			out = append(out, d)
		}
	}
	return out
}

// Enums are the enumerations to generate: enumeration type definitions
// first, then enumerations declared on leaves.
func (m *Module) Enums() []*EnumType {
	seen := make(map[string]bool)
	var out []*EnumType
	for _, d := range m.typedefsIn(VariantEnum.String()) {
		if e, ok := d.Type.(*EnumType); ok && !seen[e.Name] {
			seen[e.Name] = true
			out = append(out, e)
		}
	}
	for _, e := range m.enums.Values() {
		if !seen[e.Name] {
			seen[e.Name] = true
			out = append(out, e)
		}
	}
	return out
}

// BaseExtensions are the definitions extending a Java built-in type.
func (m *Module) BaseExtensions() []*Typedef {
	return m.typedefsIn(VariantBase.String())
}

// TypeExtensions are the definitions extending another definition.
func (m *Module) TypeExtensions() []*Typedef {
	return m.typedefsIn(VariantTypeDef.String())
}

func (m *Module) Unions() []*Typedef {
	return m.typedefsIn(VariantUnion.String())
}

// Bits are the bits types to generate, definitions first.
func (m *Module) Bits() []*BitsType {
	seen := make(map[string]bool)
	var out []*BitsType
	for _, d := range m.typedefsIn(VariantBits.String()) {
		if bt, ok := d.Type.(*BitsType); ok && !seen[bt.Name] {
			seen[bt.Name] = true
			out = append(out, bt)
		}
	}
	for _, bt := range m.bits.Values() {
		if !seen[bt.Name] {
			seen[bt.Name] = true
			out = append(out, bt)
		}
	}
	return out
}

// RootElements are the wrapped top-level data nodes of the module.
// Procedures are not root elements.
func (m *Module) RootElements() []Wrapper {
	var out []Wrapper
	for _, w := range m.roots {
		if w.Node().Kind == schema.KindRPC {
			continue
		}
		out = append(out, w)
	}
	return out
}

// InterfaceImports collects the imports of the backend interface: those of
// every procedure, plus those of keyed lists found within levels of the
// module root whose imports do not already come from the module package.
func (m *Module) InterfaceImports(levels int) []string {
	out := NewImportSet()
	for _, r := range m.rpcs.Values() {
		out.Merge(r.Imports())
	}
	var walk func(ws []Wrapper, depth int)
	walk = func(ws []Wrapper, depth int) {
		if depth > levels {
			return
		}
		for _, w := range ws {
			l, ok := w.(*List)
			if ok && len(l.Keys) > 0 && !l.Imports().Has(m.Package) {
				out.Merge(l.Imports())
			}
			if g := groupOf(w); g != nil {
				walk(g.children, depth+1)
			}
		}
	}
	walk(m.RootElements(), 1)
	return out.Strings()
}

func groupOf(w Wrapper) *Group {
	switch t := w.(type) {
	case *Group:
		return t
	case *Container:
		return t.Group
	case *List:
		return t.Group
	case *Grouping:
		return t.Group
	case *Case:
		return t.Group
	case *Choice:
		return t.Group
	}
	return nil
}
