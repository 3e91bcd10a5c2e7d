package wool

import (
	"github.com/alpakka/wools/schema"
)

// Descriptor is anything a member can be typed by: a resolved type or a
// wrapped node that produces a class.
type Descriptor interface {
	// JavaType is the name used when declaring a member of this type.
	JavaType() string
	// Imports are the imports a class needs to declare such a member.
	Imports() *ImportSet
}

// Variant identifies the kind of a TypeDescriptor.
type Variant int

const (
	VariantBase Variant = iota
	VariantEnum
	VariantUnion
	VariantBits
	VariantTypeDef
	VariantSelfRef
)

func (v Variant) String() string {
	switch v {
	case VariantBase:
		return "base"
	case VariantEnum:
		return "enum"
	case VariantUnion:
		return "union"
	case VariantBits:
		return "bits"
	case VariantTypeDef:
		return "type"
	case VariantSelfRef:
		return "ref"
	default:
		return "unknown"
	}
}

// TypeDescriptor is the resolved form of a declared type reference.
type TypeDescriptor interface {
	Descriptor
	Variant() Variant
}

// BaseType is a Java built-in type.
type BaseType struct {
	Name string
	// Boxed is the wrapper class needed for identity and equality, if any.
	Boxed string
}

func (t *BaseType) JavaType() string    { return t.Name }
func (t *BaseType) Imports() *ImportSet { return NewImportSet() }
func (t *BaseType) Variant() Variant    { return VariantBase }

type EnumValue struct {
	Name     string
	Constant string
	Value    *int
}

// Renamed reports whether the Java constant differs from the schema name.
func (v EnumValue) Renamed() bool {
	return v.Name != v.Constant
}

// EnumType is an enumeration with its ordered values.
type EnumType struct {
	Name    string
	Package string
	Values  []EnumValue
	imports *ImportSet
	// owner is the leaf or typedef the enumeration was declared on
	owner *schema.Node
}

func (t *EnumType) JavaType() string    { return t.Name }
func (t *EnumType) Imports() *ImportSet { return t.imports }
func (t *EnumType) Variant() Variant    { return VariantEnum }

// HasConstants reports whether at least one value was renamed.
func (t *EnumType) HasConstants() bool {
	for _, v := range t.Values {
		if v.Renamed() {
			return true
		}
	}
	return false
}

func sameEnumValues(a, b []EnumValue) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || !sameInt(a[i].Value, b[i].Value) {
			return false
		}
	}
	return true
}

// UnionType is a union of types. Members is never populated.
type UnionType struct {
	Name    string
	Members []TypeDescriptor
	imports *ImportSet
}

func (t *UnionType) JavaType() string    { return t.Name }
func (t *UnionType) Imports() *ImportSet { return t.imports }
func (t *UnionType) Variant() Variant    { return VariantUnion }

type Bit struct {
	Name     string
	Constant string
	Position *int
}

// BitsType is a set of named bit positions.
type BitsType struct {
	Name    string
	Package string
	Bits    []Bit
	imports *ImportSet
	owner   *schema.Node
}

func (t *BitsType) JavaType() string    { return t.Name }
func (t *BitsType) Imports() *ImportSet { return t.imports }
func (t *BitsType) Variant() Variant    { return VariantBits }

func sameBits(a, b []Bit) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || !sameInt(a[i].Position, b[i].Position) {
			return false
		}
	}
	return true
}

func sameInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// TypeDefRef refers to a registered type definition.
type TypeDefRef struct {
	Def *Typedef
}

func (t *TypeDefRef) JavaType() string    { return t.Def.JavaType() }
func (t *TypeDefRef) Imports() *ImportSet { return t.Def.Imports() }
func (t *TypeDefRef) Variant() Variant    { return VariantTypeDef }

// placeholderType is the Java type used for references that did not resolve.
const placeholderType = "Object"

// SelfRef is a reference typed by another node of the tree. Target is nil
// when the reference could not be resolved.
type SelfRef struct {
	Path   string
	Target TypeDescriptor
}

func (t *SelfRef) JavaType() string {
	if t.Target == nil {
		return placeholderType
	}
	return t.Target.JavaType()
}

func (t *SelfRef) Imports() *ImportSet {
	if t.Target == nil {
		return NewImportSet()
	}
	return t.Target.Imports()
}

func (t *SelfRef) Variant() Variant { return VariantSelfRef }

func (t *SelfRef) Unresolved() bool { return t.Target == nil }

// emissionGroup classifies a type definition for emission: base, enum,
// union, bits or type.
func emissionGroup(t TypeDescriptor) string {
	if ref, ok := t.(*SelfRef); ok && ref.Target != nil {
		return emissionGroup(ref.Target)
	}
	if t == nil {
		return ""
	}
	return t.Variant().String()
}
