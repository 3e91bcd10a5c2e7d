package emit

import (
	"strconv"

	"github.com/alpakka/wools/wool"
)

type memberView struct {
	Name       string
	Type       string
	Collection bool
}

type classView struct {
	Package   string
	Name      string
	Super     string
	Imports   []string
	Members   []memberView
	Inherited []memberView
	All       []memberView
	Keys      []string
}

type enumValueView struct {
	Name     string
	Constant string
	Value    string
}

type enumView struct {
	Package      string
	Name         string
	Values       []enumValueView
	HasConstants bool
}

type typedefView struct {
	Package    string
	Name       string
	Base       string
	Underlying string
	Boxed      string
	Imports    []string
}

type bitView struct {
	Name     string
	Constant string
	Position int
}

type bitsView struct {
	Package string
	Name    string
	Bits    []bitView
}

type rpcView struct {
	Name     string
	Constant string
	Path     string
	Result   string
	Params   []memberView
}

type interfaceView struct {
	Package   string
	Name      string
	Interface string
	Module    string
	Imports   []string
	RPCs      []rpcView
}

type pomView struct {
	GroupID    string
	ArtifactID string
	Modules    []string
}

func membersOf(ms []*wool.Member) []memberView {
	out := make([]memberView, 0, len(ms))
	for _, m := range ms {
		t := m.JavaType()
		if t == "" {
			t = "Object"
		}
		out = append(out, memberView{Name: m.Name, Type: t, Collection: m.Collection})
	}
	return out
}

func newClassView(c *wool.Class) classView {
	v := classView{
		Package:   c.Package,
		Name:      c.Name,
		Super:     c.SuperName(),
		Imports:   c.Imports(),
		Members:   membersOf(c.Members()),
		Inherited: membersOf(c.InheritedMembers()),
	}
	v.All = append(append([]memberView{}, v.Inherited...), v.Members...)
	v.Keys = c.Keys
	return v
}

func newEnumView(e *wool.EnumType) enumView {
	v := enumView{Package: e.Package, Name: e.Name, HasConstants: e.HasConstants()}
	for _, val := range e.Values {
		ev := enumValueView{Name: val.Name, Constant: val.Constant}
		if val.Value != nil {
			ev.Value = strconv.Itoa(*val.Value)
		}
		v.Values = append(v.Values, ev)
	}
	return v
}

// underlying follows references to other definitions down to the Java type
// that finally holds the value.
func underlying(t wool.TypeDescriptor) string {
	for i := 0; i < 32; i++ {
		ref, ok := t.(*wool.TypeDefRef)
		if !ok || ref.Def.Type == nil {
			break
		}
		t = ref.Def.Type
	}
	if t == nil {
		return "Object"
	}
	return t.JavaType()
}

func newTypedefView(d *wool.Typedef) typedefView {
	v := typedefView{
		Package:    d.Package,
		Name:       d.Name,
		Base:       d.BaseJavaType(),
		Underlying: underlying(d.Type),
		Boxed:      wool.BoxedType(d.BaseJavaType()),
	}
	if d.Type != nil {
		for _, imp := range d.Type.Imports().Strings() {
			if imp != d.Package+"."+d.Name {
				v.Imports = append(v.Imports, imp)
			}
		}
	}
	return v
}

func newBitsView(b *wool.BitsType) bitsView {
	v := bitsView{Package: b.Package, Name: b.Name}
	for i, bit := range b.Bits {
		pos := i
		if bit.Position != nil {
			pos = *bit.Position
		}
		v.Bits = append(v.Bits, bitView{Name: bit.Name, Constant: bit.Constant, Position: pos})
	}
	return v
}

func newRPCView(m *wool.Module, r *wool.RPC) rpcView {
	v := rpcView{
		Name:     r.JavaName,
		Constant: wool.EnumConstant(r.Node().Name),
		Path:     "/" + m.Name + ":" + r.Node().Name,
		Params:   membersOf(r.InputMembers()),
	}
	out := membersOf(r.OutputMembers())
	switch len(out) {
	case 0:
		v.Result = "void"
	case 1:
		v.Result = out[0].Type
	default:
		v.Result = "Object"
	}
	return v
}
