package schema

import (
	"strings"
)

// Kind is the schema statement keyword a node was built from.
type Kind string

const (
	KindModule      Kind = "module"
	KindContainer   Kind = "container"
	KindList        Kind = "list"
	KindLeaf        Kind = "leaf"
	KindLeafList    Kind = "leaf-list"
	KindGrouping    Kind = "grouping"
	KindTypedef     Kind = "typedef"
	KindEnumeration Kind = "enumeration"
	KindUnion       Kind = "union"
	KindBits        Kind = "bits"
	KindChoice      Kind = "choice"
	KindCase        Kind = "case"
	KindRPC         Kind = "rpc"
	KindInput       Kind = "input"
	KindOutput      Kind = "output"
)

// Node is one statement of a parsed schema tree.
//
// Nodes are produced by a front-end (see schema/yangsrc) and are treated as
// read-only by everything downstream.
type Node struct {
	Kind Kind
	Name string

	// Module is the module whose tree holds this node. OrigModule is the module
	// that declared it; the two differ for augmented nodes and for groupings
	// used across module boundaries.
	Module     string
	OrigModule string

	Parent   *Node
	Children []*Node

	// Uses lists the groupings this node incorporates, in declaration order.
	Uses []*Node

	Type *TypeRef

	// Augmented is set on nodes attached to this tree by another module.
	Augmented bool

	// Keys holds the list key identifiers (lists only).
	Keys []string

	// Target is the resolved node a leafref points at, if the front-end could
	// resolve it.
	Target *Node

	// Prefix and Imports are only populated on module nodes.
	Prefix  string
	Imports []string
}

// TypeRef is a declared type reference on a leaf, leaf-list or typedef.
type TypeRef struct {
	Name string

	// Module owning a named (non built-in) type definition.
	Module string

	BuiltIn bool

	Enums []EnumValue
	Bits  []BitValue
	Union []*TypeRef

	// Path is the raw leafref path expression.
	Path string
}

type EnumValue struct {
	Name  string
	Value *int
}

type BitValue struct {
	Name     string
	Position *int
}

// NewModule creates a module root node.
func NewModule(name, prefix string) *Node {
	return &Node{
		Kind:       KindModule,
		Name:       name,
		Module:     name,
		OrigModule: name,
		Prefix:     prefix,
	}
}

// New creates a detached node declared by module orig. Module is filled in
// when the node is attached with Add.
func New(kind Kind, name, orig string) *Node {
	return &Node{
		Kind:       kind,
		Name:       name,
		OrigModule: orig,
	}
}

// Add attaches child under n and returns the child.
func (n *Node) Add(child *Node) *Node {
	child.Parent = n
	child.setModule(n.Module)
	n.Children = append(n.Children, child)
	return child
}

func (n *Node) setModule(mod string) {
	n.Module = mod
	if n.OrigModule == "" {
		n.OrigModule = mod
	}
	for _, c := range n.Children {
		c.setModule(mod)
	}
}

// Top returns the module node at the root of n's tree.
func (n *Node) Top() *Node {
	cur := n
	for cur.Parent != nil {
		cur = cur.Parent
	}
	return cur
}

// Child returns the first direct child with the given name.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Path returns a slash separated path of identifiers from the module root.
func (n *Node) Path() string {
	var parts []string
	for cur := n; cur != nil && cur.Kind != KindModule; cur = cur.Parent {
		parts = append(parts, cur.Name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return "/" + strings.Join(parts, "/")
}

func (n *Node) String() string {
	return string(n.Kind) + " " + n.Module + ":" + n.Path()
}
