package schema

import (
	"fmt"
	"log/slog"
)

// Catalog is an in-memory, ordered collection of parsed schema modules.
type Catalog struct {
	modules map[string]*Node
	order   []string
}

// Creates a new empty Catalog
func NewCatalog() *Catalog {
	return &Catalog{
		modules: make(map[string]*Node),
	}
}

// Inserts a module root in to the catalog.
func (c *Catalog) AddModule(mod *Node) error {
	if mod == nil {
		return fmt.Errorf("tried to add nil module")
	}
	if mod.Kind != KindModule {
		return fmt.Errorf("not a module node: %s", mod)
	}
	if mod.Name == "" {
		return fmt.Errorf("module has empty name")
	}
	if _, ok := c.modules[mod.Name]; ok {
		return fmt.Errorf("catalog already contained a module with name: %s", mod.Name)
	}
	slog.Debug("adding schema module to catalog", "module", mod.Name, "children", len(mod.Children))
	c.modules[mod.Name] = mod
	c.order = append(c.order, mod.Name)
	return nil
}

// Module looks up a module root by name.
func (c *Catalog) Module(name string) (*Node, error) {
	if name == "" {
		return nil, fmt.Errorf("tried to resolve empty module name")
	}
	m, ok := c.modules[name]
	if !ok {
		return nil, fmt.Errorf("module not found in catalog: %s", name)
	}
	return m, nil
}

// Modules returns every module in insertion order.
func (c *Catalog) Modules() []*Node {
	out := make([]*Node, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.modules[name])
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.order)
}

// DependencyOrder returns the modules ordered so that every module comes after
// the modules it imports. Imports of modules that are not in the catalog are
// ignored; ties keep insertion order.
func (c *Catalog) DependencyOrder() []*Node {
	var out []*Node
	state := make(map[string]int)
	var visit func(name string)
	visit = func(name string) {
		mod, ok := c.modules[name]
		if !ok || state[name] != 0 {
			return
		}
		// 1 = visiting, 2 = done; import cycles fall back to insertion order
		state[name] = 1
		for _, imp := range mod.Imports {
			visit(imp)
		}
		state[name] = 2
		out = append(out, mod)
	}
	for _, name := range c.order {
		visit(name)
	}
	return out
}
