// Package catalog holds the set of loaded schema modules and answers the
// read-only queries the server makes about them.
package catalog

import (
	"iter"

	"github.com/dmitrijs2005/netconfd/internal/server/models"
)

// Catalog is an immutable set of schema modules in load order.
type Catalog struct {
	modules []models.Module
	byName  map[string]int
}

// New builds a catalog from modules. Later duplicates replace earlier ones
// in place.
func New(modules ...models.Module) *Catalog {
	c := &Catalog{byName: make(map[string]int, len(modules))}
	for _, m := range modules {
		if i, ok := c.byName[m.Name]; ok {
			c.modules[i] = m
			continue
		}
		c.byName[m.Name] = len(c.modules)
		c.modules = append(c.modules, m)
	}
	return c
}

// Len returns the number of modules.
func (c *Catalog) Len() int {
	return len(c.modules)
}

// All yields every module in catalog order.
func (c *Catalog) All() iter.Seq[models.Module] {
	return func(yield func(models.Module) bool) {
		for _, m := range c.modules {
			if !yield(m) {
				return
			}
		}
	}
}

// Modules yields a descriptor for each module in catalog order. Descriptors
// are computed as they are yielded and never cached.
func (c *Catalog) Modules() iter.Seq[models.ModuleDescriptor] {
	return func(yield func(models.ModuleDescriptor) bool) {
		for _, m := range c.modules {
			if !yield(Describe(m)) {
				return
			}
		}
	}
}

// Describe scans the top-level nodes of m and stops at the first writable one.
func Describe(m models.Module) models.ModuleDescriptor {
	d := models.ModuleDescriptor{Name: m.Name}
	for _, n := range m.Nodes {
		if n.Writable() {
			d.HasWritableData = true
			break
		}
	}
	return d
}
