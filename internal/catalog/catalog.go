package catalog

import (
	"fmt"
	"slices"
	"sort"
)

// Category is the kind of result an operation produces.
type Category string

const (
	CategoryStatus   Category = "status"
	CategoryData     Category = "data"
	CategoryFilePath Category = "file_path"
	// CategoryUnknown is reported for operation types that were never registered.
	CategoryUnknown Category = "unknown"
)

// ParseCategory validates a category name coming from configuration.
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryStatus, CategoryData, CategoryFilePath:
		return c, nil
	}
	return "", fmt.Errorf("invalid output category %q: must be 'status', 'data' or 'file_path'", s)
}

// Spec is the catalog entry for a single operation type.
type Spec struct {
	Name        string
	Output      Category
	Provides    []string
	Requires    []string
	Description string
}

// CanProvide reports whether the operation supplies the given role.
func (s Spec) CanProvide(role string) bool {
	return slices.Contains(s.Provides, role)
}

// Needs reports whether the operation requires the given role.
func (s Spec) Needs(role string) bool {
	return slices.Contains(s.Requires, role)
}

func (s Spec) clone() Spec {
	s.Provides = slices.Clone(s.Provides)
	s.Requires = slices.Clone(s.Requires)
	return s
}

// Catalog maps operation type names to their specs.
type Catalog struct {
	specs map[string]Spec
}

// New returns a catalog seeded with the default table. Overrides replace
// default entries of the same name.
func New(overrides ...Spec) *Catalog {
	c := Empty()
	for _, s := range defaults {
		c.Register(s)
	}
	for _, s := range overrides {
		c.Register(s)
	}
	return c
}

// Empty returns a catalog without any entries.
func Empty() *Catalog {
	return &Catalog{specs: make(map[string]Spec)}
}

// Register adds or overwrites the entry for spec.Name.
func (c *Catalog) Register(spec Spec) {
	c.specs[spec.Name] = spec.clone()
}

// Lookup returns the spec registered under name. Unregistered names yield an
// "unknown" spec with no roles, so lookups never fail.
func (c *Catalog) Lookup(name string) Spec {
	if s, ok := c.specs[name]; ok {
		return s.clone()
	}
	return Spec{Name: name, Output: CategoryUnknown}
}

// Has reports whether name is registered.
func (c *Catalog) Has(name string) bool {
	_, ok := c.specs[name]
	return ok
}

// Names returns all registered operation names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.specs))
	for name := range c.specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered entries.
func (c *Catalog) Len() int {
	return len(c.specs)
}
