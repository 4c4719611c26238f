package booking

import (
	"fmt"
	"sync"
)

// TitleParts are the display strings composed into a rendered title.
// X and Y default to the referenced axes' own titles when empty; Z is
// appended only when set.
type TitleParts struct {
	X     string
	Y     string
	Z     string
	Title string
}

// Spec declares a histogram over one or two registered axes.
type Spec struct {
	Name  string
	Axes  []string
	Title TitleParts
}

// Definition is a spec with its axis references resolved. Dims is 1 or
// 2; Y holds the second axis for 2-D definitions.
type Definition struct {
	Name  string
	Dims  int
	X     Axis
	Y     Axis
	Title string
}

// Catalog maps names to resolved histogram definitions. Axis
// references resolve eagerly at Define time against the registry the
// catalog was built with.
type Catalog struct {
	reg   *AxisRegistry
	mu    sync.RWMutex
	defs  map[string]Definition
	order []string
}

// NewCatalog returns an empty catalog resolving against reg.
func NewCatalog(reg *AxisRegistry) *Catalog {
	return &Catalog{reg: reg, defs: make(map[string]Definition)}
}

// Define resolves and stores a histogram spec.
func (c *Catalog) Define(spec Spec) error {
	if n := len(spec.Axes); n < 1 || n > 2 {
		return fmt.Errorf("histogram %q: %w: %d axes", spec.Name, ErrInvalidSpec, n)
	}

	def := Definition{Name: spec.Name, Dims: len(spec.Axes)}
	x, err := c.reg.Resolve(spec.Axes[0])
	if err != nil {
		return fmt.Errorf("histogram %q: %w", spec.Name, err)
	}
	def.X = x
	if def.Dims == 2 {
		y, err := c.reg.Resolve(spec.Axes[1])
		if err != nil {
			return fmt.Errorf("histogram %q: %w", spec.Name, err)
		}
		def.Y = y
	}
	def.Title = renderTitle(spec.Title, def)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.defs[spec.Name]; ok {
		return fmt.Errorf("histogram %q: %w", spec.Name, ErrDuplicateName)
	}
	c.defs[spec.Name] = def
	c.order = append(c.order, spec.Name)
	return nil
}

// Definition returns the resolved definition stored under name.
func (c *Catalog) Definition(name string) (Definition, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def, ok := c.defs[name]
	if !ok {
		return Definition{}, fmt.Errorf("histogram %q: %w", name, ErrUnknownHistogram)
	}
	return def, nil
}

// Names returns the histogram names in definition order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// renderTitle composes "title;xAxisTitle;yAxisTitle[;zTitle]". For a
// 1-D definition the y part is the optional override (empty by
// default); for 2-D it falls back to the second axis's own title.
func renderTitle(t TitleParts, def Definition) string {
	x := t.X
	if x == "" {
		x = def.X.Title
	}
	y := t.Y
	if y == "" && def.Dims == 2 {
		y = def.Y.Title
	}
	s := t.Title + ";" + x + ";" + y
	if t.Z != "" {
		s += ";" + t.Z
	}
	return s
}
