package peripheral

import (
	"sort"
)

// Registry memoises extracted classes by simple class name. A class is
// registered before its parent is resolved, which is what stops circular
// extends chains from recursing forever.
type Registry struct {
	classes map[string]*Class
	hits    int
}

func NewRegistry() *Registry {
	return &Registry{classes: make(map[string]*Class)}
}

// Lookup returns the class registered under name, if any.
func (r *Registry) Lookup(name string) (*Class, bool) {
	c, ok := r.classes[name]
	return c, ok
}

func (r *Registry) register(c *Class) {
	r.classes[c.Name] = c
}

// Len returns the number of registered classes.
func (r *Registry) Len() int {
	return len(r.classes)
}

// Hits counts extractions answered from the registry instead of being
// built again.
func (r *Registry) Hits() int {
	return r.hits
}

// Classes returns every registered class sorted by name.
func (r *Registry) Classes() []*Class {
	out := make([]*Class, 0, len(r.classes))
	for _, c := range r.classes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
