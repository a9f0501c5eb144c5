package tool

import (
	"github.com/casualjim/arggpt/internal/registry"
)

// Registry is an ordered table of definitions by name. Adding a definition
// with a name that is already present replaces it in place.
type Registry struct {
	defs registry.Registry[Definition]
}

// NewRegistry returns a registry holding defs.
func NewRegistry(defs ...Definition) *Registry {
	r := &Registry{defs: registry.New[Definition]()}
	r.Add(defs...)
	return r
}

// ByName returns the definition registered under name.
func (r *Registry) ByName(name string) (Definition, bool) {
	return r.defs.Get(name)
}

// All returns the definitions in registration order.
func (r *Registry) All() []Definition {
	return r.defs.Values()
}

func (r *Registry) Add(defs ...Definition) {
	for _, def := range defs {
		r.defs.Add(def.Name, def)
	}
}

func (r *Registry) Remove(name string) bool {
	return r.defs.Del(name)
}

func (r *Registry) Len() int {
	return r.defs.Len()
}

// Tools assembles fresh tool envelopes for every registered definition.
func (r *Registry) Tools() ([]Tool, error) {
	return Assemble(r.All()...)
}
