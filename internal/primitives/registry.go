package primitives

import (
	"fmt"
	"sort"

	"herogen/internal/mesh"
)

// Generator builds a primitive mesh centred on the local origin, Z up.
type Generator func(p Params) (*mesh.Mesh, error)

// Registry maps primitive kinds to generators. NewRegistry installs cube,
// sphere, cylinder and cone; more can be added with Register.
type Registry struct {
	gens map[Kind]Generator
}

// NewRegistry returns a registry with the built-in primitives.
func NewRegistry() *Registry {
	r := &Registry{gens: make(map[Kind]Generator)}
	r.Register(KindCube, Cube)
	r.Register(KindSphere, UVSphere)
	r.Register(KindCylinder, Cylinder)
	r.Register(KindCone, Cone)
	return r
}

// Register adds or replaces the generator for kind.
func (r *Registry) Register(kind Kind, g Generator) {
	r.gens[kind] = g
}

// Generate builds the mesh for kind. Unknown kinds return ErrUnknownKind.
func (r *Registry) Generate(kind Kind, p Params) (*mesh.Mesh, error) {
	g, ok := r.gens[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return g(p)
}

// Kinds lists the registered kinds in name order.
func (r *Registry) Kinds() []Kind {
	out := make([]Kind, 0, len(r.gens))
	for k := range r.gens {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
