package scene

import (
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"herogen/internal/primitives"
)

// Scene is the mutable modelling context every builder works against: an
// ordered set of objects, a material library, a selection and an active
// object. A Scene is owned by one goroutine; separate scenes are independent.
type Scene struct {
	prims     *primitives.Registry
	objects   []*Object
	materials *library
	active    *Object
}

// New returns an empty scene using the built-in primitive generators.
func New() *Scene {
	return NewWithRegistry(primitives.NewRegistry())
}

// NewWithRegistry returns an empty scene that generates primitives through r.
func NewWithRegistry(r *primitives.Registry) *Scene {
	return &Scene{prims: r, materials: newLibrary()}
}

// Objects returns every object in creation order.
func (s *Scene) Objects() []*Object {
	return slices.Clone(s.objects)
}

// Object finds an object by name.
func (s *Scene) Object(name string) (*Object, error) {
	for _, o := range s.objects {
		if o.Name == name {
			return o, nil
		}
	}
	return nil, &OpError{Op: "lookup", Object: name, Err: ErrNotFound}
}

// Roots returns the objects that have no parent.
func (s *Scene) Roots() []*Object {
	var out []*Object
	for _, o := range s.objects {
		if o.parent == nil {
			out = append(out, o)
		}
	}
	return out
}

// AddPrimitive generates def's mesh and places it as a new object. Rotation
// and scale from def are left pending on the object; ApplyTransform bakes
// them. The new object becomes the only selected object and the active one.
func (s *Scene) AddPrimitive(def primitives.Def) (*Object, error) {
	m, err := s.prims.Generate(def.Type, def.Params)
	if err != nil {
		return nil, &OpError{Op: "add " + string(def.Type), Object: def.Name, Err: err}
	}
	name := def.Name
	if name == "" {
		name = string(def.Type)
	}
	o := newObject(s.uniqueName(name), KindMesh)
	o.Mesh = m
	o.Location = def.Location
	o.Rotation = def.Rotation
	o.Scale = def.ScaleOrIdentity()
	s.insert(o, len(s.objects))
	return o, nil
}

// AddEmpty places a geometry-less object, used as a hierarchy anchor.
func (s *Scene) AddEmpty(name string, location mgl32.Vec3) *Object {
	o := newObject(s.uniqueName(name), KindEmpty)
	o.Location = location
	s.insert(o, len(s.objects))
	return o
}

// Rename gives o a new name, suffixed if another object already uses it.
func (s *Scene) Rename(o *Object, name string) error {
	if s.index(o) < 0 {
		return opErr("rename", o, ErrNotFound)
	}
	if o.Name != name {
		o.Name = s.uniqueName(name)
	}
	return nil
}

// Remove deletes o from the scene. Its children are detached and keep their
// local transforms.
func (s *Scene) Remove(o *Object) error {
	i := s.index(o)
	if i < 0 {
		return opErr("remove", o, ErrNotFound)
	}
	s.detach(o)
	for _, c := range o.children {
		c.parent = nil
	}
	o.children = nil
	o.selected = false
	s.objects = slices.Delete(s.objects, i, i+1)
	if s.active == o {
		s.active = nil
	}
	return nil
}

// SetParent makes parent the parent of child without compensating the
// child's transform, so child's local values become relative to parent.
// A nil parent clears the relationship.
func (s *Scene) SetParent(child, parent *Object) error {
	if s.index(child) < 0 {
		return opErr("parent", child, ErrNotFound)
	}
	if parent != nil {
		if s.index(parent) < 0 {
			return opErr("parent", parent, ErrNotFound)
		}
		for p := parent; p != nil; p = p.parent {
			if p == child {
				return opErr("parent", child, ErrParentCycle)
			}
		}
	}
	s.detach(child)
	child.parent = parent
	if parent != nil {
		parent.children = append(parent.children, child)
	}
	return nil
}

// Select adds objects to the selection.
func (s *Scene) Select(objs ...*Object) {
	for _, o := range objs {
		o.selected = true
	}
}

// DeselectAll clears the selection.
func (s *Scene) DeselectAll() {
	for _, o := range s.objects {
		o.selected = false
	}
}

// Selected returns the selected objects in scene order.
func (s *Scene) Selected() []*Object {
	var out []*Object
	for _, o := range s.objects {
		if o.selected {
			out = append(out, o)
		}
	}
	return out
}

// SetActive makes o the active object. It does not change the selection.
func (s *Scene) SetActive(o *Object) error {
	if o != nil && s.index(o) < 0 {
		return opErr("activate", o, ErrNotFound)
	}
	s.active = o
	return nil
}

// Active returns the active object or nil.
func (s *Scene) Active() *Object { return s.active }

// Reset removes every object and then purges materials nothing references.
// It returns how many of each were dropped.
func (s *Scene) Reset() (objs, mats int) {
	objs = len(s.objects)
	for _, o := range s.objects {
		o.parent, o.children, o.selected = nil, nil, false
	}
	s.objects = nil
	s.active = nil
	return objs, s.PurgeOrphanMaterials()
}

// insert adds o at position i and makes it the sole selected, active object.
func (s *Scene) insert(o *Object, i int) {
	s.objects = slices.Insert(s.objects, i, o)
	s.DeselectAll()
	o.selected = true
	s.active = o
}

func (s *Scene) index(o *Object) int {
	if o == nil {
		return -1
	}
	return slices.Index(s.objects, o)
}

func (s *Scene) detach(o *Object) {
	if p := o.parent; p != nil {
		if i := slices.Index(p.children, o); i >= 0 {
			p.children = slices.Delete(p.children, i, i+1)
		}
		o.parent = nil
	}
}

// uniqueName returns base, or base.001, base.002 ... if it is taken.
func (s *Scene) uniqueName(base string) string {
	taken := func(name string) bool {
		return slices.ContainsFunc(s.objects, func(o *Object) bool { return o.Name == name })
	}
	if !taken(base) {
		return base
	}
	for i := 1; ; i++ {
		name := fmt.Sprintf("%s.%03d", base, i)
		if !taken(name) {
			return name
		}
	}
}
