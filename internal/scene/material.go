package scene

import (
	"slices"

	"herogen/internal/materials"
)

// library stores materials by name in creation order.
type library struct {
	specs []*materials.Spec
}

func newLibrary() *library {
	return &library{}
}

func (l *library) get(name string) *materials.Spec {
	for _, m := range l.specs {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// GetOrCreateMaterial returns the material called name, creating it with
// color and roughness if it does not exist yet. An existing material keeps
// its original values.
func (s *Scene) GetOrCreateMaterial(name string, color [4]float32, roughness float32) *materials.Spec {
	if m := s.materials.get(name); m != nil {
		return m
	}
	m := &materials.Spec{Name: name, BaseColor: color, Roughness: roughness}
	s.materials.specs = append(s.materials.specs, m)
	return m
}

// Material returns the material called name or nil.
func (s *Scene) Material(name string) *materials.Spec {
	return s.materials.get(name)
}

// Materials returns every material in creation order.
func (s *Scene) Materials() []*materials.Spec {
	return slices.Clone(s.materials.specs)
}

// AssignMaterial replaces all of o's slots with m and points every face at it.
func (s *Scene) AssignMaterial(o *Object, m *materials.Spec) error {
	if s.index(o) < 0 {
		return opErr("assign material", o, ErrNotFound)
	}
	if o.Mesh == nil {
		return opErr("assign material", o, ErrNotMesh)
	}
	o.Materials = []*materials.Spec{m}
	o.Mesh.SetMaterial(0)
	return nil
}

// PurgeOrphanMaterials drops materials that no object references and returns
// how many were removed.
func (s *Scene) PurgeOrphanMaterials() int {
	used := make(map[*materials.Spec]bool)
	for _, o := range s.objects {
		for _, m := range o.Materials {
			used[m] = true
		}
	}
	before := len(s.materials.specs)
	s.materials.specs = slices.DeleteFunc(s.materials.specs, func(m *materials.Spec) bool {
		return !used[m]
	})
	return before - len(s.materials.specs)
}
