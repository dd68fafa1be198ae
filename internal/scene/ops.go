package scene

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"herogen/internal/deform"
	"herogen/internal/materials"
)

// ApplyTransform bakes o's rotation and/or scale into its mesh and resets
// them to identity. Location is never baked, so the object's origin stays
// where it was. Baking rotation alone under a non-uniform scale would shear
// the mesh and is refused.
func (s *Scene) ApplyTransform(o *Object, rotation, scale bool) error {
	if s.index(o) < 0 {
		return opErr("apply transform", o, ErrNotFound)
	}
	if o.Mesh == nil {
		return opErr("apply transform", o, ErrNotMesh)
	}
	uniform := o.Scale.X() == o.Scale.Y() && o.Scale.Y() == o.Scale.Z()
	if rotation && !scale && !uniform && o.Rotation != (mgl32.Vec3{}) {
		return opErr("apply transform", o, ErrNonUniformScale)
	}

	m := mgl32.Ident4()
	if rotation {
		m = o.RotationMatrix()
	}
	if scale {
		m = m.Mul4(mgl32.Scale3D(o.Scale.X(), o.Scale.Y(), o.Scale.Z()))
	}
	o.Mesh.Transform(m)
	if rotation {
		o.Rotation = mgl32.Vec3{}
	}
	if scale {
		o.Scale = mgl32.Vec3{1, 1, 1}
	}
	return nil
}

// EditVertices rewrites o's vertices with rule, in the object's local space.
// Thresholds in rules are meant for baked geometry, so objects with a pending
// rotation or scale are rejected with ErrPendingTransform.
func (s *Scene) EditVertices(o *Object, rule deform.Rule) error {
	if s.index(o) < 0 {
		return opErr("edit vertices", o, ErrNotFound)
	}
	if o.Mesh == nil {
		return opErr("edit vertices", o, ErrNotMesh)
	}
	if o.HasPendingTransform() {
		return opErr("edit vertices", o, ErrPendingTransform)
	}
	o.Mesh.Vertices = deform.Apply(o.Mesh.Vertices, rule)
	return nil
}

// ShadeSmooth marks every face of o smooth (true) or flat (false).
func (s *Scene) ShadeSmooth(o *Object, smooth bool) error {
	if s.index(o) < 0 {
		return opErr("shade", o, ErrNotFound)
	}
	if o.Mesh == nil {
		return opErr("shade", o, ErrNotMesh)
	}
	o.Mesh.SetSmooth(smooth)
	return nil
}

// Join merges objs into one new mesh object called name. The first object
// is the target: the result takes its transform, parent and place in the
// scene, and every other mesh is moved into its local space so nothing
// shifts in the world. Material slots are merged by identity. The inputs
// are removed and the result becomes selected and active.
func (s *Scene) Join(name string, objs ...*Object) (*Object, error) {
	if len(objs) == 0 {
		return nil, &OpError{Op: "join", Object: name, Err: ErrNothingToJoin}
	}
	for _, o := range objs {
		if s.index(o) < 0 {
			return nil, opErr("join", o, ErrNotFound)
		}
		if o.Mesh == nil {
			return nil, opErr("join", o, ErrNotMesh)
		}
	}

	objs = distinct(objs)
	target := objs[0]
	toLocal := target.WorldMatrix().Inv()
	merged := target.Mesh.Clone()
	slots := slotsOf(target)

	for _, o := range objs[1:] {
		part := o.Mesh.Clone()
		part.Transform(toLocal.Mul4(o.WorldMatrix()))
		src := slotsOf(o)
		slotMap := make([]int, len(src))
		for i, m := range src {
			j := slices.Index(slots, m)
			if j < 0 {
				j = len(slots)
				slots = append(slots, m)
			}
			slotMap[i] = j
		}
		merged.Append(part, slotMap)
	}

	parent := target.parent
	at := s.index(target)
	for _, o := range objs[1:] {
		if s.index(o) < at {
			at--
		}
	}
	var orphans []*Object
	for _, o := range objs {
		orphans = append(orphans, o.children...)
		if err := s.Remove(o); err != nil {
			return nil, err
		}
	}

	if name == "" {
		name = target.Name
	}
	out := newObject(s.uniqueName(name), KindMesh)
	out.Location, out.Rotation, out.Scale = target.Location, target.Rotation, target.Scale
	out.Mesh = merged
	out.Materials = slots
	s.insert(out, at)
	if parent != nil && s.index(parent) >= 0 {
		if err := s.SetParent(out, parent); err != nil {
			return nil, err
		}
	}
	for _, c := range orphans {
		if s.index(c) >= 0 {
			if err := s.SetParent(c, out); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// slotsOf returns o's material slots; an object without any gets a single
// default slot so its faces still have somewhere to point.
func slotsOf(o *Object) []*materials.Spec {
	if len(o.Materials) == 0 {
		return []*materials.Spec{nil}
	}
	return slices.Clone(o.Materials)
}

func distinct(objs []*Object) []*Object {
	out := make([]*Object, 0, len(objs))
	for _, o := range objs {
		if !slices.Contains(out, o) {
			out = append(out, o)
		}
	}
	return out
}
