package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"herogen/internal/materials"
	"herogen/internal/mesh"
)

// ObjectKind distinguishes geometry from transform-only objects.
type ObjectKind string

const (
	KindMesh  ObjectKind = "MESH"
	KindEmpty ObjectKind = "EMPTY"
)

// Object is a named node in the scene. Location is in the parent's space,
// Rotation is an XYZ Euler angle in radians and Scale is per-axis. Mesh data
// is local to the object; Materials are its slots, indexed by mesh.Face.Material.
// A nil slot renders with the default material.
type Object struct {
	Name      string
	Kind      ObjectKind
	Location  mgl32.Vec3
	Rotation  mgl32.Vec3
	Scale     mgl32.Vec3
	Mesh      *mesh.Mesh
	Materials []*materials.Spec

	parent   *Object
	children []*Object
	selected bool
}

func newObject(name string, kind ObjectKind) *Object {
	return &Object{Name: name, Kind: kind, Scale: mgl32.Vec3{1, 1, 1}}
}

// Parent returns the object's parent or nil.
func (o *Object) Parent() *Object { return o.parent }

// Children returns a copy of the object's children in parenting order.
func (o *Object) Children() []*Object {
	out := make([]*Object, len(o.children))
	copy(out, o.children)
	return out
}

// Selected reports whether the object is part of the current selection.
func (o *Object) Selected() bool { return o.selected }

// HasPendingTransform reports whether rotation or scale differ from identity.
func (o *Object) HasPendingTransform() bool {
	return o.Rotation != (mgl32.Vec3{}) || o.Scale != (mgl32.Vec3{1, 1, 1})
}

// RotationMatrix returns Rz·Ry·Rx, the XYZ Euler convention.
func (o *Object) RotationMatrix() mgl32.Mat4 {
	return mgl32.HomogRotate3DZ(o.Rotation.Z()).
		Mul4(mgl32.HomogRotate3DY(o.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DX(o.Rotation.X()))
}

// LocalMatrix returns T·R·S.
func (o *Object) LocalMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(o.Location.X(), o.Location.Y(), o.Location.Z())
	s := mgl32.Scale3D(o.Scale.X(), o.Scale.Y(), o.Scale.Z())
	return t.Mul4(o.RotationMatrix()).Mul4(s)
}

// WorldMatrix composes the local matrices from the root down.
func (o *Object) WorldMatrix() mgl32.Mat4 {
	m := o.LocalMatrix()
	for p := o.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// Stats summarises an object's geometry.
type Stats struct {
	Vertices  int        `yaml:"vertices"`
	Faces     int        `yaml:"faces"`
	Triangles int        `yaml:"triangles"`
	Min       [3]float32 `yaml:"min,flow"`
	Max       [3]float32 `yaml:"max,flow"`
}

// Stats returns counts and the world-space bounding box. Empties report zeros.
func (o *Object) Stats() Stats {
	if o.Mesh.IsEmpty() {
		return Stats{}
	}
	world := o.Mesh.Clone()
	world.Transform(o.WorldMatrix())
	lo, hi := world.Bounds()
	return Stats{
		Vertices:  o.Mesh.VertexCount(),
		Faces:     o.Mesh.FaceCount(),
		Triangles: o.Mesh.TriangleCount(),
		Min:       lo,
		Max:       hi,
	}
}

// MaterialAt returns the material for slot i, or nil when the slot is
// missing or empty.
func (o *Object) MaterialAt(i int) *materials.Spec {
	if i < 0 || i >= len(o.Materials) {
		return nil
	}
	return o.Materials[i]
}
