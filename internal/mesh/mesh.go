package mesh

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jinzhu/copier"
)

// Face is one polygon of a mesh. Verts index into Mesh.Vertices and are wound
// counter-clockwise when seen from outside. Material is a slot index on the
// owning object; Smooth marks the face for shared (averaged) vertex normals.
type Face struct {
	Verts    []int
	Material int
	Smooth   bool
}

// Mesh is a polygon mesh in the local space of the object that owns it.
type Mesh struct {
	Vertices []mgl32.Vec3
	Faces    []Face
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceCount returns the number of polygons.
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// TriangleCount returns the number of triangles the faces fan into.
func (m *Mesh) TriangleCount() int {
	n := 0
	for _, f := range m.Faces {
		if len(f.Verts) >= 3 {
			n += len(f.Verts) - 2
		}
	}
	return n
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return m == nil || len(m.Vertices) == 0
}

// Clone returns a deep copy; the copy shares no slices with m.
func (m *Mesh) Clone() *Mesh {
	out := &Mesh{}
	if m == nil {
		return out
	}
	if err := copier.CopyWithOption(out, m, copier.Option{DeepCopy: true}); err != nil {
		// copier only fails on mismatched kinds, which cannot happen for identical types.
		panic("mesh: clone: " + err.Error())
	}
	return out
}

// Transform multiplies every vertex by mat in place.
func (m *Mesh) Transform(mat mgl32.Mat4) {
	for i, v := range m.Vertices {
		m.Vertices[i] = mgl32.TransformCoordinate(v, mat)
	}
	if mat.Det() < 0 {
		// A mirroring matrix flips winding; restore outward-facing order.
		for i := range m.Faces {
			reverse(m.Faces[i].Verts)
		}
	}
}

// SetSmooth marks every face smooth or flat.
func (m *Mesh) SetSmooth(smooth bool) {
	for i := range m.Faces {
		m.Faces[i].Smooth = smooth
	}
}

// SetMaterial points every face at the given slot.
func (m *Mesh) SetMaterial(slot int) {
	for i := range m.Faces {
		m.Faces[i].Material = slot
	}
}

// Append copies other's geometry onto the end of m. slotMap translates
// other's material slots into m's; a nil slotMap keeps them as is.
func (m *Mesh) Append(other *Mesh, slotMap []int) {
	if other == nil {
		return
	}
	offset := len(m.Vertices)
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, f := range other.Faces {
		verts := make([]int, len(f.Verts))
		for i, v := range f.Verts {
			verts[i] = v + offset
		}
		slot := f.Material
		if slotMap != nil && slot >= 0 && slot < len(slotMap) {
			slot = slotMap[slot]
		}
		m.Faces = append(m.Faces, Face{Verts: verts, Material: slot, Smooth: f.Smooth})
	}
}

// Bounds returns the axis-aligned bounding box. An empty mesh yields zero vectors.
func (m *Mesh) Bounds() (lo, hi mgl32.Vec3) {
	if len(m.Vertices) == 0 {
		return lo, hi
	}
	lo, hi = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			mgl32.SetMin(&lo[i], &v[i])
			mgl32.SetMax(&hi[i], &v[i])
		}
	}
	return lo, hi
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
