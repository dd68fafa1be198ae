package mesh

import "github.com/go-gl/mathgl/mgl32"

// FaceNormal returns the unit normal of face f using Newell's method, which
// stays stable for the planar quads and n-gon caps the primitives produce.
// Degenerate faces return the zero vector.
func (m *Mesh) FaceNormal(f Face) mgl32.Vec3 {
	n := m.areaNormal(f)
	if n.LenSqr() == 0 {
		return n
	}
	return n.Normalize()
}

// areaNormal is the un-normalized Newell normal; its length is twice the face area.
func (m *Mesh) areaNormal(f Face) mgl32.Vec3 {
	var n mgl32.Vec3
	for i, vi := range f.Verts {
		cur := m.Vertices[vi]
		next := m.Vertices[f.Verts[(i+1)%len(f.Verts)]]
		n[0] += (cur.Y() - next.Y()) * (cur.Z() + next.Z())
		n[1] += (cur.Z() - next.Z()) * (cur.X() + next.X())
		n[2] += (cur.X() - next.X()) * (cur.Y() + next.Y())
	}
	return n
}

// VertexNormals returns one normal per vertex, averaged (area-weighted) over
// the smooth faces that use it. Vertices only referenced by flat faces get
// the zero vector; callers use FaceNormal for those.
func (m *Mesh) VertexNormals() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(m.Vertices))
	for _, f := range m.Faces {
		if !f.Smooth || len(f.Verts) < 3 {
			continue
		}
		n := m.areaNormal(f)
		for _, vi := range f.Verts {
			out[vi] = out[vi].Add(n)
		}
	}
	for i, n := range out {
		if n.LenSqr() > 0 {
			out[i] = n.Normalize()
		}
	}
	return out
}

// Triangles fans face f into triangles of vertex indices.
func Triangles(f Face) [][3]int {
	if len(f.Verts) < 3 {
		return nil
	}
	out := make([][3]int, 0, len(f.Verts)-2)
	for i := 1; i+1 < len(f.Verts); i++ {
		out = append(out, [3]int{f.Verts[0], f.Verts[i], f.Verts[i+1]})
	}
	return out
}
