package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"herogen/internal/materials"
	"herogen/internal/mesh"
)

// Triangle is one world-space triangle ready for drawing. Normals are per
// corner: shared for smooth faces, the face normal for flat ones.
type Triangle struct {
	Verts    [3]mgl32.Vec3
	Normals  [3]mgl32.Vec3
	Material *materials.Spec
}

// Triangles flattens the mesh objects among objs into world-space triangles.
// Empties contribute nothing.
func Triangles(objs []*Object) []Triangle {
	var out []Triangle
	for _, o := range objs {
		if o.Mesh.IsEmpty() {
			continue
		}
		world := o.Mesh.Clone()
		world.Transform(o.WorldMatrix())
		smooth := world.VertexNormals()
		for _, f := range world.Faces {
			flat := world.FaceNormal(f)
			mat := o.MaterialAt(f.Material)
			for _, tri := range mesh.Triangles(f) {
				t := Triangle{Material: mat}
				for k, vi := range tri {
					t.Verts[k] = world.Vertices[vi]
					t.Normals[k] = flat
					if f.Smooth && smooth[vi].LenSqr() > 0 {
						t.Normals[k] = smooth[vi]
					}
				}
				out = append(out, t)
			}
		}
	}
	return out
}
