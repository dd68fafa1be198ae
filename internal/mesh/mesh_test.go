package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quad() *Mesh {
	return &Mesh{
		Vertices: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		Faces:    []Face{{Verts: []int{0, 1, 2, 3}}},
	}
}

func TestCounts(t *testing.T) {
	m := quad()
	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, 1, m.FaceCount())
	assert.Equal(t, 2, m.TriangleCount())
	assert.False(t, m.IsEmpty())

	var nilMesh *Mesh
	assert.True(t, nilMesh.IsEmpty())
}

func TestCloneIsDeep(t *testing.T) {
	m := quad()
	c := m.Clone()
	require.Equal(t, m, c)

	c.Vertices[0] = mgl32.Vec3{9, 9, 9}
	c.Faces[0].Verts[0] = 3
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, m.Vertices[0])
	assert.Equal(t, 0, m.Faces[0].Verts[0])
}

func TestFaceNormalFollowsWinding(t *testing.T) {
	m := quad()
	assert.True(t, m.FaceNormal(m.Faces[0]).ApproxEqual(mgl32.Vec3{0, 0, 1}))

	m.Transform(mgl32.Scale3D(1, 1, -1))
	// Mirroring reverses the loop, so the normal is mirrored along with the positions.
	assert.True(t, m.FaceNormal(m.Faces[0]).ApproxEqual(mgl32.Vec3{0, 0, -1}))
}

func TestTransformTranslates(t *testing.T) {
	m := quad()
	m.Transform(mgl32.Translate3D(0, 0, 2))
	lo, hi := m.Bounds()
	assert.Equal(t, mgl32.Vec3{0, 0, 2}, lo)
	assert.Equal(t, mgl32.Vec3{1, 1, 2}, hi)
}

func TestAppendOffsetsAndRemapsSlots(t *testing.T) {
	m := quad()
	other := quad()
	other.Faces[0].Material = 0
	other.Faces[0].Smooth = true

	m.Append(other, []int{2})
	require.Equal(t, 8, m.VertexCount())
	require.Equal(t, 2, m.FaceCount())
	assert.Equal(t, []int{4, 5, 6, 7}, m.Faces[1].Verts)
	assert.Equal(t, 2, m.Faces[1].Material)
	assert.True(t, m.Faces[1].Smooth)
}

func TestVertexNormalsOnlyCountSmoothFaces(t *testing.T) {
	// Two quads sharing the edge 1-2, folded 90 degrees.
	m := &Mesh{
		Vertices: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}, {1, 0, -1}, {1, 1, -1}},
		Faces: []Face{
			{Verts: []int{0, 1, 2, 3}, Smooth: true},
			{Verts: []int{1, 4, 5, 2}, Smooth: true},
		},
	}
	vn := m.VertexNormals()
	shared := mgl32.Vec3{1, 0, 1}.Normalize()
	assert.True(t, vn[1].ApproxEqualThreshold(shared, 1e-5), "got %v", vn[1])
	assert.True(t, vn[0].ApproxEqual(mgl32.Vec3{0, 0, 1}))

	m.Faces[1].Smooth = false
	vn = m.VertexNormals()
	assert.True(t, vn[1].ApproxEqual(mgl32.Vec3{0, 0, 1}))
	assert.Equal(t, mgl32.Vec3{}, vn[4])
}

func TestTrianglesFan(t *testing.T) {
	tris := Triangles(Face{Verts: []int{0, 1, 2, 3, 4}})
	assert.Equal(t, [][3]int{{0, 1, 2}, {0, 2, 3}, {0, 3, 4}}, tris)
	assert.Nil(t, Triangles(Face{Verts: []int{0, 1}}))
}
