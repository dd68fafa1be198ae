package primitives

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"herogen/internal/mesh"
)

// Cube returns an axis-aligned cube with edge length p.Size: 8 vertices, 6 quads.
func Cube(p Params) (*mesh.Mesh, error) {
	size := p.Size
	if size == 0 {
		size = defaultSize
	}
	if size < 0 {
		return nil, invalid(KindCube, "size %v", size)
	}
	h := size / 2
	m := &mesh.Mesh{
		Vertices: []mgl32.Vec3{
			{-h, -h, -h}, {h, -h, -h}, {h, h, -h}, {-h, h, -h},
			{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h},
		},
		Faces: []mesh.Face{
			{Verts: []int{0, 3, 2, 1}}, // -z
			{Verts: []int{4, 5, 6, 7}}, // +z
			{Verts: []int{0, 1, 5, 4}}, // -y
			{Verts: []int{2, 3, 7, 6}}, // +y
			{Verts: []int{3, 0, 4, 7}}, // -x
			{Verts: []int{1, 2, 6, 5}}, // +x
		},
	}
	return m, nil
}

// UVSphere returns a latitude/longitude sphere: two poles plus Rings-1
// rings of Segments vertices. Pole caps are triangle fans, the rest quads.
func UVSphere(p Params) (*mesh.Mesh, error) {
	radius, segs, rings := p.Radius, p.Segments, p.Rings
	if radius == 0 {
		radius = defaultRadius
	}
	if segs == 0 {
		segs = defaultSegments
	}
	if rings == 0 {
		rings = defaultRings
	}
	if radius < 0 || segs < 3 || rings < 3 {
		return nil, invalid(KindSphere, "radius %v segments %d rings %d", radius, segs, rings)
	}

	m := &mesh.Mesh{Vertices: make([]mgl32.Vec3, 0, 2+(rings-1)*segs)}
	top := 0
	m.Vertices = append(m.Vertices, mgl32.Vec3{0, 0, radius})
	for i := 1; i < rings; i++ {
		sinPhi, cosPhi := math32.Sincos(math32.Pi * float32(i) / float32(rings))
		for j := 0; j < segs; j++ {
			sinT, cosT := math32.Sincos(2 * math32.Pi * float32(j) / float32(segs))
			m.Vertices = append(m.Vertices, mgl32.Vec3{
				radius * sinPhi * cosT,
				radius * sinPhi * sinT,
				radius * cosPhi,
			})
		}
	}
	bottom := len(m.Vertices)
	m.Vertices = append(m.Vertices, mgl32.Vec3{0, 0, -radius})

	ring := func(i, j int) int { return 1 + (i-1)*segs + j%segs }
	for j := 0; j < segs; j++ {
		m.Faces = append(m.Faces, mesh.Face{Verts: []int{top, ring(1, j), ring(1, j+1)}})
	}
	for i := 1; i < rings-1; i++ {
		for j := 0; j < segs; j++ {
			m.Faces = append(m.Faces, mesh.Face{Verts: []int{
				ring(i, j), ring(i+1, j), ring(i+1, j+1), ring(i, j+1),
			}})
		}
	}
	for j := 0; j < segs; j++ {
		m.Faces = append(m.Faces, mesh.Face{Verts: []int{bottom, ring(rings-1, j+1), ring(rings-1, j)}})
	}
	return m, nil
}

// Cylinder returns a Z-aligned cylinder of height Depth with n-gon caps.
func Cylinder(p Params) (*mesh.Mesh, error) {
	radius, depth, n := p.Radius, p.Depth, p.Vertices
	if radius == 0 {
		radius = defaultRadius
	}
	if depth == 0 {
		depth = defaultDepth
	}
	if n == 0 {
		n = defaultVertices
	}
	if radius < 0 || depth < 0 || n < 3 {
		return nil, invalid(KindCylinder, "radius %v depth %v vertices %d", radius, depth, n)
	}
	return frustum(n, radius, radius, depth), nil
}

// Cone returns a Z-aligned cone with base radius Radius and top radius
// Radius2. A zero Radius2 closes the top into a single apex vertex.
func Cone(p Params) (*mesh.Mesh, error) {
	r1, r2, depth, n := p.Radius, p.Radius2, p.Depth, p.Vertices
	if r1 == 0 {
		r1 = defaultRadius
	}
	if depth == 0 {
		depth = defaultDepth
	}
	if n == 0 {
		n = defaultVertices
	}
	if r1 < 0 || r2 < 0 || depth < 0 || n < 3 {
		return nil, invalid(KindCone, "radius %v radius2 %v depth %v vertices %d", r1, r2, depth, n)
	}
	if r2 > 0 {
		return frustum(n, r1, r2, depth), nil
	}

	h := depth / 2
	m := &mesh.Mesh{Vertices: circle(n, r1, -h)}
	apex := len(m.Vertices)
	m.Vertices = append(m.Vertices, mgl32.Vec3{0, 0, h})
	for j := 0; j < n; j++ {
		m.Faces = append(m.Faces, mesh.Face{Verts: []int{j, (j + 1) % n, apex}})
	}
	m.Faces = append(m.Faces, mesh.Face{Verts: reversedRange(0, n)})
	return m, nil
}

// frustum builds a capped tube with bottom radius r1 and top radius r2.
func frustum(n int, r1, r2, depth float32) *mesh.Mesh {
	h := depth / 2
	m := &mesh.Mesh{}
	m.Vertices = append(m.Vertices, circle(n, r1, -h)...)
	m.Vertices = append(m.Vertices, circle(n, r2, h)...)
	for j := 0; j < n; j++ {
		next := (j + 1) % n
		m.Faces = append(m.Faces, mesh.Face{Verts: []int{j, next, n + next, n + j}})
	}
	top := make([]int, n)
	for j := range top {
		top[j] = n + j
	}
	m.Faces = append(m.Faces, mesh.Face{Verts: top})
	m.Faces = append(m.Faces, mesh.Face{Verts: reversedRange(0, n)})
	return m
}

// circle returns n points counter-clockwise around +Z at height z.
func circle(n int, radius, z float32) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, n)
	for j := range out {
		sin, cos := math32.Sincos(2 * math32.Pi * float32(j) / float32(n))
		out[j] = mgl32.Vec3{radius * cos, radius * sin, z}
	}
	return out
}

func reversedRange(from, to int) []int {
	out := make([]int, 0, to-from)
	for i := to - 1; i >= from; i-- {
		out = append(out, i)
	}
	return out
}
