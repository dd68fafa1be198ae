package export

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"herogen/internal/materials"
	"herogen/internal/mesh"
	"herogen/internal/scene"
)

// document is the format-neutral form of an export: nodes in scene order,
// meshes already converted to the target axis, and the materials they use.
type document struct {
	nodes     []node
	materials []*materials.Spec
	smoothing Smoothing
}

type node struct {
	name   string
	parent int // index into document.nodes, -1 for top level
	matrix mgl32.Mat4
	mesh   *mesh.Mesh
	// slots maps the mesh's material slots to document.materials; -1 is the default material.
	slots []int
}

// axisMatrix converts the Z-up modelling space to the requested up axis.
// For Y up, (x, y, z) becomes (x, z, -y), keeping the character facing +Z.
func axisMatrix(up UpAxis) mgl32.Mat4 {
	if up == UpZ {
		return mgl32.Ident4()
	}
	return mgl32.Mat4{
		1, 0, 0, 0,
		0, 0, -1, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
	}
}

func newDocument(objs []*scene.Object, opts Options) *document {
	if !opts.IncludeEmpties {
		objs = slices.DeleteFunc(slices.Clone(objs), func(o *scene.Object) bool {
			return o.Kind == scene.KindEmpty
		})
	}
	doc := &document{smoothing: opts.Smoothing}
	axis := axisMatrix(opts.UpAxis)
	axisT := axis.Transpose()

	for _, o := range objs {
		n := node{name: o.Name, parent: slices.Index(objs, o.Parent())}
		switch {
		case opts.BakeTransforms:
			n.matrix = mgl32.Ident4()
		case n.parent < 0:
			n.matrix = axis.Mul4(o.WorldMatrix()).Mul4(axisT)
		default:
			n.matrix = axis.Mul4(o.LocalMatrix()).Mul4(axisT)
		}

		if !o.Mesh.IsEmpty() {
			m := o.Mesh.Clone()
			if opts.BakeTransforms {
				m.Transform(axis.Mul4(o.WorldMatrix()))
			} else {
				m.Transform(axis)
			}
			if opts.Smoothing == SmoothOff {
				m.SetSmooth(false)
			}
			n.mesh = m
			n.slots = doc.slotIndices(o)
		}
		doc.nodes = append(doc.nodes, n)
	}
	return doc
}

// slotIndices registers o's materials and returns their document indices.
func (d *document) slotIndices(o *scene.Object) []int {
	used := make(map[int]bool)
	for _, f := range o.Mesh.Faces {
		used[f.Material] = true
	}
	n := max(len(o.Materials), 1)
	out := make([]int, n)
	for i := range out {
		m := o.MaterialAt(i)
		if m == nil || !used[i] {
			out[i] = -1
			continue
		}
		j := slices.Index(d.materials, m)
		if j < 0 {
			j = len(d.materials)
			d.materials = append(d.materials, m)
		}
		out[i] = j
	}
	return out
}

func (d *document) meshCount() int {
	n := 0
	for _, nd := range d.nodes {
		if nd.mesh != nil {
			n++
		}
	}
	return n
}

func (d *document) triangleCount() int {
	n := 0
	for _, nd := range d.nodes {
		if nd.mesh != nil {
			n += nd.mesh.TriangleCount()
		}
	}
	return n
}

// materialOf returns the document material index for face slot i.
func (n *node) materialOf(slot int) int {
	if slot < 0 || slot >= len(n.slots) {
		return -1
	}
	return n.slots[slot]
}

// surface is one material's worth of indexed triangles with per-corner normals.
type surface struct {
	material  int
	positions []mgl32.Vec3
	normals   []mgl32.Vec3
	indices   []uint32
}

// cornerKey identifies an output vertex: smooth corners are shared by
// position index, flat corners are unique to their face.
type cornerKey struct {
	vert int
	face int
}

// surfaces splits n's mesh by material in order of first use.
func (n *node) surfaces() []*surface {
	m := n.mesh
	smooth := m.VertexNormals()
	var out []*surface
	byMaterial := map[int]*surface{}
	seen := map[int]map[cornerKey]uint32{}

	for fi, f := range m.Faces {
		mat := n.materialOf(f.Material)
		s, ok := byMaterial[mat]
		if !ok {
			s = &surface{material: mat}
			byMaterial[mat] = s
			seen[mat] = map[cornerKey]uint32{}
			out = append(out, s)
		}
		flat := m.FaceNormal(f)
		for _, tri := range mesh.Triangles(f) {
			for _, vi := range tri {
				key := cornerKey{vert: vi, face: fi}
				normal := flat
				if f.Smooth && smooth[vi].LenSqr() > 0 {
					key.face = -1
					normal = smooth[vi]
				}
				idx, ok := seen[mat][key]
				if !ok {
					idx = uint32(len(s.positions))
					s.positions = append(s.positions, m.Vertices[vi])
					s.normals = append(s.normals, normal)
					seen[mat][key] = idx
				}
				s.indices = append(s.indices, idx)
			}
		}
	}
	return out
}
