package export

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	glbMagic     = 0x46546C67 // "glTF"
	glbVersion   = 2
	chunkJSON    = 0x4E4F534A // "JSON"
	chunkBIN     = 0x004E4942 // "BIN\0"
	glbHeaderLen = 12

	componentFloat  = 5126
	componentUint32 = 5125

	targetArrayBuffer        = 34962
	targetElementArrayBuffer = 34963

	generator = "herogen"
)

type gltfDoc struct {
	Asset       gltfAsset        `json:"asset"`
	Scene       int              `json:"scene"`
	Scenes      []gltfScene      `json:"scenes"`
	Nodes       []gltfNode       `json:"nodes"`
	Meshes      []gltfMesh       `json:"meshes,omitempty"`
	Materials   []gltfMaterial   `json:"materials,omitempty"`
	Accessors   []gltfAccessor   `json:"accessors,omitempty"`
	BufferViews []gltfBufferView `json:"bufferViews,omitempty"`
	Buffers     []gltfBuffer     `json:"buffers,omitempty"`
}

type gltfAsset struct {
	Version   string `json:"version"`
	Generator string `json:"generator,omitempty"`
}

type gltfScene struct {
	Name  string `json:"name,omitempty"`
	Nodes []int  `json:"nodes"`
}

type gltfNode struct {
	Name     string       `json:"name,omitempty"`
	Children []int        `json:"children,omitempty"`
	Mesh     *int         `json:"mesh,omitempty"`
	Matrix   *[16]float32 `json:"matrix,omitempty"`
}

type gltfMesh struct {
	Name       string          `json:"name,omitempty"`
	Primitives []gltfPrimitive `json:"primitives"`
}

type gltfPrimitive struct {
	Attributes map[string]int `json:"attributes"`
	Indices    int            `json:"indices"`
	Material   *int           `json:"material,omitempty"`
}

type gltfMaterial struct {
	Name string  `json:"name,omitempty"`
	PBR  gltfPBR `json:"pbrMetallicRoughness"`
}

// metallicFactor defaults to 1 in glTF, so it is always written.
type gltfPBR struct {
	BaseColorFactor [4]float32 `json:"baseColorFactor"`
	MetallicFactor  float32    `json:"metallicFactor"`
	RoughnessFactor float32    `json:"roughnessFactor"`
}

type gltfAccessor struct {
	BufferView    int       `json:"bufferView"`
	ComponentType int       `json:"componentType"`
	Count         int       `json:"count"`
	Type          string    `json:"type"`
	Min           []float32 `json:"min,omitempty"`
	Max           []float32 `json:"max,omitempty"`
}

type gltfBufferView struct {
	Buffer     int `json:"buffer"`
	ByteOffset int `json:"byteOffset"`
	ByteLength int `json:"byteLength"`
	Target     int `json:"target,omitempty"`
}

type gltfBuffer struct {
	ByteLength int    `json:"byteLength"`
	URI        string `json:"uri,omitempty"`
}

// gltfBuilder accumulates the JSON document and the single binary buffer.
type gltfBuilder struct {
	doc gltfDoc
	bin bytes.Buffer
}

func (b *gltfBuilder) view(data []byte, target int) int {
	b.doc.BufferViews = append(b.doc.BufferViews, gltfBufferView{
		ByteOffset: b.bin.Len(),
		ByteLength: len(data),
		Target:     target,
	})
	b.bin.Write(data)
	return len(b.doc.BufferViews) - 1
}

func (b *gltfBuilder) vec3Accessor(vs []mgl32.Vec3, bounds bool) int {
	data := make([]byte, 0, len(vs)*12)
	for _, v := range vs {
		for _, c := range v {
			data = binary.LittleEndian.AppendUint32(data, math.Float32bits(c))
		}
	}
	acc := gltfAccessor{
		BufferView:    b.view(data, targetArrayBuffer),
		ComponentType: componentFloat,
		Count:         len(vs),
		Type:          "VEC3",
	}
	if bounds && len(vs) > 0 {
		lo, hi := vs[0], vs[0]
		for _, v := range vs[1:] {
			for i := 0; i < 3; i++ {
				mgl32.SetMin(&lo[i], &v[i])
				mgl32.SetMax(&hi[i], &v[i])
			}
		}
		acc.Min, acc.Max = lo[:], hi[:]
	}
	b.doc.Accessors = append(b.doc.Accessors, acc)
	return len(b.doc.Accessors) - 1
}

func (b *gltfBuilder) indexAccessor(idx []uint32) int {
	data := make([]byte, 0, len(idx)*4)
	for _, i := range idx {
		data = binary.LittleEndian.AppendUint32(data, i)
	}
	b.doc.Accessors = append(b.doc.Accessors, gltfAccessor{
		BufferView:    b.view(data, targetElementArrayBuffer),
		ComponentType: componentUint32,
		Count:         len(idx),
		Type:          "SCALAR",
	})
	return len(b.doc.Accessors) - 1
}

func (b *gltfBuilder) build(d *document) {
	b.doc.Asset = gltfAsset{Version: "2.0", Generator: generator}
	for _, m := range d.materials {
		b.doc.Materials = append(b.doc.Materials, gltfMaterial{
			Name: m.Name,
			PBR: gltfPBR{
				BaseColorFactor: m.BaseColor,
				RoughnessFactor: m.Roughness,
			},
		})
	}

	top := []int{}
	b.doc.Nodes = make([]gltfNode, len(d.nodes))
	for i := range d.nodes {
		n := &d.nodes[i]
		gn := gltfNode{Name: n.name}
		if n.matrix != mgl32.Ident4() {
			m := [16]float32(n.matrix)
			gn.Matrix = &m
		}
		if n.mesh != nil {
			mi := b.mesh(n)
			gn.Mesh = &mi
		}
		b.doc.Nodes[i] = gn
	}
	for i, n := range d.nodes {
		if n.parent < 0 {
			top = append(top, i)
			continue
		}
		p := &b.doc.Nodes[n.parent]
		p.Children = append(p.Children, i)
	}
	b.doc.Scenes = []gltfScene{{Name: "Scene", Nodes: top}}
}

func (b *gltfBuilder) mesh(n *node) int {
	gm := gltfMesh{Name: n.name}
	for _, s := range n.surfaces() {
		prim := gltfPrimitive{
			Attributes: map[string]int{
				"POSITION": b.vec3Accessor(s.positions, true),
				"NORMAL":   b.vec3Accessor(s.normals, false),
			},
			Indices: b.indexAccessor(s.indices),
		}
		if s.material >= 0 {
			mat := s.material
			prim.Material = &mat
		}
		gm.Primitives = append(gm.Primitives, prim)
	}
	b.doc.Meshes = append(b.doc.Meshes, gm)
	return len(b.doc.Meshes) - 1
}

// encodeGLTF serialises d as binary glTF (GLB) or as JSON with the buffer
// embedded as a base64 data URI.
func encodeGLTF(d *document, binaryContainer bool) ([]byte, error) {
	b := &gltfBuilder{}
	b.build(d)
	bin := b.bin.Bytes()

	if len(bin) > 0 {
		buf := gltfBuffer{ByteLength: len(bin)}
		if !binaryContainer {
			buf.URI = "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(bin)
		}
		b.doc.Buffers = []gltfBuffer{buf}
	}

	if !binaryContainer {
		return json.MarshalIndent(b.doc, "", "  ")
	}
	js, err := json.Marshal(b.doc)
	if err != nil {
		return nil, err
	}
	return glb(js, bin), nil
}

// glb wraps a JSON chunk and an optional BIN chunk in the GLB container.
// Chunks are padded to 4 bytes: JSON with spaces, BIN with zeros.
func glb(js, bin []byte) []byte {
	js = pad(js, ' ')
	bin = pad(bin, 0)
	total := glbHeaderLen + 8 + len(js)
	if len(bin) > 0 {
		total += 8 + len(bin)
	}
	out := make([]byte, 0, total)
	out = binary.LittleEndian.AppendUint32(out, glbMagic)
	out = binary.LittleEndian.AppendUint32(out, glbVersion)
	out = binary.LittleEndian.AppendUint32(out, uint32(total))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(js)))
	out = binary.LittleEndian.AppendUint32(out, chunkJSON)
	out = append(out, js...)
	if len(bin) > 0 {
		out = binary.LittleEndian.AppendUint32(out, uint32(len(bin)))
		out = binary.LittleEndian.AppendUint32(out, chunkBIN)
		out = append(out, bin...)
	}
	return out
}

func pad(b []byte, fill byte) []byte {
	for len(b)%4 != 0 {
		b = append(b, fill)
	}
	return b
}
