package export

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herogen/internal/character"
	"herogen/internal/materials"
	"herogen/internal/primitives"
	"herogen/internal/scene"
)

func readGLB(t *testing.T, path string) (gltfDoc, []byte) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(data), 20)

	le := binary.LittleEndian
	require.Equal(t, uint32(glbMagic), le.Uint32(data[0:]))
	require.Equal(t, uint32(2), le.Uint32(data[4:]))
	require.Equal(t, uint32(len(data)), le.Uint32(data[8:]))

	jsonLen := int(le.Uint32(data[12:]))
	require.Equal(t, uint32(chunkJSON), le.Uint32(data[16:]))
	require.Zero(t, jsonLen%4)
	var doc gltfDoc
	require.NoError(t, json.Unmarshal(data[20:20+jsonLen], &doc))

	rest := data[20+jsonLen:]
	if len(rest) == 0 {
		return doc, nil
	}
	binLen := int(le.Uint32(rest[0:]))
	require.Equal(t, uint32(chunkBIN), le.Uint32(rest[4:]))
	require.Zero(t, binLen%4)
	return doc, rest[8 : 8+binLen]
}

func cubeScene(t *testing.T, loc [3]float32) (*scene.Scene, *scene.Object) {
	t.Helper()
	s := scene.New()
	o, err := s.AddPrimitive(primitives.Def{
		Name:     "Box",
		Type:     primitives.KindCube,
		Params:   primitives.Params{Size: 1},
		Location: loc,
	})
	require.NoError(t, err)
	return s, o
}

func TestExportCharacterGLB(t *testing.T) {
	s := scene.New()
	mats := materials.Build(s)
	var parts []character.BodyPart
	for _, build := range character.Builders() {
		p, err := build(s, mats)
		require.NoError(t, err)
		parts = append(parts, p)
	}
	_, err := character.Assemble(s, parts)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "Assets", "_Game", "Models", "Hero.glb")
	res, err := Export(s, path, DefaultOptions())
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), res.Bytes)
	assert.Equal(t, FormatGLB, res.Format)
	assert.Equal(t, 10, res.Nodes)
	assert.Equal(t, 9, res.Meshes)
	assert.Equal(t, 7, res.Materials) // DarkGrey is in the palette but unused
	assert.Positive(t, res.Triangles)

	doc, bin := readGLB(t, path)
	assert.Equal(t, "2.0", doc.Asset.Version)
	require.Len(t, doc.Nodes, 10)
	require.Len(t, doc.Scenes, 1)
	require.Len(t, doc.Scenes[0].Nodes, 1)
	root := doc.Nodes[doc.Scenes[0].Nodes[0]]
	assert.Equal(t, character.RootName, root.Name)
	assert.Nil(t, root.Mesh)
	assert.Len(t, root.Children, 9)
	require.Len(t, doc.Buffers, 1)
	assert.Equal(t, len(bin), doc.Buffers[0].ByteLength)
	assert.Empty(t, doc.Buffers[0].URI)

	for _, m := range doc.Materials {
		assert.Equal(t, float32(0.7), m.PBR.RoughnessFactor)
		assert.Zero(t, m.PBR.MetallicFactor)
	}
	for _, v := range doc.BufferViews {
		assert.LessOrEqual(t, v.ByteOffset+v.ByteLength, len(bin))
	}

	// Y up: the hat is the highest thing and sits above y=2.
	var top float32
	for _, a := range doc.Accessors {
		if len(a.Max) == 3 && a.Max[1] > top {
			top = a.Max[1]
		}
	}
	assert.Greater(t, top, float32(2))
}

func TestExportCreatesDirectories(t *testing.T) {
	s, _ := cubeScene(t, [3]float32{})
	path := filepath.Join(t.TempDir(), "a", "b", "c", "box.glb")
	_, err := Export(s, path, DefaultOptions())
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestExportFilesystemError(t *testing.T) {
	s, _ := cubeScene(t, [3]float32{})
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := Export(s, filepath.Join(blocker, "out", "box.glb"), DefaultOptions())
	require.Error(t, err)
	var fsErr *FilesystemError
	require.True(t, errors.As(err, &fsErr))
	assert.Equal(t, "mkdir", fsErr.Op)
}

func TestExportEmbeddedGLTF(t *testing.T) {
	s, _ := cubeScene(t, [3]float32{})
	path := filepath.Join(t.TempDir(), "box.gltf")
	res, err := Export(s, path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, FormatGLTF, res.Format)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc gltfDoc
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Buffers, 1)
	assert.True(t, strings.HasPrefix(doc.Buffers[0].URI, "data:application/octet-stream;base64,"))
	require.Len(t, doc.Meshes, 1)
	prim := doc.Meshes[0].Primitives[0]
	assert.Nil(t, prim.Material)
	// Flat cube: four corners per face.
	assert.Equal(t, 24, doc.Accessors[prim.Attributes["POSITION"]].Count)
	assert.Equal(t, 36, doc.Accessors[prim.Indices].Count)
}

func TestSmoothing(t *testing.T) {
	s, o := cubeScene(t, [3]float32{})
	require.NoError(t, s.ShadeSmooth(o, true))

	count := func(opts Options) int {
		doc := newDocument(s.Objects(), opts)
		surfaces := doc.nodes[0].surfaces()
		require.Len(t, surfaces, 1)
		return len(surfaces[0].positions)
	}
	opts := DefaultOptions()
	assert.Equal(t, 8, count(opts))
	opts.Smoothing = SmoothOff
	assert.Equal(t, 24, count(opts))
}

func TestUpAxis(t *testing.T) {
	s, _ := cubeScene(t, [3]float32{0, 0, 5})
	for _, tc := range []struct {
		up   UpAxis
		axis int
	}{{UpY, 1}, {UpZ, 2}} {
		opts := DefaultOptions()
		opts.UpAxis = tc.up
		doc := newDocument(s.Objects(), opts)
		lo, hi := doc.nodes[0].mesh.Bounds()
		assert.InDelta(t, 4.5, lo[tc.axis], 1e-5, tc.up)
		assert.InDelta(t, 5.5, hi[tc.axis], 1e-5, tc.up)
	}
}

func TestUnbakedTransforms(t *testing.T) {
	s, box := cubeScene(t, [3]float32{1, 2, 3})
	root := s.AddEmpty("Root", mgl32.Vec3{0, 0, 1})
	require.NoError(t, s.SetParent(box, root))

	opts := DefaultOptions()
	opts.SelectionOnly = false
	opts.BakeTransforms = false
	doc := newDocument(s.Objects(), opts)
	require.Len(t, doc.nodes, 2)

	boxNode, rootNode := doc.nodes[0], doc.nodes[1]
	assert.Equal(t, 1, boxNode.parent)
	assert.Equal(t, -1, rootNode.parent)
	// Z-up translations come out Y-up: (x, y, z) -> (x, z, -y).
	assert.Equal(t, mgl32.Vec3{1, 3, -2}, boxNode.matrix.Col(3).Vec3())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, rootNode.matrix.Col(3).Vec3())

	world := rootNode.matrix.Mul4(boxNode.matrix)
	lo, _ := boxNode.mesh.Bounds()
	got := mgl32.TransformCoordinate(lo, world)
	assert.True(t, got.ApproxEqualThreshold(mgl32.Vec3{0.5, 3.5, -2.5}, 1e-5), "got %v", got)
}

func TestSelectionAndEmpties(t *testing.T) {
	s, box := cubeScene(t, [3]float32{})
	root := s.AddEmpty("Root", mgl32.Vec3{})
	require.NoError(t, s.SetParent(box, root))
	_, err := s.AddPrimitive(primitives.Def{Name: "Other", Type: primitives.KindCube})
	require.NoError(t, err)
	s.DeselectAll()
	s.Select(box, root)

	opts := DefaultOptions()
	assert.Len(t, newDocument(s.Selected(), opts).nodes, 2)

	opts.IncludeEmpties = false
	doc := newDocument(s.Selected(), opts)
	require.Len(t, doc.nodes, 1)
	assert.Equal(t, "Box", doc.nodes[0].name)
	assert.Equal(t, -1, doc.nodes[0].parent)
}

func TestExportOBJ(t *testing.T) {
	s, box := cubeScene(t, [3]float32{0, 0, 1})
	red := s.GetOrCreateMaterial("Red Paint", [4]float32{1, 0, 0, 1}, 0.5)
	require.NoError(t, s.AssignMaterial(box, red))
	root := s.AddEmpty("Root", mgl32.Vec3{})
	require.NoError(t, s.SetParent(box, root))
	s.Select(box)

	path := filepath.Join(t.TempDir(), "out", "box.obj")
	res, err := Export(s, path, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, res.Files, 2)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "box.mtl"), res.Files[1])

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	counts := map[string]int{}
	for _, l := range lines {
		counts[strings.Fields(l)[0]]++
	}
	assert.Equal(t, 8, counts["v"])
	assert.Equal(t, 6, counts["vn"])
	assert.Equal(t, 6, counts["f"])
	assert.Equal(t, 2, counts["o"])
	assert.Equal(t, 1, counts["usemtl"])
	assert.Contains(t, lines, "mtllib box.mtl")
	assert.Contains(t, lines, "usemtl Red_Paint")
	assert.Contains(t, lines, "s off")

	mtl, err := os.ReadFile(res.Files[1])
	require.NoError(t, err)
	assert.Contains(t, string(mtl), "newmtl Red_Paint\nKd 1 0 0\nd 1\nNs 225\nPr 0.5\nillum 2\n")
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("Hero.GLB")
	require.NoError(t, err)
	assert.Equal(t, FormatGLB, f)

	_, err = FormatFromPath("Hero.fbx")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	s, _ := cubeScene(t, [3]float32{})
	_, err = Export(s, filepath.Join(t.TempDir(), "hero.fbx"), DefaultOptions())
	assert.ErrorIs(t, err, ErrUnknownFormat)

	opts := DefaultOptions()
	opts.Format = FormatGLB
	_, err = Export(s, filepath.Join(t.TempDir(), "hero.bin"), opts)
	assert.NoError(t, err)
}

func TestNum(t *testing.T) {
	assert.Equal(t, "0", num(0))
	assert.Equal(t, "0", num(-0.0000001))
	assert.Equal(t, "1.5", num(1.5))
	assert.Equal(t, "-2", num(-2))
	assert.Equal(t, "100", num(100))
}
