package snapshot

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herogen/internal/primitives"
	"herogen/internal/scene"
)

func litCube(t *testing.T) []scene.Triangle {
	t.Helper()
	s := scene.New()
	o, err := s.AddPrimitive(primitives.Def{Name: "Box", Type: primitives.KindCube, Params: primitives.Params{Size: 1}})
	require.NoError(t, err)
	white := s.GetOrCreateMaterial("White", [4]float32{1, 1, 1, 1}, 0.5)
	require.NoError(t, s.AssignMaterial(o, white))
	return scene.Triangles(s.Objects())
}

// assertNear allows for rounding in the downsampling filter.
func assertNear(t *testing.T, want, got color.RGBA) {
	t.Helper()
	assert.InDelta(t, want.R, got.R, 1)
	assert.InDelta(t, want.G, got.G, 1)
	assert.InDelta(t, want.B, got.B, 1)
	assert.InDelta(t, want.A, got.A, 1)
}

func TestRenderCube(t *testing.T) {
	opts := DefaultOptions()
	opts.Size = 64
	img, err := Render(litCube(t), opts)
	require.NoError(t, err)
	require.Equal(t, 64, img.Bounds().Dx())
	require.Equal(t, 64, img.Bounds().Dy())

	assertNear(t, opts.Background, img.RGBAAt(0, 0))
	centre := img.RGBAAt(32, 32)
	assert.NotEqual(t, opts.Background, centre)
	// The front face is lit, and white stays neutral.
	assert.Greater(t, centre.R, opts.Background.R)
	assert.Equal(t, centre.R, centre.G)
	assert.Equal(t, centre.G, centre.B)
}

func TestRenderNothing(t *testing.T) {
	opts := DefaultOptions()
	opts.Size = 16
	opts.Supersample = 1
	img, err := Render(nil, opts)
	require.NoError(t, err)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			require.Equal(t, opts.Background, img.RGBAAt(x, y))
		}
	}
}

func TestRenderInvalidSize(t *testing.T) {
	_, err := Render(nil, Options{Size: 0})
	assert.Error(t, err)
}

func TestSave(t *testing.T) {
	opts := DefaultOptions()
	opts.Size = 32
	opts.Supersample = 1
	opts.View = Side
	img, err := Render(litCube(t), opts)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "thumbs", "hero.png")
	require.NoError(t, Save(path, img))

	back, err := imgio.Open(path)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), back.Bounds())
	r, g, b, a := back.At(16, 16).RGBA()
	want := img.RGBAAt(16, 16)
	assert.Equal(t, uint32(want.R)*0x101, r)
	assert.Equal(t, uint32(want.G)*0x101, g)
	assert.Equal(t, uint32(want.B)*0x101, b)
	assert.Equal(t, uint32(0xffff), a)
}

func TestEncode(t *testing.T) {
	assert.Equal(t, uint8(0), encode(-1))
	assert.Equal(t, uint8(255), encode(1))
	assert.Equal(t, uint8(255), encode(2))
	assert.Greater(t, encode(0.2), uint8(0.2*255))
}
