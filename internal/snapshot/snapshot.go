package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"herogen/internal/scene"
)

// View is the direction the orthographic camera looks from.
type View string

const (
	// Front looks at the character's face (from -Y).
	Front View = "front"
	// Side looks at the character's right side (from +X).
	Side View = "side"
)

const (
	ambient = 0.25
	margin  = 0.06
	gamma   = 1 / 2.2
)

// Options controls the thumbnail.
type Options struct {
	Size        int
	Supersample int
	View        View
	Background  color.RGBA
}

// DefaultOptions renders a 512px front view on a dark backdrop.
func DefaultOptions() Options {
	return Options{
		Size:        512,
		Supersample: 2,
		View:        Front,
		Background:  color.RGBA{R: 38, G: 40, B: 46, A: 255},
	}
}

// basis is the camera frame: screen right, screen up and the viewing
// direction. Depth grows along forward.
type basis struct {
	right, up, forward mgl32.Vec3
}

func basisFor(v View) basis {
	if v == Side {
		return basis{right: mgl32.Vec3{0, 1, 0}, up: mgl32.Vec3{0, 0, 1}, forward: mgl32.Vec3{-1, 0, 0}}
	}
	return basis{right: mgl32.Vec3{1, 0, 0}, up: mgl32.Vec3{0, 0, 1}, forward: mgl32.Vec3{0, 1, 0}}
}

// Render rasterises tris with a z-buffer and Lambert shading, supersampled
// and then filtered down to opts.Size.
func Render(tris []scene.Triangle, opts Options) (*image.RGBA, error) {
	if opts.Size <= 0 {
		return nil, fmt.Errorf("snapshot: invalid size %d", opts.Size)
	}
	if opts.Supersample < 1 {
		opts.Supersample = 1
	}
	n := opts.Size * opts.Supersample
	img := image.NewRGBA(image.Rect(0, 0, n, n))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = opts.Background.R, opts.Background.G, opts.Background.B, opts.Background.A
	}

	r := newRaster(img, basisFor(opts.View))
	r.fit(tris)
	for _, t := range tris {
		r.draw(t)
	}
	if opts.Supersample == 1 {
		return img, nil
	}
	return transform.Resize(img, opts.Size, opts.Size, transform.Lanczos), nil
}

// Save writes img as PNG, creating parent directories.
func Save(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}
	}
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("snapshot: save %s: %w", path, err)
	}
	return nil
}

type raster struct {
	img    *image.RGBA
	depth  []float32
	view   basis
	light  mgl32.Vec3
	scale  float32
	center [2]float32
}

func newRaster(img *image.RGBA, view basis) *raster {
	depth := make([]float32, img.Rect.Dx()*img.Rect.Dy())
	for i := range depth {
		depth[i] = math32.Inf(1)
	}
	// Key light from the camera side, up and to the left.
	light := view.forward.Mul(-1).Add(view.up.Mul(0.6)).Sub(view.right.Mul(0.4)).Normalize()
	return &raster{img: img, depth: depth, view: view, light: light, scale: 1}
}

// fit centres the projected bounds of tris and scales them to the image
// minus a margin.
func (r *raster) fit(tris []scene.Triangle) {
	if len(tris) == 0 {
		return
	}
	first := r.project(tris[0].Verts[0])
	lo := [2]float32{first[0], first[1]}
	hi := lo
	for _, t := range tris {
		for _, v := range t.Verts {
			p := r.project(v)
			for i := 0; i < 2; i++ {
				mgl32.SetMin(&lo[i], &p[i])
				mgl32.SetMax(&hi[i], &p[i])
			}
		}
	}
	extent := max(hi[0]-lo[0], hi[1]-lo[1])
	if extent == 0 {
		extent = 1
	}
	size := float32(r.img.Rect.Dx())
	r.scale = size * (1 - 2*margin) / extent
	r.center = [2]float32{(lo[0] + hi[0]) / 2, (lo[1] + hi[1]) / 2}
}

// project returns view-space (right, up, depth).
func (r *raster) project(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v.Dot(r.view.right), v.Dot(r.view.up), v.Dot(r.view.forward)}
}

func (r *raster) toScreen(v mgl32.Vec3) mgl32.Vec3 {
	p := r.project(v)
	half := float32(r.img.Rect.Dx()) / 2
	return mgl32.Vec3{
		half + (p[0]-r.center[0])*r.scale,
		half - (p[1]-r.center[1])*r.scale,
		p[2],
	}
}

func edge(a, b mgl32.Vec3, x, y float32) float32 {
	return (b[0]-a[0])*(y-a[1]) - (b[1]-a[1])*(x-a[0])
}

func (r *raster) draw(t scene.Triangle) {
	a, b, c := r.toScreen(t.Verts[0]), r.toScreen(t.Verts[1]), r.toScreen(t.Verts[2])
	area := edge(a, b, c[0], c[1])
	if area == 0 {
		return
	}
	w, h := r.img.Rect.Dx(), r.img.Rect.Dy()
	x0 := max(0, int(math32.Floor(min(a[0], b[0], c[0]))))
	x1 := min(w-1, int(math32.Ceil(max(a[0], b[0], c[0]))))
	y0 := max(0, int(math32.Floor(min(a[1], b[1], c[1]))))
	y1 := min(h-1, int(math32.Ceil(max(a[1], b[1], c[1]))))

	base := mgl32.Vec3{0.8, 0.8, 0.8}
	if t.Material != nil {
		base = mgl32.Vec3{t.Material.BaseColor[0], t.Material.BaseColor[1], t.Material.BaseColor[2]}
	}

	for y := y0; y <= y1; y++ {
		py := float32(y) + 0.5
		for x := x0; x <= x1; x++ {
			px := float32(x) + 0.5
			w0 := edge(b, c, px, py) / area
			w1 := edge(c, a, px, py) / area
			w2 := edge(a, b, px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*a[2] + w1*b[2] + w2*c[2]
			i := y*w + x
			if z >= r.depth[i] {
				continue
			}
			r.depth[i] = z
			n := t.Normals[0].Mul(w0).Add(t.Normals[1].Mul(w1)).Add(t.Normals[2].Mul(w2))
			if n.LenSqr() > 0 {
				n = n.Normalize()
			}
			shade := ambient + (1-ambient)*max(0, n.Dot(r.light))
			r.img.SetRGBA(x, y, color.RGBA{
				R: encode(base[0] * shade),
				G: encode(base[1] * shade),
				B: encode(base[2] * shade),
				A: 255,
			})
		}
	}
}

// encode converts a linear channel to 8-bit sRGB (approximated by gamma 2.2).
func encode(c float32) uint8 {
	c = mgl32.Clamp(c, 0, 1)
	return uint8(math32.Pow(c, gamma)*255 + 0.5)
}
