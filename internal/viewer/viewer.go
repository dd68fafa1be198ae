package viewer

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"herogen/internal/scene"
)

const (
	ambient     = 0.3
	fitDistance = 2.4
)

// triangle is a scene triangle converted to raylib's Y-up space with its
// shading baked into the color.
type triangle struct {
	a, b, c rl.Vector3
	color   rl.Color
}

// Viewer holds an orbit camera and the character's triangles. Update runs
// camera and key handling; Draw renders between BeginMode3D and EndMode3D
// and then the HUD.
type Viewer struct {
	Camera      rl.Camera3D
	GridVisible bool
	Orbit       bool
	tris        []triangle
	grid        grid
	hud         *hud
}

// New converts tris (Z-up world space) for drawing and frames the camera on
// them. info lines are shown in the top-left corner.
func New(tris []scene.Triangle, info []string) *Viewer {
	v := &Viewer{GridVisible: true, Orbit: true, hud: newHUD(info)}
	// Key light from the front left, above.
	light := mgl32.Vec3{-0.4, -0.8, 0.6}.Normalize()

	lo := mgl32.Vec3{math32.Inf(1), math32.Inf(1), math32.Inf(1)}
	hi := lo.Mul(-1)
	for _, t := range tris {
		n := t.Normals[0].Add(t.Normals[1]).Add(t.Normals[2])
		if n.LenSqr() > 0 {
			n = n.Normalize()
		}
		shade := ambient + (1-ambient)*max(0, n.Dot(light))
		base := mgl32.Vec3{0.8, 0.8, 0.8}
		if t.Material != nil {
			base = mgl32.Vec3{t.Material.BaseColor[0], t.Material.BaseColor[1], t.Material.BaseColor[2]}
		}
		c := base.Mul(shade)
		v.tris = append(v.tris, triangle{
			a:     yUp(t.Verts[0]),
			b:     yUp(t.Verts[1]),
			c:     yUp(t.Verts[2]),
			color: rl.NewColor(channel(c[0]), channel(c[1]), channel(c[2]), 255),
		})
		for _, p := range t.Verts {
			for i := 0; i < 3; i++ {
				mgl32.SetMin(&lo[i], &p[i])
				mgl32.SetMax(&hi[i], &p[i])
			}
		}
	}
	v.frame(lo, hi)
	return v
}

// yUp maps the Z-up modelling space onto raylib's Y-up world: (x, y, z) -> (x, z, -y).
func yUp(p mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(p[0], p[2], -p[1])
}

func channel(c float32) uint8 {
	return uint8(mgl32.Clamp(c, 0, 1)*255 + 0.5)
}

// frame points the camera at the bounds from the front (-Y in model space),
// far enough to see all of them, and fits the ground grid under them.
func (v *Viewer) frame(lo, hi mgl32.Vec3) {
	center := mgl32.Vec3{}
	extent := float32(2)
	if len(v.tris) > 0 {
		center = lo.Add(hi).Mul(0.5)
		size := hi.Sub(lo)
		extent = max(size[0], size[1], size[2])
	} else {
		lo, hi = mgl32.Vec3{}, mgl32.Vec3{}
	}
	v.grid = gridFor(lo, hi)
	target := yUp(center)
	v.Camera.Target = target
	v.Camera.Position = rl.NewVector3(target.X, target.Y+extent*0.3, target.Z+extent*fitDistance)
	v.Camera.Up = rl.NewVector3(0, 1, 0)
	v.Camera.Fovy = 45
	v.Camera.Projection = rl.CameraPerspective
}

// Update runs once per frame. Space toggles the orbit, G the grid and
// F1 the stats overlay.
func (v *Viewer) Update() {
	if rl.IsKeyPressed(rl.KeySpace) {
		v.Orbit = !v.Orbit
	}
	if rl.IsKeyPressed(rl.KeyG) {
		v.GridVisible = !v.GridVisible
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		v.hud.showStats = !v.hud.showStats
	}
	if v.Orbit {
		rl.UpdateCamera(&v.Camera, rl.CameraOrbital)
	}
}

// Draw renders the grid, the character and the HUD. Call between
// BeginDrawing and EndDrawing.
func (v *Viewer) Draw() {
	rl.BeginMode3D(v.Camera)
	if v.GridVisible {
		v.grid.draw()
	}
	for _, t := range v.tris {
		rl.DrawTriangle3D(t.a, t.b, t.c, t.color)
	}
	rl.EndMode3D()
	v.hud.draw(len(v.tris))
}
