package viewer

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Grid spacing in meters.
const (
	gridMinor   = 0.1
	gridMajor   = 0.5
	gridPadding = 0.25
)

var (
	gridMinorColor = rl.NewColor(128, 128, 128, 50)
	gridMajorColor = rl.NewColor(160, 160, 160, 120)
	gridAxisX      = rl.NewColor(220, 80, 80, 220)
	gridAxisZ      = rl.NewColor(80, 80, 220, 220)
)

// grid is a square ground grid under the character, in Y-up space.
type grid struct {
	center rl.Vector3 // on the ground, below the middle of the footprint
	half   float32    // half the side length; a multiple of gridMajor
}

// segment is one grid line.
type segment struct {
	from, to rl.Vector3
	major    bool
}

// gridFor sizes a grid to the Z-up bounds lo..hi: it covers the XY footprint
// plus gridPadding and sits at the height of the feet (lo Z).
func gridFor(lo, hi mgl32.Vec3) grid {
	size := max(hi[0]-lo[0], hi[1]-lo[1], 0)
	half := math32.Ceil((size/2+gridPadding)/gridMajor) * gridMajor
	snap := func(v float32) float32 { return math32.Round(v/gridMinor) * gridMinor }
	mid := lo.Add(hi).Mul(0.5)
	return grid{
		center: yUp(mgl32.Vec3{snap(mid[0]), snap(mid[1]), lo[2]}),
		half:   half,
	}
}

// lines lists the lines parallel to Z, then those parallel to X. Every
// fifth line, counted from the edge, is major; the middle one always is.
func (g grid) lines() []segment {
	n := int(math32.Round(2 * g.half / gridMinor))
	every := int(math32.Round(gridMajor / gridMinor))
	c := g.center
	out := make([]segment, 0, 2*(n+1))
	for i := 0; i <= n; i++ {
		x := c.X - g.half + float32(i)*gridMinor
		out = append(out, segment{
			from:  rl.NewVector3(x, c.Y, c.Z-g.half),
			to:    rl.NewVector3(x, c.Y, c.Z+g.half),
			major: i%every == 0,
		})
	}
	for i := 0; i <= n; i++ {
		z := c.Z - g.half + float32(i)*gridMinor
		out = append(out, segment{
			from:  rl.NewVector3(c.X-g.half, c.Y, z),
			to:    rl.NewVector3(c.X+g.half, c.Y, z),
			major: i%every == 0,
		})
	}
	return out
}

// draw renders the lines, then the two center lines in the axis colors.
func (g grid) draw() {
	for _, s := range g.lines() {
		col := gridMinorColor
		if s.major {
			col = gridMajorColor
		}
		rl.DrawLine3D(s.from, s.to, col)
	}
	c := g.center
	rl.DrawLine3D(rl.NewVector3(c.X-g.half, c.Y, c.Z), rl.NewVector3(c.X+g.half, c.Y, c.Z), gridAxisX)
	rl.DrawLine3D(rl.NewVector3(c.X, c.Y, c.Z-g.half), rl.NewVector3(c.X, c.Y, c.Z+g.half), gridAxisZ)
}
