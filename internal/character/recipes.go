package character

import (
	"herogen/internal/deform"
	"herogen/internal/primitives"
)

// Piece is one primitive of a body part: what to generate, an optional
// vertex edit run after the transform is baked, and the palette key it is
// painted with. Spheres and cylinders shade smooth; other kinds only when
// Smooth is set.
type Piece struct {
	Def      primitives.Def
	Edit     deform.Rule
	Material string
	Smooth   bool
}

// Recipe lists the pieces joined into one named body part. The first piece
// is the join target, so the part's origin is its location.
type Recipe struct {
	Name   string
	Pieces []Piece
}

// Side picks the left or right limb.
type Side string

const (
	Left  Side = "L"
	Right Side = "R"
)

// Sign is -1 for the left side and +1 for the right; the character faces -Y.
func (s Side) Sign() float32 {
	if s == Left {
		return -1
	}
	return 1
}

func sphere(name string, radius float32, segments, rings int, loc [3]float32) primitives.Def {
	return primitives.Def{
		Name:     name,
		Type:     primitives.KindSphere,
		Params:   primitives.Params{Radius: radius, Segments: segments, Rings: rings},
		Location: loc,
	}
}

func cube(name string, size float32, loc [3]float32) primitives.Def {
	return primitives.Def{
		Name:     name,
		Type:     primitives.KindCube,
		Params:   primitives.Params{Size: size},
		Location: loc,
	}
}

func cylinder(name string, radius, depth float32, vertices int, loc [3]float32) primitives.Def {
	return primitives.Def{
		Name:     name,
		Type:     primitives.KindCylinder,
		Params:   primitives.Params{Radius: radius, Depth: depth, Vertices: vertices},
		Location: loc,
	}
}

func scaled(d primitives.Def, x, y, z float32) primitives.Def {
	d.Scale = [3]float32{x, y, z}
	return d
}

func rotatedZ(d primitives.Def, angle float32) primitives.Def {
	d.Rotation = [3]float32{0, 0, angle}
	return d
}

// HeadRecipe is an oval, pill-like head.
func HeadRecipe() Recipe {
	return Recipe{Name: "Head", Pieces: []Piece{
		{Def: scaled(sphere("Head", 0.32, 24, 16, [3]float32{0, 0, 1.65}), 1.0, 0.85, 1.25), Material: "skin"},
	}}
}

// SunglassesRecipe is a pair of wraparound shades: two lenses, a bridge and
// two temple arms running back along the head.
func SunglassesRecipe() Recipe {
	r := Recipe{Name: "Sunglasses", Pieces: []Piece{
		{Def: scaled(cube("Lens_L", 0.16, [3]float32{-0.12, -0.26, 1.70}), 1.3, 0.3, 0.7), Material: "black"},
		{Def: scaled(cube("Lens_R", 0.16, [3]float32{0.12, -0.26, 1.70}), 1.3, 0.3, 0.7), Material: "black"},
		{Def: scaled(cube("Bridge", 0.04, [3]float32{0, -0.27, 1.70}), 1.5, 0.4, 0.5), Material: "black"},
	}}
	for _, side := range []Side{Left, Right} {
		r.Pieces = append(r.Pieces, Piece{
			Def:      scaled(cube("GlassArm_"+string(side), 0.03, [3]float32{side.Sign() * 0.22, -0.12, 1.70}), 0.4, 5.0, 0.5),
			Material: "black",
		})
	}
	return r
}

// MaskRecipe is a bandana over the lower face, tapered to a point at the bottom.
func MaskRecipe() Recipe {
	return Recipe{Name: "Mask", Pieces: []Piece{
		{
			Def:      scaled(cube("Mask", 0.30, [3]float32{0, -0.20, 1.55}), 1.2, 0.5, 0.8),
			Edit:     deform.MaskTaper,
			Material: "bandana",
			Smooth:   true,
		},
	}}
}

// HatRecipe is a cowboy hat: a wide brim, a dome crown with a flat bottom
// and a band around the crown.
func HatRecipe() Recipe {
	return Recipe{Name: "CowboyHat", Pieces: []Piece{
		{Def: scaled(cylinder("HatBrim", 0.48, 0.04, 32, [3]float32{0, 0, 1.92}), 1.0, 0.85, 1.0), Material: "dark_brown"},
		{
			Def:      scaled(sphere("HatCrown", 0.24, 24, 12, [3]float32{0, 0, 2.02}), 1.0, 0.85, 0.7),
			Edit:     deform.CrownFlatten,
			Material: "dark_brown",
		},
		{Def: scaled(cylinder("HatBand", 0.25, 0.03, 32, [3]float32{0, 0, 1.94}), 1.0, 0.85, 1.0), Material: "black"},
	}}
}

// TorsoRecipe is a duster coat with broad shoulders, a narrow waist, neck,
// belt, buckle and flared coat tails.
func TorsoRecipe() Recipe {
	return Recipe{Name: "Torso", Pieces: []Piece{
		{Def: scaled(cube("Torso", 0.5, [3]float32{0, 0, 1.15}), 1.3, 0.7, 1.4), Edit: deform.TorsoShape, Material: "coat"},
		{Def: cylinder("Neck", 0.10, 0.12, 16, [3]float32{0, 0, 1.50}), Material: "skin"},
		{Def: scaled(cube("Belt", 0.1, [3]float32{0, 0, 0.82}), 3.2, 2.5, 0.5), Material: "belt"},
		{Def: scaled(cube("Buckle", 0.05, [3]float32{0, -0.19, 0.82}), 1.2, 0.5, 1.4), Material: "dark_brown"},
		{Def: scaled(cube("CoatTails", 0.45, [3]float32{0, 0, 0.60}), 1.15, 0.6, 0.8), Edit: deform.CoatFlare, Material: "coat"},
	}}
}

// ArmRecipe is an upper arm, forearm and mitten hand, angled slightly away
// from the body.
func ArmRecipe(side Side) Recipe {
	sign := side.Sign()
	shoulder := sign * 0.42
	forearm := shoulder + sign*0.05
	hand := forearm + sign*0.02
	s := string(side)
	return Recipe{Name: "Arm_" + s, Pieces: []Piece{
		{Def: rotatedZ(cylinder("UpperArm_"+s, 0.07, 0.35, 12, [3]float32{shoulder, 0, 1.22}), sign*0.1), Material: "coat"},
		{Def: rotatedZ(cylinder("Forearm_"+s, 0.06, 0.30, 12, [3]float32{forearm, 0, 0.90}), sign*0.05), Material: "skin"},
		{Def: scaled(sphere("Hand_"+s, 0.065, 12, 8, [3]float32{hand, 0, 0.72}), 0.9, 0.7, 1.2), Material: "skin"},
	}}
}

// LegRecipe is a thigh, shin and cowboy boot with a heel.
func LegRecipe(side Side) Recipe {
	hip := side.Sign() * 0.15
	s := string(side)
	return Recipe{Name: "Leg_" + s, Pieces: []Piece{
		{Def: cylinder("Thigh_"+s, 0.09, 0.35, 14, [3]float32{hip, 0, 0.45}), Material: "pants"},
		{Def: cylinder("Shin_"+s, 0.075, 0.32, 14, [3]float32{hip, 0, 0.12}), Material: "pants"},
		{Def: cylinder("BootShaft_"+s, 0.085, 0.15, 14, [3]float32{hip, 0, -0.08}), Material: "dark_brown"},
		{Def: scaled(cube("BootFoot_"+s, 0.14, [3]float32{hip, -0.04, -0.18}), 0.65, 1.4, 0.5), Material: "dark_brown"},
		{Def: scaled(cube("BootHeel_"+s, 0.04, [3]float32{hip, 0.06, -0.20}), 0.8, 0.8, 1.2), Material: "dark_brown"},
	}}
}

// Recipes returns every body part in build order.
func Recipes() []Recipe {
	return []Recipe{
		HeadRecipe(),
		SunglassesRecipe(),
		MaskRecipe(),
		HatRecipe(),
		TorsoRecipe(),
		ArmRecipe(Left),
		ArmRecipe(Right),
		LegRecipe(Left),
		LegRecipe(Right),
	}
}
