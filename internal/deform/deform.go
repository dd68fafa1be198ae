package deform

import "github.com/go-gl/mathgl/mgl32"

// Rule rewrites one vertex given in the object's local space. Rules look at a
// single vertex only, so applying one never depends on iteration order.
type Rule func(v mgl32.Vec3) mgl32.Vec3

// Apply returns a new slice with rule applied to every vertex. verts is not modified.
func Apply(verts []mgl32.Vec3, rule Rule) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(verts))
	for i, v := range verts {
		out[i] = rule(v)
	}
	return out
}

// Chain runs rules left to right, each seeing the previous result.
func Chain(rules ...Rule) Rule {
	return func(v mgl32.Vec3) mgl32.Vec3 {
		for _, r := range rules {
			v = r(v)
		}
		return v
	}
}

// Below applies r to vertices whose local z is strictly less than z.
func Below(z float32, r Rule) Rule {
	return func(v mgl32.Vec3) mgl32.Vec3 {
		if v.Z() < z {
			return r(v)
		}
		return v
	}
}

// Above applies r to vertices whose local z is strictly greater than z.
func Above(z float32, r Rule) Rule {
	return func(v mgl32.Vec3) mgl32.Vec3 {
		if v.Z() > z {
			return r(v)
		}
		return v
	}
}

// Scale multiplies each component.
func Scale(x, y, z float32) Rule {
	return func(v mgl32.Vec3) mgl32.Vec3 {
		return mgl32.Vec3{v[0] * x, v[1] * y, v[2] * z}
	}
}

// Offset adds a constant displacement.
func Offset(dx, dy, dz float32) Rule {
	return func(v mgl32.Vec3) mgl32.Vec3 {
		return v.Add(mgl32.Vec3{dx, dy, dz})
	}
}

// SetZ replaces the z component.
func SetZ(z float32) Rule {
	return func(v mgl32.Vec3) mgl32.Vec3 {
		v[2] = z
		return v
	}
}
