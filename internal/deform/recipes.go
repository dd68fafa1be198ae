package deform

// Threshold edits used by the character parts. All of them key off local z
// and must run after rotation and scale have been baked into the mesh.
var (
	// MaskTaper pulls the lower half of the bandana towards the chin.
	MaskTaper = Below(-0.05, Chain(Scale(0.3, 0.6, 1), Offset(0, 0, -0.02)))

	// TorsoShape narrows the waist and broadens the shoulders. Both tests use
	// the original z since neither edit moves a vertex vertically.
	TorsoShape = Chain(
		Below(-0.1, Scale(0.75, 1, 1)),
		Above(0.1, Scale(1.1, 1, 1)),
	)

	// CoatFlare widens the hem of the coat tails.
	CoatFlare = Below(-0.1, Scale(1.2, 1, 1))

	// CrownFlatten clamps the lower hemisphere of the hat crown to a flat base.
	CrownFlatten = Below(-0.02, SetZ(-0.02))
)
