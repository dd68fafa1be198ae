package character

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"herogen/internal/materials"
	"herogen/internal/primitives"
	"herogen/internal/scene"
)

// RootName is the name of the empty every part is parented to.
const RootName = "BanditHero"

var ErrNoParts = errors.New("character: no parts to assemble")

// BodyPart is one joined mesh object of the character and the primitives it
// was built from.
type BodyPart struct {
	Name    string
	Object  *scene.Object
	Sources []primitives.Def
}

// Rig is the assembled character: an empty root and its parts, one level deep.
type Rig struct {
	Root  *scene.Object
	Parts []BodyPart
}

// Builder creates one body part in s.
type Builder func(s *scene.Scene, mats materials.Table) (BodyPart, error)

// Build adds r's pieces to s, bakes each piece's rotation and scale, runs
// its vertex edit, paints and shades it, and joins the pieces into one
// object named r.Name.
func Build(s *scene.Scene, mats materials.Table, r Recipe) (BodyPart, error) {
	if len(r.Pieces) == 0 {
		return BodyPart{}, fmt.Errorf("build %s: empty recipe", r.Name)
	}
	b := &partBuilder{s: s, mats: mats}
	for _, p := range r.Pieces {
		b.piece(p)
	}
	obj := b.join(r.Name)
	if b.err != nil {
		return BodyPart{}, fmt.Errorf("build %s: %w", r.Name, b.err)
	}
	part := BodyPart{Name: obj.Name, Object: obj}
	for _, p := range r.Pieces {
		part.Sources = append(part.Sources, p.Def)
	}
	return part, nil
}

// partBuilder runs scene operations until the first failure; later calls
// become no-ops and err holds the failure.
type partBuilder struct {
	s    *scene.Scene
	mats materials.Table
	objs []*scene.Object
	err  error
}

func (b *partBuilder) piece(p Piece) {
	if b.err != nil {
		return
	}
	o, err := b.s.AddPrimitive(p.Def)
	if err != nil {
		b.err = err
		return
	}
	b.objs = append(b.objs, o)
	if o.HasPendingTransform() {
		b.do(func() error { return b.s.ApplyTransform(o, true, true) })
	}
	if p.Edit != nil {
		b.do(func() error { return b.s.EditVertices(o, p.Edit) })
	}
	b.do(func() error { return b.s.AssignMaterial(o, b.mats.Lookup(p.Material)) })
	smooth := p.Smooth || p.Def.Type == primitives.KindSphere || p.Def.Type == primitives.KindCylinder
	b.do(func() error { return b.s.ShadeSmooth(o, smooth) })
}

func (b *partBuilder) do(op func() error) {
	if b.err == nil {
		b.err = op()
	}
}

func (b *partBuilder) join(name string) *scene.Object {
	if b.err != nil {
		return nil
	}
	if len(b.objs) == 1 {
		o := b.objs[0]
		b.err = b.s.Rename(o, name)
		return o
	}
	o, err := b.s.Join(name, b.objs...)
	b.err = err
	return o
}

func builderFor(r Recipe) Builder {
	return func(s *scene.Scene, mats materials.Table) (BodyPart, error) {
		return Build(s, mats, r)
	}
}

// Head builds the head.
func Head(s *scene.Scene, mats materials.Table) (BodyPart, error) {
	return Build(s, mats, HeadRecipe())
}

// Sunglasses builds the shades.
func Sunglasses(s *scene.Scene, mats materials.Table) (BodyPart, error) {
	return Build(s, mats, SunglassesRecipe())
}

// Mask builds the bandana.
func Mask(s *scene.Scene, mats materials.Table) (BodyPart, error) {
	return Build(s, mats, MaskRecipe())
}

// Hat builds the cowboy hat.
func Hat(s *scene.Scene, mats materials.Table) (BodyPart, error) {
	return Build(s, mats, HatRecipe())
}

// Torso builds the coat, neck and belt.
func Torso(s *scene.Scene, mats materials.Table) (BodyPart, error) {
	return Build(s, mats, TorsoRecipe())
}

// Arm returns the builder for one arm.
func Arm(side Side) Builder { return builderFor(ArmRecipe(side)) }

// Leg returns the builder for one leg.
func Leg(side Side) Builder { return builderFor(LegRecipe(side)) }

// Builders returns one builder per recipe, in the order of Recipes.
func Builders() []Builder {
	recipes := Recipes()
	out := make([]Builder, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, builderFor(r))
	}
	return out
}

// Assemble adds the root empty at the origin, parents every part to it and
// leaves root and parts selected with the root active, ready for export.
func Assemble(s *scene.Scene, parts []BodyPart) (Rig, error) {
	if len(parts) == 0 {
		return Rig{}, ErrNoParts
	}
	root := s.AddEmpty(RootName, mgl32.Vec3{})
	for _, p := range parts {
		if err := s.SetParent(p.Object, root); err != nil {
			return Rig{}, fmt.Errorf("assemble: %w", err)
		}
	}
	s.DeselectAll()
	s.Select(root)
	for _, p := range parts {
		s.Select(p.Object)
	}
	if err := s.SetActive(root); err != nil {
		return Rig{}, fmt.Errorf("assemble: %w", err)
	}
	return Rig{Root: root, Parts: parts}, nil
}
