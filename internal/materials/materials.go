package materials

import (
	"fmt"
	"sort"
)

// DefaultRoughness is used for every entry of the palette.
const DefaultRoughness = 0.7

// Spec is a flat PBR material: a base color and a roughness, nothing else.
// Specs are shared by pointer; a scene hands out one per name.
type Spec struct {
	Name      string     `yaml:"name"`
	BaseColor [4]float32 `yaml:"base_color"`
	Roughness float32    `yaml:"roughness"`
}

// Validate reports whether every channel and the roughness lie in [0,1].
func (s *Spec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("material: empty name")
	}
	for i, c := range s.BaseColor {
		if c < 0 || c > 1 {
			return fmt.Errorf("material %s: channel %d out of range: %v", s.Name, i, c)
		}
	}
	if s.Roughness < 0 || s.Roughness > 1 {
		return fmt.Errorf("material %s: roughness out of range: %v", s.Name, s.Roughness)
	}
	return nil
}

// Entry is one row of the palette: the semantic key builders use and the
// material it resolves to.
type Entry struct {
	Key   string
	Name  string
	Color [4]float32
}

// Palette is the fixed set of materials the character is painted with.
var Palette = []Entry{
	{Key: "skin", Name: "Skin", Color: [4]float32{0.85, 0.72, 0.58, 1.0}},
	{Key: "black", Name: "Black", Color: [4]float32{0.02, 0.02, 0.02, 1.0}},
	{Key: "dark_grey", Name: "DarkGrey", Color: [4]float32{0.15, 0.15, 0.15, 1.0}},
	{Key: "dark_brown", Name: "DarkBrown", Color: [4]float32{0.18, 0.10, 0.05, 1.0}},
	{Key: "coat", Name: "Coat", Color: [4]float32{0.05, 0.05, 0.07, 1.0}},
	{Key: "pants", Name: "Pants", Color: [4]float32{0.08, 0.08, 0.10, 1.0}},
	{Key: "belt", Name: "Belt", Color: [4]float32{0.12, 0.08, 0.04, 1.0}},
	{Key: "bandana", Name: "Bandana", Color: [4]float32{0.12, 0.12, 0.12, 1.0}},
}

// Library creates materials or returns the existing one with the same name.
// *scene.Scene implements it.
type Library interface {
	GetOrCreateMaterial(name string, color [4]float32, roughness float32) *Spec
}

// Table maps palette keys ("skin", "coat", ...) to materials.
type Table map[string]*Spec

// Build resolves every palette entry through lib. Calling it twice against
// the same library returns the same pointers.
func Build(lib Library) Table {
	t := make(Table, len(Palette))
	for _, e := range Palette {
		t[e.Key] = lib.GetOrCreateMaterial(e.Name, e.Color, DefaultRoughness)
	}
	return t
}

// Lookup returns the material for key. Builders only use palette keys, so an
// unknown key is a bug and panics.
func (t Table) Lookup(key string) *Spec {
	s, ok := t[key]
	if !ok {
		panic(fmt.Sprintf("materials: unknown key %q", key))
	}
	return s
}

// Keys returns the table's keys sorted.
func (t Table) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
