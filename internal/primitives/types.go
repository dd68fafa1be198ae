package primitives

import (
	"errors"
	"fmt"
)

// Kind names a primitive shape generator.
type Kind string

const (
	KindCube     Kind = "cube"
	KindSphere   Kind = "sphere"
	KindCylinder Kind = "cylinder"
	KindCone     Kind = "cone"
)

var (
	ErrUnknownKind   = errors.New("unknown primitive kind")
	ErrInvalidParams = errors.New("invalid primitive parameters")
)

// Default resolutions, matching what modelling tools use when none is given.
const (
	defaultSegments = 32
	defaultRings    = 16
	defaultVertices = 32
	defaultSize     = 2
	defaultRadius   = 1
	defaultDepth    = 2
)

// Params holds the geometric parameters of a primitive. Zero fields fall back
// to defaults. Size is the full edge length of a cube; Radius2 is the top
// radius of a cone (0 closes it to a point).
type Params struct {
	Size     float32 `yaml:"size,omitempty"`
	Radius   float32 `yaml:"radius,omitempty"`
	Radius2  float32 `yaml:"radius2,omitempty"`
	Depth    float32 `yaml:"depth,omitempty"`
	Segments int     `yaml:"segments,omitempty"`
	Rings    int     `yaml:"rings,omitempty"`
	Vertices int     `yaml:"vertices,omitempty"`
}

// Def is the full description of one primitive placed in a scene: what to
// generate, where, and the pending rotation (XYZ Euler, radians) and scale.
// A zero scale component means 1.
type Def struct {
	Name     string     `yaml:"name"`
	Type     Kind       `yaml:"type"`
	Params   Params     `yaml:"params"`
	Location [3]float32 `yaml:"location"`
	Rotation [3]float32 `yaml:"rotation,omitempty"`
	Scale    [3]float32 `yaml:"scale,omitempty"`
}

// ScaleOrIdentity returns Scale with zero components replaced by 1.
func (d Def) ScaleOrIdentity() [3]float32 {
	s := d.Scale
	for i := range s {
		if s[i] == 0 {
			s[i] = 1
		}
	}
	return s
}

func invalid(kind Kind, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", kind, ErrInvalidParams, fmt.Sprintf(format, args...))
}
