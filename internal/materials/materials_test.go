package materials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapLibrary is a minimal create-or-get store.
type mapLibrary struct {
	specs   map[string]*Spec
	creates int
}

func (l *mapLibrary) GetOrCreateMaterial(name string, color [4]float32, roughness float32) *Spec {
	if l.specs == nil {
		l.specs = make(map[string]*Spec)
	}
	if s, ok := l.specs[name]; ok {
		return s
	}
	l.creates++
	s := &Spec{Name: name, BaseColor: color, Roughness: roughness}
	l.specs[name] = s
	return s
}

func TestBuild(t *testing.T) {
	lib := &mapLibrary{}
	table := Build(lib)

	require.Len(t, table, 8)
	names := map[string]bool{}
	for _, key := range table.Keys() {
		s := table.Lookup(key)
		require.NoError(t, s.Validate())
		assert.Equal(t, float32(DefaultRoughness), s.Roughness)
		assert.False(t, names[s.Name], "duplicate material %s", s.Name)
		names[s.Name] = true
	}
	assert.Equal(t, [4]float32{0.85, 0.72, 0.58, 1.0}, table.Lookup("skin").BaseColor)
	assert.Equal(t, "DarkBrown", table.Lookup("dark_brown").Name)
}

func TestBuildIsIdempotent(t *testing.T) {
	lib := &mapLibrary{}
	first := Build(lib)
	second := Build(lib)

	assert.Equal(t, 8, lib.creates)
	for key, s := range first {
		assert.Same(t, s, second[key], key)
	}
}

func TestLookupUnknownPanics(t *testing.T) {
	table := Build(&mapLibrary{})
	assert.Panics(t, func() { table.Lookup("gold") })
}

func TestValidate(t *testing.T) {
	assert.Error(t, (&Spec{Name: "Bad", BaseColor: [4]float32{1.2, 0, 0, 1}}).Validate())
	assert.Error(t, (&Spec{Name: "Bad", Roughness: -0.1}).Validate())
	assert.Error(t, (&Spec{}).Validate())
	assert.NoError(t, (&Spec{Name: "Ok", BaseColor: [4]float32{0, 0.5, 1, 1}, Roughness: 1}).Validate())
}
