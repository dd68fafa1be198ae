package deform

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
)

var approx = cmpopts.EquateApprox(0, 1e-6)

func TestMaskTaper(t *testing.T) {
	in := []mgl32.Vec3{
		{0.2, 0.1, -0.06},
		{0.2, 0.1, -0.04},
	}
	want := []mgl32.Vec3{
		{0.2 * 0.3, 0.1 * 0.6, -0.06 - 0.02},
		{0.2, 0.1, -0.04},
	}
	if diff := cmp.Diff(want, Apply(in, MaskTaper), approx); diff != "" {
		t.Errorf("mask taper (-want +got):\n%s", diff)
	}
}

func TestTorsoShape(t *testing.T) {
	in := []mgl32.Vec3{
		{0.3, 0.2, -0.15},
		{0.3, 0.2, 0.15},
		{0.3, 0.2, 0},
		{0.3, 0.2, -0.1},
		{0.3, 0.2, 0.1},
	}
	want := []mgl32.Vec3{
		{0.3 * 0.75, 0.2, -0.15},
		{0.3 * 1.1, 0.2, 0.15},
		{0.3, 0.2, 0},
		{0.3, 0.2, -0.1},
		{0.3, 0.2, 0.1},
	}
	if diff := cmp.Diff(want, Apply(in, TorsoShape), approx); diff != "" {
		t.Errorf("torso shape (-want +got):\n%s", diff)
	}
}

func TestCoatFlare(t *testing.T) {
	got := Apply([]mgl32.Vec3{{0.25, 0.1, -0.18}, {0.25, 0.1, 0.18}}, CoatFlare)
	want := []mgl32.Vec3{{0.25 * 1.2, 0.1, -0.18}, {0.25, 0.1, 0.18}}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("coat flare (-want +got):\n%s", diff)
	}
}

func TestCrownFlatten(t *testing.T) {
	in := []mgl32.Vec3{
		{0.1, 0.1, -0.168},
		{0.1, 0.1, -0.03},
		{0.1, 0.1, -0.02},
		{0.1, 0.1, 0.1},
	}
	got := Apply(in, CrownFlatten)
	assert.Equal(t, float32(-0.02), got[0].Z())
	assert.Equal(t, float32(-0.02), got[1].Z())
	assert.Equal(t, in[2], got[2])
	assert.Equal(t, in[3], got[3])
	assert.Equal(t, in[0].X(), got[0].X())
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := []mgl32.Vec3{{1, 1, -1}}
	_ = Apply(in, MaskTaper)
	assert.Equal(t, mgl32.Vec3{1, 1, -1}, in[0])
}

func TestChainOrder(t *testing.T) {
	r := Chain(Offset(0, 0, 1), Below(0.5, SetZ(9)))
	// After the offset z is 1, so the second rule no longer matches.
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, r(mgl32.Vec3{0, 0, 0}))
}
