package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLumber_AssignsIDAndCategory(t *testing.T) {
	p := NewLumber("stud", V(1.5, 3.5, 96), V(0, 1.75, 0))

	assert.Len(t, p.ID, 8)
	assert.Equal(t, CategoryLumber, p.Category)
	assert.True(t, p.IsWood())
	assert.False(t, p.IsFastener())
}

func TestVolume_RectAndNotch(t *testing.T) {
	p := NewSheet("panel", V(10, 1, 10), V(0, 0.5, 0))
	assert.InDelta(t, 100.0, p.Volume(), 1e-9)

	// A 4x4 corner notch removes 16 of the 100 square inches of footprint.
	p.Footprint = &Footprint{Kind: FootprintNotch, NotchWidth: 4, NotchDepth: 4}
	assert.InDelta(t, 84.0, p.FootprintArea(), 1e-9)
	assert.InDelta(t, 84.0, p.Volume(), 1e-9)
}

func TestContainsLocal_RespectsNotch(t *testing.T) {
	p := NewSheet("panel", V(10, 1, 10), V(0, 0.5, 0))
	p.Footprint = &Footprint{Kind: FootprintNotch, NotchWidth: 4, NotchDepth: 4}

	// Solid corner (-X/-Z) is inside.
	assert.True(t, p.ContainsLocal(V(-4, 0, -4), 1e-6))
	// Notched corner (+X/+Z) is cut away.
	assert.False(t, p.ContainsLocal(V(4, 0, 4), 1e-6))
	// Outside the height extent.
	assert.False(t, p.ContainsLocal(V(0, 2, 0), 1e-6))
}

func TestFootprintPolygon_ShoelaceArea(t *testing.T) {
	tri := &Footprint{Kind: FootprintPolygon, Points: []Point2D{{-5, -5}, {5, -5}, {5, 5}}}
	assert.InDelta(t, 50.0, tri.Area(10, 10), 1e-9)
}

func TestRotateEulerXYZ_AppliesXThenYThenZ(t *testing.T) {
	v := V(0, 1, 0).RotateEulerXYZ(V(90, 0, 90))
	assert.InDelta(t, 0, v.X, 1e-9)
	assert.InDelta(t, 0, v.Y, 1e-9)
	assert.InDelta(t, 1, v.Z, 1e-9)
}

func TestNewFastener_AlignsToInsertionAxis(t *testing.T) {
	dirs := []Vec3{
		V(0, 0, 1), V(0, 0, -1),
		V(1, 0, 0), V(-1, 0, 0),
		V(0, 1, 0), V(0, -1, 0),
		V(1, 1, 1).Normalize(),
	}
	preset := ScrewPresets[1]
	for _, dir := range dirs {
		f := NewFastener(preset, V(2, 3, 4), dir)

		require.True(t, f.IsFastener())
		assert.InDelta(t, preset.Diameter, f.Size.X, 1e-9)
		assert.InDelta(t, preset.Length, f.Size.Y, 1e-9)
		assert.Equal(t, V(2, 3, 4), f.Position)

		// The fastener's local Y axis must point along the insertion axis.
		axis := V(0, 1, 0).RotateEulerXYZ(f.Rotation)
		assert.InDelta(t, 1.0, axis.Dot(dir), 1e-6, "direction %+v", dir)
	}
}

func TestScrewPresets_SortedByLength(t *testing.T) {
	require.Len(t, ScrewPresets, 3)
	for i := 1; i < len(ScrewPresets); i++ {
		assert.Less(t, ScrewPresets[i-1].Length, ScrewPresets[i].Length)
	}
}

func TestVec3_NormalizeZeroVector(t *testing.T) {
	z := V(0, 0, 0).Normalize()
	assert.False(t, math.IsNaN(z.X))
	assert.Equal(t, V(0, 0, 0), z)
}
