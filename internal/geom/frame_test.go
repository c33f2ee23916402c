package geom

import (
	"math"
	"testing"

	"github.com/piwi3910/FrameFit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFrame_Unrotated(t *testing.T) {
	p := model.NewLumber("stud", model.V(1.5, 3.5, 96), model.V(0, 1.75, 0))
	f := NewFrame(p)

	assert.Equal(t, model.V(0, 1.75, 0), f.Center)
	assert.InDelta(t, 0.75, f.Half[0], 1e-9)
	assert.InDelta(t, 1.75, f.Half[1], 1e-9)
	assert.InDelta(t, 48.0, f.Half[2], 1e-9)
	assert.InDelta(t, 1.0, f.Axis[0].X, 1e-9)
	assert.InDelta(t, 1.0, f.Axis[1].Y, 1e-9)
	assert.InDelta(t, 1.0, f.Axis[2].Z, 1e-9)
}

func TestNewFrame_RotationOrderIsXThenYThenZ(t *testing.T) {
	// 90 about X then 90 about Z sends local +Y first to +Z (unchanged by
	// the Z rotation afterwards only if order is preserved).
	p := model.NewLumber("block", model.V(2, 2, 2), model.V(0, 0, 0))
	p.Rotation = model.V(90, 0, 90)
	f := NewFrame(p)

	// local Y axis: X-rot sends (0,1,0)->(0,0,1); Z-rot leaves (0,0,1) alone.
	assert.InDelta(t, 0, f.Axis[1].X, 1e-9)
	assert.InDelta(t, 0, f.Axis[1].Y, 1e-9)
	assert.InDelta(t, 1, f.Axis[1].Z, 1e-9)
}

func TestWorldBounds_RotatedBox(t *testing.T) {
	// A 2x2x2 cube rotated 45 degrees about Y spans sqrt(2)*2 in X and Z.
	p := model.NewLumber("cube", model.V(2, 2, 2), model.V(0, 1, 0))
	p.Rotation = model.V(0, 45, 0)
	f := NewFrame(p)

	min, max := f.WorldBounds()
	want := math.Sqrt2
	assert.InDelta(t, -want, min.X, 1e-9)
	assert.InDelta(t, want, max.X, 1e-9)
	assert.InDelta(t, -want, min.Z, 1e-9)
	assert.InDelta(t, want, max.Z, 1e-9)
	assert.InDelta(t, 0, min.Y, 1e-9)
	assert.InDelta(t, 2, max.Y, 1e-9)
}

func TestProjectedRange_MatchesWorldBoundsOnWorldAxes(t *testing.T) {
	p := model.NewLumber("beam", model.V(1.5, 3.5, 96), model.V(5, 10, -3))
	p.Rotation = model.V(10, 20, 30)
	f := NewFrame(p)

	min, max := f.WorldBounds()
	rx := f.ProjectedRange(model.V(1, 0, 0))
	assert.InDelta(t, min.X, rx.Min, 1e-9)
	assert.InDelta(t, max.X, rx.Max, 1e-9)

	ry := f.ProjectedRange(model.V(0, 1, 0))
	assert.InDelta(t, min.Y, ry.Min, 1e-9)
	assert.InDelta(t, max.Y, ry.Max, 1e-9)
}

func TestIntersectLine_HitAndMiss(t *testing.T) {
	p := model.NewLumber("slab", model.V(10, 1, 10), model.V(0, 0.5, 0))
	f := NewFrame(p)

	// Vertical line through the center crosses the 1 inch thickness.
	iv, ok := f.IntersectLine(model.V(0, 0, 0), model.V(0, 1, 0), 0)
	require.True(t, ok)
	assert.InDelta(t, 0, iv.Min, 1e-9)
	assert.InDelta(t, 1, iv.Max, 1e-9)

	// A line 8 inches off to the side misses.
	_, ok = f.IntersectLine(model.V(8, 0, 0), model.V(0, 1, 0), 0)
	assert.False(t, ok)
}

func TestInterval_GapAndOverlap(t *testing.T) {
	a := Interval{Min: 0, Max: 2}
	b := Interval{Min: 3, Max: 5}
	c := Interval{Min: 1, Max: 4}

	assert.InDelta(t, 1, a.Gap(b), 1e-9)
	assert.InDelta(t, 0, a.Gap(c), 1e-9)
	assert.InDelta(t, 0, a.Overlap(b), 1e-9)
	assert.InDelta(t, 1, a.Overlap(c), 1e-9)

	iv, ok := a.Intersect(c)
	require.True(t, ok)
	assert.InDelta(t, 1, iv.Min, 1e-9)
	assert.InDelta(t, 2, iv.Max, 1e-9)

	_, ok = a.Intersect(b)
	assert.False(t, ok)
}
