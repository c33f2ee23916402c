package engine

import (
	"math"
	"testing"

	"github.com/piwi3910/FrameFit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine() *Engine {
	return New(model.DefaultSettings(), nil)
}

func buttJointedStuds() []model.Part {
	a := model.NewLumber("stud a", model.V(1.5, 3.5, 96), model.V(0, 1.75, 0))
	a.ID = "stud-a"
	b := model.NewLumber("stud b", model.V(1.5, 3.5, 96), model.V(0, 1.75, 96))
	b.ID = "stud-b"
	return []model.Part{a, b}
}

func TestPlaceFasteners_TouchingStuds(t *testing.T) {
	eng := testEngine()
	result := eng.PlaceFasteners("stud-a", "stud-b", buttJointedStuds())

	require.True(t, result.OK, "message: %s", result.Message)
	assert.Equal(t, 2, result.ScrewCount)
	require.Len(t, result.Fasteners, 2)

	for _, f := range result.Fasteners {
		require.True(t, f.IsFastener())
		// Insertion axis must match the shared face normal (world Z).
		axis := model.V(0, 1, 0).RotateEulerXYZ(f.Rotation)
		assert.InDelta(t, 1.0, math.Abs(axis.Z), 1e-6)
		// Both screws straddle the seam at z=48.
		assert.InDelta(t, 48.0, f.Position.Z, f.Size.Y/2+1e-6)
	}

	// The two screws must not be clustered together.
	d := result.Fasteners[0].Position.Sub(result.Fasteners[1].Position).Length()
	assert.GreaterOrEqual(t, d, eng.Settings().Placement.MinSpacing)
}

func TestPlaceFasteners_NotTouching(t *testing.T) {
	parts := buttJointedStuds()
	parts[1].Position = parts[1].Position.Add(model.V(10, 10, 10))

	result := testEngine().PlaceFasteners("stud-a", "stud-b", parts)

	assert.False(t, result.OK)
	assert.Equal(t, MsgNotTouching, result.Message)
	assert.Empty(t, result.Fasteners)
}

func TestPlaceFasteners_NoSharedRegion(t *testing.T) {
	// Two half-inch-square strips butted end to end touch along Z, but the
	// shared cross-section is below the planar overlap minimum on both axes:
	// there is nowhere to put even one screw.
	a := model.NewLumber("strip a", model.V(0.5, 0.5, 24), model.V(0, 0.25, 0))
	a.ID = "strip-a"
	b := model.NewLumber("strip b", model.V(0.5, 0.5, 24), model.V(0, 0.25, 24))
	b.ID = "strip-b"

	result := testEngine().PlaceFasteners("strip-a", "strip-b", []model.Part{a, b})

	assert.False(t, result.OK)
	assert.Equal(t, MsgNoRegion, result.Message)
	assert.Empty(t, result.Fasteners)
}

func TestPlaceFasteners_FootprintVoidRejectsPlacement(t *testing.T) {
	// Same deck-on-joist geometry that succeeds in TestPlaceFasteners_SheetOnFrame,
	// except the deck's polygon footprint keeps only material clear of the
	// joist. Bounding boxes still overlap, so a box-only check would happily
	// drive screws through the void; the footprint penetration check must
	// reject every sample instead.
	joist := model.NewLumber("joist", model.V(1.5, 3.5, 48), model.V(0, 1.75, 0))
	joist.ID = "joist"
	sheet := model.NewSheet("deck", model.V(24, 0.75, 48), model.V(0, 3.875, 0))
	sheet.ID = "deck"
	sheet.Footprint = &model.Footprint{
		Kind:   model.FootprintPolygon,
		Points: []model.Point2D{{X: 1, Y: -24}, {X: 12, Y: -24}, {X: 12, Y: 24}, {X: 1, Y: 24}},
	}

	result := testEngine().PlaceFasteners("deck", "joist", []model.Part{sheet, joist})

	assert.False(t, result.OK)
	assert.Equal(t, MsgNoPlacement, result.Message)
	assert.Empty(t, result.Fasteners)
}

func TestPlaceFasteners_SameID(t *testing.T) {
	result := testEngine().PlaceFasteners("stud-a", "stud-a", buttJointedStuds())
	assert.False(t, result.OK)
	assert.NotEmpty(t, result.Message)
}

func TestPlaceFasteners_UnknownID(t *testing.T) {
	result := testEngine().PlaceFasteners("stud-a", "nope", buttJointedStuds())
	assert.False(t, result.OK)
	assert.Contains(t, result.Message, "nope")
}

func TestPlaceFasteners_RejectsHardware(t *testing.T) {
	parts := buttJointedStuds()
	screw := model.NewFastener(model.ScrewPresets[0], model.V(5, 5, 5), model.V(0, 1, 0))
	screw.ID = "screw-1"
	parts = append(parts, screw)

	result := testEngine().PlaceFasteners("stud-a", "screw-1", parts)
	assert.False(t, result.OK)
	assert.Contains(t, result.Message, "hardware")
}

func TestPlaceFasteners_SheetOnFrame(t *testing.T) {
	// A 3/4 inch sheet lying on a joist: screws go down through the sheet.
	joist := model.NewLumber("joist", model.V(1.5, 3.5, 48), model.V(0, 1.75, 0))
	joist.ID = "joist"
	sheet := model.NewSheet("deck", model.V(24, 0.75, 48), model.V(0, 3.875, 0))
	sheet.ID = "deck"

	result := testEngine().PlaceFasteners("deck", "joist", []model.Part{sheet, joist})

	require.True(t, result.OK, "message: %s", result.Message)
	for _, f := range result.Fasteners {
		axis := model.V(0, 1, 0).RotateEulerXYZ(f.Rotation)
		assert.InDelta(t, 1.0, math.Abs(axis.Y), 1e-6, "screws should drive vertically")
	}
}

func TestPlaceFasteners_DoesNotMutateInput(t *testing.T) {
	parts := buttJointedStuds()
	before := make([]model.Part, len(parts))
	copy(before, parts)

	_ = testEngine().PlaceFasteners("stud-a", "stud-b", parts)

	assert.Equal(t, before, parts)
}

func TestPlaceFasteners_DeterministicAcrossCalls(t *testing.T) {
	eng := testEngine()
	r1 := eng.PlaceFasteners("stud-a", "stud-b", buttJointedStuds())
	r2 := eng.PlaceFasteners("stud-a", "stud-b", buttJointedStuds())

	require.True(t, r1.OK)
	require.True(t, r2.OK)
	for i := range r1.Fasteners {
		assert.Equal(t, r1.Fasteners[i].Position, r2.Fasteners[i].Position)
		assert.Equal(t, r1.Fasteners[i].Rotation, r2.Fasteners[i].Rotation)
		assert.Equal(t, r1.Fasteners[i].Label, r2.Fasteners[i].Label)
	}
}
