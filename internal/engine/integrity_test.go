package engine

import (
	"math/rand"
	"testing"

	"github.com/piwi3910/FrameFit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallTable() []model.Part {
	top := model.NewSheet("top", model.V(30, 0.75, 20), model.V(0, 24.375, 0))
	top.ID = "top"
	parts := []model.Part{top}
	positions := [][2]float64{{-13, -8}, {13, -8}, {-13, 8}, {13, 8}}
	for i, pos := range positions {
		leg := model.NewLumber("leg", model.V(1.5, 24, 1.5), model.V(pos[0], 12, pos[1]))
		leg.ID = []string{"leg-a", "leg-b", "leg-c", "leg-d"}[i]
		parts = append(parts, leg)
	}
	return parts
}

func TestAnalyze_EmptyInput(t *testing.T) {
	eng := testEngine()

	for _, parts := range [][]model.Part{
		nil,
		{model.NewFastener(model.ScrewPresets[0], model.V(0, 0, 0), model.V(0, 1, 0))},
	} {
		report := eng.Analyze(parts)
		assert.Zero(t, report.Score)
		assert.Equal(t, "N/A", report.Grade)
		assert.NotNil(t, report.PartScores)
		assert.Empty(t, report.PartScores)
		assert.NotNil(t, report.PartFields)
		assert.Empty(t, report.PartFields)
		assert.Empty(t, report.WeakPartIDs)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	eng := testEngine()
	parts := smallTable()

	r1 := eng.Analyze(parts)
	r2 := eng.Analyze(parts)
	assert.Equal(t, r1, r2)
}

func TestAnalyze_OrderInvariant(t *testing.T) {
	eng := testEngine()
	parts := smallTable()
	base := eng.Analyze(parts)

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 5; trial++ {
		shuffled := make([]model.Part, len(parts))
		copy(shuffled, parts)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		report := eng.Analyze(shuffled)
		assert.Equal(t, base.Score, report.Score)
		assert.Equal(t, base.PartScores, report.PartScores)
		assert.ElementsMatch(t, base.WeakPartIDs, report.WeakPartIDs)
	}
}

func TestAnalyze_FloatingPartIsWeak(t *testing.T) {
	eng := testEngine()
	floater := model.NewLumber("floater", model.V(1.5, 3.5, 24), model.V(0, 40, 0))
	floater.ID = "floater"

	report := eng.Analyze([]model.Part{floater})

	score := report.PartScores["floater"]
	weakAt := eng.Settings().Integrity.WeakThreshold
	assert.Less(t, score, weakAt/2, "an unsupported floating part must land well inside the weak band")
	assert.Contains(t, report.WeakPartIDs, "floater")
}

func TestAnalyze_SecondSupportDoesNotLowerScore(t *testing.T) {
	eng := testEngine()

	beam := model.NewLumber("beam", model.V(48, 1.5, 3.5), model.V(0, 10.75, 0))
	beam.ID = "beam"
	postA := model.NewLumber("post a", model.V(3.5, 10, 3.5), model.V(-20, 5, 0))
	postA.ID = "post-a"

	single := eng.Analyze([]model.Part{beam, postA})

	postB := model.NewLumber("post b", model.V(3.5, 10, 3.5), model.V(20, 5, 0))
	postB.ID = "post-b"
	double := eng.Analyze([]model.Part{beam, postA, postB})

	assert.GreaterOrEqual(t, double.PartScores["beam"], single.PartScores["beam"])
}

func TestAnalyze_GroundedTableIsModeratelyStable(t *testing.T) {
	eng := testEngine()
	report := eng.Analyze(smallTable())

	assert.Greater(t, report.Score, 0.3)
	assert.Less(t, report.Score, 0.95)
	assert.NotEqual(t, "N/A", report.Grade)
	assert.Equal(t, 1, report.Statistics.Components)
	assert.Equal(t, 4, report.Statistics.GroundedParts)
	// Symmetric leg layout should read as balanced.
	assert.Greater(t, report.Statistics.SymmetryX, 0.9)
	assert.Greater(t, report.Statistics.SymmetryZ, 0.9)
}

func TestAnalyze_DisconnectedClustersDriveRecommendation(t *testing.T) {
	eng := testEngine()
	a := model.NewSheet("a", model.V(10, 1, 10), model.V(0, 0.5, 0))
	a.ID = "a"
	b := model.NewSheet("b", model.V(10, 1, 10), model.V(100, 0.5, 0))
	b.ID = "b"

	report := eng.Analyze([]model.Part{a, b})

	assert.Equal(t, 2, report.Statistics.Components)
	assert.Contains(t, report.Recommendation, "disconnected")
}

func TestAnalyze_ScoreNeverBelowFloor(t *testing.T) {
	eng := testEngine()
	floater := model.NewLumber("floater", model.V(1.5, 3.5, 24), model.V(0, 40, 0))
	floater.ID = "floater"

	report := eng.Analyze([]model.Part{floater})
	require.GreaterOrEqual(t, report.Score, eng.Settings().Integrity.ScoreFloor)
	assert.LessOrEqual(t, report.Score, 1.0)
}

func TestAnalyze_StatisticsVolumeAndWeight(t *testing.T) {
	eng := testEngine()
	slab := model.NewSheet("slab", model.V(10, 1, 10), model.V(0, 0.5, 0))
	slab.ID = "slab"

	report := eng.Analyze([]model.Part{slab})
	assert.InDelta(t, 100.0, report.Statistics.TotalVolume, 1e-6)
	density := eng.Settings().Integrity.WoodDensity
	assert.InDelta(t, 100.0*density, report.Statistics.EstWeight, 1e-6)
	assert.InDelta(t, 1.0, report.Statistics.Height, 1e-6)
}
