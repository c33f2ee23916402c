package engine

import (
	"testing"

	"github.com/piwi3910/FrameFit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeCached_ReturnsMemoForUnchangedSnapshot(t *testing.T) {
	eng := testEngine()
	parts := smallTable()

	r1 := eng.AnalyzeCached(parts)
	r2 := eng.AnalyzeCached(parts)
	assert.Equal(t, r1, r2)
	assert.Equal(t, eng.Analyze(parts), r1)
}

func TestAnalyzeCached_InvalidatesOnAnyPartChange(t *testing.T) {
	eng := testEngine()
	parts := smallTable()
	before := eng.AnalyzeCached(parts)

	parts[0].Position = parts[0].Position.Add(model.V(0, 5, 0))
	after := eng.AnalyzeCached(parts)

	assert.NotEqual(t, before.PartScores, after.PartScores)
}

func TestSnapshotHash_SensitiveToEveryAttribute(t *testing.T) {
	base := smallTable()
	h := snapshotHash(base)

	mutate := []func(p *model.Part){
		func(p *model.Part) { p.ID = "other" },
		func(p *model.Part) { p.Category = model.CategoryLumber },
		func(p *model.Part) { p.Size.X += 0.001 },
		func(p *model.Part) { p.Position.Y += 0.001 },
		func(p *model.Part) { p.Rotation.Z += 0.001 },
		func(p *model.Part) {
			p.Footprint = &model.Footprint{Kind: model.FootprintNotch, NotchWidth: 2, NotchDepth: 2}
		},
	}
	for i, fn := range mutate {
		parts := smallTable()
		fn(&parts[0])
		require.NotEqual(t, h, snapshotHash(parts), "mutation %d must change the hash", i)
	}
}

func TestSnapshotHash_OrderSensitive(t *testing.T) {
	parts := smallTable()
	swapped := make([]model.Part, len(parts))
	copy(swapped, parts)
	swapped[0], swapped[1] = swapped[1], swapped[0]

	assert.NotEqual(t, snapshotHash(parts), snapshotHash(swapped))
}
