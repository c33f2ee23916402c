package engine

import (
	"math"
	"sort"

	"github.com/piwi3910/FrameFit/internal/geom"
	"github.com/piwi3910/FrameFit/internal/model"
)

// PartField is the per-part diagnostic detail attached to a report, used by
// callers for overlays and tooltips.
type PartField struct {
	SupportPoints  []model.Point2D `json:"supportPoints"`
	LoadPoints     []model.Point2D `json:"loadPoints"`
	FastenerPoints []model.Point2D `json:"fastenerPoints"`
	PatternScore   float64         `json:"patternScore"`
	SpanAxis       string          `json:"spanAxis"` // X, Y or Z
}

// Statistics summarizes the assembly for display. None of these values feed
// back into the score.
type Statistics struct {
	TotalVolume   float64 `json:"totalVolume"`   // cubic inches of wood
	EstWeight     float64 `json:"estWeight"`     // pounds
	FootprintArea float64 `json:"footprintArea"` // plan-view square inches
	Height        float64 `json:"height"`
	CenterOfMassY float64 `json:"centerOfMassY"`
	SpanX         float64 `json:"spanX"`
	SpanZ         float64 `json:"spanZ"`
	SymmetryX     float64 `json:"symmetryX"`
	SymmetryZ     float64 `json:"symmetryZ"`
	GroundedParts int     `json:"groundedParts"`
	Components    int     `json:"components"`
	ContactCount  int     `json:"contactCount"`
	FastenerCount int     `json:"fastenerCount"`
	BridgingCount int     `json:"bridgingCount"`
}

// StructuralReport is an immutable snapshot of one analysis pass. It is
// recomputed from scratch every time; nothing is carried between calls.
type StructuralReport struct {
	Score          float64              `json:"score"`
	Grade          string               `json:"grade"`
	Recommendation string               `json:"recommendation"`
	PartScores     map[string]float64   `json:"partScores"`
	PartFields     map[string]PartField `json:"partFields"`
	WeakPartIDs    []string             `json:"weakPartIds"`
	Statistics     Statistics           `json:"statistics"`
}

func emptyReport() StructuralReport {
	return StructuralReport{
		Score:          0,
		Grade:          "N/A",
		Recommendation: "no wood parts to analyze",
		PartScores:     map[string]float64{},
		PartFields:     map[string]PartField{},
		WeakPartIDs:    []string{},
	}
}

// Analyze scores the structural stability of the whole assembly. It is a
// total function: every input, including an empty or hardware-only one,
// produces a well-formed report.
func (e *Engine) Analyze(parts []model.Part) StructuralReport {
	var wood []model.Part
	for _, p := range parts {
		if p.IsWood() {
			wood = append(wood, p)
		}
	}
	if len(wood) == 0 {
		return emptyReport()
	}
	sort.Slice(wood, func(i, j int) bool { return wood[i].ID < wood[j].ID })

	g := BuildGraph(parts, e.settings.Contact)
	is := e.settings.Integrity

	bounds := make(map[string]aabb, len(wood))
	asmMin := model.V(math.Inf(1), math.Inf(1), math.Inf(1))
	asmMax := model.V(math.Inf(-1), math.Inf(-1), math.Inf(-1))
	for _, p := range wood {
		mn, mx := geom.NewFrame(p).WorldBounds()
		bounds[p.ID] = aabb{min: mn, max: mx}
		asmMin = vecMin(asmMin, mn)
		asmMax = vecMax(asmMax, mx)
	}
	height := asmMax.Y - asmMin.Y
	if height <= 0 {
		height = 1
	}

	report := StructuralReport{
		PartScores:  make(map[string]float64, len(wood)),
		PartFields:  make(map[string]PartField, len(wood)),
		WeakPartIDs: []string{},
	}

	totalVol := 0.0
	comX, comY, comZ := 0.0, 0.0, 0.0
	sumWeighted, sumWeights := 0.0, 0.0
	sumSupport := 0.0
	sumDegree := 0.0
	grounded := 0

	for _, p := range wood {
		b := bounds[p.ID]
		score, field, supportRatio := e.scorePart(p, b, g, asmMin.Y, height)

		report.PartScores[p.ID] = score
		report.PartFields[p.ID] = field
		if score < is.WeakThreshold {
			report.WeakPartIDs = append(report.WeakPartIDs, p.ID)
		}

		vol := p.Volume()
		totalVol += vol
		cx := (b.min.X + b.max.X) / 2
		cy := (b.min.Y + b.max.Y) / 2
		cz := (b.min.Z + b.max.Z) / 2
		comX += vol * cx
		comY += vol * cy
		comZ += vol * cz

		w := math.Sqrt(vol)
		sumWeighted += w * score
		sumWeights += w
		sumSupport += supportRatio
		sumDegree += float64(len(g.adjacency[p.ID]))
		if g.Grounded[p.ID] {
			grounded++
		}
	}
	if totalVol > 0 {
		comX /= totalVol
		comY /= totalVol
		comZ /= totalVol
	}

	n := float64(len(wood))
	partAvg := sumWeighted / math.Max(sumWeights, 1e-9)
	supportAvg := sumSupport / n
	connectivity := clamp01(sumDegree / n / 2)

	spanX := asmMax.X - asmMin.X
	spanZ := asmMax.Z - asmMin.Z
	symX := axisSymmetry(comX, asmMin.X, asmMax.X)
	symZ := axisSymmetry(comZ, asmMin.Z, asmMax.Z)
	symmetry := (symX + symZ) / 2

	groundedRatio := float64(grounded) / n
	bridgingRatio := 0.0
	if len(wood) > 1 {
		bridgingRatio = clamp01(float64(g.BridgingCount) / (n - 1))
	}

	raw := is.PartAverageWeight*partAvg +
		is.SupportAvgWeight*supportAvg +
		is.ConnectivityWeight*connectivity +
		is.SymmetryWeight*symmetry +
		is.GroundedRatioWeight*groundedRatio +
		is.BridgingWeight*bridgingRatio

	raw -= is.ComponentPenalty * float64(len(g.Components)-1)
	weakRatio := float64(len(report.WeakPartIDs)) / n
	raw -= is.WeakRatioPenalty * weakRatio
	comHeightRatio := (comY - asmMin.Y) / height
	topHeavy := comHeightRatio > is.TopHeavyThreshold
	if topHeavy {
		raw -= is.TopHeavyPenalty
	}

	report.Score = is.ScoreFloor + (1-is.ScoreFloor)*clamp01(raw)
	report.Grade = gradeFor(report.Score)
	report.Recommendation = recommend(report, g, bridgingRatio, weakRatio, len(wood))

	report.Statistics = Statistics{
		TotalVolume:   totalVol,
		EstWeight:     totalVol * is.WoodDensity,
		FootprintArea: spanX * spanZ,
		Height:        asmMax.Y - asmMin.Y,
		CenterOfMassY: comY,
		SpanX:         spanX,
		SpanZ:         spanZ,
		SymmetryX:     symX,
		SymmetryZ:     symZ,
		GroundedParts: grounded,
		Components:    len(g.Components),
		ContactCount:  len(g.Contacts),
		FastenerCount: g.FastenerCount,
		BridgingCount: g.BridgingCount,
	}

	e.log.Debugw("assembly analyzed",
		"parts", len(wood), "score", report.Score, "grade", report.Grade,
		"weak", len(report.WeakPartIDs), "components", len(g.Components))
	return report
}

// scorePart combines the support, pattern, contact, and shape heuristics for
// one part into a clamped [0,1] stability score.
func (e *Engine) scorePart(p model.Part, b aabb, g *Graph, groundY, asmHeight float64) (float64, PartField, float64) {
	is := e.settings.Integrity

	footArea := p.FootprintArea()
	if footArea <= 0 {
		footArea = 1e-9
	}

	isGrounded := g.Grounded[p.ID]
	supportRatio := clamp01(g.SupportArea[p.ID] / footArea)
	if isGrounded {
		supportRatio = 1
	}

	pattern := supportPattern(b, g.SupportPoints[p.ID], isGrounded)
	contactRatio := clamp01(g.ContactArea[p.ID] / footArea)
	axisBonus := contactAxisBonus(g.ContactAxes[p.ID])
	linkBonus := math.Min(g.Links[p.ID]*is.LinkWeight, is.LinkCap)

	groundedBonus := 0.0
	if isGrounded {
		groundedBonus = is.GroundedBonus
	}

	slenderPenalty := 0.0
	maxDim := math.Max(p.Size.X, math.Max(p.Size.Y, p.Size.Z))
	minDim := math.Min(p.Size.X, math.Min(p.Size.Y, p.Size.Z))
	if minDim > 0 {
		if ratio := maxDim / minDim; ratio > is.SlendernessLimit {
			slenderPenalty = is.SlendernessWeight * math.Min((ratio-is.SlendernessLimit)/is.SlendernessLimit, 1)
		}
	}

	cantileverPenalty := 0.0
	if !isGrounded && supportRatio < 0.5 {
		deficit := (0.5 - supportRatio) / 0.5
		relHeight := clamp01(((b.min.Y+b.max.Y)/2 - groundY) / asmHeight)
		cantileverPenalty = is.CantileverWeight * deficit * relHeight
	}

	pressurePenalty := 0.0
	if vol := p.Volume(); vol > 0 {
		if demand := g.LoadDemand[p.ID]; demand > vol {
			over := clamp01((demand - vol) / vol)
			pressurePenalty = is.PressureWeight * over * (1 - 0.5*supportRatio)
		}
	}

	score := is.SupportWeight*supportRatio +
		is.PatternWeight*pattern +
		is.ContactWeight*contactRatio +
		axisBonus + linkBonus + groundedBonus -
		slenderPenalty - cantileverPenalty - pressurePenalty
	score = clamp01(score)

	field := PartField{
		SupportPoints:  g.SupportPoints[p.ID],
		LoadPoints:     g.LoadPoints[p.ID],
		FastenerPoints: g.FastenerPts[p.ID],
		PatternScore:   pattern,
		SpanAxis:       spanAxis(b),
	}
	return score, field, supportRatio
}

// supportPattern rates how well support points are spread under a part. A
// 5x5 plan-view grid is sampled over the part's bounds; each cell measures
// the distance to its nearest support point, center cells weighted double,
// normalized by the footprint diagonal. Spread-out support scores near 1,
// single-point support much lower.
func supportPattern(b aabb, supports []model.Point2D, grounded bool) float64 {
	if grounded {
		return 1
	}
	if len(supports) == 0 {
		return 0
	}
	sx := b.max.X - b.min.X
	sz := b.max.Z - b.min.Z
	diag := math.Hypot(sx, sz)
	if diag <= 0 {
		return 1
	}

	const cells = 5
	sumDist, sumWeight := 0.0, 0.0
	for i := 0; i < cells; i++ {
		for j := 0; j < cells; j++ {
			pt := model.Point2D{
				X: b.min.X + sx*(float64(i)+0.5)/cells,
				Y: b.min.Z + sz*(float64(j)+0.5)/cells,
			}
			nearest := math.Inf(1)
			for _, s := range supports {
				if d := pt.Dist(s); d < nearest {
					nearest = d
				}
			}
			weight := 1.0
			if i >= 1 && i <= 3 && j >= 1 && j <= 3 {
				weight = 2.0
			}
			sumDist += weight * nearest
			sumWeight += weight
		}
	}
	return clamp01(1 - (sumDist/sumWeight)/(diag/2))
}

// contactAxisBonus rewards parts braced along more than one axis.
func contactAxisBonus(axes int) float64 {
	switch {
	case axes >= 3:
		return 0.2
	case axes == 2:
		return 0.12
	case axes == 1:
		return 0.05
	default:
		return 0
	}
}

func spanAxis(b aabb) string {
	dx := b.max.X - b.min.X
	dy := b.max.Y - b.min.Y
	dz := b.max.Z - b.min.Z
	switch {
	case dx >= dy && dx >= dz:
		return "X"
	case dy >= dz:
		return "Y"
	default:
		return "Z"
	}
}

// axisSymmetry measures how close the center of mass sits to the middle of
// the assembly's extent along one horizontal axis.
func axisSymmetry(com, min, max float64) float64 {
	half := (max - min) / 2
	if half <= 1e-9 {
		return 1
	}
	mid := (min + max) / 2
	return 1 - clamp01(math.Abs(com-mid)/half)
}

func gradeFor(score float64) string {
	switch {
	case score >= 0.90:
		return "A+"
	case score >= 0.80:
		return "A"
	case score >= 0.70:
		return "B"
	case score >= 0.60:
		return "C"
	case score >= 0.45:
		return "D"
	default:
		return "F"
	}
}

// recommend picks the single most actionable message by fixed priority.
func recommend(r StructuralReport, g *Graph, bridgingRatio, weakRatio float64, woodCount int) string {
	switch {
	case len(g.Components) > 1:
		return "assembly has disconnected clusters; join them with screws or shared supports"
	case woodCount > 1 && bridgingRatio < 0.25:
		return "few joints are fastened; add screws across touching parts"
	case weakRatio >= 0.5:
		return "several parts are unstable; rework their supports"
	case len(r.WeakPartIDs) > 0:
		return "some parts need additional support or fasteners"
	case r.Score >= 0.85:
		return "structure looks solid"
	default:
		return "structure is moderately stable; consider adding supports"
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func vecMin(a, b model.Vec3) model.Vec3 {
	return model.V(math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z))
}

func vecMax(a, b model.Vec3) model.Vec3 {
	return model.V(math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z))
}
