package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/FrameFit/internal/geom"
	"github.com/piwi3910/FrameFit/internal/model"
)

// Stable diagnostic messages for placement failures. Callers present these
// verbatim.
const (
	MsgNotTouching = "parts are not touching"
	MsgNoRegion    = "no shared region for screws"
	MsgNoPlacement = "no valid screw placement found"
)

// PlacementResult is the outcome of a fastener placement search. On success
// Fasteners holds exactly two new hardware parts for the caller to append;
// on failure the part collection is untouched and Message explains why.
type PlacementResult struct {
	OK         bool
	Message    string
	Fasteners  []model.Part
	ScrewCount int
}

func failure(msg string) PlacementResult {
	return PlacementResult{OK: false, Message: msg}
}

// screwCandidate is one sampled screw position within a basis plane.
type screwCandidate struct {
	pu, pv float64 // plane coordinates
	start  float64 // parametric start of the screw along the line
	preset model.ScrewPreset
	score  float64
}

// chosenPair is the best two-screw placement found so far across all
// direction/basis combinations.
type chosenPair struct {
	dir    model.Vec3
	u, v   model.Vec3
	first  screwCandidate
	second screwCandidate
	total  float64
}

// PlaceFasteners searches for a physically valid pair of screws bridging the
// two identified parts. The operation is atomic: either exactly two fastener
// parts are returned, or none.
func (e *Engine) PlaceFasteners(firstID, secondID string, parts []model.Part) PlacementResult {
	if firstID == secondID {
		return failure("select two different parts")
	}
	first, ok := findPart(parts, firstID)
	if !ok {
		return failure(fmt.Sprintf("part %q not found", firstID))
	}
	second, ok := findPart(parts, secondID)
	if !ok {
		return failure(fmt.Sprintf("part %q not found", secondID))
	}
	if !first.IsWood() {
		return failure(fmt.Sprintf("%s is hardware; screws can only join wood parts", first.Label))
	}
	if !second.IsWood() {
		return failure(fmt.Sprintf("%s is hardware; screws can only join wood parts", second.Label))
	}

	ps := e.settings.Placement
	gapTol := e.settings.Contact.GapTol

	fa := geom.NewFrame(first)
	fb := geom.NewFrame(second)
	delta := fb.Center.Sub(fa.Center)
	deltaN := delta.Normalize()

	dirs := candidateDirections(fa, fb, delta)

	touching := false
	hasRegion := false
	var best *chosenPair

	for _, dir := range dirs {
		if deltaN.Dot(dir) < ps.MinAxisAlignment {
			continue
		}
		ra := fa.ProjectedRange(dir)
		rb := fb.ProjectedRange(dir)
		if ra.Gap(rb) > gapTol {
			continue
		}
		if ra.Overlap(rb) > ps.MaxAxisOverlap {
			continue
		}
		touching = true

		for _, basis := range candidateBases(dir) {
			u, v := basis[0], basis[1]
			ru, okU := fa.ProjectedRange(u).Intersect(fb.ProjectedRange(u))
			rv, okV := fa.ProjectedRange(v).Intersect(fb.ProjectedRange(v))
			if !okU || !okV || ru.Length() < ps.MinPlanarOverlap || rv.Length() < ps.MinPlanarOverlap {
				continue
			}
			hasRegion = true

			cands := e.sampleCandidates(first, second, fa, fb, dir, u, v, ru, rv)
			if len(cands) < 2 {
				continue
			}

			spacing := math.Max(ps.MinSpacing, ps.SpacingFrac*math.Max(ru.Length(), rv.Length()))
			pair, okPair := bestSpacedPair(cands, spacing)
			if !okPair {
				continue
			}
			if best == nil || pair.total > best.total {
				p := pair
				p.dir, p.u, p.v = dir, u, v
				best = &p
			}
		}
	}

	if !touching {
		return failure(MsgNotTouching)
	}
	if !hasRegion {
		return failure(MsgNoRegion)
	}
	if best == nil {
		e.log.Debugw("fastener search exhausted",
			"first", firstID, "second", secondID, "directions", len(dirs))
		return failure(MsgNoPlacement)
	}

	// Re-validate the winning pair end to end against true footprints before
	// committing anything, guarding against accumulated floating-point error.
	for _, c := range []screwCandidate{best.first, best.second} {
		if !e.revalidate(first, second, fa, fb, best.dir, best.u, best.v, c) {
			return failure(MsgNoPlacement)
		}
	}

	mk := func(c screwCandidate) model.Part {
		linePoint := best.u.Scale(c.pu).Add(best.v.Scale(c.pv))
		center := linePoint.Add(best.dir.Scale(c.start + c.preset.Length/2))
		return model.NewFastener(c.preset, center, best.dir)
	}
	fasteners := []model.Part{mk(best.first), mk(best.second)}

	e.log.Debugw("fasteners placed",
		"first", firstID, "second", secondID,
		"preset", best.first.preset.Name, "score", best.total)
	return PlacementResult{
		OK:         true,
		Message:    "placed 2 screws",
		Fasteners:  fasteners,
		ScrewCount: len(fasteners),
	}
}

func findPart(parts []model.Part, id string) (model.Part, bool) {
	for _, p := range parts {
		if p.ID == id {
			return p, true
		}
	}
	return model.Part{}, false
}

// candidateDirections returns the union of both frames' local axes, each
// oriented to point from the first part toward the second, with near-parallel
// duplicates removed.
func candidateDirections(fa, fb geom.Frame, delta model.Vec3) []model.Vec3 {
	var dirs []model.Vec3
	add := func(d model.Vec3) {
		if d.Dot(delta) < 0 {
			d = d.Neg()
		}
		for _, seen := range dirs {
			if math.Abs(seen.Dot(d)) > 0.999 {
				return
			}
		}
		dirs = append(dirs, d)
	}
	for i := 0; i < 3; i++ {
		add(fa.Axis[i])
	}
	for i := 0; i < 3; i++ {
		add(fb.Axis[i])
	}
	return dirs
}

// candidateBases builds perpendicular-plane bases for a direction from cross
// products with the canonical helper vectors, deduplicated by parallelism.
func candidateBases(dir model.Vec3) [][2]model.Vec3 {
	helpers := []model.Vec3{model.V(1, 0, 0), model.V(0, 1, 0), model.V(0, 0, 1)}
	var bases [][2]model.Vec3
	for _, h := range helpers {
		u := h.Cross(dir)
		if u.Length() < 1e-6 {
			continue
		}
		u = u.Normalize()
		dup := false
		for _, b := range bases {
			if math.Abs(b[0].Dot(u)) > 0.98 {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		v := dir.Cross(u)
		bases = append(bases, [2]model.Vec3{u, v})
	}
	return bases
}

// planeOffsets returns the deterministic sample offsets for one axis of the
// overlap rectangle: the center plus symmetric fractions, with two extra
// samples when the rectangle is large enough to use them.
func planeOffsets(length float64) []float64 {
	fracs := []float64{0, -0.3, 0.3}
	if length >= 3.0 {
		fracs = append(fracs, -0.42, 0.42)
	}
	out := make([]float64, len(fracs))
	for i, f := range fracs {
		out[i] = f * length
	}
	return out
}

// sampleCandidates casts lines through the overlap rectangle and returns
// every screw position that clears the depth, clearance, and far-face
// constraints, scored by penetration, edge distance, and seam proximity.
func (e *Engine) sampleCandidates(first, second model.Part, fa, fb geom.Frame, dir, u, v model.Vec3, ru, rv geom.Interval) []screwCandidate {
	ps := e.settings.Placement
	maxLineGap := 2 * e.settings.Contact.GapTol

	var cands []screwCandidate
	for _, du := range planeOffsets(ru.Length()) {
		for _, dv := range planeOffsets(rv.Length()) {
			pu := ru.Mid() + du
			pv := rv.Mid() + dv

			clearance := math.Min(
				math.Min(pu-ru.Min, ru.Max-pu),
				math.Min(pv-rv.Min, rv.Max-pv),
			)
			if clearance < ps.EdgeClearance {
				continue
			}

			linePoint := u.Scale(pu).Add(v.Scale(pv))
			lia, okA := fa.IntersectLine(linePoint, dir, 1e-3)
			lib, okB := fb.IntersectLine(linePoint, dir, 1e-3)
			if !okA || !okB {
				continue
			}
			if lia.Length() < ps.MinInterval || lib.Length() < ps.MinInterval {
				continue
			}
			if lib.Mid() < lia.Mid() {
				continue // second part is not on the far side of this line
			}
			lineGap := lib.Min - lia.Max
			if lineGap > maxLineGap || lineGap < -ps.MaxAxisOverlap {
				continue
			}
			seam := (lia.Max + lib.Min) / 2

			// Longest preset that satisfies every depth rule wins.
			for k := len(model.ScrewPresets) - 1; k >= 0; k-- {
				preset := model.ScrewPresets[k]
				c, ok := e.placeScrew(first, second, fa, fb, linePoint, dir, lia, lib, seam, preset)
				if !ok {
					continue
				}
				c.pu, c.pv = pu, pv
				c.score += ps.ClearanceWeight * math.Min(clearance, 1.5)
				cands = append(cands, c)
				break
			}
		}
	}
	return cands
}

// placeScrew positions one screw of the given preset along a cast line. The
// head sits just outside the first part's entry face when the part is thin
// enough for the screw to pass through it; otherwise the screw straddles the
// seam. Penetration into each part's true cross-section is measured by
// sampling along the span.
func (e *Engine) placeScrew(first, second model.Part, fa, fb geom.Frame, linePoint, dir model.Vec3, lia, lib geom.Interval, seam float64, preset model.ScrewPreset) (screwCandidate, bool) {
	ps := e.settings.Placement
	l := preset.Length
	minPen := math.Max(ps.MinPenetration, ps.MinPenetrationFrac*l)

	start := math.Max(lia.Min-ps.HeadProtrusion, seam-l/2)
	// Never let the tip exit the far face of the second part.
	if start+l > lib.Max-ps.TipMargin {
		start = lib.Max - ps.TipMargin - l
	}
	if start < lia.Min-ps.HeadProtrusion-1e-9 {
		return screwCandidate{}, false
	}

	penA := e.penetration(first, fa, linePoint, dir, start, l)
	penB := e.penetration(second, fb, linePoint, dir, start, l)
	if penA < minPen || penB < minPen {
		return screwCandidate{}, false
	}

	mid := start + l/2
	seamDist := math.Min(math.Abs(mid-seam)/l, 1)
	score := ps.DepthWeight*(penA+penB)/l + ps.SeamWeight*(1-seamDist)
	return screwCandidate{start: start, preset: preset, score: score}, true
}

// penetration measures how much of a screw's span passes through the part's
// true cross-section, by point-in-footprint sampling. Bounding-box math
// alone would accept placements through L-cuts and notches; this does not.
func (e *Engine) penetration(p model.Part, f geom.Frame, linePoint, dir model.Vec3, start, length float64) float64 {
	n := e.settings.Placement.Samples
	if n < 2 {
		n = 2
	}
	inside := 0
	for i := 0; i < n; i++ {
		t := start + length*(float64(i)+0.5)/float64(n)
		local := f.ToLocal(linePoint.Add(dir.Scale(t)))
		if p.ContainsLocal(local, 1e-6) {
			inside++
		}
	}
	return length * float64(inside) / float64(n)
}

// bestSpacedPair picks the highest-scoring candidate pair whose plane
// coordinates are at least spacing apart, spreading the screws rather than
// clustering them.
func bestSpacedPair(cands []screwCandidate, spacing float64) (chosenPair, bool) {
	var best chosenPair
	found := false
	for i := 0; i < len(cands); i++ {
		for j := i + 1; j < len(cands); j++ {
			a, b := cands[i], cands[j]
			if math.Hypot(a.pu-b.pu, a.pv-b.pv) < spacing {
				continue
			}
			if total := a.score + b.score; !found || total > best.total {
				best = chosenPair{first: a, second: b, total: total}
				found = true
			}
		}
	}
	return best, found
}

// revalidate re-runs the strict footprint penetration check for a chosen
// screw from scratch.
func (e *Engine) revalidate(first, second model.Part, fa, fb geom.Frame, dir, u, v model.Vec3, c screwCandidate) bool {
	ps := e.settings.Placement
	minPen := math.Max(ps.MinPenetration, ps.MinPenetrationFrac*c.preset.Length)
	linePoint := u.Scale(c.pu).Add(v.Scale(c.pv))
	penA := e.penetration(first, fa, linePoint, dir, c.start, c.preset.Length)
	penB := e.penetration(second, fb, linePoint, dir, c.start, c.preset.Length)
	return penA >= minPen && penB >= minPen
}
