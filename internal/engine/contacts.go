package engine

import (
	"math"
	"sort"

	"github.com/piwi3910/FrameFit/internal/geom"
	"github.com/piwi3910/FrameFit/internal/model"
)

// ContactEdge records that two wood parts touch along one dominant world
// axis with the given shared face area.
type ContactEdge struct {
	A    string  `json:"a"`
	B    string  `json:"b"`
	Axis int     `json:"axis"` // 0=X, 1=Y, 2=Z
	Area float64 `json:"area"` // square inches
	Gap  float64 `json:"gap"`
}

// Support records that the Supported part rests on the Supporter part.
type Support struct {
	Supported string        `json:"supported"`
	Supporter string        `json:"supporter"`
	Area      float64       `json:"area"`
	Point     model.Point2D `json:"point"` // plan-view center of the overlap
}

// Graph is the derived contact/support/fastener relationship structure for
// one part snapshot. It is rebuilt from scratch on every analysis.
type Graph struct {
	Contacts   []ContactEdge
	Supports   []Support
	Components [][]string

	SupportArea   map[string]float64
	SupportPoints map[string][]model.Point2D
	LoadPoints    map[string][]model.Point2D
	LoadDemand    map[string]float64 // cubic inches of demanded support
	ContactArea   map[string]float64
	ContactAxes   map[string]int // count of distinct contact axes
	Links         map[string]float64
	FastenerPts   map[string][]model.Point2D
	Grounded      map[string]bool

	FastenerCount int
	BridgingCount int

	adjacency map[string][]string
}

// aabb is a world-space axis-aligned box.
type aabb struct{ min, max model.Vec3 }

// pairSource yields the unordered wood-part pairs to test. The brute-force
// scan is O(n²); a spatial index can replace it behind this seam without
// touching the contact or scoring contracts.
type pairSource interface {
	pairs(n int) [][2]int
}

type allPairs struct{}

func (allPairs) pairs(n int) [][2]int {
	out := make([][2]int, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			out = append(out, [2]int{i, j})
		}
	}
	return out
}

// BuildGraph computes all pairwise contact, support, and fastener-bridging
// relationships. Parts are processed in ID order so the result does not
// depend on input ordering.
func BuildGraph(parts []model.Part, s model.ContactSettings) *Graph {
	g := &Graph{
		SupportArea:   map[string]float64{},
		SupportPoints: map[string][]model.Point2D{},
		LoadPoints:    map[string][]model.Point2D{},
		LoadDemand:    map[string]float64{},
		ContactArea:   map[string]float64{},
		ContactAxes:   map[string]int{},
		Links:         map[string]float64{},
		FastenerPts:   map[string][]model.Point2D{},
		Grounded:      map[string]bool{},
		adjacency:     map[string][]string{},
	}

	wood := make([]model.Part, 0, len(parts))
	var fasteners []model.Part
	for _, p := range parts {
		if p.IsWood() {
			wood = append(wood, p)
		} else if p.IsFastener() {
			fasteners = append(fasteners, p)
		}
	}
	sort.Slice(wood, func(i, j int) bool { return wood[i].ID < wood[j].ID })
	sort.Slice(fasteners, func(i, j int) bool { return fasteners[i].ID < fasteners[j].ID })

	bounds := make([]aabb, len(wood))
	for i, p := range wood {
		min, max := geom.NewFrame(p).WorldBounds()
		bounds[i] = aabb{min, max}
		g.Grounded[p.ID] = min.Y <= s.GroundTol
	}

	axisIntervals := func(b aabb) [3]geom.Interval {
		return [3]geom.Interval{
			{Min: b.min.X, Max: b.max.X},
			{Min: b.min.Y, Max: b.max.Y},
			{Min: b.min.Z, Max: b.max.Z},
		}
	}

	seenAxes := map[string]map[int]bool{}
	markAxis := func(id string, axis int) {
		if seenAxes[id] == nil {
			seenAxes[id] = map[int]bool{}
		}
		if !seenAxes[id][axis] {
			seenAxes[id][axis] = true
			g.ContactAxes[id]++
		}
	}

	var src pairSource = allPairs{}
	for _, pair := range src.pairs(len(wood)) {
		i, j := pair[0], pair[1]
		a, b := wood[i], wood[j]
		ia := axisIntervals(bounds[i])
		ib := axisIntervals(bounds[j])

		bestAxis := -1
		bestArea := 0.0
		bestGap := 0.0
		for axis := 0; axis < 3; axis++ {
			gap := ia[axis].Gap(ib[axis])
			if gap > s.GapTol {
				continue
			}
			o1 := ia[(axis+1)%3].Overlap(ib[(axis+1)%3])
			o2 := ia[(axis+2)%3].Overlap(ib[(axis+2)%3])
			if o1 < s.MinOverlap || o2 < s.MinOverlap {
				continue
			}
			if area := o1 * o2; area > bestArea {
				bestAxis = axis
				bestArea = area
				bestGap = gap
			}
		}
		if bestAxis >= 0 {
			g.Contacts = append(g.Contacts, ContactEdge{
				A: a.ID, B: b.ID, Axis: bestAxis, Area: bestArea, Gap: bestGap,
			})
			g.adjacency[a.ID] = append(g.adjacency[a.ID], b.ID)
			g.adjacency[b.ID] = append(g.adjacency[b.ID], a.ID)
			g.ContactArea[a.ID] += bestArea
			g.ContactArea[b.ID] += bestArea
			markAxis(a.ID, bestAxis)
			markAxis(b.ID, bestAxis)
		}

		// Vertical relationships are directional; test both stackings.
		g.addVertical(wood[i], wood[j], bounds[i].min, bounds[i].max, bounds[j].min, bounds[j].max, s)
		g.addVertical(wood[j], wood[i], bounds[j].min, bounds[j].max, bounds[i].min, bounds[i].max, s)
	}

	g.findComponents(wood)
	g.linkFasteners(wood, bounds, fasteners, s)
	return g
}

// addVertical records support (direct) or stacking load (transitive) when
// upper sits over lower with enough horizontal overlap.
func (g *Graph) addVertical(upper, lower model.Part, uMin, uMax, lMin, lMax model.Vec3, s model.ContactSettings) {
	ox := geom.Interval{Min: uMin.X, Max: uMax.X}.Overlap(geom.Interval{Min: lMin.X, Max: lMax.X})
	oz := geom.Interval{Min: uMin.Z, Max: uMax.Z}.Overlap(geom.Interval{Min: lMin.Z, Max: lMax.Z})
	if ox < s.MinSupportOverlap || oz < s.MinSupportOverlap {
		return
	}
	gap := uMin.Y - lMax.Y
	if gap < -s.SupportGapTol {
		return // interpenetrating or lower is not below
	}

	area := ox * oz
	center := model.Point2D{
		X: (math.Max(uMin.X, lMin.X) + math.Min(uMax.X, lMax.X)) / 2,
		Y: (math.Max(uMin.Z, lMin.Z) + math.Min(uMax.Z, lMax.Z)) / 2,
	}
	frac := 1.0
	if fp := (uMax.X - uMin.X) * (uMax.Z - uMin.Z); fp > 0 {
		frac = math.Min(1, area/fp)
	}

	if gap <= s.SupportGapTol {
		// Direct support: area and support point to the part on top, load
		// point and volumetric demand to the part underneath.
		g.Supports = append(g.Supports, Support{
			Supported: upper.ID, Supporter: lower.ID, Area: area, Point: center,
		})
		g.SupportArea[upper.ID] += area
		g.SupportPoints[upper.ID] = append(g.SupportPoints[upper.ID], center)
		g.LoadPoints[lower.ID] = append(g.LoadPoints[lower.ID], center)
		g.LoadDemand[lower.ID] += upper.Volume() * frac
		return
	}

	// Transitive stacking: no direct contact, but the upper part's weight
	// still bears down through whatever sits between. Credit a proportional
	// volumetric demand, halved since intermediate parts share it.
	g.LoadDemand[lower.ID] += upper.Volume() * frac * 0.5
}

// findComponents runs BFS over the contact adjacency from every unvisited
// part, in ID order.
func (g *Graph) findComponents(wood []model.Part) {
	visited := map[string]bool{}
	for _, p := range wood {
		if visited[p.ID] {
			continue
		}
		var comp []string
		queue := []string{p.ID}
		visited[p.ID] = true
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			comp = append(comp, id)
			next := append([]string(nil), g.adjacency[id]...)
			sort.Strings(next)
			for _, n := range next {
				if !visited[n] {
					visited[n] = true
					queue = append(queue, n)
				}
			}
		}
		sort.Strings(comp)
		g.Components = append(g.Components, comp)
	}
}

// linkFasteners credits wood parts engaged by fastener hardware. A fastener
// overlapping two or more wood parts bridges them and earns full credit;
// one earns partial credit.
func (g *Graph) linkFasteners(wood []model.Part, bounds []aabb, fasteners []model.Part, s model.ContactSettings) {
	g.FastenerCount = len(fasteners)
	for _, f := range fasteners {
		fMin, fMax := geom.NewFrame(f).WorldBounds()
		fMin = fMin.Sub(model.V(s.LinkTol, s.LinkTol, s.LinkTol))
		fMax = fMax.Add(model.V(s.LinkTol, s.LinkTol, s.LinkTol))

		var touched []string
		for i, w := range wood {
			b := bounds[i]
			if fMin.X <= b.max.X && fMax.X >= b.min.X &&
				fMin.Y <= b.max.Y && fMax.Y >= b.min.Y &&
				fMin.Z <= b.max.Z && fMax.Z >= b.min.Z {
				touched = append(touched, w.ID)
			}
		}
		pt := model.Point2D{X: f.Position.X, Y: f.Position.Z}
		switch {
		case len(touched) >= 2:
			g.BridgingCount++
			for _, id := range touched {
				g.Links[id] += 1.0
				g.FastenerPts[id] = append(g.FastenerPts[id], pt)
			}
		case len(touched) == 1:
			g.Links[touched[0]] += 0.35
			g.FastenerPts[touched[0]] = append(g.FastenerPts[touched[0]], pt)
		}
	}
}
