package model

import "math"

// FootprintKind distinguishes the supported cross-section profiles.
type FootprintKind string

const (
	FootprintRect    FootprintKind = "rect"    // full rectangle (same as nil)
	FootprintNotch   FootprintKind = "notch"   // L-shaped corner notch
	FootprintPolygon FootprintKind = "polygon" // arbitrary closed polygon
	FootprintAngled  FootprintKind = "angled"  // angled cut across one end
)

// Footprint describes a part's cross-section profile in its local X/Z plane,
// with the origin at the part center. A nil footprint means the profile is
// the full Size.X by Size.Z rectangle.
type Footprint struct {
	Kind FootprintKind `json:"kind"`

	// Notch: a rectangular cut taken out of the +X/+Z corner.
	NotchWidth float64 `json:"notch_width,omitempty"` // along X, inches
	NotchDepth float64 `json:"notch_depth,omitempty"` // along Z, inches

	// Polygon: explicit outline in local X/Z coordinates.
	Points []Point2D `json:"points,omitempty"`

	// Angled: the +Z end is cut at this many degrees off square, hinged at
	// the -X edge so the +X edge comes up short.
	EndAngle float64 `json:"end_angle,omitempty"`
}

// Polygon resolves the profile to a closed outline for a part with the given
// local X and Z extents. The outline is implicitly closed.
func (f *Footprint) Polygon(sizeX, sizeZ float64) []Point2D {
	hx := sizeX / 2
	hz := sizeZ / 2
	if f == nil {
		return []Point2D{{-hx, -hz}, {hx, -hz}, {hx, hz}, {-hx, hz}}
	}
	switch f.Kind {
	case FootprintNotch:
		nw := math.Min(f.NotchWidth, sizeX)
		nd := math.Min(f.NotchDepth, sizeZ)
		return []Point2D{
			{-hx, -hz}, {hx, -hz},
			{hx, hz - nd}, {hx - nw, hz - nd}, {hx - nw, hz},
			{-hx, hz},
		}
	case FootprintPolygon:
		if len(f.Points) >= 3 {
			return f.Points
		}
		return []Point2D{{-hx, -hz}, {hx, -hz}, {hx, hz}, {-hx, hz}}
	case FootprintAngled:
		run := math.Min(sizeX*math.Tan(math.Abs(f.EndAngle)*math.Pi/180), sizeZ)
		return []Point2D{{-hx, -hz}, {hx, -hz}, {hx, hz - run}, {-hx, hz}}
	default:
		return []Point2D{{-hx, -hz}, {hx, -hz}, {hx, hz}, {-hx, hz}}
	}
}

// Contains reports whether the local X/Z point lies inside the profile,
// using even-odd ray casting. Points exactly on an edge count as inside
// within a small epsilon.
func (f *Footprint) Contains(pt Point2D, sizeX, sizeZ float64) bool {
	poly := f.Polygon(sizeX, sizeZ)
	return polygonContains(poly, pt)
}

// Area returns the profile area via the shoelace formula.
func (f *Footprint) Area(sizeX, sizeZ float64) float64 {
	poly := f.Polygon(sizeX, sizeZ)
	var sum float64
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(sum) / 2
}

// polygonContains is a standard even-odd crossing test with an edge epsilon
// so the profile boundary counts as inside.
func polygonContains(poly []Point2D, pt Point2D) bool {
	const eps = 1e-9
	inside := false
	n := len(poly)
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		if pointOnSegment(a, b, pt, eps) {
			return true
		}
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			x := a.X + (pt.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if pt.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

func pointOnSegment(a, b, p Point2D, eps float64) bool {
	cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	if math.Abs(cross) > eps {
		return false
	}
	dot := (p.X-a.X)*(b.X-a.X) + (p.Y-a.Y)*(b.Y-a.Y)
	if dot < -eps {
		return false
	}
	return dot <= (b.X-a.X)*(b.X-a.X)+(b.Y-a.Y)*(b.Y-a.Y)+eps
}

// ContainsLocal reports whether a point in the part's local coordinates lies
// inside the part's true cross-section: within the Y extent and inside the
// X/Z footprint profile.
func (p Part) ContainsLocal(local Vec3, tol float64) bool {
	if math.Abs(local.Y) > p.Size.Y/2+tol {
		return false
	}
	if math.Abs(local.X) > p.Size.X/2+tol || math.Abs(local.Z) > p.Size.Z/2+tol {
		return false
	}
	return p.Footprint.Contains(Point2D{X: local.X, Y: local.Z}, p.Size.X, p.Size.Z)
}
