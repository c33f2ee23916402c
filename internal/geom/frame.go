package geom

import (
	"math"

	"github.com/piwi3910/FrameFit/internal/model"
)

// Frame is a part's oriented box in world space: center point, three
// half-extents, and three mutually orthogonal unit axes. Frames are derived
// per operation and never persisted.
type Frame struct {
	Center model.Vec3
	Half   [3]float64
	Axis   [3]model.Vec3
}

// NewFrame builds the oriented frame for a part by applying its Euler
// rotation (X, then Y, then Z; the order is load-bearing) to the coordinate
// axes.
func NewFrame(p model.Part) Frame {
	return Frame{
		Center: p.Position,
		Half:   [3]float64{p.Size.X / 2, p.Size.Y / 2, p.Size.Z / 2},
		Axis: [3]model.Vec3{
			model.V(1, 0, 0).RotateEulerXYZ(p.Rotation),
			model.V(0, 1, 0).RotateEulerXYZ(p.Rotation),
			model.V(0, 0, 1).RotateEulerXYZ(p.Rotation),
		},
	}
}

// WorldBounds returns the tight axis-aligned bounding box of the frame's
// eight corners.
func (f Frame) WorldBounds() (min, max model.Vec3) {
	min = f.Center
	max = f.Center
	for sx := -1; sx <= 1; sx += 2 {
		for sy := -1; sy <= 1; sy += 2 {
			for sz := -1; sz <= 1; sz += 2 {
				c := f.Center.
					Add(f.Axis[0].Scale(float64(sx) * f.Half[0])).
					Add(f.Axis[1].Scale(float64(sy) * f.Half[1])).
					Add(f.Axis[2].Scale(float64(sz) * f.Half[2]))
				min = model.V(math.Min(min.X, c.X), math.Min(min.Y, c.Y), math.Min(min.Z, c.Z))
				max = model.V(math.Max(max.X, c.X), math.Max(max.Y, c.Y), math.Max(max.Z, c.Z))
			}
		}
	}
	return min, max
}

// ProjectedRange projects the oriented box onto an arbitrary unit direction
// using the support function: the projection radius is the sum of
// |direction . axis_i| * half_i, which is exact for any orientation.
func (f Frame) ProjectedRange(dir model.Vec3) Interval {
	center := f.Center.Dot(dir)
	radius := math.Abs(dir.Dot(f.Axis[0]))*f.Half[0] +
		math.Abs(dir.Dot(f.Axis[1]))*f.Half[1] +
		math.Abs(dir.Dot(f.Axis[2]))*f.Half[2]
	return Interval{Min: center - radius, Max: center + radius}
}

// ToLocal expresses a world point in the frame's local coordinates.
func (f Frame) ToLocal(world model.Vec3) model.Vec3 {
	d := world.Sub(f.Center)
	return model.V(d.Dot(f.Axis[0]), d.Dot(f.Axis[1]), d.Dot(f.Axis[2]))
}

// ToWorld expresses a frame-local point in world coordinates.
func (f Frame) ToWorld(local model.Vec3) model.Vec3 {
	return f.Center.
		Add(f.Axis[0].Scale(local.X)).
		Add(f.Axis[1].Scale(local.Y)).
		Add(f.Axis[2].Scale(local.Z))
}

// IntersectLine runs the slab test for an infinite line against the oriented
// box, with each slab expanded by tol. It returns the parametric entry/exit
// interval along the line direction, or ok=false when the line misses.
func (f Frame) IntersectLine(point, dir model.Vec3, tol float64) (Interval, bool) {
	rel := point.Sub(f.Center)
	tMin := math.Inf(-1)
	tMax := math.Inf(1)
	for i := 0; i < 3; i++ {
		o := rel.Dot(f.Axis[i])
		d := dir.Dot(f.Axis[i])
		h := f.Half[i] + tol
		if math.Abs(d) < 1e-12 {
			if math.Abs(o) > h {
				return Interval{}, false
			}
			continue
		}
		t1 := (-h - o) / d
		t2 := (h - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return Interval{}, false
		}
	}
	return Interval{Min: tMin, Max: tMax}, true
}
