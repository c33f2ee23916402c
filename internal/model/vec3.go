package model

import "math"

// Vec3 is a 3D vector in inches. All operations return new values; nothing
// mutates in place, so vectors can be shared freely across call chains.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func V(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Length() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns a unit vector in the direction of v, or the zero vector
// when v has negligible length.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l < 1e-12 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Neg returns the component-wise negation.
func (v Vec3) Neg() Vec3 { return Vec3{-v.X, -v.Y, -v.Z} }

// RotateEulerXYZ rotates v by Euler angles in degrees, applying the X
// rotation first, then Y, then Z. Contact and screw math depends on this
// exact order.
func (v Vec3) RotateEulerXYZ(angles Vec3) Vec3 {
	out := v
	if angles.X != 0 {
		s, c := math.Sincos(angles.X * math.Pi / 180)
		out = Vec3{out.X, out.Y*c - out.Z*s, out.Y*s + out.Z*c}
	}
	if angles.Y != 0 {
		s, c := math.Sincos(angles.Y * math.Pi / 180)
		out = Vec3{out.X*c + out.Z*s, out.Y, -out.X*s + out.Z*c}
	}
	if angles.Z != 0 {
		s, c := math.Sincos(angles.Z * math.Pi / 180)
		out = Vec3{out.X*c - out.Y*s, out.X*s + out.Y*c, out.Z}
	}
	return out
}

// Point2D is a 2D coordinate in inches, used for footprint profiles (local
// X/Z plane) and for plan-view support/load points (world X/Z plane).
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dist returns the Euclidean distance between two points.
func (p Point2D) Dist(o Point2D) float64 {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return math.Sqrt(dx*dx + dy*dy)
}
