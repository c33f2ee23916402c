package model

import (
	"math"

	"github.com/google/uuid"
)

// ScrewPreset describes one wood screw size the placement search may choose.
type ScrewPreset struct {
	Name     string  `json:"name"`
	Diameter float64 `json:"diameter"` // shank diameter, inches
	Length   float64 `json:"length"`   // overall length, inches
}

// ScrewPresets is the built-in catalog, ordered shortest to longest. The
// placement search prefers the longest preset that satisfies the depth and
// far-face constraints.
var ScrewPresets = []ScrewPreset{
	{Name: `#8 x 1-1/4" wood screw`, Diameter: 0.164, Length: 1.25},
	{Name: `#8 x 2" wood screw`, Diameter: 0.164, Length: 2.0},
	{Name: `#10 x 2-1/2" wood screw`, Diameter: 0.190, Length: 2.5},
}

// NewFastener creates a fastener hardware part for a screw inserted at the
// given world position along the given unit direction. Size is
// [diameter, length, diameter], so the screw's long axis is local +Y; the
// rotation aligns local +Y with the insertion direction using the same
// fixed X-then-Y-then-Z Euler order as every other part.
func NewFastener(preset ScrewPreset, center, direction Vec3) Part {
	return Part{
		ID:       uuid.New().String()[:8],
		Label:    preset.Name,
		Category: CategoryHardware,
		Hardware: HardwareFastener,
		Size:     Vec3{X: preset.Diameter, Y: preset.Length, Z: preset.Diameter},
		Position: center,
		Rotation: rotationAligningY(direction),
	}
}

// rotationAligningY returns Euler angles (degrees, X-then-Y-then-Z order)
// that carry the local +Y axis onto the given unit direction. With the Y
// rotation held at zero the system solves in closed form:
//
//	Rz(Rx(0,1,0)) = (-cos(ax) sin(az), cos(ax) cos(az), sin(ax))
func rotationAligningY(dir Vec3) Vec3 {
	d := dir.Normalize()
	ax := math.Asin(clamp(d.Z, -1, 1))
	cx := math.Cos(ax)
	var az float64
	if math.Abs(cx) > 1e-9 {
		az = math.Atan2(-d.X, d.Y)
	}
	return Vec3{X: ax * 180 / math.Pi, Y: 0, Z: az * 180 / math.Pi}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
