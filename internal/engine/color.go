package engine

// Color is a simple sRGB triple for score overlays.
type Color struct {
	R, G, B uint8
}

type colorStop struct {
	at    float64
	color Color
}

// heatStops run from deep red at 0 through amber to deep green at 1.
var heatStops = []colorStop{
	{0.0, Color{0xC6, 0x28, 0x28}},
	{0.2, Color{0xE6, 0x51, 0x00}},
	{0.4, Color{0xF9, 0xA8, 0x25}},
	{0.6, Color{0xC0, 0xCA, 0x33}},
	{0.8, Color{0x43, 0xA0, 0x47}},
	{1.0, Color{0x1B, 0x5E, 0x20}},
}

// HeatColor maps a stability score to a display color by piecewise-linear
// interpolation between the fixed stops. Out-of-range scores clamp to the
// nearest stop.
func HeatColor(score float64) Color {
	if score <= heatStops[0].at {
		return heatStops[0].color
	}
	last := heatStops[len(heatStops)-1]
	if score >= last.at {
		return last.color
	}
	for i := 1; i < len(heatStops); i++ {
		hi := heatStops[i]
		if score > hi.at {
			continue
		}
		lo := heatStops[i-1]
		t := (score - lo.at) / (hi.at - lo.at)
		return Color{
			R: lerpByte(lo.color.R, hi.color.R, t),
			G: lerpByte(lo.color.G, hi.color.G, t),
			B: lerpByte(lo.color.B, hi.color.B, t),
		}
	}
	return last.color
}

func lerpByte(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}
