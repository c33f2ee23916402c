package export

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"

	"github.com/piwi3910/FrameFit/internal/model"
)

// ExportDrillTemplate writes a plan-view DXF with each wood part's footprint
// outline on a PARTS layer and every fastener position as a circle of its
// true diameter on a DRILL layer. Printed at 1:1 it serves as a drilling
// template.
func ExportDrillTemplate(path string, parts []model.Part) error {
	var wood, fasteners []model.Part
	for _, p := range parts {
		if p.IsWood() {
			wood = append(wood, p)
		} else if p.IsFastener() {
			fasteners = append(fasteners, p)
		}
	}
	if len(wood) == 0 {
		return fmt.Errorf("no wood parts to export")
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer("PARTS", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("adding PARTS layer: %w", err)
	}

	for _, p := range wood {
		outline := planOutline(p)
		for i := range outline {
			a := outline[i]
			b := outline[(i+1)%len(outline)]
			if _, err := d.Line(a.X, a.Y, 0, b.X, b.Y, 0); err != nil {
				return fmt.Errorf("drawing outline for %s: %w", p.Label, err)
			}
		}
	}

	if len(fasteners) > 0 {
		if _, err := d.AddLayer("DRILL", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("adding DRILL layer: %w", err)
		}
		for _, f := range fasteners {
			radius := f.Size.X / 2
			if _, err := d.Circle(f.Position.X, f.Position.Z, 0, radius); err != nil {
				return fmt.Errorf("drawing drill mark for %s: %w", f.Label, err)
			}
		}
	}

	return d.SaveAs(path)
}

// planOutline projects a part's footprint polygon into the world X/Z plane,
// applying only the yaw component of its orientation. Pitched or rolled
// parts render as their upright outline, which is what a drilling template
// wants.
func planOutline(p model.Part) []model.Point2D {
	poly := p.Footprint.Polygon(p.Size.X, p.Size.Z)
	yaw := p.Rotation.Y * math.Pi / 180
	sin, cos := math.Sin(yaw), math.Cos(yaw)

	out := make([]model.Point2D, len(poly))
	for i, pt := range poly {
		// Footprint points are local X/Z offsets from the part center.
		x := pt.X*cos + pt.Y*sin
		z := -pt.X*sin + pt.Y*cos
		out[i] = model.Point2D{X: p.Position.X + x, Y: p.Position.Z + z}
	}
	return out
}
