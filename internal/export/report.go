// Package export renders structural analysis results to shareable file
// formats: a PDF report, an Excel workbook, and a DXF drilling template.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/FrameFit/internal/engine"
	"github.com/piwi3910/FrameFit/internal/geom"
	"github.com/piwi3910/FrameFit/internal/model"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	contentWidth = pageWidth - marginLeft - marginRight
	rowHeight    = 7.0
	qrSize       = 24.0
)

// reportSummary is the data encoded into the report's QR code so a phone
// scan in the shop recalls the headline numbers.
type reportSummary struct {
	Score     float64 `json:"score"`
	Grade     string  `json:"grade"`
	Parts     int     `json:"parts"`
	WeakParts int     `json:"weak_parts"`
	WeightLbs float64 `json:"weight_lbs"`
	HeightIn  float64 `json:"height_in"`
}

// ExportReport generates a PDF structural report: headline score and grade,
// recommendation, assembly statistics, a heat-colored per-part score table,
// and a plan-view diagram.
func ExportReport(path string, parts []model.Part, report engine.StructuralReport) error {
	wood := woodParts(parts)
	if len(wood) == 0 {
		return fmt.Errorf("no wood parts to report on")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.AddPage()

	y := renderHeadline(pdf, report, len(wood))
	y = renderStatistics(pdf, y, report.Statistics)
	renderPartTable(pdf, y, wood, report)

	pdf.AddPage()
	renderPlanView(pdf, wood, report)

	return pdf.OutputFileAndClose(path)
}

func woodParts(parts []model.Part) []model.Part {
	var wood []model.Part
	for _, p := range parts {
		if p.IsWood() {
			wood = append(wood, p)
		}
	}
	sort.Slice(wood, func(i, j int) bool { return wood[i].Label < wood[j].Label })
	return wood
}

// renderHeadline draws the title, grade badge, recommendation, and QR code.
// Returns the y position below the block.
func renderHeadline(pdf *fpdf.Fpdf, report engine.StructuralReport, woodCount int) float64 {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth-qrSize, 10, "Structural Analysis Report", "", 0, "L", false, 0, "")

	// Grade badge colored by the same heat scale as the part overlays.
	c := engine.HeatColor(report.Score)
	badgeX := marginLeft
	badgeY := marginTop + 14
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.4)
	pdf.Rect(badgeX, badgeY, 26, 16, "FD")
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetXY(badgeX, badgeY+4)
	pdf.CellFormat(26, 8, report.Grade, "", 0, "C", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetXY(badgeX+32, badgeY)
	pdf.CellFormat(100, 6, fmt.Sprintf("Overall score: %.2f", report.Score), "", 0, "L", false, 0, "")
	pdf.SetXY(badgeX+32, badgeY+7)
	pdf.CellFormat(100, 6, fmt.Sprintf("Parts analyzed: %d, weak: %d", woodCount, len(report.WeakPartIDs)), "", 0, "L", false, 0, "")

	if png, err := summaryQR(report, woodCount); err == nil {
		pdf.RegisterImageOptionsReader("report_qr", fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
		pdf.ImageOptions("report_qr", pageWidth-marginRight-qrSize, marginTop, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	}

	pdf.SetFont("Helvetica", "I", 10)
	pdf.SetXY(marginLeft, badgeY+20)
	pdf.MultiCell(contentWidth, 5, "Recommendation: "+report.Recommendation, "", "L", false)
	return pdf.GetY() + 4
}

func summaryQR(report engine.StructuralReport, woodCount int) ([]byte, error) {
	data, err := json.Marshal(reportSummary{
		Score:     report.Score,
		Grade:     report.Grade,
		Parts:     woodCount,
		WeakParts: len(report.WeakPartIDs),
		WeightLbs: report.Statistics.EstWeight,
		HeightIn:  report.Statistics.Height,
	})
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(string(data), qrcode.Medium, 256)
}

func renderStatistics(pdf *fpdf.Fpdf, y float64, s engine.Statistics) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(contentWidth, 7, "Assembly Statistics", "B", 0, "L", false, 0, "")
	y += 9

	lines := []string{
		fmt.Sprintf("Wood volume: %.0f cu in   Estimated weight: %.1f lb", s.TotalVolume, s.EstWeight),
		fmt.Sprintf("Footprint: %.0f sq in (%.1f x %.1f in)   Height: %.1f in", s.FootprintArea, s.SpanX, s.SpanZ, s.Height),
		fmt.Sprintf("Center of mass height: %.1f in   Symmetry X/Z: %.2f / %.2f", s.CenterOfMassY, s.SymmetryX, s.SymmetryZ),
		fmt.Sprintf("Grounded parts: %d   Connected components: %d   Contacts: %d", s.GroundedParts, s.Components, s.ContactCount),
		fmt.Sprintf("Fasteners: %d (%d bridging)", s.FastenerCount, s.BridgingCount),
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range lines {
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(contentWidth, 5, line, "", 0, "L", false, 0, "")
		y += 6
	}
	return y + 4
}

// renderPartTable draws one row per wood part with a heat-colored score cell.
func renderPartTable(pdf *fpdf.Fpdf, y float64, wood []model.Part, report engine.StructuralReport) {
	weak := map[string]bool{}
	for _, id := range report.WeakPartIDs {
		weak[id] = true
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(contentWidth, 7, "Part Scores", "B", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{52, 22, 40, 18, 22, 26}
	headers := []string{"Part", "Category", "Size (W x H x D)", "Score", "Pattern", "Status"}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetXY(marginLeft, y)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], rowHeight, h, "1", 0, "L", false, 0, "")
	}
	y += rowHeight

	pdf.SetFont("Helvetica", "", 9)
	for _, p := range wood {
		if y > pageHeight-marginBottom-rowHeight {
			pdf.AddPage()
			y = marginTop
		}
		score := report.PartScores[p.ID]
		field := report.PartFields[p.ID]
		c := engine.HeatColor(score)

		status := "OK"
		if weak[p.ID] {
			status = "WEAK"
		}

		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(colWidths[0], rowHeight, p.Label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], rowHeight, string(p.Category), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[2], rowHeight, fmt.Sprintf("%.1f x %.1f x %.1f", p.Size.X, p.Size.Y, p.Size.Z), "1", 0, "L", false, 0, "")

		pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
		pdf.SetTextColor(255, 255, 255)
		pdf.CellFormat(colWidths[3], rowHeight, fmt.Sprintf("%.2f", score), "1", 0, "C", true, 0, "")
		pdf.SetTextColor(0, 0, 0)

		pdf.CellFormat(colWidths[4], rowHeight, fmt.Sprintf("%.2f", field.PatternScore), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidths[5], rowHeight, status, "1", 0, "C", false, 0, "")
		y += rowHeight
	}
}

// renderPlanView draws the assembly from above, each part's bounding
// rectangle filled with its heat color.
func renderPlanView(pdf *fpdf.Fpdf, wood []model.Part, report engine.StructuralReport) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth, 8, "Plan View (scores as heat colors)", "", 0, "L", false, 0, "")

	minX, minZ := math.Inf(1), math.Inf(1)
	maxX, maxZ := math.Inf(-1), math.Inf(-1)
	type rect struct {
		x, z, w, d float64
		id, label  string
	}
	rects := make([]rect, 0, len(wood))
	for _, p := range wood {
		mn, mx := geom.NewFrame(p).WorldBounds()
		rects = append(rects, rect{x: mn.X, z: mn.Z, w: mx.X - mn.X, d: mx.Z - mn.Z, id: p.ID, label: p.Label})
		minX = math.Min(minX, mn.X)
		minZ = math.Min(minZ, mn.Z)
		maxX = math.Max(maxX, mx.X)
		maxZ = math.Max(maxZ, mx.Z)
	}
	spanX := math.Max(maxX-minX, 1e-6)
	spanZ := math.Max(maxZ-minZ, 1e-6)

	drawTop := marginTop + 14
	drawW := contentWidth
	drawH := pageHeight - drawTop - marginBottom
	scale := math.Min(drawW/spanX, drawH/spanZ)
	offX := marginLeft + (drawW-spanX*scale)/2
	offZ := drawTop

	pdf.SetLineWidth(0.3)
	for _, r := range rects {
		c := engine.HeatColor(report.PartScores[r.id])
		pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
		pdf.SetDrawColor(30, 30, 30)
		px := offX + (r.x-minX)*scale
		pz := offZ + (r.z-minZ)*scale
		pdf.Rect(px, pz, r.w*scale, r.d*scale, "FD")

		pdf.SetFont("Helvetica", "", 7)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetXY(px, pz+r.d*scale/2-2)
		pdf.CellFormat(r.w*scale, 4, r.label, "", 0, "C", false, 0, "")
	}
}
