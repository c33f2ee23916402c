package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/FrameFit/internal/engine"
	"github.com/piwi3910/FrameFit/internal/model"
)

// ExportWorkbook writes the analysis to an Excel workbook with three sheets:
// Parts (the input snapshot), Scores (per-part results), and Statistics.
func ExportWorkbook(path string, parts []model.Part, report engine.StructuralReport) error {
	wood := woodParts(parts)
	if len(wood) == 0 {
		return fmt.Errorf("no wood parts to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Parts"); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	if _, err := f.NewSheet("Scores"); err != nil {
		return fmt.Errorf("creating Scores sheet: %w", err)
	}
	if _, err := f.NewSheet("Statistics"); err != nil {
		return fmt.Errorf("creating Statistics sheet: %w", err)
	}

	if err := writePartsSheet(f, parts); err != nil {
		return err
	}
	if err := writeScoresSheet(f, wood, report); err != nil {
		return err
	}
	if err := writeStatisticsSheet(f, report); err != nil {
		return err
	}

	return f.SaveAs(path)
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func writePartsSheet(f *excelize.File, parts []model.Part) error {
	header := []interface{}{"ID", "Label", "Category", "Hardware", "Width", "Height", "Depth", "X", "Y", "Z", "Rot X", "Rot Y", "Rot Z"}
	if err := setRow(f, "Parts", 1, header); err != nil {
		return err
	}
	for i, p := range parts {
		row := []interface{}{
			p.ID, p.Label, string(p.Category), string(p.Hardware),
			p.Size.X, p.Size.Y, p.Size.Z,
			p.Position.X, p.Position.Y, p.Position.Z,
			p.Rotation.X, p.Rotation.Y, p.Rotation.Z,
		}
		if err := setRow(f, "Parts", i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeScoresSheet(f *excelize.File, wood []model.Part, report engine.StructuralReport) error {
	weak := map[string]bool{}
	for _, id := range report.WeakPartIDs {
		weak[id] = true
	}
	header := []interface{}{"Label", "Score", "Pattern Score", "Span Axis", "Support Points", "Load Points", "Fastener Points", "Weak"}
	if err := setRow(f, "Scores", 1, header); err != nil {
		return err
	}
	for i, p := range wood {
		field := report.PartFields[p.ID]
		row := []interface{}{
			p.Label,
			report.PartScores[p.ID],
			field.PatternScore,
			field.SpanAxis,
			len(field.SupportPoints),
			len(field.LoadPoints),
			len(field.FastenerPoints),
			weak[p.ID],
		}
		if err := setRow(f, "Scores", i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeStatisticsSheet(f *excelize.File, report engine.StructuralReport) error {
	s := report.Statistics
	rows := [][]interface{}{
		{"Overall score", report.Score},
		{"Grade", report.Grade},
		{"Recommendation", report.Recommendation},
		{"Total volume (cu in)", s.TotalVolume},
		{"Estimated weight (lb)", s.EstWeight},
		{"Footprint area (sq in)", s.FootprintArea},
		{"Height (in)", s.Height},
		{"Center of mass height (in)", s.CenterOfMassY},
		{"Span X (in)", s.SpanX},
		{"Span Z (in)", s.SpanZ},
		{"Symmetry X", s.SymmetryX},
		{"Symmetry Z", s.SymmetryZ},
		{"Grounded parts", s.GroundedParts},
		{"Connected components", s.Components},
		{"Contacts", s.ContactCount},
		{"Fasteners", s.FastenerCount},
		{"Bridging fasteners", s.BridgingCount},
	}
	for i, row := range rows {
		if err := setRow(f, "Statistics", i+1, row); err != nil {
			return err
		}
	}
	return nil
}
