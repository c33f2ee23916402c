// FrameFit — structural analysis for wood assemblies
//
// Loads an assembly (or builds the demo bookcase), scores its structural
// integrity, and optionally places fasteners between two parts and writes
// PDF/XLSX/DXF outputs.
//
// Build:
//   go build -o framefit ./cmd/framefit

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/piwi3910/FrameFit/internal/engine"
	"github.com/piwi3910/FrameFit/internal/export"
	"github.com/piwi3910/FrameFit/internal/model"
	"github.com/piwi3910/FrameFit/internal/project"
)

func main() {
	var (
		projectPath  = flag.String("project", "", "assembly JSON file to analyze (default: built-in demo bookcase)")
		settingsPath = flag.String("settings", project.DefaultSettingsPath(), "analysis settings TOML file")
		fasten       = flag.String("fasten", "", "two part labels to join with screws, comma separated")
		reportPath   = flag.String("report", "", "write a PDF structural report to this path")
		workbookPath = flag.String("workbook", "", "write an XLSX analysis workbook to this path")
		dxfPath      = flag.String("dxf", "", "write a DXF drilling template to this path")
		savePath     = flag.String("save", "", "write the (possibly fastened) assembly back to this path")
		verbose      = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	logger := zap.NewNop().Sugar()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err == nil {
			logger = l.Sugar()
		}
	}

	if err := run(*projectPath, *settingsPath, *fasten, *reportPath, *workbookPath, *dxfPath, *savePath, logger); err != nil {
		fmt.Fprintln(os.Stderr, "framefit:", err)
		os.Exit(1)
	}
}

func run(projectPath, settingsPath, fasten, reportPath, workbookPath, dxfPath, savePath string, logger *zap.SugaredLogger) error {
	settings, err := project.LoadSettings(settingsPath)
	if err != nil {
		return err
	}

	asm := demoBookcase()
	if projectPath != "" {
		asm, err = project.LoadAssembly(projectPath)
		if err != nil {
			return err
		}
	}

	eng := engine.New(settings, logger)

	if fasten != "" {
		ids, err := resolveLabels(asm.Parts, fasten)
		if err != nil {
			return err
		}
		result := eng.PlaceFasteners(ids[0], ids[1], asm.Parts)
		if !result.OK {
			return fmt.Errorf("fastener placement failed: %s", result.Message)
		}
		asm.Parts = append(asm.Parts, result.Fasteners...)
		fmt.Printf("Placed %d screws (%s)\n", result.ScrewCount, result.Fasteners[0].Label)
	}

	report := eng.Analyze(asm.Parts)
	printReport(asm, report)

	if reportPath != "" {
		if err := export.ExportReport(reportPath, asm.Parts, report); err != nil {
			return err
		}
		fmt.Println("Wrote report:", reportPath)
	}
	if workbookPath != "" {
		if err := export.ExportWorkbook(workbookPath, asm.Parts, report); err != nil {
			return err
		}
		fmt.Println("Wrote workbook:", workbookPath)
	}
	if dxfPath != "" {
		if err := export.ExportDrillTemplate(dxfPath, asm.Parts); err != nil {
			return err
		}
		fmt.Println("Wrote drill template:", dxfPath)
	}
	if savePath != "" {
		if err := project.SaveAssembly(savePath, asm); err != nil {
			return err
		}
		fmt.Println("Saved assembly:", savePath)
	}
	return nil
}

// resolveLabels maps two comma-separated part labels (or raw IDs) to part IDs.
func resolveLabels(parts []model.Part, arg string) ([2]string, error) {
	names := strings.Split(arg, ",")
	if len(names) != 2 {
		return [2]string{}, fmt.Errorf("-fasten wants exactly two labels, got %q", arg)
	}
	var ids [2]string
	for i, name := range names {
		name = strings.TrimSpace(name)
		found := ""
		for _, p := range parts {
			if p.Label == name || p.ID == name {
				found = p.ID
				break
			}
		}
		if found == "" {
			return [2]string{}, fmt.Errorf("no part named %q", name)
		}
		ids[i] = found
	}
	return ids, nil
}

func printReport(asm project.Assembly, report engine.StructuralReport) {
	fmt.Printf("Assembly: %s (%d parts)\n", asm.Name, len(asm.Parts))
	fmt.Printf("Score: %.2f  Grade: %s\n", report.Score, report.Grade)
	fmt.Printf("Recommendation: %s\n", report.Recommendation)
	s := report.Statistics
	fmt.Printf("Weight: %.1f lb  Height: %.1f in  Components: %d  Fasteners: %d (%d bridging)\n",
		s.EstWeight, s.Height, s.Components, s.FastenerCount, s.BridgingCount)
	if len(report.WeakPartIDs) > 0 {
		fmt.Printf("Weak parts: %s\n", strings.Join(report.WeakPartIDs, ", "))
	}
}

// demoBookcase builds a small two-shelf bookcase: two uprights on the
// ground, a bottom and a top shelf spanning between them, and a thin back
// panel.
func demoBookcase() project.Assembly {
	asm := project.NewAssembly("demo bookcase")

	left := model.NewLumber("left upright", model.V(0.75, 36, 11.25), model.V(-14.625, 18, 0))
	right := model.NewLumber("right upright", model.V(0.75, 36, 11.25), model.V(14.625, 18, 0))

	bottom := model.NewSheet("bottom shelf", model.V(28.5, 0.75, 11.25), model.V(0, 12.375, 0))
	top := model.NewSheet("top shelf", model.V(28.5, 0.75, 11.25), model.V(0, 30.375, 0))

	back := model.NewSheet("back panel", model.V(30, 36, 0.25), model.V(0, 18, -5.75))

	asm.Parts = append(asm.Parts, left, right, bottom, top, back)
	return asm
}
