package report

import (
	"github.com/xuri/excelize/v2"

	"github.com/coilworks/coilnest/internal/sweep"
)

// WriteWorkbook exports a sweep as a workbook with a Summary sheet and one
// row per iteration on a Sweep sheet.
func WriteWorkbook(path string, points []sweep.Point) error {
	f := excelize.NewFile()
	defer f.Close()

	summary := "Summary"
	f.SetSheetName("Sheet1", summary)

	solved := 0
	for _, p := range points {
		if p.Solved() {
			solved++
		}
	}
	f.SetCellValue(summary, "A1", "Type")
	f.SetCellValue(summary, "B1", "Count")
	f.SetCellValue(summary, "A2", "Solved")
	f.SetCellValue(summary, "B2", solved)
	f.SetCellValue(summary, "A3", "Failed")
	f.SetCellValue(summary, "B3", len(points)-solved)
	f.SetCellValue(summary, "A4", "All")
	f.SetCellValue(summary, "B4", len(points))

	sheet := "Sweep"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := []string{
		"solid_stress_reserve", "nest_od", "free_length_delta",
		"outer_wire", "inner_wire", "outer_coils", "inner_coils",
		"iterations", "status",
	}
	for col, h := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for i, p := range points {
		row := i + 2
		values := make([]interface{}, 0, len(header))
		if p.Solved() {
			values = append(values,
				p.SolidStressReserve, p.OD(), p.FreeLengthDelta(),
				p.Solution.Outer.WireDiameter, p.Solution.Inner.WireDiameter,
				p.Solution.Outer.ActiveCoils, p.Solution.Inner.ActiveCoils,
				p.Solution.Diagnostic.Iterations, "solved")
		} else {
			values = append(values,
				p.SolidStressReserve, nil, nil, nil, nil, nil, nil, nil,
				p.Err.Error())
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			f.SetCellValue(sheet, cell, v)
		}
	}

	return f.SaveAs(path)
}
