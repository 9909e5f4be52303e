package output

import (
	"fmt"

	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/models"
	"github.com/xuri/excelize/v2"
)

// VerifyXLSX reopens the workbook at path and checks that its sheet holds
// exactly grid, and that the print area covers it when opts asks for one.
func VerifyXLSX(path string, grid models.Grid, opts XLSXOptions) error {
	sheetName := opts.SheetName
	if sheetName == "" {
		sheetName = DefaultSheetName
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	got, err := ReadSheet(f, sheetName)
	if err != nil {
		return err
	}
	if len(got) != len(grid) {
		return fmt.Errorf("sheet %q has %d rows, expected %d", sheetName, len(got), len(grid))
	}
	for i := range grid {
		if !equalRows(got[i], grid[i]) {
			return fmt.Errorf("sheet %q row %d = %q, expected %q", sheetName, i+1, got[i], grid[i])
		}
	}

	if opts.PrintArea && len(grid) > 0 {
		want := PrintArea{R1: 1, C1: 1, R2: len(grid), C2: grid.MaxColumns()}
		areas := ExtractPrintAreas(f)[sheetName]
		if len(areas) != 1 || areas[0] != want {
			return fmt.Errorf("sheet %q print area = %v, expected %v", sheetName, areas, want)
		}
	}
	return nil
}

func equalRows(a, b models.Row) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
