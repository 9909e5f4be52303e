// Package output encodes reconstructed grids as spreadsheets and JSON.
package output

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/logging"
	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/models"
	"github.com/xuri/excelize/v2"
)

// DefaultSheetName is the name of the sheet holding the document grid.
const DefaultSheetName = "Data"

// XLSXOptions configures spreadsheet encoding.
type XLSXOptions struct {
	// SheetName is the worksheet name. Empty means DefaultSheetName.
	SheetName string
	// AutoFilter applies an autofilter over the largest detected table.
	AutoFilter bool
	// PrintArea defines the print area over the used range.
	PrintArea bool
	// ColumnWidths sizes each column from its longest cell.
	ColumnWidths bool
	// MaxColumnWidth caps computed column widths, in characters.
	MaxColumnWidth float64
}

// DefaultXLSXOptions returns default spreadsheet options.
func DefaultXLSXOptions() XLSXOptions {
	return XLSXOptions{
		SheetName:      DefaultSheetName,
		PrintArea:      true,
		ColumnWidths:   true,
		MaxColumnWidth: 60,
	}
}

// NewWorkbook builds a workbook holding grid in a single sheet, one string
// cell per grid cell. The caller owns the returned file and must close it.
func NewWorkbook(grid models.Grid, opts XLSXOptions) (*excelize.File, error) {
	sheetName := opts.SheetName
	if sheetName == "" {
		sheetName = DefaultSheetName
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		f.Close()
		return nil, err
	}
	if err := fillSheet(f, sheetName, grid, opts); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func fillSheet(f *excelize.File, sheetName string, grid models.Grid, opts XLSXOptions) error {
	for rowIdx, row := range grid {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, rowIdx+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for i, v := range row {
			values[i] = v
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("row %d: %w", rowIdx+1, err)
		}
	}

	cols := grid.MaxColumns()
	if cols == 0 {
		return nil
	}

	if opts.ColumnWidths {
		if err := setColumnWidths(f, sheetName, grid, opts.MaxColumnWidth); err != nil {
			return err
		}
	}

	if opts.PrintArea {
		area := PrintArea{R1: 1, C1: 1, R2: len(grid), C2: cols}
		if err := SetPrintArea(f, sheetName, area); err != nil {
			return err
		}
	}

	if opts.AutoFilter {
		if rng := largestTable(DetectTables(grid, DefaultTableParams())); rng != "" {
			if err := f.AutoFilter(sheetName, rng, nil); err != nil {
				return err
			}
			logging.Logger().Debug("autofilter applied", "sheet", sheetName, "range", rng)
		}
	}

	return nil
}

func setColumnWidths(f *excelize.File, sheetName string, grid models.Grid, maxWidth float64) error {
	if maxWidth <= 0 {
		maxWidth = DefaultXLSXOptions().MaxColumnWidth
	}

	widths := make([]int, grid.MaxColumns())
	for _, row := range grid {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	for i, n := range widths {
		width := float64(n + 2)
		if width < 8 {
			width = 8
		}
		if width > maxWidth {
			width = maxWidth
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

// largestTable picks the range covering the most cells.
func largestTable(ranges []string) string {
	best, bestSize := "", 0
	for _, rng := range ranges {
		parts := strings.Split(rng, ":")
		if len(parts) != 2 {
			continue
		}
		c1, r1, err1 := excelize.CellNameToCoordinates(parts[0])
		c2, r2, err2 := excelize.CellNameToCoordinates(parts[1])
		if err1 != nil || err2 != nil {
			continue
		}
		if size := (c2 - c1 + 1) * (r2 - r1 + 1); size > bestSize {
			best, bestSize = rng, size
		}
	}
	return best
}

// WriteXLSX encodes grid as an xlsx workbook to w.
func WriteXLSX(w io.Writer, grid models.Grid, opts XLSXOptions) error {
	f, err := NewWorkbook(grid, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.Write(w)
}

// SaveXLSX encodes grid as an xlsx workbook at path.
func SaveXLSX(path string, grid models.Grid, opts XLSXOptions) error {
	f, err := NewWorkbook(grid, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.SaveAs(path)
}

// OutputName derives an output file name from an input name by replacing
// a case-insensitive ".pdf" suffix with ext.
func OutputName(input, ext string) string {
	if strings.EqualFold(filepath.Ext(input), ".pdf") {
		input = input[:len(input)-len(".pdf")]
	}
	return input + ext
}
