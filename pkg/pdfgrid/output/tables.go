package output

import (
	"fmt"

	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/models"
	"github.com/xuri/excelize/v2"
)

// TableDetectionParams tunes the table range heuristic.
type TableDetectionParams struct {
	// DensityMin is the minimum share of non-empty cells in the bounding box.
	DensityMin float64
	// CoverageMin is the minimum share of rows holding more than one cell.
	CoverageMin float64
	// MinNonemptyCells is the minimum number of non-empty cells in a block.
	MinNonemptyCells int
}

// DefaultTableParams returns the thresholds used by WriteXLSX.
func DefaultTableParams() TableDetectionParams {
	return TableDetectionParams{
		DensityMin:       0.04,
		CoverageMin:      0.2,
		MinNonemptyCells: 3,
	}
}

// DetectTables detects table-like regions in a grid.
// Blocks of rows separated by empty rows are evaluated independently.
// The result lists one cell range such as "A1:C12" per table-like block.
func DetectTables(grid models.Grid, params TableDetectionParams) []string {
	var ranges []string
	start := -1
	for i := 0; i <= len(grid); i++ {
		if i < len(grid) && len(grid[i]) > 0 {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			if rng, ok := detectBlock(grid, start, i-1, params); ok {
				ranges = append(ranges, rng)
			}
			start = -1
		}
	}
	return ranges
}

func detectBlock(grid models.Grid, first, last int, params TableDetectionParams) (string, bool) {
	minRow, maxRow, minCol, maxCol := findDataBounds(grid, first, last)
	if minRow < 0 {
		return "", false
	}

	nonEmptyCells, wideRows := countNonEmptyCells(grid, minRow, maxRow, minCol, maxCol)
	if nonEmptyCells < params.MinNonemptyCells {
		return "", false
	}

	totalCells := (maxRow - minRow + 1) * (maxCol - minCol + 1)
	density := float64(nonEmptyCells) / float64(totalCells)
	if density < params.DensityMin {
		return "", false
	}

	coverage := float64(wideRows) / float64(maxRow-minRow+1)
	if coverage < params.CoverageMin {
		return "", false
	}

	startCell, _ := excelize.CoordinatesToCellName(minCol+1, minRow+1)
	endCell, _ := excelize.CoordinatesToCellName(maxCol+1, maxRow+1)
	return fmt.Sprintf("%s:%s", startCell, endCell), true
}

// findDataBounds finds the bounding box of non-empty cells in rows first..last.
func findDataBounds(grid models.Grid, first, last int) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx := first; rowIdx <= last; rowIdx++ {
		for colIdx, cell := range grid[rowIdx] {
			if cell == "" {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if maxRow < 0 || rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if maxCol < 0 || colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	return
}

// countNonEmptyCells counts non-empty cells within bounds, and the rows
// holding more than one of them.
func countNonEmptyCells(grid models.Grid, minRow, maxRow, minCol, maxCol int) (count, wideRows int) {
	for rowIdx := minRow; rowIdx <= maxRow && rowIdx < len(grid); rowIdx++ {
		row := grid[rowIdx]
		inRow := 0
		for colIdx := minCol; colIdx <= maxCol && colIdx < len(row); colIdx++ {
			if row[colIdx] != "" {
				inRow++
			}
		}
		count += inRow
		if inRow > 1 {
			wideRows++
		}
	}
	return
}
