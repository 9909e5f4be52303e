package output

import (
	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/models"
	"github.com/xuri/excelize/v2"
)

// ReadSheet reads a sheet back into a grid. Empty rows are kept, so page
// separators survive a round trip; trailing empty cells are dropped.
func ReadSheet(f *excelize.File, sheetName string) (models.Grid, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	grid := make(models.Grid, len(rows))
	for i, row := range rows {
		end := len(row)
		for end > 0 && row[end-1] == "" {
			end--
		}
		grid[i] = append(models.Row{}, row[:end]...)
	}
	return grid, nil
}
