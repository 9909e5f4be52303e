package models

// Row is an ordered sequence of cell strings, left to right.
type Row []string

// Grid is an ordered sequence of rows, top to bottom.
// Rows may have different lengths.
type Grid []Row

// Empty reports whether the grid has no rows.
func (g Grid) Empty() bool {
	return len(g) == 0
}

// CellCount returns the number of cells across all rows.
func (g Grid) CellCount() int {
	n := 0
	for _, row := range g {
		n += len(row)
	}
	return n
}

// MaxColumns returns the length of the longest row.
func (g Grid) MaxColumns() int {
	widest := 0
	for _, row := range g {
		if len(row) > widest {
			widest = len(row)
		}
	}
	return widest
}

// PageGrid is the grid reconstructed from one page.
type PageGrid struct {
	// Page is the page number (1-based).
	Page int `json:"page"`
	// Rows contains the reconstructed rows of the page.
	Rows Grid `json:"rows"`
}
