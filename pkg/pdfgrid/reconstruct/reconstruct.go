package reconstruct

import (
	"cmp"
	"slices"

	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/logging"
	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/models"
)

// Reconstruct rebuilds the grid of one page using the anchor policy.
//
// Rows are ordered by decreasing representative Y and cells within a row by
// increasing X. Empty or all-blank input yields an empty grid.
func Reconstruct(fragments []models.Fragment, yTolerance float64) models.Grid {
	return ReconstructWithParams(fragments, Params{
		YTolerance: yTolerance,
		Policy:     PolicyAnchor,
	})
}

// ReconstructWithParams rebuilds the grid of one page with explicit parameters.
func ReconstructWithParams(fragments []models.Fragment, params Params) models.Grid {
	clusters := Cluster(fragments, params)

	grid := make(models.Grid, 0, len(clusters))
	for _, c := range clusters {
		grid = append(grid, c.Row())
	}

	logging.Logger().Debug("reconstructed grid",
		"fragments", len(fragments),
		"rows", len(grid),
		"tolerance", params.YTolerance,
		"policy", string(params.Policy))

	return grid
}

// Row returns the cluster's cells ordered left to right.
func (c RowCluster) Row() models.Row {
	sorted := slices.Clone(c.Fragments)
	slices.SortStableFunc(sorted, func(a, b models.Fragment) int {
		return cmp.Compare(a.X, b.X)
	})

	row := make(models.Row, len(sorted))
	for i, f := range sorted {
		row[i] = f.Text
	}
	return row
}
