package reconstruct

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/models"
)

// RowCluster groups the fragments assigned to one visual row.
type RowCluster struct {
	// Y is the representative key: the Y of the first fragment assigned.
	// It is never recomputed as fragments join.
	Y float64
	// Fragments holds the assigned fragments, with trimmed text.
	Fragments []models.Fragment

	lastY float64
}

// accepts reports whether a fragment at y may join the cluster.
func (c *RowCluster) accepts(y, tolerance float64, policy Policy) bool {
	ref := c.Y
	if policy == PolicyChain {
		ref = c.lastY
	}
	return math.Abs(ref-y) <= tolerance
}

func (c *RowCluster) add(f models.Fragment) {
	c.Fragments = append(c.Fragments, f)
	c.lastY = f.Y
}

// Cluster assigns fragments to row clusters and returns the clusters
// ordered top of page first.
//
// Fragments with empty trimmed text are discarded. The remaining fragments
// are put in a canonical order (Y descending, then X, then text) before the
// first-fit scan, so the result does not depend on input order.
func Cluster(fragments []models.Fragment, params Params) []RowCluster {
	tolerance := params.YTolerance
	if tolerance < 0 || math.IsNaN(tolerance) {
		tolerance = 0
	}

	kept := canonical(fragments)

	var clusters []RowCluster
	for _, f := range kept {
		idx := -1
		for i := range clusters {
			if clusters[i].accepts(f.Y, tolerance, params.Policy) {
				idx = i
				break
			}
		}
		if idx < 0 {
			clusters = append(clusters, RowCluster{Y: f.Y, lastY: f.Y})
			idx = len(clusters) - 1
		}
		clusters[idx].add(f)
	}

	slices.SortStableFunc(clusters, func(a, b RowCluster) int {
		return cmp.Compare(b.Y, a.Y)
	})
	return clusters
}

// canonical trims, filters and sorts fragments into scan order.
func canonical(fragments []models.Fragment) []models.Fragment {
	kept := make([]models.Fragment, 0, len(fragments))
	for _, f := range fragments {
		text := strings.TrimSpace(f.Text)
		if text == "" {
			continue
		}
		kept = append(kept, models.Fragment{X: f.X, Y: f.Y, Text: text})
	}

	slices.SortStableFunc(kept, func(a, b models.Fragment) int {
		if c := cmp.Compare(b.Y, a.Y); c != 0 {
			return c
		}
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return strings.Compare(a.Text, b.Text)
	})
	return kept
}
