// Package reconstruct rebuilds the row and column structure of a page
// from its positioned text fragments.
//
// Rows are inferred from approximate vertical alignment using a fixed
// tolerance on the Y coordinate. Columns are never modelled: within a row,
// cells are ordered by X each time the row is emitted.
package reconstruct

import "fmt"

// DefaultYTolerance is the row tolerance, in page units, used downstream
// when no tolerance is configured.
const DefaultYTolerance = 4.0

// Policy selects how a fragment is matched against the open rows.
type Policy string

const (
	// PolicyAnchor matches a fragment against each row's key, the Y of the
	// first fragment assigned to that row. The first row within tolerance wins.
	PolicyAnchor Policy = "anchor"
	// PolicyChain matches a fragment against the Y of the fragment most
	// recently added to each row, so rows grow transitively.
	PolicyChain Policy = "chain"
)

// ParsePolicy converts a policy name into a Policy.
// The empty string selects PolicyAnchor.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyAnchor:
		return PolicyAnchor, nil
	case PolicyChain:
		return PolicyChain, nil
	default:
		return "", fmt.Errorf("invalid policy: %s (must be anchor or chain)", s)
	}
}

// Params holds parameters for row reconstruction.
type Params struct {
	// YTolerance is the maximum Y distance for two fragments to share a row.
	// Negative values are treated as zero.
	YTolerance float64
	// Policy is the row matching policy. Empty means PolicyAnchor.
	Policy Policy
}

// DefaultParams returns default reconstruction parameters.
func DefaultParams() Params {
	return Params{
		YTolerance: DefaultYTolerance,
		Policy:     PolicyAnchor,
	}
}
