package source

import (
	"math"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/logging"
	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/models"
	"golang.org/x/text/unicode/norm"
)

// RunOptions controls how glyphs are merged into text runs.
type RunOptions struct {
	// Disabled passes every glyph through as its own fragment.
	Disabled bool
	// GapFactor is the largest horizontal gap between consecutive glyphs,
	// as a fraction of the font size, that still continues a run.
	GapFactor float64
	// SpaceFactor is the gap, as a fraction of the font size, above which a
	// space is inserted between merged glyphs that carry none.
	SpaceFactor float64
	// BaselineEpsilon is the largest Y difference, in points, between
	// glyphs of the same run.
	BaselineEpsilon float64
}

// DefaultRunOptions returns default run merging options.
func DefaultRunOptions() RunOptions {
	return RunOptions{
		GapFactor:       0.3,
		SpaceFactor:     0.1,
		BaselineEpsilon: 0.5,
	}
}

type run struct {
	font string
	size float64
	x, y float64
	end  float64
	text strings.Builder
}

func newRun(t pdf.Text) *run {
	r := &run{font: t.Font, size: t.FontSize, x: t.X, y: t.Y}
	r.text.WriteString(t.S)
	r.end = t.X + t.W
	return r
}

// add appends t, inserting a space when the gap before it is wider than
// spaceFactor of the font size and neither side already has one.
func (r *run) add(t pdf.Text, spaceFactor float64) {
	if t.X-r.end > spaceFactor*math.Abs(t.FontSize) &&
		!strings.HasSuffix(r.text.String(), " ") && !strings.HasPrefix(t.S, " ") {
		r.text.WriteByte(' ')
	}
	r.text.WriteString(t.S)
	r.end = t.X + t.W
}

func (r *run) continues(t pdf.Text, opts RunOptions) bool {
	if t.Font != r.font || t.FontSize != r.size {
		return false
	}
	if math.Abs(t.Y-r.y) > opts.BaselineEpsilon {
		return false
	}
	slack := opts.GapFactor * math.Abs(t.FontSize)
	gap := t.X - r.end
	return gap <= slack && gap >= -slack
}

func (r *run) fragment() models.Fragment {
	return models.Fragment{X: r.x, Y: r.y, Text: norm.NFC.String(r.text.String())}
}

// CoalesceRuns merges consecutive glyphs, in content stream order, into
// text runs. Glyphs with non-finite coordinates are dropped.
func CoalesceRuns(texts []pdf.Text, opts RunOptions) []models.Fragment {
	defaults := DefaultRunOptions()
	if opts.GapFactor <= 0 {
		opts.GapFactor = defaults.GapFactor
	}
	if opts.SpaceFactor <= 0 {
		opts.SpaceFactor = defaults.SpaceFactor
	}
	if opts.BaselineEpsilon <= 0 {
		opts.BaselineEpsilon = defaults.BaselineEpsilon
	}

	fragments := make([]models.Fragment, 0, len(texts))
	dropped := 0
	var cur *run

	for _, t := range texts {
		if !finite(t.X) || !finite(t.Y) {
			dropped++
			continue
		}
		if opts.Disabled {
			fragments = append(fragments, models.Fragment{X: t.X, Y: t.Y, Text: norm.NFC.String(t.S)})
			continue
		}
		if cur != nil && cur.continues(t, opts) {
			cur.add(t, opts.SpaceFactor)
			continue
		}
		if cur != nil {
			fragments = append(fragments, cur.fragment())
		}
		cur = newRun(t)
	}
	if cur != nil {
		fragments = append(fragments, cur.fragment())
	}

	if dropped > 0 {
		logging.Logger().Debug("dropped glyphs with non-finite position", "count", dropped)
	}
	return fragments
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
