// Package pdfgrid reconstructs spreadsheet grids from the positioned text of PDF pages.
package pdfgrid

import (
	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/assemble"
	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/reconstruct"
	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/source"
)

// Options configures conversion behavior.
type Options struct {
	// YTolerance is the row tolerance in page units.
	// If nil, defaults to reconstruct.DefaultYTolerance.
	YTolerance *float64
	// Policy is the row matching policy. Empty means anchor.
	Policy reconstruct.Policy
	// MergeGlyphs specifies whether glyphs are merged into text runs before
	// reconstruction. If nil, defaults to true.
	MergeGlyphs *bool
	// GapFactor is the glyph gap, as a fraction of font size, that still
	// continues a run. Zero means the source default.
	GapFactor float64
	// SpaceFactor is the gap, as a fraction of font size, above which a
	// space is inserted inside a run. Zero means the source default.
	SpaceFactor float64
	// PageSeparator specifies whether an empty row separates pages.
	// If nil, defaults to true.
	PageSeparator *bool
	// Workers bounds concurrent page processing. Zero means one per CPU.
	Workers int
	// OnPage receives progress after each page. It may be called concurrently.
	OnPage func(done, total int)
}

// DefaultOptions returns default conversion options.
func DefaultOptions() Options {
	return Options{
		Policy: reconstruct.PolicyAnchor,
	}
}

// Tolerance returns the effective row tolerance.
func (o Options) Tolerance() float64 {
	if o.YTolerance != nil {
		return *o.YTolerance
	}
	return reconstruct.DefaultYTolerance
}

// ShouldMergeGlyphs returns whether glyphs are merged into runs.
func (o Options) ShouldMergeGlyphs() bool {
	if o.MergeGlyphs != nil {
		return *o.MergeGlyphs
	}
	return true
}

// ShouldSeparatePages returns whether pages are separated by an empty row.
func (o Options) ShouldSeparatePages() bool {
	if o.PageSeparator != nil {
		return *o.PageSeparator
	}
	return true
}

func (o Options) runOptions() source.RunOptions {
	runs := source.DefaultRunOptions()
	runs.Disabled = !o.ShouldMergeGlyphs()
	if o.GapFactor > 0 {
		runs.GapFactor = o.GapFactor
	}
	if o.SpaceFactor > 0 {
		runs.SpaceFactor = o.SpaceFactor
	}
	return runs
}

func (o Options) assembleParams() assemble.Params {
	return assemble.Params{
		Reconstruct: reconstruct.Params{
			YTolerance: o.Tolerance(),
			Policy:     o.Policy,
		},
		Workers: o.Workers,
		OnPage:  o.OnPage,
	}
}
