// Package assemble runs the reconstructor over every page of a document
// and joins the page grids into the document grid.
package assemble

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/logging"
	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/models"
	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/reconstruct"
	"golang.org/x/sync/errgroup"
)

// PageSource yields the positioned text fragments of each page.
// Pages are numbered from 1.
type PageSource interface {
	NumPages() int
	PageFragments(ctx context.Context, page int) ([]models.Fragment, error)
}

// PageError reports an upstream failure while reading one page.
type PageError struct {
	Page int
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %d: %v", e.Page, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}

// Params configures page processing.
type Params struct {
	// Reconstruct holds the row reconstruction parameters.
	Reconstruct reconstruct.Params
	// Workers bounds the number of pages processed at once.
	// Zero or negative means runtime.NumCPU().
	Workers int
	// OnPage, if set, is called after each page completes with the number of
	// completed pages and the total. It may be called from several goroutines.
	OnPage func(done, total int)
}

// DefaultParams returns default page processing parameters.
func DefaultParams() Params {
	return Params{
		Reconstruct: reconstruct.DefaultParams(),
	}
}

// Pages reconstructs every page of src. Pages are processed concurrently,
// but the result is always in page order. The first upstream failure stops
// the run and is returned as a *PageError.
func Pages(ctx context.Context, src PageSource, params Params) ([]models.PageGrid, error) {
	total := src.NumPages()
	results := make([]models.PageGrid, total)

	workers := params.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var done atomic.Int32
	for i := 0; i < total; i++ {
		if gctx.Err() != nil {
			break
		}
		page := i + 1
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			fragments, err := src.PageFragments(gctx, page)
			if err != nil {
				if cerr := ctx.Err(); cerr != nil {
					return cerr
				}
				return &PageError{Page: page, Err: err}
			}
			rows := reconstruct.ReconstructWithParams(fragments, params.Reconstruct)
			results[i] = models.PageGrid{Page: page, Rows: rows}

			logging.Logger().Debug("page reconstructed",
				"page", page,
				"fragments", len(fragments),
				"rows", len(rows),
				"elapsed", time.Since(start))

			if params.OnPage != nil {
				params.OnPage(int(done.Add(1)), total)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Document joins page grids into the document grid, inserting one empty
// row before every non-empty page grid except the first.
func Document(pages []models.Grid) models.Grid {
	return DocumentWithSeparator(pages, true)
}

// DocumentWithSeparator joins page grids; separate controls whether empty
// separator rows are inserted between pages.
func DocumentWithSeparator(pages []models.Grid, separate bool) models.Grid {
	doc := models.Grid{}
	seen := false
	for _, page := range pages {
		if len(page) == 0 {
			continue
		}
		if seen && separate {
			doc = append(doc, models.Row{})
		}
		doc = append(doc, page...)
		seen = true
	}
	return doc
}

// Grids returns the row grids of pages, in order.
func Grids(pages []models.PageGrid) []models.Grid {
	grids := make([]models.Grid, len(pages))
	for i, p := range pages {
		grids[i] = p.Rows
	}
	return grids
}
