package pdfgrid

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/assemble"
	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/logging"
	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/models"
	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/source"
)

// Convert reconstructs the document grid of the PDF file at path.
//
// A document without usable text is not an error: the result reports
// Empty() and the caller decides how to surface it.
func Convert(ctx context.Context, path string, opts Options) (*models.DocumentData, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, NewExtractionError(0, "open", err)
	}

	doc, err := source.Open(path, opts.runOptions())
	if err != nil {
		return nil, NewExtractionError(0, "open", fmt.Errorf("%w: %w", ErrInvalidFormat, err))
	}
	defer doc.Close()

	return ConvertSource(ctx, doc, filepath.Base(path), opts)
}

// ConvertReader reconstructs the document grid of a PDF held in r.
// Name is recorded as the document name.
func ConvertReader(ctx context.Context, r io.ReaderAt, size int64, name string, opts Options) (*models.DocumentData, error) {
	doc, err := source.NewDocument(r, size, opts.runOptions())
	if err != nil {
		return nil, NewExtractionError(0, "open", fmt.Errorf("%w: %w", ErrInvalidFormat, err))
	}
	defer doc.Close()

	return ConvertSource(ctx, doc, name, opts)
}

// ConvertSource reconstructs the document grid from any page source.
func ConvertSource(ctx context.Context, src assemble.PageSource, name string, opts Options) (*models.DocumentData, error) {
	start := time.Now()
	log := logging.Logger().With("doc", name)

	pages, err := assemble.Pages(ctx, src, opts.assembleParams())
	if err != nil {
		var pageErr *assemble.PageError
		if errors.As(err, &pageErr) {
			return nil, NewExtractionError(pageErr.Page, "text", pageErr.Err)
		}
		return nil, err
	}

	rows := assemble.DocumentWithSeparator(assemble.Grids(pages), opts.ShouldSeparatePages())
	log.Info("document converted",
		"pages", len(pages),
		"rows", len(rows),
		"elapsed", time.Since(start))

	return &models.DocumentData{
		DocName:   name,
		PageCount: len(pages),
		Pages:     pages,
		Rows:      rows,
	}, nil
}
