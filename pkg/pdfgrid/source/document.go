// Package source reads positioned text fragments from PDF documents.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ledongthuc/pdf"
	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/logging"
	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/models"
)

// ErrPageOutOfRange indicates a page number outside 1..NumPages.
var ErrPageOutOfRange = errors.New("page out of range")

// Document is an opened PDF. Page reads are serialized, so a Document
// may be shared by concurrent callers.
type Document struct {
	mu     sync.Mutex
	file   *os.File
	reader *pdf.Reader
	runs   RunOptions
}

// Open opens the PDF file at path.
func Open(path string, runs RunOptions) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	doc, err := NewDocument(f, info.Size(), runs)
	if err != nil {
		f.Close()
		return nil, err
	}
	doc.file = f
	return doc, nil
}

// NewDocument reads a PDF from r, which must hold size bytes.
func NewDocument(r io.ReaderAt, size int64, runs RunOptions) (doc *Document, err error) {
	defer func() {
		if p := recover(); p != nil {
			doc, err = nil, fmt.Errorf("malformed pdf: %v", p)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, err
	}
	return &Document{reader: reader, runs: runs}, nil
}

// Close releases the underlying file, if any.
func (d *Document) Close() error {
	if d.file == nil {
		return nil
	}
	return d.file.Close()
}

// NumPages returns the number of pages.
func (d *Document) NumPages() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reader.NumPage()
}

// PageFragments returns the text runs of the given page (1-based).
func (d *Document) PageFragments(ctx context.Context, page int) ([]models.Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	texts, err := d.pageTexts(page)
	if err != nil {
		return nil, err
	}

	fragments := CoalesceRuns(texts, d.runs)
	logging.Logger().Debug("page text extracted",
		"page", page,
		"glyphs", len(texts),
		"fragments", len(fragments))
	return fragments, nil
}

func (d *Document) pageTexts(page int) (texts []pdf.Text, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			texts, err = nil, fmt.Errorf("malformed page content: %v", p)
		}
	}()

	if page < 1 || page > d.reader.NumPage() {
		return nil, fmt.Errorf("%w: %d", ErrPageOutOfRange, page)
	}
	p := d.reader.Page(page)
	if p.V.IsNull() {
		return nil, nil
	}
	return p.Content().Text, nil
}
