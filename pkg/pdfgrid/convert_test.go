package pdfgrid

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/pdfgrid-go/internal/testpdf"
	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/models"
	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/reconstruct"
)

func invoicePages() []testpdf.Page {
	return []testpdf.Page{
		{
			{X: 50, Y: 700, S: "Item"},
			{X: 200, Y: 700, S: "Qty"},
			{X: 300, Y: 701, S: "Price"},
			{X: 50, Y: 680, S: "Apple"},
			{X: 200, Y: 680, S: "3"},
			{X: 300, Y: 679, S: "1.50"},
		},
		{},
		{
			{X: 50, Y: 700, S: "Total"},
			{X: 300, Y: 700, S: "4.50"},
		},
	}
}

func TestConvert(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoice.pdf")
	require.NoError(t, testpdf.WriteFile(path, invoicePages()...))

	doc, err := Convert(context.Background(), path, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "invoice.pdf", doc.DocName)
	assert.Equal(t, 3, doc.PageCount)
	require.Len(t, doc.Pages, 3)
	assert.Empty(t, doc.Pages[1].Rows)
	assert.Equal(t, models.Grid{
		{"Item", "Qty", "Price"},
		{"Apple", "3", "1.50"},
		{},
		{"Total", "4.50"},
	}, doc.Rows)
	assert.False(t, doc.Empty())
}

func TestConvertOptions(t *testing.T) {
	data := testpdf.Build(invoicePages()...)
	noSeparator := false
	tolerance := 25.0

	doc, err := ConvertReader(context.Background(), bytes.NewReader(data), int64(len(data)), "mem.pdf", Options{
		YTolerance:    &tolerance,
		PageSeparator: &noSeparator,
		Workers:       1,
	})
	require.NoError(t, err)
	assert.Equal(t, models.Grid{
		{"Item", "Apple", "Qty", "3", "Price", "1.50"},
		{"Total", "4.50"},
	}, doc.Rows)
}

func TestConvertProgress(t *testing.T) {
	data := testpdf.Build(invoicePages()...)
	var calls []int
	_, err := ConvertReader(context.Background(), bytes.NewReader(data), int64(len(data)), "mem.pdf", Options{
		Workers: 1,
		OnPage: func(done, total int) {
			assert.Equal(t, 3, total)
			calls = append(calls, done)
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, calls)
}

func TestConvertNothingExtractable(t *testing.T) {
	data := testpdf.Build(testpdf.Page{{X: 10, Y: 10, S: "   "}}, testpdf.Page{})
	doc, err := ConvertReader(context.Background(), bytes.NewReader(data), int64(len(data)), "blank.pdf", DefaultOptions())
	require.NoError(t, err)
	assert.True(t, doc.Empty())
	assert.Equal(t, 2, doc.PageCount)
}

func TestConvertFileNotFound(t *testing.T) {
	_, err := Convert(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"), DefaultOptions())
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestConvertInvalidFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.pdf")
	require.NoError(t, os.WriteFile(path, []byte("plain text, not a pdf"), 0644))

	_, err := Convert(context.Background(), path, DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	var extErr *ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.Equal(t, "open", extErr.Stage)
}

type failingSource struct{ cause error }

func (s failingSource) NumPages() int { return 2 }

func (s failingSource) PageFragments(_ context.Context, page int) ([]models.Fragment, error) {
	if page == 2 {
		return nil, s.cause
	}
	return []models.Fragment{{X: 1, Y: 1, Text: "ok"}}, nil
}

func TestConvertSourcePageFailure(t *testing.T) {
	cause := errors.New("unsupported font encoding")
	_, err := ConvertSource(context.Background(), failingSource{cause}, "x.pdf", Options{Workers: 1})
	require.Error(t, err)

	var extErr *ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.Equal(t, 2, extErr.Page)
	assert.Equal(t, "text", extErr.Stage)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "extraction error on page 2 (text): unsupported font encoding", err.Error())
}

func TestOptionsDefaults(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, reconstruct.DefaultYTolerance, opts.Tolerance())
	assert.True(t, opts.ShouldMergeGlyphs())
	assert.True(t, opts.ShouldSeparatePages())

	zero := 0.0
	off := false
	opts = Options{YTolerance: &zero, MergeGlyphs: &off, GapFactor: 0.8}
	assert.Equal(t, 0.0, opts.Tolerance())
	runs := opts.runOptions()
	assert.True(t, runs.Disabled)
	assert.Equal(t, 0.8, runs.GapFactor)
}
