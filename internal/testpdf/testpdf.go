// Package testpdf builds minimal single-font PDFs for tests.
//
// Every glyph of the embedded Helvetica reference is 500 units wide, so a
// run of n characters at size s advances n*s/2 points.
package testpdf

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

// Text is one text-showing operation placed at an absolute position.
type Text struct {
	X, Y float64
	Size float64
	S    string
}

// Page lists the text operations of one page.
type Page []Text

// Build returns the bytes of a PDF with one page per argument.
func Build(pages ...Page) []byte {
	var pdf bytes.Buffer
	var offsets []int

	obj := func(body string) {
		offsets = append(offsets, pdf.Len())
		fmt.Fprintf(&pdf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	pdf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	obj("<</Type/Catalog/Pages 2 0 R>>")
	obj(fmt.Sprintf("<</Type/Pages/Kids[%s]/Count %d>>", strings.Join(kids, " "), len(pages)))

	widths := strings.TrimSpace(strings.Repeat("500 ", 95))
	obj(fmt.Sprintf("<</Type/Font/Subtype/Type1/BaseFont/Helvetica/Encoding/WinAnsiEncoding/FirstChar 32/LastChar 126/Widths[%s]>>", widths))

	for i, page := range pages {
		obj(fmt.Sprintf("<</Type/Page/Parent 2 0 R/MediaBox[0 0 612 792]/Contents %d 0 R/Resources<</Font<</F1 3 0 R>>>>>>", 5+2*i))

		var content bytes.Buffer
		for _, t := range page {
			size := t.Size
			if size == 0 {
				size = 12
			}
			fmt.Fprintf(&content, "BT /F1 %g Tf %g %g Td (%s) Tj ET\n", size, t.X, t.Y, escape(t.S))
		}
		obj(fmt.Sprintf("<</Length %d>>\nstream\n%s\nendstream", content.Len(), content.String()))
	}

	xrefOff := pdf.Len()
	fmt.Fprintf(&pdf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&pdf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&pdf, "trailer\n<</Size %d/Root 1 0 R>>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xrefOff)

	return pdf.Bytes()
}

// WriteFile builds a PDF and writes it to path.
func WriteFile(path string, pages ...Page) error {
	return os.WriteFile(path, Build(pages...), 0644)
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
