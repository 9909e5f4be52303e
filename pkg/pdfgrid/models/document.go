package models

// DocumentData is the result of converting one document.
type DocumentData struct {
	// DocName is the source file name (no path).
	DocName string `json:"doc_name"`
	// PageCount is the number of pages in the source document.
	PageCount int `json:"page_count"`
	// Pages contains the per-page grids in page order.
	Pages []PageGrid `json:"pages,omitempty"`
	// Rows is the document grid: page grids joined by empty separator rows.
	Rows Grid `json:"rows"`
}

// Empty reports whether nothing extractable was found.
func (d *DocumentData) Empty() bool {
	return d == nil || d.Rows.Empty()
}
