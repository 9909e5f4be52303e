package output

import (
	"encoding/json"

	"github.com/ukaji3/pdfgrid-go/pkg/pdfgrid/models"
)

// ToJSON serializes a converted document.
func ToJSON(doc *models.DocumentData, pretty bool) ([]byte, error) {
	return marshal(doc, pretty)
}

// PageToJSON serializes a single page grid.
func PageToJSON(page *models.PageGrid, pretty bool) ([]byte, error) {
	return marshal(page, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
