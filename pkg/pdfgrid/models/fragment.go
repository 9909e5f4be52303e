// Package models defines data structures for table reconstruction.
package models

// Fragment is a positioned run of text on a page.
type Fragment struct {
	// X is the horizontal baseline origin in page coordinates.
	X float64 `json:"x"`
	// Y is the vertical baseline origin; larger values are higher on the page.
	Y float64 `json:"y"`
	// Text is the raw run content, possibly padded with whitespace.
	Text string `json:"text"`
}
