// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data model shared by the loader, builder, writer,
// and catalog stages.
package types

import "fmt"

// InputRow is one row of the tabular source, addressed positionally.
// Cell values keep their scalar type: nil for an empty cell, int64 or
// float64 for numeric cells, bool for boolean cells, string otherwise.
type InputRow struct {
	// Row is the 1-based row number within the source.
	Row int

	Title   any
	URL     any
	PdfPath any
}

// Record is the output entry produced for a row whose path passed validation.
// Only Title, URL and Content are serialized; Row and Source are kept for
// the catalog and for diagnostics.
type Record struct {
	Title   any    `json:"Title" yaml:"Title"`
	URL     any    `json:"URL" yaml:"URL"`
	Content string `json:"Content" yaml:"Content"`

	Row    int    `json:"-" yaml:"-"`
	Source string `json:"-" yaml:"-"`
}

// Document is the ordered collection of records produced by one run.
type Document []Record

// Text renders a scalar cell value as plain text. Nil becomes "".
func Text(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
