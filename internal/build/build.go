// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package build turns loaded rows into output records. Rows whose path
// column is not an existing .pdf file are logged and skipped; every other
// row yields exactly one record, in input order.
package build

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/pdiddy/pdf2json/internal/convert"
	"github.com/pdiddy/pdf2json/pkg/types"
)

const pdfSuffix = ".pdf"

// Summary holds counts from one Build run.
type Summary struct {
	// Included counts rows that produced a record.
	Included int
	// Skipped counts rows that failed path validation.
	Skipped int
	// Empty counts included records whose extracted content is empty,
	// either because extraction failed or the document has no text layer.
	Empty int
}

// Total returns the number of rows processed.
func (s Summary) Total() int {
	return s.Included + s.Skipped
}

// ValidatePath checks that v is a string ending in ".pdf" (case-sensitive)
// that names an existing path. It returns the path on success.
func ValidatePath(v any) (string, error) {
	path, ok := v.(string)
	if !ok {
		return "", ErrNotString
	}
	if !strings.HasSuffix(path, pdfSuffix) {
		return "", ErrNotPDF
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMissing, err)
	}
	return path, nil
}

// Build processes rows in order. An invalid row is logged as
// "Invalid or missing file path for row <n>: <value>" and produces no
// record. A valid row is extracted with c; extraction failures are logged
// by convert.ExtractText and yield a record with empty Content. Build never
// fails and never mutates rows. The returned document is non-nil.
func Build(rows []types.InputRow, c convert.Converter, logger *log.Logger) (types.Document, Summary) {
	doc := make(types.Document, 0, len(rows))
	var summary Summary

	for _, row := range rows {
		path, err := ValidatePath(row.PdfPath)
		if err != nil {
			verr := &RowValidationError{Row: row.Row, Value: row.PdfPath, Err: err}
			logger.Warn(fmt.Sprintf("Invalid or missing file path for row %d: %s", row.Row, displayValue(row.PdfPath)),
				"row", verr.Row, "path", displayValue(verr.Value), "reason", verr.Err)
			summary.Skipped++
			continue
		}

		logger.Debug("extracting", "row", row.Row, "path", path)
		content := convert.ExtractText(c, path, logger)
		if content == "" {
			summary.Empty++
		}

		doc = append(doc, types.Record{
			Title:   row.Title,
			URL:     row.URL,
			Content: content,
			Row:     row.Row,
			Source:  path,
		})
		summary.Included++
	}

	logger.Debug("build complete", "included", summary.Included, "skipped", summary.Skipped, "empty", summary.Empty)
	return doc, summary
}

// displayValue renders a path cell for diagnostics.
func displayValue(v any) string {
	if v == nil {
		return "<empty>"
	}
	return fmt.Sprint(v)
}
