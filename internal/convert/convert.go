// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert extracts plain text from document files with pluggable
// backends. Failures are contained by ExtractText so that one unreadable
// file never halts a batch.
package convert

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/pdiddy/pdf2json/internal/container"
	"github.com/pdiddy/pdf2json/pkg/types"
)

// Converter extracts the text of a document. Different backends (in-process
// PDF parsing, markitdown in a container) implement this interface.
type Converter interface {
	// Convert reads the document at pdfPath and returns its text with pages
	// concatenated in order.
	Convert(pdfPath string) (string, error)
}

// ExtractText runs c on path and never fails: an error is logged as
// "Error reading <path>: <error>" and the empty string is returned.
func ExtractText(c Converter, path string, logger *log.Logger) string {
	text, err := c.Convert(path)
	if err != nil {
		logger.Error(fmt.Sprintf("Error reading %s: %v", path, err), "path", path, "err", err)
		return ""
	}
	return text
}

// New returns the converter selected by cfg. The markitdown backend needs a
// working docker or podman runtime.
func New(cfg types.ConversionConfig) (Converter, error) {
	switch cfg.Backend {
	case types.BackendPDF, "":
		return NewPDFConverter(), nil
	case types.BackendMarkitdown:
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		return NewContainerConverter(rt, cfg.Image)
	default:
		return nil, fmt.Errorf("unknown conversion backend %q: use pdf or markitdown", cfg.Backend)
	}
}
