// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package build

import (
	"errors"
	"fmt"
)

var (
	// ErrNotString indicates the path cell is empty or holds a non-text value.
	ErrNotString = errors.New("path is not a string")
	// ErrNotPDF indicates the path does not end with the ".pdf" suffix.
	ErrNotPDF = errors.New("path does not end with .pdf")
	// ErrMissing indicates nothing exists at the path.
	ErrMissing = errors.New("path does not exist")
)

// RowValidationError reports a row skipped because its path column failed
// validation. It is never fatal.
type RowValidationError struct {
	Row   int
	Value any
	Err   error
}

func (e *RowValidationError) Error() string {
	return fmt.Sprintf("row %d: invalid path %v: %v", e.Row, e.Value, e.Err)
}

func (e *RowValidationError) Unwrap() error {
	return e.Err
}
