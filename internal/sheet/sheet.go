// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sheet loads positional rows from a spreadsheet or CSV source.
// No header row is assumed: every row, including the first, is data.
package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/pdf2json/pkg/types"
)

// ErrUnsupportedFormat indicates the source extension is not a known table format.
var ErrUnsupportedFormat = errors.New("unsupported source format")

// ErrSheetNotFound indicates the requested worksheet is not in the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// SourceLoadError reports that the tabular source could not be loaded at all.
// It is fatal: no rows are processed when it occurs.
type SourceLoadError struct {
	Path string
	Err  error
}

func (e *SourceLoadError) Error() string {
	return fmt.Sprintf("loading rows from %s: %v", e.Path, e.Err)
}

func (e *SourceLoadError) Unwrap() error {
	return e.Err
}

// Options configures row loading.
type Options struct {
	// Sheet selects a worksheet by name. Empty selects the first sheet.
	Sheet string
	// Columns holds the positional indices of title, URL and path.
	Columns types.Columns
}

// DefaultOptions reads the first sheet with columns A, B and C.
func DefaultOptions() Options {
	return Options{Columns: types.DefaultColumns()}
}

// Load reads every row of the source at path. The format is chosen by
// extension: .xlsx and .xlsm through excelize, .csv through encoding/csv.
// Any failure is returned as a *SourceLoadError.
func Load(path string, opts Options) ([]types.InputRow, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &SourceLoadError{Path: path, Err: err}
	}
	if err := checkColumns(opts.Columns); err != nil {
		return nil, &SourceLoadError{Path: path, Err: err}
	}

	var (
		rows []types.InputRow
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = loadWorkbook(path, opts)
	case ".csv":
		rows, err = loadCSV(path, opts)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, &SourceLoadError{Path: path, Err: err}
	}
	return rows, nil
}

func checkColumns(c types.Columns) error {
	if c.Title < 0 || c.URL < 0 || c.Path < 0 {
		return fmt.Errorf("column indices must be non-negative, got %d/%d/%d", c.Title, c.URL, c.Path)
	}
	return nil
}

func loadWorkbook(path string, opts Options) ([]types.InputRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetName := opts.Sheet
	if sheetName == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrSheetNotFound)
		}
		sheetName = list[0]
	} else if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheetName)
	}

	cells, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheetName, err)
	}

	rows := make([]types.InputRow, 0, len(cells))
	for i, row := range cells {
		rowNum := i + 1
		value := func(col int) any {
			if col >= len(row) {
				return nil
			}
			return workbookValue(f, sheetName, col, rowNum, row[col])
		}
		rows = append(rows, types.InputRow{
			Row:     rowNum,
			Title:   value(opts.Columns.Title),
			URL:     value(opts.Columns.URL),
			PdfPath: value(opts.Columns.Path),
		})
	}
	return rows, nil
}

// workbookValue restores the scalar type of a cell from its stored type so
// that a numeric or boolean path cell is not mistaken for a string.
func workbookValue(f *excelize.File, sheetName string, col, rowNum int, raw string) any {
	if raw == "" {
		return nil
	}
	cellName, err := excelize.CoordinatesToCellName(col+1, rowNum)
	if err != nil {
		return raw
	}
	typ, err := f.GetCellType(sheetName, cellName)
	if err != nil {
		return raw
	}
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula, excelize.CellTypeDate:
		return raw
	case excelize.CellTypeBool:
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
		return raw
	default:
		return parseNumber(raw)
	}
}

// parseNumber returns int64 for integers, float64 for decimals, or the
// original string.
func parseNumber(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func loadCSV(path string, opts Options) ([]types.InputRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var rows []types.InputRow
	for rowNum := 1; ; rowNum++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row %d: %w", rowNum, err)
		}
		value := func(col int) any {
			if col >= len(record) || record[col] == "" {
				return nil
			}
			return record[col]
		}
		rows = append(rows, types.InputRow{
			Row:     rowNum,
			Title:   value(opts.Columns.Title),
			URL:     value(opts.Columns.URL),
			PdfPath: value(opts.Columns.Path),
		})
	}
	return rows, nil
}
