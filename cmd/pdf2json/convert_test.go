// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/pdf2json/internal/catalog"
	"github.com/pdiddy/pdf2json/internal/convert"
	"github.com/pdiddy/pdf2json/internal/output"
	"github.com/pdiddy/pdf2json/internal/pdftest"
	"github.com/pdiddy/pdf2json/internal/sheet"
	"github.com/pdiddy/pdf2json/pkg/types"
)

// staticConverter maps file names to text so the end-to-end output is exact.
type staticConverter map[string]string

func (s staticConverter) Convert(pdfPath string) (string, error) {
	if text, ok := s[filepath.Base(pdfPath)]; ok {
		return text, nil
	}
	return "", errors.New("no text for " + pdfPath)
}

func writeLinks(t *testing.T, path string, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

func testConfig() types.Config {
	return types.Config{
		Source: types.SourceConfig{Path: "links.xlsx", Columns: types.DefaultColumns()},
		Output: types.OutputConfig{Path: output.DefaultPath, Format: types.OutputJSON},
	}
}

func logLines(buf *bytes.Buffer) []map[string]any {
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var m map[string]any
		if json.Unmarshal([]byte(line), &m) == nil {
			out = append(out, m)
		}
	}
	return out
}

func TestConvertAll_Scenario(t *testing.T) {
	testChdir(t, t.TempDir())
	writeLinks(t, "links.xlsx", [][]any{
		{"A", "http://x", "a.pdf"},
		{"B", "http://y", "missing.pdf"},
		{"C", "http://z", "c.pdf"},
	})
	pdftest.Write(t, ".", "a.pdf", "Hello")
	pdftest.Write(t, ".", "c.pdf", "World")

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Formatter: log.JSONFormatter})
	conv := staticConverter{"a.pdf": "Hello", "c.pdf": "World"}

	require.NoError(t, convertAll(context.Background(), testConfig(), conv, logger))

	data, err := os.ReadFile(output.DefaultPath)
	require.NoError(t, err)
	var got []map[string]string
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, []map[string]string{
		{"Title": "A", "URL": "http://x", "Content": "Hello"},
		{"Title": "C", "URL": "http://z", "Content": "World"},
	}, got)

	lines := logLines(&buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "Invalid or missing file path for row 2: missing.pdf", lines[0]["msg"])
	assert.Equal(t, "All PDF data saved to all_pdfs.json", lines[1]["msg"])
	assert.Equal(t, "info", lines[1]["level"])
}

func TestConvertAll_RealExtractionAndCatalog(t *testing.T) {
	testChdir(t, t.TempDir())
	writeLinks(t, "links.xlsx", [][]any{
		{"Judgment", "http://court/1", "judgment.pdf"},
		{"Broken", "http://court/2", "broken.pdf"},
	})
	pdftest.Write(t, ".", "judgment.pdf", "The appeal is dismissed")
	require.NoError(t, os.WriteFile("broken.pdf", []byte("not a pdf"), 0o644))

	cfg := testConfig()
	cfg.Catalog.DBPath = filepath.Join("index", "catalog.db")

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Formatter: log.JSONFormatter})
	require.NoError(t, convertAll(context.Background(), cfg, convert.NewPDFConverter(), logger))

	doc, err := output.Read(output.DefaultPath)
	require.NoError(t, err)
	require.Len(t, doc, 2)
	assert.Contains(t, doc[0].Content, "The appeal is dismissed")
	assert.Equal(t, "", doc[1].Content, "unreadable document keeps its record with empty content")
	assert.Contains(t, buf.String(), "Error reading broken.pdf")

	store, err := catalog.NewStore(cfg.Catalog)
	require.NoError(t, err)
	defer store.Close()
	hits, err := store.Search(context.Background(), "dismissed", 0)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Judgment", hits[0].Title)
}

func TestConvertAll_EmptySheet(t *testing.T) {
	testChdir(t, t.TempDir())
	writeLinks(t, "links.xlsx", nil)

	require.NoError(t, convertAll(context.Background(), testConfig(), staticConverter{}, log.New(&bytes.Buffer{})))

	data, err := os.ReadFile(output.DefaultPath)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestConvertAll_SourceLoadErrorIsFatal(t *testing.T) {
	testChdir(t, t.TempDir())

	err := convertAll(context.Background(), testConfig(), staticConverter{}, log.New(&bytes.Buffer{}))
	var loadErr *sheet.SourceLoadError
	require.True(t, errors.As(err, &loadErr), "got %v", err)

	_, statErr := os.Stat(output.DefaultPath)
	assert.True(t, os.IsNotExist(statErr), "no output should be written")
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"", "text", "json", "logfmt"} {
		l, err := newLogger(format, false)
		require.NoError(t, err, format)
		assert.Equal(t, log.InfoLevel, l.GetLevel())
	}
	l, err := newLogger("text", true)
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, l.GetLevel())

	_, err = newLogger("xml", false)
	assert.Error(t, err)
}

func TestFormatSearchOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, formatSearchOutput(&buf, nil, false))
	assert.Equal(t, "No results found.\n", buf.String())

	buf.Reset()
	require.NoError(t, formatSearchOutput(&buf, nil, true))
	assert.Equal(t, "[]\n", buf.String())

	buf.Reset()
	hits := []catalog.Hit{{Title: strings.Repeat("t", 50), URL: "http://x", Snippet: "[appeal] dismissed"}}
	require.NoError(t, formatSearchOutput(&buf, hits, false))
	assert.Contains(t, buf.String(), strings.Repeat("t", 37)+"...")
	assert.Contains(t, buf.String(), "1 results")
}

// testChdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func testChdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Fatal(err)
		}
	})
}
