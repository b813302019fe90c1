// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf2json/pkg/types"
)

func scenarioDoc() types.Document {
	return types.Document{
		{Title: "A", URL: "http://x", Content: "Hello", Row: 1, Source: "a.pdf"},
		{Title: "C", URL: "http://z", Content: "World", Row: 3, Source: "c.pdf"},
	}
}

func TestMarshalJSON(t *testing.T) {
	data, err := Marshal(scenarioDoc(), types.OutputJSON)
	require.NoError(t, err)

	want := `[
    {
        "Title": "A",
        "URL": "http://x",
        "Content": "Hello"
    },
    {
        "Title": "C",
        "URL": "http://z",
        "Content": "World"
    }
]`
	assert.Equal(t, want, string(data))
}

func TestMarshalJSON_Empty(t *testing.T) {
	for _, doc := range []types.Document{nil, {}} {
		data, err := Marshal(doc, types.OutputJSON)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	}
}

func TestMarshalJSON_LiteralCharacters(t *testing.T) {
	doc := types.Document{{Title: "Cour suprême — arrêt", URL: "http://x?a=1&b=2", Content: "<p>Île Maurice</p>"}}
	data, err := Marshal(doc, types.OutputJSON)
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, "Cour suprême — arrêt")
	assert.Contains(t, s, "http://x?a=1&b=2")
	assert.Contains(t, s, "<p>Île Maurice</p>")
	assert.NotContains(t, s, `\u`)
}

func TestMarshalJSON_NonStringScalars(t *testing.T) {
	doc := types.Document{{Title: int64(7), URL: nil, Content: ""}}
	data, err := Marshal(doc, types.OutputJSON)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Title": 7`)
	assert.Contains(t, string(data), `"URL": null`)
}

func TestMarshalYAML(t *testing.T) {
	data, err := Marshal(scenarioDoc(), types.OutputYAML)
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal(data, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0]["Title"])
	assert.Equal(t, "World", got[1]["Content"])
	assert.NotContains(t, string(data), "a.pdf", "source path is not serialized")
}

func TestMarshal_UnknownFormat(t *testing.T) {
	_, err := Marshal(scenarioDoc(), "xml")
	assert.ErrorContains(t, err, "unsupported format")
}

func TestWrite_ReplacesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("old content ", 100)), 0o644))

	require.NoError(t, Write(path, types.Document{}, types.OutputJSON))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file should not be left behind")
}

func TestWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, Write(path, scenarioDoc(), types.OutputJSON))

	doc, err := Read(path)
	require.NoError(t, err)
	require.Len(t, doc, 2)
	assert.Equal(t, "A", doc[0].Title)
	assert.Equal(t, "Hello", doc[0].Content)
	assert.Empty(t, doc[0].Source)
}

func TestRead_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := Read(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err = Read(bad)
	assert.ErrorContains(t, err, "parsing")
}
