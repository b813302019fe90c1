// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output serializes a document to disk, replacing any previous file.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf2json/pkg/types"
)

// DefaultPath is the output file written when none is configured.
const DefaultPath = "all_pdfs.json"

const indent = "    "

// Marshal renders doc in the given format. JSON uses a four-space indent,
// writes non-ASCII characters literally, leaves <, > and & unescaped, and
// has no trailing newline. An empty document renders as "[]".
func Marshal(doc types.Document, format types.OutputFormat) ([]byte, error) {
	if doc == nil {
		doc = types.Document{}
	}

	switch format {
	case types.OutputJSON, "":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", indent)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("marshaling JSON: %w", err)
		}
		return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
	case types.OutputYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(4)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("marshaling YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("marshaling YAML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q: use json or yaml", format)
	}
}

// Write serializes doc to path. The data goes to a temporary file in the
// same directory which is then renamed over path, so the target is either
// the old file or the complete new one.
func Write(path string, doc types.Document, format types.OutputFormat) error {
	data, err := Marshal(doc, format)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temporary output in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// Read loads a JSON document previously written by Write.
func Read(path string) (types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var doc types.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}
