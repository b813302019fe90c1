// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Columns holds the 0-based positional indices of the three consumed columns.
type Columns struct {
	Title int `json:"title" yaml:"title" mapstructure:"title"`
	URL   int `json:"url" yaml:"url" mapstructure:"url"`
	Path  int `json:"path" yaml:"path" mapstructure:"path"`
}

// DefaultColumns returns the A/B/C layout of the source spreadsheet.
func DefaultColumns() Columns {
	return Columns{Title: 0, URL: 1, Path: 2}
}

// SourceConfig describes where rows are loaded from.
type SourceConfig struct {
	// Path is the spreadsheet (.xlsx, .xlsm) or .csv file to read.
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// Sheet names the worksheet to read. Empty selects the first sheet.
	Sheet string `json:"sheet,omitempty" yaml:"sheet,omitempty" mapstructure:"sheet"`

	Columns Columns `json:"columns" yaml:"columns" mapstructure:"columns"`
}

// ConversionBackend identifies the text extraction tool.
type ConversionBackend string

const (
	BackendPDF        ConversionBackend = "pdf"
	BackendMarkitdown ConversionBackend = "markitdown"
)

// ConversionConfig holds settings for the extraction stage.
type ConversionConfig struct {
	// Backend selects the extractor: pdf (in-process) or markitdown (container).
	Backend ConversionBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Image overrides the container image used by the markitdown backend.
	Image string `json:"image,omitempty" yaml:"image,omitempty" mapstructure:"image"`
}

// OutputFormat selects the serialization of the output document.
type OutputFormat string

const (
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// OutputConfig holds settings for writing the output document.
type OutputConfig struct {
	// Path is the output file, replaced on every run (default "all_pdfs.json").
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	Format OutputFormat `json:"format" yaml:"format" mapstructure:"format"`
}

// CatalogConfig holds settings for the SQLite catalog.
type CatalogConfig struct {
	// DBPath is the SQLite database file. Empty disables the catalog.
	DBPath string `json:"db_path" yaml:"db_path" mapstructure:"db_path"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// Config groups all stage configurations for one run.
type Config struct {
	Source     SourceConfig     `json:"source" yaml:"source" mapstructure:"source"`
	Conversion ConversionConfig `json:"conversion" yaml:"conversion" mapstructure:"conversion"`
	Output     OutputConfig     `json:"output" yaml:"output" mapstructure:"output"`
	Catalog    CatalogConfig    `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
}
