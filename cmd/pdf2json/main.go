// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdf2json CLI. Running it with no
// subcommand converts the configured spreadsheet of (title, URL, PDF path)
// rows into a JSON array of extracted documents.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf2json/internal/catalog"
	"github.com/pdiddy/pdf2json/internal/output"
	"github.com/pdiddy/pdf2json/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is configured in PersistentPreRunE and shared by all subcommands.
var logger = log.New(os.Stdout)

// defaultInput is the spreadsheet read when no source path is configured.
const defaultInput = "links.xlsx"

var rootCmd = &cobra.Command{
	Use:   "pdf2json",
	Short: "Extract PDF text listed in a spreadsheet into one JSON file",
	Long: `pdf2json reads a spreadsheet whose first three columns hold a title, a
URL and a local PDF path. Every row whose path is an existing .pdf file
contributes one {"Title", "URL", "Content"} object to all_pdfs.json, where
Content is the text of all pages in order. Invalid rows and unreadable
documents are reported and skipped; they never stop the run.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(viper.GetString("log_format"), viper.GetBool("verbose"))
		if err != nil {
			return err
		}
		logger = l
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug("using config file", "path", used)
		}
		return nil
	},
	RunE: runConvert,
}

func newLogger(format string, verbose bool) (*log.Logger, error) {
	opts := log.Options{Level: log.InfoLevel}
	switch format {
	case "", "text":
		opts.Formatter = log.TextFormatter
	case "json":
		opts.Formatter = log.JSONFormatter
	case "logfmt":
		opts.Formatter = log.LogfmtFormatter
	default:
		return nil, fmt.Errorf("unsupported log format %q: use text, json or logfmt", format)
	}
	if verbose {
		opts.Level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stdout, opts), nil
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./pdf2json.yaml or ~/.config/pdf2json/config.yaml)")
	pf.String("log-format", "text", "diagnostic format: text, json or logfmt")
	pf.BoolP("verbose", "v", false, "log per-row progress")
	pf.String("catalog", "", "SQLite catalog file; when set, conversion results are also stored there")

	f := rootCmd.Flags()
	f.StringP("input", "i", defaultInput, "spreadsheet (.xlsx, .xlsm) or .csv file listing title, URL and PDF path")
	f.String("sheet", "", "worksheet name (default: first sheet)")
	f.StringP("output", "o", output.DefaultPath, "output file, replaced on every run")
	f.String("format", string(types.OutputJSON), "output format: json or yaml")
	f.String("backend", string(types.BackendPDF), "text extraction backend: pdf or markitdown")
	f.String("image", "", "container image for the markitdown backend")

	bind := map[string]string{
		"log_format":         "log-format",
		"verbose":            "verbose",
		"catalog.db_path":    "catalog",
		"source.path":        "input",
		"source.sheet":       "sheet",
		"output.path":        "output",
		"output.format":      "format",
		"conversion.backend": "backend",
		"conversion.image":   "image",
	}
	for key, flag := range bind {
		fl := pf.Lookup(flag)
		if fl == nil {
			fl = f.Lookup(flag)
		}
		_ = viper.BindPFlag(key, fl)
	}

	cols := types.DefaultColumns()
	viper.SetDefault("source.columns.title", cols.Title)
	viper.SetDefault("source.columns.url", cols.URL)
	viper.SetDefault("source.columns.path", cols.Path)
	viper.SetDefault("catalog.max_results", 20)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdf2json")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdf2json"))
		}
	}

	viper.SetEnvPrefix("PDF2JSON")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "warning: reading config: %v\n", err)
		}
	}
}

// loadConfig assembles the run configuration from defaults, the config
// file, PDF2JSON_* environment variables and flags.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	if cfg.Source.Path == "" {
		cfg.Source.Path = defaultInput
	}
	if cfg.Output.Path == "" {
		cfg.Output.Path = output.DefaultPath
	}
	if cfg.Catalog.MaxResults <= 0 {
		cfg.Catalog.MaxResults = 20
	}
	return cfg, nil
}

// openCatalog opens the configured catalog, falling back to the default
// database path.
func openCatalog(cfg types.Config) (*catalog.Store, error) {
	cc := cfg.Catalog
	if cc.DBPath == "" {
		cc.DBPath = catalog.DefaultDBPath
	}
	return catalog.NewStore(cc)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
