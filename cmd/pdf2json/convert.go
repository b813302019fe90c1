// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf2json/internal/build"
	"github.com/pdiddy/pdf2json/internal/convert"
	"github.com/pdiddy/pdf2json/internal/output"
	"github.com/pdiddy/pdf2json/internal/sheet"
	"github.com/pdiddy/pdf2json/pkg/types"
)

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	conv, err := convert.New(cfg.Conversion)
	if err != nil {
		return err
	}
	return convertAll(cmd.Context(), cfg, conv, logger)
}

// convertAll runs one conversion: load rows, build records, write the
// output file and, when configured, refresh the catalog. Only a source that
// cannot be loaded or an output that cannot be written is an error.
func convertAll(ctx context.Context, cfg types.Config, conv convert.Converter, logger *log.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	rows, err := sheet.Load(cfg.Source.Path, sheet.Options{
		Sheet:   cfg.Source.Sheet,
		Columns: cfg.Source.Columns,
	})
	if err != nil {
		return err
	}
	logger.Debug("loaded rows", "source", cfg.Source.Path, "rows", len(rows))

	doc, summary := build.Build(rows, conv, logger)

	if err := output.Write(cfg.Output.Path, doc, cfg.Output.Format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if cfg.Catalog.DBPath != "" {
		store, err := openCatalog(cfg)
		if err != nil {
			return fmt.Errorf("output written to %s but catalog unavailable: %w", cfg.Output.Path, err)
		}
		defer store.Close()

		n, err := store.Replace(ctx, doc)
		if err != nil {
			return fmt.Errorf("output written to %s but catalog update failed: %w", cfg.Output.Path, err)
		}
		logger.Debug("catalog updated", "db", cfg.Catalog.DBPath, "records", n)
	}

	logger.Info(fmt.Sprintf("All PDF data saved to %s", cfg.Output.Path),
		"records", summary.Included, "skipped", summary.Skipped, "empty", summary.Empty)
	return nil
}
