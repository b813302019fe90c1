// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf2json/internal/catalog"
	"github.com/pdiddy/pdf2json/internal/output"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Store and search extracted documents in a SQLite catalog",
	Long: `Catalog keeps the documents of the latest conversion in a local SQLite
database with a full-text index. Conversion refreshes it when --catalog is
set; index imports an existing output file; search queries it.`,
}

// --- index subcommand ---

var catalogIndexCmd = &cobra.Command{
	Use:   "index [file.json]",
	Short: "Replace the catalog contents with an existing output file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCatalogIndex,
}

func runCatalogIndex(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := cfg.Output.Path
	if len(args) > 0 {
		path = args[0]
	}

	doc, err := output.Read(path)
	if err != nil {
		return err
	}

	store, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Replace(cmd.Context(), doc)
	if err != nil {
		return err
	}
	logger.Info(fmt.Sprintf("Indexed %d documents from %s", n, path))
	return nil
}

// --- search subcommand ---

var catalogSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Full-text search over catalog titles and content",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCatalogSearch,
}

func runCatalogSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	hits, err := store.Search(cmd.Context(), strings.Join(args, " "), limit)
	if err != nil {
		return err
	}
	return formatSearchOutput(os.Stdout, hits, jsonOutput)
}

func formatSearchOutput(w io.Writer, hits []catalog.Hit, jsonOutput bool) error {
	if jsonOutput {
		if hits == nil {
			hits = []catalog.Hit{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(hits)
	}

	if len(hits) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-40s  %-40s  %s\n", "Rank", "Title", "URL", "Snippet")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for i, h := range hits {
		fmt.Fprintf(w, "%-4d  %-40s  %-40s  %s\n", i+1, truncate(h.Title, 40), truncate(h.URL, 40), h.Snippet)
	}
	fmt.Fprintf(w, "\n%d results\n", len(hits))
	return nil
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	catalogSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use catalog.max_results)")
	catalogSearchCmd.Flags().Bool("json", false, "output results as JSON")

	catalogCmd.AddCommand(catalogIndexCmd)
	catalogCmd.AddCommand(catalogSearchCmd)

	rootCmd.AddCommand(catalogCmd)
}
