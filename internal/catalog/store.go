// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog keeps the records of the latest run in a SQLite database
// with a full-text index over titles and content.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdf2json/pkg/types"
)

// DefaultDBPath is used when the catalog is enabled without a path.
const DefaultDBPath = "catalog.db"

const defaultMaxResults = 20

// Store manages the catalog database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Hit is one full-text search result.
type Hit struct {
	Position int    `json:"position"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	PdfPath  string `json:"pdf_path,omitempty"`
	Snippet  string `json:"snippet"`
}

// NewStore opens or creates the database at cfg.DBPath and creates the
// schema if it does not exist.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = DefaultDBPath
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id INTEGER PRIMARY KEY,
			position INTEGER NOT NULL,
			source_row INTEGER,
			title TEXT,
			url TEXT,
			pdf_path TEXT,
			content TEXT NOT NULL,
			extracted_at TEXT NOT NULL
		)`,
		`CREATE VIRTUAL TABLE IF NOT EXISTS documents_fts USING fts4(title, body)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Replace swaps the catalog contents for doc in a single transaction, so
// the catalog always mirrors one complete run. It returns the number of
// records stored.
func (s *Store) Replace(ctx context.Context, doc types.Document) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM documents`, `DELETE FROM documents_fts`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return 0, fmt.Errorf("clearing catalog: %w", err)
		}
	}

	insDoc, err := tx.PrepareContext(ctx,
		`INSERT INTO documents (id, position, source_row, title, url, pdf_path, content, extracted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer insDoc.Close()

	insFTS, err := tx.PrepareContext(ctx,
		`INSERT INTO documents_fts (rowid, title, body) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing index insert: %w", err)
	}
	defer insFTS.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for i, rec := range doc {
		id := i + 1
		title := types.Text(rec.Title)
		var row sql.NullInt64
		if rec.Row > 0 {
			row = sql.NullInt64{Int64: int64(rec.Row), Valid: true}
		}
		if _, err := insDoc.ExecContext(ctx,
			id, i, row, title, types.Text(rec.URL), rec.Source, rec.Content, now,
		); err != nil {
			return 0, fmt.Errorf("inserting record %d: %w", id, err)
		}
		if _, err := insFTS.ExecContext(ctx, id, title, rec.Content); err != nil {
			return 0, fmt.Errorf("indexing record %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing catalog: %w", err)
	}
	return len(doc), nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}

// Search runs a full-text query over titles and content. Results keep the
// order of the source document. A limit of zero uses the configured maximum.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	if query == "" {
		return nil, fmt.Errorf("search query is empty")
	}
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT d.position, d.title, d.url, d.pdf_path,
		        snippet(documents_fts, '[', ']', '...', -1, 12)
		 FROM documents_fts
		 JOIN documents d ON d.id = documents_fts.rowid
		 WHERE documents_fts MATCH ?
		 ORDER BY d.position
		 LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching catalog: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		var title, url, path sql.NullString
		if err := rows.Scan(&h.Position, &title, &url, &path, &h.Snippet); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		h.Title, h.URL, h.PdfPath = title.String, url.String, path.String
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// Documents returns all stored records in source order.
func (s *Store) Documents(ctx context.Context) (types.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, url, pdf_path, content, COALESCE(source_row, 0) FROM documents ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	doc := types.Document{}
	for rows.Next() {
		var title, url, path sql.NullString
		var rec types.Record
		if err := rows.Scan(&title, &url, &path, &rec.Content, &rec.Row); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		rec.Title, rec.URL, rec.Source = title.String, url.String, path.String
		doc = append(doc, rec)
	}
	return doc, rows.Err()
}
