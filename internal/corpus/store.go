// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus records extracted PDF text in a SQLite database so batch
// runs can skip PDFs that have not changed.
package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paperprompt/pkg/types"
)

const dbFile = "corpus.db"

// ErrNotFound is returned by Get when no record exists for a path.
var ErrNotFound = errors.New("document not found")

// Store manages the corpus SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates cfg.Dir/corpus.db and its schema.
func NewStore(cfg types.CorpusConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating corpus directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
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
			id TEXT NOT NULL,
			path TEXT PRIMARY KEY,
			backend TEXT NOT NULL,
			pages INTEGER NOT NULL,
			references_removed INTEGER NOT NULL,
			accents_stripped INTEGER NOT NULL,
			file_mod_time TEXT NOT NULL,
			extracted_at TEXT NOT NULL,
			text TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_id ON documents(id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save inserts doc or replaces the record stored for doc.Path.
func (s *Store) Save(ctx context.Context, doc types.Document) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (id, path, backend, pages, references_removed, accents_stripped, file_mod_time, extracted_at, text)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			id=excluded.id, backend=excluded.backend, pages=excluded.pages,
			references_removed=excluded.references_removed, accents_stripped=excluded.accents_stripped,
			file_mod_time=excluded.file_mod_time, extracted_at=excluded.extracted_at, text=excluded.text`,
		doc.ID, doc.Path, string(doc.Backend), doc.Pages,
		doc.ReferencesRemoved, doc.AccentsStripped,
		formatTime(doc.FileModTime), formatTime(doc.ExtractedAt), doc.Text,
	)
	if err != nil {
		return fmt.Errorf("saving %s: %w", doc.Path, err)
	}
	return nil
}

// Unchanged reports whether the stored record for probe.Path was produced
// from the same file modification time, backend, and options.
func (s *Store) Unchanged(ctx context.Context, probe types.Document) (bool, error) {
	doc, err := s.Get(ctx, probe.Path)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return doc.FileModTime.Equal(probe.FileModTime) &&
		doc.Backend == probe.Backend &&
		doc.ReferencesRemoved == probe.ReferencesRemoved &&
		doc.AccentsStripped == probe.AccentsStripped, nil
}

const selectColumns = `SELECT id, path, backend, pages, references_removed, accents_stripped, file_mod_time, extracted_at, text FROM documents`

// Get returns the record stored for path, or ErrNotFound.
func (s *Store) Get(ctx context.Context, path string) (*types.Document, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE path = ?`, path)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", path, err)
	}
	return doc, nil
}

// List returns every stored record ordered by path.
func (s *Store) List(ctx context.Context) ([]types.Document, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []types.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

// Delete removes the record for path. Deleting a missing record is not an error.
func (s *Store) Delete(ctx context.Context, path string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE path = ?`, path); err != nil {
		return fmt.Errorf("deleting %s: %w", path, err)
	}
	return nil
}

// ExportYAML writes every stored record to w as a YAML list.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	docs, err := s.List(ctx)
	if err != nil {
		return err
	}
	if docs == nil {
		docs = []types.Document{}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(sc scanner) (*types.Document, error) {
	var (
		doc                  types.Document
		backend              string
		modTime, extractedAt string
	)
	if err := sc.Scan(&doc.ID, &doc.Path, &backend, &doc.Pages,
		&doc.ReferencesRemoved, &doc.AccentsStripped,
		&modTime, &extractedAt, &doc.Text); err != nil {
		return nil, err
	}
	doc.Backend = types.PDFBackend(backend)

	var err error
	if doc.FileModTime, err = parseTime(modTime); err != nil {
		return nil, fmt.Errorf("parsing file_mod_time: %w", err)
	}
	if doc.ExtractedAt, err = parseTime(extractedAt); err != nil {
		return nil, fmt.Errorf("parsing extracted_at: %w", err)
	}
	return &doc, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
