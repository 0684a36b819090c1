// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index maintains a SQLite full-text index over every paper the
// pipeline has collected, so past weeks stay searchable after the
// README has moved on.
package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MJy1023/PaperPostman/internal/store"
	"github.com/MJy1023/PaperPostman/pkg/types"
)

const (
	indexDir   = "index"
	weeklyDir  = "weekly"
	dbFile     = "papers.db"
	papersFile = "papers.json"
)

// Store manages the paper index database at <dataDir>/index/papers.db.
type Store struct {
	db         *sql.DB
	dataDir    string
	maxResults int
}

// NewStore opens or creates the index database, creating the schema if
// it does not exist. maxResults bounds query results when callers pass
// no explicit limit; zero means the default of 20.
func NewStore(dataDir string, maxResults int) (*Store, error) {
	dbDir := filepath.Join(dataDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, dataDir: dataDir, maxResults: maxResults}
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
		`CREATE TABLE IF NOT EXISTS papers (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			key TEXT NOT NULL UNIQUE,
			id TEXT,
			title TEXT,
			authors TEXT,
			summary TEXT,
			link TEXT,
			source TEXT,
			conference TEXT,
			categories TEXT,
			published TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_source ON papers(source)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='papers_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE papers_fts USING fts5(title, summary, content=papers, content_rowid=rowid)`,
			`CREATE TRIGGER papers_ai AFTER INSERT ON papers BEGIN
				INSERT INTO papers_fts(rowid, title, summary) VALUES (new.rowid, new.title, new.summary);
			END`,
			`CREATE TRIGGER papers_ad AFTER DELETE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, summary) VALUES('delete', old.rowid, old.title, old.summary);
			END`,
			`CREATE TRIGGER papers_au AFTER UPDATE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, summary) VALUES('delete', old.rowid, old.title, old.summary);
				INSERT INTO papers_fts(rowid, title, summary) VALUES (new.rowid, new.title, new.summary);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// RebuildSummary holds counts from an index rebuild.
type RebuildSummary struct {
	Files   int
	Indexed int
	Failed  int
}

// Rebuild clears the index and re-ingests every data file: the run
// snapshot plus all weekly buckets. Papers are keyed by their identity
// (id, or normalized title when the id is empty); papers with neither
// are unsearchable and skipped.
func (s *Store) Rebuild(ctx context.Context, w io.Writer) (RebuildSummary, error) {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM papers`); err != nil {
		return RebuildSummary{}, fmt.Errorf("clearing index: %w", err)
	}

	var summary RebuildSummary
	for _, path := range s.dataFiles() {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		papers := store.LoadPapers(path)
		n, err := s.upsertPapers(ctx, papers)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", path, err)
			summary.Failed++
			continue
		}

		fmt.Fprintf(w, "indexed %s (%d papers)\n", path, n)
		summary.Files++
		summary.Indexed += n
	}

	fmt.Fprintf(w, "\nindexed: %d papers from %d files\n", summary.Indexed, summary.Files)
	return summary, nil
}

// dataFiles lists the snapshot and weekly bucket paths that feed the
// index. Missing files are simply absent from the result.
func (s *Store) dataFiles() []string {
	var files []string

	snapshot := filepath.Join(s.dataDir, papersFile)
	if _, err := os.Stat(snapshot); err == nil {
		files = append(files, snapshot)
	}

	buckets, _ := filepath.Glob(filepath.Join(s.dataDir, weeklyDir, "*", "week_*.json"))
	return append(files, buckets...)
}

func (s *Store) upsertPapers(ctx context.Context, papers []types.Paper) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// The update path keeps the rowid stable, which the FTS triggers
	// depend on. REPLACE would delete and re-insert instead.
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO papers (key, id, title, authors, summary, link, source, conference, categories, published)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
			id=excluded.id, title=excluded.title, authors=excluded.authors,
			summary=excluded.summary, link=excluded.link, source=excluded.source,
			conference=excluded.conference, categories=excluded.categories,
			published=excluded.published`)
	if err != nil {
		return 0, fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	n := 0
	for _, p := range papers {
		key := p.IdentityKey()
		if key == "" {
			continue
		}

		authorsJSON, _ := json.Marshal(p.Authors)
		categoriesJSON, _ := json.Marshal(p.Categories)
		published := ""
		if p.Published != nil {
			published = p.Published.Format(time.RFC3339)
		}

		if _, err := stmt.ExecContext(ctx,
			key, p.ID, p.Title, string(authorsJSON), p.Summary,
			p.Link, p.Source, p.Conference, string(categoriesJSON), published,
		); err != nil {
			return 0, fmt.Errorf("inserting paper %q: %w", key, err)
		}
		n++
	}

	return n, tx.Commit()
}
