// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/MJy1023/PaperPostman/pkg/types"
)

// QueryOptions holds the structured filters for index queries.
type QueryOptions struct {
	// Source filters by paper origin ("arxiv" or "paperscool").
	Source string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// Result is a paper with its full-text relevance rank. The rank is the
// FTS5 bm25 value (more negative is better) and zero for structured
// queries.
type Result struct {
	types.Paper `yaml:",inline"`
	Rank        float64 `json:"rank" yaml:"rank"`
}

// Query searches the index. A non-empty query runs an FTS5 MATCH over
// titles and abstracts ranked by relevance; an empty query lists papers
// alphabetically, optionally filtered by source.
func (s *Store) Query(ctx context.Context, query string, opts QueryOptions) ([]Result, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT p.id, p.title, p.authors, p.summary, p.link, p.source,
				p.conference, p.categories, p.published, papers_fts.rank
			FROM papers_fts
			JOIN papers p ON p.rowid = papers_fts.rowid
			WHERE papers_fts MATCH ?`)
		args = append(args, query)
	} else {
		qb.WriteString(
			`SELECT p.id, p.title, p.authors, p.summary, p.link, p.source,
				p.conference, p.categories, p.published, 0 AS rank
			FROM papers p
			WHERE 1=1`)
	}

	if opts.Source != "" {
		qb.WriteString(` AND p.source = ?`)
		args = append(args, opts.Source)
	}

	if useFTS {
		qb.WriteString(` ORDER BY papers_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY p.title`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var (
			r              Result
			authorsJSON    sql.NullString
			categoriesJSON sql.NullString
			published      sql.NullString
		)

		if err := rows.Scan(
			&r.ID, &r.Title, &authorsJSON, &r.Summary, &r.Link, &r.Source,
			&r.Conference, &categoriesJSON, &published, &r.Rank,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		if authorsJSON.Valid {
			json.Unmarshal([]byte(authorsJSON.String), &r.Authors)
		}
		if categoriesJSON.Valid {
			json.Unmarshal([]byte(categoriesJSON.String), &r.Categories)
		}
		if published.Valid && published.String != "" {
			if ts, err := time.Parse(time.RFC3339, published.String); err == nil {
				r.Published = &ts
			}
		}

		results = append(results, r)
	}

	return results, rows.Err()
}
