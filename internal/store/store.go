// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists papers on disk: the full-run snapshot, the
// ISO-week buckets feeding the weekly summary, and dated README
// archives. Everything is plain JSON so the data files stay reviewable
// in the repository that the tool maintains.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/MJy1023/PaperPostman/pkg/types"
)

// SavePapers writes the papers as an indented JSON array, creating
// parent directories as needed. A nil slice is written as an empty
// array, not null.
func SavePapers(path string, papers []types.Paper) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	if papers == nil {
		papers = []types.Paper{}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(papers); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// LoadPapers reads a papers file. A missing, unreadable, or malformed
// file yields an empty list: persisted data never aborts a run.
func LoadPapers(path string) []types.Paper {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var papers []types.Paper
	if err := json.Unmarshal(data, &papers); err != nil {
		return nil
	}
	return papers
}

// AppendPapers adds papers to the file, skipping any whose non-empty ID
// or exact title is already present. Titles are compared raw here, not
// normalized: the accumulator is append-only and conservative. Appended
// papers immediately guard against later duplicates in the same batch.
// Returns how many papers were added.
func AppendPapers(path string, papers []types.Paper) (int, error) {
	existing := LoadPapers(path)

	seenIDs := make(map[string]struct{}, len(existing))
	seenTitles := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		if p.ID != "" {
			seenIDs[p.ID] = struct{}{}
		}
		if p.Title != "" {
			seenTitles[p.Title] = struct{}{}
		}
	}

	added := 0
	for _, p := range papers {
		if _, dup := seenIDs[p.ID]; dup && p.ID != "" {
			continue
		}
		if _, dup := seenTitles[p.Title]; dup && p.Title != "" {
			continue
		}

		existing = append(existing, p)
		added++
		if p.ID != "" {
			seenIDs[p.ID] = struct{}{}
		}
		if p.Title != "" {
			seenTitles[p.Title] = struct{}{}
		}
	}

	if err := SavePapers(path, existing); err != nil {
		return 0, err
	}
	return added, nil
}

// ArchiveReadme copies the README into <archiveDir>/<YYYY-MM-DD>/README.md
// and returns the archive path. A missing README is not an error; there
// is simply nothing to archive and the returned path is empty.
func ArchiveReadme(readmePath, archiveDir string, day time.Time) (string, error) {
	content, err := os.ReadFile(readmePath)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", readmePath, err)
	}

	dest := filepath.Join(archiveDir, day.Format("2006-01-02"), "README.md")
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("creating archive directory: %w", err)
	}
	if err := os.WriteFile(dest, content, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", dest, err)
	}
	return dest, nil
}

// ArchiveDates lists the dated archive subdirectories, newest first.
func ArchiveDates(archiveDir string) []string {
	entries, err := os.ReadDir(archiveDir)
	if err != nil {
		return nil
	}

	var dates []string
	for _, e := range entries {
		if e.IsDir() {
			dates = append(dates, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}
