// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MJy1023/PaperPostman/pkg/types"
)

func TestSavePapersRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "papers.json")
	published := time.Date(2025, time.August, 25, 9, 30, 0, 0, time.UTC)

	papers := []types.Paper{
		{
			ID:        "2408.10001",
			Title:     "Attention in Attention Networks",
			Summary:   "A study of <nested> attention.",
			Authors:   []string{"Ada Lovelace"},
			Published: &published,
			Source:    types.SourceArxiv,
		},
	}

	require.NoError(t, SavePapers(path, papers))

	loaded := LoadPapers(path)
	require.Len(t, loaded, 1)
	assert.Equal(t, papers[0].ID, loaded[0].ID)
	assert.Equal(t, papers[0].Title, loaded[0].Title)
	assert.Equal(t, papers[0].Authors, loaded[0].Authors)
	require.NotNil(t, loaded[0].Published)
	assert.True(t, loaded[0].Published.Equal(published))

	// Angle brackets must survive unescaped so the data files stay readable.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "<nested>")
}

func TestSavePapersNilWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "papers.json")
	require.NoError(t, SavePapers(path, nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw[:2]))
}

func TestLoadPapersDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()

	assert.Empty(t, LoadPapers(filepath.Join(dir, "missing.json")))

	corrupt := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("{not json"), 0o644))
	assert.Empty(t, LoadPapers(corrupt))

	object := filepath.Join(dir, "object.json")
	require.NoError(t, os.WriteFile(object, []byte(`{"id": "x"}`), 0o644))
	assert.Empty(t, LoadPapers(object))
}

func TestAppendPapersSkipsKnownIDsAndTitles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "papers.json")
	require.NoError(t, SavePapers(path, []types.Paper{
		{ID: "2408.10001", Title: "First Paper"},
		{Title: "Venue-Only Paper"},
	}))

	added, err := AppendPapers(path, []types.Paper{
		{ID: "2408.10001", Title: "First Paper, Retitled"}, // dup by ID
		{Title: "Venue-Only Paper"},                        // dup by title
		{ID: "2408.10002", Title: "Second Paper"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	loaded := LoadPapers(path)
	require.Len(t, loaded, 3)
	assert.Equal(t, "Second Paper", loaded[2].Title)
}

func TestAppendPapersDeduplicatesWithinBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "papers.json")

	added, err := AppendPapers(path, []types.Paper{
		{ID: "2408.10003", Title: "Fresh Paper"},
		{ID: "2408.10003", Title: "Fresh Paper Again"}, // ID already taken this batch
		{Title: "Fresh Paper"},                         // title already taken this batch
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Len(t, LoadPapers(path), 1)
}

func TestAppendPapersKeepsUnidentifiedEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "papers.json")

	// Papers with neither an ID nor a title cannot collide with anything.
	added, err := AppendPapers(path, []types.Paper{
		{Summary: "first unidentified"},
		{Summary: "second unidentified"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.Len(t, LoadPapers(path), 2)
}

func TestArchiveReadme(t *testing.T) {
	dir := t.TempDir()
	readme := filepath.Join(dir, "README.md")
	archive := filepath.Join(dir, "archive")
	day := time.Date(2025, time.August, 25, 8, 0, 0, 0, time.UTC)

	require.NoError(t, os.WriteFile(readme, []byte("# Daily Papers\n"), 0o644))

	dest, err := ArchiveReadme(readme, archive, day)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(archive, "2025-08-25", "README.md"), dest)

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "# Daily Papers\n", string(content))
}

func TestArchiveReadmeMissingIsNoop(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "archive")

	dest, err := ArchiveReadme(filepath.Join(dir, "README.md"), archive, time.Now())
	require.NoError(t, err)
	assert.Empty(t, dest)

	_, statErr := os.Stat(archive)
	assert.True(t, os.IsNotExist(statErr))
}

func TestArchiveDatesNewestFirst(t *testing.T) {
	archive := t.TempDir()
	for _, d := range []string{"2025-08-22", "2025-08-25", "2025-08-23"} {
		require.NoError(t, os.Mkdir(filepath.Join(archive, d), 0o755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(archive, "stray.txt"), nil, 0o644))

	assert.Equal(t, []string{"2025-08-25", "2025-08-23", "2025-08-22"}, ArchiveDates(archive))
	assert.Empty(t, ArchiveDates(filepath.Join(archive, "missing")))
}
