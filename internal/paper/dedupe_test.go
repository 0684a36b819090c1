package paper

import (
	"testing"

	"github.com/MJy1023/PaperPostman/pkg/types"
)

func TestDeduplicateByID(t *testing.T) {
	papers := []types.Paper{
		{ID: "2301.07041", Title: "First fetch", Source: types.SourceArxiv},
		{ID: "2301.07041", Title: "Second fetch", Source: types.SourcePapersCool},
		{ID: "2301.99999", Title: "Other"},
	}

	got := Deduplicate(papers)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Title != "First fetch" {
		t.Errorf("first occurrence should win, got %q", got[0].Title)
	}
}

func TestDeduplicateByTitleFallback(t *testing.T) {
	papers := []types.Paper{
		{Title: "Attention Is All You Need"},
		{Title: "  attention is all you need  "},
		{Title: "Different"},
	}

	got := Deduplicate(papers)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Title != "Attention Is All You Need" {
		t.Errorf("first occurrence should win, got %q", got[0].Title)
	}
}

func TestDeduplicateIDBeatsTitle(t *testing.T) {
	// A paper with an ID is keyed on the ID alone, so a matching title
	// on an ID-less paper is not a duplicate of it.
	papers := []types.Paper{
		{ID: "2301.07041", Title: "Same Title"},
		{Title: "Same Title"},
	}

	got := Deduplicate(papers)
	if len(got) != 2 {
		t.Errorf("len = %d, want 2 (ID and title keys are distinct here)", len(got))
	}
}

func TestDeduplicateEmptyIdentity(t *testing.T) {
	papers := []types.Paper{
		{Summary: "no id, no title"},
		{Summary: "also anonymous"},
	}

	got := Deduplicate(papers)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1 (anonymous papers share the empty key)", len(got))
	}
	if got[0].Summary != "no id, no title" {
		t.Errorf("first anonymous paper should survive, got %q", got[0].Summary)
	}
}
