// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline wires the fetchers, filters, storage, summarizer and
// renderer into the daily PaperPostman cycle. It owns the order of
// operations and the degradation rules; the packages it calls stay
// ignorant of each other.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/MJy1023/PaperPostman/internal/paper"
	"github.com/MJy1023/PaperPostman/internal/render"
	"github.com/MJy1023/PaperPostman/internal/store"
	"github.com/MJy1023/PaperPostman/internal/summary"
	"github.com/MJy1023/PaperPostman/pkg/types"
)

// Paths locates everything a run reads and writes.
type Paths struct {
	Readme     string
	ArchiveDir string
	DataDir    string
}

// DefaultPaths lays out the standard project structure under root using
// the configured directory names.
func DefaultPaths(root string, cfg types.Config) Paths {
	return Paths{
		Readme:     filepath.Join(root, "README.md"),
		ArchiveDir: filepath.Join(root, cfg.ArchiveDir),
		DataDir:    filepath.Join(root, cfg.DataDir),
	}
}

// PapersFile is the snapshot of everything the last run fetched.
func (p Paths) PapersFile() string { return filepath.Join(p.DataDir, "papers.json") }

// WeeklyDir holds the per-ISO-week accumulation buckets.
func (p Paths) WeeklyDir() string { return filepath.Join(p.DataDir, "weekly") }

// ArxivSource fetches one day's papers for a set of arXiv categories.
// *feed.Client satisfies it.
type ArxivSource interface {
	FetchCategories(ctx context.Context, categories []string, day time.Time, w io.Writer) []types.Paper
}

// VenueSource scrapes a set of papers.cool venue pages. *venue.Client
// satisfies it.
type VenueSource interface {
	FetchVenues(ctx context.Context, venues []string, w io.Writer) []types.Paper
}

// Deps are the run's collaborators. Summarizer is nil when no LLM
// endpoint is configured, Rand is nil to use the global source, Out is
// nil to discard progress output.
type Deps struct {
	Arxiv      ArxivSource
	Venues     VenueSource
	Summarizer summary.Summarizer
	Rand       *rand.Rand
	Out        io.Writer
}

// Run executes one daily cycle: fetch from both sources, filter, save
// the snapshot, pick recommendations, summarize the week when due,
// accumulate the weekly bucket, archive the previous README and render
// a new one. now is the run's wall clock; outside tests callers pass
// time.Now().UTC().
//
// Fetch and summary failures degrade: a failed source contributes
// nothing, a failed summary becomes placeholder text in the README.
// Storage and render failures abort the run.
func Run(ctx context.Context, cfg types.Config, paths Paths, now time.Time, deps Deps) error {
	w := deps.Out
	if w == nil {
		w = io.Discard
	}

	fmt.Fprintf(w, "=== PaperPostman Starting ===\n")
	fmt.Fprintf(w, "run time: %s\n\n", now.Format("2006-01-02 15:04:05 UTC"))

	if err := os.MkdirAll(paths.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	if err := os.MkdirAll(paths.ArchiveDir, 0o755); err != nil {
		return fmt.Errorf("creating archive dir: %w", err)
	}

	// Step 1: arXiv papers feed the Latest News section.
	fmt.Fprintf(w, "step 1: fetching arXiv papers\n")
	arxivPapers := deps.Arxiv.FetchCategories(ctx, cfg.ArxivCategories, now, w)
	fmt.Fprintf(w, "%d papers from arXiv\n\n", len(arxivPapers))

	// Step 2: conference papers feed the Daily Recommendation section.
	fmt.Fprintf(w, "step 2: fetching conference papers\n")
	venuePapers := deps.Venues.FetchVenues(ctx, cfg.Conferences, w)
	fmt.Fprintf(w, "%d papers from conferences\n\n", len(venuePapers))

	// Step 3: filter, dedup and rank the arXiv side. Only the display
	// list is capped; the weekly accumulation in step 8 takes the whole
	// filtered set.
	fmt.Fprintf(w, "step 3: filtering arXiv papers\n")
	arxivFiltered := paper.FilterByKeywords(arxivPapers, cfg.Keywords, cfg.KeywordMatch)
	arxivFiltered = paper.Deduplicate(arxivFiltered)
	arxivFiltered = paper.SortPapers(arxivFiltered, paper.SortByDate, true)
	latest := paper.LimitPapers(arxivFiltered, cfg.PapersPerDay)
	fmt.Fprintf(w, "%d arXiv papers match keywords, showing %d\n\n", len(arxivFiltered), len(latest))

	// Step 4: same treatment for the conference side, minus the cap.
	fmt.Fprintf(w, "step 4: filtering conference papers\n")
	venueFiltered := paper.FilterByKeywords(venuePapers, cfg.Keywords, cfg.KeywordMatch)
	venueFiltered = paper.Deduplicate(venueFiltered)
	fmt.Fprintf(w, "%d conference papers match keywords\n\n", len(venueFiltered))

	// Step 5: the snapshot keeps everything fetched, unfiltered, so a
	// keyword change never loses already-seen papers.
	fmt.Fprintf(w, "step 5: saving papers\n")
	snapshot := make([]types.Paper, 0, len(arxivPapers)+len(venuePapers))
	snapshot = append(snapshot, arxivPapers...)
	snapshot = append(snapshot, venuePapers...)
	if err := store.SavePapers(paths.PapersFile(), snapshot); err != nil {
		return fmt.Errorf("saving papers: %w", err)
	}
	fmt.Fprintf(w, "saved %d papers to %s\n\n", len(snapshot), paths.PapersFile())

	// Step 6: recommendations come from the conference side only.
	fmt.Fprintf(w, "step 6: picking daily recommendations\n")
	recs := render.SelectRandom(venueFiltered, cfg.DailyRecommendationCount, render.FromConferences, deps.Rand)
	if len(recs) == 0 {
		fmt.Fprintf(w, "no matching conference papers to recommend\n\n")
	} else {
		for _, rec := range recs {
			fmt.Fprintf(w, "recommending %q\n", rec.Title)
		}
		fmt.Fprintf(w, "\n")
	}

	// Step 7: the weekly summary covers the bucket as it stands now,
	// before this run's papers are appended in step 8.
	weeklySummary := ""
	if summary.IsSummaryDay(cfg.WeeklySummaryDay, now) {
		fmt.Fprintf(w, "step 7: generating weekly summary (today is %s)\n", cfg.WeeklySummaryDay)
		weekly := store.LoadWeekly(paths.WeeklyDir(), now)
		fmt.Fprintf(w, "%d papers accumulated this week\n", len(weekly))
		switch {
		case len(weekly) == 0:
			weeklySummary = "*No papers to summarize this week.*"
		case deps.Summarizer == nil:
			fmt.Fprintf(w, "LLM API not configured, skipping\n")
			weeklySummary = "*Summary generation skipped - LLM API not configured.*"
		default:
			digest, err := deps.Summarizer.SummarizeWeek(ctx, weekly)
			if err != nil {
				fmt.Fprintf(w, "warning: weekly summary failed: %v\n", err)
				weeklySummary = fmt.Sprintf("*Error generating summary: %v*", err)
			} else {
				weeklySummary = digest
			}
		}
		fmt.Fprintf(w, "\n")
	} else {
		fmt.Fprintf(w, "step 7: skipping weekly summary (today is not %s)\n\n", cfg.WeeklySummaryDay)
	}

	// Step 8: accumulate the full filtered list, not just today's
	// display cap, so the digest sees the whole week.
	fmt.Fprintf(w, "step 8: accumulating weekly bucket\n")
	added, err := store.SaveWeekly(paths.WeeklyDir(), arxivFiltered, now)
	if err != nil {
		return fmt.Errorf("saving weekly bucket: %w", err)
	}
	fmt.Fprintf(w, "added %d papers to %s\n\n", added, store.WeekFile(paths.WeeklyDir(), now))

	// Step 9: keep yesterday's README reachable under archive/.
	fmt.Fprintf(w, "step 9: archiving previous README\n")
	dest, err := store.ArchiveReadme(paths.Readme, paths.ArchiveDir, now)
	if err != nil {
		return fmt.Errorf("archiving README: %w", err)
	}
	if dest == "" {
		fmt.Fprintf(w, "no existing README to archive\n\n")
	} else {
		fmt.Fprintf(w, "archived to %s\n\n", dest)
	}

	// Step 10: render.
	fmt.Fprintf(w, "step 10: writing README\n")
	if err := render.WriteReadme(paths.Readme, latest, recs, weeklySummary, now); err != nil {
		return fmt.Errorf("writing README: %w", err)
	}
	fmt.Fprintf(w, "wrote %s\n\n", paths.Readme)

	fmt.Fprintf(w, "=== PaperPostman Complete ===\n")
	return nil
}

// Init prepares a fresh checkout: the data and archive directories plus
// the placeholder README a first run will replace.
func Init(paths Paths, w io.Writer) error {
	if w == nil {
		w = io.Discard
	}
	if err := os.MkdirAll(paths.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	if err := os.MkdirAll(paths.ArchiveDir, 0o755); err != nil {
		return fmt.Errorf("creating archive dir: %w", err)
	}
	if err := render.WriteInitial(paths.Readme); err != nil {
		return fmt.Errorf("writing initial README: %w", err)
	}
	fmt.Fprintf(w, "initial README created at %s\n", paths.Readme)
	return nil
}
