// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package paper

import (
	"sort"
	"strings"
	"time"

	"github.com/MJy1023/PaperPostman/pkg/types"
)

// Sort keys for SortPapers. An unknown key returns the input unchanged.
const (
	SortByDate    = "date"
	SortByTitle   = "title"
	SortByAuthors = "authors"
)

// missingDate is what a nil published date sorts as: the oldest possible
// instant for ordering purposes. A paper genuinely published before 1970
// would sort below it, which nothing upstream can produce.
var missingDate = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// SortPapers returns the papers ordered by the given key. reverse=true
// means descending (the pipeline default: newest first). The sort is
// stable in both directions; equal keys keep input order.
func SortPapers(papers []types.Paper, key string, reverse bool) []types.Paper {
	var less func(a, b types.Paper) bool
	switch key {
	case SortByDate:
		less = func(a, b types.Paper) bool {
			return a.PublishedOr(missingDate).Before(b.PublishedOr(missingDate))
		}
	case SortByTitle:
		less = func(a, b types.Paper) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	case SortByAuthors:
		less = func(a, b types.Paper) bool {
			return strings.ToLower(strings.Join(a.Authors, ", ")) < strings.ToLower(strings.Join(b.Authors, ", "))
		}
	default:
		return papers
	}

	sorted := make([]types.Paper, len(papers))
	copy(sorted, papers)
	sort.SliceStable(sorted, func(i, j int) bool {
		if reverse {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted
}

// LimitPapers returns at most n papers from the front of the list.
// n <= 0 yields nothing.
func LimitPapers(papers []types.Paper, n int) []types.Paper {
	if n <= 0 {
		return nil
	}
	if n >= len(papers) {
		return papers
	}
	return papers[:n]
}
