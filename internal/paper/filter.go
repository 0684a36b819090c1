// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package paper implements the in-memory pipeline stages: keyword and
// metadata filters, relevance scoring, sorting, deduplication, and
// truncation. Every function treats its input as read-only.
package paper

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/MJy1023/PaperPostman/pkg/types"
)

// Match modes for FilterByKeywords. Anything else matches nothing.
const (
	MatchAny = "any"
	MatchAll = "all"
)

// FilterByKeywords keeps papers whose title or abstract contains the
// configured keywords. An empty keyword list keeps everything. Matching
// is case-insensitive substring containment over text with punctuation
// replaced by spaces, so "self-supervised" in a title matches the
// keyword "self supervised", not "self-supervised".
func FilterByKeywords(papers []types.Paper, keywords []string, match string) []types.Paper {
	if len(keywords) == 0 {
		return papers
	}
	cleaned := cleanKeywords(keywords)

	var filtered []types.Paper
	for _, p := range papers {
		text := cleanMatchText(p.Title + " " + p.Summary)
		switch match {
		case MatchAny:
			if containsAny(text, cleaned) {
				filtered = append(filtered, p)
			}
		case MatchAll:
			if containsAll(text, cleaned) {
				filtered = append(filtered, p)
			}
		}
	}
	return filtered
}

// MatchScore scores a paper against the keywords: three points per
// occurrence in the title, one per occurrence in the full cleaned text
// (which includes the title again). Zero keywords score zero.
func MatchScore(p types.Paper, keywords []string) int {
	cleaned := cleanKeywords(keywords)
	if len(cleaned) == 0 {
		return 0
	}

	title := strings.ToLower(p.Title)
	text := cleanMatchText(p.Title + " " + p.Summary)

	score := 0
	for _, kw := range cleaned {
		score += strings.Count(title, kw) * 3
		score += strings.Count(text, kw)
	}
	return score
}

// RankByScore returns the papers in descending MatchScore order. The
// sort is stable: equally scored papers keep their input order.
func RankByScore(papers []types.Paper, keywords []string) []types.Paper {
	type scored struct {
		paper types.Paper
		score int
	}
	ranked := make([]scored, len(papers))
	for i, p := range papers {
		ranked[i] = scored{paper: p, score: MatchScore(p, keywords)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	out := make([]types.Paper, len(ranked))
	for i, s := range ranked {
		out[i] = s.paper
	}
	return out
}

// FilterByCategories keeps papers sharing at least one category with the
// given list, case-insensitively. An empty list keeps everything.
func FilterByCategories(papers []types.Paper, categories []string) []types.Paper {
	if len(categories) == 0 {
		return papers
	}
	want := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		want[strings.ToLower(c)] = struct{}{}
	}

	var filtered []types.Paper
	for _, p := range papers {
		for _, c := range p.Categories {
			if _, ok := want[strings.ToLower(c)]; ok {
				filtered = append(filtered, p)
				break
			}
		}
	}
	return filtered
}

// FilterByConference keeps papers whose conference display string
// matches one of the given names exactly, case-insensitively. An empty
// list keeps everything.
func FilterByConference(papers []types.Paper, conferences []string) []types.Paper {
	if len(conferences) == 0 {
		return papers
	}
	want := make(map[string]struct{}, len(conferences))
	for _, c := range conferences {
		want[strings.ToLower(c)] = struct{}{}
	}

	var filtered []types.Paper
	for _, p := range papers {
		if _, ok := want[strings.ToLower(p.Conference)]; ok {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// FilterByDate keeps papers published within [from, to], inclusive.
// When either bound is set, papers without a published date are
// dropped; with both bounds nil the input is returned unchanged.
func FilterByDate(papers []types.Paper, from, to *time.Time) []types.Paper {
	if from == nil && to == nil {
		return papers
	}

	var filtered []types.Paper
	for _, p := range papers {
		if p.Published == nil {
			continue
		}
		if from != nil && p.Published.Before(*from) {
			continue
		}
		if to != nil && p.Published.After(*to) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// cleanKeywords trims and lowercases keywords, dropping blanks.
func cleanKeywords(keywords []string) []string {
	cleaned := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			cleaned = append(cleaned, kw)
		}
	}
	return cleaned
}

// cleanMatchText lowercases the text and replaces every rune that is not
// a letter, digit, underscore, or whitespace with a single space.
// Whitespace is left as-is, so substring matches see the original word
// spacing.
func cleanMatchText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String()
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// containsAll is vacuously true for an empty keyword list, mirroring
// FilterByKeywords' "all" mode when every configured keyword is blank.
func containsAll(text string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(text, kw) {
			return false
		}
	}
	return true
}
