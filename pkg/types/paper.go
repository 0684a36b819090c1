// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strings"
	"time"
)

// SourceArxiv marks papers from the arXiv query API or its category
// listing feed; SourcePapersCool marks papers scraped from papers.cool
// venue pages.
const (
	SourceArxiv      = "arxiv"
	SourcePapersCool = "paperscool"
)

// Paper holds the metadata for a single paper as it moves through the
// pipeline and as it is persisted in data files. JSON field names are the
// on-disk format; changing them breaks existing snapshots and weekly buckets.
type Paper struct {
	// ID is the upstream identifier: an arXiv id without its version
	// suffix (e.g. "2301.07041"), an OpenReview id, or the tail of a
	// papers.cool URL. May be empty for scraped entries.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Summary is the abstract text.
	Summary string `json:"summary" yaml:"summary"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Affiliations lists author affiliations when the source exposes them.
	// Only the arXiv query API ever does.
	Affiliations []string `json:"affiliations,omitempty" yaml:"affiliations,omitempty"`

	// Categories lists arXiv taxonomy codes (e.g. "cs.AI").
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`

	// Conference is the display string for conference papers,
	// "Name.Year" or "Name.Year - Track". Empty for arXiv papers.
	Conference string `json:"conference,omitempty" yaml:"conference,omitempty"`

	// ConferenceYear is the numeric year parsed from the venue page, 0 when unknown.
	ConferenceYear int `json:"conference_year,omitempty" yaml:"conference_year,omitempty"`

	// Track is the venue track (e.g. "Oral", "Poster").
	Track string `json:"track,omitempty" yaml:"track,omitempty"`

	// Link is the abstract page URL.
	Link string `json:"link,omitempty" yaml:"link,omitempty"`

	// Published is the submission or announcement time in UTC. Nil when
	// the source does not expose one; a nil date sorts as oldest.
	Published *time.Time `json:"published_date,omitempty" yaml:"published_date,omitempty"`

	// Source identifies which adapter produced the paper.
	Source string `json:"source" yaml:"source"`
}

// IdentityKey returns the dedup key for the paper: the upstream ID when
// present, otherwise the trimmed, lowercased title. Papers with neither
// collapse onto the empty key.
func (p Paper) IdentityKey() string {
	if p.ID != "" {
		return p.ID
	}
	return strings.ToLower(strings.TrimSpace(p.Title))
}

// PublishedOr returns the published time, or def when absent.
func (p Paper) PublishedOr(def time.Time) time.Time {
	if p.Published == nil {
		return def
	}
	return *p.Published
}
