// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package feed fetches paper metadata from the arXiv Atom API and, as a
// fallback, from the arXiv category listing feeds.
package feed

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MJy1023/PaperPostman/internal/httputil"
	"github.com/MJy1023/PaperPostman/pkg/types"
)

// arxivAPIBase is the arXiv query endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// arxivListingBase is the arXiv category listing feed root, used when a
// dated query comes back empty. Var for the same reason.
var arxivListingBase = "https://rss.arxiv.org/atom"

// defaultCategoryDelay is the politeness delay between category fetches.
const defaultCategoryDelay = 500 * time.Millisecond

// Client queries the arXiv API. The zero value works with package
// defaults; fields override per-config.
type Client struct {
	HTTPClient     *http.Client
	BaseURL        string
	ListingBaseURL string
	UserAgent      string
	MaxResults     int
	Delay          time.Duration
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return arxivAPIBase
}

func (c *Client) listingBaseURL() string {
	if c.ListingBaseURL != "" {
		return c.ListingBaseURL
	}
	return arxivListingBase
}

func (c *Client) maxResults() int {
	if c.MaxResults > 0 {
		return c.MaxResults
	}
	return 100
}

func (c *Client) delay() time.Duration {
	if c.Delay > 0 {
		return c.Delay
	}
	return defaultCategoryDelay
}

// FetchCategories fetches the papers submitted on day's UTC date for
// each category, sequentially, with a politeness delay between
// requests. A failing category is reported to w and contributes
// nothing; the next one is still fetched. When the dated query returns
// no entries for a category the listing feed is tried, since the query
// API often lags behind same-day announcements.
func (c *Client) FetchCategories(ctx context.Context, categories []string, day time.Time, w io.Writer) []types.Paper {
	var all []types.Paper
	for i, category := range categories {
		if i > 0 {
			if err := httputil.Wait(ctx, c.delay()); err != nil {
				fmt.Fprintf(w, "warning: fetch interrupted: %v\n", err)
				return all
			}
		}

		papers, err := c.fetchCategory(ctx, category, day)
		if err != nil {
			fmt.Fprintf(w, "warning: category %s failed: %v\n", category, err)
			continue
		}

		if len(papers) == 0 {
			papers, err = c.fetchListing(ctx, category, day)
			if err != nil {
				fmt.Fprintf(w, "warning: listing feed for %s failed: %v\n", category, err)
				continue
			}
		}

		fmt.Fprintf(w, "fetched %d papers from %s\n", len(papers), category)
		all = append(all, papers...)
	}
	return all
}

// fetchCategory queries the API for one category restricted to the
// submission window of day's UTC date.
func (c *Client) fetchCategory(ctx context.Context, category string, day time.Time) ([]types.Paper, error) {
	date := day.UTC().Format("20060102")
	query := fmt.Sprintf("cat:%s AND submittedDate:[%s0000 TO %s2359]", category, date, date)

	u := fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d",
		c.baseURL(), url.QueryEscape(query), c.maxResults())

	return c.fetchFeed(ctx, u)
}

// FetchByID fetches specific papers by arXiv ID, without a date window.
func (c *Client) FetchByID(ctx context.Context, ids []string) ([]types.Paper, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := "id:" + strings.Join(ids, " OR ")
	u := fmt.Sprintf("%s?search_query=%s", c.baseURL(), url.QueryEscape(query))
	return c.fetchFeed(ctx, u)
}

// fetchFeed GETs an API URL and parses the Atom response into papers.
func (c *Client) fetchFeed(ctx context.Context, u string) ([]types.Paper, error) {
	resp, err := httputil.Get(ctx, c.HTTPClient, u, c.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	var papers []types.Paper
	for _, entry := range feed.Entries {
		p, ok := parseArxivEntry(entry)
		if !ok {
			continue
		}
		papers = append(papers, p)
	}
	return papers, nil
}

// arXiv Atom feed XML structures. The affiliation element lives in the
// arxiv: namespace nested inside <author>; encoding/xml matches it by
// local name.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID         string          `xml:"id"`
	Title      string          `xml:"title"`
	Summary    string          `xml:"summary"`
	Published  string          `xml:"published"`
	Updated    string          `xml:"updated"`
	Authors    []arxivAuthor   `xml:"author"`
	Categories []arxivCategory `xml:"category"`
}

type arxivAuthor struct {
	Name        string `xml:"name"`
	Affiliation string `xml:"affiliation"`
}

type arxivCategory struct {
	Term string `xml:"term,attr"`
}

// parseArxivEntry maps one Atom entry to a Paper. Entries whose <id>
// does not look like an abstract URL are dropped.
func parseArxivEntry(entry arxivEntry) (types.Paper, bool) {
	id := extractArxivID(entry.ID)
	if id == "" {
		return types.Paper{}, false
	}

	p := types.Paper{
		ID:      id,
		Title:   normalizeSpace(entry.Title),
		Summary: strings.TrimSpace(entry.Summary),
		Link:    entry.ID,
		Source:  types.SourceArxiv,
	}

	for _, a := range entry.Authors {
		p.Authors = append(p.Authors, strings.TrimSpace(a.Name))
		if aff := strings.TrimSpace(a.Affiliation); aff != "" {
			p.Affiliations = append(p.Affiliations, aff)
		}
	}

	for _, cat := range entry.Categories {
		if cat.Term != "" {
			p.Categories = append(p.Categories, cat.Term)
		}
	}

	if t, err := time.Parse(time.RFC3339, entry.Published); err == nil {
		t = t.UTC()
		p.Published = &t
	} else if t, err := time.Parse(time.RFC3339, entry.Updated); err == nil {
		t = t.UTC()
		p.Published = &t
	}

	return p, true
}

// extractArxivID pulls the arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041").
func extractArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	return stripVersion(idURL[idx+len(prefix):])
}

// stripVersion removes a trailing version suffix (e.g. "v1", "v2").
func stripVersion(id string) string {
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			return id[:vIdx]
		}
	}
	return id
}

// normalizeSpace collapses whitespace runs to single spaces and trims.
// arXiv wraps long titles across lines in the Atom payload.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
