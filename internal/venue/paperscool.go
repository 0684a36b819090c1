// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package venue scrapes conference listings from papers.cool venue pages.
package venue

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/MJy1023/PaperPostman/internal/httputil"
	"github.com/MJy1023/PaperPostman/pkg/types"
)

// Package-var base URLs so tests can substitute an httptest server.
var (
	venueBase  = "https://papers.cool/venue"
	searchBase = "https://papers.cool"
)

// defaultVenueDelay is the politeness delay between venue fetches.
const defaultVenueDelay = time.Second

// Client scrapes papers.cool. The zero value works with package defaults.
type Client struct {
	HTTPClient    *http.Client
	BaseURL       string
	SearchBaseURL string
	UserAgent     string
	Delay         time.Duration
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return venueBase
}

func (c *Client) searchBaseURL() string {
	if c.SearchBaseURL != "" {
		return c.SearchBaseURL
	}
	return searchBase
}

func (c *Client) delay() time.Duration {
	if c.Delay > 0 {
		return c.Delay
	}
	return defaultVenueDelay
}

// VenueInfo is what the page header reveals about the venue.
type VenueInfo struct {
	Name  string
	Year  int
	Total int
}

// FetchVenues scrapes each venue sequentially with a politeness delay
// between requests. A failing venue is reported to w and contributes
// nothing. The result preserves venue order, then page order.
func (c *Client) FetchVenues(ctx context.Context, venues []string, w io.Writer) []types.Paper {
	var all []types.Paper
	for i, venue := range venues {
		if i > 0 {
			if err := httputil.Wait(ctx, c.delay()); err != nil {
				fmt.Fprintf(w, "warning: fetch interrupted: %v\n", err)
				return all
			}
		}

		papers, err := c.FetchVenue(ctx, venue)
		if err != nil {
			fmt.Fprintf(w, "warning: venue %s failed: %v\n", venue, err)
			continue
		}
		fmt.Fprintf(w, "fetched %d papers from %s\n", len(papers), venue)
		all = append(all, papers...)
	}
	return all
}

// FetchVenue scrapes a single venue page (e.g. "NeurIPS.2025").
func (c *Client) FetchVenue(ctx context.Context, venue string) ([]types.Paper, error) {
	pageURL := c.baseURL() + "/" + venue

	doc, err := c.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	info := extractVenueInfo(doc)
	return parseVenuePapers(doc, pageURL, info), nil
}

// Search queries the papers.cool search endpoint and parses the result
// page with the same panel structure as venue pages. Search results
// carry no venue header, so papers come back without conference info.
func (c *Client) Search(ctx context.Context, query string) ([]types.Paper, error) {
	searchURL := c.searchBaseURL() + "/search?q=" + url.QueryEscape(query)

	doc, err := c.fetchDocument(ctx, searchURL)
	if err != nil {
		return nil, err
	}
	return parseVenuePapers(doc, searchURL, VenueInfo{}), nil
}

func (c *Client) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	resp, err := httputil.Get(ctx, c.HTTPClient, pageURL, c.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", pageURL, err)
	}
	return doc, nil
}

// extractVenueInfo reads "Name.Year" from the page h1 and the listed
// paper count from the info line.
func extractVenueInfo(doc *goquery.Document) VenueInfo {
	var info VenueInfo

	h1 := strings.TrimSpace(doc.Find("h1.notranslate").First().Text())
	if parts := strings.Split(h1, "."); len(parts) == 2 {
		info.Name = parts[0]
		if year, err := strconv.Atoi(parts[1]); err == nil {
			info.Year = year
		}
	}

	infoText := strings.TrimSpace(doc.Find("p.info.notranslate").First().Text())
	if idx := strings.Index(infoText, "Total:"); idx >= 0 {
		numStr := strings.TrimSpace(infoText[idx+len("Total:"):])
		end := 0
		for end < len(numStr) && numStr[end] >= '0' && numStr[end] <= '9' {
			end++
		}
		if end > 0 {
			info.Total, _ = strconv.Atoi(numStr[:end])
		}
	}

	return info
}

// parseVenuePapers walks the paper panels on a venue or search page.
func parseVenuePapers(doc *goquery.Document, pageURL string, info VenueInfo) []types.Paper {
	var papers []types.Paper
	doc.Find("div.panel.paper").Each(func(_ int, panel *goquery.Selection) {
		p, ok := parsePaperPanel(panel, pageURL, info)
		if ok && p.Title != "" {
			papers = append(papers, p)
		}
	})
	return papers
}

// parsePaperPanel extracts one paper from its panel div. The paper ID is
// taken from the raw title-link href so that identity matches what the
// upstream page encodes; the stored link is resolved to an absolute URL
// afterwards for the rendered README.
func parsePaperPanel(panel *goquery.Selection, pageURL string, info VenueInfo) (types.Paper, bool) {
	titleLink := panel.Find("a.title-link.notranslate").First()
	if titleLink.Length() == 0 {
		return types.Paper{}, false
	}

	title := strings.TrimSpace(titleLink.Text())
	href, _ := titleLink.Attr("href")

	p := types.Paper{
		ID:     extractPaperID(href),
		Title:  title,
		Link:   resolveURL(pageURL, href),
		Source: types.SourcePapersCool,
	}

	panel.Find("p.metainfo.authors.notranslate a.author.notranslate").Each(func(_ int, a *goquery.Selection) {
		if name := strings.TrimSpace(a.Text()); name != "" {
			p.Authors = append(p.Authors, name)
		}
	})

	if summary := panel.Find("p.summary.notranslate").First(); summary.Length() > 0 {
		abstract := strings.TrimSpace(summary.Text())
		if strings.HasSuffix(abstract, "...") {
			abstract = strings.TrimSuffix(abstract, "...") + "."
		}
		p.Summary = abstract
	}

	var track string
	panel.Find("p.metainfo.subjects.notranslate a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		subjHref, _ := a.Attr("href")
		if v := paramAfter(subjHref, "group="); v != "" {
			track = v
			return false
		}
		return true
	})
	p.Track = track

	// Pages without a venue header (search results) yield no conference
	// metadata, even when a track tag is present.
	if info.Name != "" {
		display := info.Name
		if info.Year != 0 {
			display += fmt.Sprintf(".%d", info.Year)
		}
		if track != "" {
			display += " - " + track
		}
		p.Conference = display
		p.ConferenceYear = info.Year
	}

	return p, true
}

// extractPaperID pulls an identifier out of a title-link href:
// the id= parameter for OpenReview, otherwise the last path segment for
// arXiv and papers.cool links. Anything else has no ID.
func extractPaperID(href string) string {
	if href == "" {
		return ""
	}
	lower := strings.ToLower(href)
	switch {
	case strings.Contains(href, "openreview.net"):
		return paramAfter(href, "id=")
	case strings.Contains(lower, "arxiv"):
		return lastSegment(href)
	case strings.Contains(href, "papers.cool") && strings.Contains(href, "/"):
		return lastSegment(href)
	}
	return ""
}

// paramAfter returns the raw value following marker in href, up to the
// next '&'. No unescaping, matching what the page literally encodes.
func paramAfter(href, marker string) string {
	idx := strings.Index(href, marker)
	if idx < 0 {
		return ""
	}
	v := href[idx+len(marker):]
	if amp := strings.Index(v, "&"); amp >= 0 {
		v = v[:amp]
	}
	return v
}

func lastSegment(href string) string {
	parts := strings.Split(href, "/")
	return parts[len(parts)-1]
}

// resolveURL makes href absolute against the page URL. Unparsable
// inputs fall back to the raw href.
func resolveURL(pageURL, href string) string {
	if href == "" {
		return ""
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
