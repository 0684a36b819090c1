// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"cmp"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/MJy1023/PaperPostman/internal/httputil"
	"github.com/MJy1023/PaperPostman/pkg/types"
)

// fetchListing reads the category listing feed and keeps the papers
// announced on day's UTC date. The listing carries no affiliations, so
// papers from this path never have any.
func (c *Client) fetchListing(ctx context.Context, category string, day time.Time) ([]types.Paper, error) {
	u := c.listingBaseURL() + "/" + category

	resp, err := httputil.Get(ctx, c.HTTPClient, u, c.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("listing feed request: %w", err)
	}
	defer resp.Body.Close()

	parsed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing listing feed: %w", err)
	}

	wantDate := day.UTC().Format("2006-01-02")
	var papers []types.Paper
	for _, item := range parsed.Items {
		if item.PublishedParsed == nil || item.PublishedParsed.UTC().Format("2006-01-02") != wantDate {
			continue
		}
		p, ok := parseListingItem(item)
		if !ok {
			continue
		}
		papers = append(papers, p)
	}
	return papers, nil
}

// parseListingItem maps a listing feed item to a Paper. Items without a
// recognizable arXiv ID are dropped.
func parseListingItem(item *gofeed.Item) (types.Paper, bool) {
	link := cmp.Or(item.Link, item.GUID)
	id := extractArxivID(link)
	if id == "" {
		id = extractOAIID(item.GUID)
	}
	if id == "" {
		return types.Paper{}, false
	}

	p := types.Paper{
		ID:         id,
		Title:      normalizeSpace(item.Title),
		Summary:    listingAbstract(item.Description),
		Categories: item.Categories,
		Link:       link,
		Source:     types.SourceArxiv,
	}

	for _, a := range item.Authors {
		if a != nil && a.Name != "" {
			p.Authors = append(p.Authors, strings.TrimSpace(a.Name))
		}
	}

	if item.PublishedParsed != nil {
		t := item.PublishedParsed.UTC()
		p.Published = &t
	}
	return p, true
}

// listingAbstract strips the "arXiv:NNNN.NNNNN Announce Type: ..."
// preamble the listing feed prepends to its abstracts.
func listingAbstract(desc string) string {
	const marker = "Abstract:"
	if idx := strings.Index(desc, marker); idx >= 0 {
		return strings.TrimSpace(desc[idx+len(marker):])
	}
	return strings.TrimSpace(desc)
}

// extractOAIID handles the listing feed's OAI-style GUIDs
// (e.g. "oai:arXiv.org:2408.12345v1" → "2408.12345").
func extractOAIID(guid string) string {
	if !strings.Contains(strings.ToLower(guid), "arxiv") {
		return ""
	}
	idx := strings.LastIndex(guid, ":")
	if idx < 0 {
		return ""
	}
	return stripVersion(guid[idx+1:])
}
