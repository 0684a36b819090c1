// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// FormatTable writes results as a human-readable table to w.
func FormatTable(results []Result, w io.Writer) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-4s  %-10s  %s\n",
		"Rank", "Title", "Authors", "Year", "Source", "Venue")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, r := range results {
		title := r.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		year := ""
		if r.Published != nil {
			year = fmt.Sprintf("%d", r.Published.Year())
		} else if r.ConferenceYear != 0 {
			year = fmt.Sprintf("%d", r.ConferenceYear)
		}
		venue := r.Conference
		if venue == "" {
			venue = strings.Join(r.Categories, ",")
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-4s  %-10s  %s\n",
			i+1, title, formatAuthors(r.Authors), year, r.Source, venue)
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
}

// FormatJSON writes results as indented JSON to w.
func FormatJSON(results []Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
