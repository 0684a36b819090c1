// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render produces the repository README: the latest matching
// papers, the daily recommendations, and the weekly summary when one
// exists.
package render

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/MJy1023/PaperPostman/pkg/types"
)

// InitialReadme is the placeholder document written before the first
// pipeline run has produced any data.
const InitialReadme = `# PaperPostman

> Automatically curated research papers from arXiv and papers.cool

**Last Updated:** Setup in progress

---

## Latest News

*Welcome to PaperPostman! This repository will be automatically updated with the latest research papers.*

---

## Daily Recommendation

*Daily recommendations will appear here after the first update.*

---

## Weekly Summary

*Weekly summaries will appear here on Fridays.*

---

---

*This repository is automatically maintained by PaperPostman.*
*Archived READMEs can be found in the [archive/](archive/) directory.*
`

// Render assembles the full README. The weekly summary section is
// included only when the summary text is non-blank; timestamps are
// rendered in UTC.
func Render(latest, recs []types.Paper, weeklySummary string, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("# PaperPostman\n")
	sb.WriteString("> Automatically curated research papers from arXiv and papers.cool\n")
	fmt.Fprintf(&sb, "\n**Last Updated:** %s\n", now.UTC().Format("2006-01-02 15:04:05 UTC"))
	sb.WriteString("---\n")

	sb.WriteString(latestNewsSection(latest))
	sb.WriteString(recommendationSection(recs))
	if strings.TrimSpace(weeklySummary) != "" {
		sb.WriteString(weeklySummarySection(weeklySummary, now))
	}

	sb.WriteString("\n---\n")
	sb.WriteString("\n*This repository is automatically maintained by PaperPostman.*\n")
	sb.WriteString("*Archived READMEs can be found in the [archive/](archive/) directory.*\n")
	return sb.String()
}

// WriteReadme renders the README and writes it to path.
func WriteReadme(path string, latest, recs []types.Paper, weeklySummary string, now time.Time) error {
	if err := os.WriteFile(path, []byte(Render(latest, recs, weeklySummary, now)), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// WriteInitial writes the placeholder README to path.
func WriteInitial(path string) error {
	if err := os.WriteFile(path, []byte(InitialReadme), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func latestNewsSection(papers []types.Paper) string {
	var sb strings.Builder
	sb.WriteString("\n## Latest News\n\n")

	if len(papers) == 0 {
		sb.WriteString("*No new papers matching your keywords found today.*\n\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "*%d papers found matching your keywords.*\n\n", len(papers))

	for i, p := range papers {
		fmt.Fprintf(&sb, "### %d. %s\n\n", i+1, p.Title)

		if len(p.Authors) > 0 {
			fmt.Fprintf(&sb, "**Authors:** %s\n\n", joinFirst(p.Authors, 5))
		}
		if len(p.Affiliations) > 0 {
			fmt.Fprintf(&sb, "**Affiliations:** %s\n\n", joinFirst(p.Affiliations, 3))
		}
		if p.Published != nil {
			fmt.Fprintf(&sb, "**Published:** %s\n\n", p.Published.Format("2006-01-02"))
		}

		if p.Conference != "" {
			fmt.Fprintf(&sb, "**Conference:** %s\n\n", p.Conference)
			if p.ConferenceYear != 0 {
				fmt.Fprintf(&sb, "**Year:** %d\n\n", p.ConferenceYear)
			}
			if p.Track != "" {
				fmt.Fprintf(&sb, "**Track:** %s\n\n", p.Track)
			}
		} else if len(p.Categories) > 0 {
			fmt.Fprintf(&sb, "**Categories:** %s\n\n", strings.Join(p.Categories, ", "))
		}

		if p.Link != "" {
			fmt.Fprintf(&sb, "**[Read Paper](%s)**\n\n", p.Link)
		}
		if p.Summary != "" {
			fmt.Fprintf(&sb, "%s\n\n", p.Summary)
		}

		sb.WriteString("---\n\n")
	}
	return sb.String()
}

func recommendationSection(papers []types.Paper) string {
	var sb strings.Builder
	sb.WriteString("\n## Daily Recommendation\n\n")

	if len(papers) == 0 {
		sb.WriteString("*No daily recommendation available.*\n\n")
		return sb.String()
	}

	for _, p := range papers {
		fmt.Fprintf(&sb, "### 🌟 %s\n\n", p.Title)

		if len(p.Authors) > 0 {
			fmt.Fprintf(&sb, "**Authors:** %s\n\n", joinFirst(p.Authors, 3))
		}
		if p.Conference != "" {
			fmt.Fprintf(&sb, "**Conference:** %s\n\n", p.Conference)
		}
		if p.Link != "" {
			fmt.Fprintf(&sb, "**[Read Paper](%s)**\n\n", p.Link)
		}
		if p.Summary != "" {
			fmt.Fprintf(&sb, "%s\n\n", p.Summary)
		}
	}

	sb.WriteString("---\n\n")
	return sb.String()
}

func weeklySummarySection(summary string, now time.Time) string {
	var sb strings.Builder
	sb.WriteString("\n## Weekly Summary\n\n")
	fmt.Fprintf(&sb, "*Week ending %s*\n\n", now.UTC().Format("2006-01-02"))
	sb.WriteString("---\n\n")
	sb.WriteString(summary)
	sb.WriteString("\n\n---\n\n")
	return sb.String()
}

// joinFirst joins up to max items and appends "et al." when the list
// is longer.
func joinFirst(items []string, max int) string {
	shown := items
	if len(items) > max {
		shown = items[:max]
	}
	joined := strings.Join(shown, ", ")
	if len(items) > max {
		joined += " et al."
	}
	return joined
}
