// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summary

import (
	"fmt"
	"strings"

	"github.com/MJy1023/PaperPostman/pkg/types"
)

// weeklyPromptHeader is the fixed instruction block for the weekly
// digest. The paper list is appended after it, one block per paper.
const weeklyPromptHeader = `Please summarize the following research papers for this week.

For each paper, provide a brief summary (1-2 sentences) highlighting the key contribution.
Group related papers together when possible.
Provide a concise weekly overview at the beginning (2-3 sentences).

Format the response in Markdown with the following structure:

## Weekly Overview
[2-3 sentence overview of the week's papers]

## Paper Summaries

### [Paper Title 1]
[Brief summary]

### [Paper Title 2]
[Brief summary]

---

Papers to summarize:

`

// BuildWeeklyPrompt renders the weekly digest prompt. Abstracts are
// clipped to 500 runes; author lists to their first five names.
func BuildWeeklyPrompt(papers []types.Paper) string {
	var sb strings.Builder
	sb.WriteString(weeklyPromptHeader)

	for i, p := range papers {
		fmt.Fprintf(&sb, "\n### Paper %d\n", i+1)
		fmt.Fprintf(&sb, "**Title:** %s\n", p.Title)
		fmt.Fprintf(&sb, "**Authors:** %s\n", firstAuthors(p.Authors))
		if p.Conference != "" {
			fmt.Fprintf(&sb, "**Conference:** %s\n", p.Conference)
		}
		if len(p.Categories) > 0 {
			fmt.Fprintf(&sb, "**Categories:** %s\n", strings.Join(p.Categories, ", "))
		}
		fmt.Fprintf(&sb, "**Abstract:** %s...\n", clip(p.Summary, 500))
	}
	return sb.String()
}

func buildPaperPrompt(p types.Paper) string {
	return fmt.Sprintf(`Summarize the following research paper in 2-3 sentences, focusing on the key contribution and method.

**Title:** %s
**Authors:** %s
**Abstract:** %s
`, p.Title, firstAuthors(p.Authors), clip(p.Summary, 1000))
}

func buildCommentPrompt(p types.Paper) string {
	return fmt.Sprintf(`Write a short, engaging recommendation (2-3 sentences) for why someone should read this paper. Be enthusiastic but honest.

**Title:** %s
**Abstract:** %s
`, p.Title, clip(p.Summary, 500))
}

// firstAuthors joins up to five author names.
func firstAuthors(authors []string) string {
	if len(authors) > 5 {
		authors = authors[:5]
	}
	return strings.Join(authors, ", ")
}

// clip truncates s to at most n runes.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
