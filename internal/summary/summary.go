// Package summary generates digests of collected papers through an
// OpenAI-compatible chat completions endpoint. Callers decide what to
// do when no endpoint is configured; the package itself only knows how
// to ask a model and report errors.
package summary

import (
	"context"
	"strings"
	"time"

	"github.com/MJy1023/PaperPostman/pkg/types"
)

// Summarizer abstracts the LLM calls so the pipeline can be tested
// with a mock.
type Summarizer interface {
	// SummarizeWeek produces a markdown digest of a week's papers.
	SummarizeWeek(ctx context.Context, papers []types.Paper) (string, error)
	// SummarizePaper produces a 2-3 sentence summary of one paper.
	SummarizePaper(ctx context.Context, paper types.Paper) (string, error)
	// RecommendationComment produces a short pitch for why a paper is
	// worth reading.
	RecommendationComment(ctx context.Context, paper types.Paper) (string, error)
}

// IsSummaryDay reports whether now falls on the configured weekday.
// Day names are English and compared case-insensitively.
func IsSummaryDay(day string, now time.Time) bool {
	return strings.EqualFold(now.Weekday().String(), day)
}
