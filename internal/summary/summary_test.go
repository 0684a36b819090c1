// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MJy1023/PaperPostman/pkg/types"
)

func newTestClient(baseURL string) *OpenAIClient {
	return &OpenAIClient{
		BaseURL:     baseURL,
		APIKey:      "test-key",
		Model:       "deepseek-chat",
		Temperature: 0.7,
		MaxTokens:   2000,
	}
}

// capture records the last request the fake endpoint received.
type capture struct {
	body []byte
	auth string
	path string
}

func newChatServer(t *testing.T, reply string) (*httptest.Server, *capture) {
	t.Helper()
	rec := &capture{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.body, _ = io.ReadAll(r.Body)
		rec.auth = r.Header.Get("Authorization")
		rec.path = r.URL.Path
		fmt.Fprintf(w, `{"choices":[{"message":{"content":%q}}]}`, reply)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestSummarizeWeekRequestShape(t *testing.T) {
	srv, rec := newChatServer(t, "## Weekly Overview\nA busy week.")
	// Trailing slash on the base must not produce a double slash.
	client := newTestClient(srv.URL + "/")

	papers := []types.Paper{
		{Title: "First Paper", Authors: []string{"A"}, Summary: "About attention."},
		{Title: "Second Paper", Authors: []string{"B"}, Summary: "About retrieval."},
	}

	digest, err := client.SummarizeWeek(context.Background(), papers)
	require.NoError(t, err)
	assert.Equal(t, "## Weekly Overview\nA busy week.", digest)

	assert.Equal(t, "/chat/completions", rec.path)
	assert.Equal(t, "Bearer test-key", rec.auth)

	var req chatRequest
	require.NoError(t, json.Unmarshal(rec.body, &req))
	assert.Equal(t, "deepseek-chat", req.Model)
	assert.Equal(t, 0.7, req.Temperature)
	assert.Equal(t, 2000, req.MaxTokens)
	assert.False(t, req.Stream)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, "user", req.Messages[0].Role)
	assert.True(t, strings.HasPrefix(req.Messages[0].Content, "Please summarize the following research papers for this week."))
	assert.Contains(t, req.Messages[0].Content, "### Paper 1")
	assert.Contains(t, req.Messages[0].Content, "### Paper 2")
}

func TestBuildWeeklyPrompt(t *testing.T) {
	papers := []types.Paper{
		{
			Title:      "Conference Paper",
			Authors:    []string{"A1", "A2", "A3", "A4", "A5", "A6"},
			Summary:    strings.Repeat("x", 600),
			Conference: "NeurIPS.2025 - Oral",
		},
		{
			Title:      "Feed Paper",
			Authors:    []string{"B1"},
			Summary:    "Tiny.",
			Categories: []string{"cs.AI", "cs.LG"},
		},
	}

	prompt := BuildWeeklyPrompt(papers)

	assert.Contains(t, prompt, "**Conference:** NeurIPS.2025 - Oral\n")
	assert.Contains(t, prompt, "**Categories:** cs.AI, cs.LG\n")

	// Author lists stop at five names.
	assert.Contains(t, prompt, "**Authors:** A1, A2, A3, A4, A5\n")
	assert.NotContains(t, prompt, "A6")

	// Abstracts clip at 500 runes and always carry the ellipsis.
	assert.Contains(t, prompt, strings.Repeat("x", 500)+"...")
	assert.NotContains(t, prompt, strings.Repeat("x", 501))
	assert.Contains(t, prompt, "**Abstract:** Tiny....\n")
}

func TestSummarizePaperUsesSmallBudget(t *testing.T) {
	srv, rec := newChatServer(t, "A crisp summary.")
	client := newTestClient(srv.URL)

	got, err := client.SummarizePaper(context.Background(), types.Paper{Title: "One Paper", Summary: "Body."})
	require.NoError(t, err)
	assert.Equal(t, "A crisp summary.", got)

	var req chatRequest
	require.NoError(t, json.Unmarshal(rec.body, &req))
	assert.Equal(t, 500, req.MaxTokens)
	assert.Equal(t, 0.7, req.Temperature)
	assert.True(t, strings.HasPrefix(req.Messages[0].Content, "Summarize the following research paper"))
}

func TestRecommendationCommentRunsHotter(t *testing.T) {
	srv, rec := newChatServer(t, "Read it tonight.")
	client := newTestClient(srv.URL)

	got, err := client.RecommendationComment(context.Background(), types.Paper{Title: "One Paper", Summary: "Body."})
	require.NoError(t, err)
	assert.Equal(t, "Read it tonight.", got)

	var req chatRequest
	require.NoError(t, json.Unmarshal(rec.body, &req))
	assert.Equal(t, 0.8, req.Temperature)
	assert.Equal(t, 300, req.MaxTokens)
	assert.True(t, strings.HasPrefix(req.Messages[0].Content, "Write a short, engaging recommendation"))
}

func TestRecommendationCommentFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).RecommendationComment(context.Background(), types.Paper{Title: "One Paper"})
	require.NoError(t, err)
	assert.Equal(t, FallbackComment, got)
}

func TestCallReportsAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "over quota"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).SummarizeWeek(context.Background(), []types.Paper{{Title: "P"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "over quota")
}

func TestCallRejectsEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).SummarizeWeek(context.Background(), []types.Paper{{Title: "P"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestIsSummaryDay(t *testing.T) {
	friday := time.Date(2025, time.August, 29, 8, 0, 0, 0, time.UTC)
	monday := time.Date(2025, time.August, 25, 8, 0, 0, 0, time.UTC)

	assert.True(t, IsSummaryDay("Friday", friday))
	assert.True(t, IsSummaryDay("friday", friday))
	assert.True(t, IsSummaryDay("FRIDAY", friday))
	assert.False(t, IsSummaryDay("Friday", monday))
	assert.True(t, IsSummaryDay("Monday", monday))
	assert.False(t, IsSummaryDay("", monday))
}
