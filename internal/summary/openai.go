// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/MJy1023/PaperPostman/pkg/types"
)

// Per-call settings for the short-form prompts. The weekly digest uses
// the client's configured temperature and token budget; single-paper
// summaries get a smaller budget and recommendations run hotter.
const (
	paperMaxTokens     = 500
	commentMaxTokens   = 300
	commentTemperature = 0.8
)

// FallbackComment is used when a recommendation comment cannot be
// generated. A stock line beats an empty recommendation entry.
const FallbackComment = "An interesting paper worth reading!"

// OpenAIClient talks to any chat-completions endpoint that speaks the
// OpenAI wire format (DeepSeek, OpenAI, local gateways). BaseURL is the
// API root; the client appends /chat/completions.
type OpenAIClient struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	HTTPClient  *http.Client
}

var _ Summarizer = (*OpenAIClient)(nil)

// chatRequest is the request body for the chat completions API.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

// chatMessage is a single message in the conversation.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the subset of the response body the client reads.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// SummarizeWeek asks the model for a markdown digest of the papers.
func (c *OpenAIClient) SummarizeWeek(ctx context.Context, papers []types.Paper) (string, error) {
	return c.call(ctx, BuildWeeklyPrompt(papers), c.Temperature, c.MaxTokens)
}

// SummarizePaper asks the model for a short summary of one paper.
func (c *OpenAIClient) SummarizePaper(ctx context.Context, paper types.Paper) (string, error) {
	return c.call(ctx, buildPaperPrompt(paper), c.Temperature, paperMaxTokens)
}

// RecommendationComment asks the model for a short reading pitch.
// Unlike the other calls, a failed request degrades to FallbackComment
// instead of an error: a recommendation is decoration, not data.
func (c *OpenAIClient) RecommendationComment(ctx context.Context, paper types.Paper) (string, error) {
	comment, err := c.call(ctx, buildCommentPrompt(paper), commentTemperature, commentMaxTokens)
	if err != nil {
		return FallbackComment, nil
	}
	return comment, nil
}

func (c *OpenAIClient) call(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Stream:      false,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := strings.TrimRight(c.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling LLM API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("LLM API returned %d: %s", resp.StatusCode, string(excerpt))
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("decoding LLM response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("LLM API returned no choices")
	}
	return cr.Choices[0].Message.Content, nil
}
