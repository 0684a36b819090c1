package main

import (
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MJy1023/PaperPostman/internal/feed"
	"github.com/MJy1023/PaperPostman/internal/pipeline"
	"github.com/MJy1023/PaperPostman/internal/summary"
	"github.com/MJy1023/PaperPostman/internal/venue"
	"github.com/MJy1023/PaperPostman/pkg/types"
)

// runDaily is the root command: one full update cycle in the current
// directory, or just the directory scaffolding with --init.
func runDaily(cmd *cobra.Command, args []string) error {
	if initOnly, _ := cmd.Flags().GetBool("init"); initOnly {
		// --init has to work on a fresh checkout before any config
		// file exists, so a load failure falls back to pure defaults.
		cfg, err := loadConfig()
		if err != nil {
			cfg = types.Config{}
			cfg.ApplyDefaults()
		}
		return pipeline.Init(pipeline.DefaultPaths(".", cfg), cmd.OutOrStdout())
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	return pipeline.Run(
		cmd.Context(),
		cfg,
		pipeline.DefaultPaths(".", cfg),
		time.Now().UTC(),
		buildDeps(cfg),
	)
}

// buildDeps assembles the production collaborators from config. The
// summarizer is only constructed when the LLM endpoint is actually
// usable; a nil summarizer tells the pipeline to skip generation.
func buildDeps(cfg types.Config) pipeline.Deps {
	httpClient := &http.Client{
		Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
	}

	var summarizer summary.Summarizer
	if cfg.LLMConfigured() {
		summarizer = &summary.OpenAIClient{
			BaseURL:     cfg.LLMAPIBase,
			APIKey:      cfg.LLMAPIKey,
			Model:       cfg.LLMModel,
			Temperature: cfg.LLMTemperature,
			MaxTokens:   cfg.LLMMaxTokens,
			HTTPClient:  httpClient,
		}
	}

	return pipeline.Deps{
		Arxiv: &feed.Client{
			HTTPClient: httpClient,
			BaseURL:    cfg.ArxivAPIBase,
			UserAgent:  cfg.UserAgent,
			MaxResults: cfg.ArxivMaxResults,
		},
		Venues: &venue.Client{
			HTTPClient: httpClient,
			BaseURL:    cfg.PapersCoolBaseURL,
			UserAgent:  cfg.UserAgent,
		},
		Summarizer: summarizer,
		Rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
		Out:        os.Stdout,
	}
}
