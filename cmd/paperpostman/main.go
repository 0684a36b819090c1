// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paperpostman CLI. Running it
// with no arguments executes one daily update cycle in the current
// directory; subcommands cover the search index and weekly-bucket
// maintenance.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MJy1023/PaperPostman/internal/config"
	"github.com/MJy1023/PaperPostman/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd runs the daily cycle when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "paperpostman",
	Short: "Automated paper curation for a GitHub README",
	Long: `paperpostman fetches new papers from arXiv and papers.cool, filters
them by your keywords, and rewrites README.md with the day's findings: a
Latest News section from arXiv, a random conference recommendation, and,
once a week, an LLM-generated summary of everything collected.

Run it with no arguments from the repository it maintains, typically on
a daily schedule. Configuration lives in paperpostman.yaml.`,
	Args: cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A .env in the working directory supplies API keys for local
		// runs; in CI the environment is already populated.
		_ = godotenv.Load()
	},
	RunE: runDaily,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paperpostman.yaml or ~/.config/paperpostman/paperpostman.yaml)")
	rootCmd.Flags().Bool("init", false, "create the data and archive directories and a placeholder README, then exit")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	config.InitViper(viper.GetViper(), cfgFile)
}

// loadConfig reads the resolved configuration for a command run.
func loadConfig() (types.Config, error) {
	cfg, err := config.Load(viper.GetViper(), nil)
	if err != nil {
		return cfg, fmt.Errorf("could not load configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
