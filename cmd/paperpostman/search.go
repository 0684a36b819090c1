package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MJy1023/PaperPostman/internal/index"
	"github.com/MJy1023/PaperPostman/internal/pipeline"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the collected papers",
	Long: `Search runs a full-text query against the local index built by the
index command. Matching covers titles and abstracts; results rank by
relevance. An empty query lists indexed papers alphabetically.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	source, _ := cmd.Flags().GetString("source")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := index.NewStore(pipeline.DefaultPaths(".", cfg).DataDir, limit)
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Query(cmd.Context(), strings.Join(args, " "), index.QueryOptions{
		Source:     source,
		MaxResults: limit,
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		return index.FormatJSON(results, os.Stdout)
	}
	index.FormatTable(results, os.Stdout)
	return nil
}

func init() {
	searchCmd.Flags().Int("limit", 20, "maximum number of results")
	searchCmd.Flags().String("source", "", `filter by source ("arxiv" or "paperscool")`)
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
