package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MJy1023/PaperPostman/internal/index"
	"github.com/MJy1023/PaperPostman/internal/pipeline"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the local search index from collected papers",
	Long: `Index rebuilds the SQLite full-text index under <data_dir>/index from
the papers.json snapshot and every weekly bucket, then writes a YAML
export alongside it. Run it after the daily update to keep search fresh.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	paths := pipeline.DefaultPaths(".", cfg)

	store, err := index.NewStore(paths.DataDir, 0)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Rebuild(cmd.Context(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed indexing", summary.Failed)
	}

	if err := store.ExportYAML(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", filepath.Join(paths.DataDir, "index", "export.yaml"))
	return nil
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
