package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MJy1023/PaperPostman/internal/pipeline"
	"github.com/MJy1023/PaperPostman/internal/store"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete weekly buckets older than the retention window",
	Long: `Sweep removes weekly paper buckets more than --keep-weeks ISO weeks
old. Buckets from future weeks are never touched, and the README
archive is not affected.`,
	Args: cobra.NoArgs,
	RunE: runSweep,
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	keep, _ := cmd.Flags().GetInt("keep-weeks")

	removed, err := store.SweepWeekly(pipeline.DefaultPaths(".", cfg).WeeklyDir(), time.Now().UTC(), keep)
	if err != nil {
		return err
	}

	if len(removed) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "nothing to sweep")
		return nil
	}
	for _, path := range removed {
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", path)
	}
	return nil
}

func init() {
	sweepCmd.Flags().Int("keep-weeks", store.DefaultKeepWeeks, "number of past ISO weeks to keep")

	rootCmd.AddCommand(sweepCmd)
}
