package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ski-arcade/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run history",
	Long: `Display the best runs (or the most recent ones) from the run history
database, followed by aggregate statistics.

Examples:
  ski scores
  ski scores --limit 25
  ski scores --recent
  ski scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the most recent runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the whole run history")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening run history: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagScoresClear {
		if err := store.ClearRuns(); err != nil {
			return err
		}
		fmt.Fprintln(out, "Run history cleared.")
		return nil
	}

	title := "High Scores"
	runs, err := store.TopRuns(flagScoresLimit)
	if flagScoresRecent {
		title = "Recent Runs"
		runs, err = store.RecentRuns(flagScoresLimit)
	}
	if err != nil {
		return fmt.Errorf("error retrieving runs: %w", err)
	}

	fmt.Fprintf(out, "%s - Ski Arcade\n", title)
	fmt.Fprintln(out)

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'ski play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-8s  %-8s  %-5s  %-10s  %s\n", "Rank", "Score", "Dist", "Gates", "Skin", "Date")
	fmt.Fprintf(out, "  %-4s  %-8s  %-8s  %-5s  %-10s  %s\n", "----", "-----", "----", "-----", "----", "----")
	for i, r := range runs {
		fmt.Fprintf(out, "  %-4d  %-8d  %-8s  %-5d  %-10s  %s\n",
			i+1, r.Score, fmt.Sprintf("%.0fm", r.Distance), r.Gates, r.Skin, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	// Show stats
	if stats, err := store.Stats(); err == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Best: %d  |  Runs: %d  |  Avg: %.0f  |  Total distance: %.0fm  |  Most sections: %d\n",
			stats.HighScore, stats.Runs, stats.AvgScore, stats.TotalDistance, stats.BestSections)
	}
	return nil
}
