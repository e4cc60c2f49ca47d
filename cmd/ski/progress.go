package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ski-arcade/internal/cosmetics"
	"github.com/vovakirdan/ski-arcade/internal/progress"
)

var flagResetYes bool

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show saved progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, logger, closeLog, err := shopStore()
		if err != nil {
			return err
		}
		defer closeLog()

		p := progress.LoadOrDefault(store, logger)
		out := cmd.OutOrStdout()
		skin, _ := cosmetics.Get(p.EquippedCosmeticID)
		fmt.Fprintf(out, "  %-10s %d\n", "Wallet", p.TotalScore)
		fmt.Fprintf(out, "  %-10s %d\n", "Best", p.BestScore)
		fmt.Fprintf(out, "  %-10s %s\n", "Skin", skin.Name)
		fmt.Fprintf(out, "  %-10s %d of %d\n", "Owned", len(p.OwnedCosmeticIDs), len(cosmetics.List()))
		return nil
	},
}

var progressResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase saved progress",
	Long: `Reset wallet, best score and owned skins to a new player's values.
The run history database is not touched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !flagResetYes {
			return fmt.Errorf("refusing to reset without --yes")
		}
		store, _, closeLog, err := shopStore()
		if err != nil {
			return err
		}
		defer closeLog()

		if err := store.Save(progress.Default()); err != nil {
			return fmt.Errorf("error saving progress: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Progress reset.")
		return nil
	},
}

func init() {
	progressResetCmd.Flags().BoolVar(&flagResetYes, "yes", false, "Confirm the reset")
	progressCmd.AddCommand(progressResetCmd)
}
