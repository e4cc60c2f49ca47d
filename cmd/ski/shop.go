package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ski-arcade/internal/cosmetics"
	"github.com/vovakirdan/ski-arcade/internal/progress"
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Browse and buy skins",
	Long: `Skins are paid for with the total score banked across all runs.

Examples:
  ski shop list
  ski shop buy gold
  ski shop equip default`,
}

var shopListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every skin with its price and status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, logger, closeLog, err := shopStore()
		if err != nil {
			return err
		}
		defer closeLog()
		printShop(cmd.OutOrStdout(), progress.LoadOrDefault(store, logger))
		return nil
	},
}

var shopBuyCmd = &cobra.Command{
	Use:   "buy <id>",
	Short: "Buy and equip a skin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateProgress(cmd, args[0], (*progress.Progress).Buy)
	},
}

var shopEquipCmd = &cobra.Command{
	Use:   "equip <id>",
	Short: "Equip an owned skin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateProgress(cmd, args[0], (*progress.Progress).Equip)
	},
}

func init() {
	shopCmd.AddCommand(shopListCmd, shopBuyCmd, shopEquipCmd)
}

func shopStore() (progress.Store, *log.Logger, func(), error) {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return nil, nil, nil, err
	}
	return openProgress(logger), logger, closeLog, nil
}

// updateProgress loads the save, applies op for the skin and writes it back.
func updateProgress(cmd *cobra.Command, id string, op func(*progress.Progress, string) error) error {
	store, logger, closeLog, err := shopStore()
	if err != nil {
		return err
	}
	defer closeLog()

	p := progress.LoadOrDefault(store, logger)
	if err := op(&p, id); err != nil {
		return err
	}
	if err := store.Save(p); err != nil {
		return fmt.Errorf("error saving progress: %w", err)
	}

	skin, _ := cosmetics.Get(id)
	fmt.Fprintf(cmd.OutOrStdout(), "Equipped %s. Wallet: %d\n", skin.Name, p.TotalScore)
	return nil
}

func printShop(out io.Writer, p progress.Progress) {
	fmt.Fprintf(out, "Skin Shop - wallet %d\n", p.TotalScore)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-10s  %-14s  %-6s  %s\n", "ID", "Name", "Price", "Status")
	fmt.Fprintf(out, "  %-10s  %-14s  %-6s  %s\n", "--", "----", "-----", "------")
	for _, s := range cosmetics.List() {
		fmt.Fprintf(out, "  %-10s  %-14s  %-6d  %s\n", s.ID, s.Name, s.Price, skinStatus(p, s))
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'ski shop buy <id>' to buy a skin.")
}

func skinStatus(p progress.Progress, s cosmetics.Skin) string {
	switch {
	case p.EquippedCosmeticID == s.ID:
		return "equipped"
	case p.Owns(s.ID):
		return "owned"
	case p.TotalScore >= s.Price:
		return "buy"
	default:
		return fmt.Sprintf("locked (%d more)", s.Price-p.TotalScore)
	}
}
